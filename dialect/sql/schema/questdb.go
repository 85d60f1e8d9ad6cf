package schema

import (
	"context"
	stdsql "database/sql"

	questdbconnect "github.com/antoniocaiazzo/questdb-connect"
	"github.com/antoniocaiazzo/questdb-connect/dialect"
)

func init() {
	dialect.Register(dialect.Questdb, New())
}

// ForeignKey describes a reflected foreign-key constraint. QuestDB has no
// foreign keys; the type exists so the reflection surface stays typed.
type ForeignKey struct {
	Name       string
	Columns    []string
	RefTable   string
	RefColumns []string
}

// Index describes a reflected index or unique constraint. QuestDB exposes
// neither through reflection.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// CheckConstraint describes a reflected check constraint. QuestDB has none.
type CheckConstraint struct {
	Name string
	Expr string
}

// QuestDB is the dialect facade: stateless per-call dispatch over the DDL
// and SQL compilers, the schema inspector and the identifier quoter. It
// declares the database's structural limitations by returning empty
// results for concepts QuestDB does not have; callers must treat an empty
// result as "unsupported" rather than "none defined".
type QuestDB struct {
	ddl DDL
	sql SQL
}

// New returns the QuestDB dialect facade.
func New() *QuestDB {
	return &QuestDB{}
}

// Name implements dialect.Dialect.
func (*QuestDB) Name() string { return dialect.Questdb }

// SupportsSchemas reports that QuestDB has no schema concept.
func (*QuestDB) SupportsSchemas() bool { return false }

// SupportsViews reports that QuestDB has no views.
func (*QuestDB) SupportsViews() bool { return false }

// SupportsMultiValuesInsert reports that multi-row VALUES inserts are
// accepted.
func (*QuestDB) SupportsMultiValuesInsert() bool { return true }

// DDL returns the DDL compiler.
func (d *QuestDB) DDL() DDL { return d.ddl }

// SQL returns the SQL compiler.
func (d *QuestDB) SQL() SQL { return d.sql }

// Inspect returns an inspector reading through the given connection.
func (*QuestDB) Inspect(conn dialect.ExecQuerier) *Inspector {
	return NewInspector(conn)
}

// QuoteIdentifier implements the identifier-quoting capability.
func (*QuestDB) QuoteIdentifier(identifier string) string {
	return QuoteIdentifier(identifier)
}

// SchemaNames returns the empty schema list: QuestDB has a single implicit
// namespace.
func (*QuestDB) SchemaNames(context.Context, dialect.ExecQuerier) ([]string, error) {
	return nil, nil
}

// TableNames lists every table on the server.
func (*QuestDB) TableNames(ctx context.Context, conn dialect.ExecQuerier) ([]string, error) {
	return NewInspector(conn).TableNames(ctx)
}

// HasTable reports whether the named table exists.
func (*QuestDB) HasTable(ctx context.Context, conn dialect.ExecQuerier, table string) (bool, error) {
	return NewInspector(conn).HasTable(ctx, table)
}

// ForeignKeys is unconditionally empty: QuestDB has no foreign keys.
func (*QuestDB) ForeignKeys(context.Context, dialect.ExecQuerier, string) ([]ForeignKey, error) {
	return nil, nil
}

// Indexes is unconditionally empty: QuestDB exposes no index reflection.
func (*QuestDB) Indexes(context.Context, dialect.ExecQuerier, string) ([]Index, error) {
	return nil, nil
}

// UniqueConstraints is unconditionally empty.
func (*QuestDB) UniqueConstraints(context.Context, dialect.ExecQuerier, string) ([]Index, error) {
	return nil, nil
}

// CheckConstraints is unconditionally empty.
func (*QuestDB) CheckConstraints(context.Context, dialect.ExecQuerier, string) ([]CheckConstraint, error) {
	return nil, nil
}

// PrimaryKeyConstraint is unconditionally empty: the designated timestamp
// is surfaced through column reflection, not as a named constraint.
func (*QuestDB) PrimaryKeyConstraint(context.Context, dialect.ExecQuerier, string) ([]string, error) {
	return nil, nil
}

// ViewNames is unconditionally empty: QuestDB has no views.
func (*QuestDB) ViewNames(context.Context, dialect.ExecQuerier) ([]string, error) {
	return nil, nil
}

// ViewDefinition is unconditionally empty.
func (*QuestDB) ViewDefinition(context.Context, dialect.ExecQuerier, string) (string, error) {
	return "", nil
}

// TempTableNames is unconditionally empty: QuestDB has no temp tables.
func (*QuestDB) TempTableNames(context.Context, dialect.ExecQuerier) ([]string, error) {
	return nil, nil
}

// TempViewNames is unconditionally empty.
func (*QuestDB) TempViewNames(context.Context, dialect.ExecQuerier) ([]string, error) {
	return nil, nil
}

// HasSequence is unconditionally false: QuestDB has no sequences.
func (*QuestDB) HasSequence(context.Context, dialect.ExecQuerier, string) (bool, error) {
	return false, nil
}

// BeginTwoPhase fails: QuestDB has no transaction coordinator. The error is
// raised synchronously, before anything reaches the network.
func (*QuestDB) BeginTwoPhase(context.Context, dialect.ExecQuerier, string) error {
	return questdbconnect.NewUnsupportedError("two-phase begin")
}

// PrepareTwoPhase fails, for the same reason as BeginTwoPhase.
func (*QuestDB) PrepareTwoPhase(context.Context, dialect.ExecQuerier, string) error {
	return questdbconnect.NewUnsupportedError("two-phase prepare")
}

// CommitTwoPhase fails, for the same reason as BeginTwoPhase.
func (*QuestDB) CommitTwoPhase(context.Context, dialect.ExecQuerier, string) error {
	return questdbconnect.NewUnsupportedError("two-phase commit")
}

// RollbackTwoPhase fails, for the same reason as BeginTwoPhase.
func (*QuestDB) RollbackTwoPhase(context.Context, dialect.ExecQuerier, string) error {
	return questdbconnect.NewUnsupportedError("two-phase rollback")
}

// RecoverTwoPhase fails, for the same reason as BeginTwoPhase.
func (*QuestDB) RecoverTwoPhase(context.Context, dialect.ExecQuerier) ([]string, error) {
	return nil, questdbconnect.NewUnsupportedError("two-phase recover")
}

// IsolationLevel returns the database's fixed isolation level. QuestDB
// offers no tunable isolation.
func (*QuestDB) IsolationLevel(context.Context, dialect.ExecQuerier) (stdsql.IsolationLevel, error) {
	return stdsql.LevelDefault, nil
}

// SetIsolationLevel is a no-op: the level cannot be changed.
func (*QuestDB) SetIsolationLevel(context.Context, dialect.ExecQuerier, stdsql.IsolationLevel) error {
	return nil
}

var _ dialect.Dialect = (*QuestDB)(nil)
