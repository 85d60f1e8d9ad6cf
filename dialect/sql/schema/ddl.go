package schema

import (
	"fmt"
	"strings"

	questdbconnect "github.com/antoniocaiazzo/questdb-connect"
)

// DDL generates QuestDB data-definition statements. It overrides the
// generic statement generation where QuestDB's syntax diverges and refuses
// the DDL the database has no concept of.
type DDL struct{}

// CreateTable renders the statement creating the given table:
//
//	CREATE TABLE '<name>' (<col spec>, ...) [TIMESTAMP(<ts>)] [PARTITION BY <g>] [WAL] [DEDUP UPSERT KEYS(...)]
//
// Each column spec is rendered by the column's own type descriptor. A table
// with a column outside the QuestDB type set, or with an engine violating
// the partitioning/WAL invariants, fails with a ConfigError before any SQL
// is produced.
func (DDL) CreateTable(t *Table) (string, error) {
	if len(t.Columns) == 0 {
		return "", questdbconnect.NewConfigError("table %q has no columns", t.Name)
	}
	specs := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if !c.Type.Valid() {
			return "", questdbconnect.NewConfigError(
				"table %q: column %q type is not a valid QuestDB type", t.Name, c.Name)
		}
		specs[i] = c.Type.ColumnSpec(c.Name)
	}
	stmt := fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdentifier(t.Name), strings.Join(specs, ", "))
	if t.Engine != nil {
		suffix, err := t.Engine.Suffix()
		if err != nil {
			return "", err
		}
		if suffix != "" {
			stmt += " " + suffix
		}
	}
	return stmt, nil
}

// DropTable renders the statement dropping the given table.
func (DDL) DropTable(name string) string {
	return "DROP TABLE " + QuoteIdentifier(name)
}

// CreateSchema always fails: QuestDB has a single implicit namespace and no
// schema concept. Surfacing an explicit error, instead of a silent no-op,
// gives ORM code relying on schema semantics a clear signal.
func (DDL) CreateSchema(name string) (string, error) {
	return "", questdbconnect.NewUnsupportedError("schema creation")
}

// DropSchema always fails, for the same reason as CreateSchema.
func (DDL) DropSchema(name string) (string, error) {
	return "", questdbconnect.NewUnsupportedError("schema removal")
}

// SQL generates QuestDB data-manipulation statements.
type SQL struct{}

// SafeForFastInsertValues reports that batching multiple rows into a single
// VALUES clause is always safe: QuestDB has no server-side feature that
// would make the fast multi-row insert path unsafe.
func (SQL) SafeForFastInsertValues() bool {
	return true
}

// Insert renders a multi-row INSERT statement with positional placeholders,
// the fast batch path enabled by SafeForFastInsertValues:
//
//	INSERT INTO 'metrics' ('ts', 'value') VALUES ($1, $2), ($3, $4)
func (SQL) Insert(table string, columns []string, rows int) (string, error) {
	if len(columns) == 0 {
		return "", questdbconnect.NewConfigError("insert into %q: no columns", table)
	}
	if rows < 1 {
		return "", questdbconnect.NewConfigError("insert into %q: row count %d", table, rows)
	}
	quoted := make([]string, len(columns))
	for i, c := range columns {
		quoted[i] = QuoteIdentifier(c)
	}
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(QuoteIdentifier(table))
	b.WriteString(" (")
	b.WriteString(strings.Join(quoted, ", "))
	b.WriteString(") VALUES ")
	arg := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString(", ")
		}
		b.WriteString("(")
		for c := range columns {
			if c > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "$%d", arg)
			arg++
		}
		b.WriteString(")")
	}
	return b.String(), nil
}
