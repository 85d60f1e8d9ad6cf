package schema

import (
	"context"
	"fmt"
	"strings"

	questdbconnect "github.com/antoniocaiazzo/questdb-connect"
	"github.com/antoniocaiazzo/questdb-connect/dialect"
	"github.com/antoniocaiazzo/questdb-connect/dialect/sql"
	"github.com/antoniocaiazzo/questdb-connect/types"
)

// Inspector reconstructs table and column metadata from the server's two
// introspection functions: tables() for table-level attributes and
// table_columns() for the column list. Results are built fresh per call,
// never cached.
type Inspector struct {
	conn dialect.ExecQuerier
}

// NewInspector returns an Inspector reading through the given connection.
func NewInspector(conn dialect.ExecQuerier) *Inspector {
	return &Inspector{conn: conn}
}

// ReflectOption filters the columns a reflection call materializes.
type ReflectOption func(*reflectConfig)

type reflectConfig struct {
	include map[string]struct{}
	exclude map[string]struct{}
}

// WithIncludeColumns limits reflection to the named columns.
func WithIncludeColumns(names ...string) ReflectOption {
	return func(c *reflectConfig) {
		c.include = make(map[string]struct{}, len(names))
		for _, n := range names {
			c.include[n] = struct{}{}
		}
	}
}

// WithExcludeColumns drops the named columns from reflection.
func WithExcludeColumns(names ...string) ReflectOption {
	return func(c *reflectConfig) {
		c.exclude = make(map[string]struct{}, len(names))
		for _, n := range names {
			c.exclude[n] = struct{}{}
		}
	}
}

func (c *reflectConfig) keep(name string) bool {
	if c.include != nil {
		if _, ok := c.include[name]; !ok {
			return false
		}
	}
	if c.exclude != nil {
		if _, ok := c.exclude[name]; ok {
			return false
		}
	}
	return true
}

// tableAttrs is the row shape of the table-level introspection query.
type tableAttrs struct {
	timestamp   sql.NullString
	partitionBy string
	wal         bool
}

// tableAttributes runs introspection query 1, keyed by table name. A
// successful round-trip with zero rows maps to NotFoundError; a failed
// round-trip propagates the query error unchanged, so connectivity
// failures are never mistaken for a missing table.
func (i *Inspector) tableAttributes(ctx context.Context, table string) (*tableAttrs, error) {
	query := fmt.Sprintf(
		"SELECT designatedTimestamp, partitionBy, walEnabled FROM tables() WHERE name = '%s'",
		sql.EscapeStringValue(table),
	)
	var rows sql.Rows
	if err := i.conn.Query(ctx, query, []any{}, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, err
		}
		return nil, questdbconnect.NewNotFoundError(table)
	}
	attrs := &tableAttrs{}
	if err := rows.Scan(&attrs.timestamp, &attrs.partitionBy, &attrs.wal); err != nil {
		return nil, err
	}
	return attrs, rows.Err()
}

// columnRow is the row shape of the column-listing introspection query.
type columnRow struct {
	name      string
	typeName  string
	upsertKey bool
}

// tableColumns runs introspection query 2 and returns the rows in server
// order.
func (i *Inspector) tableColumns(ctx context.Context, table string) ([]columnRow, error) {
	query := fmt.Sprintf(
		`SELECT "column", "type", "upsertKey" FROM table_columns('%s')`,
		sql.EscapeStringValue(table),
	)
	var rows sql.Rows
	if err := i.conn.Query(ctx, query, []any{}, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []columnRow
	for rows.Next() {
		var r columnRow
		if err := rows.Scan(&r.name, &r.typeName, &r.upsertKey); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ReflectTable reconstructs the named table's metadata in place: its
// columns, in introspection order, and a fresh TableEngine built from the
// table-level attributes. The column whose name case-insensitively matches
// the designated timestamp is marked as the primary key. Raw type names
// resolve through the type registry; an unknown name fails the whole call.
func (i *Inspector) ReflectTable(ctx context.Context, t *Table, opts ...ReflectOption) error {
	cfg := &reflectConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	attrs, err := i.tableAttributes(ctx, t.Name)
	if err != nil {
		return err
	}
	partitionBy, err := ParsePartitionBy(attrs.partitionBy)
	if err != nil {
		return err
	}
	cols, err := i.tableColumns(ctx, t.Name)
	if err != nil {
		return err
	}
	var dedupKeys []string
	for _, row := range cols {
		if row.upsertKey {
			dedupKeys = append(dedupKeys, row.name)
		}
		if !cfg.keep(row.name) {
			continue
		}
		typ, err := types.ResolveTypeFromName(row.typeName)
		if err != nil {
			return err
		}
		c := NewColumn(row.name, typ)
		c.PrimaryKey = attrs.timestamp.Valid && strings.EqualFold(attrs.timestamp.String, row.name)
		t.AddColumn(c)
	}
	t.Engine = NewTableEngine(t.Name, attrs.timestamp.String, partitionBy, attrs.wal).
		WithDedupKeys(dedupKeys...)
	return nil
}

// Columns is the standalone variant of column reflection: it returns plain
// metadata for lightweight introspection callers without mutating a table.
func (i *Inspector) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	cols, err := i.tableColumns(ctx, table)
	if err != nil {
		return nil, err
	}
	if len(cols) == 0 {
		return nil, questdbconnect.NewNotFoundError(table)
	}
	out := make([]ColumnInfo, 0, len(cols))
	for _, row := range cols {
		typ, err := types.ResolveTypeFromName(row.typeName)
		if err != nil {
			return nil, err
		}
		out = append(out, ColumnInfo{
			Name:      row.name,
			Type:      typ,
			Nullable:  true,
			Persisted: true,
		})
	}
	return out, nil
}

// TableNames lists every table on the server.
func (i *Inspector) TableNames(ctx context.Context) ([]string, error) {
	var rows sql.Rows
	if err := i.conn.Query(ctx, "SHOW TABLES", []any{}, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// HasTable reports whether the named table exists.
func (i *Inspector) HasTable(ctx context.Context, table string) (bool, error) {
	query := fmt.Sprintf(
		"SELECT count() FROM tables() WHERE name = '%s'",
		sql.EscapeStringValue(table),
	)
	var rows sql.Rows
	if err := i.conn.Query(ctx, query, []any{}, &rows); err != nil {
		return false, err
	}
	defer rows.Close()
	var count int64
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return false, err
		}
	}
	return count > 0, rows.Err()
}
