// Package schema implements the QuestDB side of the dialect contract:
// table-engine DDL generation, schema reflection over the server's
// introspection functions, and the dialect facade that declares QuestDB's
// structural limitations to the host framework.
package schema

import (
	"github.com/antoniocaiazzo/questdb-connect/types"
)

// Table holds the reflected or declared metadata of a QuestDB table: its
// ordered column list and the table engine controlling the designated
// timestamp, partitioning and WAL behavior.
type Table struct {
	Name    string
	Columns []*Column
	Engine  *TableEngine
}

// NewTable returns a new table with the given name.
func NewTable(name string) *Table {
	return &Table{Name: name}
}

// AddColumn appends a column, preserving declaration order.
func (t *Table) AddColumn(c *Column) *Table {
	t.Columns = append(t.Columns, c)
	return t
}

// Column returns the column with the given name, if present.
func (t *Table) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// Column is a single table column. QuestDB columns are always nullable,
// never auto-incrementing, and at most one column per table (the designated
// timestamp) is a primary key.
type Column struct {
	Name       string
	Type       types.Type
	Nullable   bool
	PrimaryKey bool
}

// NewColumn returns a nullable column of the given type.
func NewColumn(name string, typ types.Type) *Column {
	return &Column{Name: name, Type: typ, Nullable: true}
}

// ColumnInfo is the plain column metadata returned by Inspector.Columns for
// lightweight introspection callers that do not want a Table mutated.
type ColumnInfo struct {
	Name          string
	Type          types.Type
	Nullable      bool
	AutoIncrement bool
	Persisted     bool
}

// quoteChars are the quote characters stripped before re-quoting an
// identifier.
const quoteChars = `'"`

// QuoteIdentifier normalizes identifier quoting for generated SQL. QuestDB
// identifiers are better off with single quotes; an identifier arriving
// already quoted (with either quote style) is re-quoted rather than
// double-quoted.
func QuoteIdentifier(identifier string) string {
	if identifier == "" {
		return ""
	}
	first, last := 0, len(identifier)
	if isQuote(identifier[first]) {
		first++
	}
	if last-1 >= first && isQuote(identifier[last-1]) {
		last--
	}
	return "'" + identifier[first:last] + "'"
}

func isQuote(b byte) bool {
	return b == quoteChars[0] || b == quoteChars[1]
}
