// Package dialect defines the database-agnostic driver contract and the
// registry through which concrete dialects make themselves available.
//
// The only dialect shipped by this module is QuestDB, registered under the
// name "questdb" by the dialect/sql/schema package.
package dialect

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Questdb is the name of the QuestDB dialect.
const Questdb = "questdb"

// ExecQuerier wraps the Exec and Query methods shared by drivers and
// transactions.
type ExecQuerier interface {
	// Exec executes a statement that does not return rows. The v argument
	// is either nil or a *sql.Result to capture the execution result.
	Exec(ctx context.Context, query string, args, v any) error
	// Query executes a statement that returns rows. The v argument must be
	// a *sql.Rows wrapper to scan the result set into.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the contract a database driver exposes to the ORM layer.
type Driver interface {
	ExecQuerier
	// Tx starts and returns a new transaction.
	Tx(ctx context.Context) (Tx, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect name of the driver.
	Dialect() string
}

// Tx is the transaction contract.
type Tx interface {
	ExecQuerier
	Commit() error
	Rollback() error
}

// Dialect describes the capabilities a concrete database exposes to the
// host framework. Implementations declare structural limitations here so
// generic code can refuse unsupported operations before touching the
// network.
type Dialect interface {
	// Name returns the dialect name, e.g. "questdb".
	Name() string
	// SupportsSchemas reports whether the database has a schema concept.
	SupportsSchemas() bool
	// SupportsViews reports whether the database has views.
	SupportsViews() bool
	// SupportsMultiValuesInsert reports whether multi-row VALUES inserts
	// are accepted.
	SupportsMultiValuesInsert() bool
}

var (
	dialectsMu sync.RWMutex
	dialects   = make(map[string]Dialect)
)

// Register makes a dialect available under the given name. It is intended
// to be called from the init function of the implementing package.
// Registering a nil dialect or the same name twice panics.
func Register(name string, d Dialect) {
	dialectsMu.Lock()
	defer dialectsMu.Unlock()
	if d == nil {
		panic("dialect: Register dialect is nil")
	}
	if _, dup := dialects[name]; dup {
		panic(fmt.Sprintf("dialect: Register called twice for dialect %q", name))
	}
	dialects[name] = d
}

// Lookup returns the dialect registered under the given name.
func Lookup(name string) (Dialect, error) {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	d, ok := dialects[name]
	if !ok {
		return nil, fmt.Errorf("dialect: unknown dialect %q (forgotten import?)", name)
	}
	return d, nil
}

// Names returns the sorted names of all registered dialects.
func Names() []string {
	dialectsMu.RLock()
	defer dialectsMu.RUnlock()
	names := make([]string, 0, len(dialects))
	for name := range dialects {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
