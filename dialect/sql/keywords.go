package sql

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/singleflight"
)

// Introspection statements for the server's reserved keywords and built-in
// function names. Both are QuestDB table functions consumed as-is.
const (
	keywordsQuery  = "SELECT keyword FROM keywords()"
	functionsQuery = "SELECT name FROM functions()"
)

// catalog caches the server's reserved-keyword and function-name lists.
// It is populated once on Connect and read-only afterwards; Refresh swaps
// the whole snapshot atomically. Concurrent first loads are collapsed into
// a single round-trip.
type catalog struct {
	group    singleflight.Group
	snapshot atomic.Pointer[catalogSnapshot]
}

type catalogSnapshot struct {
	keywords  map[string]struct{}
	functions map[string]struct{}
}

// Loaded reports whether the catalog has been populated.
func (c *catalog) Loaded() bool {
	return c.snapshot.Load() != nil
}

// load fetches both lists and replaces the snapshot. Calls are collapsed
// through singleflight so a burst of concurrent connects performs one
// round-trip.
func (c *catalog) load(ctx context.Context, conn Conn) error {
	_, err, _ := c.group.Do("catalog", func() (any, error) {
		keywords, err := queryStrings(ctx, conn, keywordsQuery)
		if err != nil {
			return nil, fmt.Errorf("dialect/sql: load keywords: %w", err)
		}
		functions, err := queryStrings(ctx, conn, functionsQuery)
		if err != nil {
			return nil, fmt.Errorf("dialect/sql: load functions: %w", err)
		}
		snap := &catalogSnapshot{
			keywords:  make(map[string]struct{}, len(keywords)),
			functions: make(map[string]struct{}, len(functions)),
		}
		for _, k := range keywords {
			snap.keywords[strings.ToLower(k)] = struct{}{}
		}
		for _, f := range functions {
			snap.functions[strings.ToLower(f)] = struct{}{}
		}
		c.snapshot.Store(snap)
		return nil, nil
	})
	return err
}

// queryStrings runs a single-column query and collects the values.
func queryStrings(ctx context.Context, conn Conn, query string) ([]string, error) {
	var rows Rows
	if err := conn.Query(ctx, query, []any{}, &rows); err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// WarmCatalog populates the keyword/function catalog if it has not been
// loaded yet. Connect calls this eagerly; it is exported for drivers
// created with Open or OpenDB.
func (d *Driver) WarmCatalog(ctx context.Context) error {
	if d.catalog.Loaded() {
		return nil
	}
	return d.catalog.load(ctx, d.Conn)
}

// RefreshCatalog re-fetches the keyword and function lists, replacing the
// cached snapshot atomically.
func (d *Driver) RefreshCatalog(ctx context.Context) error {
	return d.catalog.load(ctx, d.Conn)
}

// IsKeyword reports whether the given identifier is a reserved keyword on
// the connected server. It returns false if the catalog was never loaded.
func (d *Driver) IsKeyword(s string) bool {
	snap := d.catalog.snapshot.Load()
	if snap == nil {
		return false
	}
	_, ok := snap.keywords[strings.ToLower(s)]
	return ok
}

// IsFunction reports whether the given name is a built-in function on the
// connected server. It returns false if the catalog was never loaded.
func (d *Driver) IsFunction(s string) bool {
	snap := d.catalog.snapshot.Load()
	if snap == nil {
		return false
	}
	_, ok := snap.functions[strings.ToLower(s)]
	return ok
}

// Keywords returns a sorted copy of the cached reserved-keyword list.
func (d *Driver) Keywords() []string {
	snap := d.catalog.snapshot.Load()
	if snap == nil {
		return nil
	}
	return sortedKeys(snap.keywords)
}

// Functions returns a sorted copy of the cached function-name list.
func (d *Driver) Functions() []string {
	snap := d.catalog.snapshot.Load()
	if snap == nil {
		return nil
	}
	return sortedKeys(snap.functions)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
