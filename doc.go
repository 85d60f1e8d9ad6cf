// Package questdbconnect adapts QuestDB, a column-oriented time-series
// database reachable over the PostgreSQL wire protocol, to a generic SQL
// dialect contract.
//
// QuestDB differs from a general-purpose relational database in ways that a
// dialect layer has to account for: there are no schemas, no foreign keys,
// no views and no two-phase commit; tables may declare a designated
// timestamp column, a time-partitioning granularity and write-ahead-log
// semantics. This module translates those capabilities into the pieces an
// ORM needs:
//
//   - questdbconnect (this package): error taxonomy and connection config.
//   - types: the registry mapping QuestDB type names to type descriptors.
//   - dialect: the generic driver contract and dialect registry.
//   - dialect/sql: the database/sql connection adapter on top of lib/pq,
//     including query-text rewriting and the keyword/function cache.
//   - dialect/sql/schema: table-engine DDL generation, schema reflection
//     and the questdb dialect facade.
//
// Opening a connection:
//
//	drv, err := sql.Connect(ctx, questdbconnect.FromEnv())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer drv.Close()
package questdbconnect
