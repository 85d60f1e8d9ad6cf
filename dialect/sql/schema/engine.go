package schema

import (
	"strings"
	"sync"

	questdbconnect "github.com/antoniocaiazzo/questdb-connect"
)

// PartitionBy is the time-bucketing granularity a table's physical storage
// is segmented by.
type PartitionBy uint8

const (
	PartitionNone PartitionBy = iota
	PartitionYear
	PartitionMonth
	PartitionWeek
	PartitionDay
	PartitionHour
)

var partitionNames = map[PartitionBy]string{
	PartitionNone:  "NONE",
	PartitionYear:  "YEAR",
	PartitionMonth: "MONTH",
	PartitionWeek:  "WEEK",
	PartitionDay:   "DAY",
	PartitionHour:  "HOUR",
}

// String returns the granularity name as it appears in DDL and in the
// output of the tables() introspection function.
func (p PartitionBy) String() string {
	if name, ok := partitionNames[p]; ok {
		return name
	}
	return "NONE"
}

// ParsePartitionBy resolves a granularity name reported by tables() back
// into its PartitionBy value. The match is case-insensitive.
func ParsePartitionBy(name string) (PartitionBy, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for p, n := range partitionNames {
		if n == upper {
			return p, nil
		}
	}
	return PartitionNone, questdbconnect.NewConfigError("unknown partition granularity %q", name)
}

// TableEngine holds the per-table storage metadata QuestDB appends after a
// table's column-definition list: the designated timestamp column, the
// partition granularity, the WAL flag and the dedup upsert keys.
//
// The compiled suffix is derived state: computed once on first request and
// cached for the lifetime of the descriptor. Descriptors are not meant to
// be mutated after their first compilation.
type TableEngine struct {
	// Name is the owning table's name.
	Name string
	// TimestampColumn is the designated timestamp column, empty if none.
	TimestampColumn string
	// PartitionBy is the partition granularity.
	PartitionBy PartitionBy
	// WAL marks the table's writes as write-ahead logged.
	WAL bool
	// DedupKeys is the ordered column set used to deduplicate rows on
	// upsert. Requires WAL.
	DedupKeys []string

	once   sync.Once
	suffix string
	err    error
}

// NewTableEngine returns a table engine descriptor for the given table.
func NewTableEngine(table, tsColumn string, partitionBy PartitionBy, wal bool) *TableEngine {
	return &TableEngine{
		Name:            table,
		TimestampColumn: tsColumn,
		PartitionBy:     partitionBy,
		WAL:             wal,
	}
}

// WithDedupKeys sets the dedup upsert keys and returns the descriptor.
func (e *TableEngine) WithDedupKeys(keys ...string) *TableEngine {
	e.DedupKeys = keys
	return e
}

// Suffix compiles the DDL fragment appended verbatim after a table's
// column-definition list, in clause order TIMESTAMP, PARTITION BY, WAL,
// DEDUP UPSERT KEYS. A combination violating the engine invariants fails
// with a ConfigError and never yields a partial fragment. The result is
// memoized; compilation is a pure function of the descriptor's fields.
func (e *TableEngine) Suffix() (string, error) {
	e.once.Do(func() {
		e.suffix, e.err = e.compile()
	})
	return e.suffix, e.err
}

func (e *TableEngine) compile() (string, error) {
	var (
		b           strings.Builder
		hasTS       = e.TimestampColumn != ""
		partitioned = e.PartitionBy != PartitionNone
	)
	if hasTS {
		b.WriteString("TIMESTAMP(")
		b.WriteString(e.TimestampColumn)
		b.WriteString(")")
	}
	if partitioned {
		if !hasTS {
			return "", questdbconnect.NewConfigError(
				"table %q: a designated timestamp must be specified for a partitioned table", e.Name)
		}
		b.WriteString(" PARTITION BY ")
		b.WriteString(e.PartitionBy.String())
	}
	if e.WAL {
		if !partitioned {
			return "", questdbconnect.NewConfigError(
				"table %q: a designated timestamp and partition by must be specified for a WAL table", e.Name)
		}
		b.WriteString(" WAL")
	}
	if len(e.DedupKeys) > 0 {
		if !e.WAL {
			return "", questdbconnect.NewConfigError(
				"table %q: dedup upsert keys require a WAL table", e.Name)
		}
		b.WriteString(" DEDUP UPSERT KEYS(")
		b.WriteString(strings.Join(e.DedupKeys, ", "))
		b.WriteString(")")
	}
	return b.String(), nil
}
