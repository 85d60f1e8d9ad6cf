package schema

import (
	"fmt"
	"strings"

	"github.com/antoniocaiazzo/questdb-connect/types"
)

// ValidationError represents a table validation error.
type ValidationError struct {
	Table   string
	Column  string
	Message string
	// Breaking indicates the change cannot be applied to a live table.
	Breaking bool
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of table validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			if e.Breaking {
				sb.WriteString(" [BREAKING]")
			}
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			if w.Breaking {
				sb.WriteString(" [BREAKING]")
			}
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

// ValidateTable validates a single table definition against QuestDB's
// structural rules: engine invariants, designated-timestamp typing and
// column uniqueness. It reports problems the server would reject at CREATE
// TABLE time without a network round-trip.
func ValidateTable(t *Table) *ValidationResult {
	result := &ValidationResult{}

	colNames := make(map[string]*Column, len(t.Columns))
	for _, c := range t.Columns {
		if _, dup := colNames[c.Name]; dup {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: "duplicate column name",
			})
		}
		colNames[c.Name] = c
		if !c.Type.Valid() {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  c.Name,
				Message: "column type is not a valid QuestDB type",
			})
		}
	}

	e := t.Engine
	if e == nil {
		result.Warnings = append(result.Warnings, &ValidationError{
			Table:   t.Name,
			Message: "table has no engine descriptor",
		})
		return result
	}

	hasTS := e.TimestampColumn != ""
	partitioned := e.PartitionBy != PartitionNone
	if partitioned && !hasTS {
		result.Errors = append(result.Errors, &ValidationError{
			Table:   t.Name,
			Message: "partitioned table requires a designated timestamp",
		})
	}
	if e.WAL && !partitioned {
		result.Errors = append(result.Errors, &ValidationError{
			Table:   t.Name,
			Message: "WAL table requires partitioning",
		})
	}
	if len(e.DedupKeys) > 0 && !e.WAL {
		result.Errors = append(result.Errors, &ValidationError{
			Table:   t.Name,
			Message: "dedup upsert keys require a WAL table",
		})
	}
	if hasTS {
		ts, ok := colNames[e.TimestampColumn]
		switch {
		case !ok:
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  e.TimestampColumn,
				Message: "designated timestamp column does not exist",
			})
		case ts.Type.Kind() != types.KindTimestamp:
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  e.TimestampColumn,
				Message: fmt.Sprintf("designated timestamp must be a TIMESTAMP column, got %s", ts.Type.Name()),
			})
		}
	} else if !partitioned {
		result.Warnings = append(result.Warnings, &ValidationError{
			Table:   t.Name,
			Message: "table has no designated timestamp",
		})
	}
	for _, key := range e.DedupKeys {
		if _, ok := colNames[key]; !ok {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Column:  key,
				Message: "dedup upsert key references non-existent column",
			})
		}
	}

	return result
}

// ValidateOption configures schema validation.
type ValidateOption func(*validateConfig)

type validateConfig struct {
	allowDropColumn bool
	allowDropTable  bool
}

// AllowDropColumn downgrades dropped columns from error to warning.
func AllowDropColumn() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropColumn = true
	}
}

// AllowDropTable downgrades dropped tables from error to warning.
func AllowDropTable() ValidateOption {
	return func(c *validateConfig) {
		c.allowDropTable = true
	}
}

// ValidateDiff validates the difference between the reflected and the
// desired table set. Engine attributes are immutable after creation in
// QuestDB, so a partitioning, WAL or designated-timestamp change is always
// breaking.
func ValidateDiff(current, desired []*Table, opts ...ValidateOption) *ValidationResult {
	cfg := &validateConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	result := &ValidationResult{}
	currentMap := make(map[string]*Table, len(current))
	for _, t := range current {
		currentMap[t.Name] = t
	}
	desiredMap := make(map[string]*Table, len(desired))
	for _, t := range desired {
		desiredMap[t.Name] = t
	}

	for name := range currentMap {
		if _, ok := desiredMap[name]; !ok {
			err := &ValidationError{
				Table:    name,
				Message:  "table will be dropped",
				Breaking: true,
			}
			if cfg.allowDropTable {
				result.Warnings = append(result.Warnings, err)
			} else {
				result.Errors = append(result.Errors, err)
			}
		}
	}

	for name, want := range desiredMap {
		have, exists := currentMap[name]
		if !exists {
			// New table, validated on its own.
			sub := ValidateTable(want)
			result.Errors = append(result.Errors, sub.Errors...)
			result.Warnings = append(result.Warnings, sub.Warnings...)
			continue
		}
		validateTableDiff(have, want, cfg, result)
	}

	return result
}

func validateTableDiff(current, desired *Table, cfg *validateConfig, result *ValidationResult) {
	currentCols := make(map[string]*Column, len(current.Columns))
	for _, c := range current.Columns {
		currentCols[c.Name] = c
	}

	for name := range currentCols {
		if _, ok := desired.Column(name); !ok {
			err := &ValidationError{
				Table:    current.Name,
				Column:   name,
				Message:  "column will be dropped",
				Breaking: true,
			}
			if cfg.allowDropColumn {
				result.Warnings = append(result.Warnings, err)
			} else {
				result.Errors = append(result.Errors, err)
			}
		}
	}

	for _, desiredCol := range desired.Columns {
		currentCol, exists := currentCols[desiredCol.Name]
		if !exists {
			continue
		}
		if currentCol.Type != desiredCol.Type {
			result.Warnings = append(result.Warnings, &ValidationError{
				Table:   current.Name,
				Column:  desiredCol.Name,
				Message: fmt.Sprintf("column type changing from %s to %s", currentCol.Type.Name(), desiredCol.Type.Name()),
			})
		}
	}

	if current.Engine != nil && desired.Engine != nil {
		validateEngineDiff(current.Name, current.Engine, desired.Engine, result)
	}
}

func validateEngineDiff(table string, current, desired *TableEngine, result *ValidationResult) {
	if !strings.EqualFold(current.TimestampColumn, desired.TimestampColumn) {
		result.Errors = append(result.Errors, &ValidationError{
			Table:    table,
			Message:  "designated timestamp cannot be changed after creation",
			Breaking: true,
		})
	}
	if current.PartitionBy != desired.PartitionBy {
		result.Errors = append(result.Errors, &ValidationError{
			Table:    table,
			Message:  fmt.Sprintf("partitioning cannot be changed from %s to %s after creation", current.PartitionBy, desired.PartitionBy),
			Breaking: true,
		})
	}
	if current.WAL != desired.WAL {
		result.Errors = append(result.Errors, &ValidationError{
			Table:    table,
			Message:  "WAL mode cannot be changed after creation",
			Breaking: true,
		})
	}
}

// ValidateSchema validates all tables in a desired table set.
func ValidateSchema(tables []*Table) *ValidationResult {
	result := &ValidationResult{}

	tableNames := make(map[string]bool)
	for _, t := range tables {
		if tableNames[t.Name] {
			result.Errors = append(result.Errors, &ValidationError{
				Table:   t.Name,
				Message: "duplicate table name",
			})
		}
		tableNames[t.Name] = true

		sub := ValidateTable(t)
		result.Errors = append(result.Errors, sub.Errors...)
		result.Warnings = append(result.Warnings, sub.Warnings...)
	}

	return result
}
