package dialect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDialect struct {
	name string
}

func (d *stubDialect) Name() string                  { return d.name }
func (*stubDialect) SupportsSchemas() bool           { return false }
func (*stubDialect) SupportsViews() bool             { return false }
func (*stubDialect) SupportsMultiValuesInsert() bool { return true }

func TestRegisterLookup(t *testing.T) {
	Register("stub", &stubDialect{name: "stub"})

	d, err := Lookup("stub")
	require.NoError(t, err)
	assert.Equal(t, "stub", d.Name())
	assert.Contains(t, Names(), "stub")
}

func TestLookupUnknown(t *testing.T) {
	_, err := Lookup("no-such-dialect")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dialect")
}

func TestRegisterNilPanics(t *testing.T) {
	assert.PanicsWithValue(t, "dialect: Register dialect is nil", func() {
		Register("nil-dialect", nil)
	})
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("dup", &stubDialect{name: "dup"})
	assert.Panics(t, func() {
		Register("dup", &stubDialect{name: "dup"})
	})
}

func TestNamesSorted(t *testing.T) {
	Register("zz-last", &stubDialect{name: "zz-last"})
	Register("aa-first", &stubDialect{name: "aa-first"})

	names := Names()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "zz-last")
	assert.Contains(t, names, "aa-first")
}
