package questdbconnect

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigError(t *testing.T) {
	err := NewConfigError("partitioned table %q requires a designated timestamp", "metrics")
	require.Error(t, err)
	assert.Equal(t, `questdb: invalid configuration: partitioned table "metrics" requires a designated timestamp`, err.Error())
	assert.True(t, IsConfigError(err))
	assert.True(t, IsConfigError(fmt.Errorf("generate ddl: %w", err)))
	assert.False(t, IsConfigError(nil))
	assert.False(t, IsConfigError(errors.New("other")))
}

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("metrics")
	require.Error(t, err)
	assert.Equal(t, `questdb: table "metrics" does not exist`, err.Error())
	assert.Equal(t, "metrics", err.Table())

	assert.True(t, IsNotFound(err))
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.True(t, IsNotFound(fmt.Errorf("reflect: %w", err)))
	assert.True(t, IsNotFound(ErrNotFound))

	var nfe *NotFoundError
	require.True(t, errors.As(fmt.Errorf("reflect: %w", err), &nfe))
	assert.Equal(t, "metrics", nfe.Table())

	assert.False(t, IsNotFound(nil))
	assert.False(t, IsNotFound(errors.New("other")))
}

func TestUnsupportedError(t *testing.T) {
	err := NewUnsupportedError("two-phase commit")
	require.Error(t, err)
	assert.Equal(t, "questdb: two-phase commit is not supported", err.Error())
	assert.Equal(t, "two-phase commit", err.Op())

	assert.True(t, IsUnsupported(err))
	assert.True(t, errors.Is(err, ErrUnsupported))
	assert.True(t, IsUnsupported(fmt.Errorf("txn: %w", err)))
	assert.False(t, IsUnsupported(nil))
	assert.False(t, IsUnsupported(ErrNotFound))
}

func TestUnknownTypeError(t *testing.T) {
	err := NewUnknownTypeError("TENSOR")
	require.Error(t, err)
	assert.Equal(t, `questdb: unknown column type "TENSOR"`, err.Error())
	assert.Equal(t, "TENSOR", err.TypeName())

	assert.True(t, IsUnknownType(err))
	assert.True(t, errors.Is(err, ErrUnknownType))
	assert.True(t, IsUnknownType(fmt.Errorf("resolve: %w", err)))
	assert.False(t, IsUnknownType(nil))
	assert.False(t, IsUnknownType(ErrUnsupported))
}

// TestErrorClassesAreDistinct tests that the sentinels do not bleed into
// each other through the Is hooks.
func TestErrorClassesAreDistinct(t *testing.T) {
	assert.False(t, IsNotFound(NewUnsupportedError("x")))
	assert.False(t, IsUnsupported(NewNotFoundError("x")))
	assert.False(t, IsUnknownType(NewNotFoundError("x")))
	assert.False(t, IsConfigError(NewUnknownTypeError("x")))
}
