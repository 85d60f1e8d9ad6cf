package sql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/antoniocaiazzo/questdb-connect/dialect"
)

func mockDriver(t *testing.T) (*Driver, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return OpenDB(db), mock
}

func TestDriverDialect(t *testing.T) {
	drv, _ := mockDriver(t)
	assert.Equal(t, dialect.Questdb, drv.Dialect())
	assert.NotNil(t, drv.DB())
}

func TestConnExec(t *testing.T) {
	t.Run("discard_result", func(t *testing.T) {
		drv, mock := mockDriver(t)
		mock.ExpectExec("DROP TABLE 'trades'").WillReturnResult(sqlmock.NewResult(0, 0))
		require.NoError(t, drv.Exec(context.Background(), "DROP TABLE 'trades'", []any{}, nil))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("capture_result", func(t *testing.T) {
		drv, mock := mockDriver(t)
		mock.ExpectExec("INSERT INTO 'trades' ('price') VALUES ($1)").
			WithArgs(42.5).
			WillReturnResult(sqlmock.NewResult(0, 1))
		var res Result
		require.NoError(t, drv.Exec(context.Background(), "INSERT INTO 'trades' ('price') VALUES ($1)", []any{42.5}, &res))
		affected, err := res.RowsAffected()
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)
	})

	t.Run("invalid_args_type", func(t *testing.T) {
		drv, _ := mockDriver(t)
		err := drv.Exec(context.Background(), "DROP TABLE 'trades'", "not-a-slice", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expect []any for args")
	})

	t.Run("invalid_result_type", func(t *testing.T) {
		drv, _ := mockDriver(t)
		err := drv.Exec(context.Background(), "DROP TABLE 'trades'", []any{}, "bad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expect *sql.Result")
	})
}

func TestConnQuery(t *testing.T) {
	t.Run("scan_rows", func(t *testing.T) {
		drv, mock := mockDriver(t)
		mock.ExpectQuery("SELECT symbol FROM 'trades'").WillReturnRows(
			sqlmock.NewRows([]string{"symbol"}).AddRow("BTC-USD").AddRow("ETH-USD"))

		var rows Rows
		require.NoError(t, drv.Query(context.Background(), "SELECT symbol FROM 'trades'", []any{}, &rows))
		defer rows.Close()
		var got []string
		for rows.Next() {
			var s string
			require.NoError(t, rows.Scan(&s))
			got = append(got, s)
		}
		require.NoError(t, rows.Err())
		assert.Equal(t, []string{"BTC-USD", "ETH-USD"}, got)
	})

	t.Run("invalid_rows_type", func(t *testing.T) {
		drv, _ := mockDriver(t)
		err := drv.Query(context.Background(), "SELECT 1", []any{}, "bad")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expect *sql.Rows")
	})

	t.Run("query_error_wrapped", func(t *testing.T) {
		drv, mock := mockDriver(t)
		mock.ExpectQuery("SELECT 1").WillReturnError(assert.AnError)
		var rows Rows
		err := drv.Query(context.Background(), "SELECT 1", []any{}, &rows)
		require.Error(t, err)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Contains(t, err.Error(), "dialect/sql: query")
	})
}

// TestConnRewritesPublicSchema tests that the "public" qualification is
// stripped before the statement reaches the wire, on both paths.
func TestConnRewritesPublicSchema(t *testing.T) {
	drv, mock := mockDriver(t)
	mock.ExpectQuery("SELECT * FROM trades").WillReturnRows(sqlmock.NewRows([]string{"x"}))
	mock.ExpectExec("DROP TABLE trades").WillReturnResult(sqlmock.NewResult(0, 0))

	var rows Rows
	require.NoError(t, drv.Query(context.Background(), "SELECT * FROM public.trades", []any{}, &rows))
	rows.Close()
	require.NoError(t, drv.Exec(context.Background(), `DROP TABLE "public".trades`, []any{}, nil))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTx(t *testing.T) {
	t.Run("commit", func(t *testing.T) {
		drv, mock := mockDriver(t)
		mock.ExpectBegin()
		mock.ExpectExec("DROP TABLE 'trades'").WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectCommit()

		tx, err := drv.Tx(context.Background())
		require.NoError(t, err)
		require.NoError(t, tx.Exec(context.Background(), "DROP TABLE 'trades'", []any{}, nil))
		require.NoError(t, tx.Commit())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		drv, mock := mockDriver(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		tx, err := drv.Tx(context.Background())
		require.NoError(t, err)
		require.NoError(t, tx.Rollback())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin_error", func(t *testing.T) {
		drv, mock := mockDriver(t)
		mock.ExpectBegin().WillReturnError(assert.AnError)
		_, err := drv.Tx(context.Background())
		assert.ErrorIs(t, err, assert.AnError)
	})
}

func TestEscapeStringValue(t *testing.T) {
	assert.Equal(t, "trades", EscapeStringValue("trades"))
	assert.Equal(t, "o''brien", EscapeStringValue("o'brien"))
	assert.Equal(t, "''''", EscapeStringValue("''"))
	assert.Equal(t, "", EscapeStringValue(""))
}

func TestIsValidIdentifier(t *testing.T) {
	for _, ok := range []string{"trades", "_t", "t1", "designatedTimestamp"} {
		assert.True(t, isValidIdentifier(ok), ok)
	}
	for _, bad := range []string{"", "1t", "t-1", "t.name", "t name", "t'"} {
		assert.False(t, isValidIdentifier(bad), bad)
	}
}
