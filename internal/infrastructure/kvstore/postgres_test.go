package kvstore

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"lumiere-storefront/pkg/kvstore"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupPostgresMock(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresStore(mock, time.Second), mock
}

func TestPostgresStore_EnsureSchema(t *testing.T) {
	store, mock := setupPostgresMock(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS kv_store")).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, store.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get_Success(t *testing.T) {
	store, mock := setupPostgresMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(getValueSQL)).
		WithArgs("lumiere-wishlist").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow("[]"))

	got, err := store.Get("lumiere-wishlist")
	require.NoError(t, err)
	assert.Equal(t, "[]", got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Get_NotFound(t *testing.T) {
	store, mock := setupPostgresMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(getValueSQL)).
		WithArgs("missing").
		WillReturnError(pgx.ErrNoRows)

	_, err := store.Get("missing")
	assert.ErrorIs(t, err, kvstore.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Set(t *testing.T) {
	store, mock := setupPostgresMock(t)
	mock.ExpectExec(regexp.QuoteMeta(setValueSQL)).
		WithArgs("lumiere-wishlist", "[]").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, store.Set("lumiere-wishlist", "[]"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Set_Error(t *testing.T) {
	store, mock := setupPostgresMock(t)
	mock.ExpectExec(regexp.QuoteMeta(setValueSQL)).
		WithArgs("k", "v").
		WillReturnError(errors.New("disk full"))

	err := store.Set("k", "v")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}
