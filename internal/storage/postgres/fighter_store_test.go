package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/require"

	"github.com/JakeFAU/fighter-timeline/internal/fighter"
)

func TestFighterStoreGet(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewFighterStoreWithPool(mock, "")
	require.NoError(t, err)

	bio := "[2015-03-01] Pro Debut\nWon by decision."
	mock.ExpectQuery("SELECT id, name, .* FROM fighters_fighter WHERE id = \\$1").
		WithArgs(int64(12)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "nickname", "bio_long"}).
			AddRow(int64(12), "Jon Doe", "The Hammer", bio))

	rec, err := store.Get(context.Background(), 12)
	require.NoError(t, err)
	require.Equal(t, fighter.Record{ID: 12, Name: "Jon Doe", Nickname: "The Hammer", BioLong: bio}, rec)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFighterStoreGetNotFound(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewFighterStoreWithPool(mock, "fighters")
	require.NoError(t, err)

	mock.ExpectQuery("FROM fighters WHERE").WithArgs(int64(99)).WillReturnError(pgx.ErrNoRows)

	_, err = store.Get(context.Background(), 99)
	require.ErrorIs(t, err, fighter.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFighterStoreGetQueryError(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewFighterStoreWithPool(mock, "")
	require.NoError(t, err)

	mock.ExpectQuery("SELECT").WithArgs(int64(1)).WillReturnError(errors.New("connection reset"))

	_, err = store.Get(context.Background(), 1)
	require.ErrorContains(t, err, "query fighter 1")
	require.NotErrorIs(t, err, fighter.ErrNotFound)
}

func TestNewFighterStoreValidation(t *testing.T) {
	t.Parallel()

	_, err := NewFighterStoreWithPool(nil, "")
	require.ErrorContains(t, err, "pool is required")

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	_, err = NewFighterStoreWithPool(mock, "fighters; DROP TABLE x")
	require.ErrorContains(t, err, "invalid table name")

	_, err = NewFighterStore(context.Background(), FighterStoreConfig{})
	require.ErrorContains(t, err, "db.dsn")
}

func TestFighterStorePing(t *testing.T) {
	t.Parallel()

	mock, err := pgxmock.NewPool(pgxmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer mock.Close()

	store, err := NewFighterStoreWithPool(mock, "")
	require.NoError(t, err)

	mock.ExpectPing()
	require.NoError(t, store.Ping(context.Background()))

	mock.ExpectPing().WillReturnError(errors.New("down"))
	require.ErrorContains(t, store.Ping(context.Background()), "ping postgres")
	require.NoError(t, mock.ExpectationsWereMet())
}
