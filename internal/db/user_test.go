package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spok95/university-assistant-bot/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	raw, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = raw.Close() })
	return sqlx.NewDb(raw, "postgres"), mock
}

var profileCols = []string{"user_id", "username", "first_name", "last_name", "phone_number", "created_at", "last_active"}

func TestUpsertUser(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectExec(`INSERT INTO users .* ON CONFLICT \(user_id\) DO UPDATE`).
		WithArgs(int64(42), "aliev", "Алихан", "", "+77051234567").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := UpsertUser(context.Background(), database, models.UserProfile{
		UserID: 42, Username: "aliev", FirstName: "Алихан", PhoneNumber: "+77051234567",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUser(t *testing.T) {
	database, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM users WHERE user_id = \$1`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows(profileCols).
			AddRow(int64(42), "aliev", "Алихан", "", "+77051234567", now, now))

	u, err := GetUser(context.Background(), database, 42)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "+77051234567", u.PhoneNumber)
	assert.True(t, u.Authenticated())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserAbsent(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectQuery(`FROM users WHERE user_id`).WithArgs(int64(7)).WillReturnError(sql.ErrNoRows)

	u, err := GetUser(context.Background(), database, 7)
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.False(t, u.Authenticated())
}

func TestTouchUser(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectExec(`UPDATE users SET last_active = now\(\) WHERE user_id = \$1`).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, TouchUser(context.Background(), database, 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListUsers(t *testing.T) {
	database, mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery(`SELECT .* FROM users ORDER BY created_at`).
		WillReturnRows(sqlmock.NewRows(profileCols).
			AddRow(int64(1), "", "Аня", "", "+77010000001", now, now).
			AddRow(int64(2), "bek", "Бек", "Беков", "", now, now))

	users, err := ListUsers(context.Background(), database)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "Бек Беков", users[1].DisplayName())
	assert.False(t, users[1].Authenticated())
}

func TestListUsersByIDsEmpty(t *testing.T) {
	database, mock := newMock(t)
	users, err := ListUsersByIDs(context.Background(), database, nil)
	require.NoError(t, err)
	assert.Nil(t, users)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveKlimovResult(t *testing.T) {
	database, mock := newMock(t)
	mock.ExpectQuery(`INSERT INTO klimov_results .* RETURNING result_id`).
		WithArgs(int64(42), 3, 1, 0, 2, 0, "nature").
		WillReturnRows(sqlmock.NewRows([]string{"result_id"}).AddRow(int64(9)))

	id, err := SaveKlimovResult(context.Background(), database, models.KlimovResult{
		UserID: 42, NatureScore: 3, TechScore: 1, SignScore: 2, RecommendedCategory: "nature",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}
