package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestTokenRepo_ValidateRefresh(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewTokenRepo(db)
	now := time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC)
	cols := []string{"user_id", "expires_at", "revoked_at"}

	mock.ExpectQuery(`FROM refresh_tokens WHERE token_hash=\?`).WithArgs("live").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(7, now.Add(time.Hour), nil))
	mock.ExpectQuery(`FROM refresh_tokens WHERE token_hash=\?`).WithArgs("old").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(7, now, nil))
	mock.ExpectQuery(`FROM refresh_tokens WHERE token_hash=\?`).WithArgs("revoked").
		WillReturnRows(sqlmock.NewRows(cols).AddRow(7, now.Add(time.Hour), now))
	mock.ExpectQuery(`FROM refresh_tokens WHERE token_hash=\?`).WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(cols))

	uid, err := repo.ValidateRefresh(context.Background(), "live", now)
	require.NoError(t, err)
	assert.Equal(t, uint64(7), uid)
	for _, h := range []string{"old", "revoked", "missing"} {
		_, err := repo.ValidateRefresh(context.Background(), h, now)
		assert.ErrorIs(t, err, ErrTokenInvalid, h)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepo_CreateDuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewUserRepo(db)

	mock.ExpectExec(`INSERT INTO users`).
		WithArgs("lu@example.com", sqlmock.AnyArg(), "ORGANIZER", "Lu", "", "").
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

	in := NewUser{Email: " Lu@Example.com ", Password: "secret123", Role: "ORGANIZER", FullName: "Lu"}
	id, err := repo.Create(context.Background(), in, bcrypt.MinCost)
	require.NoError(t, err)
	assert.Equal(t, uint64(12), id)

	_, err = repo.Create(context.Background(), in, bcrypt.MinCost)
	assert.ErrorIs(t, err, ErrEmailExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}
