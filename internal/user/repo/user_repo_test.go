package repo

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valmaiimtiyaz/artzybackend/internal/user/entity"
)

func newRepoWithMock(t *testing.T) (*UserRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepo(sqlx.NewDb(db, "postgres")), mock
}

var profileCols = []string{"id", "username", "email", "first_name", "last_name", "profile_pic", "join_date"}

func TestCreate(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^INSERT\s+INTO\s+users\s*\(username,\s*email,\s*password\).*RETURNING\s+id,\s*username,\s*email$`).
		WithArgs("alice", "alice@example.com", "hash").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email"}).AddRow(1, "alice", "alice@example.com"))

	got, err := repo.Create(context.Background(), &entity.User{Username: "alice", Email: "alice@example.com", PasswordHash: "hash"})
	require.NoError(t, err)
	assert.Equal(t, &entity.PublicUser{ID: 1, Username: "alice", Email: "alice@example.com"}, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_NotFound(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`(?s)^SELECT .* FROM users WHERE email = \$1$`).
		WithArgs("ghost@example.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByEmail_Found(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	joined := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	mock.ExpectQuery(`(?s)^SELECT id, username, email, password, .* FROM users WHERE email = \$1$`).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "email", "password", "first_name", "last_name", "profile_pic", "join_date"}).
			AddRow(1, "alice", "alice@example.com", "hash", "Alice", nil, nil, joined))

	u, err := repo.GetByEmail(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "hash", u.PasswordHash)
	require.NotNil(t, u.FirstName)
	assert.Equal(t, "Alice", *u.FirstName)
	assert.Nil(t, u.LastName)
	assert.Equal(t, joined, u.JoinDate)
}

func TestGetIDByUsername(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectQuery(`^SELECT id FROM users WHERE username = \$1$`).
		WithArgs("alice").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	id, err := repo.GetIDByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}

func TestUpdateProfile_ScopedToCaller(t *testing.T) {
	repo, mock := newRepoWithMock(t)
	first := "Alice"

	mock.ExpectQuery(`(?s)^UPDATE users\s+SET first_name = \$1, last_name = \$2, username = \$3, email = \$4, profile_pic = \$5\s+WHERE id = \$6\s+RETURNING .*$`).
		WithArgs(&first, nil, "alice", "alice@example.com", nil, int64(3)).
		WillReturnRows(sqlmock.NewRows(profileCols).AddRow(3, "alice", "alice@example.com", "Alice", nil, nil, time.Now()))

	p, err := repo.UpdateProfile(context.Background(), 3, entity.ProfileUpdate{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: &first,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), p.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdatePassword(t *testing.T) {
	repo, mock := newRepoWithMock(t)

	mock.ExpectExec(`^UPDATE users SET password = \$2 WHERE id = \$1$`).
		WithArgs(int64(3), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdatePassword(context.Background(), 3, "newhash"))

	mock.ExpectExec(`^UPDATE users SET password = \$2 WHERE id = \$1$`).
		WithArgs(int64(4), "newhash").
		WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.UpdatePassword(context.Background(), 4, "newhash"), sql.ErrNoRows)

	mock.ExpectExec(`^UPDATE users SET password`).
		WillReturnError(errors.New("db down"))
	assert.Error(t, repo.UpdatePassword(context.Background(), 5, "newhash"))
}
