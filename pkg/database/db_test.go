package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsUniqueViolation(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: "users_email_key"})

	assert.True(t, IsUniqueViolation(err, ""))
	assert.True(t, IsUniqueViolation(err, "users_email_key"))
	assert.False(t, IsUniqueViolation(err, "users_username_key"))
	assert.False(t, IsUniqueViolation(errors.New("boom"), ""))
	assert.False(t, IsForeignKeyViolation(err, ""))
}

func TestIsForeignKeyViolation(t *testing.T) {
	fk := &pq.Error{Code: "23503", Constraint: "likes_user_id_fkey"}
	assert.True(t, IsForeignKeyViolation(fk, ""))
	assert.True(t, IsForeignKeyViolation(fk, "likes_user_id_fkey"))
	assert.False(t, IsForeignKeyViolation(fk, "likes_artwork_id_fkey"))
	assert.False(t, IsForeignKeyViolation(sql.ErrNoRows, ""))
}

func TestQuoteLiteral(t *testing.T) {
	assert.Equal(t, `'UTC'`, quoteLiteral("UTC"))
	assert.Equal(t, `'it''s'`, quoteLiteral("it's"))
}

func TestApplySessionSettings(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`SET TIME ZONE 'Asia/Jakarta'`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`SET client_encoding = 'UTF8'`).WillReturnResult(sqlmock.NewResult(0, 0))

	err = applySessionSettings(context.Background(), db, Config{TimeZone: "Asia/Jakarta", ClientEncoding: "UTF8"})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestApplySessionSettings_Skipped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, applySessionSettings(context.Background(), db, Config{}))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/artzy?sslmode=disable")
	t.Setenv("DATABASE_MAX_CONNS", "0")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@db:5432/artzy?sslmode=disable", cfg.DSN)
	assert.Equal(t, 5, cfg.MaxConns)
}

func TestMigrate(t *testing.T) {
	orig := gooseUp
	t.Cleanup(func() { gooseUp = orig })

	var dir string
	gooseUp = func(ctx context.Context, db *sql.DB, d string) error {
		dir = d
		return nil
	}
	require.NoError(t, Migrate(context.Background(), nil))
	assert.Equal(t, "migrations", dir)

	gooseUp = func(ctx context.Context, db *sql.DB, d string) error { return errors.New("locked") }
	err := Migrate(context.Background(), nil)
	assert.ErrorContains(t, err, "locked")
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "00001_init.sql", entries[0].Name())
}
