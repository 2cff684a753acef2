package repo

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"

	"github.com/valmaiimtiyaz/artzybackend/internal/user/entity"
)

// Constraint names from the users table migration.
const (
	EmailConstraint    = "users_email_key"
	UsernameConstraint = "users_username_key"
)

// UserRepo provides data access for users table using sqlx.
// Lookups return sql.ErrNoRows when nothing matches.
type UserRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user row and returns its public projection.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) (*entity.PublicUser, error) {
	const q = `INSERT INTO users (username, email, password)
		VALUES ($1, $2, $3)
		RETURNING id, username, email`
	var out entity.PublicUser
	if err := r.db.GetContext(ctx, &out, q, u.Username, u.Email, u.PasswordHash); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByEmail returns the full user row including the password hash.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	const q = `SELECT id, username, email, password, first_name, last_name, profile_pic, join_date
		FROM users WHERE email = $1`
	var u entity.User
	if err := r.db.GetContext(ctx, &u, q, email); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetIDByUsername resolves a username to its user id.
func (r *UserRepo) GetIDByUsername(ctx context.Context, username string) (int64, error) {
	const q = `SELECT id FROM users WHERE username = $1`
	var id int64
	if err := r.db.GetContext(ctx, &id, q, username); err != nil {
		return 0, err
	}
	return id, nil
}

// GetProfile fetches the profile projection of a user.
func (r *UserRepo) GetProfile(ctx context.Context, id int64) (*entity.Profile, error) {
	const q = `SELECT id, username, email, first_name, last_name, profile_pic, join_date
		FROM users WHERE id = $1`
	var p entity.Profile
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile overwrites every mutable profile field of the given user.
func (r *UserRepo) UpdateProfile(ctx context.Context, id int64, in entity.ProfileUpdate) (*entity.Profile, error) {
	const q = `UPDATE users
		SET first_name = $1, last_name = $2, username = $3, email = $4, profile_pic = $5
		WHERE id = $6
		RETURNING id, username, email, first_name, last_name, profile_pic, join_date`
	var p entity.Profile
	if err := r.db.GetContext(ctx, &p, q, in.FirstName, in.LastName, in.Username, in.Email, in.ProfilePic, id); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePassword replaces the password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, id int64, hash string) error {
	const q = `UPDATE users SET password = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, hash)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
