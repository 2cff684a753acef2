package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/valmaiimtiyaz/artzybackend/internal/category/entity"
)

// Repo is the repository implementation for categories backed by PostgreSQL.
type Repo struct {
	db *sqlx.DB
}

// NewRepo constructs a new Repo with an existing connection.
func NewRepo(db *sqlx.DB) *Repo {
	return &Repo{db: db}
}

// List returns every category ordered by name.
func (r *Repo) List(ctx context.Context) ([]entity.Category, error) {
	out := []entity.Category{}
	if err := r.db.SelectContext(ctx, &out, `SELECT id, name FROM categories ORDER BY name`); err != nil {
		return nil, err
	}
	return out, nil
}

// IDByName resolves a category name; sql.ErrNoRows when it does not exist.
func (r *Repo) IDByName(ctx context.Context, name string) (int64, error) {
	var id int64
	if err := r.db.GetContext(ctx, &id, `SELECT id FROM categories WHERE name = $1`, name); err != nil {
		return 0, err
	}
	return id, nil
}
