package category

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/valmaiimtiyaz/artzybackend/internal/category/entity"
)

// Repository is implemented by *repo.Repo.
type Repository interface {
	List(ctx context.Context) ([]entity.Category, error)
	IDByName(ctx context.Context, name string) (int64, error)
}

// ErrNotFound is returned when a category name does not resolve.
var ErrNotFound = errors.New("category not found")

// Service encapsulates category lookups.
type Service struct {
	repo Repository
}

// NewService constructs a Service with the provided repository.
func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// List returns all categories.
func (s *Service) List(ctx context.Context) ([]entity.Category, error) {
	return s.repo.List(ctx)
}

// Resolve maps a category name to its id.
func (s *Service) Resolve(ctx context.Context, name string) (int64, error) {
	if name == "" {
		return 0, ErrNotFound
	}
	id, err := s.repo.IDByName(ctx, name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("resolve category: %w", err)
	}
	return id, nil
}
