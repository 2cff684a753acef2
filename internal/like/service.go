// Package like toggles the like relation between users and artworks.
package like

import (
	"context"
	"errors"
	"fmt"

	"github.com/valmaiimtiyaz/artzybackend/internal/auth"
	likerepo "github.com/valmaiimtiyaz/artzybackend/internal/like/repo"
	"github.com/valmaiimtiyaz/artzybackend/pkg/database"
)

// Repository is implemented by *repo.LikeRepo.
type Repository interface {
	Toggle(ctx context.Context, userID, artworkID int64) (bool, error)
	Count(ctx context.Context, artworkID int64) (int64, error)
}

var (
	// ErrArtworkNotFound is returned when liking an artwork that does not exist.
	ErrArtworkNotFound = errors.New("artwork not found")
	// ErrUserNotFound is returned when the caller's account was deleted while
	// their session token is still valid.
	ErrUserNotFound = errors.New("user not found")
)

// Result is the state of the like after a toggle.
type Result struct {
	Liked     bool
	LikeCount int64
}

type Service struct {
	repo Repository
}

func NewService(r Repository) *Service {
	return &Service{repo: r}
}

// Toggle likes the artwork for the caller, or removes the like when present.
// Any authenticated user may like any artwork, including their own.
func (s *Service) Toggle(ctx context.Context, id auth.Identity, artworkID int64) (*Result, error) {
	liked, err := s.repo.Toggle(ctx, id.UserID, artworkID)
	if err != nil {
		switch {
		case database.IsForeignKeyViolation(err, likerepo.ArtworkFKey):
			return nil, ErrArtworkNotFound
		case database.IsForeignKeyViolation(err, likerepo.UserFKey):
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("toggle like: %w", err)
	}
	count, err := s.repo.Count(ctx, artworkID)
	if err != nil {
		return nil, fmt.Errorf("count likes: %w", err)
	}
	return &Result{Liked: liked, LikeCount: count}, nil
}
