package artwork

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/valmaiimtiyaz/artzybackend/internal/artwork/entity"
	"github.com/valmaiimtiyaz/artzybackend/internal/auth"
	"github.com/valmaiimtiyaz/artzybackend/internal/category"
)

// Repository is the datastore surface for artworks; *repo.ArtworkRepo implements it.
type Repository interface {
	Create(ctx context.Context, ownerID int64, f entity.Fields) (*entity.Artwork, error)
	ListByOwner(ctx context.Context, ownerID int64, viewerID *int64) ([]entity.GalleryItem, error)
	GetOwned(ctx context.Context, id, ownerID int64) (*entity.Detail, error)
	Update(ctx context.Context, id, ownerID int64, f entity.Fields) (*entity.Artwork, error)
	Delete(ctx context.Context, id, ownerID int64) (int64, error)
	GetPublic(ctx context.Context, id int64) (*entity.PublicArtwork, error)
}

// CategoryResolver maps category names to ids.
type CategoryResolver interface {
	Resolve(ctx context.Context, name string) (int64, error)
}

// UserLookup resolves usernames for the public gallery.
type UserLookup interface {
	GetIDByUsername(ctx context.Context, username string) (int64, error)
}

var (
	ErrNotFound        = errors.New("artwork not found")
	ErrInvalidCategory = errors.New("category invalid")
	ErrUserNotFound    = errors.New("user not found")
)

// Input is the caller-supplied artwork payload; Category is a category name.
type Input struct {
	Image       string
	Title       string
	Artist      string
	Year        *int
	Category    string
	Description *string
}

// Service implements the owner-scoped artwork operations and the public reads.
type Service struct {
	repo       Repository
	categories CategoryResolver
	users      UserLookup
	logger     *zap.SugaredLogger
}

func NewService(r Repository, categories CategoryResolver, users UserLookup, logger *zap.SugaredLogger) *Service {
	return &Service{repo: r, categories: categories, users: users, logger: logger}
}

func (in Input) fields(categoryID *int64) entity.Fields {
	f := entity.Fields{
		Image:      strings.TrimSpace(in.Image),
		Title:      strings.TrimSpace(in.Title),
		Artist:     strings.TrimSpace(in.Artist),
		CategoryID: categoryID,
	}
	// zero year and blank description are stored as NULL
	if in.Year != nil && *in.Year != 0 {
		y := *in.Year
		f.Year = &y
	}
	if in.Description != nil && strings.TrimSpace(*in.Description) != "" {
		d := *in.Description
		f.Description = &d
	}
	return f
}

// Create stores a new artwork owned by the caller. Unknown categories are rejected.
func (s *Service) Create(ctx context.Context, id auth.Identity, in Input) (*entity.GalleryItem, error) {
	categoryID, err := s.categories.Resolve(ctx, in.Category)
	if err != nil {
		if errors.Is(err, category.ErrNotFound) {
			return nil, ErrInvalidCategory
		}
		return nil, err
	}
	a, err := s.repo.Create(ctx, id.UserID, in.fields(&categoryID))
	if err != nil {
		return nil, fmt.Errorf("create artwork: %w", err)
	}
	name := in.Category
	return &entity.GalleryItem{Detail: entity.Detail{Artwork: *a, Category: &name}}, nil
}

// ListOwn returns the caller's artworks newest first.
func (s *Service) ListOwn(ctx context.Context, id auth.Identity) ([]entity.GalleryItem, error) {
	viewer := id.UserID
	items, err := s.repo.ListByOwner(ctx, id.UserID, &viewer)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}
	return items, nil
}

// GetOwn returns an artwork owned by the caller. Artworks of other users are
// reported as not found.
func (s *Service) GetOwn(ctx context.Context, id auth.Identity, artworkID int64) (*entity.Detail, error) {
	d, err := s.repo.GetOwned(ctx, artworkID, id.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get artwork: %w", err)
	}
	return d, nil
}

// Update replaces an owned artwork's fields. Unlike Create, an unknown
// category clears the category instead of failing.
func (s *Service) Update(ctx context.Context, id auth.Identity, artworkID int64, in Input) (*entity.Detail, error) {
	var categoryID *int64
	var categoryName *string
	cid, err := s.categories.Resolve(ctx, in.Category)
	switch {
	case err == nil:
		categoryID = &cid
		name := in.Category
		categoryName = &name
	case errors.Is(err, category.ErrNotFound):
		s.logger.Debugw("unknown category on update, clearing", "artwork_id", artworkID, "category", in.Category)
	default:
		return nil, err
	}

	a, err := s.repo.Update(ctx, artworkID, id.UserID, in.fields(categoryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update artwork: %w", err)
	}
	return &entity.Detail{Artwork: *a, Category: categoryName}, nil
}

// Delete removes an owned artwork. Deleting nothing is not an error.
func (s *Service) Delete(ctx context.Context, id auth.Identity, artworkID int64) error {
	n, err := s.repo.Delete(ctx, artworkID, id.UserID)
	if err != nil {
		return fmt.Errorf("delete artwork: %w", err)
	}
	if n == 0 {
		s.logger.Debugw("delete matched no artwork", "artwork_id", artworkID, "user_id", id.UserID)
	}
	return nil
}

// ListByUsername returns a user's public gallery; viewerID may be nil for
// anonymous callers, in which case no row is marked as liked.
func (s *Service) ListByUsername(ctx context.Context, username string, viewerID *int64) ([]entity.GalleryItem, error) {
	ownerID, err := s.users.GetIDByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("lookup username: %w", err)
	}
	items, err := s.repo.ListByOwner(ctx, ownerID, viewerID)
	if err != nil {
		return nil, fmt.Errorf("list artworks: %w", err)
	}
	return items, nil
}

// GetPublic returns any artwork by id with its owner's public fields.
func (s *Service) GetPublic(ctx context.Context, artworkID int64) (*entity.PublicArtwork, error) {
	p, err := s.repo.GetPublic(ctx, artworkID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get public artwork: %w", err)
	}
	return p, nil
}
