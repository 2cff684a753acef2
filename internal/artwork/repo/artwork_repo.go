package repo

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/valmaiimtiyaz/artzybackend/internal/artwork/entity"
)

const artworkCols = `id, user_id, image, title, artist, year, category_id, description, created_at`

// ArtworkRepo provides data access for artworks. Every owner-scoped statement
// filters on user_id so another user's rows behave as if they did not exist.
type ArtworkRepo struct {
	db *sqlx.DB
}

func NewArtworkRepo(db *sqlx.DB) *ArtworkRepo { return &ArtworkRepo{db: db} }

// Create inserts an artwork owned by ownerID.
func (r *ArtworkRepo) Create(ctx context.Context, ownerID int64, f entity.Fields) (*entity.Artwork, error) {
	const q = `INSERT INTO artworks (user_id, image, title, artist, year, category_id, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
		RETURNING ` + artworkCols
	var a entity.Artwork
	if err := r.db.GetContext(ctx, &a, q, ownerID, f.Image, f.Title, f.Artist, f.Year, f.CategoryID, f.Description); err != nil {
		return nil, err
	}
	return &a, nil
}

// ListByOwner returns the owner's artworks newest first. is_liked is computed
// for viewerID; a nil viewer never matches.
func (r *ArtworkRepo) ListByOwner(ctx context.Context, ownerID int64, viewerID *int64) ([]entity.GalleryItem, error) {
	const q = `SELECT a.id, a.user_id, a.image, a.title, a.artist, a.year, a.category_id, a.description, a.created_at,
		c.name AS category,
		(SELECT COUNT(*) FROM likes l WHERE l.artwork_id = a.id) AS like_count,
		EXISTS (SELECT 1 FROM likes l WHERE l.artwork_id = a.id AND l.user_id = $2) AS is_liked
		FROM artworks a
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC, a.id DESC`
	out := []entity.GalleryItem{}
	if err := r.db.SelectContext(ctx, &out, q, ownerID, viewerID); err != nil {
		return nil, err
	}
	return out, nil
}

// GetOwned returns the artwork only when it belongs to ownerID.
func (r *ArtworkRepo) GetOwned(ctx context.Context, id, ownerID int64) (*entity.Detail, error) {
	const q = `SELECT a.id, a.user_id, a.image, a.title, a.artist, a.year, a.category_id, a.description, a.created_at,
		c.name AS category
		FROM artworks a
		LEFT JOIN categories c ON a.category_id = c.id
		WHERE a.id = $1 AND a.user_id = $2`
	var d entity.Detail
	if err := r.db.GetContext(ctx, &d, q, id, ownerID); err != nil {
		return nil, err
	}
	return &d, nil
}

// Update overwrites the writable fields of an owned artwork.
// sql.ErrNoRows means the id does not exist or is not owned by ownerID.
func (r *ArtworkRepo) Update(ctx context.Context, id, ownerID int64, f entity.Fields) (*entity.Artwork, error) {
	const q = `UPDATE artworks
		SET image = $1, title = $2, artist = $3, year = $4, category_id = $5, description = $6
		WHERE id = $7 AND user_id = $8
		RETURNING ` + artworkCols
	var a entity.Artwork
	if err := r.db.GetContext(ctx, &a, q, f.Image, f.Title, f.Artist, f.Year, f.CategoryID, f.Description, id, ownerID); err != nil {
		return nil, err
	}
	return &a, nil
}

// Delete removes an owned artwork and returns the number of rows deleted.
func (r *ArtworkRepo) Delete(ctx context.Context, id, ownerID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM artworks WHERE id = $1 AND user_id = $2`, id, ownerID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetPublic returns an artwork regardless of owner, with the owner's public fields.
func (r *ArtworkRepo) GetPublic(ctx context.Context, id int64) (*entity.PublicArtwork, error) {
	const q = `SELECT a.id, a.user_id, a.image, a.title, a.artist, a.year, a.category_id, a.description, a.created_at,
		c.name AS category,
		u.username AS artist_username,
		u.profile_pic AS artist_profile_pic,
		(SELECT COUNT(*) FROM likes l WHERE l.artwork_id = a.id) AS like_count
		FROM artworks a
		LEFT JOIN categories c ON a.category_id = c.id
		LEFT JOIN users u ON a.user_id = u.id
		WHERE a.id = $1`
	var p entity.PublicArtwork
	if err := r.db.GetContext(ctx, &p, q, id); err != nil {
		return nil, err
	}
	return &p, nil
}
