package repo

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// toggleQuery flips the (user, artwork) like in one statement: an existing row
// is deleted, otherwise one is inserted. The likes primary key makes a racing
// duplicate insert a no-op instead of an error.
const toggleQuery = `WITH deleted AS (
	DELETE FROM likes WHERE user_id = $1 AND artwork_id = $2 RETURNING 1
), inserted AS (
	INSERT INTO likes (user_id, artwork_id)
	SELECT $1, $2 WHERE NOT EXISTS (SELECT 1 FROM deleted)
	ON CONFLICT (user_id, artwork_id) DO NOTHING
	RETURNING 1
)
SELECT NOT EXISTS (SELECT 1 FROM deleted) AS liked`

// Foreign keys of the likes table, named in the schema migration.
const (
	UserFKey    = "likes_user_id_fkey"
	ArtworkFKey = "likes_artwork_id_fkey"
)

// LikeRepo provides data access for the likes relation.
type LikeRepo struct {
	db *sqlx.DB
}

func NewLikeRepo(db *sqlx.DB) *LikeRepo { return &LikeRepo{db: db} }

// Toggle flips the like and reports whether the pair is liked afterwards.
func (r *LikeRepo) Toggle(ctx context.Context, userID, artworkID int64) (bool, error) {
	var liked bool
	if err := r.db.GetContext(ctx, &liked, toggleQuery, userID, artworkID); err != nil {
		return false, err
	}
	return liked, nil
}

// Count returns the number of users that liked an artwork.
func (r *LikeRepo) Count(ctx context.Context, artworkID int64) (int64, error) {
	var n int64
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM likes WHERE artwork_id = $1`, artworkID); err != nil {
		return 0, err
	}
	return n, nil
}
