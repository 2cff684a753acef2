package entity

import "time"

// Artwork is a row of the `artworks` table. UserID is the owner and never changes.
type Artwork struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	Image       string    `db:"image" json:"image"`
	Title       string    `db:"title" json:"title"`
	Artist      string    `db:"artist" json:"artist"`
	Year        *int      `db:"year" json:"year"`
	CategoryID  *int64    `db:"category_id" json:"category_id"`
	Description *string   `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Detail is an artwork joined with its category name.
type Detail struct {
	Artwork
	Category *string `db:"category" json:"category"`
}

// GalleryItem is a gallery row annotated for one viewer.
type GalleryItem struct {
	Detail
	LikeCount int64 `db:"like_count" json:"like_count"`
	IsLiked   bool  `db:"is_liked" json:"is_liked"`
}

// PublicArtwork is a single artwork with its owner's public fields.
type PublicArtwork struct {
	Detail
	ArtistUsername   *string `db:"artist_username" json:"artist_username"`
	ArtistProfilePic *string `db:"artist_profile_pic" json:"artist_profile_pic"`
	LikeCount        int64   `db:"like_count" json:"like_count"`
}

// Fields are the writable columns of an artwork.
type Fields struct {
	Image       string
	Title       string
	Artist      string
	Year        *int
	CategoryID  *int64
	Description *string
}
