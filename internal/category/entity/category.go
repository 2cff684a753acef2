package entity

// Category is a fixed lookup row artworks reference by id.
type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
