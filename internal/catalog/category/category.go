package category

import "time"

// Category groups titles by medium (e.g. "Films", "Books", "Music").
//
// A title belongs to at most one category. Categories are referenced by slug
// in the public API; the numeric ID stays internal.
type Category struct {
	ID        int64     `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}
