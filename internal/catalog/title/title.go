// Copyright (c) 2026 Kritika. All rights reserved.
// Author: dev@kritika.app

package title

import (
	"time"

	"github.com/kritikadev/kritika/internal/catalog/category"
	"github.com/kritikadev/kritika/internal/catalog/genre"
)

// Title is a reviewable work in the catalogue: a film, a book, an album.
//
// Rating is the rounded mean of all review scores, computed at read time
// from the current reviews. It is nil until the first review arrives,
// never zero.
type Title struct {
	ID          int64              `json:"id"`
	Name        string             `json:"name"`
	Year        int                `json:"year"`
	Rating      *int               `json:"rating"`
	Description *string            `json:"description"`
	Category    *category.Category `json:"category"`
	Genres      []genre.Genre      `json:"genre"`
	CreatedAt   time.Time          `json:"-"`
	UpdatedAt   time.Time          `json:"-"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered title list query.
//
// Zero values mean "not filtered". Year is a pointer so that year=0 can be
// distinguished from an absent filter.
type Filter struct {
	CategorySlug string

	// GenreSlugs matches titles carrying ANY of the listed genres. The
	// query parameter accepts a comma-separated list.
	GenreSlugs []string

	Name string
	Year *int
}
