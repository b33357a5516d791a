package genre

import "time"

// Genre is a thematic label attached to titles. A title may carry many genres.
type Genre struct {
	ID        int64     `json:"-"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"-"`
}
