package comment

import "time"

// Comment is a plain-text reply to a review. Unlike reviews, a user may
// leave any number of comments.
type Comment struct {
	ID        int64     `json:"id"`
	ReviewID  int64     `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}
