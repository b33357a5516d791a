package review

import "time"

// Review is a scored opinion a user leaves on a title.
//
// Each user may hold at most one review per title; the database enforces
// this with a unique constraint on (author, title). The title's rating is
// the rounded mean over these scores, computed at read time.
type Review struct {
	ID        int64     `json:"id"`
	TitleID   int64     `json:"-"`
	AuthorID  string    `json:"-"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"pub_date"`
	UpdatedAt time.Time `json:"-"`
}
