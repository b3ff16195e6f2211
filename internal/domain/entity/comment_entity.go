package entity

import "time"

type Comment struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate"`
	UserID      string    `json:"user"`
	AuthorName  string    `json:"authorName,omitempty"`
	Content     string    `json:"content"`
	Datetime    time.Time `json:"datetime"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
