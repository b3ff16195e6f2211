package entity

import "time"

type Assessment struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidate"`
	Title       string    `json:"title"`
	FileURL     string    `json:"fileUrl"`
	Remarks     string    `json:"remarks,omitempty"`
	Score       float64   `json:"score"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
