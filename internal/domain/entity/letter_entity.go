package entity

import "time"

type LetterType string

const (
	LetterOffer     LetterType = "offer"
	LetterRejection LetterType = "rejection"
)

func (t LetterType) Valid() bool { return t == LetterOffer || t == LetterRejection }

type Letter struct {
	ID                 string     `json:"id"`
	CandidateID        string     `json:"candidate"`
	TemplateType       LetterType `json:"templateType"`
	Position           string     `json:"position"`
	Technology         string     `json:"technology"`
	StartingDate       *time.Time `json:"startingDate,omitempty"`
	Salary             float64    `json:"salary"`
	ProbationDate      *time.Time `json:"probationDate,omitempty"`
	AcceptanceDeadline *time.Time `json:"acceptanceDeadline,omitempty"`
	SentTo             string     `json:"sentTo"`
	SentAt             *time.Time `json:"sentAt,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}
