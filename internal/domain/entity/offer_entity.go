package entity

import "time"

type OfferTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subject   string    `json:"subject"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Offer is a template-based offer sent to a candidate.
type Offer struct {
	ID           string            `json:"id"`
	CandidateID  string            `json:"candidate"`
	TemplateID   string            `json:"template"`
	Placeholders map[string]string `json:"placeholders"`
	Subject      string            `json:"subject"`
	Body         string            `json:"body"`
	SentTo       string            `json:"sentTo"`
	Date         time.Time         `json:"date"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}
