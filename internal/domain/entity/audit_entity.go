package entity

import "time"

// AuditLog records a security-relevant account action.
type AuditLog struct {
	UserID    string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
	CreatedAt time.Time
}
