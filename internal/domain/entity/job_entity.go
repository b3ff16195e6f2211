package entity

import "time"

type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobRunning   JobStatus = "running"
	JobDone      JobStatus = "done"
	JobFailed    JobStatus = "failed"
	JobCancelled JobStatus = "cancelled"
)

// JobInterviewReminder fires once, ahead of an interview, to remind both parties.
const JobInterviewReminder = "interview_reminder"

// ScheduledJob is a durable unit of deferred work picked up by the sweeper.
type ScheduledJob struct {
	ID          string
	Kind        string
	RefID       string
	RunAt       time.Time
	Payload     map[string]string
	Status      JobStatus
	Attempts    int
	LastError   string
	LockedUntil *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
