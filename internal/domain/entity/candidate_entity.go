package entity

import "time"

type CandidateStatus string

const (
	StatusShortlisted         CandidateStatus = "Shortlisted"
	StatusHRScreening         CandidateStatus = "HR Screening"
	StatusTechnicalInterview  CandidateStatus = "Technical Interview"
	StatusManagerialInterview CandidateStatus = "Managerial Interview"
	StatusHired               CandidateStatus = "Hired"
	StatusRejected            CandidateStatus = "Rejected"
	StatusBlacklisted         CandidateStatus = "Blacklisted"
)

// CandidateStatuses lists every status a candidate can hold.
var CandidateStatuses = []CandidateStatus{
	StatusShortlisted,
	StatusHRScreening,
	StatusTechnicalInterview,
	StatusManagerialInterview,
	StatusHired,
	StatusRejected,
	StatusBlacklisted,
}

// PipelineStatuses are the fixed stages reported by the stats pipeline breakdown.
var PipelineStatuses = []CandidateStatus{
	StatusShortlisted,
	StatusHRScreening,
	StatusTechnicalInterview,
	StatusManagerialInterview,
	StatusHired,
}

func (s CandidateStatus) Valid() bool {
	for _, v := range CandidateStatuses {
		if v == s {
			return true
		}
	}
	return false
}

type Candidate struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Email             string          `json:"email"`
	Phone             string          `json:"phone,omitempty"`
	References        string          `json:"references,omitempty"`
	Technology        string          `json:"technology"`
	Level             string          `json:"level"`
	SalaryExpectation *float64        `json:"salaryExpectation,omitempty"`
	Experience        *float64        `json:"experience,omitempty"`
	CVURL             string          `json:"cvUrl"`
	Status            CandidateStatus `json:"status"`
	Skills            []string        `json:"skills"`
	ResumeScore       int             `json:"resumeScore"`
	Letters           []string        `json:"letters"`
	Assessments       []string        `json:"assessments"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

// CandidateFilter narrows candidate listings. Empty fields are ignored.
type CandidateFilter struct {
	Search     string
	Technology string
	Status     string
	IDs        []string
}

// CandidateRef is the populated view of a candidate embedded in other resources.
type CandidateRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// HireSpan is the creation and last-update time of a hired candidate.
type HireSpan struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}

type TechCount struct {
	Technology string `json:"technology"`
	Count      int64  `json:"count"`
}
