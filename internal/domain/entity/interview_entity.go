package entity

import "time"

type InterviewStage string

const (
	StageShortlisted         InterviewStage = "Shortlisted"
	StageHRScreening         InterviewStage = "HR Screening"
	StageTechnicalInterview  InterviewStage = "Technical Interview"
	StageManagerialInterview InterviewStage = "Managerial Interview"
	StageOffer               InterviewStage = "Offer"
)

var InterviewStages = []InterviewStage{
	StageShortlisted,
	StageHRScreening,
	StageTechnicalInterview,
	StageManagerialInterview,
	StageOffer,
}

func (s InterviewStage) Valid() bool {
	for _, v := range InterviewStages {
		if v == s {
			return true
		}
	}
	return false
}

// InterviewSlot is the length of a booked interview.
const InterviewSlot = 30 * time.Minute

type Interview struct {
	ID               string         `json:"id"`
	CandidateID      string         `json:"-"`
	Candidate        *CandidateRef  `json:"candidate"`
	PipelineStage    InterviewStage `json:"pipelineStage"`
	InterviewerEmail string         `json:"interviewerEmail"`
	Date             time.Time      `json:"date"`
	MeetLink         string         `json:"meetLink"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}
