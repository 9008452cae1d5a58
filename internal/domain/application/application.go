package application

import (
	"time"

	"jobpulse/internal/common"
)

type Status string

const (
	StatusPending     Status = "pending"
	StatusReviewed    Status = "reviewed"
	StatusShortlisted Status = "shortlisted"
	StatusInterviewed Status = "interviewed"
	StatusRejected    Status = "rejected"
	StatusHired       Status = "hired"
)

type Application struct {
	ID          common.UUID `json:"id"`
	PostingID   common.UUID `json:"posting_id"`
	CandidateID common.UUID `json:"candidate_id"`
	Status      Status      `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
