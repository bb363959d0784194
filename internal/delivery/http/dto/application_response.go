package dto

import (
	"time"

	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

type RecordInterviewResultRequest struct {
	Result string `json:"result"`
}

type ApplicationResponse struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"job_id"`
	CandidateID uuid.UUID `json:"candidate_id"`
	Status      string    `json:"status"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type InterviewResponse struct {
	ID            uuid.UUID `json:"id"`
	ApplicationID uuid.UUID `json:"application_id"`
	Type          string    `json:"interview_type"`
	Result        string    `json:"result"`
	ScheduledAt   time.Time `json:"scheduled_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromApplication(a repository.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          a.ID,
		JobID:       a.JobID,
		CandidateID: a.CandidateID,
		Status:      string(a.Status),
		UpdatedAt:   a.UpdatedAt.UTC(),
	}
}

func FromInterview(iv repository.Interview) InterviewResponse {
	return InterviewResponse{
		ID:            iv.ID,
		ApplicationID: iv.ApplicationID,
		Type:          string(iv.Type),
		Result:        string(iv.Result),
		ScheduledAt:   iv.ScheduledAt.UTC(),
		UpdatedAt:     iv.UpdatedAt.UTC(),
	}
}
