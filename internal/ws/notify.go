package ws

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EventMatchRecorded     = "match_recorded"
	EventApplicationStatus = "application_status_changed"
)

type MatchRecordedEvent struct {
	Type           string    `json:"type"`
	RecordID       uuid.UUID `json:"record_id"`
	JobID          uuid.UUID `json:"job_id"`
	CandidateID    uuid.UUID `json:"candidate_id"`
	OverallScore   float64   `json:"overall_score"`
	Recommendation string    `json:"recommendation"`
	Timestamp      string    `json:"timestamp"`
}

type ApplicationStatusEvent struct {
	Type          string    `json:"type"`
	ApplicationID uuid.UUID `json:"application_id"`
	JobID         uuid.UUID `json:"job_id"`
	From          string    `json:"from"`
	To            string    `json:"to"`
	Timestamp     string    `json:"timestamp"`
}

// Notifier publishes domain events on the hub. Events are topic-scoped by
// job id so a recruiter can watch one posting.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func JobTopic(jobID uuid.UUID) string {
	return "job:" + jobID.String()
}

func (n *Notifier) MatchRecorded(recordID, jobID, candidateID uuid.UUID, overall float64, recommendation string) {
	if n == nil || n.hub == nil {
		return
	}
	n.publish(JobTopic(jobID), MatchRecordedEvent{
		Type:           EventMatchRecorded,
		RecordID:       recordID,
		JobID:          jobID,
		CandidateID:    candidateID,
		OverallScore:   overall,
		Recommendation: recommendation,
		Timestamp:      n.now().UTC().Format(time.RFC3339),
	})
}

func (n *Notifier) ApplicationStatusChanged(applicationID, jobID uuid.UUID, from, to string) {
	if n == nil || n.hub == nil {
		return
	}
	n.publish(JobTopic(jobID), ApplicationStatusEvent{
		Type:          EventApplicationStatus,
		ApplicationID: applicationID,
		JobID:         jobID,
		From:          from,
		To:            to,
		Timestamp:     n.now().UTC().Format(time.RFC3339),
	})
}

func (n *Notifier) publish(topic string, evt any) {
	b, err := json.Marshal(evt)
	if err != nil {
		n.hub.log.Warn("ws event encode failed")
		return
	}
	n.hub.Broadcast(topic, b)
}
