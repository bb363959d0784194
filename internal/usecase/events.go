package usecase

import "github.com/google/uuid"

type EventPublisher interface {
	MatchRecorded(recordID, jobID, candidateID uuid.UUID, overall float64, recommendation string)
	ApplicationStatusChanged(applicationID, jobID uuid.UUID, from, to string)
}

type nopPublisher struct{}

func (nopPublisher) MatchRecorded(uuid.UUID, uuid.UUID, uuid.UUID, float64, string) {}
func (nopPublisher) ApplicationStatusChanged(uuid.UUID, uuid.UUID, string, string)  {}

func publisherOrNop(p EventPublisher) EventPublisher {
	if p == nil {
		return nopPublisher{}
	}
	return p
}
