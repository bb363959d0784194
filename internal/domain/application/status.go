package application

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrUnknownStatus     = errors.New("unknown status")
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusSubmitted Status = "submitted"
	StatusScreening Status = "screening"
	StatusInterview Status = "interview"
	StatusOffer     Status = "offer"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusWithdrawn Status = "withdrawn"
)

var statusTransitions = map[Status][]Status{
	StatusDraft:     {StatusSubmitted, StatusWithdrawn},
	StatusSubmitted: {StatusScreening, StatusRejected, StatusWithdrawn},
	StatusScreening: {StatusInterview, StatusRejected, StatusWithdrawn},
	StatusInterview: {StatusOffer, StatusRejected, StatusWithdrawn},
	StatusOffer:     {StatusAccepted, StatusRejected, StatusWithdrawn},
	StatusAccepted:  nil,
	StatusRejected:  nil,
	StatusWithdrawn: nil,
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := statusTransitions[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

func (s Status) Terminal() bool {
	next, ok := statusTransitions[s]
	return ok && len(next) == 0
}

// Next lists the statuses reachable from s in one step.
func (s Status) Next() []Status {
	return append([]Status(nil), statusTransitions[s]...)
}

func (s Status) CanTransition(to Status) bool {
	for _, n := range statusTransitions[s] {
		if n == to {
			return true
		}
	}
	return false
}

// TransitionError reports a rejected state change. Same-state moves are
// rejected too.
type TransitionError struct {
	Kind    string
	From    string
	To      string
	Allowed []string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s is not allowed", e.Kind, e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

func (s Status) Transition(to Status) (Status, error) {
	if _, ok := statusTransitions[to]; !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !s.CanTransition(to) {
		next := s.Next()
		allowed := make([]string, 0, len(next))
		for _, n := range next {
			allowed = append(allowed, string(n))
		}
		return s, &TransitionError{Kind: "application", From: string(s), To: string(to), Allowed: allowed}
	}
	return to, nil
}
