package application

import "fmt"

type InterviewType string

const (
	InterviewPhone     InterviewType = "phone"
	InterviewVideo     InterviewType = "video"
	InterviewOnsite    InterviewType = "onsite"
	InterviewTechnical InterviewType = "technical"
	InterviewHR        InterviewType = "hr"
	InterviewFinal     InterviewType = "final"
)

type InterviewResult string

const (
	ResultPending   InterviewResult = "pending"
	ResultCompleted InterviewResult = "completed"
	ResultPassed    InterviewResult = "passed"
	ResultFailed    InterviewResult = "failed"
	ResultOnHold    InterviewResult = "on_hold"
)

var resultTransitions = map[InterviewResult][]InterviewResult{
	ResultPending:   {ResultCompleted},
	ResultCompleted: {ResultPassed, ResultFailed, ResultOnHold},
	ResultOnHold:    {ResultPassed, ResultFailed},
	ResultPassed:    nil,
	ResultFailed:    nil,
}

func ParseInterviewResult(s string) (InterviewResult, error) {
	r := InterviewResult(s)
	if _, ok := resultTransitions[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return r, nil
}

func (r InterviewResult) CanTransition(to InterviewResult) bool {
	for _, n := range resultTransitions[r] {
		if n == to {
			return true
		}
	}
	return false
}

func (r InterviewResult) Transition(to InterviewResult) (InterviewResult, error) {
	if _, ok := resultTransitions[to]; !ok {
		return r, fmt.Errorf("%w: %q", ErrUnknownStatus, to)
	}
	if !r.CanTransition(to) {
		allowed := make([]string, 0, len(resultTransitions[r]))
		for _, n := range resultTransitions[r] {
			allowed = append(allowed, string(n))
		}
		return r, &TransitionError{Kind: "interview", From: string(r), To: string(to), Allowed: allowed}
	}
	return to, nil
}

// ApplicationStatusAfter maps a final interview verdict onto the application.
// ok is false when the verdict does not move the application.
func ApplicationStatusAfter(r InterviewResult, t InterviewType) (Status, bool) {
	switch {
	case r == ResultFailed:
		return StatusRejected, true
	case r == ResultPassed && t == InterviewFinal:
		return StatusOffer, true
	default:
		return "", false
	}
}
