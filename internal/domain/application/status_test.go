package application

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_HappyPath(t *testing.T) {
	path := []Status{StatusSubmitted, StatusScreening, StatusInterview, StatusOffer, StatusAccepted}
	cur := StatusDraft
	for _, next := range path {
		var err error
		cur, err = cur.Transition(next)
		require.NoError(t, err)
	}
	assert.Equal(t, StatusAccepted, cur)
	assert.True(t, cur.Terminal())
}

func TestStatus_IllegalTransitions(t *testing.T) {
	tests := []struct {
		from, to Status
	}{
		{StatusDraft, StatusOffer},
		{StatusSubmitted, StatusAccepted},
		{StatusInterview, StatusScreening},
		{StatusRejected, StatusAccepted},
		{StatusAccepted, StatusWithdrawn},
		{StatusScreening, StatusScreening},
	}
	for _, tt := range tests {
		got, err := tt.from.Transition(tt.to)
		require.Error(t, err, "%s -> %s", tt.from, tt.to)
		assert.True(t, errors.Is(err, ErrIllegalTransition))
		assert.Equal(t, tt.from, got)

		var tErr *TransitionError
		require.True(t, errors.As(err, &tErr))
		assert.Equal(t, string(tt.from), tErr.From)
		assert.Equal(t, string(tt.to), tErr.To)
	}
}

func TestStatus_TransitionErrorListsNext(t *testing.T) {
	_, err := StatusScreening.Transition(StatusOffer)

	var tErr *TransitionError
	require.True(t, errors.As(err, &tErr))
	assert.Equal(t, []string{"interview", "rejected", "withdrawn"}, tErr.Allowed)
	assert.Equal(t, []Status{StatusInterview, StatusRejected, StatusWithdrawn}, StatusScreening.Next())

	_, err = StatusAccepted.Transition(StatusOffer)
	require.True(t, errors.As(err, &tErr))
	assert.Empty(t, tErr.Allowed)
}

func TestStatus_WithdrawFromAnyOpenState(t *testing.T) {
	for _, s := range []Status{StatusDraft, StatusSubmitted, StatusScreening, StatusInterview, StatusOffer} {
		assert.True(t, s.CanTransition(StatusWithdrawn), string(s))
		assert.False(t, s.Terminal(), string(s))
	}
}

func TestParseStatus(t *testing.T) {
	s, err := ParseStatus("screening")
	require.NoError(t, err)
	assert.Equal(t, StatusScreening, s)

	_, err = ParseStatus("pending")
	assert.ErrorIs(t, err, ErrUnknownStatus)

	_, err = StatusDraft.Transition("hired")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestInterviewResult_Transitions(t *testing.T) {
	r, err := ResultPending.Transition(ResultCompleted)
	require.NoError(t, err)
	r, err = r.Transition(ResultOnHold)
	require.NoError(t, err)
	r, err = r.Transition(ResultPassed)
	require.NoError(t, err)
	assert.Equal(t, ResultPassed, r)

	_, err = ResultPending.Transition(ResultPassed)
	assert.ErrorIs(t, err, ErrIllegalTransition)
	_, err = ResultFailed.Transition(ResultPassed)
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestApplicationStatusAfter(t *testing.T) {
	s, ok := ApplicationStatusAfter(ResultFailed, InterviewPhone)
	assert.True(t, ok)
	assert.Equal(t, StatusRejected, s)

	s, ok = ApplicationStatusAfter(ResultPassed, InterviewFinal)
	assert.True(t, ok)
	assert.Equal(t, StatusOffer, s)

	_, ok = ApplicationStatusAfter(ResultPassed, InterviewTechnical)
	assert.False(t, ok)
}
