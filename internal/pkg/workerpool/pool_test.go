package workerpool

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEach_RunsEveryIndex(t *testing.T) {
	var seen [100]atomic.Int32
	err := Each(context.Background(), 8, len(seen), func(_ context.Context, i int) error {
		seen[i].Add(1)
		return nil
	})
	require.NoError(t, err)
	for i := range seen {
		assert.Equal(t, int32(1), seen[i].Load(), "index %d", i)
	}
}

func TestEach_ReturnsFirstError(t *testing.T) {
	boom := errors.New("boom")
	err := Each(context.Background(), 4, 50, func(_ context.Context, i int) error {
		if i == 7 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}

func TestEach_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Each(ctx, 4, 50, func(context.Context, int) error { return nil })
	assert.ErrorIs(t, err, context.Canceled)
}

func TestEach_ZeroItems(t *testing.T) {
	called := false
	err := Each(context.Background(), 4, 0, func(context.Context, int) error {
		called = true
		return nil
	})
	assert.NoError(t, err)
	assert.False(t, called)
}

func TestPool_SubmitAndRun(t *testing.T) {
	p := New(2, 4)
	results := p.Run(context.Background())

	var n atomic.Int32
	for i := 0; i < 4; i++ {
		require.True(t, p.Submit(context.Background(), func(context.Context) error {
			n.Add(1)
			return nil
		}))
	}
	p.Close()

	count := 0
	for range results {
		count++
	}
	assert.Equal(t, 4, count)
	assert.Equal(t, int32(4), n.Load())
}
