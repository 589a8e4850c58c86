package refresh

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWarmer struct {
	calls atomic.Int64
	err   error
	block chan struct{}
}

func (f *fakeWarmer) Warm(ctx context.Context) error {
	f.calls.Add(1)
	if f.block != nil {
		select {
		case <-f.block:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return f.err
}

func TestNewRejectsBadSchedule(t *testing.T) {
	_, err := New("every so often", &fakeWarmer{}, time.Second)
	assert.Error(t, err)
}

func TestRunCountsFailures(t *testing.T) {
	w := &fakeWarmer{err: errors.New("store down")}
	s, err := New("@every 1h", w, time.Second)
	require.NoError(t, err)

	s.run()
	s.run()

	assert.Equal(t, int64(2), w.calls.Load())
	assert.Equal(t, int64(2), s.Runs())
	assert.Equal(t, int64(2), s.Failures())
}

func TestRunAppliesTimeout(t *testing.T) {
	w := &fakeWarmer{block: make(chan struct{})}
	s, err := New("@every 1h", w, 10*time.Millisecond)
	require.NoError(t, err)

	s.run()
	assert.Equal(t, int64(1), s.Failures(), "blocked warm should be cancelled by the timeout")
}

func TestSchedulerRunsOnTicks(t *testing.T) {
	w := &fakeWarmer{}
	s, err := New("@every 1s", w, time.Second)
	require.NoError(t, err)

	s.Start()
	assert.False(t, s.Next().IsZero())

	assert.Eventually(t, func() bool { return w.calls.Load() >= 1 }, 5*time.Second, 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	assert.Zero(t, s.Failures())
}
