package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitForStatus(t *testing.T, s *Scheduler, name string, want JobStatus) string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		status, message := s.Status(name)
		if status == want {
			return message
		}
		time.Sleep(5 * time.Millisecond)
	}
	status, message := s.Status(name)
	t.Fatalf("job %s never reached %s, last seen %s (%s)", name, want, status, message)
	return ""
}

func TestScheduler_RunAtStartExecutesImmediately(t *testing.T) {
	s := New()
	var runs atomic.Int64
	s.Register(Job{
		Name:       "immediate",
		Interval:   time.Hour,
		RunAtStart: true,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	waitForStatus(t, s, "immediate", StatusFulfill)
	assert.EqualValues(t, 1, runs.Load())
}

func TestScheduler_StatusReportsFailure(t *testing.T) {
	s := New()
	s.Register(Job{
		Name:       "failing",
		Interval:   time.Hour,
		RunAtStart: true,
		Fn: func(ctx context.Context) error {
			return errors.New("backend down")
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)

	message := waitForStatus(t, s, "failing", StatusReject)
	assert.Equal(t, "backend down", message)
}

func TestScheduler_TicksOnInterval(t *testing.T) {
	s := New()
	var runs atomic.Int64
	s.Register(Job{
		Name:     "ticking",
		Interval: 10 * time.Millisecond,
		Fn: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	s.Start(ctx)

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()

	// Let any in-flight run drain before sampling.
	time.Sleep(30 * time.Millisecond)
	stopped := runs.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, runs.Load(), "cancelled scheduler must stop ticking")
}

func TestScheduler_StatusUnknownJob(t *testing.T) {
	status, message := New().Status("nope")
	assert.Equal(t, JobStatus(""), status)
	assert.Empty(t, message)
}
