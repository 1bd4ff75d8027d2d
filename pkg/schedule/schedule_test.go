package schedule

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCron(t *testing.T) {
	spec, err := parseCron("*/15 8-18 * * 1,3,5")
	require.NoError(t, err)

	at := func(s string) time.Time {
		ts, err := time.Parse(time.RFC3339, s)
		require.NoError(t, err)
		return ts
	}

	assert.True(t, spec.matches(at("2026-10-14T08:30:00Z")))  // Wednesday
	assert.False(t, spec.matches(at("2026-10-14T08:31:00Z"))) // off step
	assert.False(t, spec.matches(at("2026-10-14T19:00:00Z"))) // after hours
	assert.False(t, spec.matches(at("2026-10-13T09:00:00Z"))) // Tuesday
}

func TestParseCronRejectsBadExpressions(t *testing.T) {
	for _, expr := range []string{"", "* * * *", "61 * * * *", "*/0 * * * *", "5-1 * * * *", "a * * * *"} {
		_, err := parseCron(expr)
		assert.Error(t, err, expr)
	}
}

func TestCronFiresOncePerMinute(t *testing.T) {
	s := New()
	var runs atomic.Int32
	require.NoError(t, s.Cron("hourly", "0 * * * *", func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	base := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	for sec := 0; sec < 60; sec++ {
		s.dispatchDue(context.Background(), base.Add(time.Duration(sec)*time.Second))
		s.wg.Wait()
	}
	s.dispatchDue(context.Background(), base.Add(time.Hour))
	s.wg.Wait()

	assert.EqualValues(t, 2, runs.Load())
}

func TestEveryRespectsInterval(t *testing.T) {
	s := New()
	var runs atomic.Int32
	require.NoError(t, s.Every("poll", time.Minute, func(context.Context) error {
		runs.Add(1)
		return nil
	}))

	base := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	for _, offset := range []time.Duration{0, 30 * time.Second, time.Minute, 90 * time.Second} {
		s.dispatchDue(context.Background(), base.Add(offset))
		s.wg.Wait()
	}
	assert.EqualValues(t, 2, runs.Load())
}

func TestRunningEntryIsNotRestarted(t *testing.T) {
	s := New()
	release := make(chan struct{})
	var runs atomic.Int32
	require.NoError(t, s.Every("slow", time.Second, func(context.Context) error {
		runs.Add(1)
		<-release
		return nil
	}))

	base := time.Date(2026, 10, 14, 10, 0, 0, 0, time.UTC)
	s.dispatchDue(context.Background(), base)
	s.dispatchDue(context.Background(), base.Add(5*time.Second))
	close(release)
	s.wg.Wait()

	assert.EqualValues(t, 1, runs.Load())
}

func TestList(t *testing.T) {
	s := New()
	require.NoError(t, s.Cron("alerts:generate", "0 * * * *", func(context.Context) error { return nil }))
	assert.Equal(t, []string{"alerts:generate  [0 * * * *]"}, s.List())
}
