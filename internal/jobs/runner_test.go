package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRunnerSurvivesErrorsAndPanics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls int32
	New(ctx, nil).Every(5*time.Millisecond, "test_job", func(context.Context) error {
		switch atomic.AddInt32(&calls, 1) % 3 {
		case 0:
			return errors.New("boom")
		case 2:
			panic("broken sheet")
		}
		return nil
	})

	assert.Eventually(t, func() bool { return atomic.LoadInt32(&calls) >= 6 }, time.Second, 5*time.Millisecond)
	cancel()
	time.Sleep(20 * time.Millisecond)

	runs := testutil.ToFloat64(jobRuns.WithLabelValues("test_job"))
	assert.GreaterOrEqual(t, runs, float64(6))
	assert.GreaterOrEqual(t, testutil.ToFloat64(jobErrors.WithLabelValues("test_job")), float64(4))

	stopped := atomic.LoadInt32(&calls)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&calls))
}
