package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

type countingGenerator struct {
	calls      atomic.Int32
	weeksAhead atomic.Int32
}

func (g *countingGenerator) GenerateSessionsForAllSeries(_ context.Context, weeksAhead int) error {
	g.weeksAhead.Store(int32(weeksAhead))
	g.calls.Add(1)
	return nil
}

type countingSweeper struct {
	calls atomic.Int32
}

func (s *countingSweeper) Sweep(time.Duration) int {
	s.calls.Add(1)
	return 1
}

func TestSchedulerRunsAndStops(t *testing.T) {
	defer goleak.VerifyNone(t)

	gen := &countingGenerator{}
	sweeper := &countingSweeper{}
	s := NewScheduler(gen, sweeper, 4, 2*time.Second, zap.NewNop())

	s.Start(context.Background())

	assert.Eventually(t, func() bool { return gen.calls.Load() == 1 }, time.Second, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return sweeper.calls.Load() > 0 }, 3*time.Second, 50*time.Millisecond)
	assert.Equal(t, int32(4), gen.weeksAhead.Load())

	s.Stop()
	s.Stop()
}

func TestSchedulerStopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	s := NewScheduler(&countingGenerator{}, &countingSweeper{}, 1, time.Minute, zap.NewNop())
	s.Start(ctx)

	cancel()
	s.wg.Wait()
}
