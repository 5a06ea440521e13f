package driver

import (
	"context"
	"errors"
	"time"

	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/probe"
)

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// poll waits interval, then evaluates cond, at most rounds times.
// A failing evaluation counts as an unmet condition, except for a missing
// element which aborts the loop. It returns nil once cond holds and
// errExhausted when the budget runs out.
func poll(ctx context.Context, rounds int, interval time.Duration, cond func(context.Context) (bool, error)) error {
	for i := 0; i < rounds; i++ {
		if err := sleep(ctx, interval); err != nil {
			return err
		}

		ok, err := cond(ctx)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if errors.Is(err, probe.ErrSelectorNotFound) {
			return err
		}

		if err != nil {
			log.Debugf("poll round %d: %s", i+1, err)
			continue
		}

		if ok {
			return nil
		}
	}

	return errExhausted
}

// movement accumulates distinct progress readings.
// Readings may repeat or bounce, so movement is only confirmed
// once enough different values have been seen.
type movement struct {
	seen map[float64]struct{}
	want int
}

func newMovement(want int) *movement {
	return &movement{
		seen: make(map[float64]struct{}),
		want: want,
	}
}

// Observe records a reading and reports whether movement is confirmed.
func (m *movement) Observe(progress float64) bool {
	m.seen[progress] = struct{}{}
	return m.Confirmed()
}

func (m *movement) Confirmed() bool {
	return len(m.seen) >= m.want
}

func (m *movement) Distinct() int {
	return len(m.seen)
}
