// Package watchdog detects the natural end of the playing track by sampling progress.
package watchdog

import (
	"context"
	"fmt"
	"time"

	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/probe"
)

// Watchdog periodically compares progress with a near-end threshold.
// It is not safe for concurrent use. The owner arms it, selects on C and calls Tick.
type Watchdog struct {
	probe     probe.Probe
	interval  time.Duration
	threshold float64

	ticker *time.Ticker
}

// New creates a disarmed watchdog. The threshold is the remaining progress, in percent,
// under which the track is considered finished.
func New(p probe.Probe, interval time.Duration, threshold float64) *Watchdog {
	return &Watchdog{
		probe:     p,
		interval:  interval,
		threshold: threshold,
	}
}

// Arm starts the periodic timer. Arming an armed watchdog is a no-op.
func (w *Watchdog) Arm() {
	if w.ticker != nil {
		return
	}

	log.Debugf("watchdog armed, interval %s, threshold %.2f%%", w.interval, w.threshold)
	w.ticker = time.NewTicker(w.interval)
}

// Disarm stops the timer. No tick is delivered after Disarm returns.
func (w *Watchdog) Disarm() {
	if w.ticker == nil {
		return
	}

	w.ticker.Stop()
	w.ticker = nil
	log.Debug("watchdog disarmed")
}

// Armed reports whether the timer is running.
func (w *Watchdog) Armed() bool {
	return w.ticker != nil
}

// C delivers ticks while armed. It is nil while disarmed, so selecting on it blocks.
func (w *Watchdog) C() <-chan time.Time {
	if w.ticker == nil {
		return nil
	}

	return w.ticker.C
}

// Tick samples progress once. When the remaining progress is under the threshold
// the watchdog disarms itself, pauses the player if it is still playing and reports true.
// A disarmed watchdog never reports true.
func (w *Watchdog) Tick(ctx context.Context) (bool, error) {
	if !w.Armed() {
		return false, nil
	}

	progress, err := w.probe.Progress(ctx)
	if err != nil {
		return false, fmt.Errorf("watchdog: %w", err)
	}

	if 100-progress >= w.threshold {
		return false, nil
	}

	w.Disarm()
	log.Infof("track ended at %.2f%%", progress)

	state, err := w.probe.TransportState(ctx)
	if err != nil {
		log.Warnf("watchdog: reading transport: %s", err)
		return true, nil
	}

	if state == probe.Playing {
		if err := w.probe.Invoke(ctx, probe.Pause); err != nil {
			log.Warnf("watchdog: pausing: %s", err)
		}
	}

	return true, nil
}
