package history

import (
	"sync"

	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/protocol"
	"github.com/samber/mo"
)

// Recorder follows the events of one session and saves the tracks it plays.
type Recorder struct {
	backend string

	mu      sync.Mutex
	staged  mo.Option[protocol.TrackInfo]
	playing mo.Option[protocol.TrackInfo]
}

// NewRecorder returns a recorder saving under backend.
func NewRecorder(backend string) *Recorder {
	return &Recorder{backend: backend}
}

// Observe updates the history from an event emitted by the driver.
// Failures to persist are logged, never returned.
func (r *Recorder) Observe(event protocol.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch event.Kind {
	case protocol.KindAdvanced:
		r.staged = mo.Some(event.Track)
		r.playing = mo.None[protocol.TrackInfo]()
	case protocol.KindStarted:
		track, ok := r.staged.Get()
		if !ok {
			return
		}

		r.playing = r.staged
		if err := Save(r.backend, track); err != nil {
			log.Warnf("history: save %s: %s", track, err)
		}
	case protocol.KindTrackEnded:
		track, ok := r.playing.Get()
		if !ok {
			return
		}

		r.staged = mo.None[protocol.TrackInfo]()
		r.playing = mo.None[protocol.TrackInfo]()
		if err := Complete(r.backend, track); err != nil {
			log.Warnf("history: complete %s: %s", track, err)
		}
	case protocol.KindFailed:
		if event.Command == protocol.Advance {
			r.staged = mo.None[protocol.TrackInfo]()
		}
	}
}
