package history

import (
	"fmt"
	"time"

	"github.com/hostplay/hostplay/protocol"
)

// SavedTrack is a track that was played through a backend.
type SavedTrack struct {
	Backend    string    `json:"backend"`
	Title      string    `json:"title"`
	Artist     string    `json:"artist,omitempty"`
	Plays      int       `json:"plays"`
	Completed  int       `json:"completed"`
	LastPlayed time.Time `json:"last_played"`
}

func newSavedTrack(backend string, track protocol.TrackInfo) *SavedTrack {
	return &SavedTrack{
		Backend: backend,
		Title:   track.Title,
		Artist:  track.Artist.OrEmpty(),
	}
}

func (s *SavedTrack) encode() string {
	if s.Artist == "" {
		return fmt.Sprintf("%s (%s)", s.Title, s.Backend)
	}
	return fmt.Sprintf("%s - %s (%s)", s.Title, s.Artist, s.Backend)
}

func (s *SavedTrack) String() string {
	if s.Artist == "" {
		return s.Title
	}
	return s.Title + " - " + s.Artist
}
