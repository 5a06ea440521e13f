// Package history keeps track of what was played through each backend.
package history

import (
	"sort"
	"time"

	"github.com/hostplay/hostplay/filesystem"
	"github.com/hostplay/hostplay/protocol"
	"github.com/hostplay/hostplay/where"
	"github.com/metafates/gache"
)

var cacher = gache.New[map[string]*SavedTrack](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every saved track keyed by backend, title and artist.
func Get() (map[string]*SavedTrack, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedTrack), nil
	}
	return cached, nil
}

// Recent returns the saved tracks, most recently played first.
func Recent() ([]*SavedTrack, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	tracks := make([]*SavedTrack, 0, len(saved))
	for _, t := range saved {
		tracks = append(tracks, t)
	}

	sort.Slice(tracks, func(i, j int) bool {
		return tracks[i].LastPlayed.After(tracks[j].LastPlayed)
	})

	return tracks, nil
}

// Save records that track started playing on backend.
func Save(backend string, track protocol.TrackInfo) error {
	return update(backend, track, func(s *SavedTrack) {
		s.Plays++
		s.LastPlayed = time.Now()
	})
}

// Complete records that track played to its end on backend.
func Complete(backend string, track protocol.TrackInfo) error {
	return update(backend, track, func(s *SavedTrack) {
		s.Completed++
	})
}

func update(backend string, track protocol.TrackInfo, apply func(*SavedTrack)) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedTrack(backend, track)
	if existing, ok := saved[record.encode()]; ok {
		record = existing
	}

	apply(record)
	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove deletes a single record.
func Remove(track *SavedTrack) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, track.encode())
	return cacher.Set(saved)
}
