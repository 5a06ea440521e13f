// Package filesystem holds the afero backend that config, history,
// backend scripts and caches are read from and written to.
// Tests replace it with an in-memory one.
package filesystem

import "github.com/spf13/afero"

var current = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active backend.
func API() afero.Afero {
	return current
}

// Use makes fs the active backend.
func Use(fs afero.Fs) {
	current = afero.Afero{Fs: fs}
}

// SetOsFs goes back to the real filesystem.
func SetOsFs() {
	Use(afero.NewOsFs())
}

// SetMemMapFs switches to a fresh, empty in-memory backend.
func SetMemMapFs() {
	Use(afero.NewMemMapFs())
}
