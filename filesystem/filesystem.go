// Package filesystem routes every disk access in the application through a
// swappable afero backend. Config, caches, history, Lua scripts and inline
// output files all go through API(), which lets the test suites run against
// an in-memory filesystem instead of the real one.
package filesystem

import "github.com/spf13/afero"

var backend = afero.Afero{Fs: afero.NewOsFs()}

// API returns the active afero.Afero instance for filesystem interaction.
func API() afero.Afero {
	return backend
}

// SetOsFs points the backend at the real operating system filesystem.
func SetOsFs() {
	backend = afero.Afero{Fs: afero.NewOsFs()}
}

// SetMemMapFs points the backend at a fresh in-memory filesystem.
// Nothing written before the switch carries over.
func SetMemMapFs() {
	backend = afero.Afero{Fs: afero.NewMemMapFs()}
}
