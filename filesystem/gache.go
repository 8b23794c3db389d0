package filesystem

import (
	"io"
	"os"
)

// GacheFs satisfies gache.FileSystem on top of the swappable backend, so the
// Anilist, MyAnimeList and Lua script caches persist through the same
// filesystem the rest of the application uses.
type GacheFs struct{}

// OpenFile opens a file through the active backend.
func (GacheFs) OpenFile(name string, flag int, perm os.FileMode) (io.ReadWriteCloser, error) {
	return API().OpenFile(name, flag, perm)
}

// MkdirAll creates a directory tree through the active backend.
func (GacheFs) MkdirAll(path string, perm os.FileMode) error {
	return API().MkdirAll(path, perm)
}
