// Package history provides the implementation for tracking and persisting the user's reading state.
package history

import (
	"github.com/mangasan-cli/mangasan/filesystem"
	"github.com/mangasan-cli/mangasan/source"
	"github.com/mangasan-cli/mangasan/where"
	"github.com/metafates/gache"
)

// cacher provides an abstracted, disk-backed registry for reading progress records.
var cacher = gache.New[map[string]*SavedChapter](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of historical reading records from the persistent store.
func Get() (map[string]*SavedChapter, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedChapter), nil
	}
	return cached, nil
}

// Save persists the last-opened chapter of a manga to the history registry.
// One record is kept per manga and source pair; opening another chapter of
// the same manga replaces it.
func Save(manga *source.Manga, chapter *source.Chapter, index int) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedChapter(manga, chapter, index)
	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a specific reading record from the history registry.
func Remove(chapter *SavedChapter) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, chapter.encode())
	return cacher.Set(saved)
}
