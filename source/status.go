// Package source defines the domain models and interfaces for manga discovery and retrieval.
package source

import (
	"strings"

	"github.com/samber/mo"
)

// Status describes the publication state of a manga.
type Status string

const (
	StatusOngoing   Status = "ongoing"
	StatusCompleted Status = "completed"
	StatusHiatus    Status = "hiatus"
	StatusCancelled Status = "cancelled"
)

// normalizeStatusLabel lowercases a raw upstream label and strips separators,
// so that "ON_HIATUS", "On Hiatus" and "on-hiatus" compare equal.
func normalizeStatusLabel(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	raw = strings.ReplaceAll(raw, "_", " ")
	raw = strings.ReplaceAll(raw, "-", " ")
	return raw
}

// ParseStatus coerces an upstream publication label into the canonical set.
// Providers disagree wildly on wording; labels that fit no known state are
// treated as ongoing, the most common one.
func ParseStatus(raw string) Status {
	switch normalizeStatusLabel(raw) {
	case "completed", "complete", "finished", "ended":
		return StatusCompleted
	case "hiatus", "on hiatus", "paused":
		return StatusHiatus
	case "cancelled", "canceled", "discontinued", "dropped":
		return StatusCancelled
	default:
		return StatusOngoing
	}
}

// ParseSearchStatus maps an upstream label onto the reduced state set carried by
// search results. Only ongoing and completed survive; everything else is absent.
func ParseSearchStatus(raw string) mo.Option[Status] {
	switch normalizeStatusLabel(raw) {
	case "ongoing", "releasing", "publishing":
		return mo.Some(StatusOngoing)
	case "completed", "complete", "finished", "ended":
		return mo.Some(StatusCompleted)
	default:
		return mo.None[Status]()
	}
}
