// Package swims turns search and race-listing requests into bounded queries
// against the ocean swim results view and projects the rows into API records.
package swims

import (
	"math"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	// DefaultPageSize applies when the client sends no pageSize.
	DefaultPageSize = 250
	// MaxNamePageSize bounds searches that are not scoped to a single race.
	MaxNamePageSize = 250
	// MaxRacePageSize bounds searches scoped to one race via raceId.
	MaxRacePageSize = 10_000
)

// Criteria is a search request as bound from the query string, before any
// normalization.
type Criteria struct {
	Forename string
	Surname  string
	// Race is still accepted from older clients but never filtered on.
	Race     string
	RaceID   *int
	Category string
	Gender   string
	Page     int
	PageSize int
}

// Filter is a normalized Criteria: nil fields impose no constraint.
type Filter struct {
	SurnamePattern  *string
	ForenamePattern *string
	Category        *string
	Gender          *string
	RaceID          *int

	Page     int
	PageSize int
	Offset   int
}

// Normalize clamps the pagination window and converts blank filters to nil.
// Race-scoped searches may page up to MaxRacePageSize rows, name searches
// only up to MaxNamePageSize. Page is capped so Offset never overflows.
func (c Criteria) Normalize() Filter {
	limit := MaxNamePageSize
	if c.RaceID != nil {
		limit = MaxRacePageSize
	}

	pageSize := min(max(c.PageSize, 1), limit)
	page := min(max(c.Page, 1), math.MaxInt/pageSize)

	return Filter{
		SurnamePattern:  containsPattern(c.Surname),
		ForenamePattern: containsPattern(c.Forename),
		Category:        exact(c.Category),
		Gender:          exact(c.Gender),
		RaceID:          c.RaceID,
		Page:            page,
		PageSize:        pageSize,
		Offset:          (page - 1) * pageSize,
	}
}

// containsPattern returns a %term% LIKE pattern matching the upper-cased,
// accent-folded *_search columns of the view.
func containsPattern(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	p := "%" + strings.ToUpper(FoldAccents(t)) + "%"
	return &p
}

func exact(s string) *string {
	t := strings.TrimSpace(s)
	if t == "" {
		return nil
	}
	return &t
}

// FoldAccents strips combining marks so "Ó Súilleabháin" matches "O Suilleabhain".
func FoldAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}
