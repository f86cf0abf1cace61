package domain

import (
	"fmt"
	"strings"
	"time"
)

// SearchPreferences is the caller-supplied search request. It is read-only
// for the duration of one discovery run.
type SearchPreferences struct {
	Title           string   `json:"title"`
	Location        string   `json:"location"`
	ExperienceYears int      `json:"experience_years"`
	PostedAfterDays int      `json:"posted_after_days"`
	JobBoards       []string `json:"job_boards"`
	Remote          bool     `json:"remote"`
	Categories      []string `json:"categories"`
	Countries       []string `json:"countries"`
}

// WantsAllBoards reports whether the preference set carries the "all"
// sentinel or no explicit board choice, which widens source selection to
// every relevant source group.
func (p SearchPreferences) WantsAllBoards() bool {
	if len(p.JobBoards) == 0 {
		return true
	}
	for _, b := range p.JobBoards {
		if strings.EqualFold(b, "all") {
			return true
		}
	}
	return false
}

// HasCountry reports whether the given country is in scope. An empty
// country list places every country in scope.
func (p SearchPreferences) HasCountry(country string) bool {
	if len(p.Countries) == 0 {
		return true
	}
	for _, c := range p.Countries {
		if strings.EqualFold(c, country) {
			return true
		}
	}
	return false
}

// JobRecord is the canonical normalized job listing produced for one
// discovery run. Title and URL are always non-empty; candidates missing
// either never become records. Records are immutable after creation.
type JobRecord struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Company         string     `json:"company"`
	Location        string     `json:"location"`
	URL             string     `json:"url"`
	Salary          string     `json:"salary,omitempty"`
	ExperienceYears *int       `json:"experience_years,omitempty"`
	Source          string     `json:"source"`
	SourceType      SourceType `json:"source_type"`
	Country         string     `json:"country"`
	Categories      []string   `json:"categories"`
	PostedDate      time.Time  `json:"posted_date"`

	// IsSynthetic marks placeholder records served when every source
	// failed and the synthetic fallback is enabled.
	IsSynthetic bool `json:"is_synthetic,omitempty"`
}

// RecordID builds the per-run record identifier from the source name, the
// candidate ordinal within that source, and the current wall clock.
func RecordID(sourceName string, ordinal int) string {
	slug := strings.ToLower(strings.ReplaceAll(sourceName, " ", "_"))
	return fmt.Sprintf("%s_%d_%d", slug, ordinal, time.Now().UnixMilli())
}

// DiscoveryResult aggregates everything one discovery run produced.
type DiscoveryResult struct {
	Jobs      []JobRecord `json:"jobs"`
	Total     int         `json:"total"`
	Synthetic bool        `json:"synthetic"`
	Cached    bool        `json:"cached"`
	Elapsed   string      `json:"elapsed,omitempty"`
}
