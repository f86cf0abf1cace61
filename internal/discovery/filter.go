package discovery

import (
	"strings"
	"time"

	"github.com/jobhunter/backend/internal/domain"
)

// applyCriteria narrows merged records to the caller's preferences. Each
// check only fires when both the preference and the record field carry a
// value, so sparse records survive.
func applyCriteria(records []domain.JobRecord, prefs domain.SearchPreferences, now time.Time) []domain.JobRecord {
	out := records[:0]
	for _, r := range records {
		if !postedRecently(r, prefs.PostedAfterDays, now) {
			continue
		}
		if prefs.ExperienceYears > 0 && r.ExperienceYears != nil && *r.ExperienceYears < prefs.ExperienceYears {
			continue
		}
		if prefs.Remote && !strings.Contains(strings.ToLower(r.Location), "remote") {
			continue
		}
		if prefs.Location != "" && !matchesLocation(r, prefs.Location) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func postedRecently(r domain.JobRecord, days int, now time.Time) bool {
	if days <= 0 || r.PostedDate.IsZero() {
		return true
	}
	cutoff := now.AddDate(0, 0, -days)
	return !r.PostedDate.Before(cutoff)
}

// matchesLocation does a loose substring check in either direction, so
// "New York" matches "New York, NY" and vice versa. Remote listings
// always pass a location filter.
func matchesLocation(r domain.JobRecord, wanted string) bool {
	loc := strings.ToLower(r.Location)
	wanted = strings.ToLower(wanted)
	if strings.Contains(loc, "remote") {
		return true
	}
	return strings.Contains(loc, wanted) || strings.Contains(wanted, loc)
}
