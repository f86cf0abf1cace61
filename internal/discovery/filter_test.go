package discovery

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhunter/backend/internal/domain"
)

func record(mutate func(*domain.JobRecord)) domain.JobRecord {
	r := domain.JobRecord{
		Title:      "Forklift Operator",
		Company:    "Metro Warehouse",
		Location:   "Brooklyn, NY",
		URL:        "https://example.com/jobs/1",
		PostedDate: time.Now(),
	}
	if mutate != nil {
		mutate(&r)
	}
	return r
}

func TestApplyCriteria_PostedAfterDays(t *testing.T) {
	now := time.Now()
	fresh := record(func(r *domain.JobRecord) {
		r.URL = "https://example.com/jobs/fresh"
		r.PostedDate = now.AddDate(0, 0, -10)
	})
	stale := record(func(r *domain.JobRecord) {
		r.URL = "https://example.com/jobs/stale"
		r.PostedDate = now.AddDate(0, 0, -40)
	})

	kept := applyCriteria([]domain.JobRecord{fresh, stale}, domain.SearchPreferences{PostedAfterDays: 30}, now)

	require.Len(t, kept, 1)
	assert.Equal(t, "https://example.com/jobs/fresh", kept[0].URL)
}

func TestApplyCriteria_UndatedRecordsSurvivePostedFilter(t *testing.T) {
	undated := record(func(r *domain.JobRecord) { r.PostedDate = time.Time{} })

	kept := applyCriteria([]domain.JobRecord{undated}, domain.SearchPreferences{PostedAfterDays: 30}, time.Now())
	assert.Len(t, kept, 1)
}

func TestApplyCriteria_ExperienceFloor(t *testing.T) {
	junior := 1
	senior := 5

	records := []domain.JobRecord{
		record(func(r *domain.JobRecord) { r.URL = "https://example.com/junior"; r.ExperienceYears = &junior }),
		record(func(r *domain.JobRecord) { r.URL = "https://example.com/senior"; r.ExperienceYears = &senior }),
		record(func(r *domain.JobRecord) { r.URL = "https://example.com/unknown" }),
	}

	kept := applyCriteria(records, domain.SearchPreferences{ExperienceYears: 3}, time.Now())

	// Below the floor is dropped; missing experience is kept.
	require.Len(t, kept, 2)
	assert.Equal(t, "https://example.com/senior", kept[0].URL)
	assert.Equal(t, "https://example.com/unknown", kept[1].URL)
}

func TestApplyCriteria_Remote(t *testing.T) {
	records := []domain.JobRecord{
		record(func(r *domain.JobRecord) { r.URL = "https://example.com/onsite"; r.Location = "Brooklyn, NY" }),
		record(func(r *domain.JobRecord) { r.URL = "https://example.com/remote"; r.Location = "Remote (US)" }),
	}

	kept := applyCriteria(records, domain.SearchPreferences{Remote: true}, time.Now())

	require.Len(t, kept, 1)
	assert.Equal(t, "https://example.com/remote", kept[0].URL)
}

func TestApplyCriteria_LocationSubstring(t *testing.T) {
	records := []domain.JobRecord{
		record(func(r *domain.JobRecord) { r.URL = "https://example.com/ny"; r.Location = "New York, NY" }),
		record(func(r *domain.JobRecord) { r.URL = "https://example.com/chi"; r.Location = "Chicago, IL" }),
		record(func(r *domain.JobRecord) { r.URL = "https://example.com/rem"; r.Location = "Remote" }),
	}

	kept := applyCriteria(records, domain.SearchPreferences{Location: "new york"}, time.Now())

	// Remote listings always pass a location filter.
	require.Len(t, kept, 2)
	assert.Equal(t, "https://example.com/ny", kept[0].URL)
	assert.Equal(t, "https://example.com/rem", kept[1].URL)
}

func TestApplyCriteria_NoPreferencesKeepsEverything(t *testing.T) {
	records := []domain.JobRecord{record(nil), record(nil)}
	kept := applyCriteria(records, domain.SearchPreferences{}, time.Now())
	assert.Len(t, kept, 2)
}

func TestSyntheticRecords_AreTagged(t *testing.T) {
	records := syntheticRecords(domain.SearchPreferences{Title: "Forklift Operator", Location: "Brooklyn"})

	require.NotEmpty(t, records)
	assert.Equal(t, "Forklift Operator", records[0].Title)
	for _, r := range records {
		assert.True(t, r.IsSynthetic)
		assert.Equal(t, "Brooklyn", r.Location)
		assert.NotEmpty(t, r.URL)
	}
}
