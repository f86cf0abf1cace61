package discovery

import (
	"fmt"
	"time"

	"github.com/jobhunter/backend/internal/domain"
)

type syntheticSeed struct {
	title    string
	company  string
	salary   string
	category string
	years    int
}

var syntheticSeeds = []syntheticSeed{
	{"Forklift Operator", "Metro Logistics", "$18-$22/hr", "blue-collar", 1},
	{"Warehouse Associate", "Prime Distribution", "$16-$19/hr", "blue-collar", 0},
	{"Administrative Assistant", "Brightway Services", "$40,000-$48,000/yr", "admin", 2},
	{"Delivery Driver", "Swift Couriers", "$17-$21/hr", "gig", 1},
	{"Office Receptionist", "Harbor Medical Group", "$15-$18/hr", "admin", 0},
}

// syntheticRecords builds a small placeholder set so a total pipeline
// failure still yields something actionable. Every record is flagged
// IsSynthetic so callers can label it, and none of them is ever cached
// or persisted.
func syntheticRecords(prefs domain.SearchPreferences) []domain.JobRecord {
	location := prefs.Location
	if location == "" {
		location = "Various"
	}

	records := make([]domain.JobRecord, 0, len(syntheticSeeds))
	for i, seed := range syntheticSeeds {
		years := seed.years
		title := seed.title
		if prefs.Title != "" && i == 0 {
			title = prefs.Title
		}
		records = append(records, domain.JobRecord{
			ID:              domain.RecordID("synthetic", i),
			Title:           title,
			Company:         seed.company,
			Location:        location,
			URL:             fmt.Sprintf("https://example.com/jobs/sample-%d", i+1),
			Salary:          seed.salary,
			ExperienceYears: &years,
			Source:          "Sample Listings",
			SourceType:      domain.SourceTypeNiche,
			Categories:      []string{seed.category},
			PostedDate:      time.Now(),
			IsSynthetic:     true,
		})
	}
	return records
}
