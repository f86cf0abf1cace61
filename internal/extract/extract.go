// Package extract turns raw source payloads (HTML, RSS, JSON) into
// normalized job candidates. Extraction degrades to an empty candidate
// list on malformed input; it never fails a discovery run.
package extract

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/domain"
)

// Candidate is a raw job listing pulled from one source, before it is
// promoted to a JobRecord. Title and URL must be non-empty; Promote drops
// anything else.
type Candidate struct {
	Title    string
	Company  string
	Location string
	Salary   string
	URL      string
	Posted   *time.Time

	// Blurb is the surrounding free text, kept only for the
	// experience/salary heuristics.
	Blurb string
}

// Extractor parses payloads from every content kind.
type Extractor struct {
	logger *zap.Logger

	// FeedItemCap bounds how many items one feed contributes.
	FeedItemCap int
}

// New builds an extractor.
func New(logger *zap.Logger) *Extractor {
	return &Extractor{logger: logger, FeedItemCap: 10}
}

// Extract dispatches on the source's content kind. The query narrows
// feed results; HTML and JSON results are query-matched by the caller.
func (e *Extractor) Extract(payload string, src domain.SourceDefinition, query string) []Candidate {
	var cands []Candidate
	switch src.Kind {
	case domain.ContentKindRSS:
		cands = e.extractFeed(payload, src, query)
	case domain.ContentKindJSON:
		cands = e.extractJSON(payload, src)
	default:
		cands = e.extractHTML(payload, src)
	}

	out := cands[:0]
	for _, c := range cands {
		c = normalize(c, src)
		if c.Title == "" || c.URL == "" {
			continue
		}
		out = append(out, c)
	}
	return out
}

// normalize applies the shared post-processing pass: absolute URLs and
// field defaults.
func normalize(c Candidate, src domain.SourceDefinition) Candidate {
	c.Title = strings.TrimSpace(c.Title)
	c.URL = NormalizeURL(strings.TrimSpace(c.URL), src.BaseURL)
	c.Company = strings.TrimSpace(c.Company)
	if c.Company == "" {
		c.Company = src.Name
	}
	c.Location = strings.TrimSpace(c.Location)
	if c.Location == "" {
		c.Location = "Various"
	}
	c.Salary = strings.TrimSpace(c.Salary)
	if c.Salary == "" {
		c.Salary = ExtractSalary(c.Title)
	}
	return c
}

// Promote converts candidates to JobRecords stamped with the source's
// identity. Candidates with an empty title or URL never become records.
func Promote(cands []Candidate, src domain.SourceDefinition) []domain.JobRecord {
	records := make([]domain.JobRecord, 0, len(cands))
	for i, c := range cands {
		if c.Title == "" || c.URL == "" {
			continue
		}
		posted := time.Now()
		if c.Posted != nil {
			posted = *c.Posted
		}
		records = append(records, domain.JobRecord{
			ID:              domain.RecordID(src.Name, i),
			Title:           c.Title,
			Company:         c.Company,
			Location:        c.Location,
			URL:             c.URL,
			Salary:          c.Salary,
			ExperienceYears: ExtractExperienceYears(c.Title + " " + c.Blurb),
			Source:          src.Name,
			SourceType:      src.Type,
			Country:         src.Country,
			Categories:      src.Categories,
			PostedDate:      posted,
		})
	}
	return records
}
