package extract

import (
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/domain"
)

// usajobsResponse mirrors the USAJOBS search API envelope. NYC Jobs uses
// the same shape.
type usajobsResponse struct {
	SearchResult struct {
		SearchResultItems []struct {
			MatchedObjectID         string `json:"MatchedObjectId"`
			MatchedObjectDescriptor struct {
				PositionTitle           string `json:"PositionTitle"`
				OrganizationName        string `json:"OrganizationName"`
				PositionLocationDisplay string `json:"PositionLocationDisplay"`
				PositionURI             string `json:"PositionURI"`
				PublicationStartDate    string `json:"PublicationStartDate"`
				PositionRemuneration    []struct {
					MinimumRange string `json:"MinimumRange"`
				} `json:"PositionRemuneration"`
			} `json:"MatchedObjectDescriptor"`
		} `json:"SearchResultItems"`
	} `json:"SearchResult"`
}

// genericPosting is the flat array shape several public job APIs serve.
type genericPosting struct {
	Title     string `json:"title"`
	Company   string `json:"company"`
	Location  string `json:"location"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

// extractJSON handles the structured API sources. It first tries the
// government search envelope, then the flat posting array.
func (e *Extractor) extractJSON(payload string, src domain.SourceDefinition) []Candidate {
	if cands := parseGovSearch(payload); len(cands) > 0 {
		return cands
	}
	if cands := parsePostingArray(payload); len(cands) > 0 {
		return cands
	}
	e.logger.Debug("no recognizable json shape", zap.String("source", src.Name))
	return nil
}

func parseGovSearch(payload string) []Candidate {
	var resp usajobsResponse
	if err := json.Unmarshal([]byte(payload), &resp); err != nil {
		return nil
	}

	var cands []Candidate
	for _, item := range resp.SearchResult.SearchResultItems {
		d := item.MatchedObjectDescriptor
		c := Candidate{
			Title:    d.PositionTitle,
			Company:  d.OrganizationName,
			Location: d.PositionLocationDisplay,
			URL:      d.PositionURI,
			Posted:   parseAPITime(d.PublicationStartDate),
		}
		if len(d.PositionRemuneration) > 0 {
			c.Salary = d.PositionRemuneration[0].MinimumRange
		}
		cands = append(cands, c)
	}
	return cands
}

func parsePostingArray(payload string) []Candidate {
	var postings []genericPosting
	if err := json.Unmarshal([]byte(payload), &postings); err != nil {
		return nil
	}

	var cands []Candidate
	for _, p := range postings {
		cands = append(cands, Candidate{
			Title:    p.Title,
			Company:  p.Company,
			Location: p.Location,
			URL:      p.URL,
			Posted:   parseAPITime(p.CreatedAt),
		})
	}
	return cands
}

// parseAPITime accepts the timestamp formats the public APIs emit.
func parseAPITime(s string) *time.Time {
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", time.RFC1123, time.RFC1123Z} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t
		}
	}
	return nil
}
