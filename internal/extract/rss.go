package extract

import (
	"strings"

	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/domain"
)

// extractFeed parses an RSS/Atom payload. Feeds that are already scoped
// server-side (AssumeRelevant) keep every item; general feeds keep only
// items whose title or description mentions the query. Item count per
// feed is capped to bound latency.
func (e *Extractor) extractFeed(payload string, src domain.SourceDefinition, query string) []Candidate {
	feed, err := gofeed.NewParser().ParseString(payload)
	if err != nil {
		e.logger.Debug("unparseable feed",
			zap.String("source", src.Name),
			zap.Error(err),
		)
		return nil
	}

	limit := e.FeedItemCap
	if limit <= 0 {
		limit = 10
	}

	query = strings.ToLower(query)
	var cands []Candidate
	for _, item := range feed.Items {
		if len(cands) >= limit {
			break
		}
		if item.Title == "" || item.Link == "" {
			continue
		}
		if !src.AssumeRelevant && query != "" && !feedItemMatches(item, query) {
			continue
		}

		c := Candidate{
			Title:   item.Title,
			Company: companyFromTitle(item.Title),
			URL:     item.Link,
			Posted:  item.PublishedParsed,
			Blurb:   item.Description,
		}
		cands = append(cands, c)
	}
	return cands
}

func feedItemMatches(item *gofeed.Item, query string) bool {
	return strings.Contains(strings.ToLower(item.Title), query) ||
		strings.Contains(strings.ToLower(item.Description), query)
}

// companyPrefixes are the phrasings feed titles use to name an employer,
// e.g. "Cleaner needed at Sparkle Inc".
var companyPrefixes = []string{" at ", " with ", " for "}

// companyFromTitle guesses the employer from a feed item title. Feeds
// rarely carry a structured company field.
func companyFromTitle(title string) string {
	lower := strings.ToLower(title)
	for _, p := range companyPrefixes {
		idx := strings.Index(lower, p)
		if idx < 0 {
			continue
		}
		rest := strings.TrimSpace(title[idx+len(p):])
		if rest == "" {
			continue
		}
		// Cut at the first separator so trailing noise is dropped.
		if cut := strings.IndexAny(rest, "-|(,"); cut > 0 {
			rest = strings.TrimSpace(rest[:cut])
		}
		if rest != "" {
			return rest
		}
	}
	return ""
}
