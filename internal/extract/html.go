package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/domain"
)

// strategy locates repeated job elements in a document. Strategies are
// tried in order; the first one yielding at least one match wins.
type strategy struct {
	name     string
	selector string
}

// fallbackStrategies is the generic cascade used when a source declares
// no selector template, or its template stops matching.
var fallbackStrategies = []strategy{
	{"job cards", ".job-listing, .job-card, .position, .career-opportunity, .job-item"},
	{"job links", `a[href*="/jobs/"], a[href*="/careers/"], a[href*="/positions/"]`},
	{"job classes", `[class*="job"], [class*="position"], [class*="career"]`},
	{"job list items", `li:has(a[href*="/jobs/"]), li:has(a[href*="/careers/"])`},
}

// Generic per-field selector lists, tried in order until one yields text.
var (
	genericTitle    = domain.FieldSelectors{".job-title", ".position-title", ".title", "h3", "h4", `[class*="title"]`, "a"}
	genericCompany  = domain.FieldSelectors{".company", ".employer", ".organization", `[class*="company"]`, `[class*="employer"]`}
	genericLocation = domain.FieldSelectors{".location", ".place", `[class*="location"]`, ".job-location"}
	genericSalary   = domain.FieldSelectors{".salary", ".compensation", ".pay", `[class*="salary"]`, `[class*="compensation"]`}
	genericURL      = domain.FieldSelectors{"a[href]", ".job-link", `[class*="link"]`}
)

// extractHTML pulls candidates out of scraped markup using the source's
// template when it has one, else the fallback cascade.
func (e *Extractor) extractHTML(payload string, src domain.SourceDefinition) []Candidate {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(payload))
	if err != nil {
		e.logger.Debug("unparseable markup",
			zap.String("source", src.Name),
			zap.Error(err),
		)
		return nil
	}

	elements, used := e.findJobElements(doc, src.Template)
	if elements == nil || elements.Length() == 0 {
		return nil
	}
	e.logger.Debug("job elements located",
		zap.String("source", src.Name),
		zap.String("strategy", used),
		zap.Int("count", elements.Length()),
	)

	tpl := src.Template
	if used != "template" {
		// The site's own selectors did not match, so its field
		// selectors are stale too; use the generic lists.
		tpl = nil
	}
	var cands []Candidate
	elements.Each(func(_ int, el *goquery.Selection) {
		title := fieldText(el, fieldOrDefault(tpl.TitleSelectors(), genericTitle))
		if title == "" && goquery.NodeName(el) == "a" {
			// Anchor-based strategies carry the title as link text.
			title = strings.TrimSpace(el.Text())
		}
		c := Candidate{
			Title:    title,
			Company:  fieldText(el, fieldOrDefault(tpl.CompanySelectors(), genericCompany)),
			Location: fieldText(el, fieldOrDefault(tpl.LocationSelectors(), genericLocation)),
			Salary:   fieldText(el, fieldOrDefault(tpl.SalarySelectors(), genericSalary)),
			URL:      fieldHref(el, fieldOrDefault(tpl.URLSelectors(), genericURL)),
			Blurb:    strings.TrimSpace(el.Text()),
		}
		if c.Title != "" && c.URL != "" {
			cands = append(cands, c)
		}
	})
	return cands
}

// findJobElements applies the template's jobs selector first, then the
// generic cascade.
func (e *Extractor) findJobElements(doc *goquery.Document, tpl *domain.ExtractionTemplate) (*goquery.Selection, string) {
	if !tpl.Empty() {
		if sel := doc.Find(tpl.Jobs); sel.Length() > 0 {
			return sel, "template"
		}
	}
	for _, st := range fallbackStrategies {
		if sel := doc.Find(st.selector); sel.Length() > 0 {
			return sel, st.name
		}
	}
	return nil, ""
}

// fieldText tries each selector in order and returns the first non-empty
// trimmed text.
func fieldText(el *goquery.Selection, selectors domain.FieldSelectors) string {
	for _, s := range selectors {
		if text := strings.TrimSpace(el.Find(s).First().Text()); text != "" {
			return text
		}
	}
	return ""
}

// fieldHref resolves the candidate URL: the element's own href when it is
// an anchor, else the first matching child anchor.
func fieldHref(el *goquery.Selection, selectors domain.FieldSelectors) string {
	if href, ok := el.Attr("href"); ok && href != "" {
		return href
	}
	for _, s := range selectors {
		if href, ok := el.Find(s).First().Attr("href"); ok && href != "" {
			return href
		}
	}
	return ""
}

func fieldOrDefault(declared, generic domain.FieldSelectors) domain.FieldSelectors {
	if len(declared) > 0 {
		return declared
	}
	return generic
}
