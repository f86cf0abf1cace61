package extract

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

var (
	experienceRe = regexp.MustCompile(`(?i)(\d+)\s*\+?[\s-]*(?:years?|yrs?)`)

	// Salary phrasings seen in listing titles: "$18-$22/hr", "$50,000",
	// "50k yearly", "25 per hour".
	salaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\$\d{1,3}(?:,\d{3})*(?:k|K)?(?:\s*-\s*\$\d{1,3}(?:,\d{3})*(?:k|K)?)?(?:\s*/\s*(?:hr|hour|yr|year))?`),
		regexp.MustCompile(`(?i)\d{1,3}(?:k|K)\s*(?:per\s*year|yearly|annual|salary|pay)`),
		regexp.MustCompile(`(?i)\d{1,3}\s*(?:per\s*hour|/\s*hr|an?\s*hour)`),
	}
)

// ExtractExperienceYears pulls a years-of-experience figure out of free
// text ("3+ years exp" → 3). Nil when no figure is present.
func ExtractExperienceYears(text string) *int {
	m := experienceRe.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	years, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &years
}

// ExtractSalary returns the first salary-looking phrase in the text, or
// empty when none matches.
func ExtractSalary(text string) string {
	for _, re := range salaryPatterns {
		if m := re.FindString(text); m != "" {
			return m
		}
	}
	return ""
}

// NormalizeURL resolves a possibly-relative href against the source base
// URL. Unresolvable input is returned as-is; the caller's non-empty URL
// invariant still applies.
func NormalizeURL(href, base string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	baseURL, err := url.Parse(base)
	if err != nil {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return baseURL.ResolveReference(ref).String()
}
