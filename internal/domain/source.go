package domain

// SourceType classifies where a job source sits in the catalog
type SourceType string

const (
	SourceTypeGovernment SourceType = "government"
	SourceTypeGig        SourceType = "gig"
	SourceTypeATS        SourceType = "ats"
	SourceTypeNiche      SourceType = "niche"
	SourceTypeRegional   SourceType = "regional"
	SourceTypeCompany    SourceType = "company"
)

// ContentKind is the payload format a source serves
type ContentKind string

const (
	ContentKindHTML ContentKind = "html"
	ContentKindRSS  ContentKind = "rss"
	ContentKindJSON ContentKind = "json"
)

// Tier buckets sources by expected latency. Fast sources (APIs, RSS) are
// fanned out in parallel; medium and slow sources run sequentially.
type Tier int

const (
	TierFast Tier = iota
	TierMedium
	TierSlow
)

func (t Tier) String() string {
	switch t {
	case TierFast:
		return "fast"
	case TierMedium:
		return "medium"
	case TierSlow:
		return "slow"
	}
	return "unknown"
}

// FieldSelectors lists CSS selectors tried in order for one field.
// The first selector yielding non-empty text wins.
type FieldSelectors []string

// ExtractionTemplate maps repeated job elements and their sub-fields to
// CSS selectors for one specific site.
type ExtractionTemplate struct {
	Jobs     string         `yaml:"jobs"`
	Title    FieldSelectors `yaml:"title"`
	Company  FieldSelectors `yaml:"company"`
	Location FieldSelectors `yaml:"location"`
	Salary   FieldSelectors `yaml:"salary"`
	URL      FieldSelectors `yaml:"url"`
}

// Empty reports whether the template declares no job-element selector,
// in which case the extractor falls back to its generic strategies.
func (t *ExtractionTemplate) Empty() bool {
	return t == nil || t.Jobs == ""
}

// Per-field accessors are nil-safe so a missing template simply defers to
// the extractor's generic selector lists.

func (t *ExtractionTemplate) TitleSelectors() FieldSelectors {
	if t == nil {
		return nil
	}
	return t.Title
}

func (t *ExtractionTemplate) CompanySelectors() FieldSelectors {
	if t == nil {
		return nil
	}
	return t.Company
}

func (t *ExtractionTemplate) LocationSelectors() FieldSelectors {
	if t == nil {
		return nil
	}
	return t.Location
}

func (t *ExtractionTemplate) SalarySelectors() FieldSelectors {
	if t == nil {
		return nil
	}
	return t.Salary
}

func (t *ExtractionTemplate) URLSelectors() FieldSelectors {
	if t == nil {
		return nil
	}
	return t.URL
}

// SourceDefinition describes one job source in the static catalog.
// Definitions are loaded at startup and never mutated.
type SourceDefinition struct {
	Name       string
	BaseURL    string
	SearchURL  string // fetched URL; falls back to BaseURL when empty
	Type       SourceType
	Kind       ContentKind
	Country    string
	Categories []string

	// Template holds per-site selectors for HTML sources. Nil means the
	// generic fallback cascade applies.
	Template *ExtractionTemplate

	// AssumeRelevant marks feeds that are already scoped server-side
	// (regional feeds); their items skip the query substring match.
	AssumeRelevant bool

	// RenderJS routes the fetch through a headless browser for pages
	// that only materialize listings client-side.
	RenderJS bool
}

// FetchURL returns the URL the fetcher should request.
func (s SourceDefinition) FetchURL() string {
	if s.SearchURL != "" {
		return s.SearchURL
	}
	return s.BaseURL
}

// Tier derives the scheduling tier from the payload kind and source type.
func (s SourceDefinition) Tier() Tier {
	switch {
	case s.Kind == ContentKindRSS:
		return TierFast
	case s.Kind == ContentKindJSON && s.Type == SourceTypeGovernment:
		return TierMedium
	case s.Kind == ContentKindJSON:
		return TierFast
	default:
		return TierSlow
	}
}

// HasCategory reports whether the source carries the given category tag.
func (s SourceDefinition) HasCategory(category string) bool {
	for _, c := range s.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// MatchesAnyCategory reports whether the source shares at least one
// category with the given set. An empty set matches everything.
func (s SourceDefinition) MatchesAnyCategory(categories []string) bool {
	if len(categories) == 0 {
		return true
	}
	for _, c := range categories {
		if s.HasCategory(c) {
			return true
		}
	}
	return false
}
