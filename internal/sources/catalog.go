// Package sources holds the static job-source catalog and the selection
// logic that decides which sources one discovery run visits.
package sources

import (
	"sort"

	"github.com/jobhunter/backend/internal/domain"
)

// Group keys. Selection works in terms of these; each key resolves to a
// named bundle of sources of one SourceType.
const (
	GroupUSGovernment     = "usGovernment"
	GroupUKGovernment     = "ukGovernment"
	GroupCanadaGovernment = "canadaGovernment"
	GroupGigEconomy       = "gigEconomy"
	GroupATSPlatforms     = "atsPlatforms"
	GroupBlueCollar       = "blueCollarBoards"
	GroupAdmin            = "adminBoards"
	GroupRegional         = "regionalBoards"
	GroupRemote           = "remoteBoards"
	GroupCompanyPages     = "companyCareerPages"
)

// Group is one catalog bundle: a display name plus its source definitions.
type Group struct {
	Name    string
	Sources []domain.SourceDefinition
}

// boardListing is the selector template shared by the many boards that use
// conventional job-listing markup.
var boardListing = &domain.ExtractionTemplate{
	Jobs:     ".job-listing",
	Title:    domain.FieldSelectors{".job-title"},
	Company:  domain.FieldSelectors{".company-name"},
	Location: domain.FieldSelectors{".job-location"},
	Salary:   domain.FieldSelectors{".salary-info"},
	URL:      domain.FieldSelectors{"a.job-link"},
}

// defaultCatalog is the built-in source table. Adding a source is a data
// change here, never a code change elsewhere.
var defaultCatalog = map[string]Group{
	GroupUSGovernment: {
		Name: "US Government Jobs",
		Sources: []domain.SourceDefinition{
			{
				Name:       "USAJOBS",
				BaseURL:    "https://www.usajobs.gov",
				SearchURL:  "https://data.usajobs.gov/api/search",
				Type:       domain.SourceTypeGovernment,
				Kind:       domain.ContentKindJSON,
				Country:    "US",
				Categories: []string{"government", "admin", "blue-collar"},
			},
			{
				Name:       "NYC Jobs",
				BaseURL:    "https://a127-jobs.nyc.gov",
				SearchURL:  "https://a127-jobs.nyc.gov/api/jobs",
				Type:       domain.SourceTypeGovernment,
				Kind:       domain.ContentKindJSON,
				Country:    "US",
				Categories: []string{"government", "admin"},
			},
			{
				Name:      "Government Jobs",
				BaseURL:   "https://www.governmentjobs.com",
				SearchURL: "https://www.governmentjobs.com/careers",
				Type:      domain.SourceTypeGovernment,
				Kind:      domain.ContentKindHTML,
				Country:   "US",
				Categories: []string{
					"government", "admin", "blue-collar",
				},
				Template: &domain.ExtractionTemplate{
					Jobs:     ".job-listing",
					Title:    domain.FieldSelectors{".job-title"},
					Company:  domain.FieldSelectors{".department-name"},
					Location: domain.FieldSelectors{".job-location"},
					Salary:   domain.FieldSelectors{".salary-info"},
					URL:      domain.FieldSelectors{"a.job-link"},
				},
			},
		},
	},
	GroupUKGovernment: {
		Name: "UK Government Jobs",
		Sources: []domain.SourceDefinition{
			{
				Name:       "Civil Service Jobs",
				BaseURL:    "https://www.civilservicejobs.service.gov.uk",
				SearchURL:  "https://www.civilservicejobs.service.gov.uk/csr/index.cgi",
				Type:       domain.SourceTypeGovernment,
				Kind:       domain.ContentKindHTML,
				Country:    "UK",
				Categories: []string{"government", "admin"},
				Template: &domain.ExtractionTemplate{
					Jobs:     ".vacancy",
					Title:    domain.FieldSelectors{".vacancy-title"},
					Company:  domain.FieldSelectors{".department"},
					Location: domain.FieldSelectors{".location"},
					Salary:   domain.FieldSelectors{".salary"},
					URL:      domain.FieldSelectors{"a.vacancy-link"},
				},
			},
			{
				Name:       "Find a Job",
				BaseURL:    "https://findajob.dwp.gov.uk",
				SearchURL:  "https://findajob.dwp.gov.uk/search",
				Type:       domain.SourceTypeGovernment,
				Kind:       domain.ContentKindHTML,
				Country:    "UK",
				Categories: []string{"government", "admin", "blue-collar"},
				Template: &domain.ExtractionTemplate{
					Jobs:     ".job-result",
					Title:    domain.FieldSelectors{".job-title"},
					Company:  domain.FieldSelectors{".employer"},
					Location: domain.FieldSelectors{".location"},
					Salary:   domain.FieldSelectors{".salary"},
					URL:      domain.FieldSelectors{"a.job-link"},
				},
			},
			{
				Name:       "NHS Jobs",
				BaseURL:    "https://www.jobs.nhs.uk",
				SearchURL:  "https://www.jobs.nhs.uk/candidate/jobadvert",
				Type:       domain.SourceTypeGovernment,
				Kind:       domain.ContentKindHTML,
				Country:    "UK",
				Categories: []string{"government", "admin", "healthcare"},
				Template: &domain.ExtractionTemplate{
					Jobs:     ".job-result",
					Title:    domain.FieldSelectors{".job-title"},
					Company:  domain.FieldSelectors{".trust-name"},
					Location: domain.FieldSelectors{".location"},
					Salary:   domain.FieldSelectors{".salary"},
					URL:      domain.FieldSelectors{"a.job-link"},
				},
			},
		},
	},
	GroupCanadaGovernment: {
		Name: "Canada Government Jobs",
		Sources: []domain.SourceDefinition{
			{
				Name:       "Jobs GC",
				BaseURL:    "https://emploisfp-psjobs.cfp-psc.gc.ca",
				SearchURL:  "https://emploisfp-psjobs.cfp-psc.gc.ca/psrs-srfp/applicant/page2440",
				Type:       domain.SourceTypeGovernment,
				Kind:       domain.ContentKindHTML,
				Country:    "CA",
				Categories: []string{"government", "admin"},
				Template: &domain.ExtractionTemplate{
					Jobs:     ".job-posting",
					Title:    domain.FieldSelectors{".job-title"},
					Company:  domain.FieldSelectors{".department"},
					Location: domain.FieldSelectors{".location"},
					Salary:   domain.FieldSelectors{".salary"},
					URL:      domain.FieldSelectors{"a.job-link"},
				},
			},
			{
				Name:       "Canada Job Bank",
				BaseURL:    "https://www.jobbank.gc.ca",
				SearchURL:  "https://www.jobbank.gc.ca/jobsearch",
				Type:       domain.SourceTypeGovernment,
				Kind:       domain.ContentKindHTML,
				Country:    "CA",
				Categories: []string{"government", "admin", "blue-collar"},
				Template: &domain.ExtractionTemplate{
					Jobs:     ".result",
					Title:    domain.FieldSelectors{".jobtitle"},
					Company:  domain.FieldSelectors{".business"},
					Location: domain.FieldSelectors{".location"},
					Salary:   domain.FieldSelectors{".salary"},
					URL:      domain.FieldSelectors{"a.job-link"},
				},
			},
		},
	},
	GroupGigEconomy: {
		Name: "Gig Economy Platforms",
		Sources: []domain.SourceDefinition{
			{
				Name:           "Craigslist NYC Gigs",
				BaseURL:        "https://newyork.craigslist.org",
				SearchURL:      "https://newyork.craigslist.org/search/ggg?format=rss",
				Type:           domain.SourceTypeGig,
				Kind:           domain.ContentKindRSS,
				Country:        "US",
				Categories:     []string{"blue-collar", "admin"},
				AssumeRelevant: true,
			},
			{
				Name:       "TaskRabbit",
				BaseURL:    "https://www.taskrabbit.com",
				SearchURL:  "https://www.taskrabbit.com/tasks",
				Type:       domain.SourceTypeGig,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"blue-collar", "admin"},
				Template: &domain.ExtractionTemplate{
					Jobs:     ".task-listing",
					Title:    domain.FieldSelectors{".task-title"},
					Location: domain.FieldSelectors{".task-location"},
					Salary:   domain.FieldSelectors{".task-price"},
					URL:      domain.FieldSelectors{"a.task-link"},
				},
			},
			{
				Name:       "Upwork",
				BaseURL:    "https://www.upwork.com",
				SearchURL:  "https://www.upwork.com/nx/search/jobs",
				Type:       domain.SourceTypeGig,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"admin", "blue-collar"},
				Template: &domain.ExtractionTemplate{
					Jobs:     ".job-tile",
					Title:    domain.FieldSelectors{".job-title"},
					Company:  domain.FieldSelectors{".client-info"},
					Location: domain.FieldSelectors{".job-location"},
					Salary:   domain.FieldSelectors{".job-budget"},
					URL:      domain.FieldSelectors{"a.job-link"},
				},
			},
			{
				Name:       "Thumbtack",
				BaseURL:    "https://www.thumbtack.com",
				SearchURL:  "https://www.thumbtack.com/search",
				Type:       domain.SourceTypeGig,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"blue-collar"},
				Template: &domain.ExtractionTemplate{
					Jobs:     ".pro-listing",
					Title:    domain.FieldSelectors{".service-title"},
					Location: domain.FieldSelectors{".pro-location"},
					Salary:   domain.FieldSelectors{".service-price"},
					URL:      domain.FieldSelectors{"a.pro-link"},
				},
			},
		},
	},
	GroupATSPlatforms: {
		Name: "ATS Platforms",
		Sources: []domain.SourceDefinition{
			{
				Name:       "Greenhouse",
				BaseURL:    "https://boards.greenhouse.io",
				Type:       domain.SourceTypeATS,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"admin", "blue-collar"},
				Template:   boardListing,
			},
			{
				Name:       "Lever",
				BaseURL:    "https://jobs.lever.co",
				Type:       domain.SourceTypeATS,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"admin", "blue-collar"},
				Template:   boardListing,
			},
			{
				Name:       "Workday",
				BaseURL:    "https://workday.wd5.myworkdayjobs.com",
				Type:       domain.SourceTypeATS,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"admin", "blue-collar"},
				Template:   boardListing,
				RenderJS:   true,
			},
			{
				Name:       "BambooHR",
				BaseURL:    "https://careers.bamboohr.com",
				Type:       domain.SourceTypeATS,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"admin", "blue-collar"},
				Template:   boardListing,
			},
		},
	},
	GroupBlueCollar: {
		Name: "Blue Collar Job Boards",
		Sources: []domain.SourceDefinition{
			{
				Name:       "Blue Collar Jobs",
				BaseURL:    "https://www.bluecollarjobs.com",
				SearchURL:  "https://www.bluecollarjobs.com/jobs",
				Type:       domain.SourceTypeNiche,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"blue-collar"},
				Template:   boardListing,
			},
			{
				Name:       "Construction Jobs",
				BaseURL:    "https://www.constructionjobs.com",
				SearchURL:  "https://www.constructionjobs.com/search",
				Type:       domain.SourceTypeNiche,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"blue-collar"},
				Template:   boardListing,
			},
			{
				Name:       "Trucking Jobs",
				BaseURL:    "https://www.truckingjobs.com",
				SearchURL:  "https://www.truckingjobs.com/jobs",
				Type:       domain.SourceTypeNiche,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"blue-collar"},
				Template:   boardListing,
			},
			{
				Name:       "Manufacturing Jobs",
				BaseURL:    "https://www.manufacturingjobs.com",
				SearchURL:  "https://www.manufacturingjobs.com/search",
				Type:       domain.SourceTypeNiche,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"blue-collar"},
				Template:   boardListing,
			},
		},
	},
	GroupAdmin: {
		Name: "Administrative Job Boards",
		Sources: []domain.SourceDefinition{
			{
				Name:       "Admin Jobs",
				BaseURL:    "https://www.adminjobs.com",
				SearchURL:  "https://www.adminjobs.com/search",
				Type:       domain.SourceTypeNiche,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"admin"},
				Template:   boardListing,
			},
			{
				Name:       "Office Jobs",
				BaseURL:    "https://www.officejobs.com",
				SearchURL:  "https://www.officejobs.com/jobs",
				Type:       domain.SourceTypeNiche,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"admin"},
				Template:   boardListing,
			},
			{
				Name:       "Receptionist Jobs",
				BaseURL:    "https://www.receptionistjobs.com",
				SearchURL:  "https://www.receptionistjobs.com/search",
				Type:       domain.SourceTypeNiche,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"admin"},
				Template:   boardListing,
			},
		},
	},
	GroupRegional: {
		Name: "Regional Job Boards",
		Sources: []domain.SourceDefinition{
			{
				Name:           "Craigslist NYC Jobs",
				BaseURL:        "https://newyork.craigslist.org",
				SearchURL:      "https://newyork.craigslist.org/search/jjj?format=rss",
				Type:           domain.SourceTypeRegional,
				Kind:           domain.ContentKindRSS,
				Country:        "US",
				Categories:     []string{"blue-collar", "admin"},
				AssumeRelevant: true,
			},
			{
				Name:       "Kijiji Jobs",
				BaseURL:    "https://www.kijiji.ca",
				SearchURL:  "https://www.kijiji.ca/jobs",
				Type:       domain.SourceTypeRegional,
				Kind:       domain.ContentKindHTML,
				Country:    "CA",
				Categories: []string{"blue-collar", "admin"},
				Template:   boardListing,
			},
			{
				Name:       "Gumtree Jobs",
				BaseURL:    "https://www.gumtree.com",
				SearchURL:  "https://www.gumtree.com/jobs",
				Type:       domain.SourceTypeRegional,
				Kind:       domain.ContentKindHTML,
				Country:    "UK",
				Categories: []string{"blue-collar", "admin"},
				Template:   boardListing,
			},
		},
	},
	GroupRemote: {
		Name: "Remote Job Boards",
		Sources: []domain.SourceDefinition{
			{
				Name:       "Remote.co",
				BaseURL:    "https://remote.co",
				SearchURL:  "https://remote.co/feed/",
				Type:       domain.SourceTypeNiche,
				Kind:       domain.ContentKindRSS,
				Country:    "US",
				Categories: []string{"admin", "remote"},
			},
			{
				Name:       "WeWorkRemotely",
				BaseURL:    "https://weworkremotely.com",
				SearchURL:  "https://weworkremotely.com/categories/remote-jobs.rss",
				Type:       domain.SourceTypeNiche,
				Kind:       domain.ContentKindRSS,
				Country:    "US",
				Categories: []string{"admin", "remote"},
			},
		},
	},
	GroupCompanyPages: {
		Name: "Company Career Pages",
		Sources: []domain.SourceDefinition{
			{
				Name:       "General Motors",
				BaseURL:    "https://careers.gm.com",
				SearchURL:  "https://careers.gm.com/jobs",
				Type:       domain.SourceTypeCompany,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"blue-collar"},
			},
			{
				Name:       "UPS",
				BaseURL:    "https://www.jobs-ups.com",
				SearchURL:  "https://www.jobs-ups.com/search",
				Type:       domain.SourceTypeCompany,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"blue-collar"},
			},
			{
				Name:       "FedEx",
				BaseURL:    "https://careers.fedex.com",
				SearchURL:  "https://careers.fedex.com/jobs",
				Type:       domain.SourceTypeCompany,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"blue-collar"},
			},
			{
				Name:       "Bechtel",
				BaseURL:    "https://careers.bechtel.com",
				SearchURL:  "https://careers.bechtel.com/jobs",
				Type:       domain.SourceTypeCompany,
				Kind:       domain.ContentKindHTML,
				Country:    "US",
				Categories: []string{"blue-collar"},
			},
		},
	},
}

// Registry is the read-only catalog view handed to the selector and the
// API layer.
type Registry struct {
	groups map[string]Group
}

// NewRegistry returns a registry over the built-in catalog.
func NewRegistry() *Registry {
	return &Registry{groups: defaultCatalog}
}

// NewRegistryWithCatalog returns a registry over a caller-supplied catalog.
// Tests use this to seed deterministic source sets.
func NewRegistryWithCatalog(groups map[string]Group) *Registry {
	return &Registry{groups: groups}
}

// Group returns the named group and whether it exists.
func (r *Registry) Group(key string) (Group, bool) {
	g, ok := r.groups[key]
	return g, ok
}

// ListSources returns every source of the given type, across all groups.
// An unknown type yields an empty list.
func (r *Registry) ListSources(sourceType domain.SourceType) []domain.SourceDefinition {
	var out []domain.SourceDefinition
	for _, key := range r.groupKeys() {
		for _, src := range r.groups[key].Sources {
			if src.Type == sourceType {
				out = append(out, src)
			}
		}
	}
	return out
}

// AllCategories returns the sorted set of category tags in the catalog.
func (r *Registry) AllCategories() []string {
	set := map[string]struct{}{}
	for _, g := range r.groups {
		for _, src := range g.Sources {
			for _, c := range src.Categories {
				set[c] = struct{}{}
			}
		}
	}
	return sortedKeys(set)
}

// AllCountries returns the sorted set of countries in the catalog.
func (r *Registry) AllCountries() []string {
	set := map[string]struct{}{}
	for _, g := range r.groups {
		for _, src := range g.Sources {
			set[src.Country] = struct{}{}
		}
	}
	return sortedKeys(set)
}

// Statistics summarizes the catalog for the API surface.
type Statistics struct {
	TotalSources int            `json:"total_sources"`
	ByCountry    map[string]int `json:"by_country"`
	ByCategory   map[string]int `json:"by_category"`
	ByType       map[string]int `json:"by_type"`
}

// Stats counts sources by country, category and type.
func (r *Registry) Stats() Statistics {
	stats := Statistics{
		ByCountry:  map[string]int{},
		ByCategory: map[string]int{},
		ByType:     map[string]int{},
	}
	for _, g := range r.groups {
		for _, src := range g.Sources {
			stats.TotalSources++
			stats.ByCountry[src.Country]++
			stats.ByType[string(src.Type)]++
			for _, c := range src.Categories {
				stats.ByCategory[c]++
			}
		}
	}
	return stats
}

func (r *Registry) groupKeys() []string {
	keys := make([]string, 0, len(r.groups))
	for k := range r.groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
