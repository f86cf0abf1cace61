package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/domain"
)

func htmlSource(tpl *domain.ExtractionTemplate) domain.SourceDefinition {
	return domain.SourceDefinition{
		Name:       "Blue Collar Jobs",
		BaseURL:    "https://bluecollarjobs.com",
		Type:       domain.SourceTypeNiche,
		Kind:       domain.ContentKindHTML,
		Country:    "US",
		Categories: []string{"blue-collar"},
		Template:   tpl,
	}
}

const templatedListing = `
<html><body>
  <div class="job-listing">
    <div class="job-title">Forklift Operator - 3+ years exp, $18-$22/hr</div>
    <div class="company-name">Metro Warehouse</div>
    <div class="job-location">Brooklyn, NY</div>
    <a class="job-link" href="/jobs/forklift-operator-123">View</a>
  </div>
  <div class="job-listing">
    <div class="job-title">Warehouse Associate</div>
    <div class="company-name">Prime Distribution</div>
    <div class="job-location">Queens, NY</div>
    <a class="job-link" href="https://bluecollarjobs.com/jobs/warehouse-456">View</a>
  </div>
</body></html>`

func boardTemplate() *domain.ExtractionTemplate {
	return &domain.ExtractionTemplate{
		Jobs:     ".job-listing",
		Title:    domain.FieldSelectors{".job-title"},
		Company:  domain.FieldSelectors{".company-name"},
		Location: domain.FieldSelectors{".job-location"},
		Salary:   domain.FieldSelectors{".salary-info"},
		URL:      domain.FieldSelectors{"a.job-link"},
	}
}

func TestExtract_TemplatedHTML(t *testing.T) {
	e := New(zap.NewNop())
	cands := e.Extract(templatedListing, htmlSource(boardTemplate()), "")
	require.Len(t, cands, 2)

	first := cands[0]
	assert.Equal(t, "Forklift Operator - 3+ years exp, $18-$22/hr", first.Title)
	assert.Equal(t, "Metro Warehouse", first.Company)
	assert.Equal(t, "Brooklyn, NY", first.Location)
	// Relative hrefs resolve against the source base URL.
	assert.Equal(t, "https://bluecollarjobs.com/jobs/forklift-operator-123", first.URL)
	// No salary element on the page, so the title heuristic fills it in.
	assert.Equal(t, "$18-$22/hr", first.Salary)

	assert.Equal(t, "https://bluecollarjobs.com/jobs/warehouse-456", cands[1].URL)
}

func TestExtract_EveryCandidateHasTitleAndURL(t *testing.T) {
	// The second listing has no link and the third no title; both must
	// be dropped.
	payload := `
<html><body>
  <div class="job-listing">
    <div class="job-title">Electrician</div>
    <a class="job-link" href="/jobs/1">View</a>
  </div>
  <div class="job-listing">
    <div class="job-title">Plumber</div>
  </div>
  <div class="job-listing">
    <a class="job-link" href="/jobs/3">View</a>
  </div>
</body></html>`

	e := New(zap.NewNop())
	cands := e.Extract(payload, htmlSource(boardTemplate()), "")
	require.Len(t, cands, 1)
	for _, c := range cands {
		assert.NotEmpty(t, c.Title)
		assert.NotEmpty(t, c.URL)
	}
}

func TestExtract_DefaultsCompanyAndLocation(t *testing.T) {
	payload := `
<html><body>
  <div class="job-listing">
    <div class="job-title">Dock Worker</div>
    <a class="job-link" href="/jobs/dock">View</a>
  </div>
</body></html>`

	e := New(zap.NewNop())
	cands := e.Extract(payload, htmlSource(boardTemplate()), "")
	require.Len(t, cands, 1)
	assert.Equal(t, "Blue Collar Jobs", cands[0].Company)
	assert.Equal(t, "Various", cands[0].Location)
}

func TestExtract_MalformedInputYieldsNothing(t *testing.T) {
	e := New(zap.NewNop())
	assert.Empty(t, e.Extract("", htmlSource(nil), ""))
	assert.Empty(t, e.Extract("not markup at all", htmlSource(nil), ""))
}

func TestPromote_StampsSourceIdentity(t *testing.T) {
	src := htmlSource(nil)

	cands := []Candidate{
		{Title: "Forklift Operator - 3+ years exp, $18-$22/hr", URL: "https://bluecollarjobs.com/jobs/1", Salary: "$18-$22/hr"},
		{Title: "", URL: "https://bluecollarjobs.com/jobs/2"},
	}
	records := Promote(cands, src)
	require.Len(t, records, 1)

	r := records[0]
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, "Blue Collar Jobs", r.Source)
	assert.Equal(t, domain.SourceTypeNiche, r.SourceType)
	assert.Equal(t, "US", r.Country)
	require.NotNil(t, r.ExperienceYears)
	assert.Equal(t, 3, *r.ExperienceYears)
	assert.Contains(t, r.Salary, "18")
	assert.Contains(t, r.Salary, "22")
	assert.False(t, r.PostedDate.IsZero())
}
