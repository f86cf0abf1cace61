package sources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobhunter/backend/internal/domain"
)

func TestRegistry_GroupLookup(t *testing.T) {
	r := NewRegistry()

	g, ok := r.Group(GroupUSGovernment)
	require.True(t, ok)
	assert.Equal(t, "US Government Jobs", g.Name)
	assert.NotEmpty(t, g.Sources)

	_, ok = r.Group("nope")
	assert.False(t, ok)
}

func TestRegistry_EverySourceIsWellFormed(t *testing.T) {
	r := NewRegistry()
	for _, key := range []string{
		GroupUSGovernment, GroupUKGovernment, GroupCanadaGovernment,
		GroupGigEconomy, GroupATSPlatforms, GroupBlueCollar, GroupAdmin,
		GroupRegional, GroupRemote, GroupCompanyPages,
	} {
		g, ok := r.Group(key)
		require.True(t, ok, "missing group %s", key)
		for _, src := range g.Sources {
			assert.NotEmpty(t, src.Name, "group %s", key)
			assert.NotEmpty(t, src.BaseURL, "source %s", src.Name)
			assert.NotEmpty(t, src.Country, "source %s", src.Name)
			assert.NotEmpty(t, src.FetchURL(), "source %s", src.Name)
		}
	}
}

func TestRegistry_ListSourcesByType(t *testing.T) {
	r := NewRegistry()

	gov := r.ListSources(domain.SourceTypeGovernment)
	require.NotEmpty(t, gov)
	for _, src := range gov {
		assert.Equal(t, domain.SourceTypeGovernment, src.Type)
	}

	assert.Empty(t, r.ListSources(domain.SourceType("bogus")))
}

func TestRegistry_Stats(t *testing.T) {
	r := NewRegistry()
	stats := r.Stats()

	assert.Greater(t, stats.TotalSources, 20)
	assert.Greater(t, stats.ByCountry["US"], 0)
	assert.Greater(t, stats.ByCountry["UK"], 0)
	assert.Greater(t, stats.ByCountry["CA"], 0)
	assert.Greater(t, stats.ByType[string(domain.SourceTypeGovernment)], 0)
	assert.Greater(t, stats.ByCategory["blue-collar"], 0)
}

func TestRegistry_AllCategoriesSorted(t *testing.T) {
	r := NewRegistry()
	cats := r.AllCategories()

	require.NotEmpty(t, cats)
	assert.IsIncreasing(t, cats)
	assert.Contains(t, cats, "blue-collar")
	assert.Contains(t, cats, "admin")
}

func TestSourceTierDerivation(t *testing.T) {
	tests := []struct {
		name string
		src  domain.SourceDefinition
		want domain.Tier
	}{
		{"rss is fast", domain.SourceDefinition{Kind: domain.ContentKindRSS}, domain.TierFast},
		{"gov api is medium", domain.SourceDefinition{Kind: domain.ContentKindJSON, Type: domain.SourceTypeGovernment}, domain.TierMedium},
		{"other api is fast", domain.SourceDefinition{Kind: domain.ContentKindJSON, Type: domain.SourceTypeGig}, domain.TierFast},
		{"html is slow", domain.SourceDefinition{Kind: domain.ContentKindHTML}, domain.TierSlow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.src.Tier())
		})
	}
}
