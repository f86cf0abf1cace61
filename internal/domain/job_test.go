package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecordID(t *testing.T) {
	id := RecordID("Blue Collar Jobs", 2)

	assert.True(t, strings.HasPrefix(id, "blue_collar_jobs_2_"))
	// The trailing component is the wall-clock stamp.
	parts := strings.Split(id, "_")
	assert.NotEmpty(t, parts[len(parts)-1])
}

func TestWantsAllBoards(t *testing.T) {
	assert.True(t, SearchPreferences{}.WantsAllBoards())
	assert.True(t, SearchPreferences{JobBoards: []string{"ALL"}}.WantsAllBoards())
	assert.True(t, SearchPreferences{JobBoards: []string{"gig", "all"}}.WantsAllBoards())
	assert.False(t, SearchPreferences{JobBoards: []string{"gig"}}.WantsAllBoards())
}

func TestHasCountry(t *testing.T) {
	assert.True(t, SearchPreferences{}.HasCountry("US"))
	assert.True(t, SearchPreferences{Countries: []string{"us"}}.HasCountry("US"))
	assert.False(t, SearchPreferences{Countries: []string{"UK"}}.HasCountry("US"))
}

func TestMatchesAnyCategory(t *testing.T) {
	src := SourceDefinition{Categories: []string{"blue-collar"}}

	assert.True(t, src.MatchesAnyCategory(nil))
	assert.True(t, src.MatchesAnyCategory([]string{"admin", "blue-collar"}))
	assert.False(t, src.MatchesAnyCategory([]string{"admin"}))
}

func TestFetchURL(t *testing.T) {
	withSearch := SourceDefinition{BaseURL: "https://a.example", SearchURL: "https://a.example/search"}
	assert.Equal(t, "https://a.example/search", withSearch.FetchURL())

	baseOnly := SourceDefinition{BaseURL: "https://a.example"}
	assert.Equal(t, "https://a.example", baseOnly.FetchURL())
}
