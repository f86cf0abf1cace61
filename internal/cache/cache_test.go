package cache

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jobhunter/backend/internal/domain"
)

func TestKey_StableAcrossListOrder(t *testing.T) {
	a := domain.SearchPreferences{
		Title:      "Forklift Operator",
		Categories: []string{"blue-collar", "admin"},
		Countries:  []string{"US", "CA"},
	}
	b := domain.SearchPreferences{
		Title:      "Forklift Operator",
		Categories: []string{"admin", "blue-collar"},
		Countries:  []string{"CA", "US"},
	}

	assert.Equal(t, Key(a), Key(b))
}

func TestKey_CaseInsensitiveTitleAndLocation(t *testing.T) {
	a := domain.SearchPreferences{Title: "Forklift Operator", Location: "Brooklyn"}
	b := domain.SearchPreferences{Title: "forklift operator", Location: "BROOKLYN"}

	assert.Equal(t, Key(a), Key(b))
}

func TestKey_DistinguishesPreferences(t *testing.T) {
	base := domain.SearchPreferences{Title: "Cleaner"}

	variants := []domain.SearchPreferences{
		{Title: "Cleaner", Location: "Queens"},
		{Title: "Cleaner", Remote: true},
		{Title: "Cleaner", ExperienceYears: 2},
		{Title: "Cleaner", PostedAfterDays: 7},
		{Title: "Mover"},
	}
	for _, v := range variants {
		assert.NotEqual(t, Key(base), Key(v), "variant %+v should hash differently", v)
	}
}

func TestKey_Format(t *testing.T) {
	key := Key(domain.SearchPreferences{Title: "Cleaner"})
	assert.True(t, strings.HasPrefix(key, keyPrefix))
	// Prefix plus a hex-encoded SHA-256 digest.
	assert.Len(t, key, len(keyPrefix)+64)
}
