package sources

import (
	"github.com/jobhunter/backend/internal/domain"
)

// SelectorConfig bounds how much of the catalog one run may visit. The
// caps trade recall for latency.
type SelectorConfig struct {
	MaxSourcesPerGroup int
	MaxGroups          int
}

// DefaultSelectorConfig mirrors the production caps.
func DefaultSelectorConfig() SelectorConfig {
	return SelectorConfig{
		MaxSourcesPerGroup: 3,
		MaxGroups:          3,
	}
}

// Selection is the outcome of source selection: the in-scope sources
// bucketed by scheduling tier. Order within each bucket follows group
// resolution order.
type Selection struct {
	Fast   []domain.SourceDefinition
	Medium []domain.SourceDefinition
	Slow   []domain.SourceDefinition
}

// Total counts every selected source.
func (s Selection) Total() int {
	return len(s.Fast) + len(s.Medium) + len(s.Slow)
}

// boardGroups maps explicit job-board tokens to catalog group keys.
var boardGroups = map[string][]string{
	"government":  {GroupUSGovernment, GroupUKGovernment, GroupCanadaGovernment},
	"gig":         {GroupGigEconomy},
	"ats":         {GroupATSPlatforms},
	"blue-collar": {GroupBlueCollar},
	"admin":       {GroupAdmin},
	"regional":    {GroupRegional},
	"remote":      {GroupRemote},
	"company":     {GroupCompanyPages},
}

// countryGroups maps a country code to its government group.
var countryGroups = map[string]string{
	"US": GroupUSGovernment,
	"UK": GroupUKGovernment,
	"CA": GroupCanadaGovernment,
}

// Selector resolves SearchPreferences to a bounded, tiered source list.
type Selector struct {
	registry *Registry
	cfg      SelectorConfig
}

// NewSelector builds a selector over the given registry.
func NewSelector(registry *Registry, cfg SelectorConfig) *Selector {
	return &Selector{registry: registry, cfg: cfg}
}

// Select resolves the preference set to group keys, dedups them, caps the
// group count, then filters and caps individual sources per group. Keys
// absent from the registry do not consume group budget.
func (s *Selector) Select(prefs domain.SearchPreferences) Selection {
	keys := dedup(s.resolveGroups(prefs))

	var sel Selection
	visited := 0
	for _, key := range keys {
		if visited >= s.cfg.MaxGroups {
			break
		}
		group, ok := s.registry.Group(key)
		if !ok {
			continue
		}
		visited++
		picked := 0
		for _, src := range group.Sources {
			if picked >= s.cfg.MaxSourcesPerGroup {
				break
			}
			if !prefs.HasCountry(src.Country) {
				continue
			}
			if !src.MatchesAnyCategory(prefs.Categories) {
				continue
			}
			switch src.Tier() {
			case domain.TierFast:
				sel.Fast = append(sel.Fast, src)
			case domain.TierMedium:
				sel.Medium = append(sel.Medium, src)
			default:
				sel.Slow = append(sel.Slow, src)
			}
			picked++
		}
	}
	return sel
}

// resolveGroups computes the group keys in scope, in insertion order.
func (s *Selector) resolveGroups(prefs domain.SearchPreferences) []string {
	if !prefs.WantsAllBoards() {
		var keys []string
		for _, board := range prefs.JobBoards {
			keys = append(keys, boardGroups[board]...)
		}
		return keys
	}

	var keys []string

	// Government boards only for countries explicitly listed. Leaving
	// the list empty skips the government groups entirely rather than
	// pulling in all of them, which would eat the whole group budget.
	if len(prefs.Countries) > 0 {
		for _, country := range []string{"US", "UK", "CA"} {
			if prefs.HasCountry(country) {
				keys = append(keys, countryGroups[country])
			}
		}
	}

	// Gig platforms only when a gig-relevant category is requested.
	for _, c := range prefs.Categories {
		if c == "blue-collar" || c == "admin" {
			keys = append(keys, GroupGigEconomy)
			break
		}
	}

	keys = append(keys, GroupATSPlatforms)

	// Niche boards by category.
	for _, c := range prefs.Categories {
		switch c {
		case "blue-collar":
			keys = append(keys, GroupBlueCollar)
		case "admin":
			keys = append(keys, GroupAdmin)
		}
	}

	if prefs.Remote {
		keys = append(keys, GroupRemote)
	}

	keys = append(keys, GroupRegional, GroupCompanyPages)
	return keys
}

func dedup(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}
