package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/tabscope/tabscope/internal/storage"
)

// DefaultSuggestionLimit caps the number of returned group suggestions.
const DefaultSuggestionLimit = 10

// minGroupableTabs is the floor below which no suggestions are attempted.
const minGroupableTabs = 3

// stopWords are title tokens too generic to seed a keyword group.
var stopWords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "in": {}, "on": {}, "at": {}, "to": {},
	"for": {}, "of": {}, "and": {}, "or": {}, "is": {}, "are": {}, "was": {},
}

// TabRef identifies one member tab of a suggestion. AgeDays is nil when the
// tab's age is unknown.
type TabRef struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	AgeDays *int   `json:"age_days"`
}

// GroupSuggestion is one proposed tab group. OldestAge is the maximum known
// member age in days, or 0 when every member's age is unknown.
type GroupSuggestion struct {
	Name      string   `json:"name"`
	Reason    string   `json:"reason"`
	Count     int      `json:"count"`
	Tabs      []TabRef `json:"tabs"`
	OldestAge int      `json:"oldest_age"`
}

// Suggester proposes tab groups over the most recent snapshot.
type Suggester struct {
	store storage.Store
}

// NewSuggester creates a Suggester over the given store.
func NewSuggester(store storage.Store) *Suggester {
	return &Suggester{store: store}
}

// Suggest loads the latest snapshot's tabs and returns ranked group
// suggestions. An empty store yields an empty slice.
func (s *Suggester) Suggest(ctx context.Context, limit int) ([]GroupSuggestion, error) {
	latest, err := s.store.LatestSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("latest snapshot: %w", err)
	}
	if latest == nil {
		return []GroupSuggestion{}, nil
	}

	tabs, err := s.store.SnapshotTabs(ctx, latest.ID)
	if err != nil {
		return nil, fmt.Errorf("snapshot tabs: %w", err)
	}

	return SuggestGroups(tabs, limit), nil
}

// SuggestGroups runs all clustering strategies over a set of tabs, merges
// the qualifying groups, and returns them sorted by member count descending,
// truncated to limit. Strategies run in a fixed order with sorted group keys
// so output is deterministic; a tab may appear in several groups.
func SuggestGroups(tabs []storage.TabDetail, limit int) []GroupSuggestion {
	if limit <= 0 {
		limit = DefaultSuggestionLimit
	}

	groups := []GroupSuggestion{}
	if len(tabs) < minGroupableTabs {
		return groups
	}

	groups = append(groups, domainGroups(tabs)...)
	groups = append(groups, ageGroups(tabs)...)
	groups = append(groups, keywordGroups(tabs)...)
	groups = append(groups, recencyGroup(tabs)...)

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Count > groups[j].Count
	})

	if len(groups) > limit {
		groups = groups[:limit]
	}
	return groups
}

// domainGroups clusters tabs sharing a normalized domain; at least three
// tabs per domain qualify. Tabs with no resolvable domain never group.
func domainGroups(tabs []storage.TabDetail) []GroupSuggestion {
	byDomain := map[string][]storage.TabDetail{}
	for _, tab := range tabs {
		if tab.Domain == "" {
			continue
		}
		byDomain[tab.Domain] = append(byDomain[tab.Domain], tab)
	}

	domains := make([]string, 0, len(byDomain))
	for d, members := range byDomain {
		if len(members) >= 3 {
			domains = append(domains, d)
		}
	}
	sort.Strings(domains)

	groups := make([]GroupSuggestion, 0, len(domains))
	for _, d := range domains {
		members := byDomain[d]
		groups = append(groups, newGroup(
			capitalize(d)+" Tabs",
			fmt.Sprintf("Same website (%d tabs)", len(members)),
			members,
		))
	}
	return groups
}

// ageGroups proposes an old-tabs group (over 30 days, two or more members)
// and a medium-age group (7 to 30 days, three or more members). Tabs with
// unknown age belong to neither.
func ageGroups(tabs []storage.TabDetail) []GroupSuggestion {
	var old, medium []storage.TabDetail
	for _, tab := range tabs {
		if tab.AgeDays == nil {
			continue
		}
		switch age := *tab.AgeDays; {
		case age > 30:
			old = append(old, tab)
		case age >= 7:
			medium = append(medium, tab)
		}
	}

	var groups []GroupSuggestion
	if len(old) >= 2 {
		groups = append(groups, newGroup(
			"Old Tabs (30+ days)",
			fmt.Sprintf("Tabs older than 30 days (%d tabs)", len(old)),
			old,
		))
	}
	if len(medium) >= 3 {
		groups = append(groups, newGroup(
			"Week-old Tabs (7-30 days)",
			fmt.Sprintf("Tabs between 1-4 weeks old (%d tabs)", len(medium)),
			medium,
		))
	}
	return groups
}

// keywordGroups clusters tabs whose titles share a significant token: longer
// than three characters, not a stop word, and present in at least three
// distinct titles. Membership is a case-insensitive substring match, so a
// group can pick up tabs where the token appears inside a longer word.
func keywordGroups(tabs []storage.TabDetail) []GroupSuggestion {
	titleCount := map[string]int{}
	for _, tab := range tabs {
		seen := map[string]struct{}{}
		for _, word := range strings.Fields(tab.Title) {
			token := strings.ToLower(word)
			if len(token) <= 3 {
				continue
			}
			if _, stop := stopWords[token]; stop {
				continue
			}
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			titleCount[token]++
		}
	}

	tokens := make([]string, 0, len(titleCount))
	for token, n := range titleCount {
		if n >= 3 {
			tokens = append(tokens, token)
		}
	}
	sort.Strings(tokens)

	var groups []GroupSuggestion
	for _, token := range tokens {
		var members []storage.TabDetail
		for _, tab := range tabs {
			if strings.Contains(strings.ToLower(tab.Title), token) {
				members = append(members, tab)
			}
		}
		if len(members) >= 3 {
			groups = append(groups, newGroup(
				capitalize(token)+" Tabs",
				fmt.Sprintf("Tabs with '%s' in the title (%d tabs)", token, len(members)),
				members,
			))
		}
	}
	return groups
}

// recencyGroup proposes a single group of tabs opened today (age exactly
// zero), when there are at least three.
func recencyGroup(tabs []storage.TabDetail) []GroupSuggestion {
	var recent []storage.TabDetail
	for _, tab := range tabs {
		if tab.AgeDays != nil && *tab.AgeDays == 0 {
			recent = append(recent, tab)
		}
	}
	if len(recent) < 3 {
		return nil
	}
	return []GroupSuggestion{newGroup(
		"Recent Tabs (Today)",
		fmt.Sprintf("Tabs opened today (%d tabs)", len(recent)),
		recent,
	)}
}

// newGroup builds a suggestion from member tabs, computing the oldest known
// age. All-unknown members report 0.
func newGroup(name, reason string, members []storage.TabDetail) GroupSuggestion {
	refs := make([]TabRef, len(members))
	oldest := 0
	for i, tab := range members {
		refs[i] = TabRef{
			ID:      tab.BrowserTabID,
			Title:   tab.Title,
			URL:     tab.URL,
			AgeDays: tab.AgeDays,
		}
		if tab.AgeDays != nil && *tab.AgeDays > oldest {
			oldest = *tab.AgeDays
		}
	}
	return GroupSuggestion{
		Name:      name,
		Reason:    reason,
		Count:     len(members),
		Tabs:      refs,
		OldestAge: oldest,
	}
}

// capitalize upper-cases the first rune, leaving the rest untouched.
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
