package domain

import "strings"

// Keyword is an entry of the fixed keyword catalog.
type Keyword struct {
	ID   int64
	Name string
}

// KeywordDiff returns the keyword ids that must be added to and removed from
// current to obtain desired.
func KeywordDiff(current, desired []int64) (add, remove []int64) {
	want := make(map[int64]struct{}, len(desired))
	for _, id := range desired {
		want[id] = struct{}{}
	}
	have := make(map[int64]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
		if _, ok := want[id]; !ok {
			remove = append(remove, id)
		}
	}
	for _, id := range desired {
		if _, ok := have[id]; !ok {
			add = append(add, id)
			have[id] = struct{}{}
		}
	}
	return add, remove
}

// MissingKeywords returns the requested names that none of found matches,
// compared case-insensitively. Duplicates are reported once.
func MissingKeywords(requested []string, found []Keyword) []string {
	known := make(map[string]struct{}, len(found))
	for _, k := range found {
		known[strings.ToLower(k.Name)] = struct{}{}
	}
	var missing []string
	seen := make(map[string]struct{})
	for _, name := range requested {
		key := strings.ToLower(name)
		if _, ok := known[key]; ok {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		missing = append(missing, name)
	}
	return missing
}
