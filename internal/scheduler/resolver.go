package scheduler

import (
	"sort"
	"strings"
)

// NameResolver maps an event's appliance name onto a working-space key
// when they don't match verbatim: exact match ->
// suffix match on "<name> (" prefix -> substring match -> shared-
// keyword match, ties broken by first match in sorted key order. Built
// once per house and reused.
type NameResolver struct {
	keys []string // sorted
}

// NewNameResolver builds a resolver over the given set of working-space
// keys (e.g. all appliance names with a WorkingSpace in the house).
func NewNameResolver(keys []string) *NameResolver {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Strings(sorted)
	return &NameResolver{keys: sorted}
}

// Resolve returns the working-space key matching eventApplianceName,
// and whether a match was found.
func (r *NameResolver) Resolve(eventApplianceName string) (string, bool) {
	// 1. exact match
	for _, k := range r.keys {
		if k == eventApplianceName {
			return k, true
		}
	}
	// 2. suffix match on "<name> (" prefix, e.g. "Washing Machine" ->
	// "Washing Machine (1)"
	prefix := eventApplianceName + " ("
	for _, k := range r.keys {
		if strings.HasPrefix(k, prefix) {
			return k, true
		}
	}
	// 3. substring match, either direction
	lowerName := strings.ToLower(eventApplianceName)
	for _, k := range r.keys {
		lowerKey := strings.ToLower(k)
		if strings.Contains(lowerKey, lowerName) || strings.Contains(lowerName, lowerKey) {
			return k, true
		}
	}
	// 4. shared-keyword match
	nameWords := wordSet(eventApplianceName)
	for _, k := range r.keys {
		keyWords := wordSet(k)
		if sharesWord(nameWords, keyWords) {
			return k, true
		}
	}
	return "", false
}

func wordSet(s string) map[string]bool {
	words := strings.Fields(strings.ToLower(s))
	set := make(map[string]bool, len(words))
	for _, w := range words {
		if len(w) >= 3 {
			set[w] = true
		}
	}
	return set
}

func sharesWord(a, b map[string]bool) bool {
	for w := range a {
		if b[w] {
			return true
		}
	}
	return false
}
