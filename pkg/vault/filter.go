package vault

import "strings"

// Filter selects notes the way a search view would. The zero Filter matches
// every note.
type Filter struct {
	// Query terms, separated by whitespace, must each appear in the path,
	// title or one of the aliases. Matching is case-insensitive.
	Query string
	// Tags must all be present on the note. A leading '#' is ignored and a
	// nested tag such as "project/active" satisfies "project".
	Tags []string
}

// IsZero reports whether the filter matches everything.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" && len(normalizeTags(f.Tags)) == 0
}

// Match reports whether n satisfies the filter.
func (f Filter) Match(n Note) bool {
	for _, term := range strings.Fields(strings.ToLower(f.Query)) {
		if !matchTerm(n, term) {
			return false
		}
	}
	for _, want := range normalizeTags(f.Tags) {
		if !hasTag(n.Tags, want) {
			return false
		}
	}
	return true
}

// Apply returns the notes that match, preserving order.
func (f Filter) Apply(notes []Note) []Note {
	out := make([]Note, 0, len(notes))
	for _, n := range notes {
		if f.Match(n) {
			out = append(out, n)
		}
	}
	return out
}

// Paths returns the vault-relative path of each note.
func Paths(notes []Note) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Path
	}
	return out
}

func matchTerm(n Note, term string) bool {
	if strings.Contains(strings.ToLower(n.Path), term) ||
		strings.Contains(strings.ToLower(n.Title), term) {
		return true
	}
	for _, a := range n.Aliases {
		if strings.Contains(strings.ToLower(a), term) {
			return true
		}
	}
	return false
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want || strings.HasPrefix(t, want+"/") {
			return true
		}
	}
	return false
}
