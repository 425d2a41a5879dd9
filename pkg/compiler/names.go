package compiler

import (
	"fmt"
	"strings"
)

// nameResolver assigns unique, stable IR names from human labels. Naming
// is first-come-first-served in canvas order: the same nodes in a
// different order may receive different names, and that is deliberate —
// downstream run history references IR names by value, so a build must
// never reshuffle names behind the author's back within a session.
type nameResolver struct {
	used map[string]bool
}

func newNameResolver() *nameResolver {
	return &nameResolver{used: map[string]bool{
		StartName: true,
		EndName:   true,
	}}
}

// resolve slugifies the first candidate that yields a non-empty slug and
// reserves a unique variant of it. Callers pass the label, the canvas id,
// and a positional fallback, in that order; a fully empty chain becomes
// "node".
func (r *nameResolver) resolve(candidates ...string) string {
	var slug string
	for _, c := range candidates {
		if slug = slugify(c); slug != "" {
			break
		}
	}
	if slug == "" {
		slug = "node"
	}
	if !r.used[slug] {
		r.used[slug] = true
		return slug
	}
	// First-fit suffix, monotonically increasing. Freed suffixes are
	// never reused because nothing is ever freed within a build.
	for i := 2; ; i++ {
		candidate := fmt.Sprintf("%s-%d", slug, i)
		if !r.used[candidate] {
			r.used[candidate] = true
			return candidate
		}
	}
}

// slugify lowercases s, collapses every run of non [a-z0-9] characters to
// a single hyphen, and trims leading/trailing hyphens.
func slugify(s string) string {
	var sb strings.Builder
	lastHyphen := false
	for _, c := range strings.ToLower(s) {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			sb.WriteRune(c)
			lastHyphen = false
			continue
		}
		if !lastHyphen && sb.Len() > 0 {
			sb.WriteByte('-')
			lastHyphen = true
		}
	}
	return strings.TrimRight(sb.String(), "-")
}
