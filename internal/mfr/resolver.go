package mfr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrAmbiguousManufacturer indicates an alias that maps to more than one
// canonical manufacturer. Such aliases are never resolved silently.
var ErrAmbiguousManufacturer = errors.New("ambiguous manufacturer alias")

// Resolver maps manufacturer names, abbreviations, and historic aliases to
// canonical identities. The lookup table is built once per run: the curated
// builtin aliases first, then the canonical manufacturer list (from the
// upstream metadata API), with collisions detected while building rather
// than at resolve time.
type Resolver struct {
	byKey      map[string]Canonical
	collisions map[string][]Canonical
}

var whitespacePattern = regexp.MustCompile(`\s+`)

// normalizeKey produces the case- and unicode-insensitive lookup key for a
// manufacturer spelling.
func normalizeKey(s string) string {
	s = norm.NFC.String(s)
	s = strings.ToLower(strings.TrimSpace(s))
	return whitespacePattern.ReplaceAllString(s, " ")
}

// NewResolver builds a resolver from the canonical manufacturer list.
// Canonical entries override builtin aliases of the same name; an alias
// claimed by two different manufacturers is recorded as a collision and
// reported when resolved.
func NewResolver(manufacturers []Canonical) *Resolver {
	r := &Resolver{
		byKey:      builtinAliases(),
		collisions: make(map[string][]Canonical),
	}

	for _, m := range manufacturers {
		if m.Name == "" {
			continue
		}
		r.addKey(m.Name, m)
		if m.Abbrev != "" {
			r.addKey(m.Abbrev, m)
		}
		// Spellings with collapsed or replaced separators show up in
		// file names and RASP headers.
		lower := strings.ToLower(m.Name)
		r.addKey(strings.ReplaceAll(lower, " ", ""), m)
		r.addKey(strings.ReplaceAll(lower, " ", "-"), m)
		r.addKey(strings.ReplaceAll(lower, " ", "_"), m)
	}

	return r
}

// addKey registers one alias, tracking collisions across manufacturers.
func (r *Resolver) addKey(alias string, c Canonical) {
	key := normalizeKey(alias)
	if key == "" {
		return
	}

	existing, ok := r.byKey[key]
	if ok && existing.Name != c.Name {
		if len(r.collisions[key]) == 0 {
			r.collisions[key] = append(r.collisions[key], existing)
		}
		r.collisions[key] = append(r.collisions[key], c)
		return
	}
	r.byKey[key] = c
}

// Resolve maps a raw manufacturer spelling to its canonical identity.
// The fallback chain mirrors how header values degrade in practice:
// the spelling as-is, underscores as spaces, then the first word of each.
// Resolving a collided alias returns ErrAmbiguousManufacturer.
func (r *Resolver) Resolve(name string) (Canonical, bool, error) {
	raw := normalizeKey(name)
	underscored := normalizeKey(strings.ReplaceAll(name, "_", " "))

	candidates := []string{raw, underscored}
	if f := strings.Fields(raw); len(f) > 1 {
		candidates = append(candidates, f[0])
	}
	if f := strings.Fields(underscored); len(f) > 1 {
		candidates = append(candidates, f[0])
	}

	for _, key := range candidates {
		if key == "" {
			continue
		}
		if owners := r.collisions[key]; len(owners) > 0 {
			names := make([]string, len(owners))
			for i, o := range owners {
				names[i] = o.Name
			}
			return Canonical{}, false, fmt.Errorf("%q claimed by %s: %w",
				key, strings.Join(names, ", "), ErrAmbiguousManufacturer)
		}
		if c, ok := r.byKey[key]; ok {
			return c, true, nil
		}
	}

	return Canonical{}, false, nil
}
