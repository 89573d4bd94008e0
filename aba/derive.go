package aba

import (
	"fmt"
	"sort"
)

// Support is a minimal set of assumptions that derives an atom, sorted
// lexicographically.
type Support []string

// Derive produces the set of minimal assumption supports deriving atom by
// backward chaining. A derivation in progress for an atom never re-enters
// that atom, so cyclic rule sets terminate. An atom that is neither an
// assumption nor any rule head is a structural error.
func (f *Framework) Derive(atom string) ([]Support, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if !f.assumptions[atom] && len(f.rulesByHead[atom]) == 0 {
		return nil, fmt.Errorf("derive %q: %w", atom, ErrUndefinedAtom)
	}
	return f.supports(atom, make(map[string]bool)), nil
}

// supports returns the minimal assumption sets deriving atom, skipping any
// rule path that re-enters an atom already under derivation.
func (f *Framework) supports(atom string, visiting map[string]bool) []Support {
	if f.assumptions[atom] {
		return []Support{{atom}}
	}
	if visiting[atom] {
		return nil
	}
	visiting[atom] = true
	defer delete(visiting, atom)

	var found []Support
	for _, idx := range f.rulesByHead[atom] {
		rule := f.rules[idx]
		combined := []Support{{}}
		for _, body := range rule.Body {
			bodySupports := f.supports(body, visiting)
			if len(bodySupports) == 0 {
				combined = nil
				break
			}
			var next []Support
			for _, acc := range combined {
				for _, bs := range bodySupports {
					next = append(next, unionSupport(acc, bs))
				}
			}
			combined = next
		}
		found = append(found, combined...)
	}
	return minimalSupports(found)
}

func unionSupport(a, b Support) Support {
	seen := make(map[string]bool, len(a)+len(b))
	out := make(Support, 0, len(a)+len(b))
	for _, s := range [2]Support{a, b} {
		for _, atom := range s {
			if !seen[atom] {
				seen[atom] = true
				out = append(out, atom)
			}
		}
	}
	sort.Strings(out)
	return out
}

// minimalSupports drops duplicates and any support that strictly contains
// another, and orders the rest canonically.
func minimalSupports(supports []Support) []Support {
	var unique []Support
	seen := make(map[string]bool)
	for _, s := range supports {
		key := supportKey(s)
		if !seen[key] {
			seen[key] = true
			unique = append(unique, s)
		}
	}
	var minimal []Support
	for i, candidate := range unique {
		dominated := false
		for j, other := range unique {
			if i != j && supportSubset(other, candidate) && len(other) < len(candidate) {
				dominated = true
				break
			}
		}
		if !dominated {
			minimal = append(minimal, candidate)
		}
	}
	sort.Slice(minimal, func(i, j int) bool {
		return supportKey(minimal[i]) < supportKey(minimal[j])
	})
	return minimal
}

func supportKey(s Support) string {
	key := ""
	for _, atom := range s {
		key += atom + "\x00"
	}
	return key
}

func supportSubset(a, b Support) bool {
	members := make(map[string]bool, len(b))
	for _, atom := range b {
		members[atom] = true
	}
	for _, atom := range a {
		if !members[atom] {
			return false
		}
	}
	return true
}
