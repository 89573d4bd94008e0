package aba

import (
	"sort"
	"strings"

	"github.com/dialectic-ai/argcore/dung"
)

// Derivation is an implicit argument: an atom together with one minimal
// assumption set that derives it. Its ID is canonical and stable across
// runs.
type Derivation struct {
	// Atom is the derived claim.
	Atom string `json:"atom"`

	// Assumptions is the minimal support, sorted.
	Assumptions []string `json:"assumptions"`
}

// ID returns the canonical argument identifier "atom|a1,a2,...".
func (d Derivation) ID() string {
	return d.Atom + "|" + strings.Join(d.Assumptions, ",")
}

// ToAF translates the framework into a Dung AF. Arguments are the
// derivations of every assumption, rule head, and registered contrary;
// derivation X attacks derivation Y when X derives the contrary of one of
// Y's assumptions. Semantics computation is then delegated to package dung.
func (f *Framework) ToAF(opts ...dung.Option) (*dung.AF, []Derivation, error) {
	if err := f.Validate(); err != nil {
		return nil, nil, err
	}

	atoms := make(map[string]bool)
	for _, a := range f.assumptionOrder {
		atoms[a] = true
	}
	for _, r := range f.rules {
		atoms[r.Head] = true
	}
	for _, a := range f.contraryOrder {
		atoms[f.contraries[a]] = true
	}

	var derivations []Derivation
	for atom := range atoms {
		if !f.assumptions[atom] && len(f.rulesByHead[atom]) == 0 {
			// a contrary with no derivation contributes no argument
			continue
		}
		for _, sup := range f.supports(atom, make(map[string]bool)) {
			derivations = append(derivations, Derivation{
				Atom:        atom,
				Assumptions: append([]string(nil), sup...),
			})
		}
	}
	sort.Slice(derivations, func(i, j int) bool { return derivations[i].ID() < derivations[j].ID() })

	ids := make([]string, len(derivations))
	for i, d := range derivations {
		ids[i] = d.ID()
	}
	var attacks []dung.Attack
	for _, attacker := range derivations {
		for _, target := range derivations {
			for _, assumption := range target.Assumptions {
				if contrary, ok := f.contraries[assumption]; ok && contrary == attacker.Atom {
					attacks = append(attacks, dung.Attack{Src: attacker.ID(), Dst: target.ID()})
					break
				}
			}
		}
	}

	af, err := dung.New(ids, attacks, opts...)
	if err != nil {
		return nil, nil, err
	}
	return af, derivations, nil
}

// Result carries the outcome of the AF solve path.
type Result struct {
	// Semantics is the semantics the extensions were computed under.
	Semantics dung.Semantics `json:"semantics"`

	// Derivations lists the arguments of the translated AF in canonical
	// order.
	Derivations []Derivation `json:"derivations"`

	// Extensions holds extensions over derivation ids, canonically ordered.
	Extensions [][]string `json:"extensions"`

	// AssumptionExtensions projects each extension to the union of its
	// member derivations' assumptions.
	AssumptionExtensions [][]string `json:"assumption_extensions"`
}

// Extensions runs the default solve path: translate to a Dung AF and compute
// extensions under the given semantics.
func (f *Framework) Extensions(sem dung.Semantics, opts ...dung.Option) (*Result, error) {
	af, derivations, err := f.ToAF(opts...)
	if err != nil {
		return nil, err
	}
	exts, err := af.Extensions(sem)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]Derivation, len(derivations))
	for _, d := range derivations {
		byID[d.ID()] = d
	}
	assumptionExts := make([][]string, len(exts))
	for i, ext := range exts {
		seen := make(map[string]bool)
		var union []string
		for _, id := range ext {
			for _, a := range byID[id].Assumptions {
				if !seen[a] {
					seen[a] = true
					union = append(union, a)
				}
			}
		}
		sort.Strings(union)
		if union == nil {
			union = []string{}
		}
		assumptionExts[i] = union
	}

	return &Result{
		Semantics:            sem,
		Derivations:          derivations,
		Extensions:           exts,
		AssumptionExtensions: assumptionExts,
	}, nil
}
