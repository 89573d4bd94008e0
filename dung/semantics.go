package dung

import (
	"fmt"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// Semantics names an acceptability semantics. The set is closed.
type Semantics string

const (
	// Grounded is the unique least complete extension.
	Grounded Semantics = "grounded"

	// Complete covers all fixed points of the characteristic function.
	Complete Semantics = "complete"

	// Preferred covers the maximal admissible sets.
	Preferred Semantics = "preferred"

	// Stable covers conflict-free sets attacking everything outside.
	Stable Semantics = "stable"
)

// Valid reports whether s is a recognized semantics.
func (s Semantics) Valid() bool {
	switch s {
	case Grounded, Complete, Preferred, Stable:
		return true
	}
	return false
}

// branch split depth for the parallel admissible search. 2^parallelSplit
// subtrees are distributed over the worker pool.
const parallelSplit = 4

// GroundedExtension computes the unique least fixed point of the
// characteristic function F(S) = {a : a is defended by S}, iterating from
// the empty set. Monotonicity of F bounds the iteration count by the number
// of arguments.
func (af *AF) GroundedExtension() []string {
	current := map[string]bool{}
	for {
		var next []string
		for _, a := range af.args {
			if af.defendsSet(current, a) {
				next = append(next, a)
			}
		}
		if len(next) == len(current) {
			break
		}
		current = make(map[string]bool, len(next))
		for _, a := range next {
			current[a] = true
		}
	}
	return setToSorted(current)
}

// CompleteExtensions returns every conflict-free fixed point of the
// characteristic function: the admissible sets containing exactly the
// arguments they defend. Canonically ordered.
func (af *AF) CompleteExtensions() [][]string {
	var complete [][]string
	for _, ext := range af.admissibleSets() {
		members := af.toSet(ext)
		fixed := true
		for _, a := range af.args {
			if af.defendsSet(members, a) != members[a] {
				fixed = false
				break
			}
		}
		if fixed {
			complete = append(complete, ext)
		}
	}
	return sortExtensions(complete)
}

// PreferredExtensions returns the maximal admissible sets by set inclusion,
// canonically ordered.
func (af *AF) PreferredExtensions() [][]string {
	admissible := af.admissibleSets()
	var preferred [][]string
	for i, candidate := range admissible {
		maximal := true
		for j, other := range admissible {
			if i != j && properSubset(candidate, other) {
				maximal = false
				break
			}
		}
		if maximal {
			preferred = append(preferred, candidate)
		}
	}
	return sortExtensions(preferred)
}

// StableExtensions returns the conflict-free sets that attack every argument
// outside the set. Every stable extension is preferred, so the preferred
// extensions are filtered; the result may be empty, which is a valid
// semantic outcome.
func (af *AF) StableExtensions() [][]string {
	var stable [][]string
	for _, ext := range af.PreferredExtensions() {
		members := af.toSet(ext)
		attacked := make(map[string]bool)
		for a := range members {
			for _, t := range af.targets[a] {
				attacked[t] = true
			}
		}
		ok := true
		for _, a := range af.args {
			if !members[a] && !attacked[a] {
				ok = false
				break
			}
		}
		if ok {
			stable = append(stable, ext)
		}
	}
	return sortExtensions(stable)
}

// Extensions dispatches to the semantics-specific computation. Grounded
// always yields exactly one extension; the others may yield zero or more.
func (af *AF) Extensions(sem Semantics) ([][]string, error) {
	switch sem {
	case Grounded:
		return [][]string{af.GroundedExtension()}, nil
	case Complete:
		return af.CompleteExtensions(), nil
	case Preferred:
		return af.PreferredExtensions(), nil
	case Stable:
		return af.StableExtensions(), nil
	}
	return nil, fmt.Errorf("%q: %w", sem, ErrUnknownSemantics)
}

// admissibleSets enumerates every admissible set by exact search over
// subsets with conflict pruning: a candidate argument joins the current set
// only when it neither self-attacks nor conflicts with a chosen member.
// With more than one worker the subtree below a fixed prefix depth runs on
// the pool; the merged result is canonically ordered either way.
func (af *AF) admissibleSets() [][]string {
	if af.workers > 1 && len(af.args) > parallelSplit {
		return af.admissibleSetsParallel()
	}
	var out [][]string
	af.searchAdmissible(0, nil, func(ext []string) {
		out = append(out, ext)
	})
	return sortExtensions(out)
}

func (af *AF) admissibleSetsParallel() [][]string {
	type prefix struct {
		chosen []string
	}
	var prefixes []prefix
	var expand func(idx int, chosen []string)
	expand = func(idx int, chosen []string) {
		if idx == parallelSplit {
			prefixes = append(prefixes, prefix{chosen: append([]string(nil), chosen...)})
			return
		}
		expand(idx+1, chosen)
		if af.canJoin(chosen, af.args[idx]) {
			expand(idx+1, append(chosen, af.args[idx]))
		}
	}
	expand(0, nil)

	var mu sync.Mutex
	var out [][]string
	var g errgroup.Group
	g.SetLimit(af.workers)
	for _, p := range prefixes {
		g.Go(func() error {
			var local [][]string
			af.searchAdmissible(parallelSplit, p.chosen, func(ext []string) {
				local = append(local, ext)
			})
			mu.Lock()
			out = append(out, local...)
			mu.Unlock()
			return nil
		})
	}
	// workers never return errors; the group only bounds concurrency
	_ = g.Wait()
	return sortExtensions(out)
}

func (af *AF) searchAdmissible(idx int, chosen []string, emit func([]string)) {
	if idx == len(af.args) {
		if af.Admissible(chosen) {
			ext := append(make([]string, 0, len(chosen)), chosen...)
			sort.Strings(ext)
			emit(ext)
		}
		return
	}
	af.searchAdmissible(idx+1, chosen, emit)
	if af.canJoin(chosen, af.args[idx]) {
		af.searchAdmissible(idx+1, append(chosen, af.args[idx]), emit)
	}
}

// canJoin prunes conflict violations as the set is extended.
func (af *AF) canJoin(chosen []string, arg string) bool {
	if af.attacks[Attack{Src: arg, Dst: arg}] {
		return false
	}
	for _, c := range chosen {
		if af.attacks[Attack{Src: c, Dst: arg}] || af.attacks[Attack{Src: arg, Dst: c}] {
			return false
		}
	}
	return true
}

func (af *AF) defendsSet(members map[string]bool, arg string) bool {
	for _, attacker := range af.attackers[arg] {
		defended := false
		for _, counter := range af.attackers[attacker] {
			if members[counter] {
				defended = true
				break
			}
		}
		if !defended {
			return false
		}
	}
	return true
}

func setToSorted(members map[string]bool) []string {
	out := make([]string, 0, len(members))
	for a := range members {
		out = append(out, a)
	}
	sort.Strings(out)
	return out
}

// sortExtensions applies the canonical ordering: members sorted within each
// extension, extensions sorted lexicographically element-wise with shorter
// prefixes first.
func sortExtensions(exts [][]string) [][]string {
	for _, ext := range exts {
		sort.Strings(ext)
	}
	sort.Slice(exts, func(i, j int) bool {
		return lessExtension(exts[i], exts[j])
	})
	if exts == nil {
		return [][]string{}
	}
	return exts
}

func lessExtension(a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

func properSubset(a, b []string) bool {
	if len(a) >= len(b) {
		return false
	}
	members := make(map[string]bool, len(b))
	for _, x := range b {
		members[x] = true
	}
	for _, x := range a {
		if !members[x] {
			return false
		}
	}
	return true
}
