package dung

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dialectic-ai/argcore/graph"
)

// Sentinel errors for AF construction and queries.
var (
	// ErrUnknownArgument indicates an attack endpoint or query id absent
	// from the argument set.
	ErrUnknownArgument = errors.New("unknown argument")

	// ErrUnknownSemantics indicates an unrecognized semantics name.
	ErrUnknownSemantics = errors.New("unknown semantics")
)

// Attack is a directed attack between two arguments.
type Attack struct {
	Src string
	Dst string
}

// AF is an abstract argumentation framework: a finite argument set and a
// binary attack relation. It is immutable after construction.
type AF struct {
	args      []string
	argSet    map[string]bool
	attackers map[string][]string
	targets   map[string][]string
	attacks   map[Attack]bool
	workers   int
}

// Option configures an AF.
type Option func(*AF)

// WithWorkers bounds the number of goroutines used by extension search.
// Values below 2 keep the search sequential. Results are canonically ordered
// regardless of branch completion order.
func WithWorkers(n int) Option {
	return func(af *AF) {
		af.workers = n
	}
}

// New creates an AF over the given arguments and attacks. An attack endpoint
// that is not in the argument set is a structural error, not a silent drop.
func New(arguments []string, attacks []Attack, opts ...Option) (*AF, error) {
	af := &AF{
		argSet:    make(map[string]bool, len(arguments)),
		attackers: make(map[string][]string),
		targets:   make(map[string][]string),
		attacks:   make(map[Attack]bool, len(attacks)),
		workers:   1,
	}
	for _, opt := range opts {
		opt(af)
	}
	for _, a := range arguments {
		if af.argSet[a] {
			continue
		}
		af.argSet[a] = true
		af.args = append(af.args, a)
	}
	sort.Strings(af.args)

	for _, atk := range attacks {
		if !af.argSet[atk.Src] {
			return nil, fmt.Errorf("attack source %q: %w", atk.Src, ErrUnknownArgument)
		}
		if !af.argSet[atk.Dst] {
			return nil, fmt.Errorf("attack target %q: %w", atk.Dst, ErrUnknownArgument)
		}
		if af.attacks[atk] {
			continue
		}
		af.attacks[atk] = true
		af.attackers[atk.Dst] = append(af.attackers[atk.Dst], atk.Src)
		af.targets[atk.Src] = append(af.targets[atk.Src], atk.Dst)
	}
	for _, a := range af.args {
		sort.Strings(af.attackers[a])
		sort.Strings(af.targets[a])
	}
	return af, nil
}

// FromModel projects a frozen claim graph to an AF: arguments are the unit
// ids, attacks come from the attack, undercut, and rebut relation kinds.
// The projection cannot fail structurally because the model is already
// validated.
func FromModel(m *graph.Model, opts ...Option) *AF {
	edges := m.AttackEdges()
	attacks := make([]Attack, len(edges))
	for i, e := range edges {
		attacks[i] = Attack{Src: e.Src, Dst: e.Dst}
	}
	af, err := New(m.UnitIDs(), attacks, opts...)
	if err != nil {
		// unreachable: Freeze guarantees endpoints resolve
		panic(err)
	}
	return af
}

// FromBundles projects an argument-bundle graph to an AF: arguments are the
// bundle ids, attacks are the aggregated cross-bundle edges whose kind is an
// attack.
func FromBundles(bg *graph.BundleGraph, opts ...Option) (*AF, error) {
	ids := make([]string, 0, len(bg.Bundles))
	for id := range bg.Bundles {
		ids = append(ids, id)
	}
	var attacks []Attack
	for _, r := range bg.Relations {
		if r.Kind.IsAttack() {
			attacks = append(attacks, Attack{Src: r.Src, Dst: r.Dst})
		}
	}
	return New(ids, attacks, opts...)
}

// Arguments returns the argument ids sorted lexicographically.
func (af *AF) Arguments() []string {
	return append([]string(nil), af.args...)
}

// Contains reports whether arg is in the argument set.
func (af *AF) Contains(arg string) bool {
	return af.argSet[arg]
}

// Attacks reports whether src attacks dst.
func (af *AF) Attacks(src, dst string) bool {
	return af.attacks[Attack{Src: src, Dst: dst}]
}

// AttackersOf returns the arguments attacking arg, sorted.
func (af *AF) AttackersOf(arg string) []string {
	return append([]string(nil), af.attackers[arg]...)
}

// TargetsOf returns the arguments attacked by arg, sorted.
func (af *AF) TargetsOf(arg string) []string {
	return append([]string(nil), af.targets[arg]...)
}

// ConflictFree reports whether no member of set attacks another member,
// self-attacks included.
func (af *AF) ConflictFree(set []string) bool {
	members := af.toSet(set)
	for a := range members {
		for _, t := range af.targets[a] {
			if members[t] {
				return false
			}
		}
	}
	return true
}

// Defends reports whether every attacker of arg is attacked by some member
// of set.
func (af *AF) Defends(set []string, arg string) bool {
	members := af.toSet(set)
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

// Admissible reports whether set is conflict-free and defends all its
// members.
func (af *AF) Admissible(set []string) bool {
	if !af.ConflictFree(set) {
		return false
	}
	for _, a := range set {
		if !af.Defends(set, a) {
			return false
		}
	}
	return true
}

func (af *AF) toSet(set []string) map[string]bool {
	members := make(map[string]bool, len(set))
	for _, a := range set {
		members[a] = true
	}
	return members
}
