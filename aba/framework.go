package aba

import (
	"errors"
	"fmt"
)

// Sentinel errors for ABA registration and queries.
var (
	// ErrUndefinedAtom indicates a rule body atom that is neither an
	// assumption nor the head of any rule. Surfaced to the caller, never
	// silently treated as false.
	ErrUndefinedAtom = errors.New("undefined atom")

	// ErrRecursiveRule indicates a rule whose head is derivable from its own
	// body closure without consuming any assumption.
	ErrRecursiveRule = errors.New("recursive rule")

	// ErrUnknownAssumption indicates a contrary registered for an atom that
	// was never declared as an assumption.
	ErrUnknownAssumption = errors.New("unknown assumption")
)

// Rule is an inference rule: the head holds when every body atom holds.
// An empty body makes the head a fact.
type Rule struct {
	Head string   `json:"head"`
	Body []string `json:"body"`
}

// Framework holds assumptions, their contraries, and inference rules.
// Registration is pure data collection; structural validation happens when
// reasoning is invoked.
type Framework struct {
	assumptions     map[string]bool
	assumptionOrder []string
	contraries      map[string]string
	contraryOrder   []string
	rules           []Rule
	rulesByHead     map[string][]int
	allowRecursive  bool
}

// Option configures a Framework.
type Option func(*Framework)

// AllowRecursiveRules disables the AddRule recursion guard. Derivation still
// terminates: backward chaining never re-enters an atom already on its
// stack, and dispute trees are depth-bounded.
func AllowRecursiveRules() Option {
	return func(f *Framework) {
		f.allowRecursive = true
	}
}

// NewFramework creates an empty Framework.
func NewFramework(opts ...Option) *Framework {
	f := &Framework{
		assumptions: make(map[string]bool),
		contraries:  make(map[string]string),
		rulesByHead: make(map[string][]int),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// AddAssumption declares an atom as an assumption. Repeated declarations are
// no-ops.
func (f *Framework) AddAssumption(atom string) {
	if f.assumptions[atom] {
		return
	}
	f.assumptions[atom] = true
	f.assumptionOrder = append(f.assumptionOrder, atom)
}

// AddContrary maps an assumption to its contrary atom. The assumption must
// already be declared. Registration order is the deterministic order in
// which dispute-tree opponents try their moves.
func (f *Framework) AddContrary(assumption, contrary string) error {
	if !f.assumptions[assumption] {
		return fmt.Errorf("contrary for %q: %w", assumption, ErrUnknownAssumption)
	}
	if _, exists := f.contraries[assumption]; !exists {
		f.contraryOrder = append(f.contraryOrder, assumption)
	}
	f.contraries[assumption] = contrary
	return nil
}

// Contrary returns the registered contrary of an assumption.
func (f *Framework) Contrary(assumption string) (string, bool) {
	c, ok := f.contraries[assumption]
	return c, ok
}

// Assumptions returns the declared assumptions in registration order.
func (f *Framework) Assumptions() []string {
	return append([]string(nil), f.assumptionOrder...)
}

// Rules returns a copy of the registered rules in registration order.
func (f *Framework) Rules() []Rule {
	out := make([]Rule, len(f.rules))
	for i, r := range f.rules {
		out[i] = Rule{Head: r.Head, Body: append([]string(nil), r.Body...)}
	}
	return out
}

// AddRule registers an inference rule. Unless AllowRecursiveRules is set,
// the rule is rejected when its head is already derivable from the body
// closure without consuming any assumption, which would denote a
// non-terminating derivation.
func (f *Framework) AddRule(head string, body ...string) error {
	rule := Rule{Head: head, Body: append([]string(nil), body...)}
	if !f.allowRecursive && f.headInBodyClosure(rule) {
		return fmt.Errorf("rule %q <- %v: %w", head, body, ErrRecursiveRule)
	}
	f.rules = append(f.rules, rule)
	f.rulesByHead[head] = append(f.rulesByHead[head], len(f.rules)-1)
	return nil
}

// headInBodyClosure walks the dependency closure of the candidate rule's
// body. Assumptions terminate a path because deriving through one consumes
// it; reaching the head along assumption-free paths denotes recursion.
func (f *Framework) headInBodyClosure(rule Rule) bool {
	visited := make(map[string]bool)
	var reach func(atom string) bool
	reach = func(atom string) bool {
		if atom == rule.Head {
			return true
		}
		if f.assumptions[atom] || visited[atom] {
			return false
		}
		visited[atom] = true
		for _, idx := range f.rulesByHead[atom] {
			for _, next := range f.rules[idx].Body {
				if reach(next) {
					return true
				}
			}
		}
		return false
	}
	for _, atom := range rule.Body {
		if reach(atom) {
			return true
		}
	}
	return false
}

// Validate asserts structural integrity: every rule body atom must resolve
// to an assumption or to the head of some rule. Invoked by every reasoning
// entry point.
func (f *Framework) Validate() error {
	for _, rule := range f.rules {
		for _, atom := range rule.Body {
			if f.assumptions[atom] {
				continue
			}
			if len(f.rulesByHead[atom]) > 0 {
				continue
			}
			return fmt.Errorf("rule %q <- %v references %q: %w", rule.Head, rule.Body, atom, ErrUndefinedAtom)
		}
	}
	return nil
}
