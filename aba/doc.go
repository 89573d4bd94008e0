// Package aba evaluates Assumption-Based Argumentation frameworks: sets of
// assumptions with contraries, plus inference rules, queried by backward
// chaining.
//
// A Framework is registered incrementally and validated when reasoning is
// invoked:
//
//	f := aba.NewFramework()
//	f.AddAssumption("a")
//	f.AddContrary("a", "not_a")
//	f.AddRule("b", "a")
//
//	supports, err := f.Derive("b") // [["a"]]
//
// Two solve paths exist. ToAF translates the framework into a Dung AF whose
// arguments are (atom, assumption-set) derivations and whose attacks follow
// from contraries, delegating semantics to package dung; this is the default.
// DisputeTrees constructs proponent/opponent move trees directly, producing
// a standalone explanation artifact that does not reference the live
// framework after construction.
//
// Rules may be cyclic. AddRule rejects rules whose head is derivable from
// the body closure without consuming any assumption (override with
// AllowRecursiveRules), and backward chaining refuses to re-enter an atom
// already under derivation, so no query loops forever.
package aba
