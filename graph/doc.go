// Package graph provides the shared claim-graph substrate consumed by the
// reasoning engines: argument units, typed relations, warrants that gate
// relations, and argument bundles.
//
// The package follows an explicit construction/freeze lifecycle. A Builder
// accumulates units, warrants, relations, and bundle definitions without any
// validation, so intermediate construction states are never penalized.
// Freeze then asserts referential integrity once and returns an immutable
// Model:
//
//	b := graph.NewBuilder()
//	a := b.AddUnit(graph.NewUnit("Vaccines reduce transmission").WithType(graph.UnitFact))
//	c := b.AddUnit(graph.NewUnit("Mandates are justified").WithType(graph.UnitPolicy))
//	b.AddRelation(graph.NewRelation(a, c, graph.KindSupport))
//
//	m, err := b.Freeze()
//	if err != nil {
//		// dangling reference, duplicate id, axiom without score, ...
//	}
//
// A Model is never mutated after Freeze. All engines are read-only consumers,
// so one Model may be shared across concurrent reasoning calls without
// locking. Cycles among relations are permitted; the graph is held as an
// arena of units and relations indexed by id, so cyclic references are plain
// id lookups.
package graph
