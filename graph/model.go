package graph

import "sort"

// Model is the immutable claim graph produced by Builder.Freeze. Every
// accessor returns copies, so callers can never mutate shared state; one
// Model may back concurrent reasoning calls without locking.
type Model struct {
	units          map[string]ArgumentUnit
	unitOrder      []string
	warrants       map[string]ArgumentUnit
	warrantOrder   []string
	relations      []Relation
	incoming       map[string][]int
	warrantAttacks []WarrantAttack
	bundles        map[string]Bundle
	bundleOrder    []string
}

// Unit returns the claim unit with the given id.
func (m *Model) Unit(id string) (ArgumentUnit, bool) {
	u, ok := m.units[id]
	return u, ok
}

// UnitIDs returns all claim unit ids sorted lexicographically.
func (m *Model) UnitIDs() []string {
	ids := append([]string(nil), m.unitOrder...)
	sort.Strings(ids)
	return ids
}

// Warrant returns the warrant unit with the given id.
func (m *Model) Warrant(id string) (ArgumentUnit, bool) {
	w, ok := m.warrants[id]
	return w, ok
}

// WarrantIDs returns all warrant ids sorted lexicographically.
func (m *Model) WarrantIDs() []string {
	ids := append([]string(nil), m.warrantOrder...)
	sort.Strings(ids)
	return ids
}

// Relations returns a copy of all relations in insertion order.
func (m *Model) Relations() []Relation {
	out := make([]Relation, len(m.relations))
	for i := range m.relations {
		out[i] = m.relations[i].clone()
	}
	return out
}

// Incoming returns copies of the relations whose destination is dst, in
// insertion order.
func (m *Model) Incoming(dst string) []Relation {
	idxs := m.incoming[dst]
	out := make([]Relation, 0, len(idxs))
	for _, i := range idxs {
		out = append(out, m.relations[i].clone())
	}
	return out
}

// WarrantAttacks returns a copy of all warrant attacks in insertion order.
func (m *Model) WarrantAttacks() []WarrantAttack {
	return append([]WarrantAttack(nil), m.warrantAttacks...)
}

// Bundle returns the argument bundle with the given id.
func (m *Model) Bundle(id string) (Bundle, bool) {
	b, ok := m.bundles[id]
	if !ok {
		return Bundle{}, false
	}
	return b.clone(), true
}

// BundleIDs returns all bundle ids sorted lexicographically.
func (m *Model) BundleIDs() []string {
	ids := append([]string(nil), m.bundleOrder...)
	sort.Strings(ids)
	return ids
}

// AttackEdge is a directed attack between two units, produced when the
// model is projected to an abstract argumentation framework.
type AttackEdge struct {
	Src string
	Dst string
}

// AttackEdges projects the claim-level relations to abstract attacks:
// every attack, undercut, and rebut relation contributes one edge, support
// contributes none. Duplicate (src, dst) pairs collapse to a single edge.
func (m *Model) AttackEdges() []AttackEdge {
	seen := make(map[AttackEdge]bool)
	var edges []AttackEdge
	for _, r := range m.relations {
		if !r.Kind.IsAttack() {
			continue
		}
		e := AttackEdge{Src: r.Src, Dst: r.Dst}
		if seen[e] {
			continue
		}
		seen[e] = true
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Src != edges[j].Src {
			return edges[i].Src < edges[j].Src
		}
		return edges[i].Dst < edges[j].Dst
	})
	return edges
}
