package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// Builder accumulates graph elements during construction. No validation is
// performed while adding; referential integrity is asserted once, at Freeze,
// so intermediate states may reference ids that do not exist yet.
//
// A Builder is not safe for concurrent use. After a successful Freeze the
// Builder may be discarded; the returned Model shares no state with it.
type Builder struct {
	units          []*ArgumentUnit
	warrants       []*ArgumentUnit
	relations      []*Relation
	warrantAttacks []WarrantAttack
	bundles        []bundleDef
	relationSeq    int
}

type bundleDef struct {
	id    string
	units []string
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddUnit registers a claim unit and returns its id, generating a UUID when
// the unit carries none.
func (b *Builder) AddUnit(u *ArgumentUnit) string {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	b.units = append(b.units, u)
	return u.ID
}

// AddWarrant registers a warrant unit and returns its id, generating a UUID
// when the unit carries none. Warrants live in their own index; relations
// reference them through WithWarrants.
func (b *Builder) AddWarrant(w *ArgumentUnit) string {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	b.warrants = append(b.warrants, w)
	return w.ID
}

// AddRelation registers a relation and returns its id, assigning e0, e1, ...
// in insertion order when the relation carries none.
func (b *Builder) AddRelation(r *Relation) string {
	if r.ID == "" {
		r.ID = fmt.Sprintf("e%d", b.relationSeq)
	}
	b.relationSeq++
	b.relations = append(b.relations, r)
	return r.ID
}

// AddSupport is shorthand for AddRelation with KindSupport.
func (b *Builder) AddSupport(src, dst string) string {
	return b.AddRelation(NewRelation(src, dst, KindSupport))
}

// AddAttack is shorthand for AddRelation with KindAttack.
func (b *Builder) AddAttack(src, dst string) string {
	return b.AddRelation(NewRelation(src, dst, KindAttack))
}

// AddWarrantAttack registers a direct attack from a unit onto a warrant.
func (b *Builder) AddWarrantAttack(src, warrantID string) {
	b.warrantAttacks = append(b.warrantAttacks, WarrantAttack{Src: src, WarrantID: warrantID})
}

// DefineBundle groups units into a named argument bundle. The bundle's
// in-bundle relations are captured at Freeze.
func (b *Builder) DefineBundle(id string, unitIDs ...string) {
	b.bundles = append(b.bundles, bundleDef{id: id, units: append([]string(nil), unitIDs...)})
}

// Freeze validates structural integrity and returns an immutable Model.
//
// Checks performed: recognized enum values, unique ids, resolvable relation
// endpoints and warrant references, resolvable warrant-attack endpoints,
// axiom units carrying a score, and well-formed bundle membership. Any
// violation aborts with a descriptive error wrapping the matching sentinel.
func (b *Builder) Freeze() (*Model, error) {
	m := &Model{
		units:    make(map[string]ArgumentUnit, len(b.units)),
		warrants: make(map[string]ArgumentUnit, len(b.warrants)),
		bundles:  make(map[string]Bundle, len(b.bundles)),
		incoming: make(map[string][]int),
	}

	for _, u := range b.units {
		if err := checkUnit(u, "unit"); err != nil {
			return nil, err
		}
		if _, dup := m.units[u.ID]; dup {
			return nil, fmt.Errorf("unit %q: %w", u.ID, ErrDuplicateID)
		}
		m.units[u.ID] = u.clone()
		m.unitOrder = append(m.unitOrder, u.ID)
	}
	for _, w := range b.warrants {
		if err := checkUnit(w, "warrant"); err != nil {
			return nil, err
		}
		if _, dup := m.warrants[w.ID]; dup {
			return nil, fmt.Errorf("warrant %q: %w", w.ID, ErrDuplicateID)
		}
		if _, dup := m.units[w.ID]; dup {
			return nil, fmt.Errorf("warrant %q collides with a unit id: %w", w.ID, ErrDuplicateID)
		}
		m.warrants[w.ID] = w.clone()
		m.warrantOrder = append(m.warrantOrder, w.ID)
	}

	seenRelations := make(map[string]bool, len(b.relations))
	for _, r := range b.relations {
		if !r.Kind.Valid() {
			return nil, fmt.Errorf("relation %q kind %q: %w", r.ID, r.Kind, ErrInvalidKind)
		}
		if !r.GateMode.Valid() {
			return nil, fmt.Errorf("relation %q gate mode %q: %w", r.ID, r.GateMode, ErrInvalidKind)
		}
		if seenRelations[r.ID] {
			return nil, fmt.Errorf("relation %q: %w", r.ID, ErrDuplicateID)
		}
		seenRelations[r.ID] = true
		if _, ok := m.units[r.Src]; !ok {
			return nil, fmt.Errorf("relation %q source %q: %w", r.ID, r.Src, ErrDanglingReference)
		}
		if _, ok := m.units[r.Dst]; !ok {
			return nil, fmt.Errorf("relation %q destination %q: %w", r.ID, r.Dst, ErrDanglingReference)
		}
		for _, wid := range r.WarrantIDs {
			if _, ok := m.warrants[wid]; !ok {
				return nil, fmt.Errorf("relation %q warrant %q: %w", r.ID, wid, ErrDanglingReference)
			}
		}
		m.relations = append(m.relations, r.clone())
	}
	for i, r := range m.relations {
		m.incoming[r.Dst] = append(m.incoming[r.Dst], i)
	}

	for _, wa := range b.warrantAttacks {
		if _, ok := m.units[wa.Src]; !ok {
			return nil, fmt.Errorf("warrant attack source %q: %w", wa.Src, ErrDanglingReference)
		}
		if _, ok := m.warrants[wa.WarrantID]; !ok {
			return nil, fmt.Errorf("warrant attack target %q: %w", wa.WarrantID, ErrDanglingReference)
		}
		m.warrantAttacks = append(m.warrantAttacks, wa)
	}

	assigned := make(map[string]string)
	for _, def := range b.bundles {
		if _, dup := m.bundles[def.id]; dup {
			return nil, fmt.Errorf("bundle %q: %w", def.id, ErrDuplicateID)
		}
		if len(def.units) < 2 {
			return nil, fmt.Errorf("bundle %q needs at least two units: %w", def.id, ErrBundleMembership)
		}
		for _, uid := range def.units {
			if _, ok := m.units[uid]; !ok {
				return nil, fmt.Errorf("bundle %q unit %q: %w", def.id, uid, ErrDanglingReference)
			}
			if other, taken := assigned[uid]; taken {
				return nil, fmt.Errorf("unit %q assigned to bundles %q and %q: %w", uid, other, def.id, ErrBundleMembership)
			}
			assigned[uid] = def.id
		}
		bundle := Bundle{ID: def.id, Units: append([]string(nil), def.units...)}
		members := make(map[string]bool, len(def.units))
		for _, uid := range def.units {
			members[uid] = true
		}
		for _, r := range m.relations {
			if members[r.Src] && members[r.Dst] {
				bundle.Relations = append(bundle.Relations, r.clone())
			}
		}
		m.bundles[def.id] = bundle
		m.bundleOrder = append(m.bundleOrder, def.id)
	}

	return m, nil
}

func checkUnit(u *ArgumentUnit, role string) error {
	if !u.Type.Valid() {
		return fmt.Errorf("%s %q type %q: %w", role, u.ID, u.Type, ErrInvalidKind)
	}
	if u.IsAxiom && u.Score == nil {
		return fmt.Errorf("%s %q: %w", role, u.ID, ErrAxiomScore)
	}
	return nil
}
