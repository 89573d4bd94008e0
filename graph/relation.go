package graph

// RelationKind is the closed set of relation types between units.
type RelationKind string

const (
	// KindSupport transmits positive influence from source to destination.
	KindSupport RelationKind = "support"

	// KindAttack is a direct attack on the destination claim.
	KindAttack RelationKind = "attack"

	// KindUndercut attacks the inferential link behind the destination.
	KindUndercut RelationKind = "undercut"

	// KindRebut attacks the destination by asserting an incompatible claim.
	KindRebut RelationKind = "rebut"
)

// Valid reports whether k is one of the recognized relation kinds.
func (k RelationKind) Valid() bool {
	switch k {
	case KindSupport, KindAttack, KindUndercut, KindRebut:
		return true
	}
	return false
}

// IsAttack reports whether the kind contributes an attack edge when the
// graph is projected to an abstract argumentation framework. Support never
// does.
func (k RelationKind) IsAttack() bool {
	switch k {
	case KindAttack, KindUndercut, KindRebut:
		return true
	}
	return false
}

// GateMode combines the warrant scores referenced by a relation into a
// single open/closed gate decision.
type GateMode string

const (
	// GateAnd requires every referenced warrant above the gate threshold.
	GateAnd GateMode = "AND"

	// GateOr requires at least one referenced warrant above the threshold.
	GateOr GateMode = "OR"
)

// Valid reports whether m is a recognized gate mode.
func (m GateMode) Valid() bool {
	return m == GateAnd || m == GateOr
}

// Relation is a directed, typed edge between two units. Multiple relations
// may connect the same ordered pair; direction matters.
type Relation struct {
	// ID is the unique relation identifier. The Builder assigns e0, e1, ...
	// in insertion order if empty; result breakdowns are keyed by it.
	ID string `json:"id"`

	// Src is the source unit id.
	Src string `json:"src"`

	// Dst is the destination unit id.
	Dst string `json:"dst"`

	// Kind is the relation type.
	Kind RelationKind `json:"kind"`

	// Weight is the optional edge weight. A nil weight counts as 1.
	Weight *float64 `json:"weight,omitempty"`

	// WarrantIDs lists the warrants gating this relation. An empty list
	// leaves the relation ungated.
	WarrantIDs []string `json:"warrant_ids,omitempty"`

	// GateMode combines the referenced warrant scores. Defaults to GateOr.
	GateMode GateMode `json:"gate_mode"`

	// Metadata stores caller-defined annotations. Ignored by all engines.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewRelation creates a Relation of the given kind with gate mode GateOr and
// no warrants.
func NewRelation(src, dst string, kind RelationKind) *Relation {
	return &Relation{Src: src, Dst: dst, Kind: kind, GateMode: GateOr}
}

// WithID sets the relation id and returns the relation for method chaining.
func (r *Relation) WithID(id string) *Relation {
	r.ID = id
	return r
}

// WithWeight sets the edge weight and returns the relation for method
// chaining.
func (r *Relation) WithWeight(w float64) *Relation {
	r.Weight = &w
	return r
}

// WithWarrants sets the gating warrants and gate mode and returns the
// relation for method chaining.
func (r *Relation) WithWarrants(mode GateMode, warrantIDs ...string) *Relation {
	r.GateMode = mode
	r.WarrantIDs = warrantIDs
	return r
}

// WithMetadata sets a single metadata entry and returns the relation for
// method chaining.
func (r *Relation) WithMetadata(key string, value any) *Relation {
	if r.Metadata == nil {
		r.Metadata = make(map[string]any)
	}
	r.Metadata[key] = value
	return r
}

// EffectiveWeight returns the weight, or 1 when unset.
func (r *Relation) EffectiveWeight() float64 {
	if r.Weight == nil {
		return 1
	}
	return *r.Weight
}

// SignedWeight returns the weight signed by kind: positive for support,
// negative magnitude for every attack kind.
func (r *Relation) SignedWeight() float64 {
	w := r.EffectiveWeight()
	if r.Kind == KindSupport {
		return w
	}
	if w < 0 {
		return w
	}
	return -w
}

func (r *Relation) clone() Relation {
	out := *r
	if r.Weight != nil {
		w := *r.Weight
		out.Weight = &w
	}
	if r.WarrantIDs != nil {
		out.WarrantIDs = append([]string(nil), r.WarrantIDs...)
	}
	if r.Metadata != nil {
		out.Metadata = make(map[string]any, len(r.Metadata))
		for k, v := range r.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}
