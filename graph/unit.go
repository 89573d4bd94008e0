package graph

// UnitType classifies an argument unit. The set is closed; algorithms may
// branch exhaustively on it.
type UnitType string

const (
	// UnitFact marks an empirical, checkable claim.
	UnitFact UnitType = "fact"

	// UnitValue marks a normative or evaluative claim.
	UnitValue UnitType = "value"

	// UnitPolicy marks a claim proposing a course of action.
	UnitPolicy UnitType = "policy"

	// UnitOther marks a claim that fits none of the above.
	UnitOther UnitType = "other"
)

// Valid reports whether t is one of the recognized unit types.
func (t UnitType) Valid() bool {
	switch t {
	case UnitFact, UnitValue, UnitPolicy, UnitOther:
		return true
	}
	return false
}

// ArgumentUnit is a single claim or warrant in the graph. The text content is
// opaque to the reasoning core.
//
// Warrants are ordinary units held in a separate index on the Model; a
// relation references them by id to decide whether it transmits influence.
type ArgumentUnit struct {
	// ID is the unique unit identifier. Auto-generated by the Builder if empty.
	ID string `json:"id"`

	// Text is the claim content. Opaque to the core.
	Text string `json:"text"`

	// Type classifies the claim. Defaults to UnitOther.
	Type UnitType `json:"type"`

	// Score is the evidence-derived initial credibility in [0, 1], if known.
	Score *float64 `json:"score,omitempty"`

	// IsAxiom pins the unit to its manual Score; the credibility propagator
	// never updates it. An axiom with a nil Score is a structural error.
	IsAxiom bool `json:"is_axiom,omitempty"`

	// IgnoreInfluence makes the unit receive evidence but contribute no
	// outgoing influence during credibility propagation.
	IgnoreInfluence bool `json:"ignore_influence,omitempty"`

	// Metadata stores caller-defined annotations. Ignored by all engines.
	Metadata map[string]any `json:"metadata,omitempty"`
}

// NewUnit creates an ArgumentUnit with the given text and type UnitOther.
func NewUnit(text string) *ArgumentUnit {
	return &ArgumentUnit{Text: text, Type: UnitOther}
}

// WithID sets the unit id and returns the unit for method chaining.
func (u *ArgumentUnit) WithID(id string) *ArgumentUnit {
	u.ID = id
	return u
}

// WithType sets the unit type and returns the unit for method chaining.
func (u *ArgumentUnit) WithType(t UnitType) *ArgumentUnit {
	u.Type = t
	return u
}

// WithScore sets the evidence score and returns the unit for method chaining.
func (u *ArgumentUnit) WithScore(score float64) *ArgumentUnit {
	u.Score = &score
	return u
}

// AsAxiom marks the unit as an axiom holding the given fixed score and
// returns the unit for method chaining.
func (u *ArgumentUnit) AsAxiom(score float64) *ArgumentUnit {
	u.IsAxiom = true
	u.Score = &score
	return u
}

// WithIgnoreInfluence sets the ignore-influence flag and returns the unit
// for method chaining.
func (u *ArgumentUnit) WithIgnoreInfluence(ignore bool) *ArgumentUnit {
	u.IgnoreInfluence = ignore
	return u
}

// WithMetadata sets a single metadata entry and returns the unit for method
// chaining.
func (u *ArgumentUnit) WithMetadata(key string, value any) *ArgumentUnit {
	if u.Metadata == nil {
		u.Metadata = make(map[string]any)
	}
	u.Metadata[key] = value
	return u
}

// clone returns a deep copy so frozen models never alias builder state.
func (u *ArgumentUnit) clone() ArgumentUnit {
	out := *u
	if u.Score != nil {
		s := *u.Score
		out.Score = &s
	}
	if u.Metadata != nil {
		out.Metadata = make(map[string]any, len(u.Metadata))
		for k, v := range u.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// WarrantAttack is a direct attack from a claim onto a warrant. It carries no
// gate of its own; the credibility propagator uses it to depress the warrant
// score, which in turn closes the gates the warrant participates in.
type WarrantAttack struct {
	// Src is the attacking unit id.
	Src string `json:"src"`

	// WarrantID is the attacked warrant id.
	WarrantID string `json:"warrant_id"`
}
