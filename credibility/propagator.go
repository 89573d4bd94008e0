package credibility

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/dialectic-ai/argcore/graph"
)

// ErrInvalidConfig indicates a configuration value rejected before any
// computation starts.
var ErrInvalidConfig = errors.New("invalid propagation config")

// Config tunes the propagation. The zero value is not usable; start from
// DefaultConfig.
type Config struct {
	// Lambda scales the evidence term of every update.
	Lambda float64

	// GateThreshold is the warrant score above which a gate input counts as
	// satisfied.
	GateThreshold float64

	// MaxIterations caps the fixed-point iteration. Reaching the cap yields
	// Converged == false, not an error.
	MaxIterations int

	// Epsilon is the convergence threshold on the maximum absolute score
	// delta per iteration.
	Epsilon float64
}

// DefaultConfig returns the documented defaults. The gate threshold is
// calibrated to the tanh score range: a non-axiom warrant with strong
// evidence settles near tanh(lambda), so the default threshold sits below
// that while staying above the score of weakly evidenced warrants.
func DefaultConfig() Config {
	return Config{
		Lambda:        0.5,
		GateThreshold: 0.25,
		MaxIterations: 100,
		Epsilon:       1e-6,
	}
}

// Validate rejects out-of-range values.
func (c Config) Validate() error {
	if c.Lambda < 0 {
		return fmt.Errorf("lambda %v must be non-negative: %w", c.Lambda, ErrInvalidConfig)
	}
	if c.GateThreshold < 0 || c.GateThreshold > 1 {
		return fmt.Errorf("gate threshold %v must be in [0, 1]: %w", c.GateThreshold, ErrInvalidConfig)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("max iterations %d must be positive: %w", c.MaxIterations, ErrInvalidConfig)
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon %v must be positive: %w", c.Epsilon, ErrInvalidConfig)
	}
	return nil
}

// GateState records how a relation's warrant gate evaluated at the final
// iteration.
type GateState struct {
	// RelationID identifies the gated relation.
	RelationID string `json:"relation_id"`

	// Open reports whether the relation transmitted influence.
	Open bool `json:"open"`

	// Mode is the gate combination mode of the relation.
	Mode graph.GateMode `json:"mode"`

	// WarrantScores holds the final score of each referenced warrant.
	WarrantScores map[string]float64 `json:"warrant_scores,omitempty"`
}

// EdgeContribution explains one incoming relation's term in a unit's final
// update.
type EdgeContribution struct {
	RelationID string             `json:"relation_id"`
	Src        string             `json:"src"`
	Kind       graph.RelationKind `json:"kind"`
	GateOpen   bool               `json:"gate_open"`
	Value      float64            `json:"value"`
}

// Breakdown splits a unit's final update into its evidence term and the
// propagated term, per incoming edge.
type Breakdown struct {
	// Evidence is the lambda-scaled evidence term.
	Evidence float64 `json:"evidence"`

	// Propagated is the summed edge contribution.
	Propagated float64 `json:"propagated"`

	// Incoming details each edge's contribution in relation insertion order.
	Incoming []EdgeContribution `json:"incoming,omitempty"`
}

// Result is the propagation outcome, keyed by unit, warrant, and relation
// ids.
type Result struct {
	// Scores holds the final claim scores.
	Scores map[string]float64 `json:"scores"`

	// WarrantScores holds the final warrant scores.
	WarrantScores map[string]float64 `json:"warrant_scores"`

	// Gates holds the final gate activation state per relation.
	Gates map[string]GateState `json:"gates"`

	// Contributions holds the per-unit explanation breakdown.
	Contributions map[string]Breakdown `json:"contributions"`

	// Iterations is the number of update rounds executed.
	Iterations int `json:"iterations"`

	// Converged is false when the iteration cap stopped a still-moving
	// propagation; the scores are then a best-effort partial result.
	Converged bool `json:"converged"`
}

// Propagate runs gated score propagation to a fixed point or the iteration
// cap. The model is never written to; all output lands in the Result.
func Propagate(ctx context.Context, m *graph.Model, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	unitIDs := m.UnitIDs()
	warrantIDs := m.WarrantIDs()
	relations := m.Relations()
	warrantAttacks := m.WarrantAttacks()

	evidence := make(map[string]float64, len(unitIDs))
	scores := make(map[string]float64, len(unitIDs))
	for _, id := range unitIDs {
		u, _ := m.Unit(id)
		evidence[id] = initialEvidence(u)
		scores[id] = initialScore(u)
	}
	warrantEvidence := make(map[string]float64, len(warrantIDs))
	warrantScores := make(map[string]float64, len(warrantIDs))
	for _, id := range warrantIDs {
		w, _ := m.Warrant(id)
		warrantEvidence[id] = initialEvidence(w)
		warrantScores[id] = initialScore(w)
	}

	converged := false
	iterations := 0
	for iterations < cfg.MaxIterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		iterations++

		// synchronous update: gates and all source scores read from the
		// previous iteration
		gates := evaluateGates(relations, warrantScores, cfg)

		nextWarrants := make(map[string]float64, len(warrantIDs))
		for _, id := range warrantIDs {
			w, _ := m.Warrant(id)
			if w.IsAxiom {
				nextWarrants[id] = warrantScores[id]
				continue
			}
			var influence float64
			for _, wa := range warrantAttacks {
				if wa.WarrantID != id {
					continue
				}
				src, _ := m.Unit(wa.Src)
				if src.IgnoreInfluence {
					continue
				}
				influence -= math.Abs(scores[wa.Src])
			}
			nextWarrants[id] = math.Tanh(cfg.Lambda*warrantEvidence[id] + influence)
		}

		nextScores := make(map[string]float64, len(unitIDs))
		for _, id := range unitIDs {
			u, _ := m.Unit(id)
			if u.IsAxiom {
				nextScores[id] = scores[id]
				continue
			}
			var influence float64
			for _, r := range m.Incoming(id) {
				influence += edgeTerm(m, r, scores, gates)
			}
			nextScores[id] = math.Tanh(cfg.Lambda*evidence[id] + influence)
		}

		delta := 0.0
		for id, next := range nextScores {
			delta = math.Max(delta, math.Abs(next-scores[id]))
		}
		for id, next := range nextWarrants {
			delta = math.Max(delta, math.Abs(next-warrantScores[id]))
		}
		scores = nextScores
		warrantScores = nextWarrants
		if delta < cfg.Epsilon {
			converged = true
			break
		}
	}

	finalGates := evaluateGates(relations, warrantScores, cfg)
	res := &Result{
		Scores:        scores,
		WarrantScores: warrantScores,
		Gates:         make(map[string]GateState, len(relations)),
		Contributions: make(map[string]Breakdown, len(unitIDs)),
		Iterations:    iterations,
		Converged:     converged,
	}
	for _, r := range relations {
		state := GateState{RelationID: r.ID, Open: finalGates[r.ID], Mode: r.GateMode}
		if len(r.WarrantIDs) > 0 {
			state.WarrantScores = make(map[string]float64, len(r.WarrantIDs))
			for _, wid := range r.WarrantIDs {
				state.WarrantScores[wid] = warrantScores[wid]
			}
		}
		res.Gates[r.ID] = state
	}
	for _, id := range unitIDs {
		breakdown := Breakdown{Evidence: cfg.Lambda * evidence[id]}
		for _, r := range m.Incoming(id) {
			value := edgeTerm(m, r, scores, finalGates)
			breakdown.Propagated += value
			breakdown.Incoming = append(breakdown.Incoming, EdgeContribution{
				RelationID: r.ID,
				Src:        r.Src,
				Kind:       r.Kind,
				GateOpen:   finalGates[r.ID],
				Value:      value,
			})
		}
		res.Contributions[id] = breakdown
	}
	return res, nil
}

// initialEvidence clamps the evidence-derived score to [0, 1]; units without
// a score contribute zero evidence.
func initialEvidence(u graph.ArgumentUnit) float64 {
	if u.Score == nil {
		return 0
	}
	return math.Max(0, math.Min(1, *u.Score))
}

// initialScore seeds the iteration: axioms pin their manual score (clamped
// to the tanh range), everything else starts from its evidence.
func initialScore(u graph.ArgumentUnit) float64 {
	if u.IsAxiom {
		return math.Max(-1, math.Min(1, *u.Score))
	}
	return initialEvidence(u)
}

// edgeTerm computes one relation's propagated term: zero when the gate is
// closed or the source opted out of influencing, otherwise the gated signed
// weight applied to the source score. Attack kinds always subtract the
// source magnitude.
func edgeTerm(m *graph.Model, r graph.Relation, scores map[string]float64, gates map[string]bool) float64 {
	if !gates[r.ID] {
		return 0
	}
	src, _ := m.Unit(r.Src)
	if src.IgnoreInfluence {
		return 0
	}
	w := math.Abs(r.EffectiveWeight())
	if r.Kind == graph.KindSupport {
		return w * scores[r.Src]
	}
	return -w * math.Abs(scores[r.Src])
}

// evaluateGates decides each relation's gate from warrant scores: AND needs
// every referenced warrant above the threshold, OR needs at least one, and a
// relation with no warrants is ungated.
func evaluateGates(relations []graph.Relation, warrantScores map[string]float64, cfg Config) map[string]bool {
	gates := make(map[string]bool, len(relations))
	for _, r := range relations {
		if len(r.WarrantIDs) == 0 {
			gates[r.ID] = true
			continue
		}
		switch r.GateMode {
		case graph.GateAnd:
			open := true
			for _, wid := range r.WarrantIDs {
				if warrantScores[wid] <= cfg.GateThreshold {
					open = false
					break
				}
			}
			gates[r.ID] = open
		default:
			open := false
			for _, wid := range r.WarrantIDs {
				if warrantScores[wid] > cfg.GateThreshold {
					open = true
					break
				}
			}
			gates[r.ID] = open
		}
	}
	return gates
}
