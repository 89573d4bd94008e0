package graph

import (
	"fmt"
	"math"
	"sort"
)

// Bundle is a connected claim subgraph treated as a single higher-level
// argument node. In-bundle relations are captured at Freeze and preserved
// unchanged through projection.
type Bundle struct {
	// ID is the unique bundle identifier.
	ID string `json:"id"`

	// Units lists the member unit ids.
	Units []string `json:"units"`

	// Relations holds the claim-level relations internal to the bundle.
	Relations []Relation `json:"relations,omitempty"`
}

func (b Bundle) clone() Bundle {
	out := Bundle{ID: b.ID, Units: append([]string(nil), b.Units...)}
	out.Relations = make([]Relation, len(b.Relations))
	for i := range b.Relations {
		out.Relations[i] = b.Relations[i].clone()
	}
	return out
}

// Aggregation selects how signed weights of claim-level relations crossing a
// bundle boundary combine into one bundle-level edge.
type Aggregation string

const (
	// AggSumClamp sums signed weights and clamps to [-1, 1]. The default.
	AggSumClamp Aggregation = "sum-clamp"

	// AggMean averages signed weights.
	AggMean Aggregation = "mean"

	// AggMax picks the signed weight with the largest magnitude.
	AggMax Aggregation = "max"

	// AggSoftmax weights each signed value by the exponential of its
	// magnitude, emphasizing strong edges.
	AggSoftmax Aggregation = "softmax"
)

// Valid reports whether a is a recognized aggregation mode.
func (a Aggregation) Valid() bool {
	switch a {
	case AggSumClamp, AggMean, AggMax, AggSoftmax:
		return true
	}
	return false
}

// BundleRelation is a bundle-level edge with an aggregated signed weight.
// Kind is KindSupport when the aggregate is non-negative, KindAttack
// otherwise.
type BundleRelation struct {
	Src    string       `json:"src"`
	Dst    string       `json:"dst"`
	Kind   RelationKind `json:"kind"`
	Weight float64      `json:"weight"`
}

// BundleGraph is the argument-bundle projection of a Model.
type BundleGraph struct {
	// Bundles maps bundle id to its definition, in-bundle relations included.
	Bundles map[string]Bundle `json:"bundles"`

	// Relations holds the aggregated cross-bundle edges, ordered by
	// (src, dst).
	Relations []BundleRelation `json:"relations"`

	// Aggregation records the mode that produced the cross-bundle weights.
	Aggregation Aggregation `json:"aggregation"`
}

// BundleProjection aggregates every claim-level relation crossing a bundle
// boundary into a single bundle-level edge per ordered bundle pair.
// Relations with an endpoint outside any bundle, or with both endpoints in
// the same bundle, do not cross a boundary and are skipped. Aggregated
// weights are deterministic for a given model and mode.
func (m *Model) BundleProjection(agg Aggregation) (*BundleGraph, error) {
	if len(m.bundles) == 0 {
		return nil, ErrNoBundles
	}
	if !agg.Valid() {
		return nil, fmt.Errorf("aggregation %q: %w", agg, ErrUnknownAggregation)
	}

	memberOf := make(map[string]string)
	for id, b := range m.bundles {
		for _, uid := range b.Units {
			memberOf[uid] = id
		}
	}

	type pair struct{ src, dst string }
	crossing := make(map[pair][]float64)
	for _, r := range m.relations {
		sb, sok := memberOf[r.Src]
		db, dok := memberOf[r.Dst]
		if !sok || !dok || sb == db {
			continue
		}
		p := pair{src: sb, dst: db}
		crossing[p] = append(crossing[p], r.SignedWeight())
	}

	bg := &BundleGraph{
		Bundles:     make(map[string]Bundle, len(m.bundles)),
		Aggregation: agg,
	}
	for id, b := range m.bundles {
		bg.Bundles[id] = b.clone()
	}
	for p, weights := range crossing {
		w := aggregate(weights, agg)
		w = math.Max(-1, math.Min(1, w))
		kind := KindSupport
		if w < 0 {
			kind = KindAttack
		}
		bg.Relations = append(bg.Relations, BundleRelation{Src: p.src, Dst: p.dst, Kind: kind, Weight: w})
	}
	sort.Slice(bg.Relations, func(i, j int) bool {
		if bg.Relations[i].Src != bg.Relations[j].Src {
			return bg.Relations[i].Src < bg.Relations[j].Src
		}
		return bg.Relations[i].Dst < bg.Relations[j].Dst
	})
	return bg, nil
}

func aggregate(weights []float64, agg Aggregation) float64 {
	if len(weights) == 0 {
		return 0
	}
	switch agg {
	case AggSumClamp:
		var sum float64
		for _, w := range weights {
			sum += w
		}
		return sum
	case AggMean:
		var sum float64
		for _, w := range weights {
			sum += w
		}
		return sum / float64(len(weights))
	case AggMax:
		best := weights[0]
		for _, w := range weights[1:] {
			if math.Abs(w) > math.Abs(best) {
				best = w
			}
		}
		return best
	case AggSoftmax:
		var total, acc float64
		for _, w := range weights {
			e := math.Exp(math.Abs(w))
			total += e
			acc += w * e
		}
		if total == 0 {
			return 0
		}
		return acc / total
	}
	return 0
}
