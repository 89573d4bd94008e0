package argcore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialectic-ai/argcore/dung"
	"github.com/dialectic-ai/argcore/graph"
)

func trivialModel(t *testing.T) *graph.Model {
	t.Helper()
	b := graph.NewBuilder()
	b.AddUnit(graph.NewUnit("a").WithID("a"))
	m, err := b.Freeze()
	require.NoError(t, err)
	return m
}

func TestDefaultOptions(t *testing.T) {
	cfg := defaultConfig()
	assert.Equal(t, dung.Grounded, cfg.semantics)
	assert.Equal(t, graph.AggSumClamp, cfg.aggregation)
	assert.Equal(t, DefaultDisputeMaxDepth, cfg.disputeMaxDepth)
	assert.Equal(t, 1, cfg.workers)
	assert.NotNil(t, cfg.logger)
	assert.NotNil(t, cfg.tracer)
	assert.NoError(t, cfg.validate())
}

func TestOptionsApply(t *testing.T) {
	cfg := defaultConfig()
	for _, opt := range []Option{
		WithSemantics(dung.Stable),
		WithBundleAggregation(graph.AggSoftmax),
		WithGateThreshold(0.4),
		WithLambda(0.9),
		WithMaxIterations(25),
		WithConvergenceEpsilon(1e-4),
		WithDisputeMaxDepth(3),
		WithWorkers(8),
	} {
		opt(&cfg)
	}

	assert.Equal(t, dung.Stable, cfg.semantics)
	assert.Equal(t, graph.AggSoftmax, cfg.aggregation)
	assert.Equal(t, 0.4, cfg.propagation.GateThreshold)
	assert.Equal(t, 0.9, cfg.propagation.Lambda)
	assert.Equal(t, 25, cfg.propagation.MaxIterations)
	assert.Equal(t, 1e-4, cfg.propagation.Epsilon)
	assert.Equal(t, 3, cfg.disputeMaxDepth)
	assert.Equal(t, 8, cfg.workers)
	assert.NoError(t, cfg.validate())
}

func TestNewRejectsInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"unknown semantics", WithSemantics("weighted")},
		{"unknown aggregation", WithBundleAggregation("median")},
		{"negative max iterations", WithMaxIterations(-1)},
		{"zero epsilon", WithConvergenceEpsilon(0)},
		{"out of range gate threshold", WithGateThreshold(2)},
		{"zero dispute depth", WithDisputeMaxDepth(0)},
		{"zero workers", WithWorkers(0)},
	}

	m := trivialModel(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(m, tt.opt)
			require.Error(t, err)
			assert.ErrorIs(t, err, &Error{Kind: KindConfiguration})
		})
	}
}

func TestNewRequiresModel(t *testing.T) {
	_, err := New(nil)
	assert.ErrorIs(t, err, ErrModelRequired)
}
