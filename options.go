package argcore

import (
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/dialectic-ai/argcore/credibility"
	"github.com/dialectic-ai/argcore/dung"
	"github.com/dialectic-ai/argcore/graph"
)

// DefaultDisputeMaxDepth bounds dispute tree expansion when no explicit
// depth is configured.
const DefaultDisputeMaxDepth = 6

// Option configures a Reasoner.
type Option func(*reasonerConfig)

// reasonerConfig holds configuration for a Reasoner instance.
type reasonerConfig struct {
	semantics       dung.Semantics
	aggregation     graph.Aggregation
	propagation     credibility.Config
	disputeMaxDepth int
	workers         int
	logger          *slog.Logger
	tracer          trace.Tracer
}

func defaultConfig() reasonerConfig {
	return reasonerConfig{
		semantics:       dung.Grounded,
		aggregation:     graph.AggSumClamp,
		propagation:     credibility.DefaultConfig(),
		disputeMaxDepth: DefaultDisputeMaxDepth,
		workers:         1,
		logger:          slog.Default(),
		tracer:          noop.NewTracerProvider().Tracer("argcore"),
	}
}

func (c *reasonerConfig) validate() error {
	if !c.semantics.Valid() {
		return NewConfigurationError("Reasoner.New",
			fmt.Errorf("semantics %q: %w", c.semantics, ErrInvalidOption))
	}
	if !c.aggregation.Valid() {
		return NewConfigurationError("Reasoner.New",
			fmt.Errorf("bundle aggregation %q: %w", c.aggregation, ErrInvalidOption))
	}
	if err := c.propagation.Validate(); err != nil {
		return NewConfigurationError("Reasoner.New", err)
	}
	if c.disputeMaxDepth < 1 {
		return NewConfigurationError("Reasoner.New",
			fmt.Errorf("dispute max depth %d: %w", c.disputeMaxDepth, ErrInvalidOption))
	}
	if c.workers < 1 {
		return NewConfigurationError("Reasoner.New",
			fmt.Errorf("workers %d: %w", c.workers, ErrInvalidOption))
	}
	return nil
}

// WithSemantics sets the extension semantics used by acceptance and
// extension tasks. Default is grounded.
func WithSemantics(sem dung.Semantics) Option {
	return func(c *reasonerConfig) {
		c.semantics = sem
	}
}

// WithBundleAggregation sets how relation weights crossing bundle
// boundaries are folded into a single bundle-level relation.
// Default is sum-clamp.
func WithBundleAggregation(agg graph.Aggregation) Option {
	return func(c *reasonerConfig) {
		c.aggregation = agg
	}
}

// WithGateThreshold sets the warrant score above which a gate input counts
// as satisfied during credibility propagation.
func WithGateThreshold(threshold float64) Option {
	return func(c *reasonerConfig) {
		c.propagation.GateThreshold = threshold
	}
}

// WithLambda sets the evidence scaling factor of the credibility update.
func WithLambda(lambda float64) Option {
	return func(c *reasonerConfig) {
		c.propagation.Lambda = lambda
	}
}

// WithMaxIterations caps the number of credibility update rounds.
// The cap is the safety valve for cyclic graphs that never converge.
func WithMaxIterations(n int) Option {
	return func(c *reasonerConfig) {
		c.propagation.MaxIterations = n
	}
}

// WithConvergenceEpsilon sets the maximum absolute score delta below which
// credibility propagation stops.
func WithConvergenceEpsilon(eps float64) Option {
	return func(c *reasonerConfig) {
		c.propagation.Epsilon = eps
	}
}

// WithDisputeMaxDepth bounds dispute tree expansion. Trees that hit the
// bound are reported with Converged set to false.
func WithDisputeMaxDepth(depth int) Option {
	return func(c *reasonerConfig) {
		c.disputeMaxDepth = depth
	}
}

// WithWorkers sets the number of goroutines used by the parallel
// extension search. Results are identical for any worker count.
func WithWorkers(n int) Option {
	return func(c *reasonerConfig) {
		c.workers = n
	}
}

// WithLogger sets a custom logger for the reasoner.
// If not provided, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(c *reasonerConfig) {
		c.logger = logger
	}
}

// WithTracer sets an OpenTelemetry tracer. The reasoner starts one span
// per executed task. If not provided, a noop tracer is used.
func WithTracer(tracer trace.Tracer) Option {
	return func(c *reasonerConfig) {
		c.tracer = tracer
	}
}
