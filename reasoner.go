package argcore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/dialectic-ai/argcore/aba"
	"github.com/dialectic-ai/argcore/credibility"
	"github.com/dialectic-ai/argcore/dung"
	"github.com/dialectic-ai/argcore/graph"
)

// Task names a reasoning entry point for the enum-keyed dispatcher.
// Typed callers use the corresponding method directly.
type Task string

const (
	// TaskExtensions computes extensions under the configured semantics.
	TaskExtensions Task = "extensions"

	// TaskLabelings computes the labelings derived from those extensions.
	TaskLabelings Task = "labelings"

	// TaskBundleExtensions computes extensions over the bundle projection.
	TaskBundleExtensions Task = "bundle-extensions"

	// TaskCredibility runs warrant-gated credibility propagation.
	TaskCredibility Task = "credibility"

	// TaskDiagnostics reports the structural diagnostics of the model.
	TaskDiagnostics Task = "diagnostics"

	// TaskDisputeTrees builds dispute trees for a goal atom. Requires an
	// attached framework and a Goal in the request.
	TaskDisputeTrees Task = "dispute-trees"

	// TaskAssumptionExtensions translates the framework into an attack
	// graph and computes assumption extensions. Requires an attached
	// framework.
	TaskAssumptionExtensions Task = "assumption-extensions"
)

// Valid reports whether t is a recognized task.
func (t Task) Valid() bool {
	switch t {
	case TaskExtensions, TaskLabelings, TaskBundleExtensions, TaskCredibility,
		TaskDiagnostics, TaskDisputeTrees, TaskAssumptionExtensions:
		return true
	}
	return false
}

// TaskRequest carries the inputs of a dispatched task.
type TaskRequest struct {
	// Task selects the entry point.
	Task Task `json:"task" yaml:"task"`

	// Goal is the claim atom for dispute-tree tasks.
	Goal string `json:"goal,omitempty" yaml:"goal,omitempty"`
}

// TaskResult holds the output of a dispatched task. Only the fields
// matching the task are populated.
type TaskResult struct {
	Task        Task                 `json:"task"`
	Extensions  [][]string           `json:"extensions,omitempty"`
	Labelings   []dung.Labeling      `json:"labelings,omitempty"`
	Credibility *credibility.Result  `json:"credibility,omitempty"`
	Diagnostics *graph.Diagnostics   `json:"diagnostics,omitempty"`
	Trees       []*aba.Tree          `json:"trees,omitempty"`
	Assumptions *aba.Result          `json:"assumptions,omitempty"`
}

// Reasoner is the façade over the reasoning engines. It holds a frozen
// graph model, an optional assumption framework, and the configured
// defaults, and never mutates the model. A Reasoner is safe for
// concurrent use.
type Reasoner struct {
	model     *graph.Model
	framework *aba.Framework
	af        *dung.AF
	cfg       reasonerConfig
}

// New creates a Reasoner over a frozen model. Options configure
// semantics, propagation, search parallelism, and observability.
func New(model *graph.Model, opts ...Option) (*Reasoner, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if model == nil {
		return nil, NewConfigurationError("Reasoner.New", ErrModelRequired)
	}
	return &Reasoner{
		model: model,
		af:    dung.FromModel(model, dung.WithWorkers(cfg.workers)),
		cfg:   cfg,
	}, nil
}

// WithFramework attaches an assumption framework for ABA tasks. The
// framework is validated on attach so structural problems surface before
// any reasoning call.
func (r *Reasoner) WithFramework(f *aba.Framework) (*Reasoner, error) {
	if f == nil {
		return nil, NewConfigurationError("Reasoner.WithFramework", ErrFrameworkRequired)
	}
	if err := f.Validate(); err != nil {
		return nil, NewStructuralError("Reasoner.WithFramework", err)
	}
	out := *r
	out.framework = f
	return &out, nil
}

// Model returns the frozen model the reasoner operates on.
func (r *Reasoner) Model() *graph.Model {
	return r.model
}

// Extensions computes the extensions of the claim-level attack graph
// under the configured semantics. An empty list is a valid outcome for
// stable semantics.
func (r *Reasoner) Extensions(ctx context.Context) ([][]string, error) {
	ctx, span := r.cfg.tracer.Start(ctx, "Reasoner.Extensions")
	defer span.End()
	span.SetAttributes(attribute.String("semantics", string(r.cfg.semantics)))

	exts, err := r.af.Extensions(r.cfg.semantics)
	if err != nil {
		return nil, NewConfigurationError("Reasoner.Extensions", err)
	}
	r.cfg.logger.DebugContext(ctx, "extensions computed",
		slog.String("semantics", string(r.cfg.semantics)),
		slog.Int("count", len(exts)))
	return exts, nil
}

// Labelings derives one labeling per extension under the configured
// semantics.
func (r *Reasoner) Labelings(ctx context.Context) ([]dung.Labeling, error) {
	ctx, span := r.cfg.tracer.Start(ctx, "Reasoner.Labelings")
	defer span.End()

	exts, err := r.af.Extensions(r.cfg.semantics)
	if err != nil {
		return nil, NewConfigurationError("Reasoner.Labelings", err)
	}
	labelings := make([]dung.Labeling, 0, len(exts))
	for _, ext := range exts {
		labelings = append(labelings, r.af.LabelingFromExtension(ext))
	}
	r.cfg.logger.DebugContext(ctx, "labelings derived", slog.Int("count", len(labelings)))
	return labelings, nil
}

// BundleExtensions projects the model onto its argument bundles with the
// configured aggregation and computes extensions of the bundle-level
// attack graph.
func (r *Reasoner) BundleExtensions(ctx context.Context) ([][]string, error) {
	ctx, span := r.cfg.tracer.Start(ctx, "Reasoner.BundleExtensions")
	defer span.End()
	span.SetAttributes(attribute.String("aggregation", string(r.cfg.aggregation)))

	bg, err := r.model.BundleProjection(r.cfg.aggregation)
	if err != nil {
		return nil, NewStructuralError("Reasoner.BundleExtensions", err)
	}
	af, err := dung.FromBundles(bg, dung.WithWorkers(r.cfg.workers))
	if err != nil {
		return nil, NewStructuralError("Reasoner.BundleExtensions", err)
	}
	exts, err := af.Extensions(r.cfg.semantics)
	if err != nil {
		return nil, NewConfigurationError("Reasoner.BundleExtensions", err)
	}
	r.cfg.logger.DebugContext(ctx, "bundle extensions computed",
		slog.String("aggregation", string(r.cfg.aggregation)),
		slog.Int("count", len(exts)))
	return exts, nil
}

// SkepticalAcceptance reports whether arg belongs to every extension
// under the configured semantics.
func (r *Reasoner) SkepticalAcceptance(ctx context.Context, arg string) (bool, error) {
	_, span := r.cfg.tracer.Start(ctx, "Reasoner.SkepticalAcceptance")
	defer span.End()

	ok, err := r.af.SkepticalAcceptance(arg, r.cfg.semantics)
	if err != nil {
		return false, r.acceptanceError("Reasoner.SkepticalAcceptance", arg, err)
	}
	return ok, nil
}

// CredulousAcceptance reports whether arg belongs to at least one
// extension under the configured semantics.
func (r *Reasoner) CredulousAcceptance(ctx context.Context, arg string) (bool, error) {
	_, span := r.cfg.tracer.Start(ctx, "Reasoner.CredulousAcceptance")
	defer span.End()

	ok, err := r.af.CredulousAcceptance(arg, r.cfg.semantics)
	if err != nil {
		return false, r.acceptanceError("Reasoner.CredulousAcceptance", arg, err)
	}
	return ok, nil
}

func (r *Reasoner) acceptanceError(op, arg string, err error) error {
	kind := KindConfiguration
	if errors.Is(err, dung.ErrUnknownArgument) {
		kind = KindNotFound
	}
	return (&Error{Op: op, Kind: kind, Err: err}).WithContext(map[string]any{"argument": arg})
}

// Credibility runs warrant-gated propagation with the configured
// parameters. A hit iteration cap is reported through Converged on the
// result, not as an error.
func (r *Reasoner) Credibility(ctx context.Context) (*credibility.Result, error) {
	ctx, span := r.cfg.tracer.Start(ctx, "Reasoner.Credibility")
	defer span.End()

	res, err := credibility.Propagate(ctx, r.model, r.cfg.propagation)
	if err != nil {
		return nil, NewInternalError("Reasoner.Credibility", err)
	}
	r.cfg.logger.DebugContext(ctx, "credibility propagated",
		slog.Int("iterations", res.Iterations),
		slog.Bool("converged", res.Converged))
	return res, nil
}

// Diagnostics reports the structural diagnostics of the model.
func (r *Reasoner) Diagnostics(ctx context.Context) *graph.Diagnostics {
	_, span := r.cfg.tracer.Start(ctx, "Reasoner.Diagnostics")
	defer span.End()
	return r.model.Diagnostics()
}

// DisputeTrees builds the dispute trees for a goal atom using the
// attached framework. An empty slice means no support derives the goal.
func (r *Reasoner) DisputeTrees(ctx context.Context, goal string) ([]*aba.Tree, error) {
	ctx, span := r.cfg.tracer.Start(ctx, "Reasoner.DisputeTrees")
	defer span.End()
	span.SetAttributes(attribute.String("goal", goal))

	if r.framework == nil {
		return nil, NewConfigurationError("Reasoner.DisputeTrees", ErrFrameworkRequired)
	}
	trees, err := r.framework.DisputeTrees(goal, r.cfg.disputeMaxDepth)
	if err != nil {
		kind := KindStructural
		if errors.Is(err, aba.ErrUndefinedAtom) {
			kind = KindNotFound
		}
		return nil, (&Error{Op: "Reasoner.DisputeTrees", Kind: kind, Err: err}).
			WithContext(map[string]any{"goal": goal})
	}
	r.cfg.logger.DebugContext(ctx, "dispute trees built",
		slog.String("goal", goal),
		slog.Int("count", len(trees)))
	return trees, nil
}

// AssumptionExtensions translates the attached framework into an attack
// graph and computes its extensions under the configured semantics.
func (r *Reasoner) AssumptionExtensions(ctx context.Context) (*aba.Result, error) {
	ctx, span := r.cfg.tracer.Start(ctx, "Reasoner.AssumptionExtensions")
	defer span.End()

	if r.framework == nil {
		return nil, NewConfigurationError("Reasoner.AssumptionExtensions", ErrFrameworkRequired)
	}
	res, err := r.framework.Extensions(r.cfg.semantics, dung.WithWorkers(r.cfg.workers))
	if err != nil {
		return nil, NewStructuralError("Reasoner.AssumptionExtensions", err)
	}
	r.cfg.logger.DebugContext(ctx, "assumption extensions computed",
		slog.Int("derivations", len(res.Derivations)),
		slog.Int("count", len(res.AssumptionExtensions)))
	return res, nil
}

// Run dispatches a task by name. Typed callers should prefer the
// corresponding method; Run exists for boundary code that receives task
// names from configuration.
func (r *Reasoner) Run(ctx context.Context, req TaskRequest) (*TaskResult, error) {
	if !req.Task.Valid() {
		return nil, NewConfigurationError("Reasoner.Run",
			fmt.Errorf("%q: %w", req.Task, ErrUnknownTask))
	}

	out := &TaskResult{Task: req.Task}
	var err error
	switch req.Task {
	case TaskExtensions:
		out.Extensions, err = r.Extensions(ctx)
	case TaskLabelings:
		out.Labelings, err = r.Labelings(ctx)
	case TaskBundleExtensions:
		out.Extensions, err = r.BundleExtensions(ctx)
	case TaskCredibility:
		out.Credibility, err = r.Credibility(ctx)
	case TaskDiagnostics:
		out.Diagnostics = r.Diagnostics(ctx)
	case TaskDisputeTrees:
		out.Trees, err = r.DisputeTrees(ctx, req.Goal)
	case TaskAssumptionExtensions:
		out.Assumptions, err = r.AssumptionExtensions(ctx)
	}
	if err != nil {
		return nil, err
	}
	return out, nil
}
