package argcore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/dialectic-ai/argcore/aba"
	"github.com/dialectic-ai/argcore/dung"
	"github.com/dialectic-ai/argcore/graph"
)

// attackChain freezes a -> b -> c attack chain with bundles and scores.
func attackChain(t *testing.T) *graph.Model {
	t.Helper()
	b := graph.NewBuilder()
	b.AddUnit(graph.NewUnit("a").WithID("a").AsAxiom(0.8))
	b.AddUnit(graph.NewUnit("b").WithID("b").WithScore(0.5))
	b.AddUnit(graph.NewUnit("c").WithID("c").WithScore(0.5))
	b.AddUnit(graph.NewUnit("d").WithID("d"))
	b.AddAttack("a", "b")
	b.AddAttack("b", "c")
	b.AddRelation(graph.NewRelation("a", "d", graph.KindSupport).WithWeight(0.3))
	b.DefineBundle("left", "a", "b")
	b.DefineBundle("right", "c", "d")
	m, err := b.Freeze()
	require.NoError(t, err)
	return m
}

func TestReasonerExtensions(t *testing.T) {
	r, err := New(attackChain(t))
	require.NoError(t, err)

	exts, err := r.Extensions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "c", "d"}}, exts)
}

func TestReasonerLabelings(t *testing.T) {
	r, err := New(attackChain(t))
	require.NoError(t, err)

	labelings, err := r.Labelings(context.Background())
	require.NoError(t, err)
	require.Len(t, labelings, 1)
	assert.Equal(t, dung.Labeling{"a": dung.In, "b": dung.Out, "c": dung.In, "d": dung.In}, labelings[0])
}

func TestReasonerBundleExtensions(t *testing.T) {
	r, err := New(attackChain(t), WithSemantics(dung.Preferred))
	require.NoError(t, err)

	exts, err := r.BundleExtensions(context.Background())
	require.NoError(t, err)
	// crossing edges sum to -0.7, so bundle left attacks bundle right
	assert.Equal(t, [][]string{{"left"}}, exts)
}

func TestReasonerAcceptance(t *testing.T) {
	r, err := New(attackChain(t))
	require.NoError(t, err)
	ctx := context.Background()

	ok, err := r.SkepticalAcceptance(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = r.CredulousAcceptance(ctx, "b")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = r.SkepticalAcceptance(ctx, "ghost")
	assert.ErrorIs(t, err, dung.ErrUnknownArgument)
	assert.ErrorIs(t, err, &Error{Kind: KindNotFound})
}

func TestReasonerCredibility(t *testing.T) {
	r, err := New(attackChain(t))
	require.NoError(t, err)

	res, err := r.Credibility(context.Background())
	require.NoError(t, err)
	assert.True(t, res.Converged)
	assert.Equal(t, 0.8, res.Scores["a"])
	assert.Less(t, res.Scores["b"], 0.0)
	assert.Greater(t, res.Scores["d"], 0.0)
}

func TestReasonerDiagnostics(t *testing.T) {
	r, err := New(attackChain(t))
	require.NoError(t, err)

	d := r.Diagnostics(context.Background())
	assert.Equal(t, 4, d.NodeCount)
	assert.Equal(t, 2, d.AttackEdgeCount)
}

func disputeFramework(t *testing.T) *aba.Framework {
	t.Helper()
	f := aba.NewFramework()
	f.AddAssumption("a")
	require.NoError(t, f.AddContrary("a", "not_a"))
	require.NoError(t, f.AddRule("b", "a"))
	return f
}

func TestReasonerDisputeTrees(t *testing.T) {
	r, err := New(trivialModel(t))
	require.NoError(t, err)

	_, err = r.DisputeTrees(context.Background(), "b")
	assert.ErrorIs(t, err, ErrFrameworkRequired)

	r, err = r.WithFramework(disputeFramework(t))
	require.NoError(t, err)

	trees, err := r.DisputeTrees(context.Background(), "b")
	require.NoError(t, err)
	require.Len(t, trees, 1)
	assert.True(t, trees[0].Admissible)

	_, err = r.DisputeTrees(context.Background(), "ghost")
	assert.ErrorIs(t, err, &Error{Kind: KindNotFound})
}

func TestReasonerAssumptionExtensions(t *testing.T) {
	r, err := New(trivialModel(t), WithSemantics(dung.Preferred))
	require.NoError(t, err)
	r, err = r.WithFramework(disputeFramework(t))
	require.NoError(t, err)

	res, err := r.AssumptionExtensions(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a"}}, res.AssumptionExtensions)
}

func TestWithFrameworkValidates(t *testing.T) {
	f := aba.NewFramework()
	f.AddAssumption("a")
	require.NoError(t, f.AddRule("b", "a", "ghost"))

	r, err := New(trivialModel(t))
	require.NoError(t, err)

	_, err = r.WithFramework(f)
	assert.ErrorIs(t, err, aba.ErrUndefinedAtom)
	assert.ErrorIs(t, err, &Error{Kind: KindStructural})
}

func TestReasonerRunDispatch(t *testing.T) {
	r, err := New(attackChain(t))
	require.NoError(t, err)
	r, err = r.WithFramework(disputeFramework(t))
	require.NoError(t, err)
	ctx := context.Background()

	res, err := r.Run(ctx, TaskRequest{Task: TaskExtensions})
	require.NoError(t, err)
	assert.Equal(t, TaskExtensions, res.Task)
	assert.NotEmpty(t, res.Extensions)

	res, err = r.Run(ctx, TaskRequest{Task: TaskCredibility})
	require.NoError(t, err)
	require.NotNil(t, res.Credibility)
	assert.True(t, res.Credibility.Converged)

	res, err = r.Run(ctx, TaskRequest{Task: TaskDisputeTrees, Goal: "b"})
	require.NoError(t, err)
	assert.Len(t, res.Trees, 1)

	res, err = r.Run(ctx, TaskRequest{Task: TaskDiagnostics})
	require.NoError(t, err)
	require.NotNil(t, res.Diagnostics)

	_, err = r.Run(ctx, TaskRequest{Task: "simulate"})
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestReasonerEmitsSpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	r, err := New(attackChain(t), WithTracer(tp.Tracer("argcore-test")))
	require.NoError(t, err)

	_, err = r.Extensions(context.Background())
	require.NoError(t, err)
	_, err = r.Credibility(context.Background())
	require.NoError(t, err)

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	assert.Equal(t, "Reasoner.Extensions", spans[0].Name())
	assert.Equal(t, "Reasoner.Credibility", spans[1].Name())
}
