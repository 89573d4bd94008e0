package query

import (
	"errors"
	"fmt"
	"sort"

	"github.com/google/cel-go/cel"

	"github.com/dialectic-ai/argcore/credibility"
	"github.com/dialectic-ai/argcore/dung"
	"github.com/dialectic-ai/argcore/graph"
)

// ErrInvalidExpression indicates a CEL expression that failed to compile or
// does not evaluate to a boolean.
var ErrInvalidExpression = errors.New("invalid filter expression")

// Row is one unit's view offered to a filter expression. Builders populate
// every declared variable so expressions never hit missing attributes.
type Row map[string]any

// Filter is a compiled CEL predicate over result rows.
type Filter struct {
	expr string
	prg  cel.Program
}

// NewFilter compiles expr against the result row schema: id (string),
// score (double), evidence (double), axiom (bool), converged (bool),
// label (string). The expression must evaluate to a boolean.
func NewFilter(expr string) (*Filter, error) {
	env, err := cel.NewEnv(
		cel.Variable("id", cel.StringType),
		cel.Variable("score", cel.DoubleType),
		cel.Variable("evidence", cel.DoubleType),
		cel.Variable("axiom", cel.BoolType),
		cel.Variable("converged", cel.BoolType),
		cel.Variable("label", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("filter env: %w", err)
	}
	ast, iss := env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("%q: %v: %w", expr, iss.Err(), ErrInvalidExpression)
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("%q evaluates to %s, want bool: %w", expr, ast.OutputType(), ErrInvalidExpression)
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("%q: %v: %w", expr, err, ErrInvalidExpression)
	}
	return &Filter{expr: expr, prg: prg}, nil
}

// Expression returns the source expression.
func (f *Filter) Expression() string {
	return f.expr
}

// Select evaluates the filter against each row and returns the matching
// unit ids sorted lexicographically.
func (f *Filter) Select(rows []Row) ([]string, error) {
	var out []string
	for _, row := range rows {
		res, _, err := f.prg.Eval(map[string]any(row))
		if err != nil {
			return nil, fmt.Errorf("%q: %v: %w", f.expr, err, ErrInvalidExpression)
		}
		match, ok := res.Value().(bool)
		if !ok {
			return nil, fmt.Errorf("%q returned %T, want bool: %w", f.expr, res.Value(), ErrInvalidExpression)
		}
		if match {
			id, _ := row["id"].(string)
			out = append(out, id)
		}
	}
	sort.Strings(out)
	return out, nil
}

// ScoreRows builds filter rows from a credibility result, one per claim
// unit.
func ScoreRows(m *graph.Model, res *credibility.Result) []Row {
	ids := m.UnitIDs()
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		u, _ := m.Unit(id)
		breakdown := res.Contributions[id]
		rows = append(rows, Row{
			"id":        id,
			"score":     res.Scores[id],
			"evidence":  breakdown.Evidence,
			"axiom":     u.IsAxiom,
			"converged": res.Converged,
			"label":     "",
		})
	}
	return rows
}

// LabelRows builds filter rows from a labeling, one per argument.
func LabelRows(labeling dung.Labeling) []Row {
	ids := make([]string, 0, len(labeling))
	for id := range labeling {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, Row{
			"id":        id,
			"score":     0.0,
			"evidence":  0.0,
			"axiom":     false,
			"converged": true,
			"label":     string(labeling[id]),
		})
	}
	return rows
}
