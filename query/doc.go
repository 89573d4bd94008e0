// Package query filters reasoning results with CEL expressions.
//
// Callers hand a result set to a compiled Filter and get back the unit ids
// whose row satisfies the expression:
//
//	f, err := query.NewFilter(`score > 0.7 && converged`)
//	ids, err := f.Select(query.ScoreRows(model, result))
//
// Rows expose id, score, evidence, axiom, converged for credibility results
// and id, label for labelings. Expressions are compiled once and may be
// evaluated against any number of rows.
package query
