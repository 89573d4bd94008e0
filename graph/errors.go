package graph

import "errors"

// Sentinel errors for structural integrity violations detected at Freeze.
// These errors can be used with errors.Is() for error checking.
var (
	// ErrDanglingReference indicates a relation endpoint, warrant reference,
	// or warrant-attack target that does not resolve to a known id.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrDuplicateID indicates two units, warrants, or relations sharing an id.
	ErrDuplicateID = errors.New("duplicate id")

	// ErrAxiomScore indicates a unit flagged as axiom without a score.
	ErrAxiomScore = errors.New("axiom unit has no score")

	// ErrInvalidKind indicates an unrecognized unit type, relation kind, or
	// gate mode.
	ErrInvalidKind = errors.New("invalid kind")

	// ErrBundleMembership indicates a bundle referencing an unknown unit, a
	// unit assigned to more than one bundle, or a bundle with fewer than two
	// units.
	ErrBundleMembership = errors.New("invalid bundle membership")

	// ErrNoBundles indicates a bundle projection was requested on a model
	// with no bundles defined.
	ErrNoBundles = errors.New("no argument bundles defined")

	// ErrUnknownAggregation indicates an unrecognized bundle aggregation mode.
	ErrUnknownAggregation = errors.New("unknown aggregation mode")
)
