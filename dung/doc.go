// Package dung computes Dung-style abstract argumentation semantics over an
// attack relation projected from a claim graph.
//
// An AF holds a finite set of argument ids and a binary attack relation.
// The package implements the grounded, complete, preferred, and stable
// acceptability semantics together with labelings and skeptical or
// credulous acceptance:
//
//	af, err := dung.New([]string{"a", "b"}, []dung.Attack{{Src: "a", Dst: "b"}})
//	grounded := af.GroundedExtension()        // ["a"]
//	labeling := af.LabelingFromExtension(grounded)
//
// Extension enumeration is exact exponential search with conflict pruning;
// the grounded extension, which every complete extension contains, seeds the
// search. All multi-extension results come back in canonical order (members
// sorted lexicographically, extension lists sorted element-wise), including
// when branches are evaluated in parallel, so results are reproducible
// across runs.
//
// The absence of a stable extension is a valid semantic outcome and yields
// an empty result set, not an error.
package dung
