// Package argcore is a formal argumentation reasoning core.
//
// It operates over an immutable graph of argument units, warrants, and
// typed relations (the graph model), and exposes three reasoning engines
// plus a query layer:
//
//   - dung: abstract argumentation semantics (grounded, complete,
//     preferred, stable), labelings, and acceptance queries
//   - aba: assumption-based argumentation with backward-chaining
//     derivation, attack-graph translation, and dispute trees
//   - credibility: warrant-gated numeric score propagation with a
//     per-edge contribution breakdown
//   - query: CEL expression filtering over reasoning results
//
// # Lifecycle
//
// A model is built mutably and then frozen; every engine reads the frozen
// snapshot and never writes to it, so reasoning calls may run concurrently
// on the same model:
//
//	b := graph.NewBuilder()
//	b.AddUnit(graph.NewUnit("the defendant was in Paris").WithID("alibi"))
//	b.AddUnit(graph.NewUnit("a witness places them at the scene").WithID("witness"))
//	b.AddAttack("witness", "alibi")
//	model, err := b.Freeze()
//	if err != nil {
//		log.Fatal(err)
//	}
//
// # Reasoning
//
// The Reasoner façade binds a frozen model to a configuration and offers
// one typed entry point per task family:
//
//	r, err := argcore.New(model,
//		argcore.WithSemantics(dung.Preferred),
//		argcore.WithWorkers(4),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	exts, err := r.Extensions(ctx)
//	scores, err := r.Credibility(ctx)
//
// Run dispatches by task name for boundary code driven by configuration:
//
//	res, err := r.Run(ctx, argcore.TaskRequest{Task: argcore.TaskExtensions})
//
// # Outcomes versus errors
//
// Structural defects (dangling references, duplicate ids, an axiom without
// a score) fail at Freeze; invalid option values fail at New. Absence of a
// stable extension returns an empty list, and a hit iteration or depth
// ceiling sets Converged to false on the result. Neither is an error.
//
// All engine outputs are canonically ordered: extension members sort
// lexicographically and extension lists sort element-wise, regardless of
// worker count or merge order.
package argcore
