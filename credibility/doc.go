// Package credibility runs warrant-gated numeric score propagation over a
// frozen claim graph. It is a continuous relaxation, independent of the
// discrete acceptance semantics in packages dung and aba.
//
// Each unit starts from its evidence-derived score and is updated
// synchronously each iteration:
//
//	score(t+1) = tanh(lambda*E + sum over incoming edges of gate*w*sign*score(t))
//
// Support edges transmit the signed source score; attack edges transmit the
// negated magnitude of the source score. A relation's warrant gate is
// evaluated against the previous iteration's warrant scores, so updates are
// deterministic and order-independent. Axiom units hold their manual score
// and never update; ignore-influence units receive evidence but emit no
// outgoing influence.
//
// Iteration stops when the maximum absolute delta falls below the
// convergence epsilon or the iteration cap is reached. The cap is a safety
// valve for cyclic graphs: hitting it is not an error, the result simply
// reports Converged == false.
package credibility
