// Package inference declares the vocabulary shared by every junctree package:
// variable keys, elimination orderings, the factor and conditional contracts,
// flat factor graphs, the per-clique elimination capability and the error
// taxonomy raised by construction and elimination.
//
// What:
//
//   - Key: opaque string identifier of an unknown ("x1", "rain", …).
//   - Ordering: total elimination order over a set of keys.
//   - Factor: anything that can report the keys it touches.
//   - Conditional: P(frontals | parents) produced by eliminating a clique.
//   - FactorGraph[F]: flat, insertion-ordered collection of factors.
//   - Eliminator[F, C]: the numeric "combine then eliminate" operation of a
//     concrete factor family (symbolic, gaussian, discrete).
//
// Errors:
//
//   - ErrUsage        ordering and factor graph cover different key sets.
//   - ErrDistribution a factor cannot be attached to exactly one clique.
//   - ErrElimination  a clique's combined factors could not be eliminated.
//
// Each sentinel has a typed companion (UsageError, DistributionError,
// EliminationError) carrying the offending key, factor or clique. Match with
// errors.Is for the class and errors.As for the details.
package inference
