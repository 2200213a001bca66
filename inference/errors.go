package inference

import (
	"errors"
	"fmt"
)

// Sentinel errors for the three failure classes of junction tree inference.
var (
	// ErrUsage indicates caller inputs are structurally inconsistent,
	// e.g. the ordering and the factor graph disagree on the variable set.
	ErrUsage = errors.New("inference: inconsistent ordering and factor graph")

	// ErrDistribution indicates a factor could not be attached to a clique.
	ErrDistribution = errors.New("inference: factor cannot be distributed")

	// ErrElimination indicates a clique's combined factors could not be
	// eliminated (singular, infeasible, or a broken eliminator contract).
	ErrElimination = errors.New("inference: clique elimination failed")
)

// UsageError reports an ordering/graph mismatch.
type UsageError struct {
	Key    Key    // offending key, empty when not key-specific
	Reason string // human-readable cause
}

func (e *UsageError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%v: %s", ErrUsage, e.Reason)
	}

	return fmt.Sprintf("%v: %s: %q", ErrUsage, e.Reason, e.Key)
}

// Unwrap lets errors.Is(err, ErrUsage) succeed.
func (e *UsageError) Unwrap() error { return ErrUsage }

// DistributionError reports a factor that has no home in the clique tree.
type DistributionError struct {
	Factor int   // position of the factor in the input graph
	Keys   []Key // the factor's keys
	Clique int   // candidate clique id, -1 if none was found
	Reason string
}

func (e *DistributionError) Error() string {
	return fmt.Sprintf("%v: factor #%d over %s: %s", ErrDistribution, e.Factor, formatKeyList(e.Keys), e.Reason)
}

// Unwrap lets errors.Is(err, ErrDistribution) succeed.
func (e *DistributionError) Unwrap() error { return ErrDistribution }

// EliminationError reports which clique failed and why.
type EliminationError struct {
	Clique   int   // clique id in the junction tree
	Frontals []Key // the clique's frontal variables
	Err      error // cause reported by the eliminator
}

func (e *EliminationError) Error() string {
	return fmt.Sprintf("%v: clique %d frontals %s: %v", ErrElimination, e.Clique, formatKeyList(e.Frontals), e.Err)
}

// Unwrap exposes both the class sentinel and the underlying cause.
func (e *EliminationError) Unwrap() []error { return []error{ErrElimination, e.Err} }
