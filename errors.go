package partnership

import "errors"

// Error kinds reported by the engine. Every returned error wraps exactly one
// of them, use errors.Is to branch on the kind.
var (
	// ErrInvalidInput reports a malformed record or argument: negative amounts,
	// malformed dates, ownership not summing to 100 under strict validation.
	ErrInvalidInput = errors.New("invalid input")
	// ErrInvalidState reports records that are inconsistent with each other:
	// no eligible partner, a reference to an unknown partner.
	ErrInvalidState = errors.New("invalid state")
	// ErrNoSolution reports cash flows whose NPV cannot cross zero.
	ErrNoSolution = errors.New("no solution")
	// ErrNoConvergence reports that the IRR solver could not find a root.
	ErrNoConvergence = errors.New("no convergence")
)
