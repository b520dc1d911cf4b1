package lstdq

import "errors"

// SolveError implements errors unique to solving for the weights of
// an LSTDQ controller
type SolveError struct {
	Op  string
	Err error
}

// Error satisfies the error interface
func (e *SolveError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

// Unwrap returns the underlying error
func (e *SolveError) Unwrap() error {
	return e.Err
}

var errNotFinite = errors.New("solution is not finite")

var errNoSamples = errors.New("no samples")

var errFactorize = errors.New("svd factorization failed")

// IsNotFinite returns whether or not an error reports that the least
// squares solution contained NaN or infinite weights
func IsNotFinite(err error) bool {
	if solveErr, ok := err.(*SolveError); ok {
		err = solveErr.Err
	}
	return err == errNotFinite
}

// IsNoSamples returns whether or not an error reports that a solve was
// attempted before any transitions were handled
func IsNoSamples(err error) bool {
	if solveErr, ok := err.(*SolveError); ok {
		err = solveErr.Err
	}
	return err == errNoSamples
}
