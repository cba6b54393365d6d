package registry

import "errors"

// Sentinel errors for name lookups against the closed function table.
// Callers should use errors.Is to branch on the lookup kind; the concrete
// error returned by the Lookup* functions wraps the sentinel with the
// offending name via fmt.Errorf.
var (
	ErrUnknownActivation   = errors.New("registry: unknown activation function")
	ErrUnknownLoss         = errors.New("registry: unknown loss function")
	ErrUnknownConvergence  = errors.New("registry: unknown convergence operator")
	ErrUnknownWeightInit   = errors.New("registry: unknown weight initializer")
	ErrUnknownBiasInit     = errors.New("registry: unknown bias initializer")
)
