// Package config holds solver and integration parameters.
package config

// Config holds the numeric parameters shared by the yield solver, the
// protection leg integrator, and the risk bump calculations.
// These were previously hardcoded magic numbers throughout the codebase.
type Config struct {
	// YieldTolerance is the |price(y) - target| tolerance for Newton-Raphson
	// convergence when solving yield to maturity.
	YieldTolerance float64

	// MaxYieldIterations is the maximum iterations for yield solving.
	MaxYieldIterations int

	// DerivativeStep is the forward finite difference step used to estimate
	// dPrice/dYield inside the solver.
	DerivativeStep float64

	// DerivativeThreshold is the minimum derivative magnitude.
	// Below this, Newton iteration stops to avoid division by near-zero.
	DerivativeThreshold float64

	// IntegrationSteps is the number of midpoint-rule steps used to evaluate
	// the CDS protection leg integral between valuation date and maturity.
	IntegrationSteps int

	// BumpBP is the bump size, in basis points, used for one-sided DV01/CS01
	// finite differences.
	BumpBP float64
}

// DefaultConfig provides production-ready default values.
var DefaultConfig = Config{
	YieldTolerance:      1e-6,
	MaxYieldIterations:  100,
	DerivativeStep:      1e-4,
	DerivativeThreshold: 1e-15,
	IntegrationSteps:    365,
	BumpBP:              1.0,
}

// cfg is the active configuration. Defaults to DefaultConfig.
var cfg = DefaultConfig

// SetConfig replaces the active configuration.
func SetConfig(c Config) {
	cfg = c
}

// GetConfig returns the active configuration.
func GetConfig() Config {
	return cfg
}
