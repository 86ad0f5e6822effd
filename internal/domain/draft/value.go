package draft

import (
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/riskibarqy/draft-value/internal/domain/curve"
)

const (
	DefaultInitialGuess  = 100.0
	DefaultMaxIterations = 100
	rootTolerance        = 1e-9
	maxStepHalvings      = 60
)

// ErrRootFind is returned by SolveDraftPosition when the iteration diverges,
// overflows or hits a flat region of the curve.
var ErrRootFind = errors.New("root finding failed")

// Value is how much a player's average PPG beats the curve's expectation one
// round (leagueSize picks) after draftPosition.
func Value(playerAvgPPG float64, draftPosition int, c curve.FittedCurve, leagueSize int) float64 {
	return playerAvgPPG - c.Eval(float64(draftPosition+leagueSize))
}

type SolverConfig struct {
	InitialGuess  float64
	MaxIterations int
}

func DefaultSolverConfig() SolverConfig {
	return SolverConfig{
		InitialGuess:  DefaultInitialGuess,
		MaxIterations: DefaultMaxIterations,
	}
}

// OptimalDraftPosition returns the draft position x at which the curve expects
// targetPPG, or NaN when no such x could be found. Callers must check with math.IsNaN.
func OptimalDraftPosition(targetPPG float64, c curve.FittedCurve, initialGuess float64) float64 {
	x, err := SolveDraftPosition(targetPPG, c, SolverConfig{
		InitialGuess:  initialGuess,
		MaxIterations: DefaultMaxIterations,
	})
	if err != nil {
		return math.NaN()
	}
	return x
}

// SolveDraftPosition runs a damped Newton iteration on curve(x) - targetPPG,
// using a central finite difference for the slope. A step is halved until it
// reduces the residual.
func SolveDraftPosition(targetPPG float64, c curve.FittedCurve, cfg SolverConfig) (float64, error) {
	if cfg.MaxIterations < 1 {
		cfg.MaxIterations = DefaultMaxIterations
	}
	if !isFinite(targetPPG) || !isFinite(cfg.InitialGuess) {
		return math.NaN(), errors.Wrapf(ErrRootFind, "target=%v guess=%v", targetPPG, cfg.InitialGuess)
	}

	residual := func(x float64) float64 {
		return c.Eval(x) - targetPPG
	}
	tolerance := rootTolerance * math.Max(1, math.Abs(targetPPG))
	settings := &fd.Settings{Formula: fd.Central}

	x := cfg.InitialGuess
	fx := residual(x)
	if !isFinite(fx) {
		return math.NaN(), errors.Wrapf(ErrRootFind, "curve is not finite at x=%v", x)
	}
	for i := 0; i < cfg.MaxIterations; i++ {
		if math.Abs(fx) <= tolerance {
			return x, nil
		}

		slope := fd.Derivative(residual, x, settings)
		if slope == 0 || !isFinite(slope) {
			return math.NaN(), errors.Wrapf(ErrRootFind, "flat or undefined slope at x=%v", x)
		}

		step := fx / slope
		accepted := false
		for halvings := 0; halvings < maxStepHalvings; halvings++ {
			next := x - step
			if !isFinite(next) {
				return math.NaN(), errors.Wrapf(ErrRootFind, "iteration overflowed after %d steps", i+1)
			}
			fNext := residual(next)
			if isFinite(fNext) && math.Abs(fNext) < math.Abs(fx) {
				x, fx = next, fNext
				accepted = true
				break
			}
			step /= 2
		}
		if !accepted {
			return math.NaN(), errors.Wrapf(ErrRootFind, "no descent step from x=%v", x)
		}
	}
	if math.Abs(fx) <= tolerance {
		return x, nil
	}

	return math.NaN(), errors.Wrapf(ErrRootFind, "no convergence after %d iterations", cfg.MaxIterations)
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
