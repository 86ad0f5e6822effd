package curve

import (
	"fmt"
	"math"

	"github.com/cockroachdb/errors"
	"gonum.org/v1/gonum/optimize"
	"gonum.org/v1/gonum/stat"
)

const (
	PositionQuarterback = "QB"

	DefaultMaxEvaluations = 1_000_000
	DefaultQBMinPPG       = 200.0
)

// ErrFit matches every *FitError.
var ErrFit = errors.New("curve fitting failed")

// FitError reports that no curve is available for a position.
type FitError struct {
	Position string
	Cause    error
}

func (e *FitError) Error() string {
	return fmt.Sprintf("curve fitting failed for %s: %v", e.Position, e.Cause)
}

func (e *FitError) Unwrap() error {
	return e.Cause
}

func (e *FitError) Is(target error) bool {
	return target == ErrFit
}

type FitterConfig struct {
	// MaxEvaluations bounds objective evaluations per fit.
	MaxEvaluations int
	// QBMinPPG excludes quarterback points with y <= QBMinPPG.
	QBMinPPG float64
}

func DefaultFitterConfig() FitterConfig {
	return FitterConfig{
		MaxEvaluations: DefaultMaxEvaluations,
		QBMinPPG:       DefaultQBMinPPG,
	}
}

// Fitter fits Func to a position's points by nonlinear least squares.
type Fitter struct {
	cfg FitterConfig
}

func NewFitter(cfg FitterConfig) *Fitter {
	if cfg.MaxEvaluations < 1 {
		cfg.MaxEvaluations = DefaultMaxEvaluations
	}
	return &Fitter{cfg: cfg}
}

// FilterOutliers drops the low-PPG quarterback cluster. Other positions are
// returned unchanged.
func (f *Fitter) FilterOutliers(position string, points []Point) []Point {
	if position != PositionQuarterback {
		return points
	}
	out := make([]Point, 0, len(points))
	for _, pt := range points {
		if pt.Y > f.cfg.QBMinPPG {
			out = append(out, pt)
		}
	}
	return out
}

// Fit minimizes the squared residuals of Func over the points. C2 is fixed
// at 1 since only C1/C2^P is identifiable. C1 and Y0 enter linearly and are
// solved exactly for every candidate (X0, P), so the solver only searches
// z = (log(X0 + min x), P), which keeps X0 past the pole at -min x.
func (f *Fitter) Fit(position string, points []Point) (FittedCurve, error) {
	filtered := f.FilterOutliers(position, points)
	if len(filtered) < ParameterCount {
		return FittedCurve{}, &FitError{
			Position: position,
			Cause:    errors.Newf("need at least %d points, got %d", ParameterCount, len(filtered)),
		}
	}

	proj := newProjection(filtered)
	start, evaluations, ok := proj.gridStart()
	if !ok {
		return FittedCurve{}, &FitError{Position: position, Cause: errors.New("no finite starting point")}
	}
	if evaluations >= f.cfg.MaxEvaluations {
		return FittedCurve{}, &FitError{
			Position: position,
			Cause:    errors.Newf("solver stopped with status %s after %d evaluations", optimize.FunctionEvaluationLimit, evaluations),
		}
	}

	problem := optimize.Problem{
		Func: func(z []float64) float64 {
			_, rss := proj.solve(z)
			return rss
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: f.cfg.MaxEvaluations - evaluations,
		Converger: &optimize.FunctionConverge{
			Absolute:   1e-12,
			Relative:   1e-10,
			Iterations: 100,
		},
	}

	result, err := optimize.Minimize(problem, start, settings, &optimize.NelderMead{SimplexSize: 0.25})
	if err != nil {
		return FittedCurve{}, &FitError{Position: position, Cause: errors.Wrap(err, "minimize")}
	}
	evaluations += result.Stats.FuncEvaluations
	switch result.Status {
	case optimize.FunctionEvaluationLimit, optimize.IterationLimit, optimize.RuntimeLimit, optimize.Failure:
		return FittedCurve{}, &FitError{
			Position: position,
			Cause:    errors.Newf("solver stopped with status %s after %d evaluations", result.Status, evaluations),
		}
	}

	params, rss := proj.solve(result.X)
	if math.IsNaN(rss) || math.IsInf(rss, 0) {
		return FittedCurve{}, &FitError{Position: position, Cause: errors.New("residual is not finite")}
	}
	for _, v := range params.Slice() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return FittedCurve{}, &FitError{Position: position, Cause: errors.New("parameters are not finite")}
		}
	}

	return FittedCurve{
		Position:   position,
		Parameters: params,
	}, nil
}

// Starting grid over the pole offset X0 + min x and the exponent P.
var (
	offsetGrid   = []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32, 64, 128}
	exponentGrid = []float64{0.1, 0.2, 0.35, 0.5, 0.75, 1, 1.5, 2, 3, 4}
)

type projection struct {
	points []Point
	ys     []float64
	g      []float64
	minX   float64
}

func newProjection(points []Point) *projection {
	p := &projection{
		points: points,
		ys:     make([]float64, len(points)),
		g:      make([]float64, len(points)),
		minX:   math.Inf(1),
	}
	for i, pt := range points {
		p.ys[i] = pt.Y
		p.minX = math.Min(p.minX, pt.X)
	}
	return p
}

// solve returns the best parameters for z and their residual sum of squares.
func (p *projection) solve(z []float64) (Parameters, float64) {
	x0 := math.Exp(z[0]) - p.minX
	exponent := z[1]
	for i, pt := range p.points {
		p.g[i] = math.Pow(pt.X+x0, -exponent)
		if math.IsNaN(p.g[i]) || math.IsInf(p.g[i], 0) {
			return Parameters{}, math.Inf(1)
		}
	}

	y0, c1 := stat.LinearRegression(p.g, p.ys, nil, false)
	if math.IsNaN(c1) || math.IsInf(c1, 0) || math.IsNaN(y0) || math.IsInf(y0, 0) {
		// every g is equal, so the curve is flat
		c1, y0 = 0, stat.Mean(p.ys, nil)
	}
	params := Parameters{C1: c1, C2: 1, X0: x0, P: exponent, Y0: y0}
	return params, sumOfSquares(params, p.points)
}

// gridStart returns the grid point with the lowest residual and the number
// of evaluations spent finding it.
func (p *projection) gridStart() ([]float64, int, bool) {
	var (
		best        []float64
		bestRSS     = math.Inf(1)
		evaluations int
	)
	for _, offset := range offsetGrid {
		for _, exponent := range exponentGrid {
			z := []float64{math.Log(offset), exponent}
			_, rss := p.solve(z)
			evaluations++
			if rss < bestRSS {
				best, bestRSS = z, rss
			}
		}
	}
	return best, evaluations, best != nil
}

func sumOfSquares(params Parameters, points []Point) float64 {
	var sum float64
	for _, pt := range points {
		residual := Func(pt.X, params) - pt.Y
		sum += residual * residual
	}
	if math.IsNaN(sum) {
		return math.Inf(1)
	}
	return sum
}
