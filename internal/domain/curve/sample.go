package curve

import "math"

const (
	domainPadding = 0.2
	domainSteps   = 25.0
	maxSampleY    = 1000.0
)

// Domain is the x range covered by a chart of point sets.
type Domain struct {
	Min  float64
	Max  float64
	Step float64
}

// DomainFor pads the x extent of all points by a fifth of its range on both
// sides. ok is false when there are no points.
func DomainFor(sets []PointSet) (Domain, bool) {
	xMin, xMax := math.Inf(1), math.Inf(-1)
	for _, set := range sets {
		for _, pt := range set.Points {
			xMin = math.Min(xMin, pt.X)
			xMax = math.Max(xMax, pt.X)
		}
	}
	if math.IsInf(xMin, 1) {
		return Domain{}, false
	}

	xRange := xMax - xMin
	return Domain{
		Min:  xMin - xRange*domainPadding,
		Max:  xMax + xRange*domainPadding,
		Step: xRange / domainSteps,
	}, true
}

// Sample evaluates c across d and keeps the first-quadrant samples below the
// chart ceiling.
func Sample(c FittedCurve, d Domain) []Point {
	if d.Step <= 0 {
		y := c.Eval(d.Min)
		if d.Min >= 0 && y >= 0 && y < maxSampleY {
			return []Point{{X: d.Min, Y: y}}
		}
		return nil
	}

	var out []Point
	end := d.Max + d.Step/2
	for i := 0; ; i++ {
		x := d.Min + float64(i)*d.Step
		if x >= end {
			break
		}
		y := c.Eval(x)
		if x < 0 || math.IsNaN(y) || y < 0 || y >= maxSampleY {
			continue
		}
		out = append(out, Point{X: x, Y: y})
	}
	return out
}
