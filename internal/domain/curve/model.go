package curve

import (
	"math"

	"github.com/riskibarqy/draft-value/internal/domain/player"
)

// ParameterCount is the number of free parameters of Func.
const ParameterCount = 5

// Parameters of y = C1 / (C2 * (x + X0))^P + Y0.
type Parameters struct {
	C1 float64 `json:"c1"`
	C2 float64 `json:"c2"`
	X0 float64 `json:"x0"`
	P  float64 `json:"p"`
	Y0 float64 `json:"y0"`
}

func parametersFromSlice(v []float64) Parameters {
	return Parameters{C1: v[0], C2: v[1], X0: v[2], P: v[3], Y0: v[4]}
}

func (p Parameters) Slice() []float64 {
	return []float64{p.C1, p.C2, p.X0, p.P, p.Y0}
}

// Func is the draft-rank to PPG model shared by every position.
func Func(x float64, p Parameters) float64 {
	return p.C1/math.Pow(p.C2*(x+p.X0), p.P) + p.Y0
}

// FittedCurve is an immutable fit for one position.
type FittedCurve struct {
	Position   string
	Parameters Parameters
}

func (c FittedCurve) Eval(x float64) float64 {
	return Func(x, c.Parameters)
}

// Point is one (draft rank, projected PPG) observation.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PointSet holds the observations of one position in insertion order.
type PointSet struct {
	Position string
	Points   []Point
}

func (s *PointSet) Add(x, y float64) {
	s.Points = append(s.Points, Point{X: x, Y: y})
}

// BuildPointSets groups every (rank, PPG) pair that comes from the same source
// by position. Positions keep first-seen order; players without a position are skipped.
func BuildPointSets(players []player.Player) []PointSet {
	indexByPosition := make(map[string]int)
	var sets []PointSet

	for _, p := range players {
		if p.Position == "" {
			continue
		}
		idx, ok := indexByPosition[p.Position]
		if !ok {
			idx = len(sets)
			indexByPosition[p.Position] = idx
			sets = append(sets, PointSet{Position: p.Position})
		}

		for _, source := range player.AllSources {
			rank, hasRank := p.Rank[source]
			ppg, hasPPG := p.ProjectedPPG[source]
			if !hasRank || !hasPPG {
				continue
			}
			sets[idx].Add(float64(rank), ppg)
		}
	}

	return sets
}
