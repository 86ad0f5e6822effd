package draft

import (
	"math"
	"sort"

	"github.com/riskibarqy/draft-value/internal/domain/curve"
	"github.com/riskibarqy/draft-value/internal/domain/player"
)

// Ranked is one undrafted player with its draft value.
type Ranked struct {
	Player player.Player
	Value  float64
}

// Rank scores every candidate against its position curve and sorts by value,
// highest first. Candidates whose position has no curve, who have no
// projections, or whose value is not finite are left out.
func Rank(candidates []player.Player, draftPosition, leagueSize int, curves map[string]curve.FittedCurve) []Ranked {
	out := make([]Ranked, 0, len(candidates))
	for _, p := range candidates {
		c, ok := curves[p.Position]
		if !ok {
			continue
		}
		avg := p.AverageProjectedPPG()
		if math.IsNaN(avg) {
			continue
		}
		value := Value(avg, draftPosition, c, leagueSize)
		if !isFinite(value) {
			continue
		}
		out = append(out, Ranked{Player: p, Value: value})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}
