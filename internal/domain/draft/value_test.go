package draft

import (
	"math"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/draft-value/internal/domain/curve"
	"github.com/riskibarqy/draft-value/internal/domain/player"
)

var hyperbola = curve.FittedCurve{
	Position:   "RB",
	Parameters: curve.Parameters{C1: 100, C2: 1, X0: 1, P: 1, Y0: 5},
}

var flat = curve.FittedCurve{
	Position:   "K",
	Parameters: curve.Parameters{C1: 0, C2: 1, X0: 1, P: 1, Y0: 8},
}

func TestValue_ShiftsByLeagueSize(t *testing.T) {
	t.Parallel()

	got := Value(20.0, 5, hyperbola, 10)
	want := 20.0 - curve.Func(15, hyperbola.Parameters)
	if got != want {
		t.Fatalf("unexpected value: got=%v want=%v", got, want)
	}
	assert.InDelta(t, 20.0-(100.0/16.0+5.0), got, 1e-12)
}

func TestOptimalDraftPosition(t *testing.T) {
	t.Parallel()

	x := OptimalDraftPosition(15, hyperbola, DefaultInitialGuess)
	require.False(t, math.IsNaN(x))
	assert.InDelta(t, 9.0, x, 1e-6)
}

func TestOptimalDraftPosition_FlatCurveReturnsNaN(t *testing.T) {
	t.Parallel()

	assert.True(t, math.IsNaN(OptimalDraftPosition(12, flat, DefaultInitialGuess)))
}

func TestSolveDraftPosition_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		target float64
		c      curve.FittedCurve
		cfg    SolverConfig
	}{
		{name: "flat curve", target: 12, c: flat, cfg: DefaultSolverConfig()},
		{name: "target below asymptote", target: 1, c: hyperbola, cfg: DefaultSolverConfig()},
		{name: "nan target", target: math.NaN(), c: hyperbola, cfg: DefaultSolverConfig()},
		{name: "infinite guess", target: 15, c: hyperbola, cfg: SolverConfig{InitialGuess: math.Inf(1)}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			x, err := SolveDraftPosition(tc.target, tc.c, tc.cfg)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRootFind))
			assert.True(t, math.IsNaN(x))
		})
	}
}

func TestRank(t *testing.T) {
	t.Parallel()

	rb1 := player.New("Jahmyr Gibbs", "RB", "DET")
	rb1.SetProjectedPPG(player.SourceESPN, 19)
	rb2 := player.New("Kyren Williams", "RB", "LAR")
	rb2.SetProjectedPPG(player.SourceESPN, 15)
	rb2.SetProjectedPPG(player.SourceFantasyPros, 17)
	kicker := player.New("Justin Tucker", "K", "BAL")
	kicker.SetProjectedPPG(player.SourceESPN, 9)
	noProjection := player.New("Rookie", "RB", "")
	noCurve := player.New("Travis Kelce", "TE", "KC")
	noCurve.SetProjectedPPG(player.SourceESPN, 14)

	curves := map[string]curve.FittedCurve{"RB": hyperbola, "K": flat}
	ranked := Rank([]player.Player{rb2, kicker, noProjection, noCurve, rb1}, 3, 12, curves)

	require.Len(t, ranked, 3)
	assert.Equal(t, "Jahmyr Gibbs", ranked[0].Player.Name)
	assert.Equal(t, "Kyren Williams", ranked[1].Player.Name)
	assert.Equal(t, "Justin Tucker", ranked[2].Player.Name)
	assert.InDelta(t, 19-(100.0/16.0+5), ranked[0].Value, 1e-12)
	assert.InDelta(t, 1.0, ranked[2].Value, 1e-12)
}

func TestRank_DropsNonFiniteValues(t *testing.T) {
	t.Parallel()

	// x + X0 is zero one round after pick 3 in a 12 team league.
	pole := curve.FittedCurve{
		Position:   "WR",
		Parameters: curve.Parameters{C1: 100, C2: 1, X0: -15, P: 1, Y0: 5},
	}
	require.True(t, math.IsInf(pole.Eval(15), 0))

	wr := player.New("Puka Nacua", "WR", "LAR")
	wr.SetProjectedPPG(player.SourceESPN, 18)
	rb := player.New("Jahmyr Gibbs", "RB", "DET")
	rb.SetProjectedPPG(player.SourceESPN, 19)

	ranked := Rank([]player.Player{wr, rb}, 3, 12, map[string]curve.FittedCurve{"WR": pole, "RB": hyperbola})
	require.Len(t, ranked, 1)
	assert.Equal(t, "Jahmyr Gibbs", ranked[0].Player.Name)
}
