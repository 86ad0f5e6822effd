package player

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rankedRecord(name, position, team string, source Source, rank, positionRank int) Player {
	p := New(name, position, team)
	p.SetRank(source, rank)
	p.SetPositionRank(source, positionRank)
	return p
}

func projectedRecord(name string, source Source, ppg float64) Player {
	p := New(name, "", "")
	p.SetProjectedPPG(source, ppg)
	return p
}

func TestRegistry_IngestSameRecordTwice(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	record := rankedRecord("Christian McCaffrey", "RB", "SF", SourceESPN, 1, 1)

	_, merged := registry.Ingest(record)
	assert.False(t, merged)
	into, merged := registry.Ingest(record)
	assert.True(t, merged)
	assert.Equal(t, "Christian McCaffrey", into)

	require.Equal(t, 1, registry.Len())
}

func TestRegistry_MergeKeepsExistingPosition(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Ingest(rankedRecord("Bijan Robinson", "RB", "ATL", SourceESPN, 3, 2))
	registry.Ingest(projectedRecord("Bijan Robinson", SourceESPN, 18.5))

	players := registry.All()
	require.Len(t, players, 1)
	assert.Equal(t, "RB", players[0].Position)
	assert.Equal(t, "ATL", players[0].Team)
	assert.Equal(t, 18.5, players[0].ProjectedPPG[SourceESPN])
}

func TestRegistry_MergeFillsMissingScalars(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Ingest(projectedRecord("Puka Nacua", SourceFantasyPros, 16.1))
	registry.Ingest(rankedRecord("Puka Nacua", "WR", "LAR", SourceFantasyPros, 12, 5))

	p, ok := registry.Lookup("Puka Nacua")
	require.True(t, ok)
	assert.Equal(t, "WR", p.Position)
	assert.Equal(t, "LAR", p.Team)
	assert.Equal(t, 12, p.Rank[SourceFantasyPros])
}

func TestRegistry_LastMergedValueWinsPerSource(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Ingest(projectedRecord("Josh Allen", "X", 10.0))
	registry.Ingest(projectedRecord("Josh Allen", "X", 15.0))

	p, ok := registry.Lookup("Josh Allen")
	require.True(t, ok)
	assert.Equal(t, 15.0, p.ProjectedPPG["X"])
}

func TestRegistry_MatchesAgainstCurrentState(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Ingest(rankedRecord("Marvin Harrison Jr.", "WR", "ARI", SourceESPN, 20, 9))
	registry.Ingest(projectedRecord("Marvin Harrison", SourceFantasyPros, 14.2))
	registry.Ingest(projectedRecord("Marvin Harrison Jr.", SourceESPN, 13.8))

	players := registry.All()
	require.Len(t, players, 1)
	assert.Equal(t, "Marvin Harrison Jr.", players[0].Name)
	assert.InDelta(t, 14.0, players[0].AverageProjectedPPG(), 1e-9)
}

func TestRegistry_NameOnlyRecordParticipates(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Ingest(New("Kansas City Chiefs", "", ""))
	_, merged := registry.Ingest(rankedRecord("Chiefs", "DST", "KC", SourceESPN, 150, 1))
	assert.True(t, merged)

	players := registry.All()
	require.Len(t, players, 1)
	assert.Equal(t, "DST", players[0].Position)
}

func TestRegistry_AllReturnsCopies(t *testing.T) {
	t.Parallel()

	registry := NewRegistry()
	registry.Ingest(projectedRecord("Tyreek Hill", SourceESPN, 17))

	snapshot := registry.All()
	snapshot[0].ProjectedPPG[SourceESPN] = 0

	p, ok := registry.Lookup("Tyreek Hill")
	require.True(t, ok)
	assert.Equal(t, 17.0, p.ProjectedPPG[SourceESPN])
}

func TestPlayer_AverageProjectedPPG(t *testing.T) {
	t.Parallel()

	p := New("Lamar Jackson", "QB", "BAL")
	assert.True(t, math.IsNaN(p.AverageProjectedPPG()))

	p.SetProjectedPPG(SourceESPN, 20)
	p.SetProjectedPPG(SourceFantasyPros, 22)
	assert.InDelta(t, 21.0, p.AverageProjectedPPG(), 1e-9)
}

func TestRawRecord_Player(t *testing.T) {
	t.Parallel()

	rank, positionRank, ppg := 7, 3, 19.25
	p := RawRecord{
		Name:         "Saquon Barkley",
		Position:     "RB",
		Team:         "PHI",
		Source:       SourceFantasyPros,
		Rank:         &rank,
		PositionRank: &positionRank,
		ProjectedPPG: &ppg,
	}.Player()

	assert.Equal(t, 7, p.Rank[SourceFantasyPros])
	assert.Equal(t, 3, p.PositionRank[SourceFantasyPros])
	assert.Equal(t, 19.25, p.ProjectedPPG[SourceFantasyPros])

	empty := RawRecord{Name: "Saquon Barkley", Source: SourceESPN}.Player()
	assert.Empty(t, empty.Rank)
	assert.Empty(t, empty.ProjectedPPG)
}
