package player

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Source identifies one external ranking/projection provider.
type Source string

const (
	SourceESPN        Source = "ESPN"
	SourceFantasyPros Source = "FantasyPros"
)

// AllSources lists providers in the order their data is loaded.
var AllSources = []Source{SourceESPN, SourceFantasyPros}

func (s Source) Valid() bool {
	for _, candidate := range AllSources {
		if s == candidate {
			return true
		}
	}
	return false
}

// Player is one reconciled identity with per-source rankings and projections.
// Empty Position and Team mean unset.
type Player struct {
	Name         string
	Position     string
	Team         string
	Rank         map[Source]int
	PositionRank map[Source]int
	ProjectedPPG map[Source]float64
}

func New(name, position, team string) Player {
	return Player{
		Name:         name,
		Position:     position,
		Team:         team,
		Rank:         make(map[Source]int),
		PositionRank: make(map[Source]int),
		ProjectedPPG: make(map[Source]float64),
	}
}

// RawRecord is a single row produced by a source parser. Nil fields were not
// present in the row.
type RawRecord struct {
	Name         string
	Position     string
	Team         string
	Source       Source
	Rank         *int
	PositionRank *int
	ProjectedPPG *float64
}

func (r RawRecord) Player() Player {
	p := New(r.Name, r.Position, r.Team)
	if r.Rank != nil {
		p.SetRank(r.Source, *r.Rank)
	}
	if r.PositionRank != nil {
		p.SetPositionRank(r.Source, *r.PositionRank)
	}
	if r.ProjectedPPG != nil {
		p.SetProjectedPPG(r.Source, *r.ProjectedPPG)
	}
	return p
}

func (p *Player) SetRank(source Source, rank int) {
	if p.Rank == nil {
		p.Rank = make(map[Source]int)
	}
	p.Rank[source] = rank
}

func (p *Player) SetPositionRank(source Source, positionRank int) {
	if p.PositionRank == nil {
		p.PositionRank = make(map[Source]int)
	}
	p.PositionRank[source] = positionRank
}

func (p *Player) SetProjectedPPG(source Source, ppg float64) {
	if p.ProjectedPPG == nil {
		p.ProjectedPPG = make(map[Source]float64)
	}
	p.ProjectedPPG[source] = ppg
}

// AverageProjectedPPG is the mean over all sources, NaN when no source projected the player.
func (p Player) AverageProjectedPPG() float64 {
	if len(p.ProjectedPPG) == 0 {
		return math.NaN()
	}
	values := make([]float64, 0, len(p.ProjectedPPG))
	for _, source := range p.sources(p.ProjectedPPG) {
		values = append(values, p.ProjectedPPG[source])
	}
	return stat.Mean(values, nil)
}

// Merge folds other into p. Position and team are only filled when unset;
// per-source values from other overwrite existing entries.
func (p *Player) Merge(other Player) {
	if p.Position == "" {
		p.Position = other.Position
	}
	if p.Team == "" {
		p.Team = other.Team
	}
	for source, rank := range other.Rank {
		p.SetRank(source, rank)
	}
	for source, positionRank := range other.PositionRank {
		p.SetPositionRank(source, positionRank)
	}
	for source, ppg := range other.ProjectedPPG {
		p.SetProjectedPPG(source, ppg)
	}
}

func (p Player) Clone() Player {
	out := New(p.Name, p.Position, p.Team)
	out.Merge(p)
	return out
}

// sources returns the keys of values in load order, followed by unknown sources.
func (p Player) sources(values map[Source]float64) []Source {
	out := make([]Source, 0, len(values))
	for _, source := range AllSources {
		if _, ok := values[source]; ok {
			out = append(out, source)
		}
	}
	for source := range values {
		if !source.Valid() {
			out = append(out, source)
		}
	}
	return out
}
