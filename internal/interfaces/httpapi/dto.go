package httpapi

import (
	"math"

	"github.com/riskibarqy/draft-value/internal/domain/curve"
	"github.com/riskibarqy/draft-value/internal/domain/draft"
	"github.com/riskibarqy/draft-value/internal/domain/player"
	"github.com/riskibarqy/draft-value/internal/usecase"
)

type playerDTO struct {
	Name                string             `json:"name"`
	Position            string             `json:"position,omitempty"`
	Team                string             `json:"team,omitempty"`
	Rank                map[string]int     `json:"rank,omitempty"`
	PositionRank        map[string]int     `json:"position_rank,omitempty"`
	ProjectedPPG        map[string]float64 `json:"projected_ppg,omitempty"`
	AverageProjectedPPG *float64           `json:"average_projected_ppg"`
}

type curveDTO struct {
	Position   string           `json:"position"`
	Parameters curve.Parameters `json:"parameters"`
	Points     int              `json:"points"`
}

type curvesDTO struct {
	Curves   []curveDTO             `json:"curves"`
	Failures []usecase.CurveFailure `json:"failures"`
}

type samplesDTO struct {
	Position string        `json:"position"`
	Samples  []curve.Point `json:"samples"`
}

type rankedDTO struct {
	Name     string  `json:"name"`
	Position string  `json:"position"`
	Team     string  `json:"team,omitempty"`
	Value    float64 `json:"value"`
}

type rankDraftDTO struct {
	DraftPosition int         `json:"draft_position"`
	LeagueSize    int         `json:"league_size"`
	Ranked        []rankedDTO `json:"ranked"`
	Unresolved    []string    `json:"unresolved,omitempty"`
}

type optimalPositionDTO struct {
	Position      string   `json:"position"`
	PPG           float64  `json:"ppg"`
	DraftPosition *float64 `json:"draft_position"`
}

func playerToDTO(p player.Player) playerDTO {
	out := playerDTO{
		Name:     p.Name,
		Position: p.Position,
		Team:     p.Team,
	}
	if len(p.Rank) > 0 {
		out.Rank = make(map[string]int, len(p.Rank))
		for src, v := range p.Rank {
			out.Rank[string(src)] = v
		}
	}
	if len(p.PositionRank) > 0 {
		out.PositionRank = make(map[string]int, len(p.PositionRank))
		for src, v := range p.PositionRank {
			out.PositionRank[string(src)] = v
		}
	}
	if len(p.ProjectedPPG) > 0 {
		out.ProjectedPPG = make(map[string]float64, len(p.ProjectedPPG))
		for src, v := range p.ProjectedPPG {
			out.ProjectedPPG[string(src)] = v
		}
	}
	if avg := p.AverageProjectedPPG(); !math.IsNaN(avg) {
		out.AverageProjectedPPG = &avg
	}
	return out
}

func analysisToDTO(a usecase.Analysis) curvesDTO {
	pointsByPosition := make(map[string]int, len(a.PointSets))
	for _, set := range a.PointSets {
		pointsByPosition[set.Position] = len(set.Points)
	}

	out := curvesDTO{
		Curves:   make([]curveDTO, 0, len(a.Curves)),
		Failures: make([]usecase.CurveFailure, 0, len(a.Failures)),
	}
	for _, position := range a.Positions() {
		fitted, ok := a.Curves[position]
		if !ok {
			continue
		}
		out.Curves = append(out.Curves, curveDTO{
			Position:   fitted.Position,
			Parameters: fitted.Parameters,
			Points:     pointsByPosition[position],
		})
	}
	out.Failures = append(out.Failures, a.Failures...)
	return out
}

func rankedToDTO(items []draft.Ranked) []rankedDTO {
	out := make([]rankedDTO, 0, len(items))
	for _, item := range items {
		out = append(out, rankedDTO{
			Name:     item.Player.Name,
			Position: item.Player.Position,
			Team:     item.Player.Team,
			Value:    item.Value,
		})
	}
	return out
}
