// Package chart renders rank/PPG scatter plots with the fitted curves laid
// over them.
package chart

import (
	"io"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/riskibarqy/draft-value/internal/domain/curve"
)

type Config struct {
	Title    string
	Subtitle string
	Width    string
	Height   string
	Theme    string
}

func DefaultConfig() Config {
	return Config{
		Title:    "Projected PPG by draft rank",
		Subtitle: "points: source rankings, dashed: fitted curve",
		Width:    "1200px",
		Height:   "700px",
		Theme:    "light",
	}
}

// Build creates one scatter series per position and, for positions with a
// curve, a dashed line series sampled over the shared domain.
func Build(sets []curve.PointSet, curves map[string]curve.FittedCurve, cfg Config) *charts.Scatter {
	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: cfg.Title,
			Width:     cfg.Width,
			Height:    cfg.Height,
			Theme:     cfg.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    cfg.Title,
			Subtitle: cfg.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "item",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(true),
			Top:  "bottom",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Rank",
			Type: "value",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "Projected PPG",
			Type: "value",
		}),
	)

	for _, set := range sets {
		data := make([]opts.ScatterData, 0, len(set.Points))
		for _, pt := range set.Points {
			data = append(data, opts.ScatterData{Value: []float64{pt.X, pt.Y}, SymbolSize: 6})
		}
		scatter.AddSeries(set.Position, data)
	}

	domain, ok := curve.DomainFor(sets)
	if !ok {
		return scatter
	}

	lines := charts.NewLine()
	for _, set := range sets {
		fitted, ok := curves[set.Position]
		if !ok {
			continue
		}
		samples := curve.Sample(fitted, domain)
		data := make([]opts.LineData, 0, len(samples))
		for _, pt := range samples {
			data = append(data, opts.LineData{Value: []float64{pt.X, pt.Y}})
		}
		lines.AddSeries(set.Position+" fit", data,
			charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false)}),
			charts.WithLineStyleOpts(opts.LineStyle{Type: "dashed", Width: 2}),
		)
	}
	scatter.Overlap(lines)
	return scatter
}

// Render writes the chart as a standalone HTML page.
func Render(w io.Writer, sets []curve.PointSet, curves map[string]curve.FittedCurve, cfg Config) error {
	if err := Build(sets, curves, cfg).Render(w); err != nil {
		return errors.Wrap(err, "render chart")
	}
	return nil
}

// RenderFile renders to path, creating parent directories as needed.
func RenderFile(path string, sets []curve.PointSet, curves map[string]curve.FittedCurve, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create chart directory %s", dir)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create chart file %s", path)
	}
	defer f.Close()

	return Render(f, sets, curves, cfg)
}
