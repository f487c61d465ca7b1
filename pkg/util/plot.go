package util

import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/mihai-snyk/moea/pkg/framework"
)

// Series is one named set of bi-objective points on a front plot.
type Series struct {
	Name   string
	Points []framework.ObjectiveSpacePoint
	// Symbol is an echarts symbol name such as "circle" or "triangle".
	Symbol string
	Size   int
}

// FrontPlot renders bi-objective fronts as an HTML scatter chart.
type FrontPlot struct {
	Title  string
	series []Series
}

// Add appends s. Empty series are ignored.
func (p *FrontPlot) Add(s Series) {
	if len(s.Points) == 0 {
		return
	}
	if s.Symbol == "" {
		s.Symbol = "circle"
	}
	if s.Size == 0 {
		s.Size = 6
	}
	p.series = append(p.series, s)
}

// Write renders the plot to path. Every point must have two objectives.
func (p *FrontPlot) Write(path string) error {
	if len(p.series) == 0 {
		return fmt.Errorf("plot %q has no points", p.Title)
	}
	for _, s := range p.series {
		for _, pt := range s.Points {
			if len(pt) != 2 {
				return framework.DimensionMismatchf("series %q: can only plot 2 objectives, got %d", s.Name, len(pt))
			}
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: p.Title}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		charts.WithXAxisOpts(opts.XAxis{Name: "f1", SplitLine: &opts.SplitLine{Show: opts.Bool(true)}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "f2", SplitLine: &opts.SplitLine{Show: opts.Bool(true)}}),
	)
	for _, s := range p.series {
		scatter.AddSeries(s.Name, scatterData(s)).
			SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(false)}))
	}

	f, err := os.Create(path)
	if err != nil {
		return &FileError{Path: path, Err: err}
	}
	if err := scatter.Render(f); err != nil {
		f.Close()
		return &FileError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &FileError{Path: path, Err: err}
	}
	return nil
}

// PlotResults writes the front found by algorithmName next to the true
// front of problem, when known, and any extra series.
func PlotResults(path string, results []framework.ObjectiveSpacePoint, problem framework.Problem, algorithmName string, extra ...Series) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to plot for %s", problem.Name())
	}
	p := &FrontPlot{Title: fmt.Sprintf("%s on %s", algorithmName, problem.Name())}
	p.Add(Series{Name: "True Pareto Front", Points: problem.TrueParetoFront(500), Symbol: "circle", Size: 3})
	for _, s := range extra {
		p.Add(s)
	}
	p.Add(Series{Name: algorithmName, Points: results, Symbol: "triangle", Size: 8})
	return p.Write(path)
}

func scatterData(s Series) []opts.ScatterData {
	data := make([]opts.ScatterData, len(s.Points))
	for i, pt := range s.Points {
		data[i] = opts.ScatterData{
			Value:      []float64{pt[0], pt[1]},
			Symbol:     s.Symbol,
			SymbolSize: s.Size,
		}
	}
	return data
}
