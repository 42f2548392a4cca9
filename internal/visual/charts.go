// Package visual renders an AnalysisResult into chart images. Each chart
// is drawn independently and returned base64-encoded for embedding.
package visual

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"sort"

	"github.com/gnomegl/gitgaze/internal/models"
	"github.com/wcharczuk/go-chart/v2"
)

// Chart identifiers keying the Render result.
const (
	LanguageDistribution   = "language_distribution"
	CommitTimeDistribution = "commit_time_distribution"
	QuarterlyActivity      = "quarterly_activity"
	RepoSizeDistribution   = "repo_size_distribution"
)

const (
	chartWidth    = 1024
	chartHeight   = 512
	histogramBins = 30
)

// Render draws the four profile charts as PNG and returns them base64
// encoded. Empty series render a "no data" placeholder instead of failing.
func Render(res *models.AnalysisResult) (map[string]string, error) {
	draws := map[string]func(*models.AnalysisResult) ([]byte, error){
		LanguageDistribution:   languagePie,
		CommitTimeDistribution: timeOfDayBars,
		QuarterlyActivity:      quarterlyLine,
		RepoSizeDistribution:   sizeHistogram,
	}

	encoded := make(map[string]string, len(draws))
	for name, draw := range draws {
		png, err := draw(res)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", name, err)
		}
		encoded[name] = base64.StdEncoding.EncodeToString(png)
	}
	return encoded, nil
}

func languagePie(res *models.AnalysisResult) ([]byte, error) {
	langs := res.RepoStats.TopLanguages
	if len(langs) == 0 {
		return placeholder("Repository Language Distribution")
	}

	values := make([]chart.Value, 0, len(langs))
	for _, l := range langs {
		values = append(values, chart.Value{Value: float64(l.Count), Label: l.Name})
	}

	pie := chart.PieChart{
		Title:  "Repository Language Distribution",
		Width:  chartHeight,
		Height: chartHeight,
		Values: values,
	}
	return renderPNG(pie.Render)
}

func timeOfDayBars(res *models.AnalysisResult) ([]byte, error) {
	freq := res.Activity.CommitFrequency
	if freq.Total() == 0 {
		return placeholder("Commit Activity by Time of Day")
	}

	bars := []chart.Value{
		{Value: float64(freq.Morning), Label: "Morning (5-12)"},
		{Value: float64(freq.Afternoon), Label: "Afternoon (12-17)"},
		{Value: float64(freq.Evening), Label: "Evening (17-22)"},
		{Value: float64(freq.Night), Label: "Night (22-5)"},
	}
	maxCount := freq.Morning
	for _, b := range bars[1:] {
		if int(b.Value) > maxCount {
			maxCount = int(b.Value)
		}
	}

	graph := chart.BarChart{
		Title:    "Commit Activity by Time of Day",
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 120,
		Bars:     bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
	}
	return renderPNG(graph.Render)
}

func quarterlyLine(res *models.AnalysisResult) ([]byte, error) {
	quarters := make([]models.QuarterCount, len(res.Activity.UpdatesPerQuarter))
	copy(quarters, res.Activity.UpdatesPerQuarter)
	// "YYYY-Qn" labels sort chronologically as plain strings.
	sort.Slice(quarters, func(i, j int) bool { return quarters[i].Label < quarters[j].Label })

	// A line needs two points.
	if len(quarters) < 2 {
		return placeholder("Repository Updates by Quarter")
	}

	xs := make([]float64, len(quarters))
	ys := make([]float64, len(quarters))
	ticks := make([]chart.Tick, len(quarters))
	maxY := 0.0
	for i, q := range quarters {
		xs[i] = float64(i)
		ys[i] = float64(q.Count)
		ticks[i] = chart.Tick{Value: float64(i), Label: q.Label}
		if ys[i] > maxY {
			maxY = ys[i]
		}
	}

	graph := chart.Chart{
		Title:  "Repository Updates by Quarter",
		Width:  chartWidth,
		Height: chartHeight,
		XAxis: chart.XAxis{
			Ticks: ticks,
			Style: chart.Style{TextRotationDegrees: 45.0},
		},
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: maxY + 1},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{XValues: xs, YValues: ys},
		},
	}
	return renderPNG(graph.Render)
}

func sizeHistogram(res *models.AnalysisResult) ([]byte, error) {
	sizes := res.RepoStats.RepoSizes
	if len(sizes) == 0 {
		return placeholder("Repository Size Distribution")
	}

	lo, hi := sizes[0], sizes[0]
	for _, s := range sizes {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}

	bins := histogramBins
	if span := hi - lo + 1; span < bins {
		bins = span
	}
	width := (hi - lo + bins) / bins

	counts := make([]int, bins)
	for _, s := range sizes {
		idx := (s - lo) / width
		if idx >= bins {
			idx = bins - 1
		}
		counts[idx]++
	}

	bars := make([]chart.Value, bins)
	maxCount := 0
	for i, c := range counts {
		bars[i] = chart.Value{Value: float64(c), Label: fmt.Sprintf("%d", lo+i*width)}
		if c > maxCount {
			maxCount = c
		}
	}

	graph := chart.BarChart{
		Title:      "Repository Size Distribution (KB)",
		Width:      chartWidth,
		Height:     chartHeight,
		BarWidth:   20,
		BarSpacing: 8, // keep 30 bins inside the canvas
		Bars:       bars,
		YAxis: chart.YAxis{
			Range: &chart.ContinuousRange{Min: 0, Max: float64(maxCount)},
		},
	}
	return renderPNG(graph.Render)
}

// placeholder stands in when a chart has nothing to plot, so callers never
// have to special-case empty analyses.
func placeholder(title string) ([]byte, error) {
	graph := chart.BarChart{
		Title:    title,
		Width:    chartWidth,
		Height:   chartHeight,
		BarWidth: 120,
		Bars:     []chart.Value{{Value: 1, Label: "no data"}},
		YAxis: chart.YAxis{
			Style: chart.Style{Hidden: true},
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
	}
	return renderPNG(graph.Render)
}

func renderPNG(render func(chart.RendererProvider, io.Writer) error) ([]byte, error) {
	var buf bytes.Buffer
	if err := render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
