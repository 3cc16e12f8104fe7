package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 5 * vg.Inch
)

var (
	barColor  = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	lineColor = color.RGBA{R: 128, B: 128, A: 255}
	nanColor  = color.Gray{Y: 220}

	errNoData = errors.New("no data to plot")
)

// RenderPNG draws the result of a section as a PNG image.
func RenderPNG(s domain.Section) ([]byte, error) {
	if s.Result == nil {
		return nil, fmt.Errorf("section %q has no result to draw", s.Title)
	}

	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.Chart.XLabel
	p.Y.Label.Text = s.Chart.YLabel

	var err error
	switch s.Chart.Kind {
	case domain.ChartHBar, domain.ChartVBar:
		err = addBars(p, s.Result.Series, s.Chart.Kind == domain.ChartHBar)
	case domain.ChartLine:
		err = addLine(p, s.Result.Series)
	case domain.ChartHeatmap:
		err = addHeatMap(p, s.Result, s.Chart.XLabel)
	default:
		err = fmt.Errorf("unsupported chart kind %q", s.Chart.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to draw %q: %w", s.Title, err)
	}

	w, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("failed to create plot writer: %w", err)
	}
	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write plot to buffer: %w", err)
	}
	return buf.Bytes(), nil
}

func addBars(p *plot.Plot, series []domain.Pair, horizontal bool) error {
	if len(series) == 0 {
		return errNoData
	}
	values := make(plotter.Values, len(series))
	labels := make([]string, len(series))
	for i, pt := range series {
		values[i] = pt.Value
		labels[i] = pt.Label
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("failed to create bar chart: %w", err)
	}
	bars.Color = barColor
	bars.LineStyle.Width = 0
	bars.Horizontal = horizontal
	p.Add(bars)

	if horizontal {
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
	}
	return nil
}

// addLine plots the series against its labels read as numbers, so gaps between years keep
// their width. Labels that are not all numeric are spaced evenly instead.
func addLine(p *plot.Plot, series []domain.Pair) error {
	if len(series) == 0 {
		return errNoData
	}
	pts, numeric := linePoints(series)

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return fmt.Errorf("failed to create line: %w", err)
	}
	line.Color = lineColor
	line.LineStyle.Width = vg.Points(1.5)
	points.Shape = draw.CircleGlyph{}
	points.Color = lineColor
	p.Add(plotter.NewGrid(), line, points)
	if !numeric {
		labels := make([]string, len(series))
		for i, pt := range series {
			labels[i] = pt.Label
		}
		p.NominalX(labels...)
		return nil
	}
	p.X.Tick.Marker = integerTicks{}
	xmin, xmax := pts[0].X, pts[0].X
	for _, pt := range pts {
		xmin, xmax = math.Min(xmin, pt.X), math.Max(xmax, pt.X)
	}
	p.X.Min, p.X.Max = xmin-0.5, xmax+0.5
	return nil
}

// linePoints places each pair at its label parsed as a number. When any label is not a
// number, every pair is placed at its index and numeric is false.
func linePoints(series []domain.Pair) (pts plotter.XYs, numeric bool) {
	pts = make(plotter.XYs, len(series))
	numeric = true
	for i, pt := range series {
		x, err := strconv.ParseFloat(pt.Label, 64)
		if err != nil {
			numeric = false
		}
		pts[i] = plotter.XY{X: x, Y: pt.Value}
	}
	if !numeric {
		for i := range pts {
			pts[i].X = float64(i)
		}
	}
	return pts, numeric
}

// integerTicks marks whole numbers only, at most maxIntegerTicks of them.
type integerTicks struct{}

const maxIntegerTicks = 10

func (integerTicks) Ticks(min, max float64) []plot.Tick {
	lo, hi := math.Ceil(min), math.Floor(max)
	if hi < lo {
		return nil
	}
	step := math.Max(1, math.Ceil((hi-lo+1)/maxIntegerTicks))
	var ticks []plot.Tick
	for v := lo; v <= hi; v += step {
		ticks = append(ticks, plot.Tick{Value: v, Label: strconv.FormatFloat(v, 'f', 0, 64)})
	}
	return ticks
}

// heatGrid adapts a row-major matrix to plotter.GridXYZ. Row 0 is drawn at the top.
type heatGrid struct {
	values [][]float64
}

func (g heatGrid) Dims() (c, r int)   { return len(g.values[0]), len(g.values) }
func (g heatGrid) Z(c, r int) float64 { return g.values[r][c] }
func (g heatGrid) X(c int) float64    { return float64(c) }
func (g heatGrid) Y(r int) float64    { return float64(len(g.values) - 1 - r) }

// addHeatMap draws either a correlation matrix or a single-column series. valueName
// labels the column of a series heat map.
func addHeatMap(p *plot.Plot, res *domain.Result, valueName string) error {
	var (
		grid    heatGrid
		xLabels []string
		yLabels []string
		pal     palette.Palette
	)
	if res.Matrix != nil {
		if len(res.Matrix.Labels) == 0 {
			return errNoData
		}
		grid = heatGrid{values: res.Matrix.Values}
		xLabels, yLabels = res.Matrix.Labels, res.Matrix.Labels
		pal = moreland.SmoothBlueRed().Palette(255)
	} else {
		if len(res.Series) == 0 {
			return errNoData
		}
		grid = heatGrid{values: make([][]float64, len(res.Series))}
		for i, pt := range res.Series {
			grid.values[i] = []float64{pt.Value}
			yLabels = append(yLabels, pt.Label)
		}
		xLabels = []string{valueName}
		pal = palette.Heat(12, 1)
	}

	hm := plotter.NewHeatMap(grid, pal)
	hm.NaN = nanColor
	if res.Matrix != nil {
		hm.Min, hm.Max = -1, 1
	}
	if hm.Min == hm.Max {
		hm.Min, hm.Max = hm.Min-0.5, hm.Max+0.5
	}
	p.Add(hm)

	cols, rows := grid.Dims()
	annotations := plotter.XYLabels{}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			annotations.XYs = append(annotations.XYs, plotter.XY{X: grid.X(c), Y: grid.Y(r)})
			annotations.Labels = append(annotations.Labels, formatCell(grid.Z(c, r)))
		}
	}
	labels, err := plotter.NewLabels(annotations)
	if err != nil {
		return fmt.Errorf("failed to create annotations: %w", err)
	}
	labels.Offset = vg.Point{X: -vg.Points(10), Y: -vg.Points(4)}
	p.Add(labels)

	reversed := make([]string, len(yLabels))
	for i, l := range yLabels {
		reversed[len(yLabels)-1-i] = l
	}
	p.NominalX(xLabels...)
	p.NominalY(reversed...)
	return nil
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "nan"
	}
	return fmt.Sprintf("%.2f", v)
}
