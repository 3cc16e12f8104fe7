package chart

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

const barWidth = 40

// ConsoleSink prints each section as text: series as horizontal bars, matrices and
// previews as aligned tables, failures as a red notice.
type ConsoleSink struct {
	w       io.Writer
	heading *color.Color
	failure *color.Color
	bar     *color.Color
}

func NewConsoleSink(w io.Writer, noColor bool) *ConsoleSink {
	s := &ConsoleSink{
		w:       w,
		heading: color.New(color.FgCyan, color.Bold),
		failure: color.New(color.FgRed),
		bar:     color.New(color.FgGreen),
	}
	if noColor {
		s.heading.DisableColor()
		s.failure.DisableColor()
		s.bar.DisableColor()
	}
	return s
}

func (s *ConsoleSink) Write(sec domain.Section) error {
	if _, err := s.heading.Fprintf(s.w, "\n== %s ==\n", sec.Title); err != nil {
		return err
	}
	switch {
	case sec.Err != nil:
		_, err := s.failure.Fprintf(s.w, "  error: %v\n", sec.Err)
		return err
	case sec.Preview != nil:
		return s.writeTable(sec.Preview.Columns, sec.Preview.Rows)
	case sec.Result == nil:
		return nil
	case sec.Result.Matrix != nil:
		m := sec.Result.Matrix
		rows := make([][]string, len(m.Labels))
		for i, label := range m.Labels {
			rows[i] = append(rows[i], label)
			for j := range m.Labels {
				rows[i] = append(rows[i], formatCell(m.At(i, j)))
			}
		}
		return s.writeTable(append([]string{""}, m.Labels...), rows)
	default:
		return s.writeSeries(sec.Result.Series)
	}
}

func (s *ConsoleSink) writeSeries(series []domain.Pair) error {
	if len(series) == 0 {
		_, err := fmt.Fprintln(s.w, "  (no data)")
		return err
	}
	var top float64
	labelWidth := 0
	for _, p := range series {
		top = math.Max(top, p.Value)
		labelWidth = max(labelWidth, len(p.Label))
	}
	for _, p := range series {
		n := 0
		if top > 0 && p.Value > 0 {
			n = int(math.Round(p.Value / top * barWidth))
		}
		if _, err := fmt.Fprintf(s.w, "  %-*s %12s ", labelWidth, p.Label, formatNumber(p.Value)); err != nil {
			return err
		}
		if _, err := s.bar.Fprintln(s.w, strings.Repeat("#", n)); err != nil {
			return err
		}
	}
	return nil
}

func (s *ConsoleSink) writeTable(header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(s.w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "  %s\n", strings.Join(header, "\t"))
	for _, row := range rows {
		fmt.Fprintf(tw, "  %s\n", strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func (s *ConsoleSink) Close() error { return nil }

func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
