package domain

// Pair is one labelled value of an aggregate series.
type Pair struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Matrix is a square matrix indexed by a shared label set.
type Matrix struct {
	Labels []string    `json:"labels"`
	Values [][]float64 `json:"values"`
}

// At returns the entry at row i, column j.
func (m *Matrix) At(i, j int) float64 { return m.Values[i][j] }

// Result is the output of one aggregation operator. Exactly one of Series and Matrix is
// set. Skipped counts rows the operator left out because a field was absent.
type Result struct {
	Series  []Pair  `json:"series,omitempty"`
	Matrix  *Matrix `json:"matrix,omitempty"`
	Skipped int     `json:"skipped,omitempty"`
}

// ChartKind names how a section is drawn.
type ChartKind string

const (
	ChartHBar    ChartKind = "hbar"
	ChartVBar    ChartKind = "vbar"
	ChartLine    ChartKind = "line"
	ChartHeatmap ChartKind = "heatmap"
)

// ChartSpec holds the drawing instructions for one panel.
type ChartSpec struct {
	Kind   ChartKind `json:"kind"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
}

// Preview is a table excerpt rendered as strings.
type Preview struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Section is one unit handed to a chart sink: a title plus either a chart, a table
// preview, or the error that prevented the panel from being computed.
type Section struct {
	Title   string
	Chart   ChartSpec
	Result  *Result
	Preview *Preview
	Err     error
}
