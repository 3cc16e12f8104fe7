package chart

import (
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

func TestConsoleSink(t *testing.T) {
	testCases := []struct {
		name     string
		section  domain.Section
		contains []string
	}{
		{
			name: "series as bars",
			section: domain.Section{Title: "Top", Result: &domain.Result{Series: []domain.Pair{
				{Label: "y", Value: 30}, {Label: "z", Value: 15},
			}}},
			contains: []string{"== Top ==", "y           30 " + repeat(barWidth), "z           15 " + repeat(barWidth/2)},
		},
		{
			name: "matrix as table",
			section: domain.Section{Title: "Corr", Result: &domain.Result{Matrix: &domain.Matrix{
				Labels: []string{"a", "b"},
				Values: [][]float64{{1, 0.5}, {0.5, math.NaN()}},
			}}},
			contains: []string{"1.00", "0.50", "nan"},
		},
		{
			name:     "error notice",
			section:  domain.Section{Title: "Broken", Err: errors.New("column missing")},
			contains: []string{"== Broken ==", "error: column missing"},
		},
		{
			name:     "empty series",
			section:  domain.Section{Title: "Empty", Result: &domain.Result{}},
			contains: []string{"(no data)"},
		},
		{
			name:     "preview",
			section:  domain.Section{Title: "Raw", Preview: &domain.Preview{Columns: []string{"name"}, Rows: [][]string{{"repo-a"}}}},
			contains: []string{"name", "repo-a"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			sink := NewConsoleSink(&buf, true)
			require.NoError(t, sink.Write(tc.section))
			for _, c := range tc.contains {
				assert.Contains(t, buf.String(), c)
			}
		})
	}
}

func repeat(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = '#'
	}
	return string(b)
}
