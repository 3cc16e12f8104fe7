package aggregate

import (
	"fmt"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// Op names an aggregation operator.
type Op string

const (
	OpTopN         Op = "top_n"
	OpGroupSum     Op = "group_sum"
	OpGroupSumTopN Op = "group_sum_top_n"
	OpGroupMean    Op = "group_mean"
	OpValueCounts  Op = "value_counts"
	OpCorrelation  Op = "correlation"
	OpYearCounts   Op = "year_counts"
)

// Params carries the arguments of an operator. Each operator reads only the fields
// it needs:
//
//	top_n            Label, Value, N
//	group_sum        Group, Value
//	group_sum_top_n  Group, Value, N
//	group_mean       Group, Value
//	value_counts     Column, N
//	correlation      Columns
//	year_counts      Column
type Params struct {
	Label   string   `json:"label,omitempty"`
	Group   string   `json:"group,omitempty"`
	Value   string   `json:"value,omitempty"`
	Column  string   `json:"column,omitempty"`
	Columns []string `json:"columns,omitempty"`
	N       int      `json:"n,omitempty"`
}

// Apply runs the operator named by op against t.
func Apply(op Op, t *domain.Table, p Params) (*domain.Result, error) {
	switch op {
	case OpTopN:
		return TopN(t, p.Label, p.Value, p.N)
	case OpGroupSum:
		return GroupSum(t, p.Group, p.Value)
	case OpGroupSumTopN:
		return GroupSumTopN(t, p.Group, p.Value, p.N)
	case OpGroupMean:
		return GroupMean(t, p.Group, p.Value)
	case OpValueCounts:
		return ValueCounts(t, p.Column, p.N)
	case OpCorrelation:
		return Correlation(t, p.Columns)
	case OpYearCounts:
		return YearCounts(t, p.Column)
	default:
		return nil, fmt.Errorf("unknown aggregation operator %q", op)
	}
}
