package usecase

import (
	"github.com/naka-gawa/github-dashboard/internal/aggregate"
	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// Source selects which table a panel aggregates.
type Source int

const (
	SourceA Source = iota
	SourceB
	SourceUnion
)

func (s Source) String() string {
	switch s {
	case SourceA:
		return "table_a"
	case SourceB:
		return "table_b"
	case SourceUnion:
		return "union"
	default:
		return "unknown"
	}
}

// Panel is one report unit: a title, the table it reads, the aggregation to apply and
// how the result is drawn.
type Panel struct {
	Title  string
	Source Source
	Op     aggregate.Op
	Params aggregate.Params
	Chart  domain.ChartSpec
}

var (
	tableANumeric = []string{"stars_count", "forks_count", "issues_count", "pull_requests", "contributors"}
	tableBNumeric = []string{"stars_count", "forks_count", "watchers", "pull_requests", "commit_count"}
)

// DefaultPanels returns the fixed dashboard, in display order.
func DefaultPanels() []Panel {
	return []Panel{
		{
			Title:  "Top 10 Repositories by Stars",
			Source: SourceA,
			Op:     aggregate.OpTopN,
			Params: aggregate.Params{Label: "repositories", Value: "stars_count", N: 10},
			Chart:  domain.ChartSpec{Kind: domain.ChartHBar, XLabel: "Stars", YLabel: "Repository"},
		},
		{
			Title:  "Correlation Between Variables (Repository Dataset)",
			Source: SourceB,
			Op:     aggregate.OpCorrelation,
			Params: aggregate.Params{Columns: tableBNumeric},
			Chart:  domain.ChartSpec{Kind: domain.ChartHeatmap},
		},
		{
			Title:  "Top Programming Languages by Stars (Repository Dataset)",
			Source: SourceB,
			Op:     aggregate.OpGroupSumTopN,
			Params: aggregate.Params{Group: "primary_language", Value: "stars_count", N: 10},
			Chart:  domain.ChartSpec{Kind: domain.ChartHBar, XLabel: "Total Stars", YLabel: "Language"},
		},
		{
			Title:  "License Distribution (Repository Dataset)",
			Source: SourceB,
			Op:     aggregate.OpValueCounts,
			Params: aggregate.Params{Column: "licence"},
			Chart:  domain.ChartSpec{Kind: domain.ChartHBar, XLabel: "Number of Repositories", YLabel: "License"},
		},
		{
			Title:  "Repository Creation Trends Over Time (Repository Dataset)",
			Source: SourceB,
			Op:     aggregate.OpYearCounts,
			Params: aggregate.Params{Column: CreatedAtColumn},
			Chart:  domain.ChartSpec{Kind: domain.ChartLine, XLabel: "Year", YLabel: "Number of Repositories Created"},
		},
		{
			Title:  "Top 10 Repositories by Commit Count (Repository Dataset)",
			Source: SourceB,
			Op:     aggregate.OpTopN,
			Params: aggregate.Params{Label: "name", Value: "commit_count", N: 10},
			Chart:  domain.ChartSpec{Kind: domain.ChartHBar, XLabel: "Commits", YLabel: "Repository"},
		},
		{
			Title:  "Correlation Between Variables",
			Source: SourceA,
			Op:     aggregate.OpCorrelation,
			Params: aggregate.Params{Columns: tableANumeric},
			Chart:  domain.ChartSpec{Kind: domain.ChartHeatmap},
		},
		{
			Title:  "Top Programming Languages by Stars",
			Source: SourceA,
			Op:     aggregate.OpGroupSumTopN,
			Params: aggregate.Params{Group: "language", Value: "stars_count", N: 10},
			Chart:  domain.ChartSpec{Kind: domain.ChartHBar, XLabel: "Total Stars", YLabel: "Language"},
		},
		{
			Title:  "Forking Behavior by License",
			Source: SourceUnion,
			Op:     aggregate.OpGroupMean,
			Params: aggregate.Params{Group: "licence", Value: "forks_count"},
			Chart:  domain.ChartSpec{Kind: domain.ChartHBar, XLabel: "Average Number of Forks", YLabel: "License Type"},
		},
		{
			Title:  "Count of Repositories by Primary Language",
			Source: SourceUnion,
			Op:     aggregate.OpValueCounts,
			Params: aggregate.Params{Column: "primary_language", N: 10},
			Chart:  domain.ChartSpec{Kind: domain.ChartVBar, XLabel: "Programming Language", YLabel: "Number of Repositories"},
		},
		{
			Title:  "Trends in Repositories Created Over Time",
			Source: SourceUnion,
			Op:     aggregate.OpYearCounts,
			Params: aggregate.Params{Column: CreatedYearColumn},
			Chart:  domain.ChartSpec{Kind: domain.ChartLine, XLabel: "Year", YLabel: "Number of Repositories Created"},
		},
		{
			Title:  "Average Stars by License Type",
			Source: SourceUnion,
			Op:     aggregate.OpGroupMean,
			Params: aggregate.Params{Group: "licence", Value: "stars_count"},
			Chart:  domain.ChartSpec{Kind: domain.ChartHeatmap, XLabel: "stars_count", YLabel: "licence"},
		},
	}
}
