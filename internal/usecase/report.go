// Package usecase contains the business logic of the application.
package usecase

import (
	"errors"

	"go.uber.org/zap"

	"github.com/naka-gawa/github-dashboard/internal/aggregate"
	"github.com/naka-gawa/github-dashboard/internal/chart"
	"github.com/naka-gawa/github-dashboard/internal/domain"
	"github.com/naka-gawa/github-dashboard/internal/loader"
)

const previewRows = 5

// Tables holds the two loaded source tables. They are read-only for the whole run.
type Tables struct {
	A *domain.Table
	B *domain.Table
}

// LoadTables loads the basic dataset from pathA and the extended dataset from pathB.
// The returned error is a *domain.LoadError for whichever file failed first.
func LoadTables(l *loader.Loader, pathA, pathB string) (Tables, error) {
	a, err := l.Load(pathA, loader.TableASchema)
	if err != nil {
		return Tables{}, err
	}
	b, err := l.Load(pathB, loader.TableBSchema)
	if err != nil {
		return Tables{}, err
	}
	return Tables{A: a, B: b}, nil
}

// PanelFailure records why one panel could not be shown.
type PanelFailure struct {
	Title string
	Err   error
}

// Summary reports how a run went.
type Summary struct {
	Rendered int
	Failed   int
	Failures []PanelFailure
}

// Report is the use case that turns the source tables into an ordered list of chart
// sections. It orchestrates source selection, aggregation and rendering per panel.
type Report struct {
	panels []Panel
	sink   chart.Sink
	logger *zap.Logger
}

// NewReport creates a new Report instance.
func NewReport(panels []Panel, sink chart.Sink, logger *zap.Logger) *Report {
	return &Report{
		panels: panels,
		sink:   sink,
		logger: logger,
	}
}

// Run emits the table previews followed by every panel, strictly in order. A panel that
// fails to aggregate or render is written as an error section and the run moves on to
// the next panel. The union table is built at most once, when the first panel needing
// it runs. The caller owns the sink and closes it.
func (r *Report) Run(tables Tables) (*Summary, error) {
	if tables.A == nil || tables.B == nil {
		return nil, errors.New("report needs both source tables")
	}
	r.logger.Info("report: starting", zap.Int("panels", len(r.panels)))

	r.preview("Raw GitHub Data", tables.A)
	r.preview("Raw GitHub Data (Repository)", tables.B)

	var (
		union    *domain.Table
		unionErr error
		built    bool
	)
	selectTable := func(src Source) (*domain.Table, error) {
		switch src {
		case SourceA:
			return tables.A, nil
		case SourceB:
			return tables.B, nil
		case SourceUnion:
			if !built {
				union, unionErr = BuildUnion(tables.A, tables.B)
				built = true
				if unionErr == nil {
					r.logger.Debug("report: union built", zap.Int("rows", union.Len()), zap.Int("columns", len(union.Columns())))
				}
			}
			return union, unionErr
		default:
			return nil, errors.New("unknown table source " + src.String())
		}
	}

	summary := &Summary{}
	for _, p := range r.panels {
		section := domain.Section{Title: p.Title, Chart: p.Chart}

		table, err := selectTable(p.Source)
		if err == nil {
			section.Result, err = aggregate.Apply(p.Op, table, p.Params)
		}
		if err != nil {
			section.Result = nil
			section.Err = err
			r.logger.Warn("report: panel failed", zap.String("panel", p.Title), zap.Error(err))
		} else if section.Result.Skipped > 0 {
			r.logger.Debug("report: rows skipped",
				zap.String("panel", p.Title),
				zap.String("source", p.Source.String()),
				zap.Int("skipped", section.Result.Skipped))
		}

		if err := r.sink.Write(section); err != nil {
			r.logger.Warn("report: failed to render panel", zap.String("panel", p.Title), zap.Error(err))
			if section.Err == nil {
				section.Err = err
			}
		}

		if section.Err != nil {
			summary.Failed++
			summary.Failures = append(summary.Failures, PanelFailure{Title: p.Title, Err: section.Err})
			continue
		}
		summary.Rendered++
	}

	r.logger.Info("report: complete", zap.Int("rendered", summary.Rendered), zap.Int("failed", summary.Failed))
	return summary, nil
}

func (r *Report) preview(title string, t *domain.Table) {
	if err := r.sink.Write(domain.Section{Title: title, Preview: t.Head(previewRows)}); err != nil {
		r.logger.Warn("report: failed to render preview", zap.String("table", t.Name()), zap.Error(err))
	}
}
