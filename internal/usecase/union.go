package usecase

import (
	"fmt"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

const (
	// CreatedAtColumn is the timestamp column of the extended dataset.
	CreatedAtColumn = "created_at"
	// CreatedYearColumn is derived by BuildUnion from CreatedAtColumn.
	CreatedYearColumn = "created_year"
	unionTableName    = "union"
)

// BuildUnion concatenates a and b row-wise. The column set is a's columns followed by
// b's columns a does not have; a row missing a column holds the absent marker for it.
// When the result has a created_at timestamp column, a numeric created_year column is
// appended, absent wherever created_at is.
func BuildUnion(a, b *domain.Table) (*domain.Table, error) {
	columns := a.Columns()
	pos := make(map[string]int, len(columns))
	for i, c := range columns {
		pos[c.Name] = i
	}
	for _, c := range b.Columns() {
		if i, ok := pos[c.Name]; ok {
			if columns[i].Kind != c.Kind {
				return nil, fmt.Errorf("failed to build union: column %q is %s in %q but %s in %q",
					c.Name, columns[i].Kind, a.Name(), c.Kind, b.Name())
			}
			continue
		}
		pos[c.Name] = len(columns)
		columns = append(columns, c)
	}

	createdAt, hasCreatedAt := pos[CreatedAtColumn]
	hasCreatedAt = hasCreatedAt && columns[createdAt].Kind == domain.KindTime
	if hasCreatedAt {
		if _, clash := pos[CreatedYearColumn]; clash {
			return nil, fmt.Errorf("failed to build union: column %q already exists", CreatedYearColumn)
		}
		columns = append(columns, domain.Column{Name: CreatedYearColumn, Kind: domain.KindNumber})
	}

	rows := make([][]domain.Value, 0, a.Len()+b.Len())
	for _, src := range []*domain.Table{a, b} {
		srcCols := src.Columns()
		for r := 0; r < src.Len(); r++ {
			row := make([]domain.Value, len(columns))
			for i, c := range columns {
				row[i] = domain.Absent(c.Kind)
			}
			for i, v := range src.Row(r) {
				row[pos[srcCols[i].Name]] = v
			}
			if hasCreatedAt && row[createdAt].Valid {
				row[len(columns)-1] = domain.NumberValue(float64(row[createdAt].Time.Year()))
			}
			rows = append(rows, row)
		}
	}

	return domain.NewTable(unionTableName, columns, rows)
}
