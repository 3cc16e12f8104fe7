package usecase

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/naka-gawa/github-dashboard/internal/domain"
	"github.com/naka-gawa/github-dashboard/internal/loader"
)

var (
	str = domain.StringValue
	num = domain.NumberValue
)

func date(y int, m time.Month, d int) domain.Value {
	return domain.TimeValue(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func newTable(t *testing.T, schema loader.Schema, rows ...[]domain.Value) *domain.Table {
	t.Helper()
	table, err := domain.NewTable(schema.Name, schema.Columns, rows)
	require.NoError(t, err)
	return table
}

func tableA(t *testing.T) *domain.Table {
	return newTable(t, loader.TableASchema,
		[]domain.Value{str("x"), str("Go"), num(10), num(1), num(3), num(2), num(4)},
		[]domain.Value{str("y"), str("Rust"), num(30), num(5), num(1), num(9), num(2)},
		[]domain.Value{str("z"), str("Go"), num(20), num(2), num(8), num(4), num(7)},
	)
}

func tableB(t *testing.T) *domain.Table {
	return newTable(t, loader.TableBSchema,
		[]domain.Value{str("a"), str("Go"), str("MIT"), num(100), num(10), num(7), num(1), num(40), date(2020, time.January, 1)},
		[]domain.Value{str("b"), str("Python"), str("MIT"), num(50), num(20), num(3), num(6), num(90), date(2021, time.June, 1)},
		[]domain.Value{str("c"), str("Go"), str("GPL"), num(10), num(5), num(9), num(2), num(15), domain.Absent(domain.KindTime)},
	)
}
