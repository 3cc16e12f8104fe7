// Package aggregate contains the pure aggregation operators applied to tables.
// Every operator reads its input table without modifying it and returns a fresh
// result, so calling one twice with the same input yields the same output.
package aggregate

import (
	"math"
	"sort"
	"strconv"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

// TopN returns the n rows with the largest valueCol, labelled by labelCol. Ties keep the
// original row order. Rows with an absent valueCol are left out.
func TopN(t *domain.Table, labelCol, valueCol string, n int) (*domain.Result, error) {
	labels, err := t.Values(labelCol)
	if err != nil {
		return nil, err
	}
	values, err := numericValues(t, valueCol)
	if err != nil {
		return nil, err
	}

	res := &domain.Result{Series: []domain.Pair{}}
	for i, v := range values {
		if !v.Valid {
			res.Skipped++
			continue
		}
		res.Series = append(res.Series, domain.Pair{Label: labels[i].String(), Value: v.Num})
	}
	sortDescending(res.Series)
	res.Series = limit(res.Series, max(n, 0))
	return res, nil
}

// GroupSum sums valueCol within each distinct value of groupCol. Groups appear in the
// order they are first encountered. Rows with an absent group key are left out; absent
// values contribute nothing to their group.
func GroupSum(t *domain.Table, groupCol, valueCol string) (*domain.Result, error) {
	groups, skipped, err := groupValues(t, groupCol, valueCol)
	if err != nil {
		return nil, err
	}

	res := &domain.Result{Series: make([]domain.Pair, 0, len(groups)), Skipped: skipped}
	for _, g := range groups {
		var total float64
		if len(g.values) > 0 {
			// Sum only fails on empty input.
			total, _ = stats.Sum(g.values)
		}
		res.Series = append(res.Series, domain.Pair{Label: g.key, Value: total})
	}
	return res, nil
}

// GroupSumTopN is GroupSum restricted to the n largest sums, ties broken by the first
// encountered group.
func GroupSumTopN(t *domain.Table, groupCol, valueCol string, n int) (*domain.Result, error) {
	res, err := GroupSum(t, groupCol, valueCol)
	if err != nil {
		return nil, err
	}
	sortDescending(res.Series)
	res.Series = limit(res.Series, max(n, 0))
	return res, nil
}

// GroupMean averages valueCol within each distinct value of groupCol, sorted by
// descending mean. Groups without a single present value are left out.
func GroupMean(t *domain.Table, groupCol, valueCol string) (*domain.Result, error) {
	groups, skipped, err := groupValues(t, groupCol, valueCol)
	if err != nil {
		return nil, err
	}

	res := &domain.Result{Series: make([]domain.Pair, 0, len(groups)), Skipped: skipped}
	for _, g := range groups {
		mean, err := stats.Mean(g.values)
		if err != nil {
			continue
		}
		res.Series = append(res.Series, domain.Pair{Label: g.key, Value: mean})
	}
	sortDescending(res.Series)
	return res, nil
}

// ValueCounts counts rows per distinct value of col, most frequent first. Ties keep the
// first encountered value first. n <= 0 keeps every value.
func ValueCounts(t *domain.Table, col string, n int) (*domain.Result, error) {
	values, err := t.Values(col)
	if err != nil {
		return nil, err
	}

	res := &domain.Result{Series: []domain.Pair{}}
	pos := make(map[string]int)
	for _, v := range values {
		if !v.Valid {
			res.Skipped++
			continue
		}
		key := v.String()
		i, ok := pos[key]
		if !ok {
			i = len(res.Series)
			pos[key] = i
			res.Series = append(res.Series, domain.Pair{Label: key})
		}
		res.Series[i].Value++
	}
	sortDescending(res.Series)
	if n > 0 {
		res.Series = limit(res.Series, n)
	}
	return res, nil
}

// Correlation computes the pairwise Pearson correlation matrix over cols. Columns that
// are missing or not numeric are skipped; at least two must remain. Each pair uses only
// the rows where both values are present. A pair with fewer than two such rows, or with
// zero variance, is NaN. The diagonal is always 1.
func Correlation(t *domain.Table, cols []string) (*domain.Result, error) {
	var (
		labels  []string
		columns [][]domain.Value
	)
	for _, c := range cols {
		values, err := numericValues(t, c)
		if err != nil {
			continue
		}
		labels = append(labels, c)
		columns = append(columns, values)
	}
	if len(labels) < 2 {
		return nil, &domain.ColumnError{Table: t.Name(), Err: domain.ErrTooFewColumns}
	}

	m := &domain.Matrix{Labels: labels, Values: make([][]float64, len(labels))}
	for i := range m.Values {
		m.Values[i] = make([]float64, len(labels))
		m.Values[i][i] = 1
	}
	for i := 0; i < len(labels); i++ {
		for j := i + 1; j < len(labels); j++ {
			r := pearson(columns[i], columns[j])
			m.Values[i][j] = r
			m.Values[j][i] = r
		}
	}
	return &domain.Result{Matrix: m}, nil
}

func pearson(a, b []domain.Value) float64 {
	var xs, ys stats.Float64Data
	for i := range a {
		if a[i].Valid && b[i].Valid {
			xs = append(xs, a[i].Num)
			ys = append(ys, b[i].Num)
		}
	}
	if len(xs) < 2 {
		return math.NaN()
	}
	sx, _ := stats.StandardDeviationPopulation(xs)
	sy, _ := stats.StandardDeviationPopulation(ys)
	if sx == 0 || sy == 0 {
		return math.NaN()
	}
	r, err := stats.Correlation(xs, ys)
	if err != nil {
		return math.NaN()
	}
	return math.Max(-1, math.Min(1, r))
}

// YearCounts counts rows per calendar year of col, oldest year first. col is either a
// timestamp column or a numeric column already holding years. Rows with an absent value
// are skipped without error and counted in Result.Skipped.
func YearCounts(t *domain.Table, col string) (*domain.Result, error) {
	c, ok := t.Column(col)
	if !ok {
		return nil, &domain.ColumnError{Table: t.Name(), Column: col, Err: domain.ErrColumnNotFound}
	}
	if c.Kind == domain.KindString {
		return nil, &domain.ColumnError{Table: t.Name(), Column: col, Err: domain.ErrColumnNotTemporal}
	}
	values, err := t.Values(col)
	if err != nil {
		return nil, err
	}

	res := &domain.Result{Series: []domain.Pair{}}
	counts := make(map[int]int)
	for _, v := range values {
		if !v.Valid {
			res.Skipped++
			continue
		}
		year := int(v.Num)
		if v.Kind == domain.KindTime {
			year = v.Time.Year()
		}
		counts[year]++
	}

	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)
	for _, y := range years {
		res.Series = append(res.Series, domain.Pair{Label: strconv.Itoa(y), Value: float64(counts[y])})
	}
	return res, nil
}

type group struct {
	key    string
	values stats.Float64Data
}

// groupValues partitions the present values of valueCol by groupCol in first-encountered
// order. The returned count is the number of rows left out for an absent key or value.
func groupValues(t *domain.Table, groupCol, valueCol string) ([]*group, int, error) {
	keys, err := t.Values(groupCol)
	if err != nil {
		return nil, 0, err
	}
	values, err := numericValues(t, valueCol)
	if err != nil {
		return nil, 0, err
	}

	var (
		groups  []*group
		skipped int
	)
	byKey := make(map[string]*group)
	for i, k := range keys {
		if !k.Valid {
			skipped++
			continue
		}
		g, ok := byKey[k.String()]
		if !ok {
			g = &group{key: k.String()}
			byKey[g.key] = g
			groups = append(groups, g)
		}
		if !values[i].Valid {
			skipped++
			continue
		}
		g.values = append(g.values, values[i].Num)
	}
	return groups, skipped, nil
}

func numericValues(t *domain.Table, col string) ([]domain.Value, error) {
	c, ok := t.Column(col)
	if !ok {
		return nil, &domain.ColumnError{Table: t.Name(), Column: col, Err: domain.ErrColumnNotFound}
	}
	if c.Kind != domain.KindNumber {
		return nil, &domain.ColumnError{Table: t.Name(), Column: col, Err: domain.ErrColumnNotNumeric}
	}
	return t.Values(col)
}

func sortDescending(series []domain.Pair) {
	sort.SliceStable(series, func(i, j int) bool { return series[i].Value > series[j].Value })
}

func limit(series []domain.Pair, n int) []domain.Pair {
	if len(series) > n {
		return series[:n]
	}
	return series
}
