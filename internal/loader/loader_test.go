package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const tableACSV = `repositories,language,stars_count,forks_count,issues_count,pull_requests,contributors,extra
x,Go,10,1,2,3,4,ignored
y,,30,,2,3,4,ignored
z,Python,20.0,5,2,3,4,ignored
`

func TestLoader_Load_TableA(t *testing.T) {
	path := writeFile(t, "github_dataset.csv", tableACSV)

	table, err := NewLoader(zap.NewNop()).Load(path, TableASchema)
	require.NoError(t, err)

	assert.Equal(t, 3, table.Len())
	assert.Len(t, table.Columns(), len(TableASchema.Columns))
	_, hasExtra := table.Column("extra")
	assert.False(t, hasExtra, "undeclared columns are ignored")

	stars, err := table.Values("stars_count")
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 30, 20}, []float64{stars[0].Num, stars[1].Num, stars[2].Num})

	langs, err := table.Values("language")
	require.NoError(t, err)
	assert.False(t, langs[1].Valid, "empty cell loads as absent")

	forks, err := table.Values("forks_count")
	require.NoError(t, err)
	assert.False(t, forks[1].Valid)
	assert.Equal(t, domain.KindNumber, forks[1].Kind)
}

func TestLoader_Load_TableBTimestamps(t *testing.T) {
	path := writeFile(t, "repository_data.csv", `name,primary_language,licence,stars_count,forks_count,watchers,pull_requests,commit_count,created_at
a,Go,MIT,1,1,1,1,1,2020-01-01
b,Go,MIT,1,1,1,1,1,2021-06-01T10:00:00Z
c,Go,GPL,1,1,1,1,1,not-a-date
`)

	table, err := NewLoader(zap.NewNop()).Load(path, TableBSchema)
	require.NoError(t, err, "unparsable timestamps do not fail the load")

	created, err := table.Values("created_at")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), created[0].Time)
	assert.Equal(t, 2021, created[1].Time.Year())
	assert.False(t, created[2].Valid)
}

func TestLoader_Load_Errors(t *testing.T) {
	testCases := []struct {
		name         string
		file         string
		content      string
		expectLine   int
		expectColumn string
	}{
		{
			name:    "empty file has no header",
			file:    "empty.csv",
			content: "",
		},
		{
			name:         "required column missing from header",
			file:         "missing.csv",
			content:      "repositories,language,stars_count\nx,Go,1\n",
			expectColumn: "forks_count",
		},
		{
			name:         "non-numeric value in a number column",
			file:         "bad.csv",
			content:      "repositories,language,stars_count,forks_count,issues_count,pull_requests,contributors\nx,Go,1,1,1,1,1\ny,Go,lots,1,1,1,1\n",
			expectLine:   3,
			expectColumn: "stars_count",
		},
		{
			name:    "ragged rows are not delimited data",
			file:    "ragged.csv",
			content: "repositories,language,stars_count,forks_count,issues_count,pull_requests,contributors\nx,Go,1\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, tc.file, tc.content)

			table, err := NewLoader(zap.NewNop()).Load(path, TableASchema)

			assert.Nil(t, table)
			var loadErr *domain.LoadError
			require.True(t, errors.As(err, &loadErr), "expected *domain.LoadError, got %T", err)
			assert.Equal(t, path, loadErr.Path)
			assert.Equal(t, tc.expectLine, loadErr.Line)
			assert.Equal(t, tc.expectColumn, loadErr.Column)
		})
	}
}

func TestLoader_Load_MissingFile(t *testing.T) {
	_, err := NewLoader(zap.NewNop()).Load(filepath.Join(t.TempDir(), "nope.csv"), TableASchema)

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoader_Load_TSV(t *testing.T) {
	path := writeFile(t, "github_dataset.tsv",
		"repositories\tlanguage\tstars_count\tforks_count\tissues_count\tpull_requests\tcontributors\nx\tGo\t7\t1\t1\t1\t1\n")

	table, err := NewLoader(zap.NewNop()).Load(path, TableASchema)
	require.NoError(t, err)

	names, err := table.Values("repositories")
	require.NoError(t, err)
	assert.Equal(t, "x", names[0].Str)
}

func TestLoader_Load_Workbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "github_dataset.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{
		"repositories", "language", "stars_count", "forks_count", "issues_count", "pull_requests", "contributors",
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{"x", "Go", 10, 1, 2, 3, 4}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{"y", "Rust", 30}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewLoader(zap.NewNop()).Load(path, TableASchema)
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	stars, err := table.Values("stars_count")
	require.NoError(t, err)
	assert.Equal(t, 30.0, stars[1].Num)

	contributors, err := table.Values("contributors")
	require.NoError(t, err)
	assert.False(t, contributors[1].Valid, "trailing cells missing from a sheet row load as absent")
}

func TestLoader_Load_WorkbookDatesAndFormattedNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repository_data.xlsx")
	f := excelize.NewFile()
	header := make([]interface{}, 0, len(TableBSchema.Columns))
	for _, name := range TableBSchema.Names() {
		header = append(header, name)
	}
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &header))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{
		"a", "Go", "MIT", 1234, 1, 1, 1, 1, time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{
		"b", "Go", "GPL", 5, 1, 1, 1, 1, time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC),
	}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A4", &[]interface{}{
		"c", "Go", "GPL", 5, 1, 1, 1, 1, "2019-03-04",
	}))
	thousands, err := f.NewStyle(&excelize.Style{NumFmt: 3})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "D2", "D2", thousands))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := NewLoader(zap.NewNop()).Load(path, TableBSchema)
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	stars, err := table.Values("stars_count")
	require.NoError(t, err)
	assert.Equal(t, 1234.0, stars[0].Num, "display format does not leak into the value")

	created, err := table.Values("created_at")
	require.NoError(t, err)
	want := []time.Time{
		time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2019, time.March, 4, 0, 0, 0, 0, time.UTC),
	}
	for i, w := range want {
		require.True(t, created[i].Valid, "row %d: date cell loads as a timestamp", i)
		assert.True(t, w.Equal(created[i].Time), "row %d: got %v", i, created[i].Time)
	}
}
