// Package loader reads delimited files and spreadsheets into typed tables.
package loader

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/naka-gawa/github-dashboard/internal/domain"
)

var (
	errNoHeader      = errors.New("missing header row")
	errMissingColumn = errors.New("column not found in header")
	errNoSheet       = errors.New("workbook has no sheets")
)

// nullTokens are cell contents that load as absent.
var nullTokens = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"NaN":  true,
	"nan":  true,
	"null": true,
}

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02",
	"2006/01/02",
}

// Loader turns source files into tables.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new Loader instance.
func NewLoader(logger *zap.Logger) *Loader {
	return &Loader{logger: logger}
}

// timeParser reads a timestamp cell. ok is false when the cell holds no usable time.
type timeParser func(cell string) (t time.Time, ok bool)

type rawRow struct {
	line  int
	cells []string
}

// Load reads the file at path and types it by schema. Any failure is a *domain.LoadError.
// The format follows the extension: .xlsx is read from its first sheet, .tsv is tab
// separated, anything else is comma separated.
func (l *Loader) Load(path string, schema Schema) (*domain.Table, error) {
	var (
		header []string
		rows   []rawRow
		parse  timeParser = parseTimestamp
		err    error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		header, rows, parse, err = readWorkbook(path)
	case ".tsv":
		header, rows, err = readDelimited(path, '\t')
	default:
		header, rows, err = readDelimited(path, ',')
	}
	if err != nil {
		var le *domain.LoadError
		if errors.As(err, &le) {
			return nil, err
		}
		return nil, &domain.LoadError{Path: path, Err: err}
	}

	positions := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if _, seen := positions[h]; !seen {
			positions[h] = i
		}
	}
	idx := make([]int, len(schema.Columns))
	for i, c := range schema.Columns {
		p, ok := positions[c.Name]
		if !ok {
			return nil, &domain.LoadError{Path: path, Column: c.Name, Err: errMissingColumn}
		}
		idx[i] = p
	}

	absentTimes := 0
	values := make([][]domain.Value, 0, len(rows))
	for _, raw := range rows {
		row := make([]domain.Value, len(schema.Columns))
		for i, c := range schema.Columns {
			cell := ""
			if idx[i] < len(raw.cells) {
				cell = strings.TrimSpace(raw.cells[idx[i]])
			}
			if nullTokens[cell] {
				row[i] = domain.Absent(c.Kind)
				continue
			}
			switch c.Kind {
			case domain.KindNumber:
				f, perr := strconv.ParseFloat(cell, 64)
				if perr != nil {
					return nil, &domain.LoadError{Path: path, Line: raw.line, Column: c.Name, Err: perr}
				}
				row[i] = domain.NumberValue(f)
			case domain.KindTime:
				t, ok := parse(cell)
				if !ok {
					absentTimes++
					row[i] = domain.Absent(c.Kind)
					continue
				}
				row[i] = domain.TimeValue(t)
			default:
				row[i] = domain.StringValue(cell)
			}
		}
		values = append(values, row)
	}

	table, err := domain.NewTable(schema.Name, schema.Columns, values)
	if err != nil {
		return nil, &domain.LoadError{Path: path, Err: err}
	}
	l.logger.Debug("table loaded",
		zap.String("path", path),
		zap.String("schema", schema.Name),
		zap.Int("rows", table.Len()),
		zap.Int("unparsable_timestamps", absentTimes))
	return table, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func readDelimited(path string, comma rune) ([]string, []rawRow, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.Comma = comma

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil, errNoHeader
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read header: %w", err)
	}

	var rows []rawRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to parse delimited data: %w", err)
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, rawRow{line: line, cells: record})
	}
	return header, rows, nil
}

// readWorkbook reads the first sheet with raw cell values, so numbers are not subject to
// display formats and date cells arrive as Excel serial numbers.
func readWorkbook(path string) ([]string, []rawRow, timeParser, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, nil, errNoSheet
	}
	records, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(records) == 0 {
		return nil, nil, nil, errNoHeader
	}

	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	parse := func(cell string) (time.Time, bool) {
		if serial, err := strconv.ParseFloat(cell, 64); err == nil {
			t, err := excelize.ExcelDateToTime(serial, date1904)
			return t, err == nil
		}
		return parseTimestamp(cell)
	}

	rows := make([]rawRow, 0, len(records)-1)
	for i, record := range records[1:] {
		// GetRows drops trailing empty cells; missing cells are read as "" by Load.
		rows = append(rows, rawRow{line: i + 2, cells: record})
	}
	return records[0], rows, parse, nil
}
