package problem

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ImportConfig describes where problems live in a spreadsheet.
type ImportConfig struct {
	FilePath          string // .xlsx or .csv
	SheetName         string // xlsx only; empty selects the first sheet
	TitleColumn       int    // zero-based column indexes
	DescriptionColumn int
	DifficultyColumn  int
	SkipHeader        bool
}

// DefaultImportConfig reads title, description and difficulty from columns A-C
// and skips the header row.
func DefaultImportConfig(path string) ImportConfig {
	return ImportConfig{
		FilePath:          path,
		TitleColumn:       0,
		DescriptionColumn: 1,
		DifficultyColumn:  2,
		SkipHeader:        true,
	}
}

// ImportResult holds the problems parsed from a file and the rows rejected.
type ImportResult struct {
	Problems []Problem
	Skipped  int
	Errors   []string
}

// Import reads problems from an Excel workbook or a CSV file, chosen by extension.
func Import(cfg ImportConfig) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(cfg.FilePath)) {
	case ".csv":
		rows, err = readCSV(cfg.FilePath)
	case ".xlsx", ".xlsm":
		rows, err = readWorkbook(cfg.FilePath, cfg.SheetName)
	default:
		return nil, fmt.Errorf("unsupported file type %q: use .xlsx or .csv", filepath.Ext(cfg.FilePath))
	}
	if err != nil {
		return nil, err
	}
	return parseRows(rows, cfg), nil
}

func readWorkbook(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	return rows, nil
}

func readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	var rows [][]string
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rows = append(rows, rec)
	}
	return rows, nil
}

func parseRows(rows [][]string, cfg ImportConfig) *ImportResult {
	result := &ImportResult{}
	for i, row := range rows {
		if i == 0 && cfg.SkipHeader {
			continue
		}
		if isBlank(row) {
			continue
		}

		diff, err := ParseDifficulty(cell(row, cfg.DifficultyColumn))
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		p, err := New(cell(row, cfg.TitleColumn), cell(row, cfg.DescriptionColumn), diff)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", i+1, err))
			continue
		}
		result.Problems = append(result.Problems, p)
	}
	return result
}

func cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

func isBlank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
