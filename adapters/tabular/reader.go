package tabular

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"gohare/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Reader handles reading CSV and Excel trapping-record files. The whole
// file is read into memory; the file handle is scoped to the load.
type Reader struct {
	filePath string
	fileType string // "csv" or "xlsx"
}

// NewReader creates a reader that handles both CSV and Excel files
func NewReader(filePath string) *Reader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "csv"
	if ext == ".xlsx" || ext == ".xls" {
		fileType = "xlsx"
	}
	return &Reader{filePath: filePath, fileType: fileType}
}

// Read loads the file into a Table, failing with a DATA_FORMAT error
// when any of the required columns is absent.
func (r *Reader) Read(required ...string) (*Table, error) {
	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.DataFormat(fmt.Sprintf("input file not found: %s", r.filePath))
	}

	var (
		rows [][]string
		err  error
	)
	switch r.fileType {
	case "csv":
		rows, err = r.readCSVRows()
	case "xlsx":
		rows, err = r.readExcelRows()
	default:
		return nil, errors.DataFormat(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.DataFormat("input file must have a header row and at least one data row")
	}

	table := r.processRows(rows)
	log.Printf("[Loader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(table.Headers), len(table.Rows))

	for _, col := range required {
		if !table.HasColumn(col) {
			return nil, errors.DataFormat(fmt.Sprintf("required column %q is missing", col))
		}
	}

	return table, nil
}

func (r *Reader) readCSVRows() ([][]string, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open CSV file")
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // trailing columns vary in field notes
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read CSV file")
	}
	return rows, nil
}

func (r *Reader) readExcelRows() ([][]string, error) {
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open Excel file")
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read sheet %q", sheet)
	}
	return rows, nil
}

// processRows converts raw string rows into Table format
func (r *Reader) processRows(rows [][]string) *Table {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		headers[i] = strings.ToLower(strings.TrimSpace(header))
	}

	var dataRows []RawRow
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		rowData := make(RawRow)

		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}

		dataRows = append(dataRows, rowData)
	}

	return &Table{
		Headers: headers,
		Rows:    dataRows,
	}
}
