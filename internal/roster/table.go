package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	ErrReadTable  = errors.New("failed to read table")
	ErrEmptySheet = errors.New("workbook has no sheets")
)

// ReadTable returns the data rows of a CSV or XLSX upload. The format is picked
// from the file extension and the header row is dropped.
func ReadTable(name string, r io.Reader) ([][]string, error) {
	const fn = "Roster:ReadTable"
	var (
		rows [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(name), ".xlsx") {
		rows, err = readWorkbook(r)
	} else {
		rows, err = readCSV(r)
	}
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%s:%w", fn, ErrReadTable, name, err)
	}
	if len(rows) == 0 {
		return [][]string{}, nil
	}
	return rows[1:], nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	// Rows carry optional trailing flag columns.
	reader.FieldsPerRecord = -1
	return reader.ReadAll()
}

func readWorkbook(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	return f.GetRows(sheets[0])
}
