// Package dataset loads the input artist list from a tabular file. CSV and
// XLSX are supported; the format is picked by file extension.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"artistnexus/data"
)

// The input must carry these four columns, by header name. Rows with any of
// them empty are excluded before processing.
var requiredColumns = []string{"artist_id", "artist_name", "country", "artist_genre"}

// Load reads every valid artist row from the file at path. A missing or
// unreadable file is a configuration failure and aborts the run before any
// processing begins.
func Load(path string) ([]data.Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return loadXLSX(path)
	default:
		return loadCSV(path)
	}
}

func loadCSV(path string) ([]data.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset '%s': %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading dataset header from '%s': %w", path, err)
	}
	cols, err := columnIndexes(header)
	if err != nil {
		return nil, fmt.Errorf("bad dataset header in '%s': %w", path, err)
	}

	var rows []data.Source
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return nil, fmt.Errorf("error reading dataset row from '%s': %w", path, err)
		}
		if row, ok := sourceFromRecord(record, cols); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func loadXLSX(path string) ([]data.Source, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening dataset '%s': %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets in dataset '%s'", path)
	}
	records, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("error reading dataset rows from '%s': %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row in dataset '%s'", path)
	}
	cols, err := columnIndexes(records[0])
	if err != nil {
		return nil, fmt.Errorf("bad dataset header in '%s': %w", path, err)
	}

	var rows []data.Source
	for _, record := range records[1:] {
		if row, ok := sourceFromRecord(record, cols); ok {
			rows = append(rows, row)
		}
	}
	return rows, nil
}

type columns struct {
	id, name, country, genre int
}

func columnIndexes(header []string) (columns, error) {
	found := map[string]int{}
	for i, h := range header {
		found[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := found[name]; !ok {
			return columns{}, fmt.Errorf("missing column '%s'", name)
		}
	}
	return columns{
		id:      found["artist_id"],
		name:    found["artist_name"],
		country: found["country"],
		genre:   found["artist_genre"],
	}, nil
}

func sourceFromRecord(record []string, cols columns) (data.Source, bool) {
	cell := func(i int) string {
		if i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	row := data.Source{
		ArtistID:   cell(cols.id),
		ArtistName: cell(cols.name),
		Country:    cell(cols.country),
		Genre:      cell(cols.genre),
	}
	if row.ArtistID == "" || row.ArtistName == "" || row.Country == "" || row.Genre == "" {
		return data.Source{}, false
	}
	return row, true
}
