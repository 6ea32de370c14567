package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/poiesic/versefinder/core"
)

// ReadVerses loads verse records from a CSV file with the standard
// book,chapter,verse,text columns. Column order is free; extra
// columns are ignored. Vectors are left empty for the embedding
// pipeline to fill.
func ReadVerses(path string) ([]*core.VerseRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening corpus CSV: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"book", "chapter", "verse", "text"} {
		if _, ok := columns[required]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrBadCSVHeader, required)
		}
	}

	var records []*core.VerseRecord
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading CSV row: %w", err)
		}
		records = append(records, &core.VerseRecord{
			Book:    strings.TrimSpace(field(row, columns["book"])),
			Chapter: parseOrdinalField(field(row, columns["chapter"])),
			Verse:   parseOrdinalField(field(row, columns["verse"])),
			Text:    strings.TrimSpace(field(row, columns["text"])),
		})
	}

	if len(records) == 0 {
		return nil, ErrEmptyCSV
	}
	return records, nil
}

func field(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}

// parseOrdinalField parses chapter/verse numbers tolerantly: source
// dumps sometimes carry them as floats ("3.0"). Unparseable values
// become 0 rather than failing the whole load.
func parseOrdinalField(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return int(f)
	}
	return 0
}
