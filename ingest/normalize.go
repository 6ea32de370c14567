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

// Header synonyms seen in common Bible CSV dumps.
var (
	bookColumns    = []string{"book", "book_name", "Book", "bookName", "BookName", "osis", "book_id", "bookId"}
	chapterColumns = []string{"chapter", "chapterNumber", "chapter_nr", "Chapter", "chapter_num", "ch"}
	verseColumns   = []string{"verse", "verseNumber", "verse_nr", "Verse", "verse_num", "v"}
	textColumns    = []string{"text", "verse_text", "content", "value", "t", "body", "Text"}
)

// NormalizeCSV rewrites a raw Bible CSV dump into the standard
// book,chapter,verse,text format ReadVerses expects. It detects
// column names from a set of common synonyms, maps numeric book ids
// (1-66) to canonical book names, and coerces float-typed chapter and
// verse numbers to integers. Returns the number of rows written.
func NormalizeCSV(inPath, outPath string) (int, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return 0, fmt.Errorf("opening raw CSV: %w", err)
	}
	defer in.Close()

	reader := csv.NewReader(in)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("reading raw CSV header: %w", err)
	}
	for i, name := range header {
		header[i] = strings.TrimSpace(name)
	}

	bookCol := pickColumn(header, bookColumns)
	chapterCol := pickColumn(header, chapterColumns)
	verseCol := pickColumn(header, verseColumns)
	textCol := pickColumn(header, textColumns)
	if bookCol < 0 || chapterCol < 0 || verseCol < 0 || textCol < 0 {
		return 0, fmt.Errorf("%w: found columns %v", ErrBadCSVHeader, header)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("creating normalized CSV: %w", err)
	}
	defer out.Close()

	writer := csv.NewWriter(out)
	if err := writer.Write([]string{"book", "chapter", "verse", "text"}); err != nil {
		return 0, fmt.Errorf("writing header: %w", err)
	}

	rows := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return rows, fmt.Errorf("reading raw CSV row: %w", err)
		}

		record := []string{
			normalizeBook(field(row, bookCol)),
			strconv.Itoa(parseOrdinalField(field(row, chapterCol))),
			strconv.Itoa(parseOrdinalField(field(row, verseCol))),
			strings.TrimSpace(field(row, textCol)),
		}
		if err := writer.Write(record); err != nil {
			return rows, fmt.Errorf("writing row: %w", err)
		}
		rows++
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return rows, fmt.Errorf("flushing normalized CSV: %w", err)
	}
	return rows, nil
}

func pickColumn(header []string, candidates []string) int {
	for _, candidate := range candidates {
		for i, name := range header {
			if name == candidate {
				return i
			}
		}
	}
	return -1
}

// normalizeBook maps numeric book identifiers to canonical names and
// passes names through verbatim.
func normalizeBook(raw string) string {
	raw = strings.TrimSpace(raw)
	if n, err := strconv.Atoi(raw); err == nil {
		return core.BookName(n)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return core.BookName(int(f))
	}
	return raw
}
