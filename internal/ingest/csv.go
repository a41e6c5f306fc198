package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mbtahub/gtfs-ingest/internal/schema"
)

// tableReader streams one feed CSV file as header-keyed rows. Feed files
// exported from Windows tooling often start with a UTF-8 BOM, which must
// not end up glued to the first header name.
type tableReader struct {
	file   *os.File
	csv    *csv.Reader
	header []string
	line   int
}

// openTable opens the named file under the feed directory and reads its
// header record.
func openTable(dir, name string) (*tableReader, error) {
	f, err := os.Open(filepath.Join(dir, name))
	if err != nil {
		return nil, err
	}

	buf := bufio.NewReader(f)
	if err := skipBOM(buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	cr := csv.NewReader(newUTF8Sanitizer(buf))
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("read %s header: %w", name, err)
	}

	return &tableReader{
		file:   f,
		csv:    cr,
		header: append([]string(nil), header...),
		line:   1,
	}, nil
}

func skipBOM(r *bufio.Reader) error {
	lead, err := r.Peek(3)
	if err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	if lead[0] == 0xEF && lead[1] == 0xBB && lead[2] == 0xBF {
		_, err = r.Discard(3)
	}
	return err
}

// Next returns the next row, or io.EOF after the last one. A record with
// the wrong number of fields is a malformed file, not a malformed row,
// and fails the read.
func (t *tableReader) Next() (schema.Row, error) {
	record, err := t.csv.Read()
	if err != nil {
		return nil, err
	}
	t.line++

	row := make(schema.Row, len(t.header))
	for i, name := range t.header {
		row[name] = record[i]
	}
	return row, nil
}

// Line returns the 1-based file line of the row most recently returned.
func (t *tableReader) Line() int {
	return t.line
}

func (t *tableReader) Close() error {
	return t.file.Close()
}
