// Package table reads and writes the delimited site-metadata file.
//
// The file is comma-delimited UTF-8 with standard CSV quoting. The first
// row is the header and defines the column count and name-to-index mapping;
// every following row is a record whose first field is the key.
//
// Design: the whole file is read into memory. Each invocation of a tool
// treats the file as a closed-world snapshot - there is no streaming and no
// concurrent-access handling. Records are read with FieldsPerRecord
// disabled so that column-count enforcement stays with the callers, which
// need row numbers and raw content for their diagnostics.
package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrEmpty is returned when the file contains no rows at all.
var ErrEmpty = errors.New("file is empty")

// Table is the in-memory form of the metadata file.
type Table struct {
	Header  []string
	Records [][]string
}

// Read loads the file at path into a Table.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		// *PathError already carries the operation and path.
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	// Column-count mismatches are diagnosed by the callers, with row
	// numbers and raw content. Letting the reader reject them would lose
	// that context.
	r.FieldsPerRecord = -1

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}

	return &Table{Header: rows[0], Records: rows[1:]}, nil
}

// Write rewrites path with the table's header and records.
//
// The content is written to a temporary file in the same directory and
// renamed over the original, so a crash mid-write cannot leave a truncated
// file behind.
func (t *Table) Write(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Header); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write header: %w", err)
	}
	if err := w.WriteAll(t.Records); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write records: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("flush: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}

// ColumnIndex returns the index of the named column in the header, or -1
// if the header has no such column. Lookup is by name, not position, so
// tools keep working if columns are reordered.
func (t *Table) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if strings.TrimSpace(h) == name {
			return i
		}
	}
	return -1
}

// Key returns the sort/display key of a record: its first field, or the
// empty string for an empty record.
func Key(record []string) string {
	if len(record) == 0 {
		return ""
	}
	return record[0]
}

// EqualRecords reports whether two record sequences are identical,
// comparing every field. Used for no-op detection before rewriting.
func EqualRecords(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}
