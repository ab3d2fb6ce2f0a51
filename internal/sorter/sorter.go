// Package sorter canonicalises the record order of the metadata file.
//
// Records are sorted by the lowercase form of the key field (the first
// column). The sort is stable, so records whose keys compare equal keep
// their original relative order. The file is only rewritten when the order
// actually changed - a second run is always a no-op.
//
// Before sorting, every record's field count is checked against the
// header. A mismatch aborts the whole operation without touching the file;
// a half-sorted rewrite of a structurally broken file would destroy the
// context needed to fix it.
package sorter

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/darekkay/hn-popularity-contest-data/internal/diff"
	"github.com/darekkay/hn-popularity-contest-data/internal/table"
)

// Outcome identifies the result of a sort operation. Each outcome maps to
// a distinct process exit code at the CLI boundary.
type Outcome string

const (
	// OutcomeSorted means the file was already in canonical order.
	OutcomeSorted Outcome = "sorted"
	// OutcomeResorted means the file was rewritten in canonical order.
	OutcomeResorted Outcome = "resorted"
	// OutcomeInvalid means a record's field count differs from the header
	// and nothing was written.
	OutcomeInvalid Outcome = "invalid"
)

// Options configures a sort operation.
type Options struct {
	DryRun   bool // Report the outcome without writing
	ShowDiff bool // Print a diff of the reordering
	Colour   bool // ANSI-colour the diff output
}

// Result contains the outcome of a sort operation.
type Result struct {
	Outcome Outcome
	Records int    // Number of data records in the file
	Line    int    // 1-based file line of the bad record (invalid only)
	Fields  int    // Observed field count (invalid only)
	Expect  int    // Header field count (invalid only)
	Row     string // Raw content of the bad record (invalid only)
}

// ResultJSON is the machine-readable representation of a Result.
type ResultJSON struct {
	Outcome Outcome `json:"outcome"`
	Path    string  `json:"path"`
	Records int     `json:"records"`
	Line    int     `json:"line,omitempty"`
	Fields  int     `json:"fields,omitempty"`
	Expect  int     `json:"expect,omitempty"`
}

// ToJSON converts the result to its JSON-serialisable form.
func (r Result) ToJSON(path string) ResultJSON {
	return ResultJSON{
		Outcome: r.Outcome,
		Path:    path,
		Records: r.Records,
		Line:    r.Line,
		Fields:  r.Fields,
		Expect:  r.Expect,
	}
}

// Run sorts the file at path and writes a human-readable report to w.
//
// The returned error is reserved for I/O failures (unreadable file,
// failed rewrite). Structural problems are reported through
// Result.Outcome so the CLI can map them to their own exit code.
func Run(w io.Writer, path string, opts Options) (Result, error) {
	var result Result

	tbl, err := table.Read(path)
	if err != nil {
		return result, err
	}
	result.Records = len(tbl.Records)

	// Structural guard: abort on the first record whose field count
	// differs from the header. Line numbers count the header as line 1.
	for i, rec := range tbl.Records {
		if len(rec) != len(tbl.Header) {
			result.Outcome = OutcomeInvalid
			result.Line = i + 2
			result.Fields = len(rec)
			result.Expect = len(tbl.Header)
			result.Row = renderRecord(rec)
			fmt.Fprintf(w, "%s:%d: record has %d fields, expected %d: %s\n",
				path, result.Line, result.Fields, result.Expect, result.Row)
			return result, nil
		}
	}

	sorted := sortRecords(tbl.Records)

	if table.EqualRecords(tbl.Records, sorted) {
		result.Outcome = OutcomeSorted
		fmt.Fprintf(w, "%s is already sorted (%d records)\n", path, result.Records)
		return result, nil
	}

	result.Outcome = OutcomeResorted

	if opts.ShowDiff {
		d := diff.Compute(
			renderCSV(tbl.Header, tbl.Records),
			renderCSV(tbl.Header, sorted),
			path+" (current)",
			path+" (sorted)",
		)
		fmt.Fprint(w, d.Format(opts.Colour))
	}

	if opts.DryRun {
		fmt.Fprintf(w, "%s is not sorted (%d records); no changes written\n", path, result.Records)
		return result, nil
	}

	tbl.Records = sorted
	if err := tbl.Write(path); err != nil {
		return result, err
	}
	fmt.Fprintf(w, "%s resorted (%d records)\n", path, result.Records)
	return result, nil
}

// sortRecords returns a stably sorted copy of records, ordered by the
// lowercase form of the key field. The input slice is left untouched so
// the caller can compare old and new order.
func sortRecords(records [][]string) [][]string {
	type keyed struct {
		key    string
		record []string
	}
	wrapped := make([]keyed, len(records))
	for i, rec := range records {
		wrapped[i] = keyed{key: strings.ToLower(table.Key(rec)), record: rec}
	}
	sort.SliceStable(wrapped, func(i, j int) bool {
		return wrapped[i].key < wrapped[j].key
	})
	sorted := make([][]string, len(wrapped))
	for i, kr := range wrapped {
		sorted[i] = kr.record
	}
	return sorted
}

// renderRecord encodes a single record as one CSV line, preserving the
// quoting of the file text, for diagnostics.
func renderRecord(record []string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(record)
	w.Flush()
	return strings.TrimSuffix(b.String(), "\n")
}

// renderCSV encodes header and records as CSV text for diffing.
func renderCSV(header []string, records [][]string) string {
	var b strings.Builder
	w := csv.NewWriter(&b)
	_ = w.Write(header)
	_ = w.WriteAll(records)
	w.Flush()
	return b.String()
}
