// Package validate checks every record of the metadata file against the
// content rules for the bio and topics columns and collects every breach.
//
// Design: rules never short-circuit. All violations across all records are
// accumulated into a Report before anything is printed, so one run surfaces
// everything there is to fix. The only exception is a record too short to
// reach the named columns, which cannot be checked further.
//
// The topics rules deliberately look at two views of the same field: the
// separator-format rule scans the raw string, while the count and
// per-topic length rules work on trimmed split pieces. Collapsing the two
// views would silently change which inputs are flagged.
package validate

import (
	"fmt"
	"io"
	"strings"

	"github.com/darekkay/hn-popularity-contest-data/internal/table"
)

// Content limits for the named columns. These are fixed by the dataset's
// rendering constraints, not configurable.
const (
	MaxBioLength    = 55 // bio column, bytes
	MaxTopicsLength = 65 // raw topics column, bytes
	MaxTopicCount   = 3  // comma-separated topics per record
	MaxTopicLength  = 30 // single trimmed topic, bytes
)

// Columns that must be present in the header.
const (
	ColumnBio    = "bio"
	ColumnTopics = "topics"
)

// Violation is a single rule breach for one record, carrying enough
// context to locate and fix the offending row.
type Violation struct {
	Line    int    `json:"line"` // 1-based file line, header counts as line 1
	Key     string `json:"key"`  // Key field of the record
	Message string `json:"message"`
}

// Report accumulates the violations found in one file.
type Report struct {
	Path       string
	Records    int
	Violations []Violation
}

// ReportJSON is the machine-readable representation of a Report.
type ReportJSON struct {
	Path       string      `json:"path"`
	Records    int         `json:"records"`
	Count      int         `json:"count"`
	Violations []Violation `json:"violations,omitempty"`
}

// ToJSON converts the report to its JSON-serialisable form.
func (r *Report) ToJSON() ReportJSON {
	return ReportJSON{
		Path:       r.Path,
		Records:    r.Records,
		Count:      len(r.Violations),
		Violations: r.Violations,
	}
}

// OK reports whether the file passed with no violations.
func (r *Report) OK() bool {
	return len(r.Violations) == 0
}

// add records a violation for the record at index i (0-based within the
// data records; the header occupies file line 1).
func (r *Report) add(i int, key, format string, args ...any) {
	r.Violations = append(r.Violations, Violation{
		Line:    i + 2,
		Key:     key,
		Message: fmt.Sprintf(format, args...),
	})
}

// Render writes the human-readable report to w: a count followed by one
// line per violation, or a success message when the file is clean.
func (r *Report) Render(w io.Writer) {
	if r.OK() {
		fmt.Fprintf(w, "%s: all %d records valid\n", r.Path, r.Records)
		return
	}
	fmt.Fprintf(w, "%d violations found\n", len(r.Violations))
	for _, v := range r.Violations {
		fmt.Fprintf(w, "%s:%d - %s: %s\n", r.Path, v.Line, v.Key, v.Message)
	}
}

// File reads the file at path and checks it. A missing required column is
// returned as an error wrapping ErrColumnMissing.
func File(path string) (*Report, error) {
	tbl, err := table.Read(path)
	if err != nil {
		return nil, err
	}
	return Check(tbl, path)
}

// Check validates every record of tbl against the content rules.
//
// The bio and topics columns are resolved by name once, up front; if
// either is absent the whole check aborts with ErrColumnMissing.
func Check(tbl *table.Table, path string) (*Report, error) {
	bioIdx := tbl.ColumnIndex(ColumnBio)
	if bioIdx < 0 {
		return nil, fmt.Errorf("%w: %q not in header of %s", ErrColumnMissing, ColumnBio, path)
	}
	topicsIdx := tbl.ColumnIndex(ColumnTopics)
	if topicsIdx < 0 {
		return nil, fmt.Errorf("%w: %q not in header of %s", ErrColumnMissing, ColumnTopics, path)
	}

	// A record must be long enough to reach both named columns.
	need := max(bioIdx, topicsIdx) + 1

	report := &Report{Path: path, Records: len(tbl.Records)}

	for i, rec := range tbl.Records {
		key := table.Key(rec)

		if len(rec) < need {
			report.add(i, key, "not enough columns (%d, need %d)", len(rec), need)
			continue
		}

		if strings.HasSuffix(key, "/") {
			report.add(i, key, "key must not end with \"/\"")
		}

		if bio := rec[bioIdx]; bio != "" && len(bio) > MaxBioLength {
			report.add(i, key, "bio is too long (%d characters, maximum %d): %s",
				len(bio), MaxBioLength, bio)
		}

		checkTopics(report, i, key, rec[topicsIdx])
	}

	return report, nil
}

// checkTopics applies the topics rules to one record's raw topics field.
func checkTopics(report *Report, i int, key, topics string) {
	if topics == "" {
		return
	}

	if len(topics) > MaxTopicsLength {
		report.add(i, key, "topics column is too long (%d characters, maximum %d): %s",
			len(topics), MaxTopicsLength, topics)
	}

	if !commaSpaced(topics) {
		report.add(i, key, "topics must be separated by \", \": %s", topics)
	}

	pieces := strings.Split(topics, ",")
	for j, p := range pieces {
		pieces[j] = strings.TrimSpace(p)
	}
	if len(pieces) > MaxTopicCount {
		report.add(i, key, "too many topics (%d, maximum %d)", len(pieces), MaxTopicCount)
	}
	for _, p := range pieces {
		if len(p) > MaxTopicLength {
			report.add(i, key, "topic is too long (%d characters, maximum %d): %s",
				len(p), MaxTopicLength, p)
		}
	}
}

// commaSpaced reports whether every comma in s is followed by exactly one
// space. The accepted separator is the exact two-character sequence ", ";
// a comma at the end of the string, a missing space, or a run of two or
// more spaces all fail.
func commaSpaced(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ',' {
			continue
		}
		if i+1 >= len(s) || s[i+1] != ' ' {
			return false
		}
		if i+2 < len(s) && s[i+2] == ' ' {
			return false
		}
	}
	return true
}
