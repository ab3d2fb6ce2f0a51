package validate_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/darekkay/hn-popularity-contest-data/internal/table"
	"github.com/darekkay/hn-popularity-contest-data/internal/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tbl builds a table with the standard header and the given records.
func tbl(records ...[]string) *table.Table {
	return &table.Table{
		Header:  []string{"domain", "bio", "topics"},
		Records: records,
	}
}

func check(t *testing.T, tb *table.Table) *validate.Report {
	t.Helper()
	report, err := validate.Check(tb, "sites.csv")
	require.NoError(t, err)
	return report
}

func TestCheck_Clean(t *testing.T) {
	report := check(t, tbl(
		[]string{"a.com", "A short bio", "go, linux"},
		[]string{"b.com", "", ""},
	))
	assert.True(t, report.OK())
	assert.Equal(t, 2, report.Records)
}

func TestCheck_MissingColumn(t *testing.T) {
	t.Run("topics absent", func(t *testing.T) {
		tb := &table.Table{
			Header:  []string{"domain", "bio", "tags"},
			Records: [][]string{{"a.com/", strings.Repeat("x", 99), "y"}},
		}
		_, err := validate.Check(tb, "sites.csv")
		require.ErrorIs(t, err, validate.ErrColumnMissing)
		assert.Contains(t, err.Error(), "topics")
	})

	t.Run("bio absent", func(t *testing.T) {
		tb := &table.Table{
			Header:  []string{"domain", "description", "topics"},
			Records: nil,
		}
		_, err := validate.Check(tb, "sites.csv")
		require.ErrorIs(t, err, validate.ErrColumnMissing)
		assert.Contains(t, err.Error(), "bio")
	})
}

func TestCheck_NotEnoughColumns(t *testing.T) {
	report := check(t, tbl(
		[]string{"a.com"},
	))
	require.Len(t, report.Violations, 1)
	v := report.Violations[0]
	assert.Equal(t, 2, v.Line)
	assert.Equal(t, "a.com", v.Key)
	assert.Contains(t, v.Message, "not enough columns")
}

func TestCheck_KeyTrailingSlash(t *testing.T) {
	report := check(t, tbl(
		[]string{"a.com/", "", ""},
	))
	require.Len(t, report.Violations, 1)
	assert.Contains(t, report.Violations[0].Message, `must not end with "/"`)
}

func TestCheck_BioLength(t *testing.T) {
	t.Run("empty bio passes", func(t *testing.T) {
		report := check(t, tbl([]string{"a.com", "", ""}))
		assert.True(t, report.OK())
	})

	t.Run("exactly 55 passes", func(t *testing.T) {
		report := check(t, tbl([]string{"a.com", strings.Repeat("x", 55), ""}))
		assert.True(t, report.OK())
	})

	t.Run("56 fails citing length and text", func(t *testing.T) {
		bio := strings.Repeat("x", 56)
		report := check(t, tbl([]string{"a.com", bio, ""}))
		require.Len(t, report.Violations, 1)
		assert.Contains(t, report.Violations[0].Message, "56 characters")
		assert.Contains(t, report.Violations[0].Message, bio)
	})
}

func TestCheck_TopicsColumnLength(t *testing.T) {
	// Three well-formed topics whose raw string hits the column limit.
	at := func(last int) string {
		return strings.Repeat("a", 20) + ", " + strings.Repeat("b", 20) + ", " + strings.Repeat("c", last)
	}

	t.Run("exactly 65 passes", func(t *testing.T) {
		report := check(t, tbl([]string{"a.com", "", at(21)}))
		assert.True(t, report.OK())
	})

	t.Run("66 fails", func(t *testing.T) {
		report := check(t, tbl([]string{"a.com", "", at(22)}))
		require.Len(t, report.Violations, 1)
		assert.Contains(t, report.Violations[0].Message, "topics column is too long (66 characters")
	})
}

func TestCheck_TopicsSeparator(t *testing.T) {
	tests := []struct {
		name   string
		topics string
		ok     bool
	}{
		{"no commas", "golang", true},
		{"comma space", "a, b, c", true},
		{"missing space", "a,b, c", false},
		{"double space", "a,  b", false},
		{"trailing comma", "a,", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			report := check(t, tbl([]string{"a.com", "", tc.topics}))
			if tc.ok {
				assert.True(t, report.OK(), "topics %q should pass", tc.topics)
				return
			}
			require.Len(t, report.Violations, 1)
			assert.Contains(t, report.Violations[0].Message, `separated by ", "`)
			assert.Contains(t, report.Violations[0].Message, tc.topics)
		})
	}
}

func TestCheck_TopicCount(t *testing.T) {
	t.Run("three topics pass", func(t *testing.T) {
		report := check(t, tbl([]string{"a.com", "", "a, b, c"}))
		assert.True(t, report.OK())
	})

	t.Run("four topics fail citing count", func(t *testing.T) {
		report := check(t, tbl([]string{"a.com", "", "a, b, c, d"}))
		require.Len(t, report.Violations, 1)
		assert.Contains(t, report.Violations[0].Message, "too many topics (4, maximum 3)")
	})
}

func TestCheck_TopicLength(t *testing.T) {
	long := strings.Repeat("y", 31)
	report := check(t, tbl([]string{"a.com", "", "short, " + long}))
	require.Len(t, report.Violations, 1)
	assert.Contains(t, report.Violations[0].Message, "topic is too long (31 characters")
	assert.Contains(t, report.Violations[0].Message, long)
}

// The separator rule sees the raw string while count and length rules see
// trimmed pieces. "a ,b" fails the separator rule even though its trimmed
// pieces are fine.
func TestCheck_DualViewOfTopics(t *testing.T) {
	report := check(t, tbl([]string{"a.com", "", "a ,b"}))
	require.Len(t, report.Violations, 1)
	assert.Contains(t, report.Violations[0].Message, `separated by ", "`)
}

func TestCheck_AccumulatesAcrossRowsAndRules(t *testing.T) {
	report := check(t, tbl(
		[]string{"a.com/", strings.Repeat("b", 60), ""},
		[]string{"b.com", "", "x,y"},
		[]string{"c.com", "", ""},
	))
	require.Len(t, report.Violations, 3)

	// Violations stay in row order.
	assert.Equal(t, 2, report.Violations[0].Line)
	assert.Equal(t, 2, report.Violations[1].Line)
	assert.Equal(t, 3, report.Violations[2].Line)
}

func TestReport_Render(t *testing.T) {
	t.Run("violations print count then lines", func(t *testing.T) {
		report := check(t, tbl([]string{"a.com", "", "x,y"}))

		var buf bytes.Buffer
		report.Render(&buf)
		out := buf.String()

		assert.Contains(t, out, "1 violations found")
		assert.Contains(t, out, "sites.csv:2 - a.com: ")
	})

	t.Run("clean file prints success", func(t *testing.T) {
		report := check(t, tbl([]string{"a.com", "", ""}))

		var buf bytes.Buffer
		report.Render(&buf)
		assert.Contains(t, buf.String(), "all 1 records valid")
	})
}
