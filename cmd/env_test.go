// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> internal packages -> filesystem. The tools'
// contract is largely their process exit codes (sort: 0/1/2, check: 0/1),
// which only exist at the process boundary, so these tests build the real
// binary once and exec it against fixture files in a temp directory.
//
// Rule-level behaviour is additionally unit-tested in internal/validate
// and internal/sorter where boundary cases are cheaper to enumerate.

package cmd

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the popdata binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "popdata-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "popdata"
		if os.PathSeparator == '\\' {
			binaryName = "popdata.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Find project root (parent of cmd/)
		wd := mustGetwd()
		projectRoot := filepath.Dir(wd)

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	binary string
}

// newTestEnv creates a temporary working directory for fixture files.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{t: t, dir: t.TempDir(), binary: buildBinary(t)}
}

// writeFile creates a fixture file in the test directory and returns its
// path relative to the test working directory.
func (e *testEnv) writeFile(name, content string) string {
	e.t.Helper()
	require.NoError(e.t, os.WriteFile(filepath.Join(e.dir, name), []byte(content), 0644))
	return name
}

// readFile returns the current content of a fixture file.
func (e *testEnv) readFile(name string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.dir, name))
	require.NoError(e.t, err)
	return string(data)
}

// run executes popdata with the given args, failing the test on a
// non-zero exit. Returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, code := e.exit(args...)
	if code != 0 {
		e.t.Fatalf("popdata %v exited %d\noutput: %s", args, code, out)
	}
	return out
}

// exit executes popdata and returns combined output and the exit code.
func (e *testEnv) exit(args ...string) (string, int) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	out, err := cmd.CombinedOutput()
	if err == nil {
		return string(out), 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return string(out), exitErr.ExitCode()
	}
	e.t.Fatalf("popdata %v did not run: %v", args, err)
	return "", 0
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// sitesCSV joins lines into file content with a trailing newline.
func sitesCSV(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}
