// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full
// stack: command parsing -> editor/session/trash services -> document store
// -> SQLite.
//
// Some internal packages show "[no test files]" - this is intentional.
// These packages are covered by the CLI integration tests:
//   - internal/backup: covered by the export/import tests
//   - internal/mcp: covered by the serve smoke test and its own handlers'
//     dependencies being exercised through equivalent commands
//
// Unit tests for these would duplicate coverage without adding value. If
// underlying functionality breaks, the CLI tests fail.

package cmd

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the linkapp binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "linkapp-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "linkapp"
		if os.PathSeparator == '\\' {
			binaryName = "linkapp.exe"
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

// testEnv holds test environment state. Each env gets its own data
// directory, passed via LINKAPP_DIR so the binary never touches the real
// ~/.linkapp.
type testEnv struct {
	t      *testing.T
	dir    string
	binary string
}

// newTestEnv creates a temporary data directory and seeds it with the
// default three pages by running a first command.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	binary := buildBinary(t)
	dir := t.TempDir()

	env := &testEnv{t: t, dir: dir, binary: binary}

	// First run seeds the default document.
	env.run("ls")

	return env
}

// run executes linkapp with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("linkapp %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes linkapp and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()

	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(), "LINKAPP_DIR="+e.dir)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// equals checks if output equals expected string (trimmed).
func (e *testEnv) equals(output, expected string) {
	e.t.Helper()
	assert.Equal(e.t, strings.TrimSpace(expected), strings.TrimSpace(output))
}

// firstSectionID returns the id of the first section on the current page.
func (e *testEnv) firstSectionID() string {
	e.t.Helper()
	out := e.run("ls")
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "[") {
			return strings.TrimPrefix(strings.SplitN(line, "]", 2)[0], "[")
		}
	}
	e.t.Fatalf("no section found in ls output:\n%s", out)
	return ""
}

// addButton creates a button and returns its id.
func (e *testEnv) addButton(sectionID, text, href string) string {
	e.t.Helper()
	args := []string{"button", "add", sectionID}
	if text != "" {
		args = append(args, "--text", text)
	}
	if href != "" {
		args = append(args, "--href", href)
	}
	out := e.run(args...)
	// Last non-empty stdout line is the id; stderr toasts may precede it.
	var id string
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "button-") {
			id = line
		}
	}
	if id == "" {
		e.t.Fatalf("no button id in output:\n%s", out)
	}
	return id
}
