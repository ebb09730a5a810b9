// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// WriteStub writes an executable shell stub that exits successfully.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStub(t *testing.T, dir string, name string) {
	t.Helper()
	WriteStubWithExit(t, dir, name, 0)
}

// WriteStubWithExit writes an executable shell stub that prints its arguments
// to stderr and exits with the provided code.
// t is the active test; dir is the output directory; name is the executable file name.
func WriteStubWithExit(t *testing.T, dir string, name string, exitCode int) {
	t.Helper()
	path := filepath.Join(dir, name)
	content := []byte(fmt.Sprintf("#!/bin/sh\necho \"stub %s: $*\" >&2\nexit %d\n", name, exitCode))
	if err := os.WriteFile(path, content, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
}

// WritePythonStub writes a fake host interpreter named name into dir.
// `name -m venv DIR` creates DIR/bin/python, a fake venv interpreter that
// appends each invocation's arguments as one line to logPath. The fake venv
// interpreter fails any install whose arguments contain one of failPackages.
func WritePythonStub(t *testing.T, dir string, name string, logPath string, failPackages ...string) {
	t.Helper()
	var failCases strings.Builder
	for _, pkg := range failPackages {
		fmt.Fprintf(&failCases, "  *\"install %s\"*) echo \"ERROR: No matching distribution found for %s\" >&2; exit 1 ;;\n", pkg, pkg)
	}
	venvPython := fmt.Sprintf("#!/bin/sh\necho \"$*\" >> '%s'\ncase \"$*\" in\n%s  *) ;;\nesac\nexit 0\n", logPath, failCases.String())

	host := fmt.Sprintf(`#!/bin/sh
if [ "$1" = "-m" ] && [ "$2" = "venv" ]; then
  mkdir -p "$3/bin"
  cat > "$3/bin/python" <<'VENVSTUB'
%sVENVSTUB
  chmod +x "$3/bin/python"
  echo "venv $3" >> '%s'
  exit 0
fi
exit 2
`, venvPython, logPath)

	if err := os.WriteFile(filepath.Join(dir, name), []byte(host), 0o755); err != nil {
		t.Fatalf("write python stub: %v", err)
	}
}

// ReadLines returns the non-empty lines of the file at path.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// WithWorkingDir runs fn with dir as the current working directory and restores the previous directory.
// t is the active test; dir is the temporary working directory for fn.
func WithWorkingDir(t *testing.T, dir string, fn func()) {
	t.Helper()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer func() {
		if err := os.Chdir(cwd); err != nil {
			t.Fatalf("restore chdir: %v", err)
		}
	}()
	fn()
}
