// Package pyenv resolves Python interpreters on the host and inside a virtual environment.
package pyenv

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/conn-castle/devstarter/internal/messages"
)

// Interpreter names tried on PATH. Windows installs ship `python`; most Unix
// systems only guarantee `python3`.
const (
	PythonUnix    = "python3"
	PythonWindows = "python"
)

// LookPathFunc matches exec.LookPath.
type LookPathFunc func(file string) (string, error)

var runVersionFunc = func(path string) ([]byte, error) {
	cmd := exec.Command(path, "--version")
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Candidates returns interpreter names to try, in order. A non-empty override
// is the only candidate.
func Candidates(goos string, override string) []string {
	if o := strings.TrimSpace(override); o != "" {
		return []string{o}
	}
	if goos == "windows" {
		return []string{PythonWindows, PythonUnix}
	}
	return []string{PythonUnix, PythonWindows}
}

// ResolveHost returns the path of the first candidate found on PATH.
func ResolveHost(lookPath LookPathFunc, goos string, override string) (string, error) {
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	names := Candidates(goos, override)
	for _, name := range names {
		path, err := lookPath(name)
		if err == nil && path != "" {
			return path, nil
		}
	}
	return "", fmt.Errorf(messages.InterpreterNotFoundFmt, strings.Join(names, ", "))
}

// BinDir returns the directory holding executables inside a virtual environment.
func BinDir(venvDir string, goos string) string {
	if goos == "windows" {
		return filepath.Join(venvDir, "Scripts")
	}
	return filepath.Join(venvDir, "bin")
}

// VenvInterpreter returns the interpreter path inside a virtual environment.
// Running this binary directly is what targets the environment; activation
// scripts only change the environment of the shell that sources them.
func VenvInterpreter(venvDir string, goos string) string {
	if goos == "windows" {
		return filepath.Join(BinDir(venvDir, goos), "python.exe")
	}
	return filepath.Join(BinDir(venvDir, goos), "python")
}

// Version runs `<path> --version` and returns its trimmed output, e.g. "Python 3.12.1".
func Version(path string) (string, error) {
	out, err := runVersionFunc(path)
	if err != nil {
		return "", fmt.Errorf(messages.InterpreterVersionFmt, path, err)
	}
	return strings.TrimSpace(string(out)), nil
}
