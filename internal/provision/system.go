package provision

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/conn-castle/devstarter/internal/messages"
)

// Command is one subprocess invocation.
type Command struct {
	Path string
	Args []string
	// Dir is the working directory of the subprocess.
	Dir string
}

// String renders the command line for logs and error messages.
func (c Command) String() string {
	return strings.Join(append([]string{c.Path}, c.Args...), " ")
}

// System abstracts the filesystem and process operations the worker performs,
// so tests can record them without touching the host.
type System interface {
	Stat(name string) (os.FileInfo, error)
	Abs(path string) (string, error)
	MkdirAll(path string, perm os.FileMode) error
	LookPath(file string) (string, error)
	// Run executes cmd to completion. It is never interrupted.
	Run(cmd Command) error
	// LockFolder takes an exclusive advisory lock for folder, failing with
	// ErrFolderLocked when another process holds it.
	LockFolder(folder string) (func() error, error)
}

// RealSystem implements System using the OS.
type RealSystem struct{}

// Stat returns a FileInfo describing the named file.
func (RealSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// Abs returns an absolute representation of path.
func (RealSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// MkdirAll creates a directory named path, along with any necessary parents.
func (RealSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// LookPath searches PATH for an executable.
func (RealSystem) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

// Run executes cmd and waits for it. Output is captured; on failure the last
// lines of output are appended to the error.
func (RealSystem) Run(cmd Command) error {
	c := exec.Command(cmd.Path, cmd.Args...)
	c.Dir = cmd.Dir
	var out bytes.Buffer
	c.Stdout = &out
	c.Stderr = &out
	if err := c.Run(); err != nil {
		if tail := outputTail(out.String(), 5); tail != "" {
			return fmt.Errorf(messages.SystemRunCommandStderrFmt, cmd, err, tail)
		}
		return fmt.Errorf(messages.SystemRunCommandFmt, cmd, err)
	}
	return nil
}

// LockFolder locks a per-folder file in the OS temp directory.
func (RealSystem) LockFolder(folder string) (func() error, error) {
	lock, err := acquireFolderLock(lockPath(folder))
	if err != nil {
		return nil, err
	}
	return lock.release, nil
}

// outputTail returns the last n non-empty lines of s joined by " | ".
func outputTail(s string, n int) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, " | ")
}
