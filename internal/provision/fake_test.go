package provision

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/conn-castle/devstarter/internal/pyenv"
)

// fakeSystem records every mutation and subprocess call in memory.
type fakeSystem struct {
	mu sync.Mutex

	dirs     map[string]bool
	files    map[string]bool
	onPath   map[string]string
	commands []Command
	mkdirs   []string
	locks    []string
	lockErr  error
	mkdirErr error
	// onRun runs before a command is recorded as successful; a non-nil error
	// fails the command.
	onRun func(Command) error
}

func newFakeSystem(dirs ...string) *fakeSystem {
	f := &fakeSystem{
		dirs:   map[string]bool{},
		files:  map[string]bool{},
		onPath: map[string]string{"python3": "/usr/bin/python3"},
	}
	for _, d := range dirs {
		f.dirs[d] = true
	}
	return f
}

type fakeInfo struct {
	name string
	dir  bool
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return 0 }
func (i fakeInfo) Mode() fs.FileMode  { return 0o755 }
func (i fakeInfo) ModTime() time.Time { return time.Time{} }
func (i fakeInfo) IsDir() bool        { return i.dir }
func (i fakeInfo) Sys() any           { return nil }

func (f *fakeSystem) Stat(name string) (os.FileInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch {
	case f.dirs[name]:
		return fakeInfo{name: filepath.Base(name), dir: true}, nil
	case f.files[name]:
		return fakeInfo{name: filepath.Base(name)}, nil
	default:
		return nil, &fs.PathError{Op: "stat", Path: name, Err: fs.ErrNotExist}
	}
}

func (f *fakeSystem) Abs(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	return filepath.Join("/work", path), nil
}

func (f *fakeSystem) MkdirAll(path string, _ os.FileMode) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.mkdirErr != nil {
		return f.mkdirErr
	}
	f.mkdirs = append(f.mkdirs, path)
	f.dirs[path] = true
	return nil
}

func (f *fakeSystem) LookPath(file string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.onPath[file]; ok {
		return p, nil
	}
	return "", errors.New("executable file not found in $PATH")
}

func (f *fakeSystem) Run(cmd Command) error {
	f.mu.Lock()
	hook := f.onRun
	f.mu.Unlock()
	if hook != nil {
		if err := hook(cmd); err != nil {
			return err
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, cmd)
	if len(cmd.Args) == 3 && cmd.Args[0] == "-m" && cmd.Args[1] == "venv" {
		f.dirs[cmd.Args[2]] = true
		f.files[pyenv.VenvInterpreter(cmd.Args[2], "linux")] = true
	}
	return nil
}

func (f *fakeSystem) LockFolder(folder string) (func() error, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	f.locks = append(f.locks, folder)
	return func() error { return nil }, nil
}

func (f *fakeSystem) recorded() []Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.commands)
}

// installs returns the package names of recorded pip install calls, skipping
// the pip self-upgrade.
func (f *fakeSystem) installs() []string {
	var out []string
	for _, c := range f.recorded() {
		if len(c.Args) == 4 && c.Args[1] == "pip" && c.Args[2] == "install" {
			out = append(out, c.Args[3])
		}
	}
	return out
}

// eventLog collects emitted events.
type eventLog struct {
	mu     sync.Mutex
	events []Event
}

func (l *eventLog) emit(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, e)
}

func (l *eventLog) messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, 0, len(l.events))
	for _, e := range l.events {
		out = append(out, e.Message)
	}
	return out
}
