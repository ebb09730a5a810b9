package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/conn-castle/devstarter/internal/provision"
)

// testEnv points the CLI at an isolated config file and log.
type testEnv struct {
	dir     string
	config  string
	logFile string
}

func newTestEnv(t *testing.T, configBody string) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:     dir,
		config:  filepath.Join(dir, "config.toml"),
		logFile: filepath.Join(dir, "logs", "setup.log"),
	}
	if err := os.WriteFile(env.config, []byte(configBody), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func (e testEnv) args(rest ...string) []string {
	return append([]string{"devstarter", "--config", e.config, "--log-file", e.logFile}, rest...)
}

func runCLI(t *testing.T, args []string) (string, int) {
	t.Helper()
	var out bytes.Buffer
	code := 0
	runMain(args, &out, &out, func(c int) { code = c })
	return out.String(), code
}

// fakeSystem fakes subprocesses on top of the real filesystem. Installs wait
// for gate when it is set.
type fakeSystem struct {
	provision.RealSystem
	gate <-chan struct{}
}

func (fakeSystem) LookPath(file string) (string, error) { return file, nil }

func (f fakeSystem) Run(cmd provision.Command) error {
	if len(cmd.Args) == 3 && cmd.Args[1] == "venv" {
		bin := filepath.Join(cmd.Args[2], "bin")
		if err := os.MkdirAll(bin, 0o755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(bin, "python"), nil, 0o755)
	}
	if f.gate != nil && len(cmd.Args) == 4 {
		<-f.gate
	}
	return nil
}

func (fakeSystem) LockFolder(string) (func() error, error) {
	return func() error { return nil }, nil
}

func fakeWorker(gate <-chan struct{}) *provision.Worker {
	return provision.NewWorker(provision.WorkerConfig{System: fakeSystem{gate: gate}, GOOS: "linux"})
}

// lockedBuffer is written from both run.Group actors. It closes gate the
// first time trigger is written.
type lockedBuffer struct {
	mu      sync.Mutex
	buf     bytes.Buffer
	trigger string
	gate    chan struct{}
	once    sync.Once
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.trigger != "" && strings.Contains(string(p), b.trigger) {
		b.once.Do(func() { close(b.gate) })
	}
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
