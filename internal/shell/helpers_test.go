package shell

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/conn-castle/devstarter/internal/provision"
)

// MockUI answers prompts through optional callbacks; unset callbacks accept
// the prefilled value.
type MockUI struct {
	SelectFunc      func(title string, options []string, current *string) error
	MultiSelectFunc func(title string, options []string, selected *[]string) error
	InputFunc       func(title string, placeholder string, value *string) error
	PickDirFunc     func(title string, start string, value *string) error
	ConfirmFunc     func(title string, value *bool) error
}

func (m *MockUI) Select(title string, options []string, current *string) error {
	if m.SelectFunc != nil {
		return m.SelectFunc(title, options, current)
	}
	return nil
}

func (m *MockUI) MultiSelect(title string, options []string, selected *[]string) error {
	if m.MultiSelectFunc != nil {
		return m.MultiSelectFunc(title, options, selected)
	}
	return nil
}

func (m *MockUI) Input(title string, placeholder string, value *string) error {
	if m.InputFunc != nil {
		return m.InputFunc(title, placeholder, value)
	}
	return nil
}

func (m *MockUI) PickDir(title string, start string, value *string) error {
	if m.PickDirFunc != nil {
		return m.PickDirFunc(title, start, value)
	}
	return nil
}

func (m *MockUI) Confirm(title string, value *bool) error {
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(title, value)
	}
	return nil
}

// gatedSystem runs against the real filesystem but fakes every subprocess.
// When gate is set, installs wait for it to close.
type gatedSystem struct {
	provision.RealSystem
	gate chan struct{}
}

func (g gatedSystem) LookPath(file string) (string, error) {
	return file, nil
}

func (g gatedSystem) Run(cmd provision.Command) error {
	if len(cmd.Args) == 3 && cmd.Args[1] == "venv" {
		bin := filepath.Join(cmd.Args[2], "bin")
		if err := os.MkdirAll(bin, 0o755); err != nil {
			return err
		}
		return os.WriteFile(filepath.Join(bin, "python"), nil, 0o755)
	}
	if g.gate != nil && len(cmd.Args) == 4 {
		<-g.gate
	}
	return nil
}

func (g gatedSystem) LockFolder(string) (func() error, error) {
	return func() error { return nil }, nil
}

func newTestWorker(gate chan struct{}) *provision.Worker {
	return provision.NewWorker(provision.WorkerConfig{
		System:      gatedSystem{gate: gate},
		GOOS:        "linux",
		Interpreter: "python3",
	})
}

func keyMsg(s string) tea.KeyMsg {
	if s == "ctrl+c" {
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m model, msg tea.Msg) (model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm, cmd
}

// drive feeds the run's events into m until the run finishes.
func drive(t *testing.T, m model) model {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !m.finished {
		if time.Now().After(deadline) {
			t.Fatal("run did not finish")
		}
		m, _ = update(t, m, waitForEvent(m.run)())
	}
	return m
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}
