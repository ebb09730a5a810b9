package shell

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/conn-castle/devstarter/internal/messages"
	"github.com/conn-castle/devstarter/internal/terminal"
)

// ErrAborted is returned when the user leaves a form with Esc or Ctrl+C.
var ErrAborted = errors.New(messages.ShellExitWithoutChanges)

// UI defines the prompts used to collect a request.
type UI interface {
	Select(title string, options []string, current *string) error
	MultiSelect(title string, options []string, selected *[]string) error
	Input(title string, placeholder string, value *string) error
	PickDir(title string, start string, value *string) error
	Confirm(title string, value *bool) error
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct {
	isTerminal func() bool
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// NewHuhUI creates a HuhUI that requires an interactive terminal.
func NewHuhUI() *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive}
}

func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return errors.New(messages.ShellRequiresTerminal)
}

// formKeyMap makes Esc abort the form alongside Ctrl+C. Filtering is off;
// the lists are short and filter mode would swallow Esc.
func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit"))
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)
	km.MultiSelect.Filter.SetEnabled(false)
	km.MultiSelect.SetFilter.SetEnabled(false)
	km.MultiSelect.ClearFilter.SetEnabled(false)
	return km
}

// formFilter turns an interrupt into a quit so bubbletea clears the form
// before returning.
func formFilter(_ tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.InterruptMsg); ok {
		return tea.QuitMsg{}
	}
	return msg
}

func (ui *HuhUI) runForm(field huh.Field) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}
	form := huh.NewForm(huh.NewGroup(field)).
		WithKeyMap(formKeyMap()).
		WithProgramOptions(
			tea.WithOutput(os.Stderr),
			tea.WithFilter(formFilter),
		)
	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrAborted
	}
	return err
}

func stringOptions(values []string) []huh.Option[string] {
	opts := make([]huh.Option[string], len(values))
	for i, v := range values {
		opts[i] = huh.NewOption(v, v)
	}
	return opts
}

// Select renders a single-choice prompt.
func (ui *HuhUI) Select(title string, options []string, current *string) error {
	return ui.runForm(huh.NewSelect[string]().
		Title(title).
		Options(stringOptions(options)...).
		Value(current))
}

// MultiSelect renders a checkbox group. Values already in selected start checked.
func (ui *HuhUI) MultiSelect(title string, options []string, selected *[]string) error {
	return ui.runForm(huh.NewMultiSelect[string]().
		Title(title).
		Filterable(false).
		Value(selected).
		Options(stringOptions(options)...))
}

// Input renders a single-line text prompt.
func (ui *HuhUI) Input(title string, placeholder string, value *string) error {
	return ui.runForm(huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value))
}

// PickDir renders a directory-only browser rooted at start.
func (ui *HuhUI) PickDir(title string, start string, value *string) error {
	return ui.runForm(huh.NewFilePicker().
		Title(title).
		CurrentDirectory(start).
		DirAllowed(true).
		FileAllowed(false).
		Picking(true).
		Height(15).
		Value(value))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.runForm(huh.NewConfirm().
		Title(title).
		Value(value))
}

// confirmTitle formats the final prompt of the form.
func confirmTitle(folder string, packages int) string {
	return fmt.Sprintf(messages.ShellConfirmStartFmt, folder, packages)
}
