package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/devstarter/internal/catalog"
	"github.com/conn-castle/devstarter/internal/messages"
	"github.com/conn-castle/devstarter/internal/provision"
)

func testCatalog() catalog.Catalog {
	return catalog.Catalog{Categories: []catalog.Category{
		{Title: "Data", Packages: []string{"numpy", "pandas"}, Checked: []string{"pandas"}},
		{Title: "Web", Packages: []string{"flask", "requests"}},
	}}
}

func TestStartOptionsRequest(t *testing.T) {
	home, err := homedir.Dir()
	require.NoError(t, err)

	tests := []struct {
		name string
		opts startOptions
		want provision.Request
	}{
		{
			name: "folder only",
			opts: startOptions{folder: " /proj "},
			want: provision.Request{Folder: "/proj", Selected: []string{}},
		},
		{
			name: "home expansion",
			opts: startOptions{folder: "~/proj"},
			want: provision.Request{Folder: filepath.Join(home, "proj"), Selected: []string{}},
		},
		{
			name: "catalog order and dedupe",
			opts: startOptions{
				folder:     "/proj",
				selects:    []string{"requests", "pandas"},
				categories: []string{"Data"},
				defaults:   true,
			},
			want: provision.Request{Folder: "/proj", Selected: []string{"numpy", "pandas", "requests"}},
		},
		{
			name: "extra keeps typed order",
			opts: startOptions{folder: "/proj", extra: "rich, ,httpx"},
			want: provision.Request{Folder: "/proj", Selected: []string{}, Additional: []string{"rich", "httpx"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.opts.request(testCatalog())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStartOptionsRequestErrors(t *testing.T) {
	tests := []struct {
		name string
		opts startOptions
		want string
	}{
		{name: "missing folder", opts: startOptions{folder: "  "}, want: messages.StartFolderRequired},
		{name: "unknown package", opts: startOptions{folder: "/p", selects: []string{"rich"}}, want: `"rich" is not a catalog package`},
		{name: "unknown category", opts: startOptions{folder: "/p", categories: []string{"Games"}}, want: `unknown catalog category "Games"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.opts.request(testCatalog())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func stubNotify(t *testing.T, interrupted bool) {
	t.Helper()
	orig := notifyContextFunc
	t.Cleanup(func() { notifyContextFunc = orig })
	notifyContextFunc = func(ctx context.Context) (context.Context, context.CancelFunc) {
		ctx, cancel := context.WithCancel(ctx)
		if interrupted {
			cancel()
		}
		return ctx, cancel
	}
}

func TestRunStartStreamsEvents(t *testing.T) {
	stubNotify(t, false)
	folder := t.TempDir()
	var out bytes.Buffer

	res := runStart(context.Background(), &out, fakeWorker(nil), provision.Request{
		Folder:     folder,
		Selected:   []string{"numpy"},
		Additional: []string{"rich"},
	})

	assert.Equal(t, provision.OutcomeCompleted, res.Outcome)
	assert.Equal(t, []string{"numpy", "rich"}, res.Installed)
	text := out.String()
	assert.Contains(t, text, "provisioning "+folder+" (2 packages)")
	assert.Contains(t, text, "[ 25%] Navigating to folder...")
	assert.Contains(t, text, "[ 75%] Installing numpy...")
	assert.Contains(t, text, "[100%] Setup complete!")
	assert.NotContains(t, text, messages.StartInterruptReceived)
}

func TestRunStartPrintsErrors(t *testing.T) {
	stubNotify(t, false)
	var out bytes.Buffer

	res := runStart(context.Background(), &out, fakeWorker(nil), provision.Request{
		Folder: filepath.Join(t.TempDir(), "missing"),
	})

	assert.Equal(t, provision.OutcomeFailed, res.Outcome)
	assert.Contains(t, out.String(), "Error: Invalid folder path")
}

func TestRunStartInterruptCancels(t *testing.T) {
	stubNotify(t, true)
	gate := make(chan struct{})
	out := &lockedBuffer{trigger: messages.StartInterruptReceived, gate: gate}

	res := runStart(context.Background(), out, fakeWorker(gate), provision.Request{
		Folder:   t.TempDir(),
		Selected: []string{"numpy", "pandas"},
	})

	assert.Equal(t, provision.OutcomeCanceled, res.Outcome)
	assert.Equal(t, []string{"numpy"}, res.Installed, "the install in flight finishes")
	text := out.String()
	assert.Contains(t, text, messages.StartInterruptReceived)
	assert.Contains(t, text, "Setup canceled.")
	assert.NotContains(t, text, "Installing pandas...")
}
