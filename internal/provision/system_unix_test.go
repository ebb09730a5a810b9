//go:build !windows

package provision

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/devstarter/internal/testutil"
)

func withTempLockDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig := tempDirFunc
	tempDirFunc = func() string { return dir }
	t.Cleanup(func() { tempDirFunc = orig })
	return dir
}

func TestRealSystemRunFailureIncludesOutput(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStubWithExit(t, dir, "broken", 3)

	err := RealSystem{}.Run(Command{Path: filepath.Join(dir, "broken"), Args: []string{"-m", "pip"}, Dir: dir})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit status 3")
	assert.Contains(t, err.Error(), "stub broken: -m pip")
}

func TestRealSystemRunSuccess(t *testing.T) {
	dir := t.TempDir()
	testutil.WriteStub(t, dir, "ok")

	assert.NoError(t, RealSystem{}.Run(Command{Path: filepath.Join(dir, "ok"), Dir: dir}))
}

func TestRealSystemRunMissingBinary(t *testing.T) {
	err := RealSystem{}.Run(Command{Path: filepath.Join(t.TempDir(), "missing")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run ")
}

func TestOutputTail(t *testing.T) {
	assert.Equal(t, "c | d", outputTail("a\nb\n\nc\n  d  \n", 2))
	assert.Equal(t, "", outputTail("\n\n", 5))
}

func TestLockFolderExclusive(t *testing.T) {
	withTempLockDir(t)
	folder := t.TempDir()

	unlock, err := RealSystem{}.LockFolder(folder)
	require.NoError(t, err)

	_, err = RealSystem{}.LockFolder(folder)
	assert.ErrorIs(t, err, ErrFolderLocked)

	other, err := RealSystem{}.LockFolder(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, other())

	require.NoError(t, unlock())
	again, err := RealSystem{}.LockFolder(folder)
	require.NoError(t, err)
	require.NoError(t, again())
}

func TestLockPathIsStable(t *testing.T) {
	dir := withTempLockDir(t)
	assert.Equal(t, lockPath("/a/b"), lockPath("/a/b/"))
	assert.NotEqual(t, lockPath("/a/b"), lockPath("/a/c"))
	assert.Equal(t, dir, filepath.Dir(lockPath("/a/b")))
}

func TestLockFileUnexpectedError(t *testing.T) {
	withTempLockDir(t)
	orig := flockFn
	flockFn = func(int, int) error { return errors.New("flock boom") }
	t.Cleanup(func() { flockFn = orig })

	_, err := RealSystem{}.LockFolder(t.TempDir())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrFolderLocked)
	assert.Contains(t, err.Error(), "flock boom")
}

func TestFolderLockReleaseIsIdempotent(t *testing.T) {
	var l *folderLock
	assert.NoError(t, l.release())

	withTempLockDir(t)
	lock, err := acquireFolderLock(lockPath(t.TempDir()))
	require.NoError(t, err)
	require.NoError(t, lock.release())
	assert.NoError(t, lock.release())
}

func TestExecuteEndToEnd(t *testing.T) {
	withTempLockDir(t)
	bin := t.TempDir()
	calls := filepath.Join(t.TempDir(), "calls.log")
	testutil.WritePythonStub(t, bin, "python3", calls)
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	folder := t.TempDir()

	var log eventLog
	res := NewWorker(WorkerConfig{}).Execute(context.Background(), "e2e", Request{
		Folder:     folder,
		Selected:   []string{"numpy"},
		Additional: []string{"requests"},
	}, nil, log.emit)

	require.NoError(t, res.Err)
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.DirExists(t, filepath.Join(folder, "src"))
	assert.FileExists(t, filepath.Join(folder, "venv", "bin", "python"))
	assert.Equal(t, []string{
		"venv " + filepath.Join(folder, "venv"),
		"-m pip install --upgrade pip",
		"-m pip install numpy",
		"-m pip install requests",
	}, testutil.ReadLines(t, calls))
	assert.Equal(t, "Setup complete!", log.messages()[len(log.messages())-1])
}

func TestExecuteEndToEndInstallFailure(t *testing.T) {
	withTempLockDir(t)
	bin := t.TempDir()
	calls := filepath.Join(t.TempDir(), "calls.log")
	testutil.WritePythonStub(t, bin, "python3", calls, "nosuchpkg")
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	folder := t.TempDir()

	var log eventLog
	res := NewWorker(WorkerConfig{}).Execute(context.Background(), "e2e", Request{
		Folder:     folder,
		Additional: []string{"nosuchpkg", "requests"},
	}, nil, log.emit)

	assert.Equal(t, OutcomeFailed, res.Outcome)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "install nosuchpkg:")
	assert.Contains(t, res.Err.Error(), "No matching distribution found for nosuchpkg")
	assert.NotContains(t, testutil.ReadLines(t, calls), "-m pip install requests")

	_, err := os.Stat(filepath.Join(folder, "src"))
	assert.NoError(t, err, "src is created before installs begin")
}
