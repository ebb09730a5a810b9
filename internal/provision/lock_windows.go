//go:build windows

package provision

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/windows"

	"github.com/conn-castle/devstarter/internal/messages"
)

var lockFileFn = lockFile
var unlockFileFn = unlockFile

// lockFile takes an exclusive lock on the first byte of file without waiting.
func lockFile(file *os.File) error {
	ol := new(windows.Overlapped)
	flags := uint32(windows.LOCKFILE_EXCLUSIVE_LOCK | windows.LOCKFILE_FAIL_IMMEDIATELY)
	err := windows.LockFileEx(windows.Handle(file.Fd()), flags, 0, 1, 0, ol)
	if err == nil {
		return nil
	}
	if errors.Is(err, windows.ERROR_LOCK_VIOLATION) {
		return fmt.Errorf(messages.SystemLockHeldFmt, ErrFolderLocked, file.Name())
	}
	return fmt.Errorf(messages.SystemLockFmt, file.Name(), err)
}

// unlockFile releases the lock on file.
func unlockFile(file *os.File) error {
	ol := new(windows.Overlapped)
	return windows.UnlockFileEx(windows.Handle(file.Fd()), 0, 1, 0, ol)
}
