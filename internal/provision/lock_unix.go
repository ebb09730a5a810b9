//go:build !windows

package provision

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/devstarter/internal/messages"
)

var lockFileFn = lockFile
var unlockFileFn = unlockFile
var flockFn = unix.Flock

// lockFile takes an exclusive, non-blocking advisory lock on file.
func lockFile(file *os.File) error {
	err := flockFn(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB)
	if err == nil {
		return nil
	}
	if errors.Is(err, unix.EWOULDBLOCK) || errors.Is(err, unix.EAGAIN) {
		return fmt.Errorf(messages.SystemLockHeldFmt, ErrFolderLocked, file.Name())
	}
	return fmt.Errorf(messages.SystemLockFmt, file.Name(), err)
}

// unlockFile releases the advisory lock on file.
func unlockFile(file *os.File) error {
	return flockFn(int(file.Fd()), unix.LOCK_UN)
}
