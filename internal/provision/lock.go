package provision

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/conn-castle/devstarter/internal/messages"
)

type folderLock struct {
	file *os.File
}

var tempDirFunc = os.TempDir

// lockPath maps an absolute folder path to its lock file.
func lockPath(folder string) string {
	sum := sha256.Sum256([]byte(filepath.Clean(folder)))
	return filepath.Join(tempDirFunc(), "devstarter-"+hex.EncodeToString(sum[:8])+".lock")
}

// acquireFolderLock opens or creates path and takes an exclusive lock without
// waiting.
func acquireFolderLock(path string) (*folderLock, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf(messages.SystemLockOpenFmt, path, err)
	}
	if err := lockFileFn(file); err != nil {
		_ = file.Close()
		return nil, err
	}
	return &folderLock{file: file}, nil
}

// release unlocks and closes the lock file. The file itself is left behind;
// removing it would race with a process that just opened it.
func (l *folderLock) release() error {
	if l == nil || l.file == nil {
		return nil
	}
	if err := unlockFileFn(l.file); err != nil {
		_ = l.file.Close()
		return err
	}
	err := l.file.Close()
	l.file = nil
	return err
}
