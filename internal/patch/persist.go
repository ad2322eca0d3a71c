package patch

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// backupPerms is applied to freshly created backup files.
const backupPerms = 0o644

// PersistOptions configures Persist.
type PersistOptions struct {
	// BackupExt, when non-empty, writes the target's prior content to
	// path+BackupExt before overwriting. Example: ".orig".
	BackupExt string
}

// Persist writes doc to path, fully replacing prior content.
//
// The write goes through a temp file in the same directory followed by a
// rename, so an interrupted write can never leave a truncated file at path:
// either the old content survives or the new content is complete.
func Persist(doc Document, path string, opts PersistOptions) error {
	if opts.BackupExt != "" {
		err := writeBackup(path, opts.BackupExt)
		if err != nil {
			return err
		}
	}

	writeErr := atomic.WriteFile(path, strings.NewReader(string(doc)))
	if writeErr != nil {
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}

	return nil
}

// writeBackup copies the current content of path to path+ext. A missing
// target is not an error: there is nothing to back up.
func writeBackup(path, ext string) error {
	orig, readErr := os.ReadFile(path)
	if readErr != nil {
		if os.IsNotExist(readErr) {
			return nil
		}

		return fmt.Errorf("reading %s for backup: %w", path, readErr)
	}

	backupPath := path + ext

	writeErr := atomic.WriteFile(backupPath, bytes.NewReader(orig))
	if writeErr != nil {
		return fmt.Errorf("writing backup %s: %w", backupPath, writeErr)
	}

	// Set file permissions (atomic.WriteFile doesn't set them for new files)
	chmodErr := os.Chmod(backupPath, backupPerms)
	if chmodErr != nil {
		return fmt.Errorf("setting backup permissions: %w", chmodErr)
	}

	return nil
}
