package claude

import (
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/haleclipse/ccline/internal/logger"
)

// BackupPath returns where a replaced entry of settingsPath is saved under dir.
// One file per settings path; a later backup replaces the earlier one.
func BackupPath(dir, settingsPath string) string {
	name := slug.Make(settingsPath)
	if name == "" {
		name = "settings"
	}
	return filepath.Join(dir, "backups", name+".json")
}

// backup saves prev and returns its path, or "" when backups are disabled or
// the save failed. Failure never blocks the settings write.
func (w *Writer) backup(settingsPath string, prev any) string {
	if w.backupDir == "" {
		return ""
	}
	dst := BackupPath(w.backupDir, settingsPath)

	data, err := encode(map[string]any{StatusLineKey: prev})
	if err != nil {
		logger.Warn("Failed to encode previous statusLine for backup: %v", err)
		return ""
	}
	if err := w.fs.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		logger.Warn("Failed to create backup directory: %v", err)
		return ""
	}
	if err := writeFileAtomic(w.fs, dst, data); err != nil {
		logger.Warn("Failed to back up previous statusLine to %s: %v", dst, err)
		return ""
	}
	logger.Info("Previous statusLine backed up to %s", dst)
	return dst
}
