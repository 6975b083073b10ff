package pull

import (
	"os"
	"path/filepath"

	"confpull/internal/logger"
)

// PurgeWorkDir removes the working directory after the run. The process moved
// into that directory for the playbook step, so step out to the parent first;
// deleting the process's own current directory would leave it in a dead cwd.
//
// Cleanup is best effort: a failure is a warning and must never mask the
// outcome of the configuration run, so nothing is returned.
func PurgeWorkDir(dir string) {
	if err := os.Chdir(filepath.Dir(dir)); err != nil {
		logger.Warn("[WARN] Could not leave %s before purging: %v\n", dir, err)
	}
	if err := os.RemoveAll(dir); err != nil {
		logger.Warn("[WARN] Failed to purge working directory %s: %v\n", dir, err)
		return
	}
	logger.Info("[INFO] Purged working directory %s\n", dir)
}
