package state

import (
	"confpull/internal/logger" // Custom logger package for logging errors and debug info
	"encoding/json"            // For JSON encoding and decoding of the run record
	"os"                       // For file system operations like reading and writing files
	"path/filepath"            // For joining the record path inside the working directory
	"time"                     // For the run timestamp
)

// RecordName is the file kept inside the working directory with the outcome
// of the most recent run, so an operator can inspect an unattended machine
// after the fact.
const RecordName = ".confpull.json"

// RunRecord represents the saved outcome of one pull run.
// It records when the run happened, what was pulled and applied, whether the
// sync reported a change, and the exit codes of both external invocations.
type RunRecord struct {
	Timestamp    time.Time `json:"timestamp"`          // When the run finished
	URL          string    `json:"url"`                // Repository URL that was synced
	Revision     string    `json:"revision,omitempty"` // Revision requested, if any
	Playbook     string    `json:"playbook"`           // Resolved playbook that was applied
	Changed      bool      `json:"changed"`            // Whether the sync reported a content change
	SyncExit     int       `json:"sync_exit"`          // Exit code of the repository-sync invocation
	PlaybookExit int       `json:"playbook_exit"`      // Exit code of the playbook invocation
}

// Load reads the run record from the working directory. A missing or
// unparsable record is normal on a fresh checkout and yields nil.
func Load(dir string) *RunRecord {
	raw, err := os.ReadFile(filepath.Join(dir, RecordName))
	if err != nil {
		return nil
	}
	var rec RunRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil
	}
	return &rec
}

// Save writes the run record into the working directory.
// It pretty-prints the JSON with indentation for readability.
// Errors during marshalling or writing are logged but not propagated: the
// record is a convenience and must never change the run's exit status.
func Save(dir string, rec *RunRecord) {
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		logger.Warn("[WARN] Failed to marshal run record: %v\n", err)
		return
	}

	path := filepath.Join(dir, RecordName)
	logger.Debug("[DEBUG] Writing run record to %s\n", path)

	if err := os.WriteFile(path, raw, 0644); err != nil {
		logger.Warn("[WARN] Failed to write run record %s: %v\n", path, err)
	}
}
