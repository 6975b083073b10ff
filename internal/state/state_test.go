package state

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingRecordIsNil(t *testing.T) {
	assert.Nil(t, Load(t.TempDir()))
}

func TestLoadGarbageRecordIsNil(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, RecordName), []byte("not json"), 0644))
	assert.Nil(t, Load(dir))
}

func TestSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	rec := &RunRecord{
		Timestamp:    time.Now().Truncate(time.Second),
		URL:          "https://example.com/config.git",
		Revision:     "stable",
		Playbook:     filepath.Join(dir, "local.yml"),
		Changed:      true,
		SyncExit:     0,
		PlaybookExit: 2,
	}
	Save(dir, rec)

	got := Load(dir)
	require.NotNil(t, got)
	assert.True(t, rec.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, rec.URL, got.URL)
	assert.Equal(t, rec.Revision, got.Revision)
	assert.Equal(t, rec.Playbook, got.Playbook)
	assert.True(t, got.Changed)
	assert.Equal(t, 2, got.PlaybookExit)
}

func TestSaveIntoMissingDirectoryIsBestEffort(t *testing.T) {
	// Must not panic or fail the run; the record is a convenience.
	Save(filepath.Join(t.TempDir(), "gone"), &RunRecord{URL: "x"})
}
