package pull

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRequiresURL(t *testing.T) {
	o := &Options{}
	err := o.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "repository URL")

	o.URL = "https://example.com/config.git"
	assert.NoError(t, o.Validate())
}

func TestSleepSeconds(t *testing.T) {
	cases := []struct {
		raw     string
		want    int
		wantErr bool
	}{
		{raw: "", want: 0},
		{raw: "0", want: 0},
		{raw: "60", want: 60},
		{raw: "ten", wantErr: true},
		{raw: "1.5", wantErr: true},
		{raw: "-3", wantErr: true},
	}
	for _, tc := range cases {
		o := &Options{Sleep: tc.raw}
		got, err := o.SleepSeconds()
		if tc.wantErr {
			assert.Error(t, err, "sleep %q", tc.raw)
			continue
		}
		require.NoError(t, err, "sleep %q", tc.raw)
		assert.Equal(t, tc.want, got)
	}
}

func TestValidateRejectsBadSleepBeforeAnyAction(t *testing.T) {
	o := &Options{URL: "https://example.com/config.git", Sleep: "soon"}
	assert.Error(t, o.Validate())
}

func TestVerbosityFlag(t *testing.T) {
	assert.Equal(t, "", VerbosityFlag(0))
	assert.Equal(t, "", VerbosityFlag(-1))
	assert.Equal(t, "-v", VerbosityFlag(1))
	assert.Equal(t, "-vvv", VerbosityFlag(3))
}

func TestOptionDefaults(t *testing.T) {
	o := &Options{}
	assert.Equal(t, DefaultSyncCommand, o.syncCommand())
	assert.Equal(t, DefaultPlaybookCommand, o.playbookCommand())
	assert.Equal(t, DefaultModuleName, o.moduleName())
	assert.Equal(t, "localhost,", o.inventory())

	o = &Options{SyncCommand: "fake", PlaybookCommand: "fake-play", ModuleName: "subversion", InventoryFile: "/etc/hosts.ini"}
	assert.Equal(t, "fake", o.syncCommand())
	assert.Equal(t, "fake-play", o.playbookCommand())
	assert.Equal(t, "subversion", o.moduleName())
	assert.Equal(t, "/etc/hosts.ini", o.inventory())
}
