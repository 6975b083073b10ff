package pull

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSyncArgs(t *testing.T) {
	o := &Options{URL: "https://example.com/config.git"}
	args := SyncArgs(o, "/var/lib/confpull/web01", "web01.example.com", "web01")

	assert.Equal(t, []string{
		"localhost",
		"-c", "local",
		"-i", "localhost,",
		"-l", "web01.example.com,web01,127.0.0.1,localhost",
		"-m", "git",
		"-a", "repo=https://example.com/config.git dest=/var/lib/confpull/web01 accept_hostkey=yes",
	}, args)
}

func TestSyncArgsWithCheckoutAndVerbosity(t *testing.T) {
	o := &Options{
		URL:           "git@example.com:config.git",
		Checkout:      "stable",
		Verbosity:     2,
		ModuleName:    "subversion",
		InventoryFile: "/etc/inv.ini",
	}
	args := SyncArgs(o, "/tmp/wd", "web01.example.com", "web01")

	assert.Equal(t, "localhost", args[0])
	assert.Contains(t, args, "-vv")
	assert.Contains(t, args, "subversion")
	assert.Contains(t, args, "/etc/inv.ini")
	assert.Equal(t, "repo=git@example.com:config.git dest=/tmp/wd accept_hostkey=yes version=stable", args[len(args)-1])
}

func TestSyncChanged(t *testing.T) {
	assert.True(t, SyncChanged(`web01 | CHANGED => {"changed": true, "after": "abc"}`))
	assert.False(t, SyncChanged(`web01 | SUCCESS => {"changed": false}`))
	assert.False(t, SyncChanged(""))
}

func TestPlaybookArgs(t *testing.T) {
	o := &Options{
		URL:               "https://example.com/config.git",
		ExtraVars:         []string{"env=prod", "tier=web"},
		VaultPasswordFile: "/etc/vault.txt",
		AskSudoPass:       true,
		Tags:              "packages,users",
		Verbosity:         1,
	}
	args := PlaybookArgs(o, "/wd/local.yml", "web01.example.com", "web01")

	assert.Equal(t, []string{
		"-v",
		"-c", "local",
		"-i", "localhost,",
		"-l", "web01.example.com,web01,127.0.0.1,localhost",
		"--vault-password-file", "/etc/vault.txt",
		"-e", "env=prod",
		"-e", "tier=web",
		"-K",
		"-t", "packages,users",
		"/wd/local.yml",
	}, args)
}

func TestPlaybookArgsExtraVarsOrderPreserved(t *testing.T) {
	o := &Options{ExtraVars: []string{"b=2", "a=1", "b=3"}}
	args := PlaybookArgs(o, "pb.yml", "h.example.com", "h")

	var vars []string
	for i, a := range args {
		if a == "-e" {
			require.Less(t, i+1, len(args))
			vars = append(vars, args[i+1])
		}
	}
	assert.Equal(t, []string{"b=2", "a=1", "b=3"}, vars)
}

func TestPlaybookArgsMinimal(t *testing.T) {
	o := &Options{}
	args := PlaybookArgs(o, "pb.yml", "h", "h")

	assert.Equal(t, []string{
		"-c", "local",
		"-i", "localhost,",
		"-l", "h,h,127.0.0.1,localhost",
		"pb.yml",
	}, args)
	assert.NotContains(t, args, "-K")
	assert.NotContains(t, args, "-t")
}

func TestSyncAndPlaybookShareConnectionOptions(t *testing.T) {
	o := &Options{URL: "https://example.com/config.git", Verbosity: 1, InventoryFile: "/etc/inv.ini"}
	syncArgs := SyncArgs(o, "/wd", "web01.example.com", "web01")
	playArgs := PlaybookArgs(o, "/wd/local.yml", "web01.example.com", "web01")

	// Both invocations carry the same connection mode, inventory, host limit
	// and verbosity flag.
	for _, shared := range []string{"-v", "-c", "local", "-i", "/etc/inv.ini", "-l", "web01.example.com,web01,127.0.0.1,localhost"} {
		assert.Contains(t, syncArgs, shared)
		assert.Contains(t, playArgs, shared)
	}
}

func TestLimitExpression(t *testing.T) {
	assert.Equal(t, "db02.example.com,db02,127.0.0.1,localhost", LimitExpression("db02.example.com", "db02"))
}
