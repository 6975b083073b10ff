package pull

import (
	"fmt"
	"strconv"
	"strings"
)

// Default programs used for the two external invocations. They are fields on
// Options rather than constants so tests can substitute harmless commands.
const (
	DefaultSyncCommand     = "ansible"
	DefaultPlaybookCommand = "ansible-playbook"
)

// DefaultModuleName is the repository-sync module driven by the sync tool
// when the operator does not pick one.
const DefaultModuleName = "git"

// Options collects every operator-supplied setting for one pull run. The
// struct is threaded explicitly through each step; there is no process-wide
// mutable state beyond it.
type Options struct {
	URL               string   // Remote repository URL (required)
	Directory         string   // Working directory; empty means derive from home + FQDN
	Checkout          string   // Revision (branch/tag/commit) to check out, optional
	OnlyIfChanged     bool     // Skip the playbook run when the sync reported no change
	Force             bool     // Run the playbook even when the sync failed
	Sleep             string   // Raw --sleep value; parsed by SleepSeconds before any action
	InventoryFile     string   // Inventory source path for both tools, optional
	ExtraVars         []string // Repeatable -e assignments, caller order preserved
	Verbosity         int      // Accumulated count of repeatable -v flags
	ModuleName        string   // Sync module name, default git
	VaultPasswordFile string   // Secret file path for the playbook tool, optional
	AskSudoPass       bool     // Request an interactive privilege-escalation prompt
	Tags              string   // Tag filter expression for the playbook tool, optional
	Purge             bool     // Delete the working directory after the run
	Playbook          string   // Positional playbook path relative to the working directory

	SyncCommand     string // Program for the repository sync; empty means DefaultSyncCommand
	PlaybookCommand string // Program for the playbook run; empty means DefaultPlaybookCommand
}

// Validate checks the options that must be right before any side effect
// happens: the repository URL is required and the sleep bound must parse.
func (o *Options) Validate() error {
	if o.URL == "" {
		return fmt.Errorf("a repository URL is required (-U/--url)")
	}
	if _, err := o.SleepSeconds(); err != nil {
		return err
	}
	return nil
}

// SleepSeconds parses the raw --sleep value into a whole-second upper bound
// for the pre-run splay. An empty value means no delay. Non-numeric or
// negative values are usage errors.
func (o *Options) SleepSeconds() (int, error) {
	if o.Sleep == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(o.Sleep)
	if err != nil {
		return 0, fmt.Errorf("sleep bound %q is not a whole number of seconds", o.Sleep)
	}
	if n < 0 {
		return 0, fmt.Errorf("sleep bound %d must not be negative", n)
	}
	return n, nil
}

// syncCommand returns the program used for the repository sync.
func (o *Options) syncCommand() string {
	if o.SyncCommand != "" {
		return o.SyncCommand
	}
	return DefaultSyncCommand
}

// playbookCommand returns the program used for the playbook run.
func (o *Options) playbookCommand() string {
	if o.PlaybookCommand != "" {
		return o.PlaybookCommand
	}
	return DefaultPlaybookCommand
}

// moduleName returns the sync module, falling back to the git default.
func (o *Options) moduleName() string {
	if o.ModuleName != "" {
		return o.ModuleName
	}
	return DefaultModuleName
}

// inventory returns the inventory source handed to both tools. Without an
// operator-supplied file, a literal localhost host list keeps both tools
// working against the local machine only.
func (o *Options) inventory() string {
	if o.InventoryFile != "" {
		return o.InventoryFile
	}
	return "localhost,"
}

// VerbosityFlag maps the accumulated -v count to the flag string forwarded to
// both child tools: "" for zero, "-v" for one, "-vv" for two, and so on.
func VerbosityFlag(count int) string {
	if count <= 0 {
		return ""
	}
	return "-" + strings.Repeat("v", count)
}
