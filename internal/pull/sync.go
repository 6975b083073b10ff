package pull

import (
	"fmt"
	"strings"
)

// changedMarker is the marker the sync modules print when the checkout
// actually moved. Its absence under --only-if-changed means the playbook run
// can be skipped entirely.
const changedMarker = `"changed": true`

// SyncArgs builds the structured argument list for the repository-sync
// invocation: the ad-hoc runner drives the sync module against localhost with
// the repo URL, destination and optional revision as module arguments. The
// connection mode, inventory, host limit and verbosity are the same ones the
// playbook invocation gets. Host keys are accepted automatically so first
// contact with a new remote does not hang an unattended machine.
func SyncArgs(o *Options, dest, fqdn, short string) []string {
	args := []string{"localhost"}
	if v := VerbosityFlag(o.Verbosity); v != "" {
		args = append(args, v)
	}
	args = append(args, "-c", "local", "-i", o.inventory(), "-l", LimitExpression(fqdn, short), "-m", o.moduleName())

	moduleArgs := fmt.Sprintf("repo=%s dest=%s accept_hostkey=yes", o.URL, dest)
	if o.Checkout != "" {
		moduleArgs += fmt.Sprintf(" version=%s", o.Checkout)
	}
	args = append(args, "-a", moduleArgs)
	return args
}

// SyncChanged reports whether the captured sync output carries the
// change-indicator marker.
func SyncChanged(output string) bool {
	return strings.Contains(output, changedMarker)
}

// PlaybookArgs builds the structured argument list for the playbook
// invocation: the same connection mode, inventory, limit and verbosity as the
// sync, plus the optional vault/vars/privilege/tag settings and the resolved
// playbook path last. Extra-var assignments are passed individually, in
// caller order.
func PlaybookArgs(o *Options, playbook, fqdn, short string) []string {
	var args []string
	if v := VerbosityFlag(o.Verbosity); v != "" {
		args = append(args, v)
	}
	args = append(args, "-c", "local", "-i", o.inventory(), "-l", LimitExpression(fqdn, short))
	if o.VaultPasswordFile != "" {
		args = append(args, "--vault-password-file", o.VaultPasswordFile)
	}
	for _, ev := range o.ExtraVars {
		args = append(args, "-e", ev)
	}
	if o.AskSudoPass {
		args = append(args, "-K")
	}
	if o.Tags != "" {
		args = append(args, "-t", o.Tags)
	}
	args = append(args, playbook)
	return args
}
