package main

import (
	"os"

	"confpull/cmd" // Import the cmd package which contains the CLI command and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution,
// then exits with whatever status the orchestrated run produced.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI command.
//
// The confpull project is a pull-mode configuration bootstrap tool that:
//   - Checks out a remote content repository into a local working directory,
//     using an external repository-sync tool (the ansible ad-hoc runner with a
//     sync module, git by default)
//   - Resolves which playbook inside the checkout applies to this machine,
//     preferring <fqdn>.yml, then <short-hostname>.yml, then local.yml, unless
//     the operator named a playbook explicitly
//   - Applies that playbook locally with the external playbook-execution tool
//     (ansible-playbook), streaming its output live
//   - Optionally skips the playbook run when the sync reported no change, and
//     optionally purges the working directory afterwards
//   - Maintains a small JSON record of the last run inside the working directory,
//     so unattended machines can be inspected after the fact
//
// Error handling strategy:
//   - Usage errors (missing URL, unparsable sleep bound) exit 1 before any side effect
//   - A failing sync aborts with the sync tool's exit code unless --force is set
//   - The playbook tool's exit code becomes confpull's own exit code
//   - Cleanup failures (purge, run record) are logged as warnings and never mask
//     the outcome of the configuration run
//   - An operator interrupt exits immediately with a distinct status (130)
//
// Integration points:
//   - Both external tools are invoked as child processes with structured argument
//     lists (never shell strings), with stdout/stderr relayed to the caller in
//     real time while also being captured for policy decisions
//   - Reads the invoking user's home directory and the machine's hostname to
//     derive the default working directory and playbook candidates
//
// This makes a fleet of machines able to pull their configuration from a central
// repository on a schedule, instead of a central server pushing it to them.
func main() {
	os.Exit(cmd.Execute())
}
