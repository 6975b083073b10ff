package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"confpull/internal/logger"
	"confpull/internal/pull"
	"confpull/internal/runner"
)

// opts collects every flag value. Cobra binds the flags straight into the
// struct that is later handed to the orchestrator, so nothing lives in
// process-wide variables beyond this one binding target.
var opts pull.Options

// exitCode is what Execute returns to main; the RunE below fills it in from
// the orchestrated run.
var exitCode int

// rootCmd is the single verb of the confpull CLI: there are no subcommands,
// the root command is the pull itself.
var rootCmd = &cobra.Command{
	Use:   "confpull -U <repository-url> [flags] [playbook]",
	Short: "Pull a configuration repository and apply its playbook locally",
	Long: `confpull checks out a remote configuration repository into a local working
directory and applies a playbook found inside the checkout, so a machine can
pull its configuration from a central repo instead of having it pushed.

Without an explicit playbook argument, the first readable file among
<fqdn>.yml, <short-hostname>.yml and local.yml in the checkout is applied.`,
	Example: `  # Pull and apply this machine's playbook
  confpull -U https://example.com/config-repo.git

  # Fleet use: splay up to 60s, only apply when the repo changed
  confpull -U https://example.com/config-repo.git -s 60 -o

  # Pin a branch, pass variables, clean up afterwards
  confpull -U https://example.com/config-repo.git -C stable -e env=prod --purge site.yml`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,

	// PersistentPreRun is the hook that runs before the command body.
	// Here, we initialize the logger based on the accumulated -v count.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(opts.Verbosity)
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			opts.Playbook = args[0]
		}
		applyEnvDefaults(&opts)

		// Validate up front so usage errors show the usage text; the
		// orchestrator re-checks but reports without it.
		if err := opts.Validate(); err != nil {
			logger.Error("[ERROR] %v\n", err)
			_ = cmd.Usage()
			exitCode = pull.ExitFailure
			return nil
		}

		interruptImmediately()

		exitCode = pull.New(&opts, runner.NewStreaming()).Run()
		return nil
	},
}

// Execute parses the command line and runs the pull, returning the process
// exit code for main to pass to os.Exit.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		// Cobra's own parse errors (unknown flag, too many args) land here.
		logger.Error("[ERROR] %v\n", err)
		return pull.ExitFailure
	}
	return exitCode
}

// init registers the full flag table on the root command.
func init() {
	f := rootCmd.Flags()
	f.StringVarP(&opts.Directory, "directory", "d", "", "Working directory for the checkout (default: ~/.confpull/<fqdn>)")
	f.StringVarP(&opts.URL, "url", "U", "", "URL of the repository to pull (required)")
	f.StringVarP(&opts.Checkout, "checkout", "C", "", "Revision (branch/tag/commit) to check out")
	f.BoolVarP(&opts.OnlyIfChanged, "only-if-changed", "o", false, "Only run the playbook if the repository changed")
	f.BoolVarP(&opts.Force, "force", "f", false, "Run the playbook even if the repository sync failed")
	f.StringVarP(&opts.Sleep, "sleep", "s", "", "Upper bound in seconds for a random delay before pulling")
	f.StringVarP(&opts.InventoryFile, "inventory-file", "i", "", "Inventory source path")
	f.StringArrayVarP(&opts.ExtraVars, "extra-vars", "e", nil, "Extra variables as key=value, structured data, or @file (repeatable)")
	f.CountVarP(&opts.Verbosity, "verbose", "v", "Increase verbosity (repeatable, forwarded to both tools)")
	f.StringVarP(&opts.ModuleName, "module-name", "m", pull.DefaultModuleName, "Name of the repository-sync module")
	f.StringVar(&opts.VaultPasswordFile, "vault-password-file", "", "Vault password file for the playbook tool")
	f.BoolVarP(&opts.AskSudoPass, "ask-sudo-pass", "K", false, "Ask for the privilege-escalation password")
	f.StringVarP(&opts.Tags, "tags", "t", "", "Only run plays and tasks matching these tags")
	f.BoolVar(&opts.Purge, "purge", false, "Delete the working directory after the run")
}

// applyEnvDefaults fills in flags the operator left empty from the
// environment, after loading an optional dotenv file. Unattended machines can
// keep their repository URL in ~/.confpull.env and run confpull with no
// arguments at all. Explicit flags always win.
func applyEnvDefaults(o *pull.Options) {
	envFile := os.Getenv("CONFPULL_ENV_FILE")
	if envFile == "" {
		if home, err := os.UserHomeDir(); err == nil {
			envFile = home + "/.confpull.env"
		}
	}
	if envFile != "" {
		if err := godotenv.Load(envFile); err == nil {
			logger.Debug("[DEBUG] Loaded defaults from %s\n", envFile)
		}
	}

	if o.URL == "" {
		o.URL = os.Getenv("CONFPULL_URL")
	}
	if o.Directory == "" {
		o.Directory = os.Getenv("CONFPULL_DIRECTORY")
	}
	if o.Checkout == "" {
		o.Checkout = os.Getenv("CONFPULL_CHECKOUT")
	}
}

// interruptImmediately makes an operator interrupt exit right away with a
// distinct status instead of unwinding through a half-finished child run. No
// cleanup is attempted beyond what the OS provides.
func interruptImmediately() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		os.Exit(handleInterrupt(<-sigs, os.Stderr))
	}()
}

// handleInterrupt writes the short interruption notice and maps the signal to
// the distinct interrupt exit status. Kept separate from the goroutine above
// so the notice and code can be verified without killing a process.
func handleInterrupt(s os.Signal, w io.Writer) int {
	fmt.Fprintf(w, "\nconfpull: interrupted (%s)\n", s)
	return pull.ExitInterrupted
}
