package pull

import (
	"math/rand"
	"os"
	"time"

	"confpull/internal/extravars"
	"confpull/internal/logger"
	"confpull/internal/runner"
	"confpull/internal/state"
)

// Exit codes not taken from a child process.
const (
	// ExitOK covers success, including the "no change, skipped" path.
	ExitOK = 0
	// ExitFailure covers generic failures: unusable options, unresolvable
	// playbook, a tool that could not be started.
	ExitFailure = 1
	// ExitInterrupted is returned when the operator interrupts the run,
	// 128 + SIGINT by convention, distinct from anything the tools return.
	ExitInterrupted = 130
)

// Orchestrator drives one pull run end to end: splay, sync, playbook
// selection, playbook run, run record, purge.
type Orchestrator struct {
	opts *Options
	run  runner.Runner
}

// New builds an Orchestrator around validated options and a command runner.
func New(opts *Options, run runner.Runner) *Orchestrator {
	return &Orchestrator{opts: opts, run: run}
}

// Run executes the whole sequence and returns the process exit code. Fatal
// conditions are logged here, close to their cause, rather than bubbled up as
// errors; the caller's only job is to exit with the returned code.
func (p *Orchestrator) Run() int {
	o := p.opts

	if err := o.Validate(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		return ExitFailure
	}
	if err := extravars.Validate(o.ExtraVars); err != nil {
		logger.Error("[ERROR] %v\n", err)
		return ExitFailure
	}

	p.splay()

	fqdn, short, err := HostNames()
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return ExitFailure
	}

	workdir, err := ResolveWorkDir(o.Directory, fqdn)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return ExitFailure
	}

	if prev := state.Load(workdir); prev != nil {
		logger.Debug("[DEBUG] Previous run: %s playbook=%s exit=%d\n",
			prev.Timestamp.Format(time.RFC3339), prev.Playbook, prev.PlaybookExit)
	}

	logger.Info("[INFO] Syncing %s into %s\n", o.URL, workdir)
	syncRes, err := p.run.Run(runner.Command{Name: o.syncCommand(), Args: SyncArgs(o, workdir, fqdn, short)})
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return ExitFailure
	}

	if syncRes.ExitCode != 0 {
		if !o.Force {
			logger.Error("[ERROR] Repository sync failed with exit code %d\n", syncRes.ExitCode)
			return syncRes.ExitCode
		}
		logger.Warn("[WARN] Repository sync failed with exit code %d, continuing because --force is set\n", syncRes.ExitCode)
	}

	changed := SyncChanged(syncRes.Stdout + syncRes.Stderr)
	if syncRes.ExitCode == 0 && o.OnlyIfChanged && !changed {
		logger.Info("[INFO] Repository has not changed, skipping playbook run\n")
		return ExitOK
	}

	playbook, candidates, err := SelectPlaybook(workdir, o.Playbook, fqdn, short)
	if err != nil {
		for _, c := range candidates {
			logger.Error("[ERROR] Playbook %s %s\n", c.Path, c.Status)
		}
		logger.Error("[ERROR] %v\n", err)
		return ExitFailure
	}
	checkPlaybookYAML(playbook)

	// Relative references inside the playbook (roles, files, templates)
	// resolve against the checkout, so run from inside it.
	if err := os.Chdir(workdir); err != nil {
		logger.Error("[ERROR] Failed to enter working directory %s: %v\n", workdir, err)
		return ExitFailure
	}

	logger.Info("[INFO] Running playbook %s\n", playbook)
	playRes, err := p.run.Run(runner.Command{
		Name: o.playbookCommand(),
		Args: PlaybookArgs(o, playbook, fqdn, short),
		Dir:  workdir,
	})
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return ExitFailure
	}

	if o.Purge {
		// The directory is about to go away, so no run record.
		PurgeWorkDir(workdir)
	} else {
		state.Save(workdir, &state.RunRecord{
			Timestamp:    time.Now(),
			URL:          o.URL,
			Revision:     o.Checkout,
			Playbook:     playbook,
			Changed:      changed,
			SyncExit:     syncRes.ExitCode,
			PlaybookExit: playRes.ExitCode,
		})
	}

	return playRes.ExitCode
}

// splay sleeps a uniform random number of whole seconds in [0, bound] so a
// fleet on the same cron schedule does not hit the remote repository at once.
// Options validation already rejected unparsable bounds.
func (p *Orchestrator) splay() {
	bound, err := p.opts.SleepSeconds()
	if err != nil || bound <= 0 {
		return
	}
	delay := splayDelay(bound)
	logger.Info("[INFO] Sleeping %s before the sync (splay bound %ds)\n", delay, bound)
	time.Sleep(delay)
}

// splayDelay picks a uniform random delay in [0, bound] whole seconds.
func splayDelay(bound int) time.Duration {
	if bound <= 0 {
		return 0
	}
	return time.Duration(rand.Intn(bound+1)) * time.Second
}
