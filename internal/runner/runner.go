package runner

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// Command describes one external tool invocation as a structured argument list.
// Arguments are passed to the process-invocation API directly, never joined
// into a shell string, so no shell-quoting rules apply.
type Command struct {
	Name string   // Program to run, resolved via PATH
	Args []string // Arguments, in order, excluding the program name
	Dir  string   // Working directory for the child; empty means inherit
}

// Result carries the outcome of a finished invocation: the child's exit code
// and a captured copy of everything it wrote while the same bytes were being
// relayed live to the caller.
type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes commands. The one real implementation streams to the
// terminal; tests substitute a recording fake.
type Runner interface {
	Run(c Command) (Result, error)
}

// Streaming runs commands with their output relayed to Out/Err as it is
// produced, while also capturing it for inspection. A long-running child must
// show progress, so output is never buffered silently.
type Streaming struct {
	Out io.Writer
	Err io.Writer
}

// NewStreaming returns a Streaming runner wired to the process's own
// stdout/stderr, the configuration used for real invocations.
func NewStreaming() *Streaming {
	return &Streaming{Out: os.Stdout, Err: os.Stderr}
}

// Run executes the command synchronously. The child inherits stdin so
// interactive prompts (for example a privilege-escalation password) still work.
//
// A non-zero child exit is not an error here: it comes back as Result.ExitCode
// and the caller applies its own policy. An error return means the command
// could not be run at all (program missing, directory invalid).
func (s *Streaming) Run(c Command) (Result, error) {
	var outBuf, errBuf bytes.Buffer

	cmd := exec.Command(c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = os.Stdin
	cmd.Stdout = io.MultiWriter(s.Out, &outBuf)
	cmd.Stderr = io.MultiWriter(s.Err, &errBuf)

	err := cmd.Run()
	res := Result{
		Stdout: outBuf.String(),
		Stderr: errBuf.String(),
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// The child ran and failed; report its code, not an error.
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("failed to run %s: %w", c.Name, err)
	}
	return res, nil
}
