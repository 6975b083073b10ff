package pull

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"confpull/internal/logger"
)

// CandidateStatus classifies the probe of one playbook candidate. Keeping
// "missing" distinct from "unreadable" (and both distinct from other I/O
// failures) makes the eventual "no playbook found" message diagnosable.
type CandidateStatus int

const (
	// CandidateFound means the file exists and is readable.
	CandidateFound CandidateStatus = iota
	// CandidateMissing means no file exists at the candidate path.
	CandidateMissing
	// CandidateUnreadable means the file exists but could not be opened for reading.
	CandidateUnreadable
)

// String renders the status for diagnostics.
func (s CandidateStatus) String() string {
	switch s {
	case CandidateFound:
		return "found"
	case CandidateMissing:
		return "does not exist"
	case CandidateUnreadable:
		return "is not readable"
	default:
		return "unknown"
	}
}

// Candidate is one evaluated entry of the ordered playbook search.
type Candidate struct {
	Path   string
	Status CandidateStatus
	Err    error // underlying cause for CandidateUnreadable
}

// ErrNoPlaybook signals that the ordered search exhausted every candidate.
// The orchestrator treats it as fatal and never invokes the playbook tool.
var ErrNoPlaybook = errors.New("no playbook found")

// probeCandidate checks a single path by actually opening it, so permission
// problems are classified as unreadable rather than lumped in with missing.
func probeCandidate(path string) Candidate {
	f, err := os.Open(path)
	if err == nil {
		_ = f.Close()
		return Candidate{Path: path, Status: CandidateFound}
	}
	if errors.Is(err, fs.ErrNotExist) {
		return Candidate{Path: path, Status: CandidateMissing}
	}
	return Candidate{Path: path, Status: CandidateUnreadable, Err: err}
}

// SelectPlaybook resolves which playbook inside dir to run.
//
// An explicitly named playbook is a strict override: it is the only candidate
// and must exist as named, with no fallback to the hostname/local chain even
// when those files exist. Otherwise the chain is <fqdn>.yml, then
// <short>.yml, then local.yml, stopping at the first readable file.
//
// The returned slice holds every candidate that was evaluated, in order, with
// its classified status; on failure the caller logs them and the error wraps
// ErrNoPlaybook.
func SelectPlaybook(dir, positional, fqdn, short string) (string, []Candidate, error) {
	var names []string
	if positional != "" {
		names = []string{positional}
	} else {
		names = []string{fqdn + ".yml", short + ".yml", "local.yml"}
	}

	candidates := make([]Candidate, 0, len(names))
	for _, name := range names {
		c := probeCandidate(filepath.Join(dir, name))
		candidates = append(candidates, c)
		if c.Status == CandidateFound {
			logger.Debug("[DEBUG] Selected playbook %s\n", c.Path)
			return c.Path, candidates, nil
		}
		logger.Debug("[DEBUG] Playbook candidate %s %s\n", c.Path, c.Status)
	}
	return "", candidates, fmt.Errorf("%w in %s", ErrNoPlaybook, dir)
}

// checkPlaybookYAML parses the selected playbook as YAML and warns when it
// does not parse. Existence and readability are the only hard requirements
// for selection, so a malformed file is surfaced early but the playbook tool
// still gets to render its own, usually better, error.
func checkPlaybookYAML(path string) {
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("[WARN] Could not read %s for a syntax check: %v\n", path, err)
		return
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		logger.Warn("[WARN] Playbook %s does not parse as YAML: %v\n", path, err)
	}
}
