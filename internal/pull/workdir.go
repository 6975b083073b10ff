package pull

import (
	"fmt"
	"os"
	"path/filepath"

	"confpull/internal/logger"
)

// defaultWorkDir derives the checkout destination used when the operator did
// not pick one: a per-machine directory under the invoking user's home area.
// Namespacing by FQDN keeps machines that share a home directory over a
// network filesystem from clobbering each other's checkouts.
func defaultWorkDir(home, fqdn string) string {
	return filepath.Join(home, ".confpull", fqdn)
}

// ResolveWorkDir turns the optional --directory value into an absolute,
// existing, writable working directory. An empty explicit path falls back to
// the home-derived default. Any failure here is a fatal configuration error:
// there is nowhere to put the checkout.
func ResolveWorkDir(explicit, fqdn string) (string, error) {
	dir := explicit
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to locate home directory: %w", err)
		}
		dir = defaultWorkDir(home, fqdn)
		logger.Debug("[DEBUG] No directory given, derived %s\n", dir)
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create working directory %s: %w", dir, err)
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s to an absolute path: %w", dir, err)
	}

	// Probe writability up front so a read-only mount fails here, with a clear
	// message, instead of inside the sync tool.
	probe, err := os.CreateTemp(abs, ".confpull-probe-*")
	if err != nil {
		return "", fmt.Errorf("working directory %s is not writable: %w", abs, err)
	}
	name := probe.Name()
	_ = probe.Close()
	_ = os.Remove(name)

	return abs, nil
}
