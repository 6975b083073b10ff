// Package extravars validates the repeatable -e/--extra-vars assignments
// before they are forwarded to the playbook tool. Assignments come in three
// shapes: key=value pairs, inline structured data, and @file references to a
// YAML (or JSON, which YAML subsumes) variables file.
package extravars

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Validate checks every assignment and returns the first problem found. The
// assignments themselves are forwarded verbatim and in order; this only
// rejects input the playbook tool would fail on later, at a point where the
// error can still be reported as a usage error before any child process runs.
func Validate(assignments []string) error {
	for _, a := range assignments {
		if err := validateOne(a); err != nil {
			return err
		}
	}
	return nil
}

func validateOne(a string) error {
	switch {
	case a == "":
		return fmt.Errorf("empty extra-vars assignment")
	case strings.HasPrefix(a, "@"):
		return validateFileRef(strings.TrimPrefix(a, "@"))
	case strings.HasPrefix(a, "{") || strings.HasPrefix(a, "["):
		// Inline structured data must at least parse.
		var doc any
		if err := yaml.Unmarshal([]byte(a), &doc); err != nil {
			return fmt.Errorf("extra-vars %q is not valid structured data: %w", a, err)
		}
		return nil
	case strings.Contains(a, "="):
		return nil
	default:
		return fmt.Errorf("extra-vars %q is neither key=value, structured data, nor an @file reference", a)
	}
}

// validateFileRef reads and parses a variables file referenced as @path. A
// missing or malformed file is a usage error: there is no point starting the
// sync when the playbook run is already doomed.
func validateFileRef(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("extra-vars file %s could not be read: %w", path, err)
	}
	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("extra-vars file %s is not valid YAML: %w", path, err)
	}
	return nil
}
