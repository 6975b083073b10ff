package pull

import (
	"fmt"
	"os"
	"strings"
)

// HostNames probes the local machine's identity and returns both forms used
// for playbook candidates: the fully-qualified name as the kernel reports it,
// and the short name (the portion before the first dot). A hostname with no
// domain part yields the same string for both.
func HostNames() (fqdn, short string, err error) {
	fqdn, err = os.Hostname()
	if err != nil {
		return "", "", fmt.Errorf("failed to determine hostname: %w", err)
	}
	short, _, _ = strings.Cut(fqdn, ".")
	return fqdn, short, nil
}

// LimitExpression builds the host-limit expression handed to the playbook
// tool so plays in the checkout only apply to this machine, whichever of its
// names the playbook addresses.
func LimitExpression(fqdn, short string) string {
	return fmt.Sprintf("%s,%s,127.0.0.1,localhost", fqdn, short)
}
