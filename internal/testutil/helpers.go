// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package testutil

import (
	"os"
	"testing"
)

// RequireVM skips the test if the OVN_BGP_AGENT_VM_TEST environment variable
// is not set. This ensures that tests requiring real kernel capabilities
// (netlink, network namespaces) are only run in the proper environment.
func RequireVM(t *testing.T) {
	t.Helper()
	if os.Getenv("OVN_BGP_AGENT_VM_TEST") == "" {
		t.Skip("Skipping test: requires OVN_BGP_AGENT_VM_TEST environment")
	}
}
