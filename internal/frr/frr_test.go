// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package frr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFake_VRFLeak(t *testing.T) {
	f := &Fake{}
	assert.NoError(t, f.VRFLeak("bgp-vrf", 65001, "10.0.0.1"))
	assert.Equal(t, []FakeLeak{{VRF: "bgp-vrf", AS: 65001, RouterID: "10.0.0.1"}}, f.Leaked)
}
