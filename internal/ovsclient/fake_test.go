// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package ovsclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFake_EnsureFlowsIsIdempotent(t *testing.T) {
	f := NewFake("chassis-1", "tcp:127.0.0.1:6642")

	want := []FlowRule{{Cookie: 0x1f007, Match: "priority=100,in_port=1", Actions: "output:2"}}

	assert.NoError(t, f.EnsureFlows("br-ex", want))
	assert.NoError(t, f.EnsureFlows("br-ex", want))

	flows, err := f.FlowsByCookie("br-ex", 0x1f007)
	assert.NoError(t, err)
	assert.Len(t, flows, 1)
}

func TestFake_RemoveFlows(t *testing.T) {
	f := NewFake("chassis-1", "tcp:127.0.0.1:6642")

	rule := FlowRule{Cookie: 0x1f007, Match: "priority=100,in_port=1", Actions: "output:2"}
	assert.NoError(t, f.EnsureFlows("br-ex", []FlowRule{rule}))
	assert.NoError(t, f.RemoveFlows("br-ex", []FlowRule{rule}))

	flows, err := f.FlowsByCookie("br-ex", 0x1f007)
	assert.NoError(t, err)
	assert.Empty(t, flows)
}

func TestParseBridgeMappings(t *testing.T) {
	m := ParseBridgeMappings("physnet1:br-ex,physnet2:br-ex2")
	assert.Equal(t, map[string]string{"physnet1": "br-ex", "physnet2": "br-ex2"}, m)
}
