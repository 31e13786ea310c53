// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package netutil

import "testing"

func TestParsePortMAC(t *testing.T) {
	pa, ok := ParsePortMAC("fa:16:3e:aa:bb:cc 10.0.0.5/32")
	if !ok {
		t.Fatal("expected ok")
	}
	if pa.HWAddr != "fa:16:3e:aa:bb:cc" || len(pa.IPs) != 1 || pa.IPs[0] != "10.0.0.5/32" {
		t.Errorf("unexpected result: %+v", pa)
	}
}

func TestParsePortMAC_DualStack(t *testing.T) {
	pa, ok := ParsePortMAC("fa:16:3e:aa:bb:cc 10.0.0.5/32 2001:db8::5/128")
	if !ok {
		t.Fatal("expected ok")
	}
	if len(pa.IPs) != 2 {
		t.Errorf("expected 2 ips, got %d", len(pa.IPs))
	}
}

func TestParsePortMAC_Malformed(t *testing.T) {
	if _, ok := ParsePortMAC("fa:16:3e:aa:bb:cc"); ok {
		t.Error("expected malformed mac field (no ip) to be rejected")
	}
	if _, ok := ParsePortMAC("fa:16:3e:aa:bb:cc 10.0.0.5/32 2001:db8::5/128 extra"); ok {
		t.Error("expected malformed mac field (too many fields) to be rejected")
	}
}
