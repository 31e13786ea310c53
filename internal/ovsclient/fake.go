// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package ovsclient

import "sort"

// Fake is an in-memory Client used throughout the exposure engine's test
// suite.
type Fake struct {
	Chassis  string
	Remote   string
	Bridges  map[string]string
	flows    map[string][]FlowRule // bridge -> flows
}

// NewFake returns a Fake with empty bridge mappings.
func NewFake(chassis, remote string) *Fake {
	return &Fake{
		Chassis: chassis,
		Remote:  remote,
		Bridges: make(map[string]string),
		flows:   make(map[string][]FlowRule),
	}
}

func (f *Fake) ChassisName() (string, error)               { return f.Chassis, nil }
func (f *Fake) OVNRemote() (string, error)                  { return f.Remote, nil }
func (f *Fake) BridgeMappings() (map[string]string, error)  { return f.Bridges, nil }

func (f *Fake) EnsureFlows(bridge string, want []FlowRule) error {
	existing := make(map[string]bool)
	for _, fl := range f.flows[bridge] {
		existing[flowKey(fl)] = true
	}
	for _, fl := range want {
		if existing[flowKey(fl)] {
			continue
		}
		f.flows[bridge] = append(f.flows[bridge], fl)
	}
	return nil
}

func (f *Fake) FlowsByCookie(bridge string, cookie uint64) ([]FlowRule, error) {
	var out []FlowRule
	for _, fl := range f.flows[bridge] {
		if fl.Cookie == cookie {
			out = append(out, fl)
		}
	}
	return out, nil
}

func (f *Fake) RemoveFlows(bridge string, remove []FlowRule) error {
	toRemove := make(map[string]bool, len(remove))
	for _, fl := range remove {
		toRemove[flowKey(fl)] = true
	}
	var kept []FlowRule
	for _, fl := range f.flows[bridge] {
		if !toRemove[flowKey(fl)] {
			kept = append(kept, fl)
		}
	}
	f.flows[bridge] = kept
	return nil
}

// AllFlows returns every flow the Fake holds, sorted by bridge then match,
// for deterministic test assertions.
func (f *Fake) AllFlows() []FlowRule {
	var out []FlowRule
	for _, fls := range f.flows {
		out = append(out, fls...)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Bridge != out[j].Bridge {
			return out[i].Bridge < out[j].Bridge
		}
		return out[i].Match < out[j].Match
	})
	return out
}
