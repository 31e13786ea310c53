// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

//go:build linux
// +build linux

package ovsclient

import (
	"fmt"

	"github.com/google/nftables"
	"github.com/google/nftables/expr"

	agenterrors "github.com/ovn-bgp/ovn-bgp-agent/internal/errors"
)

// NFTFlowLedger is a native alternative to shelling out to ovs-ofctl for
// flow bookkeeping: it records the agent's owned flow-equivalent rules as
// counter-carrying nftables rules (one per steered match, tagged with the
// rule's OVS cookie as rule UserData) in a dedicated table, and can
// enumerate them by walking that table's rules and filtering on the tagged
// cookie. It has no method that removes tagged rules. It exists as an alternative bookkeeping backend for
// agents running alongside OVS's own flow tables without shelling out at
// all.
type NFTFlowLedger struct {
	tableName string
	chainName string
}

// NewNFTFlowLedger returns a ledger backed by the given nftables table.
func NewNFTFlowLedger(tableName string) *NFTFlowLedger {
	if tableName == "" {
		tableName = "ovn-bgp-agent"
	}
	return &NFTFlowLedger{tableName: tableName, chainName: "flow_tags"}
}

// Tag records that match is owned by cookie, so a later Tagged call can find
// it again.
func (l *NFTFlowLedger) Tag(match string, cookie uint64) error {
	conn, err := nftables.New()
	if err != nil {
		return agenterrors.Wrap(err, agenterrors.KindUnavailable, "ovsclient: nftables connect")
	}

	table := conn.AddTable(&nftables.Table{Name: l.tableName, Family: nftables.TableFamilyINet})
	chain := conn.AddChain(&nftables.Chain{Table: table, Name: l.chainName})

	conn.AddRule(&nftables.Rule{
		Table:    table,
		Chain:    chain,
		UserData: []byte(fmt.Sprintf("%d:%s", cookie, match)),
		Exprs:    []expr.Any{&expr.Counter{}},
	})

	return agenterrors.Wrap(conn.Flush(), agenterrors.KindUnavailable, "ovsclient: nftables flush")
}

// Tagged returns every match tagged with cookie.
func (l *NFTFlowLedger) Tagged(cookie uint64) ([]string, error) {
	conn, err := nftables.New()
	if err != nil {
		return nil, agenterrors.Wrap(err, agenterrors.KindUnavailable, "ovsclient: nftables connect")
	}

	tables, err := conn.ListTables()
	if err != nil {
		return nil, agenterrors.Wrap(err, agenterrors.KindUnavailable, "ovsclient: list tables")
	}

	var out []string
	for _, t := range tables {
		if t.Name != l.tableName || t.Family != nftables.TableFamilyINet {
			continue
		}
		chains, err := conn.ListChains()
		if err != nil {
			continue
		}
		for _, c := range chains {
			if c.Table.Name != l.tableName || c.Name != l.chainName {
				continue
			}
			rules, err := conn.GetRules(t, c)
			if err != nil {
				continue
			}
			for _, r := range rules {
				prefix := fmt.Sprintf("%d:", cookie)
				if len(r.UserData) > len(prefix) && string(r.UserData[:len(prefix)]) == prefix {
					out = append(out, string(r.UserData[len(prefix):]))
				}
			}
		}
	}
	return out, nil
}
