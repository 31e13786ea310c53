// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package exposure implements the route-exposure reconciler: the state
// machine that maps southbound database events and a periodic full sync
// onto idempotent mutations of the host network surface, local flow tables,
// and the routing daemon's VRF leak.
//
// Every public operation acquires a single process-wide lock before
// touching either its in-memory bookkeeping or the kernel, so concurrent
// event delivery and a concurrently-running sync can never interleave.
package exposure

import (
	"context"
	"sync"

	"github.com/ovn-bgp/ovn-bgp-agent/internal/frr"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/hns"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/logging"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/ovsclient"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/sbdb"
)

// crlrpInfo is the bookkeeping kept for a locally-hosted router's
// chassisredirect port.
type crlrpInfo struct {
	RouterDatapath   string
	ProviderDatapath string
	IPs              []string
	// NATIPs holds the router's distributed NAT/floating addresses bound
	// to this chassisredirect port - exposed like a patch port's FIPs,
	// with no lladdr and no NDP proxy.
	NATIPs []string
}

// Config parameterizes an Engine.
type Config struct {
	Chassis              string
	DeviceName           string
	VRFName              string
	VRFTable             int
	OVSFlowCookie        uint64
	ExposeTenantNetworks bool
}

// Engine is the exposure reconciler. The zero value is not usable; build
// one with New.
type Engine struct {
	// mu is the serialization gate: every exported method takes it before
	// touching bookkeeping or the kernel.
	mu sync.Mutex

	sb  sbdb.Client
	hns hns.Surface
	ovs ovsclient.Client
	frr frr.Leaker
	log *logging.Logger

	cfg Config

	bridgeMappings map[string]string // provider network name -> bridge
	localCRLRPs    map[string]crlrpInfo
	localLRPs      map[string]bool

	readyOnce sync.Once
	ready     chan struct{}
}

// New constructs an Engine. sb may be nil at construction time and set
// later via SetSouthbound, to support a startup sequence where the
// southbound client's construction can itself fail and retry.
func New(cfg Config, sb sbdb.Client, surface hns.Surface, ovs ovsclient.Client, leaker frr.Leaker, log *logging.Logger) *Engine {
	return &Engine{
		sb:             sb,
		hns:            surface,
		ovs:            ovs,
		frr:            leaker,
		log:            log,
		cfg:            cfg,
		bridgeMappings: make(map[string]string),
		localCRLRPs:    make(map[string]crlrpInfo),
		localLRPs:      make(map[string]bool),
		ready:          make(chan struct{}),
	}
}

// SetSouthbound attaches the southbound client once its construction
// completes, and releases anything blocked in WaitReady. Safe to call at
// most meaningfully once; later calls just replace the client.
func (e *Engine) SetSouthbound(sb sbdb.Client) {
	e.mu.Lock()
	e.sb = sb
	e.mu.Unlock()
	e.readyOnce.Do(func() { close(e.ready) })
}

// WaitReady blocks until SetSouthbound has been called, or ctx is done.
// Event handlers that fire during startup construction must not observe a
// nil southbound client; they block here instead.
func (e *Engine) WaitReady(ctx context.Context) error {
	select {
	case <-e.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Start leaks the VRF into the routing daemon's BGP instance. It is called
// once per process, before the southbound client is constructed.
func (e *Engine) Start(as uint32, routerID string) error {
	return e.frr.VRFLeak(e.cfg.VRFName, as, routerID)
}
