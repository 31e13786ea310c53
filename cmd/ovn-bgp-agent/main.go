// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Command ovn-bgp-agent bridges a southbound virtual-network control plane
// with a host-local BGP-speaking routing daemon: it exposes provider-VM,
// floating-IP, and router-gateway addresses by assigning them to a dummy
// interface inside a dedicated VRF, and programs the kernel policy-routing
// tables and flow-steering rules return traffic needs.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ovn-bgp/ovn-bgp-agent/internal/config"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/exposure"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/frr"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/hns"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/logging"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/ovsclient"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/sbdb"
)

func main() {
	configPath := flag.String("config", "/etc/ovn-bgp-agent/ovn-bgp-agent.hcl", "path to HCL config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := logging.New("engine", cfg.LoggingConfig())
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Infof("shutting down")
		cancel()
	}()

	ovsClient := ovsclient.NewOVSVSwitchClient()
	chassis, err := ovsClient.ChassisName()
	if err != nil {
		log.Fatalf("discover chassis name: %v", err)
	}

	eng := exposure.New(exposure.Config{
		Chassis:              chassis,
		DeviceName:           cfg.DeviceName,
		VRFName:              cfg.VRF.Name,
		VRFTable:             cfg.VRF.Table,
		OVSFlowCookie:        cfg.OVSFlowCookie,
		ExposeTenantNetworks: cfg.ExposeTenantNetworks,
	}, nil, hns.NewManager(cfg.DeviceName), ovsClient, frr.NewVtyshLeaker(), logger)

	if err := eng.Start(cfg.BGP.AS, cfg.BGP.RouterID); err != nil {
		log.Fatalf("leak vrf into bgp: %v", err)
	}

	// The southbound client's construction is an out-of-scope
	// collaborator (no OVSDB wire implementation lives in this module);
	// a production build wires a real sbdb.Client/EventSource pair here,
	// retrying construction without Chassis_Private on older schemas.
	// SetSouthbound releases anything blocked in Engine.WaitReady.
	sb, events := bootstrapSouthbound(cfg)
	eng.SetSouthbound(sb)

	if err := eng.Sync(); err != nil {
		logger.Errorf("initial sync: %v", err)
	}

	if err := eng.Run(ctx, events, cfg.SyncIntervalDuration()); err != nil && ctx.Err() == nil {
		logger.Errorf("event loop: %v", err)
	}
}

// bootstrapSouthbound returns the southbound client and event stream the
// engine runs against. No real wire implementation ships in this module: it
// returns an empty in-memory sbdb.Fake, does not connect to any configured
// endpoint, and has no retry without Chassis_Private. Operators supply a
// real client through the sbdb.Client and sbdb.EventSource interfaces.
func bootstrapSouthbound(cfg config.Config) (sbdb.Client, sbdb.EventSource) {
	fake := sbdb.NewFake()
	_ = sbdb.EventSet(cfg.ExposeTenantNetworks)
	return fake, fake
}
