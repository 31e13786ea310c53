// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package config loads the agent's HCL configuration file.
package config

import (
	"log/syslog"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	agenterrors "github.com/ovn-bgp/ovn-bgp-agent/internal/errors"
	"github.com/ovn-bgp/ovn-bgp-agent/internal/logging"
)

// BGP holds the parameters passed to the routing daemon's VRF leak call.
//
// @example:
//
//	bgp {
//	  as        = 65001
//	  router_id = "10.0.0.1"
//	}
type BGP struct {
	AS       uint32 `hcl:"as"`
	RouterID string `hcl:"router_id"`
}

// VRF names the routing domain the exposure dummy device is enslaved to.
//
// @default: { name = "bgp-vrf", table = 10200 }
type VRF struct {
	Name  string `hcl:"name,optional"`
	Table int    `hcl:"table,optional"`
}

// Syslog mirrors logging.SyslogConfig as an HCL block.
type Syslog struct {
	Enabled  bool   `hcl:"enabled,optional"`
	Host     string `hcl:"host,optional"`
	Port     int    `hcl:"port,optional"`
	Protocol string `hcl:"protocol,optional"`
	Tag      string `hcl:"tag,optional"`
	Facility int    `hcl:"facility,optional"`
}

// Config is the agent's full HCL-decoded configuration.
//
// @default: see DefaultConfig
type Config struct {
	// ExposeTenantNetworks enables tenant-subnet and tenant-VM exposure
	// in addition to provider-network and floating-IP exposure.
	//
	// @default: false
	ExposeTenantNetworks bool `hcl:"expose_tenant_networks,optional"`

	BGP BGP `hcl:"bgp,block"`

	VRF VRF `hcl:"vrf,block"`

	// OVSDBConnection is the local virtual-switch database endpoint, e.g.
	// "unix:/var/run/openvswitch/db.sock".
	OVSDBConnection string `hcl:"ovsdb_connection"`

	// DeviceName is the dummy interface that exposed addresses are assigned to.
	//
	// @default: "bgp-nic"
	DeviceName string `hcl:"device_name,optional"`

	// OVSFlowCookie tags the baseline OpenFlow rules this agent owns on
	// provider bridges, so sync can distinguish its rules from others'.
	//
	// @default: 0x1f007
	OVSFlowCookie uint64 `hcl:"ovs_flow_cookie,optional"`

	// SyncInterval is the cadence of the periodic full reconciliation.
	//
	// @default: "60s"
	SyncInterval string `hcl:"sync_interval,optional"`

	// LogLevel is one of debug, info, warn, error.
	//
	// @default: "info"
	// @enum: debug, info, warn, error
	LogLevel string `hcl:"log_level,optional"`

	SyslogBlock *Syslog `hcl:"syslog,block"`
}

// DefaultConfig returns the defaults applied before decoding.
func DefaultConfig() Config {
	return Config{
		ExposeTenantNetworks: false,
		VRF:                  VRF{Name: "bgp-vrf", Table: 10200},
		DeviceName:           "bgp-nic",
		OVSFlowCookie:        0x1f007,
		SyncInterval:         "60s",
		LogLevel:             "info",
	}
}

// SyncIntervalDuration parses SyncInterval, falling back to 60s on error.
func (c Config) SyncIntervalDuration() time.Duration {
	d, err := time.ParseDuration(c.SyncInterval)
	if err != nil {
		return 60 * time.Second
	}
	return d
}

// LoggingConfig builds a logging.Config from the decoded syslog block.
func (c Config) LoggingConfig() logging.Config {
	lc := logging.Config{Level: logging.ParseLevel(c.LogLevel)}
	if c.SyslogBlock != nil {
		lc.Syslog = &logging.SyslogConfig{
			Enabled:  c.SyslogBlock.Enabled,
			Host:     c.SyslogBlock.Host,
			Port:     c.SyslogBlock.Port,
			Protocol: c.SyslogBlock.Protocol,
			Tag:      c.SyslogBlock.Tag,
			Facility: syslog.Priority(c.SyslogBlock.Facility),
		}
	}
	return lc
}

// Load parses the HCL file at path into a Config, with defaults applied for
// every optional field the file omits.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, agenterrors.Wrapf(diags, agenterrors.KindValidation, "config: parse %s", path)
	}

	if diags := gohcl.DecodeBody(f.Body, nil, &cfg); diags.HasErrors() {
		return Config{}, agenterrors.Wrapf(diags, agenterrors.KindValidation, "config: decode %s", path)
	}

	if cfg.VRF.Name == "" {
		cfg.VRF.Name = "bgp-vrf"
	}
	if cfg.VRF.Table == 0 {
		cfg.VRF.Table = 10200
	}
	if cfg.DeviceName == "" {
		cfg.DeviceName = "bgp-nic"
	}
	if cfg.SyncInterval == "" {
		cfg.SyncInterval = "60s"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}

	return cfg, nil
}
