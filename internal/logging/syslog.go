// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package logging

import (
	"io"
	"log/syslog"
	"strconv"

	agenterrors "github.com/ovn-bgp/ovn-bgp-agent/internal/errors"
)

// SyslogConfig configures an optional remote syslog sink.
type SyslogConfig struct {
	Enabled  bool
	Host     string
	Port     int
	Protocol string
	Tag      string
	Facility syslog.Priority
}

// DefaultSyslogConfig returns a disabled syslog sink with production defaults
// filled in, so enabling it only requires setting Host.
func DefaultSyslogConfig() SyslogConfig {
	return SyslogConfig{
		Enabled:  false,
		Port:     514,
		Protocol: "udp",
		Tag:      "ovn-bgp-agent",
		Facility: 1,
	}
}

// NewSyslogWriter dials a remote syslog daemon and returns a writer suitable
// for a Logger's destination. Zero-valued Port/Protocol/Tag are defaulted.
func NewSyslogWriter(cfg SyslogConfig) (io.Writer, error) {
	if cfg.Host == "" {
		return nil, agenterrors.New(agenterrors.KindValidation, "syslog: host is required")
	}
	if cfg.Port == 0 {
		cfg.Port = 514
	}
	if cfg.Protocol == "" {
		cfg.Protocol = "udp"
	}
	if cfg.Tag == "" {
		cfg.Tag = "ovn-bgp-agent"
	}

	addr := cfg.Host + ":" + strconv.Itoa(cfg.Port)

	w, err := syslog.Dial(cfg.Protocol, addr, cfg.Facility|syslog.LOG_INFO, cfg.Tag)
	if err != nil {
		return nil, agenterrors.Wrap(err, agenterrors.KindUnavailable, "syslog: dial failed")
	}
	return w, nil
}
