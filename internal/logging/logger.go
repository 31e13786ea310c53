// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// Package logging provides the agent's structured-by-convention log output:
// a bracket-tagged component prefix over the standard library logger, with
// an optional syslog sink for centralized collection.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
)

// Level controls verbosity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel parses a level name, defaulting to LevelInfo on no match.
func ParseLevel(s string) Level {
	switch s {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Config selects the destination and verbosity of a Logger.
type Config struct {
	Level  Level
	Syslog *SyslogConfig
}

// Logger writes bracket-tagged lines, e.g. "[hns] ensured vrf bgp-vrf table 10200".
// New builds one Logger per component tag so log lines can be grepped by
// subsystem; the agent binary creates a single "engine" Logger.
type Logger struct {
	tag   string
	level Level
	out   *log.Logger
}

// New constructs a Logger tagged with component, writing to cfg's destination.
func New(component string, cfg Config) (*Logger, error) {
	var w io.Writer = os.Stderr
	if cfg.Syslog != nil && cfg.Syslog.Enabled {
		sw, err := NewSyslogWriter(*cfg.Syslog)
		if err != nil {
			return nil, err
		}
		w = sw
	}
	return &Logger{
		tag:   component,
		level: cfg.Level,
		out:   log.New(w, "", log.LstdFlags),
	}, nil
}

func (l *Logger) log(level Level, format string, args ...any) {
	if level < l.level {
		return
	}
	l.out.Printf("[%s] %s", l.tag, fmt.Sprintf(format, args...))
}

func (l *Logger) Debugf(format string, args ...any) { l.log(LevelDebug, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.log(LevelInfo, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.log(LevelWarn, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.log(LevelError, format, args...) }
