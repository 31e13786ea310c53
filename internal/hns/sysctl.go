// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

package hns

import (
	"os"
	"path/filepath"
	"strings"
)

// SystemController is the injectable seam over /proc/sys. Tests supply a
// fake so EnsureARPNDPEnabled can be exercised without real sysctl access.
type SystemController interface {
	ReadSysctl(path string) (string, error)
	WriteSysctl(path, value string) error
	IsNotExist(err error) bool
}

// RealSystemController reads and writes /proc/sys directly.
type RealSystemController struct{}

func (RealSystemController) ReadSysctl(path string) (string, error) {
	b, err := os.ReadFile(filepath.Join("/proc/sys", path))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (RealSystemController) WriteSysctl(path, value string) error {
	return os.WriteFile(filepath.Join("/proc/sys", path), []byte(value), 0o644)
}

func (RealSystemController) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}
