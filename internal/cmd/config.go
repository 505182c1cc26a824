// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/BurntSushi/toml"

	"github.com/aibor/efirun/internal/run"
)

// localConfigFile is looked up in the working directory. Its values seed the
// defaults of the run spec. Command line flags win over it.
const localConfigFile = ".efirun.toml"

type localConfig struct {
	Triple      string `toml:"triple"`
	Profile     string `toml:"profile"`
	Cargo       string `toml:"cargo"`
	BuildDir    string `toml:"build_dir"`
	ESP         string `toml:"esp"`
	BootFile    string `toml:"boot_file"`
	FirmwareDir string `toml:"firmware_dir"`
	OVMFCode    string `toml:"ovmf_code"`
	OVMFVars    string `toml:"ovmf_vars"`
	QemuBin     string `toml:"qemu_bin"`
	Machine     string `toml:"machine"`
	CPU         string `toml:"cpu"`
	Memory      uint64 `toml:"memory"`
	SMP         uint64 `toml:"smp"`
	NoKVM       bool   `toml:"no_kvm"`
}

// applyLocalConfig reads the local config file from the given file system
// and applies all set values to the given spec.
//
// A missing file is not an error. Unknown keys are, so typos do not go
// unnoticed.
func applyLocalConfig(spec *run.Spec, fsys fs.FS, file string) error {
	data, err := fs.ReadFile(fsys, file)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var config localConfig

	meta, err := toml.Decode(string(data), &config)
	if err != nil {
		return fmt.Errorf("decode config file: %w", err)
	}

	if keys := meta.Undecoded(); len(keys) > 0 {
		return fmt.Errorf("%w: %s: %v", ErrUnknownConfigKey, file, keys)
	}

	config.applyTo(spec)

	return nil
}

func (c *localConfig) applyTo(spec *run.Spec) {
	setString(&spec.Triple, c.Triple)
	setString(&spec.Profile, c.Profile)
	setString(&spec.Cargo, c.Cargo)
	setString(&spec.BuildDir, c.BuildDir)
	setString(&spec.ESPDir, c.ESP)
	setString(&spec.BootFileName, c.BootFile)
	setString(&spec.FirmwareDir, c.FirmwareDir)
	setString(&spec.OVMFCode, c.OVMFCode)
	setString(&spec.OVMFVars, c.OVMFVars)
	setString(&spec.Qemu.Executable, c.QemuBin)
	setString(&spec.Qemu.Machine, c.Machine)
	setString(&spec.Qemu.CPU, c.CPU)

	if c.Memory != 0 {
		spec.Qemu.Memory = c.Memory
	}

	if c.SMP != 0 {
		spec.Qemu.SMP = c.SMP
	}

	if c.NoKVM {
		spec.Qemu.NoKVM = true
	}
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}
