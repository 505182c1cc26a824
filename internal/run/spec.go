// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package run

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aibor/efirun/internal/qemu"
)

const (
	defaultTriple      = "x86_64-unknown-uefi"
	defaultProfile     = "debug"
	defaultBuildDir    = "target"
	defaultESPDir      = "esp"
	defaultFirmwareDir = "/usr/share/OVMF"

	codeFirmwareFile = "OVMF_CODE.fd"
	varsFirmwareFile = "OVMF_VARS.fd"
)

// bootFileNames maps the architecture part of a target triple to the
// removable-media boot file name the firmware looks for.
var bootFileNames = map[string]string{
	"x86_64":  "BOOTX64.EFI",
	"i686":    "BOOTIA32.EFI",
	"aarch64": "BOOTAA64.EFI",
	"riscv64": "BOOTRISCV64.EFI",
}

var (
	// ErrNoTarget is returned if no target name is set.
	ErrNoTarget = errors.New("no target name given")

	// ErrUnknownTriple is returned if no boot file name can be derived from
	// the target triple and none is set explicitly.
	ErrUnknownTriple = errors.New("no boot file name known for triple")

	// ErrNotRegularFile is returned if a file that must be a regular file is
	// not.
	ErrNotRegularFile = errors.New("not a regular file")
)

// Spec describes a single [Run].
//
// All path conventions of the workflow are explicit, overridable fields, so
// a complete run can be redirected into an isolated directory tree.
type Spec struct {
	// Name of the example to build and boot.
	Target string

	// Target triple to compile for.
	Triple string

	// Build profile, "debug" or "release".
	Profile string

	// Cargo binary to use. Empty means CARGO env var or "cargo" from PATH.
	Cargo string

	// Toolchain output directory.
	BuildDir string

	// Root of the ESP staging directory tree.
	ESPDir string

	// File name of the boot slot inside the staging tree. Derived from the
	// triple if empty.
	BootFileName string

	// Directory holding the reference firmware files.
	FirmwareDir string

	// Explicit reference firmware paths. Derived from FirmwareDir if empty.
	OVMFCode string
	OVMFVars string

	// Local firmware working copies, overwritten on every run.
	CodeLocal string
	VarsLocal string

	// If set, the staged tree is additionally written to this path as cpio
	// archive.
	BundlePath string

	// Print the emulator command instead of running the workflow.
	DryRun bool

	// Emulator parameters.
	Qemu qemu.CommandSpec
}

// ApplyDefaults fills all unset fields with the workflow's conventional
// values.
func (s *Spec) ApplyDefaults() error {
	if s.Triple == "" {
		s.Triple = defaultTriple
	}

	if s.Profile == "" {
		s.Profile = defaultProfile
	}

	if s.BuildDir == "" {
		s.BuildDir = defaultBuildDir
	}

	if s.ESPDir == "" {
		s.ESPDir = defaultESPDir
	}

	if s.BootFileName == "" {
		arch, _, _ := strings.Cut(s.Triple, "-")

		name, exists := bootFileNames[arch]
		if !exists {
			return fmt.Errorf("%w: %s", ErrUnknownTriple, s.Triple)
		}

		s.BootFileName = name
	}

	if s.FirmwareDir == "" {
		s.FirmwareDir = defaultFirmwareDir
	}

	if s.OVMFCode == "" {
		s.OVMFCode = filepath.Join(s.FirmwareDir, codeFirmwareFile)
	}

	if s.OVMFVars == "" {
		s.OVMFVars = filepath.Join(s.FirmwareDir, varsFirmwareFile)
	}

	if s.CodeLocal == "" {
		s.CodeLocal = codeFirmwareFile
	}

	if s.VarsLocal == "" {
		s.VarsLocal = varsFirmwareFile
	}

	return nil
}

// Validate checks the spec before any step runs.
//
// The workflow cannot proceed without the reference firmware files, so their
// absence is caught here instead of midway through staging.
func (s *Spec) Validate() error {
	if s.Target == "" {
		return ErrNoTarget
	}

	for _, file := range []string{s.OVMFCode, s.OVMFVars} {
		err := validateFilePath(file)
		if err != nil {
			return fmt.Errorf("reference firmware: %w", err)
		}
	}

	return nil
}

func validateFilePath(name string) error {
	stat, err := os.Stat(name)
	if err != nil {
		return err
	}

	if !stat.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotRegularFile, name)
	}

	return nil
}
