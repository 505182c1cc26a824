// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"strconv"
)

const (
	defaultExecutable = "qemu-system-x86_64"
	defaultMachine    = "q35"

	// OVMF requires at least 1 GB of guest memory to set up its memory map.
	defaultMemory = 1024
	defaultSMP    = 1
)

// CommandSpec defines the parameters for a [Command] that boots a machine
// from UEFI firmware with an ESP directory attached as FAT disk.
type CommandSpec struct {
	// Path to the qemu-system binary.
	Executable string

	// QEMU machine type to use. Depends on the QEMU binary used.
	Machine string

	// CPU type to use. Depends on machine type and QEMU binary used.
	CPU string

	// Number of CPUs for the guest.
	SMP uint64

	// Memory for the machine in MB.
	Memory uint64

	// Disable KVM support.
	NoKVM bool

	// Path to the firmware code store. It is attached as the first pflash
	// drive and is never written by the guest.
	CodeFirmware string

	// Path to the firmware variable store. It is attached as the second
	// pflash drive. The guest persists NVRAM variables into it.
	VarsFirmware string

	// Path to the directory that is exposed to the guest as FAT formatted
	// writable disk.
	ESPDir string

	// ExtraArgs are extra arguments that are passed to the QEMU command.
	// They must not interfere with the essential arguments set by the command
	// itself or an error will be returned on [NewCommand].
	ExtraArgs []Argument
}

// ApplyDefaults adds default values to the given spec for all fields that are
// not set yet.
//
// KVM support is probed and disabled if not available, so the resulting
// command works on hosts without /dev/kvm access.
func (s *CommandSpec) ApplyDefaults() {
	if s.Executable == "" {
		s.Executable = defaultExecutable
	}

	if s.Machine == "" {
		s.Machine = defaultMachine
	}

	if s.Memory == 0 {
		s.Memory = defaultMemory
	}

	if s.SMP == 0 {
		s.SMP = defaultSMP
	}

	if !s.NoKVM {
		s.NoKVM = !KVMAvailable()
	}
}

// Validate checks that all required file parameters are present.
func (s *CommandSpec) Validate() error {
	if s.Executable == "" {
		return &ArgumentError{"QEMU executable must be set"}
	}

	if s.CodeFirmware == "" {
		return &ArgumentError{"firmware code store must be set"}
	}

	if s.VarsFirmware == "" {
		return &ArgumentError{"firmware variable store must be set"}
	}

	if s.ESPDir == "" {
		return &ArgumentError{"ESP directory must be set"}
	}

	return nil
}

// arguments compiles the argument list for the QEMU command.
//
// The two pflash drives keep their fixed order: code store first (unit 0),
// variable store second (unit 1). The ESP directory follows as writable
// virtual FAT drive.
func (s *CommandSpec) arguments() []Argument {
	args := []Argument{
		UniqueArg("machine", s.Machine),
	}

	if s.CPU != "" {
		args = append(args, UniqueArg("cpu", s.CPU))
	}

	if !s.NoKVM {
		args = append(args, UniqueArg("enable-kvm"))
	}

	args = append(args,
		UniqueArg("m", strconv.FormatUint(s.Memory, 10)),
		UniqueArg("smp", strconv.FormatUint(s.SMP, 10)),
		RepeatableArg("drive",
			"if=pflash", "format=raw", "unit=0", "readonly=on",
			"file="+s.CodeFirmware,
		),
		RepeatableArg("drive",
			"if=pflash", "format=raw", "unit=1",
			"file="+s.VarsFirmware,
		),
		RepeatableArg("drive",
			"format=raw", "file=fat:rw:"+s.ESPDir,
		),
	)

	return append(args, s.ExtraArgs...)
}
