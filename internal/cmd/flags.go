// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"runtime/debug"

	"github.com/aibor/efirun/internal/run"
)

const (
	name = "efirun"

	memMin = 128
	memMax = 16384

	smpMin = 1
	smpMax = 16

	usageMessage = `Usage of 'efirun':
    efirun [flags...] target

Builds the named example for a UEFI target, stages it into an ESP directory
along with fresh OVMF firmware copies and boots it in QEMU:
	efirun hello

All flags can also be provided via file ./` + localConfigFile + `.
`
)

type flags struct {
	spec    *run.Spec
	flagSet *flag.FlagSet

	version bool
	debug   bool
	release bool
}

func newFlags(spec *run.Spec, output io.Writer) *flags {
	flags := &flags{
		spec: spec,
	}

	flags.initFlagset(output)

	return flags
}

func (f *flags) parseArgs(args []string) error {
	err := f.flagSet.Parse(args)
	if err != nil {
		return &ParseArgsError{msg: "flag parse", err: err}
	}

	// With version flag, just print the version and exit. Using [ErrHelp]
	// the main binary is supposed to return with a non error exit code.
	if f.version {
		err := f.printVersionInformation()
		return &ParseArgsError{msg: "version requested", err: err}
	}

	if f.release {
		f.spec.Profile = "release"
	}

	positionalArgs := f.flagSet.Args()

	// The single positional argument is the name of the example to build
	// and boot.
	if len(positionalArgs) < 1 {
		return f.fail("no target given", nil)
	}

	if len(positionalArgs) > 1 {
		return f.fail("unexpected argument: "+positionalArgs[1], nil)
	}

	f.spec.Target = positionalArgs[0]

	return nil
}

func (f *flags) initFlagset(output io.Writer) {
	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = f.usage

	flagSet.StringVar(
		&f.spec.Triple,
		"triple",
		f.spec.Triple,
		"target triple to build for (default x86_64-unknown-uefi)",
	)

	flagSet.StringVar(
		&f.spec.Profile,
		"profile",
		f.spec.Profile,
		"build profile: debug or release (default debug)",
	)

	flagSet.BoolVar(
		&f.release,
		"release",
		f.release,
		"build with the release profile (shorthand for -profile=release)",
	)

	flagSet.StringVar(
		&f.spec.Cargo,
		"cargo",
		f.spec.Cargo,
		"cargo binary to use (default $CARGO or cargo from PATH)",
	)

	flagSet.StringVar(
		&f.spec.BuildDir,
		"buildDir",
		f.spec.BuildDir,
		"toolchain output directory (default target)",
	)

	flagSet.StringVar(
		&f.spec.ESPDir,
		"esp",
		f.spec.ESPDir,
		"ESP staging directory (default esp)",
	)

	flagSet.StringVar(
		&f.spec.BootFileName,
		"bootFile",
		f.spec.BootFileName,
		"boot slot file name (default derived from triple, e.g. BOOTX64.EFI)",
	)

	flagSet.StringVar(
		&f.spec.FirmwareDir,
		"firmwareDir",
		f.spec.FirmwareDir,
		"directory holding the reference OVMF files "+
			"(default /usr/share/OVMF)",
	)

	flagSet.StringVar(
		&f.spec.OVMFCode,
		"ovmfCode",
		f.spec.OVMFCode,
		"reference firmware code store (default <firmwareDir>/OVMF_CODE.fd)",
	)

	flagSet.StringVar(
		&f.spec.OVMFVars,
		"ovmfVars",
		f.spec.OVMFVars,
		"reference firmware variable store "+
			"(default <firmwareDir>/OVMF_VARS.fd)",
	)

	flagSet.StringVar(
		&f.spec.Qemu.Executable,
		"qemuBin",
		f.spec.Qemu.Executable,
		"QEMU binary to use (default qemu-system-x86_64)",
	)

	flagSet.StringVar(
		&f.spec.Qemu.Machine,
		"machine",
		f.spec.Qemu.Machine,
		"QEMU machine type to use (default q35)",
	)

	flagSet.StringVar(
		&f.spec.Qemu.CPU,
		"cpu",
		f.spec.Qemu.CPU,
		"QEMU CPU type to use",
	)

	flagSet.BoolVar(
		&f.spec.Qemu.NoKVM,
		"nokvm",
		f.spec.Qemu.NoKVM,
		"disable hardware support (default is enabled if /dev/kvm is "+
			"accessible)",
	)

	flagSet.Var(
		&limitedUintValue{
			Value: &f.spec.Qemu.Memory,
			min:   memMin,
			max:   memMax,
		},
		"memory",
		"memory (in MB) for the QEMU VM (default 1024, OVMF needs 1G)",
	)

	flagSet.Var(
		&limitedUintValue{
			Value: &f.spec.Qemu.SMP,
			min:   smpMin,
			max:   smpMax,
		},
		"smp",
		"number of CPUs for the QEMU VM (default 1)",
	)

	flagSet.StringVar(
		&f.spec.BundlePath,
		"bundle",
		f.spec.BundlePath,
		"write the staged ESP tree to this path as cpio archive",
	)

	flagSet.BoolVar(
		&f.spec.DryRun,
		"dryRun",
		f.spec.DryRun,
		"print the QEMU command instead of building, staging and launching",
	)

	flagSet.BoolVar(
		&f.debug,
		"debug",
		f.debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&f.version,
		"version",
		f.version,
		"show version and exit",
	)

	f.flagSet = flagSet
}

// fail fails like flag does. It prints the error first and then usage.
func (f *flags) fail(msg string, err error) error {
	err = &ParseArgsError{msg: msg, err: err}
	fmt.Fprintln(f.flagSet.Output(), err.Error())

	f.flagSet.Usage()

	return err
}

func (f *flags) printVersionInformation() error {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return ErrReadBuildInfo
	}

	fmt.Fprintf(f.flagSet.Output(), "Version: %s\n", buildInfo.Main.Version)

	return ErrHelp
}

func (f *flags) usage() {
	fmt.Fprint(f.flagSet.Output(), usageMessage)
	fmt.Fprintln(f.flagSet.Output(), "\nFlags:")
	f.flagSet.PrintDefaults()
}
