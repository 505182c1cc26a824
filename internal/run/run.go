// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package run drives the build, stage and launch workflow for a single UEFI
// example application.
package run

import (
	"context"
	"fmt"
	"io"

	"github.com/aibor/efirun/internal/build"
	"github.com/aibor/efirun/internal/esp"
	"github.com/aibor/efirun/internal/qemu"
)

// Run executes the workflow described by the given [Spec].
//
// The target is compiled, staged into the ESP directory along with fresh
// firmware copies, and booted in the emulator. The call blocks until the
// emulator session ends. A non-zero emulator exit is returned as
// [qemu.CommandError] with the Guest flag set; it is the session's result,
// not a workflow failure.
func Run(
	ctx context.Context,
	spec *Spec,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	err := spec.ApplyDefaults()
	if err != nil {
		return err
	}

	err = spec.Validate()
	if err != nil {
		return err
	}

	qemuSpec := spec.Qemu
	qemuSpec.CodeFirmware = spec.CodeLocal
	qemuSpec.VarsFirmware = spec.VarsLocal
	qemuSpec.ESPDir = spec.ESPDir
	qemuSpec.ApplyDefaults()

	cmd, err := qemu.NewCommand(qemuSpec)
	if err != nil {
		return fmt.Errorf("emulator command: %w", err)
	}

	if spec.DryRun {
		_, err := fmt.Fprintln(stdout, cmd.String())
		if err != nil {
			return fmt.Errorf("print command: %w", err)
		}

		return nil
	}

	steps := []Step{
		&build.Step{
			Spec: build.Spec{
				Cargo:    spec.Cargo,
				Target:   spec.Target,
				Triple:   spec.Triple,
				Profile:  spec.Profile,
				BuildDir: spec.BuildDir,
				Stdout:   stdout,
				Stderr:   stderr,
			},
		},
		&esp.Step{
			Spec: esp.Spec{
				Artifact: build.ArtifactPath(
					spec.BuildDir,
					spec.Triple,
					spec.Profile,
					spec.Target,
				),
				Dir:           spec.ESPDir,
				BootFileName:  spec.BootFileName,
				CodeReference: spec.OVMFCode,
				VarsReference: spec.OVMFVars,
				CodeLocal:     spec.CodeLocal,
				VarsLocal:     spec.VarsLocal,
			},
		},
	}

	if spec.BundlePath != "" {
		steps = append(steps, &bundleStep{
			dir:  spec.ESPDir,
			path: spec.BundlePath,
		})
	}

	steps = append(steps, &launchStep{
		cmd:    cmd,
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	})

	return RunSteps(ctx, steps...)
}

type bundleStep struct {
	dir  string
	path string
}

func (s *bundleStep) Name() string {
	return "bundle"
}

func (s *bundleStep) Run(_ context.Context) error {
	return esp.Bundle(s.dir, s.path)
}

type launchStep struct {
	cmd    *qemu.Command
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (s *launchStep) Name() string {
	return "launch"
}

func (s *launchStep) Run(ctx context.Context) error {
	return s.cmd.Run(ctx, s.stdin, s.stdout, s.stderr)
}
