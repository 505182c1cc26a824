// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package build compiles a UEFI example application with the cargo
// toolchain and knows the deterministic path the artifact lands at.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
)

const (
	defaultCargo   = "cargo"
	bootExtension  = ".efi"
	releaseProfile = "release"
)

var (
	// ErrNoTarget is returned if no target name is set.
	ErrNoTarget = errors.New("no target name given")

	// ErrNoArtifact is returned if the toolchain terminated successfully but
	// did not produce the expected artifact.
	ErrNoArtifact = errors.New("toolchain did not produce the artifact")
)

// ArtifactPath returns the path the toolchain writes the boot executable for
// the given target to. It is the single source of truth for the artifact
// location. No other component may assume a different one.
func ArtifactPath(buildDir, triple, profile, target string) string {
	return filepath.Join(buildDir, triple, profile, "examples",
		target+bootExtension)
}

// Spec defines the parameters for a single toolchain invocation.
type Spec struct {
	// Cargo binary to invoke. If empty, the CARGO environment variable is
	// honored, with a fallback to "cargo" from PATH.
	Cargo string

	// Name of the example to build.
	Target string

	// Target triple to compile for, e.g. x86_64-unknown-uefi.
	Triple string

	// Build profile, "debug" or "release".
	Profile string

	// Toolchain output directory.
	BuildDir string

	// Toolchain output is passed through to these writers.
	Stdout io.Writer
	Stderr io.Writer
}

func (s *Spec) cargo() string {
	if s.Cargo != "" {
		return s.Cargo
	}

	if env := os.Getenv("CARGO"); env != "" {
		return env
	}

	return defaultCargo
}

// Step is the pipeline step that compiles the target.
type Step struct {
	Spec Spec
}

// Name implements the pipeline step interface.
func (s *Step) Name() string {
	return "build"
}

// Run invokes the toolchain and verifies the artifact exists afterwards.
//
// Any toolchain error is fatal for the whole workflow. It is returned as is
// so the pipeline aborts before any staging occurs.
func (s *Step) Run(ctx context.Context) error {
	if s.Spec.Target == "" {
		return ErrNoTarget
	}

	args := []string{
		"build",
		"--example", s.Spec.Target,
		"--target", s.Spec.Triple,
	}
	if s.Spec.Profile == releaseProfile {
		args = append(args, "--release")
	}

	cmd := exec.CommandContext(ctx, s.Spec.cargo(), args...)
	cmd.Stdout = s.Spec.Stdout
	cmd.Stderr = s.Spec.Stderr

	slog.Debug("Running toolchain", slog.String("command", cmd.String()))

	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("cargo build: %w", err)
	}

	artifact := ArtifactPath(
		s.Spec.BuildDir,
		s.Spec.Triple,
		s.Spec.Profile,
		s.Spec.Target,
	)

	stat, err := os.Stat(artifact)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoArtifact, err)
	}

	if !stat.Mode().IsRegular() {
		return fmt.Errorf("%w: %s is not a regular file", ErrNoArtifact,
			artifact)
	}

	slog.Debug("Built artifact", slog.String("path", artifact))

	return nil
}
