// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"

	"github.com/aibor/efirun/internal/qemu"
	"github.com/aibor/efirun/internal/run"
)

// IO provides input and output details for the command.
type IO struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help or version output is requested. So
	// exit without error in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// parseArgs already prints its errors, so just exit for those.
	if !errors.Is(err, &ParseArgsError{}) {
		slog.Error(err.Error())
	}

	return -1
}

func handleRunError(err error) int {
	if err == nil {
		return 0
	}

	exitCode := -1

	var cmdErr *qemu.CommandError
	if errors.As(err, &cmdErr) && cmdErr.ExitCode != 0 {
		exitCode = cmdErr.ExitCode
	}

	// Do not print the error in case the emulator ran and properly reported
	// a non-zero exit code. That is the guest session's result, which is
	// relayed, not a defect of this tool.
	if !errors.Is(err, qemu.ErrGuestNonZeroExitCode) {
		slog.Error(err.Error())
	}

	return exitCode
}

// Run is the main entry point for the CLI command.
//
// It returns the process exit code: the first failing step's result, or the
// emulator's own exit code if all steps succeeded.
func Run(ctx context.Context, args []string, cfg IO) int {
	setupLogging(cfg.Stderr, false)

	spec := &run.Spec{}

	err := applyLocalConfig(spec, os.DirFS("."), localConfigFile)
	if err != nil {
		slog.Error(err.Error())
		return -1
	}

	flags := newFlags(spec, cfg.Stderr)

	err = flags.parseArgs(args[1:])
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stderr, flags.debug)

	err = run.Run(ctx, spec, cfg.Stdin, cfg.Stdout, cfg.Stderr)

	return handleRunError(err)
}
