// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"
)

// waitDelay is the time the started QEMU process gets for a graceful
// termination after the context has been canceled.
const waitDelay = 10 * time.Second

// Command is a single QEMU command that can be run.
//
// Create it with [NewCommand].
type Command struct {
	name string
	args []string
}

// NewCommand validates the given [CommandSpec] and compiles it into a
// runnable [Command].
func NewCommand(spec CommandSpec) (*Command, error) {
	err := spec.Validate()
	if err != nil {
		return nil, err
	}

	args, err := BuildArgumentStrings(spec.arguments())
	if err != nil {
		return nil, err
	}

	cmd := &Command{
		name: spec.Executable,
		args: args,
	}

	return cmd, nil
}

// Args returns the arguments the QEMU binary is invoked with.
func (c *Command) Args() []string {
	return c.args
}

// String implements [fmt.Stringer].
func (c *Command) String() string {
	return c.name + " " + strings.Join(c.args, " ")
}

// Run the QEMU command with the given context.
//
// It blocks until the emulator process terminates. There is no timeout. The
// session runs until the user closes it or the context is canceled, which
// terminates the child process.
//
// A non-zero exit code of the emulator is not a failure of this command. It
// is returned as [CommandError] with [CommandError.Guest] set, wrapping
// [ErrGuestNonZeroExitCode], so the caller can relay it unmodified.
func (c *Command) Run(
	ctx context.Context,
	stdin io.Reader,
	stdout, stderr io.Writer,
) error {
	cmd := exec.CommandContext(ctx, c.name, c.args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	cmd.WaitDelay = waitDelay

	err := cmd.Run()

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{
			Err:      ErrGuestNonZeroExitCode,
			Guest:    true,
			ExitCode: exitErr.ExitCode(),
		}
	}

	if err != nil {
		return &CommandError{
			Err:      fmt.Errorf("start: %w", err),
			ExitCode: -1,
		}
	}

	return nil
}
