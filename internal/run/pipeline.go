// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package run

import (
	"context"
	"fmt"
	"log/slog"
)

// Step is a single stage of the workflow.
//
// Steps run strictly in sequence. A step must not have mutated anything
// observable if a preceding step failed, which the pipeline guarantees by
// never invoking it in that case.
type Step interface {
	// Name identifies the step in logs and error messages.
	Name() string

	// Run executes the step. It blocks until the step is complete.
	Run(ctx context.Context) error
}

// RunSteps runs the given steps in order and stops at the first error.
//
// The failed step's name is attached to the returned error. There is no
// retry and no partial recovery.
func RunSteps(ctx context.Context, steps ...Step) error {
	for _, step := range steps {
		err := ctx.Err()
		if err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}

		slog.Debug("Running step", slog.String("step", step.Name()))

		err = step.Run(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
	}

	return nil
}
