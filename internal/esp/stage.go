// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package esp stages a built boot executable and a pair of firmware files
// into the directory tree that is handed to the emulator as EFI System
// Partition.
package esp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sys/unix"
)

// BootDir is the well-known directory inside the ESP the firmware loads the
// default boot application from.
const BootDir = "EFI/BOOT"

const bootFilePerm = 0o644

// ErrNotWritable is returned if a directory that must be mutated during
// staging is not writable.
var ErrNotWritable = errors.New("directory is not writable")

// Spec defines the parameters for a single staging run.
type Spec struct {
	// Path of the boot executable to stage.
	Artifact string

	// Root of the staging directory tree.
	Dir string

	// File name of the boot slot inside [BootDir], e.g. BOOTX64.EFI.
	BootFileName string

	// Reference firmware files. They are read-only inputs.
	CodeReference string
	VarsReference string

	// Local working copies of the firmware files. They are refreshed from
	// the reference files on every run.
	CodeLocal string
	VarsLocal string
}

// BootSlot returns the full path of the boot loader slot.
func (s *Spec) BootSlot() string {
	return filepath.Join(s.Dir, BootDir, s.BootFileName)
}

// Step is the pipeline step that populates the staging directory.
type Step struct {
	Spec Spec
}

// Name implements the pipeline step interface.
func (s *Step) Name() string {
	return "stage"
}

// Run implements the pipeline step interface.
func (s *Step) Run(ctx context.Context) error {
	return Stage(ctx, s.Spec)
}

// Stage populates the staging directory according to the given [Spec].
//
// The boot slot is replaced with the given artifact and the two local
// firmware files are refreshed from their reference files. Replacement
// always removes the old file first, so no stale boot target or persisted
// NVRAM state survives into the new run. Removal of files that do not exist
// yet is not an error. That is the normal first-run case.
func Stage(ctx context.Context, spec Spec) error {
	bootDir := filepath.Join(spec.Dir, BootDir)

	err := os.MkdirAll(bootDir, 0o755)
	if err != nil {
		return fmt.Errorf("create boot dir: %w", err)
	}

	// Surface permission problems before mutating anything.
	for _, dir := range []string{
		bootDir,
		filepath.Dir(spec.CodeLocal),
		filepath.Dir(spec.VarsLocal),
	} {
		err := checkWritable(dir)
		if err != nil {
			return err
		}
	}

	err = replaceFile(spec.Artifact, spec.BootSlot(), bootFilePerm)
	if err != nil {
		return fmt.Errorf("boot slot: %w", err)
	}

	slog.Debug("Staged boot executable",
		slog.String("artifact", spec.Artifact),
		slog.String("slot", spec.BootSlot()))

	err = ctx.Err()
	if err != nil {
		return fmt.Errorf("firmware refresh: %w", err)
	}

	// The two firmware stores are independent files, so refresh them
	// concurrently with the same fail-fast result.
	eg := errgroup.Group{}

	eg.Go(func() error {
		err := replaceFile(spec.CodeReference, spec.CodeLocal, bootFilePerm)
		if err != nil {
			return fmt.Errorf("firmware code store: %w", err)
		}

		return nil
	})

	eg.Go(func() error {
		err := replaceFile(spec.VarsReference, spec.VarsLocal, bootFilePerm)
		if err != nil {
			return fmt.Errorf("firmware variable store: %w", err)
		}

		return nil
	})

	err = eg.Wait()
	if err != nil {
		return err
	}

	slog.Debug("Refreshed firmware files",
		slog.String("code", spec.CodeLocal),
		slog.String("vars", spec.VarsLocal))

	return nil
}

// replaceFile copies src to dst, removing an existing dst first.
func replaceFile(src, dst string, perm os.FileMode) error {
	_, err := removeIfExists(dst)
	if err != nil {
		return err
	}

	return copyFile(src, dst, perm)
}

// removeIfExists removes the file at the given path and reports whether it
// existed.
//
// A missing file is tolerated on purpose, but only that. Any other removal
// error, like a permission problem, is returned instead of being swallowed.
func removeIfExists(path string) (bool, error) {
	err := os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("remove: %w", err)
	}

	return true, nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	source, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer source.Close()

	dest, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}

	_, err = io.Copy(dest, source)
	if err != nil {
		_ = dest.Close()
		return fmt.Errorf("copy: %w", err)
	}

	err = dest.Sync()
	if err != nil {
		_ = dest.Close()
		return fmt.Errorf("sync: %w", err)
	}

	err = dest.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

func checkWritable(dir string) error {
	err := unix.Access(dir, unix.W_OK)
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrNotWritable, dir, err)
	}

	return nil
}
