// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package esp

import (
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/cavaliergopher/cpio"
)

const numLinks = 2

// Bundle writes the complete staged tree at dir into a cpio archive at path.
//
// The archive holds the exact files the emulator would see, so a staging
// result can be attached to a bug report or handed to a colleague.
func Bundle(dir, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create bundle: %w", err)
	}

	err = WriteBundle(os.DirFS(dir), file)
	if err != nil {
		_ = file.Close()
		return err
	}

	err = file.Close()
	if err != nil {
		return fmt.Errorf("close bundle: %w", err)
	}

	return nil
}

// WriteBundle writes all files of the given file system into a cpio archive.
//
// [fs.WalkDir] iterates lexically, so the archive layout is deterministic
// for identical trees.
func WriteBundle(fsys fs.FS, w io.Writer) error {
	writer := cpio.NewWriter(w)

	err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if path == "." {
			return nil
		}

		if d.IsDir() {
			return writeDirectory(writer, path)
		}

		return writeRegular(writer, fsys, path)
	})
	if err != nil {
		return fmt.Errorf("walk tree: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return fmt.Errorf("close archive: %w", err)
	}

	return nil
}

func writeDirectory(w *cpio.Writer, path string) error {
	header := &cpio.Header{
		Name:  path,
		Mode:  cpio.TypeDir | cpio.ModePerm,
		Links: numLinks,
	}

	err := w.WriteHeader(header)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", path, err)
	}

	return nil
}

func writeRegular(w *cpio.Writer, fsys fs.FS, path string) error {
	source, err := fsys.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("read info for %s: %w", path, err)
	}

	header, err := cpio.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("create header for %s: %w", path, err)
	}

	header.Name = path

	err = w.WriteHeader(header)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", path, err)
	}

	_, err = io.Copy(w, source)
	if err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}
