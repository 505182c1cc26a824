// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/efirun/internal/run"
)

func fsysWithConfig(content string) fstest.MapFS {
	return fstest.MapFS{
		localConfigFile: &fstest.MapFile{
			Data: []byte(content),
		},
	}
}

func TestApplyLocalConfig(t *testing.T) {
	t.Run("missing file is tolerated", func(t *testing.T) {
		spec := run.Spec{}

		err := applyLocalConfig(&spec, fstest.MapFS{}, localConfigFile)
		require.NoError(t, err)

		assert.Equal(t, run.Spec{}, spec)
	})

	t.Run("values apply", func(t *testing.T) {
		spec := run.Spec{}

		fsys := fsysWithConfig(`
triple = "aarch64-unknown-uefi"
profile = "release"
firmware_dir = "/opt/ovmf"
qemu_bin = "qemu-system-aarch64"
memory = 2048
no_kvm = true
`)

		err := applyLocalConfig(&spec, fsys, localConfigFile)
		require.NoError(t, err)

		assert.Equal(t, "aarch64-unknown-uefi", spec.Triple)
		assert.Equal(t, "release", spec.Profile)
		assert.Equal(t, "/opt/ovmf", spec.FirmwareDir)
		assert.Equal(t, "qemu-system-aarch64", spec.Qemu.Executable)
		assert.Equal(t, uint64(2048), spec.Qemu.Memory)
		assert.True(t, spec.Qemu.NoKVM)
	})

	t.Run("unset values leave spec untouched", func(t *testing.T) {
		spec := run.Spec{
			Triple:  "x86_64-unknown-uefi",
			Profile: "debug",
		}

		fsys := fsysWithConfig(`profile = "release"`)

		err := applyLocalConfig(&spec, fsys, localConfigFile)
		require.NoError(t, err)

		assert.Equal(t, "x86_64-unknown-uefi", spec.Triple)
		assert.Equal(t, "release", spec.Profile)
	})

	t.Run("unknown key", func(t *testing.T) {
		spec := run.Spec{}

		fsys := fsysWithConfig(`kernell = "typo"`)

		err := applyLocalConfig(&spec, fsys, localConfigFile)
		require.ErrorIs(t, err, ErrUnknownConfigKey)
	})

	t.Run("invalid toml", func(t *testing.T) {
		spec := run.Spec{}

		fsys := fsysWithConfig(`triple = `)

		err := applyLocalConfig(&spec, fsys, localConfigFile)
		require.Error(t, err)
	})
}

// Command line flags must win over the config file, which follows from the
// config being applied to the spec before the flag set parses into it.
func TestConfigThenFlagsLayering(t *testing.T) {
	spec := run.Spec{}

	fsys := fsysWithConfig(`
profile = "release"
machine = "pc"
`)

	require.NoError(t, applyLocalConfig(&spec, fsys, localConfigFile))

	flags := newFlags(&spec, io.Discard)
	require.NoError(t, flags.parseArgs([]string{"-machine=q35", "hello"}))

	assert.Equal(t, "release", spec.Profile)
	assert.Equal(t, "q35", spec.Qemu.Machine)
	assert.Equal(t, "hello", spec.Target)
}
