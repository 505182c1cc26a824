// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/efirun/internal/run"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected run.Spec
		errMsg   string
	}{
		{
			name:   "no target",
			args:   []string{},
			errMsg: "no target given",
		},
		{
			name:   "unexpected argument",
			args:   []string{"hello", "world"},
			errMsg: "unexpected argument: world",
		},
		{
			name: "target only",
			args: []string{"hello"},
			expected: run.Spec{
				Target: "hello",
			},
		},
		{
			name: "all overrides",
			args: []string{
				"-triple=aarch64-unknown-uefi",
				"-profile=release",
				"-buildDir", "/tmp/out",
				"-esp=staging",
				"-bootFile=BOOTAA64.EFI",
				"-firmwareDir=/opt/ovmf",
				"-qemuBin=qemu-system-aarch64",
				"-machine=virt",
				"-memory=2048",
				"-smp=4",
				"-nokvm",
				"-bundle=/tmp/esp.cpio",
				"-dryRun",
				"gfx-pbar",
			},
			expected: func() run.Spec {
				spec := run.Spec{
					Target:       "gfx-pbar",
					Triple:       "aarch64-unknown-uefi",
					Profile:      "release",
					BuildDir:     "/tmp/out",
					ESPDir:       "staging",
					BootFileName: "BOOTAA64.EFI",
					FirmwareDir:  "/opt/ovmf",
					BundlePath:   "/tmp/esp.cpio",
					DryRun:       true,
				}
				spec.Qemu.Executable = "qemu-system-aarch64"
				spec.Qemu.Machine = "virt"
				spec.Qemu.Memory = 2048
				spec.Qemu.SMP = 4
				spec.Qemu.NoKVM = true

				return spec
			}(),
		},
		{
			name: "release shorthand",
			args: []string{"-release", "hello"},
			expected: run.Spec{
				Target:  "hello",
				Profile: "release",
			},
		},
		{
			name:   "memory below minimum",
			args:   []string{"-memory=64", "hello"},
			errMsg: "value is outside of range",
		},
		{
			name:   "smp above maximum",
			args:   []string{"-smp=64", "hello"},
			errMsg: "value is outside of range",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			spec := run.Spec{}
			flags := newFlags(&spec, io.Discard)

			err := flags.parseArgs(tt.args)

			if tt.errMsg != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.errMsg)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, spec)
		})
	}
}

func TestParseArgsVersion(t *testing.T) {
	spec := run.Spec{}
	flags := newFlags(&spec, io.Discard)

	err := flags.parseArgs([]string{"-version"})
	require.ErrorIs(t, err, ErrHelp)
}
