// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package qemu_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aibor/efirun/internal/qemu"
)

func TestArgumentString(t *testing.T) {
	tests := []struct {
		name     string
		arg      qemu.Argument
		expected string
	}{
		{
			name:     "without value",
			arg:      qemu.UniqueArg("enable-kvm"),
			expected: "-enable-kvm",
		},
		{
			name:     "with value",
			arg:      qemu.UniqueArg("machine", "q35"),
			expected: "-machine q35",
		},
		{
			name:     "with joined values",
			arg:      qemu.RepeatableArg("drive", "if=pflash", "unit=0"),
			expected: "-drive if=pflash,unit=0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.arg.String())
		})
	}
}

func TestBuildArgumentStrings(t *testing.T) {
	tests := []struct {
		name        string
		args        []qemu.Argument
		expected    []string
		expectedErr error
	}{
		{
			name: "builds",
			args: []qemu.Argument{
				qemu.UniqueArg("machine", "q35"),
				qemu.UniqueArg("enable-kvm"),
				qemu.RepeatableArg("drive", "file=fat:rw:esp"),
			},
			expected: []string{
				"-machine", "q35",
				"-enable-kvm",
				"-drive", "file=fat:rw:esp",
			},
		},
		{
			name: "repeatable names with distinct values",
			args: []qemu.Argument{
				qemu.RepeatableArg("drive", "unit=0"),
				qemu.RepeatableArg("drive", "unit=1"),
			},
			expected: []string{
				"-drive", "unit=0",
				"-drive", "unit=1",
			},
		},
		{
			name: "unique name collision",
			args: []qemu.Argument{
				qemu.UniqueArg("machine", "q35"),
				qemu.UniqueArg("machine", "pc"),
			},
			expectedErr: qemu.ErrArgumentCollision,
		},
		{
			name: "repeatable value collision",
			args: []qemu.Argument{
				qemu.RepeatableArg("drive", "unit=0"),
				qemu.RepeatableArg("drive", "unit=0"),
			},
			expectedErr: qemu.ErrArgumentCollision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual, err := qemu.BuildArgumentStrings(tt.args)

			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, actual)
		})
	}
}
