// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package qemu provides a declarative way to build and run QEMU commands
// that boot UEFI applications from a staged ESP directory with OVMF
// firmware attached as pflash drives.
package qemu
