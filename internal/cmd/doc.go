// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cmd provides the CLI command entry point for efirun. It handles
// flag parsing, local config file layering, error handling and output
// handling.
package cmd
