// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"flag"
	"fmt"
)

// ErrHelp is returned if help or version output was requested. The command
// is supposed to exit without error in this case.
var ErrHelp = flag.ErrHelp

var (
	// ErrReadBuildInfo is returned if the build info of the binary is not
	// readable.
	ErrReadBuildInfo = errors.New("failed to read build info")

	// ErrUnknownConfigKey is returned if the local config file contains keys
	// this tool does not know.
	ErrUnknownConfigKey = errors.New("unknown config key")
)

// ParseArgsError wraps errors that occur during argument parsing.
type ParseArgsError struct {
	err error
	msg string
}

func (e *ParseArgsError) Error() string {
	if e.err == nil {
		return e.msg
	}

	return fmt.Sprintf("%s: %v", e.msg, e.err)
}

func (e *ParseArgsError) Is(other error) bool {
	_, ok := other.(*ParseArgsError)
	return ok
}

func (e *ParseArgsError) Unwrap() error {
	return e.err
}
