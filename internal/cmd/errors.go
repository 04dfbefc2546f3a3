// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"errors"
	"flag"
	"fmt"
)

var (
	// ErrHelp is returned when help is requested.
	ErrHelp = flag.ErrHelp

	// ErrReadBuildInfo is returned if build information can not be read.
	ErrReadBuildInfo = errors.New("failed to read build info")
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

// ExecutableError is returned if the path of the running executable can not
// be resolved.
type ExecutableError struct {
	err error
}

func (e *ExecutableError) Error() string {
	return fmt.Sprintf("resolve executable: %v", e.err)
}

func (e *ExecutableError) Is(other error) bool {
	_, ok := other.(*ExecutableError)
	return ok
}

func (e *ExecutableError) Unwrap() error {
	return e.err
}
