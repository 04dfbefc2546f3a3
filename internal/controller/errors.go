// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"errors"
	"fmt"

	"github.com/aibor/hog/internal/sys"
	"golang.org/x/sys/unix"
)

var (
	// ErrCapacityReached is returned if no more records can be tracked.
	ErrCapacityReached = errors.New("record capacity reached")

	// ErrHandleReleased is returned if a process handle is used after it has
	// been released.
	ErrHandleReleased = errors.New("process handle already released")
)

// SpawnError wraps errors occurring while starting a worker process.
type SpawnError struct {
	Path string
	Err  error
}

// Error implements the [error] interface.
func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawn %s: %v", e.Path, e.Err)
}

// Is implements the [errors.Is] interface.
func (*SpawnError) Is(other error) bool {
	_, ok := other.(*SpawnError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *SpawnError) Unwrap() error {
	return e.Err
}

// Errno returns the OS error number of the underlying error, if any.
func (e *SpawnError) Errno() unix.Errno {
	return sys.Errno(e.Err)
}

// QueryError wraps errors occurring while querying the state of a worker
// process.
type QueryError struct {
	Pid int
	Err error
}

// Error implements the [error] interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("query pid %d: %v", e.Pid, e.Err)
}

// Is implements the [errors.Is] interface.
func (*QueryError) Is(other error) bool {
	_, ok := other.(*QueryError)
	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *QueryError) Unwrap() error {
	return e.Err
}
