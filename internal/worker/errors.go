// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package worker

import (
	"errors"
	"fmt"

	"github.com/aibor/hog/internal/sys"
	"golang.org/x/sys/unix"
)

var (
	// ErrAllocationExhausted is returned if the OS refuses to commit another
	// chunk.
	ErrAllocationExhausted = errors.New("allocation exhausted")

	// ErrIdle is returned if the worker is asked to hog after it already
	// failed once.
	ErrIdle = errors.New("worker is idle")
)

// AllocationError wraps the error returned by the [Allocator] along with the
// amount hogged at the time of failure.
type AllocationError struct {
	Size        int
	TotalHogged uint64
	Err         error
}

// Error implements the [error] interface.
func (e *AllocationError) Error() string {
	return fmt.Sprintf("allocate %d bytes after %d bytes: %v",
		e.Size, e.TotalHogged, e.Err)
}

// Is implements the [errors.Is] interface.
func (e *AllocationError) Is(other error) bool {
	if other == ErrAllocationExhausted {
		return true
	}

	_, ok := other.(*AllocationError)

	return ok
}

// Unwrap implements the [errors.Unwrap] interface.
func (e *AllocationError) Unwrap() error {
	return e.Err
}

// Errno returns the OS error number of the underlying error, if any.
func (e *AllocationError) Errno() unix.Errno {
	return sys.Errno(e.Err)
}
