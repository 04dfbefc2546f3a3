// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package worker

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// Allocator hands out chunks of memory.
type Allocator interface {
	Alloc(size int) ([]byte, error)
}

// MmapAllocator maps anonymous private read-write memory. The memory is
// outside of the Go heap, so it is never collected and never returned to the
// OS.
type MmapAllocator struct{}

// Alloc implements [Allocator].
func (MmapAllocator) Alloc(size int) ([]byte, error) {
	chunk, err := unix.Mmap(
		-1,
		0,
		size,
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS,
	)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}

	return chunk, nil
}
