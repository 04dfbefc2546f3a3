// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package sys

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Errno extracts the OS error number from the given error chain. It returns
// 0 if there is none.
func Errno(err error) unix.Errno {
	var errno unix.Errno
	if errors.As(err, &errno) {
		return errno
	}

	return 0
}

// PageSize returns the memory page size of the system.
func PageSize() int {
	return unix.Getpagesize()
}
