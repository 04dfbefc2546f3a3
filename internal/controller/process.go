// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Process is the handle of a spawned worker process. It is owned by exactly
// one [Record].
type Process interface {
	// Pid returns the OS process ID.
	Pid() int

	// Exited reports whether the process has terminated and its exit code,
	// without blocking. A terminated process is reaped by this call, so it
	// must not be queried again.
	Exited() (bool, int, error)

	// Release frees the handle. It must be called exactly once.
	Release() error
}

type osProcess struct {
	process  *os.Process
	released bool
}

func (p *osProcess) Pid() int {
	return p.process.Pid
}

func (p *osProcess) Exited() (bool, int, error) {
	if p.released {
		return false, 0, &QueryError{Pid: p.Pid(), Err: ErrHandleReleased}
	}

	var (
		status unix.WaitStatus
		pid    int
		err    error
	)

	for {
		pid, err = unix.Wait4(p.Pid(), &status, unix.WNOHANG, nil)
		if !errors.Is(err, unix.EINTR) {
			break
		}
	}

	if err != nil {
		return false, 0, &QueryError{Pid: p.Pid(), Err: fmt.Errorf("wait4: %w", err)}
	}

	// With WNOHANG, pid 0 means the child has not changed state.
	if pid == 0 {
		return false, 0, nil
	}

	return true, exitCode(status), nil
}

func (p *osProcess) Release() error {
	if p.released {
		return ErrHandleReleased
	}

	p.released = true

	err := p.process.Release()
	if err != nil {
		return fmt.Errorf("release pid %d: %w", p.Pid(), err)
	}

	return nil
}

// exitCode returns the exit status of a terminated process. Processes killed
// by a signal are reported like shells do: 128 + signal number.
func exitCode(status unix.WaitStatus) int {
	switch {
	case status.Exited():
		return status.ExitStatus()
	case status.Signaled():
		return 128 + int(status.Signal())
	default:
		return -1
	}
}
