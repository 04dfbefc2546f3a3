// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package controller_test

import (
	"testing"
	"time"

	"github.com/aibor/hog/internal/controller"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func waitExited(t *testing.T, process controller.Process) int {
	t.Helper()

	var (
		exitCode int
		err      error
	)

	require.Eventually(t, func() bool {
		var exited bool

		exited, exitCode, err = process.Exited()

		return exited || err != nil
	}, 5*time.Second, 10*time.Millisecond)
	require.NoError(t, err)

	return exitCode
}

func TestExecSpawner_Spawn(t *testing.T) {
	spawner := &controller.ExecSpawner{
		Path: "/bin/sh",
		Args: []string{"-c", "exit 3"},
	}

	process, err := spawner.Spawn()
	require.NoError(t, err)
	assert.Positive(t, process.Pid())

	assert.Equal(t, 3, waitExited(t, process))

	// The process has been reaped, so it can not be queried anymore.
	_, _, err = process.Exited()
	require.ErrorIs(t, err, &controller.QueryError{})
	require.ErrorIs(t, err, unix.ECHILD)

	require.NoError(t, process.Release())
	require.ErrorIs(t, process.Release(), controller.ErrHandleReleased)

	_, _, err = process.Exited()
	require.ErrorIs(t, err, controller.ErrHandleReleased)
}

func TestExecSpawner_SpawnRunning(t *testing.T) {
	spawner := &controller.ExecSpawner{
		Path: "/bin/sh",
		Args: []string{"-c", "sleep 30"},
	}

	process, err := spawner.Spawn()
	require.NoError(t, err)

	t.Cleanup(func() { _ = process.Release() })

	exited, _, err := process.Exited()
	require.NoError(t, err)
	assert.False(t, exited, "process should still be running")

	require.NoError(t, unix.Kill(process.Pid(), unix.SIGKILL))

	assert.Equal(t, 128+int(unix.SIGKILL), waitExited(t, process))
}

func TestExecSpawner_SpawnFailure(t *testing.T) {
	spawner := controller.NewWorkerSpawner("/nonexistent/hog", nil, nil)
	assert.Equal(t, []string{controller.WorkerArg}, spawner.Args)

	_, err := spawner.Spawn()
	require.ErrorIs(t, err, &controller.SpawnError{})

	var spawnErr *controller.SpawnError
	require.ErrorAs(t, err, &spawnErr)
	assert.Equal(t, unix.ENOENT, spawnErr.Errno())
}
