// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"io"
	"os/exec"
)

// WorkerArg is the argument that makes the executable run as worker.
const WorkerArg = "worker"

// Spawner starts new worker processes.
type Spawner interface {
	Spawn() (Process, error)
}

// ExecSpawner starts the executable at Path with Args. Stdout and Stderr are
// passed through to the child. Use [*os.File]s for sharing the console, as
// anything else requires waiting for the process to release the copying
// goroutines.
type ExecSpawner struct {
	Path   string
	Args   []string
	Stdout io.Writer
	Stderr io.Writer
}

// NewWorkerSpawner returns an [ExecSpawner] that runs "<path> worker".
func NewWorkerSpawner(path string, stdout, stderr io.Writer) *ExecSpawner {
	return &ExecSpawner{
		Path:   path,
		Args:   []string{WorkerArg},
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Spawn implements [Spawner].
func (s *ExecSpawner) Spawn() (Process, error) {
	cmd := exec.Command(s.Path, s.Args...)
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	err := cmd.Start()
	if err != nil {
		return nil, &SpawnError{Path: s.Path, Err: err}
	}

	return &osProcess{process: cmd.Process}, nil
}
