// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package controller_test

import (
	"io"
	"log/slog"

	"github.com/aibor/hog/internal/controller"
	"golang.org/x/sys/unix"
)

type fakeProcess struct {
	pid      int
	exited   bool
	exitCode int
	queryErr error
	queries  int
	releases int
}

func (p *fakeProcess) Pid() int {
	return p.pid
}

func (p *fakeProcess) Exited() (bool, int, error) {
	p.queries++

	if p.queryErr != nil {
		return false, 0, p.queryErr
	}

	return p.exited, p.exitCode, nil
}

func (p *fakeProcess) Release() error {
	p.releases++

	if p.releases > 1 {
		return controller.ErrHandleReleased
	}

	return nil
}

// fakeSpawner hands out running fake processes. Calls whose 1-based number
// is in fail return EAGAIN. onSpawn is called on every attempt.
type fakeSpawner struct {
	processes []*fakeProcess
	calls     int
	fail      map[int]bool
	onSpawn   func(call int)
}

func (s *fakeSpawner) Spawn() (controller.Process, error) {
	s.calls++

	if s.onSpawn != nil {
		s.onSpawn(s.calls)
	}

	if s.fail[s.calls] {
		return nil, &controller.SpawnError{Path: "/hog", Err: unix.EAGAIN}
	}

	process := &fakeProcess{pid: 1000 + s.calls}
	s.processes = append(s.processes, process)

	return process, nil
}

func newTestController(spawner controller.Spawner) *controller.Controller {
	return controller.New(spawner, slog.New(slog.NewTextHandler(io.Discard, nil)))
}
