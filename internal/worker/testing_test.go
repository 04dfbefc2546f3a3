// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package worker_test

import (
	"bytes"
	"log/slog"
	"strings"

	"golang.org/x/sys/unix"
)

// fakeAllocator succeeds for the first successes calls and fails with
// ENOMEM afterwards. onFailure is called on every failing call.
type fakeAllocator struct {
	successes int
	calls     int
	onFailure func()
}

func (a *fakeAllocator) Alloc(_ int) ([]byte, error) {
	a.calls++

	if a.calls > a.successes {
		if a.onFailure != nil {
			a.onFailure()
		}

		return nil, unix.ENOMEM
	}

	return make([]byte, 64), nil
}

type logBuffer struct {
	bytes.Buffer
}

func newTestLogger() (*slog.Logger, *logBuffer) {
	var buf logBuffer

	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{
		Level: slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}

			return a
		},
	})

	return slog.New(handler), &buf
}

func (b *logBuffer) count(msg string) int {
	return strings.Count(b.String(), "msg=\""+msg+"\"")
}
