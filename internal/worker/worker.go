// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package worker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aibor/hog/internal/sys"
)

// MiB is one mebibyte.
const MiB = 1024 * 1024

const (
	// ChunkSize is the amount of memory requested per allocation.
	ChunkSize = 64 * MiB

	// Pause is the time between two allocations.
	Pause = 10 * time.Millisecond

	// IdleInterval is the sleep increment once the worker stopped hogging.
	IdleInterval = time.Minute
)

// State is the bookkeeping of a single worker.
type State struct {
	// TotalHogged is the number of bytes successfully committed.
	TotalHogged uint64
	// Pattern varies the byte written into each chunk.
	Pattern int
	// Failed is set on the first allocation failure and never reset.
	Failed bool
}

// Worker hogs memory chunk by chunk.
//
// The zero value is not usable. Use [New].
type Worker struct {
	Allocator    Allocator
	Logger       *slog.Logger
	PageSize     int
	ChunkSize    int
	Pause        time.Duration
	IdleInterval time.Duration

	state  State
	chunks [][]byte
}

// New creates a new [Worker] that maps memory with [MmapAllocator].
func New(logger *slog.Logger) *Worker {
	return &Worker{
		Allocator:    MmapAllocator{},
		Logger:       logger,
		PageSize:     sys.PageSize(),
		ChunkSize:    ChunkSize,
		Pause:        Pause,
		IdleInterval: IdleInterval,
	}
}

// State returns a copy of the current state.
func (w *Worker) State() State {
	return w.state
}

// Hog acquires a single chunk and touches each of its pages.
//
// The first failing allocation returns an [*AllocationError] and puts the
// worker permanently into idle state. Any further call returns [ErrIdle]
// without allocating.
func (w *Worker) Hog() error {
	if w.state.Failed {
		return ErrIdle
	}

	chunk, err := w.Allocator.Alloc(w.ChunkSize)
	if err != nil {
		w.state.Failed = true

		return &AllocationError{
			Size:        w.ChunkSize,
			TotalHogged: w.state.TotalHogged,
			Err:         err,
		}
	}

	touch(chunk, w.PageSize, byte(w.state.Pattern&0xff))

	w.chunks = append(w.chunks, chunk)
	w.state.TotalHogged += uint64(w.ChunkSize)
	w.state.Pattern++

	return nil
}

// Run hogs until the first allocation failure and then holds the acquired
// memory. It only returns once the context is done.
func (w *Worker) Run(ctx context.Context) error {
	w.Logger.Info("Worker started", slog.Int("page_size", w.PageSize))

	for {
		err := w.Hog()
		if err != nil {
			w.logFailure(err)
			break
		}

		w.Logger.Info("Hogged memory",
			slog.Uint64("hogged_mib", w.state.TotalHogged/MiB))

		if err := sys.Sleep(ctx, w.Pause); err != nil {
			return err //nolint:wrapcheck
		}
	}

	w.Logger.Info("Done hogging, sleeping forever",
		slog.Uint64("hogged_mib", w.state.TotalHogged/MiB))

	return w.hold(ctx)
}

func (w *Worker) logFailure(err error) {
	attrs := []any{
		slog.Uint64("hogged_mib", w.state.TotalHogged/MiB),
		slog.Any("error", err),
	}

	var allocErr *AllocationError
	if errors.As(err, &allocErr) {
		attrs = append(attrs, slog.Int("errno", int(allocErr.Errno())))
	}

	w.Logger.Warn("Allocation failed", attrs...)
}

// hold keeps the process alive without doing any work.
func (w *Worker) hold(ctx context.Context) error {
	for {
		if err := sys.Sleep(ctx, w.IdleInterval); err != nil {
			return err //nolint:wrapcheck
		}
	}
}

// touch writes one byte into each page of the chunk, so the kernel has to
// actually commit it.
func touch(chunk []byte, pageSize int, value byte) {
	for off := 0; off < len(chunk); off += pageSize {
		chunk[off] = value
	}
}
