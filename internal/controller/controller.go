// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aibor/hog/internal/sys"
)

const (
	// InitialWorkers is the number of workers spawned on start.
	InitialWorkers = 10

	// MaxTracked is the capacity of the record table.
	MaxTracked = 512

	// PollInterval is the time between two liveness sweeps.
	PollInterval = 2 * time.Second

	// ReplacementsPerDeath is the number of workers spawned for each one
	// that died.
	ReplacementsPerDeath = 2
)

// Record tracks a single spawned worker process.
type Record struct {
	Pid     int
	process Process
}

// Stats counts what the controller did so far.
type Stats struct {
	Spawned       int
	SpawnFailures int
	Skipped       int
	Deaths        int
	QueryFailures int
}

// Controller maintains the worker population.
//
// The zero value is not usable. Use [New].
type Controller struct {
	Spawner        Spawner
	Logger         *slog.Logger
	InitialWorkers int
	MaxTracked     int
	PollInterval   time.Duration

	// Slots in spawn order. Cleared slots are nil and are not reused.
	records []*Record
	stats   Stats
}

// New creates a new [Controller] with the default policy.
func New(spawner Spawner, logger *slog.Logger) *Controller {
	return &Controller{
		Spawner:        spawner,
		Logger:         logger,
		InitialWorkers: InitialWorkers,
		MaxTracked:     MaxTracked,
		PollInterval:   PollInterval,
	}
}

// Tracked returns the number of used slots, including cleared ones.
func (c *Controller) Tracked() int {
	return len(c.records)
}

// Live returns the number of slots holding a record.
func (c *Controller) Live() int {
	var live int

	for _, record := range c.records {
		if record != nil {
			live++
		}
	}

	return live
}

// Records returns the records in spawn order. Cleared slots are nil.
func (c *Controller) Records() []*Record {
	return append([]*Record(nil), c.records...)
}

// Stats returns a copy of the counters.
func (c *Controller) Stats() Stats {
	return c.stats
}

// SpawnWorker starts a new worker and tracks it in the next free slot.
//
// It returns [ErrCapacityReached] without spawning if all slots are used and
// a [*SpawnError] if the process could not be started. In both cases no
// record is added.
func (c *Controller) SpawnWorker() (*Record, error) {
	if len(c.records) >= c.MaxTracked {
		return nil, ErrCapacityReached
	}

	process, err := c.Spawner.Spawn()
	if err != nil {
		return nil, fmt.Errorf("spawn worker: %w", err)
	}

	record := &Record{
		Pid:     process.Pid(),
		process: process,
	}
	c.records = append(c.records, record)

	return record, nil
}

// spawn calls [Controller.SpawnWorker] and handles its result.
func (c *Controller) spawn() {
	record, err := c.SpawnWorker()

	switch {
	case errors.Is(err, ErrCapacityReached):
		c.stats.Skipped++
		c.Logger.Debug("Capacity reached, not spawning",
			slog.Int("tracked", len(c.records)))
	case err != nil:
		c.stats.SpawnFailures++

		attrs := []any{slog.Any("error", err)}

		var spawnErr *SpawnError
		if errors.As(err, &spawnErr) {
			attrs = append(attrs, slog.Int("errno", int(spawnErr.Errno())))
		}

		c.Logger.Error("Failed to spawn worker", attrs...)
	default:
		c.stats.Spawned++
		c.Logger.Info("Spawned worker",
			slog.Int("pid", record.Pid),
			slog.Int("slot", len(c.records)-1))
	}
}

// Bootstrap spawns the initial population. It stops early if the capacity is
// reached.
func (c *Controller) Bootstrap() {
	c.Logger.Info("Spawning initial workers",
		slog.Int("count", c.InitialWorkers))

	for range c.InitialWorkers {
		if len(c.records) >= c.MaxTracked {
			break
		}

		c.spawn()
	}
}

// Poll runs a single liveness sweep over all records in spawn order. Records
// added during the sweep are visited by the same sweep.
func (c *Controller) Poll() {
	for slot := 0; slot < len(c.records); slot++ {
		record := c.records[slot]
		if record == nil {
			continue
		}

		exited, exitCode, err := record.process.Exited()

		switch {
		case err != nil:
			// The state is unknown, so assume it is dead, but do not
			// replace it.
			c.stats.QueryFailures++
			c.Logger.Warn("Cannot query worker, dropping it",
				slog.Int("pid", record.Pid),
				slog.Any("error", err))
			c.clear(slot)
		case exited:
			c.stats.Deaths++
			c.Logger.Info("Worker died, spawning replacements",
				slog.Int("pid", record.Pid),
				slog.Int("exit_code", exitCode),
				slog.Int("replacements", ReplacementsPerDeath))
			c.clear(slot)

			for range ReplacementsPerDeath {
				c.spawn()
			}
		}
	}

	c.Logger.Debug("Sweep done",
		slog.Int("tracked", len(c.records)),
		slog.Int("live", c.Live()),
		slog.Int("spawned", c.stats.Spawned),
		slog.Int("spawn_failures", c.stats.SpawnFailures),
		slog.Int("skipped", c.stats.Skipped),
		slog.Int("deaths", c.stats.Deaths),
		slog.Int("query_failures", c.stats.QueryFailures))
}

// clear releases the handle of the record in the given slot and empties it.
func (c *Controller) clear(slot int) {
	record := c.records[slot]
	c.records[slot] = nil

	err := record.process.Release()
	if err != nil {
		c.Logger.Warn("Failed to release worker handle",
			slog.Int("pid", record.Pid),
			slog.Any("error", err))
	}
}

// Run bootstraps the population and then polls forever. It only returns once
// the context is done. Tracked handles are not released in this case, use
// [Controller.Close] for that.
func (c *Controller) Run(ctx context.Context) error {
	c.Bootstrap()

	c.Logger.Info("Entering monitor loop",
		slog.Int("replacements_per_death", ReplacementsPerDeath),
		slog.Duration("interval", c.PollInterval))

	for {
		if err := sys.Sleep(ctx, c.PollInterval); err != nil {
			return err //nolint:wrapcheck
		}

		c.Poll()
	}
}

// Close releases all handles still tracked and clears their slots. The
// processes keep running.
func (c *Controller) Close() error {
	var errs []error

	for slot, record := range c.records {
		if record == nil {
			continue
		}

		c.records[slot] = nil

		if err := record.process.Release(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
