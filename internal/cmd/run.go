// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/aibor/hog/internal/controller"
	"github.com/aibor/hog/internal/sys"
	"github.com/aibor/hog/internal/worker"
)

// Neither role returns under normal operation, so any return is an issue.
const errRC = 125

// Replaced in tests.
var executable = sys.Executable

// IO provides output details for the command. Use [*os.File]s so spawned
// workers can share them.
type IO struct {
	Stdout io.Writer
	Stderr io.Writer
}

func runWorker(ctx context.Context, logger *slog.Logger) error {
	return worker.New(logger).Run(ctx) //nolint:wrapcheck
}

func runController(ctx context.Context, logger *slog.Logger, cfg IO) error {
	path, err := executable()
	if err != nil {
		return &ExecutableError{err: err}
	}

	logger.Debug("Resolved executable", slog.String("path", path))

	spawner := controller.NewWorkerSpawner(path, cfg.Stdout, cfg.Stderr)

	err = controller.New(spawner, logger).Run(ctx)
	if err != nil {
		return fmt.Errorf("controller: %w", err)
	}

	return nil
}

func run(ctx context.Context, flags *flags, cfg IO) error {
	logger := slog.Default().With(
		slog.String("role", flags.Role.String()),
		slog.Int("pid", os.Getpid()),
	)

	if flags.Role == RoleWorker {
		return runWorker(ctx, logger)
	}

	return runController(ctx, logger, cfg)
}

func handleParseArgsError(err error) int {
	// [ErrHelp] is returned when help is requested. So exit without error
	// in this case.
	if errors.Is(err, ErrHelp) {
		return 0
	}

	// The flag set already printed the error along with the usage.
	return -1
}

func handleRunError(err error) int {
	if errors.Is(err, context.Canceled) {
		return 0
	}

	slog.Error(err.Error())

	return errRC
}

// Run is the main entry point for the CLI command. It does not return under
// normal operation.
func Run(ctx context.Context, args []string, cfg IO) int {
	flags, err := parseArgs(args, cfg.Stderr)
	if err != nil {
		return handleParseArgsError(err)
	}

	setupLogging(cfg.Stdout, flags.Debug)

	if flags.Version {
		buildInfo, err := getBuildInfo()
		if err != nil {
			slog.Error(err.Error())
			return -1
		}

		fmt.Fprintf(cfg.Stdout, "Version: %s\n", buildInfo.Main.Version)

		return 0
	}

	err = run(ctx, flags, cfg)
	if err != nil {
		return handleRunError(err)
	}

	return 0
}

func getBuildInfo() (*debug.BuildInfo, error) {
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return nil, ErrReadBuildInfo
	}

	return buildInfo, nil
}
