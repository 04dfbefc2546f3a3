// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package cmd

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/aibor/hog/internal/controller"
)

const (
	name = "hog"

	usageMessage = `Usage of 'hog':
    hog [flags...] [worker]

Without arguments, hog runs as controller. It spawns worker processes of
itself and replaces each worker that dies with two new ones.

With the "worker" argument, hog allocates memory until the system refuses
and then keeps it forever.
`
)

// Role is the part a process plays.
type Role int

const (
	// RoleController supervises worker processes.
	RoleController Role = iota
	// RoleWorker hogs memory.
	RoleWorker
)

func (r Role) String() string {
	switch r {
	case RoleWorker:
		return "worker"
	default:
		return "controller"
	}
}

// roleFor returns the role selected by the positional arguments. Only the
// first one is considered.
func roleFor(args []string) Role {
	if len(args) > 0 && strings.EqualFold(args[0], controller.WorkerArg) {
		return RoleWorker
	}

	return RoleController
}

type flags struct {
	Role    Role
	Debug   bool
	Version bool
}

func parseArgs(args []string, output io.Writer) (*flags, error) {
	var flags flags

	flagSet := flag.NewFlagSet(name, flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageMessage)
		fmt.Fprintln(output, "\nFlags:")
		flagSet.PrintDefaults()
	}

	flagSet.BoolVar(
		&flags.Debug,
		"debug",
		flags.Debug,
		"enable debug output",
	)

	flagSet.BoolVar(
		&flags.Version,
		"version",
		flags.Version,
		"show version and exit",
	)

	// Parses arguments up to the first one that is not prefixed with a "-" or
	// is "--".
	err := flagSet.Parse(args)
	if err != nil {
		return nil, &ParseArgsError{msg: "flag parse", err: err}
	}

	flags.Role = roleFor(flagSet.Args())

	return &flags, nil
}
