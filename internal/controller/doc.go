// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package controller implements the supervising role. A [Controller] spawns
// an initial population of worker processes and polls their liveness. Each
// worker that dies is replaced by two new ones as long as there is room left
// in the record table.
//
// Records are never compacted. A cleared slot still counts against
// [MaxTracked], so once the table is full, no more workers are spawned.
package controller
