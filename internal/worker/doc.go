// SPDX-FileCopyrightText: 2024 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

// Package worker implements the memory hogging role. A [Worker] acquires
// fixed-size chunks of memory, touches every page of each chunk so the
// kernel has to back it, and reports the cumulative amount. Once an
// allocation fails, it keeps what it has and idles forever.
package worker
