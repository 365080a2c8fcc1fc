// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package command wires the tfbq subcommands (dq, vq, pq, fmt) onto
// urfave/cli, including flag handling, config namespacing and the shared
// output pipeline.
package command
