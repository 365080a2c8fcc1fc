// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package backend resolves a parsed declaration to a concrete state backend
// and exposes the probe operation against it. The s3 and local subpackages
// hold the per-kind implementations.
package backend
