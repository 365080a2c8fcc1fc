// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller extracts single values from peeked state documents using a
// forgiving dot path, for probe columns beyond the standard header fields.
package driller
