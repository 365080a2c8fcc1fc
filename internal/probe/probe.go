// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package probe defines the result record shared by all backend probes.
package probe

import (
	"time"

	"github.com/dustin/go-humanize"
)

// Result describes what a reachability probe found at the declared state
// location. Zero values mean the probe could not determine the field.
type Result struct {
	Location string
	Exists   bool

	// Shape of the state object, when it exists.
	Size     int64
	Modified time.Time

	// Peeked state document fields, when --peek was requested.
	Serial           int64
	Lineage          string
	TerraformVersion string

	// Cached is true when the peeked body came from the local cache.
	Cached bool

	// Raw is the peeked state document body. It never appears in Row; drill
	// columns are extracted from it by the caller.
	Raw []byte
}

// Row flattens the result into the generic dataset shape consumed by the
// output pipeline. Size and age are humanized; the raw values stay available
// under their own keys for sorting and filtering.
func (r *Result) Row() map[string]interface{} {
	row := map[string]interface{}{
		"location": r.Location,
		"exists":   r.Exists,
	}

	if r.Exists {
		row["size"] = humanize.Bytes(uint64(r.Size))
		row["modified"] = r.Modified.UTC().Format(time.RFC3339)
		row["age"] = humanize.Time(r.Modified)
	}

	// Raw is only set when the body was peeked; a serial of 0 is a legitimate
	// value for a freshly initialized state.
	if r.Raw != nil {
		row["serial"] = r.Serial
	}
	if r.Lineage != "" {
		row["lineage"] = r.Lineage
	}
	if r.TerraformVersion != "" {
		row["terraform_version"] = r.TerraformVersion
	}

	return row
}
