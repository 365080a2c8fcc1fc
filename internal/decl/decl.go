// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decl

import "fmt"

// Kind enumerates the backend kinds a declaration can carry. S3 is the
// object-storage-backed variant; local covers both an explicit backend
// "local" block and the implicit default when no backend block is present.
type Kind string

const (
	KindUnknown Kind = ""
	KindLocal   Kind = "local"
	KindS3      Kind = "s3"
)

// Declaration is the resolved backend declaration of a single root module.
// It is constructed once by the parser and never mutated afterward; callers
// treat it as a read-only record.
type Declaration struct {
	// RequiredVersion is the terraform block's required_version constraint,
	// verbatim (e.g. ">= 1.6.0, < 2.0.0").
	RequiredVersion string

	// Kind is the backend block's label.
	Kind Kind

	// Bucket, Key and Region identify the remote state location for the s3
	// kind. All three are empty for the local kind.
	Bucket string
	Key    string
	Region string

	// ProviderName is the provider block's label (typically "aws").
	// ProviderRegion is that block's region attribute.
	ProviderName   string
	ProviderRegion string
}

// Equal reports whether two declarations carry identical field values.
func (d *Declaration) Equal(other *Declaration) bool {
	if d == nil || other == nil {
		return d == other
	}
	return *d == *other
}

// Location renders the remote state location in bucket/key form for display.
func (d *Declaration) Location() string {
	if d.Kind != KindS3 {
		return string(d.Kind)
	}
	return fmt.Sprintf("s3://%s/%s", d.Bucket, d.Key)
}

// Row flattens the declaration into the generic dataset shape consumed by the
// output pipeline.
func (d *Declaration) Row() map[string]interface{} {
	return map[string]interface{}{
		"required_version": d.RequiredVersion,
		"kind":             string(d.Kind),
		"bucket":           d.Bucket,
		"key":              d.Key,
		"region":           d.Region,
		"provider_region":  d.ProviderRegion,
	}
}
