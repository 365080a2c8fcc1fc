// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package aws adapts AWS SDK v2 configuration loading and S3 client
// construction for the s3 backend probe. Credential resolution is never
// implemented here; the SDK's default chain (env, shared config, IMDS) is
// inherited as-is.
package aws
