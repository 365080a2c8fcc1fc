// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decl

import (
	"fmt"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Problem describes a single validation finding against a declaration field.
type Problem struct {
	Field   string
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Field, p.Message)
}

var (
	// Bucket names per the S3 naming rules the engine's s3 backend enforces.
	bucketRe = regexp.MustCompile(`^[a-z0-9][a-z0-9.-]{1,61}[a-z0-9]$`)

	// Regions look like ap-southeast-1, us-east-1, us-gov-west-1.
	regionRe = regexp.MustCompile(`^[a-z]{2}(-[a-z]+)+-\d$`)
)

// Validate checks the declaration for completeness and well-formedness.
// An empty result means the declaration is valid.
func (d *Declaration) Validate() []Problem {
	var problems []Problem

	add := func(field, format string, args ...interface{}) {
		problems = append(problems, Problem{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if d.RequiredVersion == "" {
		add("required_version", "must be present")
	} else if _, err := goversion.NewConstraint(d.RequiredVersion); err != nil {
		add("required_version", "invalid version constraint %q", d.RequiredVersion)
	}

	switch d.Kind {
	case KindS3:
		problems = append(problems, d.validateS3()...)
	case KindLocal:
		// Nothing location-wise to check.
	default:
		add("backend", "unsupported backend kind %q", string(d.Kind))
	}

	if d.ProviderRegion == "" {
		add("provider.region", "must be present")
	} else if !regionRe.MatchString(d.ProviderRegion) {
		add("provider.region", "%q does not look like a region", d.ProviderRegion)
	}

	return problems
}

func (d *Declaration) validateS3() []Problem {
	var problems []Problem

	add := func(field, format string, args ...interface{}) {
		problems = append(problems, Problem{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if d.Bucket == "" {
		add("backend.bucket", "must be present")
	} else if !bucketRe.MatchString(d.Bucket) || strings.Contains(d.Bucket, "..") {
		add("backend.bucket", "%q is not a valid bucket name", d.Bucket)
	}

	switch {
	case d.Key == "":
		add("backend.key", "must be present")
	case strings.HasPrefix(d.Key, "/"), strings.HasSuffix(d.Key, "/"):
		add("backend.key", "must not start or end with '/'")
	case strings.Contains(d.Key, "//"):
		add("backend.key", "must not contain '//'")
	}

	if d.Region == "" {
		add("backend.region", "must be present")
	} else if !regionRe.MatchString(d.Region) {
		add("backend.region", "%q does not look like a region", d.Region)
	}

	return problems
}
