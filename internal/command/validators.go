// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/tfbq/tfbq/internal/attrs"
)

// outputFormats are the values accepted by --output.
var outputFormats = []string{"text", "json", "raw", "yaml"}

// OutputValidator rejects unknown --output values at parse time.
func OutputValidator(value any) error {
	if s, ok := value.(string); ok && slices.Contains(outputFormats, s) {
		return nil
	}
	return fmt.Errorf("must be one of %v", outputFormats)
}

// GlobalFlagsValidator runs in each query command's Before hook. It fails
// fast on an --attrs spec that will not parse, rather than surfacing the
// error mid-render.
func GlobalFlagsValidator(ctx context.Context, cmd *cli.Command) error {
	if spec := cmd.String("attrs"); spec != "" {
		var al attrs.AttrList
		if err := al.Set(spec); err != nil {
			return fmt.Errorf("invalid --attrs: %w", err)
		}
	}
	return nil
}
