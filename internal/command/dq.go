// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tfbq/tfbq/internal/config"
	"github.com/tfbq/tfbq/internal/log"
	"github.com/tfbq/tfbq/internal/meta"
	"github.com/tfbq/tfbq/internal/output"
)

// dqCommandAction is the action handler for the "dq" subcommand. It walks the
// RootDir tree and emits one row per discovered backend declaration.
func dqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "dq") {
		return nil
	}

	config.Config.Namespace = "dq"

	mods, err := discoverDeclarations(m)
	if err != nil {
		return err
	}

	al := BuildAttrs(cmd,
		"rootdir", "required_version", "kind", "bucket", "key", "region", "provider_region")
	log.Debugf("attrs: %v", al)

	dataset := make([]map[string]interface{}, 0, len(mods))
	for _, md := range mods {
		if md.Err != nil {
			log.WithError(md.Err).Warnf("skipping %s", md.Rel)
			continue
		}

		row := md.Decl.Row()
		row["rootdir"] = md.Rel
		row["location"] = md.Decl.Location()
		dataset = append(dataset, row)
	}

	output.SliceDiceSpit(dataset, al, cmd, os.Stdout, nil)

	return nil
}

// dqCommandBuilder constructs the cli.Command for "dq", wiring metadata,
// flags, and action/validator handlers.
func dqCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "dq",
		Usage:     "declaration query",
		UsageText: "tfbq dq [RootDir] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags("dq")...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: dqCommandAction,
	}
}
