// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfbq/tfbq/internal/backend"
	"github.com/tfbq/tfbq/internal/config"
	"github.com/tfbq/tfbq/internal/driller"
	"github.com/tfbq/tfbq/internal/log"
	"github.com/tfbq/tfbq/internal/meta"
	"github.com/tfbq/tfbq/internal/output"
)

// drillPaths returns the cleaned --drill path list.
func drillPaths(cmd *cli.Command) []string {
	spec := cmd.String("drill")
	if spec == "" {
		return nil
	}

	var paths []string
	for _, p := range strings.Split(spec, ",") {
		if p = strings.TrimSpace(p); p != "" {
			paths = append(paths, p)
		}
	}
	return paths
}

// pqCommandAction is the action handler for the "pq" subcommand. It probes
// the declared state location of every discovered root module and reports
// whether state actually exists there.
func pqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "pq") {
		return nil
	}

	config.Config.Namespace = "pq"

	mods, err := discoverDeclarations(m)
	if err != nil {
		return err
	}

	defaults := []string{
		"rootdir", "location", "exists", "size", "age", "serial", "terraform_version"}

	// Drill paths get their own columns, keyed by the path itself.
	drills := drillPaths(cmd)
	defaults = append(defaults, drills...)
	al := BuildAttrs(cmd, defaults...)

	// Drilling needs the state body, so it implies a peek.
	peek := cmd.Bool("peek") || len(drills) > 0

	var dataset []map[string]interface{}
	for _, md := range mods {
		if md.Err != nil {
			log.WithError(md.Err).Warnf("skipping %s", md.Rel)
			continue
		}

		be, err := backend.NewBackendForDir(ctx, cmd, md.Dir, m.Workspace)
		if err != nil {
			return err
		}
		log.Debugf("probing %s", be)

		result, err := be.Probe(peek)
		if err != nil {
			return err
		}

		row := result.Row()
		row["rootdir"] = md.Rel
		for _, path := range drills {
			if v, ok := driller.Drill(result.Raw, path); ok {
				row[path] = v
			}
		}
		dataset = append(dataset, row)
	}

	output.SliceDiceSpit(dataset, al, cmd, os.Stdout, nil)

	return nil
}

// pqCommandBuilder constructs the cli.Command for "pq", wiring metadata,
// flags, and action/validator handlers.
func pqCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "pq",
		Usage:     "probe query",
		UsageText: "tfbq pq [RootDir] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			&cli.BoolFlag{
				Name:    "peek",
				Aliases: []string{"p"},
				Usage:   "fetch the state document and report serial/lineage/version",
				Value:   false,
			},
			&cli.StringFlag{
				Name:  "drill",
				Usage: "comma-separated state document paths to add as columns (implies --peek)",
			},
			&cli.StringFlag{
				Name:  "endpoint",
				Usage: "custom S3 endpoint (localstack, minio)",
				Sources: cli.NewValueSourceChain(
					cli.EnvVar("TFBQ_ENDPOINT"),
				),
			},
			NewRegionFlag("pq", config.Config.Source),
			tldrFlag,
			workspaceFlag,
		}, NewGlobalFlags("pq")...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: pqCommandAction,
	}
}
