// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/tfbq/tfbq/internal/config"
	"github.com/tfbq/tfbq/internal/decl"
	"github.com/tfbq/tfbq/internal/log"
	"github.com/tfbq/tfbq/internal/meta"
)

// fmtCommandAction is the action handler for the "fmt" subcommand. It parses
// the RootDir's declaration and re-emits it in canonical form, to stdout or,
// with -w, to backend.tf in the root dir.
func fmtCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "fmt") {
		return nil
	}

	config.Config.Namespace = "fmt"

	d, err := decl.ParseDir(m.RootDir)
	if err != nil {
		return err
	}

	out := d.HCL()

	if cmd.Bool("write") {
		target := filepath.Join(m.RootDir, "backend.tf")
		if err := os.WriteFile(target, out, 0o644); err != nil { //nolint:mnd
			return fmt.Errorf("failed to write %s: %w", target, err)
		}
		fmt.Fprintln(os.Stdout, target)
		return nil
	}

	_, err = os.Stdout.Write(out)
	return err
}

// fmtCommandBuilder constructs the cli.Command for "fmt", wiring metadata,
// flags, and action handlers.
func fmtCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "fmt",
		Usage:     "canonical declaration rewrite",
		UsageText: "tfbq fmt [RootDir] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "write canonical declaration to backend.tf instead of stdout",
				Value:   false,
			},
			tldrFlag,
		},
		Action: fmtCommandAction,
	}
}
