// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/urfave/cli/v3"

	"github.com/tfbq/tfbq/internal/config"
	"github.com/tfbq/tfbq/internal/log"
	"github.com/tfbq/tfbq/internal/meta"
	"github.com/tfbq/tfbq/internal/output"
)

const (
	statusPass = "PASS"
	statusFail = "FAIL"
)

var (
	passStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#00a86b"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#d2222d")).Bold(true)
)

// vqCommandAction is the action handler for the "vq" subcommand. It validates
// every discovered declaration and emits one row per finding. A non-nil error
// is returned when any declaration fails, so the process exits non-zero.
func vqCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "vq") {
		return nil
	}

	config.Config.Namespace = "vq"

	mods, err := discoverDeclarations(m)
	if err != nil {
		return err
	}

	al := BuildAttrs(cmd, "rootdir", "status", "field", "message")

	var dataset []map[string]interface{}
	failed := 0
	for _, md := range mods {
		rows := problemRows(md)
		if rows[0]["status"] == statusFail {
			failed++
		}
		dataset = append(dataset, rows...)
	}

	postProcess := func(rows []map[string]interface{}) error {
		if cmd.Bool("color") {
			colorizeStatus(rows)
		}
		return nil
	}

	output.SliceDiceSpit(dataset, al, cmd, os.Stdout, postProcess)

	if failed > 0 {
		return fmt.Errorf("%d of %d declarations failed validation", failed, len(mods))
	}
	return nil
}

// vqCommandBuilder constructs the cli.Command for "vq", wiring metadata,
// flags, and action/validator handlers.
func vqCommandBuilder(m meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "vq",
		Usage:     "validation query",
		UsageText: "tfbq vq [RootDir] [options]",
		Metadata: map[string]any{
			"meta": m,
		},
		Flags: append([]cli.Flag{
			tldrFlag,
		}, NewGlobalFlags("vq")...),
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, cmd)
		},
		Action: vqCommandAction,
	}
}

// problemRows flattens one module's validation findings into dataset rows.
// A clean declaration yields a single PASS row; parse failures surface as a
// FAIL row so a broken module can't slip through a tree-wide check.
func problemRows(md moduleDecl) []map[string]interface{} {
	if md.Err != nil {
		return []map[string]interface{}{{
			"rootdir": md.Rel,
			"status":  statusFail,
			"field":   "declaration",
			"message": md.Err.Error(),
		}}
	}

	problems := md.Decl.Validate()
	if len(problems) == 0 {
		return []map[string]interface{}{{
			"rootdir": md.Rel,
			"status":  statusPass,
			"field":   "",
			"message": "",
		}}
	}

	rows := make([]map[string]interface{}, 0, len(problems))
	for _, p := range problems {
		rows = append(rows, map[string]interface{}{
			"rootdir": md.Rel,
			"status":  statusFail,
			"field":   p.Field,
			"message": p.Message,
		})
	}
	return rows
}

// colorizeStatus rewrites status cells with styled text for table output.
func colorizeStatus(rows []map[string]interface{}) {
	for _, row := range rows {
		switch row["status"] {
		case statusPass:
			row["status"] = passStyle.Render(statusPass)
		case statusFail:
			row["status"] = failStyle.Render(statusFail)
		}
	}
}
