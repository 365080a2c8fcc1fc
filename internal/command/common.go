// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/tfbq/tfbq/internal/attrs"
	"github.com/tfbq/tfbq/internal/decl"
	"github.com/tfbq/tfbq/internal/log"
	"github.com/tfbq/tfbq/internal/meta"
)

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (al attrs.AttrList) {
	//nolint:errcheck
	{
		for _, d := range defaults {
			al.Set(d)
		}
		if extras := cmd.String("attrs"); extras != "" {
			al.Set(extras)
		}
		al.SetGlobalTransformSpec()
	}
	return
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr tfbq <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "tfbq", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// moduleDecl pairs a discovered root module with its parsed declaration. Err
// holds a parse failure (conflicting values, non-literal expressions) so
// queries can decide whether to skip or report the module.
type moduleDecl struct {
	Dir  string
	Rel  string
	Decl *decl.Declaration
	Err  error
}

// discoverDeclarations walks the root dir and parses every root module found.
// Directories whose *.tf files carry no declaration at all are dropped.
func discoverDeclarations(m meta.Meta) ([]moduleDecl, error) {
	dirs, err := decl.Discover(m.RootDir)
	if err != nil {
		return nil, err
	}

	var mods []moduleDecl
	for _, dir := range dirs {
		d, parseErr := decl.ParseDir(dir)
		if errors.Is(parseErr, decl.ErrNoDeclaration) {
			continue
		}

		rel, relErr := filepath.Rel(m.RootDir, dir)
		if relErr != nil {
			rel = dir
		}

		mods = append(mods, moduleDecl{Dir: dir, Rel: rel, Decl: d, Err: parseErr})
	}

	log.Debugf("discovered %d declarations under %s", len(mods), m.RootDir)
	return mods, nil
}
