// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package local

import (
	"context"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/tfbq/tfbq/internal/decl"
	"github.com/tfbq/tfbq/internal/log"
)

type BackendLocalOption = func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error

// NewBackendLocal returns a BackendLocal that implements the Backend
// interface.
func NewBackendLocal(ctx context.Context, cmd *cli.Command, options ...BackendLocalOption) (*BackendLocal, error) {
	options = append([]BackendLocalOption{WithDefaults()}, options...)

	be := &BackendLocal{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	return be, nil
}

func WithDefaults() BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		cwd, _ := os.Getwd()
		be.RootDir = cwd
		return nil
	}
}

// WithDeclaration supplies an already-parsed declaration so FromRootDir does
// not parse the module a second time.
func WithDeclaration(d *decl.Declaration) BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		be.Decl = d
		return nil
	}
}

func FromRootDir(rootDir string) BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		if filepath.IsAbs(rootDir) {
			be.RootDir = rootDir
		} else {
			cwd, _ := os.Getwd()
			be.RootDir = filepath.Join(cwd, rootDir)
		}

		log.Debugf("NewBackendLocal FromRootDir(): rootDir = %s", be.RootDir)

		if be.Decl != nil {
			return nil
		}

		d, err := decl.ParseDir(be.RootDir)
		if err != nil {
			return err
		}
		be.Decl = d
		return nil
	}
}

func WithWorkspaceOverride(ws string) BackendLocalOption {
	return func(ctx context.Context, cmd *cli.Command, be *BackendLocal) error {
		if ws != "" {
			be.WorkspaceOverride = ws
		}
		return nil
	}
}
