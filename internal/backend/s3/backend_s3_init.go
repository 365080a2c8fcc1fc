// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package s3

import (
	"context"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/tfbq/tfbq/internal/decl"
	"github.com/tfbq/tfbq/internal/log"
)

type BackendS3Option = func(ctx context.Context, cmd *cli.Command, be *BackendS3) error

// NewBackendS3 returns a BackendS3 that implements the Backend interface,
// built from the declaration found in the root dir unless one is supplied
// with WithDeclaration.
func NewBackendS3(ctx context.Context, cmd *cli.Command, options ...BackendS3Option) (*BackendS3, error) {
	options = append([]BackendS3Option{WithDefaults()}, options...)

	be := &BackendS3{Ctx: ctx, Cmd: cmd}

	for _, opt := range options {
		if err := opt(ctx, cmd, be); err != nil {
			return nil, err
		}
	}

	return be, nil
}

func WithDefaults() BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		cwd, _ := os.Getwd()
		be.RootDir = cwd
		return nil
	}
}

// WithDeclaration supplies an already-parsed declaration so FromRootDir does
// not parse the module a second time.
func WithDeclaration(d *decl.Declaration) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		be.Decl = d
		return nil
	}
}

func FromRootDir(rootDir string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		// Is rootDir a relative or absolute path?
		if filepath.IsAbs(rootDir) {
			be.RootDir = rootDir
		} else {
			cwd, _ := os.Getwd()
			be.RootDir = filepath.Join(cwd, rootDir)
		}

		log.Debugf("NewBackendS3 FromRootDir(): rootDir = %s", be.RootDir)

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

func WithWorkspaceOverride(ws string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		if ws != "" {
			be.WorkspaceOverride = ws
		}
		return nil
	}
}

// WithRegionOverride makes the probe look in the given region instead of the
// declared one.
func WithRegionOverride(region string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		if region != "" {
			be.RegionOverride = region
		}
		return nil
	}
}

// WithEndpoint points the probe at a custom S3 endpoint (localstack, minio).
func WithEndpoint(endpoint string) BackendS3Option {
	return func(ctx context.Context, cmd *cli.Command, be *BackendS3) error {
		if endpoint != "" {
			be.Endpoint = endpoint
		}
		return nil
	}
}
