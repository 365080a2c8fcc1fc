// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package backend

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/tfbq/tfbq/internal/backend/local"
	"github.com/tfbq/tfbq/internal/backend/s3"
	"github.com/tfbq/tfbq/internal/decl"
	"github.com/tfbq/tfbq/internal/probe"
)

// Backend abstracts the state location a declaration points at.
type Backend interface {
	// Declaration returns the parsed declaration the backend was built from.
	Declaration() *decl.Declaration
	Kind() decl.Kind
	// Probe checks the declared state location. With peek the state document
	// body is fetched and its serial, lineage and terraform_version reported.
	Probe(peek bool) (*probe.Result, error)
	String() string
}

// NewBackendForDir parses the declaration in rootDir and returns the Backend
// implementation matching its kind. Region and endpoint overrides come from
// the command's flags.
func NewBackendForDir(ctx context.Context, cmd *cli.Command, rootDir, workspace string) (Backend, error) {
	d, err := decl.ParseDir(rootDir)
	if err != nil {
		return nil, err
	}

	switch d.Kind {
	case decl.KindS3:
		return s3.NewBackendS3(ctx, cmd,
			s3.WithDeclaration(d),
			s3.FromRootDir(rootDir),
			s3.WithWorkspaceOverride(workspace),
			s3.WithRegionOverride(cmd.String("region")),
			s3.WithEndpoint(cmd.String("endpoint")),
		)
	case decl.KindLocal:
		return local.NewBackendLocal(ctx, cmd,
			local.WithDeclaration(d),
			local.FromRootDir(rootDir),
			local.WithWorkspaceOverride(workspace),
		)
	default:
		return nil, fmt.Errorf("unknown backend kind %q", d.Kind)
	}
}
