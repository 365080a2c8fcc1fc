// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package local probes state held on the local filesystem.
package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/tfbq/tfbq/internal/decl"
	"github.com/tfbq/tfbq/internal/log"
	"github.com/tfbq/tfbq/internal/probe"
)

type BackendLocal struct {
	Ctx               context.Context
	Cmd               *cli.Command
	RootDir           string
	WorkspaceOverride string
	Decl              *decl.Declaration
}

func (be *BackendLocal) Declaration() *decl.Declaration {
	return be.Decl
}

func (be *BackendLocal) Kind() decl.Kind {
	return decl.KindLocal
}

// StatePath returns the file holding the active workspace's state.
// Non-default workspaces live under terraform.tfstate.d/<workspace>/.
func (be *BackendLocal) StatePath() string {
	ws := be.workspace()
	if ws == "" || ws == "default" {
		return filepath.Join(be.RootDir, "terraform.tfstate")
	}
	return filepath.Join(be.RootDir, "terraform.tfstate.d", ws, "terraform.tfstate")
}

func (be *BackendLocal) String() string {
	return be.StatePath()
}

// Probe stats the state file and, when peek is set, reads the document and
// reports its serial, lineage and terraform_version. A missing file is not an
// error; the result just carries Exists=false.
func (be *BackendLocal) Probe(peek bool) (*probe.Result, error) {
	p := be.StatePath()
	result := &probe.Result{Location: p}

	info, err := os.Stat(p)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debugf("probe miss: %s", p)
			return result, nil
		}
		return nil, fmt.Errorf("failed to probe %s: %w", p, err)
	}

	result.Exists = true
	result.Size = info.Size()
	result.Modified = info.ModTime()

	if !peek {
		return result, nil
	}

	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	doc := gjson.ParseBytes(data)
	result.Serial = doc.Get("serial").Int()
	result.Lineage = doc.Get("lineage").String()
	result.TerraformVersion = doc.Get("terraform_version").String()
	result.Raw = data

	return result, nil
}

func (be *BackendLocal) workspace() string {
	if be.WorkspaceOverride != "" {
		return be.WorkspaceOverride
	}
	data, err := os.ReadFile(filepath.Join(be.RootDir, ".terraform", "environment"))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
