// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfbq/tfbq/internal/decl"
)

const stateDoc = `{
  "version": 4,
  "terraform_version": "1.6.2",
  "serial": 5,
  "lineage": "3f8d0e9c-lineage"
}`

func testDecl() *decl.Declaration {
	return &decl.Declaration{Kind: decl.KindLocal, RequiredVersion: ">= 1.5.0"}
}

func newBackend(t *testing.T, dir, workspace string) *BackendLocal {
	t.Helper()
	be, err := NewBackendLocal(context.Background(), nil,
		WithDeclaration(testDecl()),
		FromRootDir(dir),
		WithWorkspaceOverride(workspace),
	)
	require.NoError(t, err)
	return be
}

func TestProbe(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "terraform.tfstate"), []byte(stateDoc), 0o600))

	result, err := newBackend(t, dir, "").Probe(false)
	require.NoError(t, err)

	assert.True(t, result.Exists)
	assert.Equal(t, int64(len(stateDoc)), result.Size)
	assert.Zero(t, result.Serial)
}

func TestProbe_Peek(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "terraform.tfstate"), []byte(stateDoc), 0o600))

	result, err := newBackend(t, dir, "").Probe(true)
	require.NoError(t, err)

	assert.Equal(t, int64(5), result.Serial)
	assert.Equal(t, "3f8d0e9c-lineage", result.Lineage)
	assert.Equal(t, "1.6.2", result.TerraformVersion)
}

func TestProbe_Missing(t *testing.T) {
	result, err := newBackend(t, t.TempDir(), "").Probe(true)
	require.NoError(t, err)
	assert.False(t, result.Exists)
}

func TestProbe_Workspace(t *testing.T) {
	dir := t.TempDir()
	wsDir := filepath.Join(dir, "terraform.tfstate.d", "staging")
	require.NoError(t, os.MkdirAll(wsDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(wsDir, "terraform.tfstate"), []byte(stateDoc), 0o600))

	be := newBackend(t, dir, "staging")
	assert.Equal(t, filepath.Join(wsDir, "terraform.tfstate"), be.StatePath())

	result, err := be.Probe(false)
	require.NoError(t, err)
	assert.True(t, result.Exists)
}

func TestStatePath_EnvironmentFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".terraform"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, ".terraform", "environment"), []byte("staging"), 0o600))

	be := newBackend(t, dir, "")
	assert.Equal(t,
		filepath.Join(dir, "terraform.tfstate.d", "staging", "terraform.tfstate"),
		be.StatePath())
}
