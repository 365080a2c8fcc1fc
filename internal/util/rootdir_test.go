// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRootDir(t *testing.T) {
	dir := t.TempDir()

	got, ws, err := ParseRootDir(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.Empty(t, ws)
}

func TestParseRootDir_Workspace(t *testing.T) {
	dir := t.TempDir()

	got, ws, err := ParseRootDir(dir + "::staging")
	require.NoError(t, err)
	assert.Equal(t, dir, got)
	assert.Equal(t, "staging", ws)
}

func TestParseRootDir_Relative(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "vpc")
	require.NoError(t, os.Mkdir(sub, 0o755))

	cwd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	got, _, err := ParseRootDir("vpc")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "vpc"), got)
}

func TestParseRootDir_Errors(t *testing.T) {
	_, _, err := ParseRootDir("")
	assert.Error(t, err)

	_, _, err = ParseRootDir("/no/such/dir")
	assert.Error(t, err)

	// A file is not a directory.
	f := filepath.Join(t.TempDir(), "main.tf")
	require.NoError(t, os.WriteFile(f, []byte("terraform {}\n"), 0o600))
	_, _, err = ParseRootDir(f)
	assert.Error(t, err)
}
