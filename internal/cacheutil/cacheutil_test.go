// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package cacheutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withCacheDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("TFBQ_CACHE_DIR", dir)
	t.Setenv("TFBQ_CACHE", "")
	return dir
}

func TestDir(t *testing.T) {
	dir := withCacheDir(t)
	got, ok := Dir()
	assert.True(t, ok)
	assert.Equal(t, dir, got)
}

func TestEnabled(t *testing.T) {
	tests := []struct {
		value string
		want  bool
	}{
		{value: "", want: true},
		{value: "1", want: true},
		{value: "yes", want: true},
		{value: "0", want: false},
		{value: "false", want: false},
	}

	for _, tt := range tests {
		t.Run("TFBQ_CACHE="+tt.value, func(t *testing.T) {
			t.Setenv("TFBQ_CACHE", tt.value)
			assert.Equal(t, tt.want, Enabled())
		})
	}
}

func TestWriteRead(t *testing.T) {
	withCacheDir(t)

	sub := []string{"infra-remotestates", "staging/vpc"}
	assert.NoError(t, Write(sub, "v123", []byte(`{"serial": 7}`)))

	entry, ok := Read(sub, "v123")
	assert.True(t, ok)
	assert.Equal(t, "v123", entry.Key)
	assert.Equal(t, []byte(`{"serial": 7}`), entry.Data)
	assert.NotEqual(t, entry.Key, entry.EncodedKey, "filename must be hashed")

	// Unknown key misses.
	_, ok = Read(sub, "v999")
	assert.False(t, ok)
}

func TestWriteRead_Disabled(t *testing.T) {
	withCacheDir(t)
	t.Setenv("TFBQ_CACHE", "0")

	assert.NoError(t, Write([]string{"a"}, "k", []byte("data")))
	_, ok := Read([]string{"a"}, "k")
	assert.False(t, ok)
}

func TestEntryPath(t *testing.T) {
	dir := withCacheDir(t)

	p, exists := EntryPath([]string{"bucket"}, "key")
	assert.False(t, exists)
	assert.True(t, filepath.IsAbs(p))
	assert.Contains(t, p, dir)

	assert.NoError(t, Write([]string{"bucket"}, "key", []byte("x")))
	_, exists = EntryPath([]string{"bucket"}, "key")
	assert.True(t, exists)
}

func TestEnsureBaseDir(t *testing.T) {
	dir := withCacheDir(t)

	base, ok, err := EnsureBaseDir()
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dir, base)

	info, err := os.Stat(base)
	assert.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestPurge(t *testing.T) {
	withCacheDir(t)

	sub := []string{"bucket"}
	assert.NoError(t, Write(sub, "old", []byte("old")))
	assert.NoError(t, Write(sub, "new", []byte("new")))

	// Age one entry past the cutoff.
	p, exists := EntryPath(sub, "old")
	assert.True(t, exists)
	past := time.Now().Add(-48 * time.Hour)
	assert.NoError(t, os.Chtimes(p, past, past))

	assert.NoError(t, Purge(24))

	_, ok := Read(sub, "old")
	assert.False(t, ok, "aged entry should be purged")
	_, ok = Read(sub, "new")
	assert.True(t, ok, "fresh entry should survive")
}

func TestPurge_Disabled(t *testing.T) {
	withCacheDir(t)
	assert.NoError(t, Write([]string{"b"}, "k", []byte("x")))

	assert.NoError(t, Purge(0))

	_, ok := Read([]string{"b"}, "k")
	assert.True(t, ok)
}
