// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

// setupTestConfig sets TFBQ_CFG_FILE to point to a test config file.
// Returns cleanup function that should be deferred.
func setupTestConfig(t *testing.T, testdataFile string) (cleanup func()) {
	t.Helper()

	configPath := filepath.Join("testdata", testdataFile)
	absPath, err := filepath.Abs(configPath)
	assert.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv("TFBQ_CFG_FILE", absPath)

	// Reset the global Config to force reload
	Config = Type{}

	return func() {
		Config = Type{}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "text", cfg.Data["output"])
				assert.Equal(t, "ap-southeast-1", cfg.Data["region"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				dq, ok := cfg.Data["dq"].(map[string]interface{})
				assert.True(t, ok, "dq should be a map")
				assert.Equal(t, "json", dq["output"])
				pq, ok := cfg.Data["pq"].(map[string]interface{})
				assert.True(t, ok, "pq should be a map")
				assert.Equal(t, 3, pq["retries"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			cfg, err := Load()

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv("TFBQ_CFG_FILE", "/nonexistent/path/tfbq.yaml")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgFileIsDirectory(t *testing.T) {
	t.Setenv("TFBQ_CFG_FILE", "testdata")
	Config = Type{}

	_, err := Load()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestLoad_WithNamespace(t *testing.T) {
	cleanup := setupTestConfig(t, "nested.yaml")
	defer cleanup()

	cfg, err := Load("dq")
	assert.NoError(t, err)
	assert.Equal(t, "dq", cfg.Namespace)

	// Namespaced key wins over the top-level one.
	val, err := GetString("output")
	assert.NoError(t, err)
	assert.Equal(t, "json", val)

	// Keys absent from the namespace fall back to the top level.
	val, err = GetString("region")
	assert.NoError(t, err)
	assert.Equal(t, "ap-southeast-1", val)
}

func TestGetString(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []string
		want         string
		wantErr      bool
	}{
		{
			name:     "simple string value",
			testFile: "simple.yaml",
			key:      "region",
			want:     "ap-southeast-1",
		},
		{
			name:     "nested string value",
			testFile: "nested.yaml",
			key:      "dq.output",
			want:     "json",
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []string{"default-value"},
			want:         "default-value",
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "missing",
			wantErr:  true,
		},
		{
			name:     "non-string value",
			testFile: "nested.yaml",
			key:      "pq.retries",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			_, _ = Load()

			got, err := GetString(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetInt(t *testing.T) {
	tests := []struct {
		name         string
		testFile     string
		key          string
		defaultValue []int
		want         int
		wantErr      bool
	}{
		{
			name:     "int value",
			testFile: "nested.yaml",
			key:      "pq.retries",
			want:     3,
		},
		{
			name:     "float value converted to int",
			testFile: "simple.yaml",
			key:      "timeout",
			want:     30,
		},
		{
			name:         "missing key with default",
			testFile:     "simple.yaml",
			key:          "missing",
			defaultValue: []int{60},
			want:         60,
		},
		{
			name:     "missing key without default",
			testFile: "simple.yaml",
			key:      "missing",
			wantErr:  true,
		},
		{
			name:     "non-int value",
			testFile: "simple.yaml",
			key:      "region",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cleanup := setupTestConfig(t, tt.testFile)
			defer cleanup()

			_, _ = Load()

			got, err := GetInt(tt.key, tt.defaultValue...)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGetStringSlice(t *testing.T) {
	cleanup := setupTestConfig(t, "sets.yaml")
	defer cleanup()
	_, _ = Load()

	vals, err := GetStringSlice("dq.defaults")
	assert.NoError(t, err)
	assert.Equal(t, []string{"--output json", "--sort bucket,key"}, vals)

	// Missing key with default slice returns provided default.
	def := []string{"x", "y"}
	vals, err = GetStringSlice("does.not.exist", def)
	assert.NoError(t, err)
	assert.Equal(t, def, vals)

	// Missing key without default returns error.
	_, err = GetStringSlice("does.not.exist")
	assert.Error(t, err)

	// Non-string element in list.
	_, err = GetStringSlice("bad.mixed")
	assert.Error(t, err)

	// Not a list at all.
	_, err = GetStringSlice("bad.scalar")
	assert.Error(t, err)
}
