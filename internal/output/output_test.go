// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package output

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/urfave/cli/v3"

	"github.com/tfbq/tfbq/internal/attrs"
)

// runSpit drives SliceDiceSpit through a real cli.Command so flag parsing
// behaves exactly like production.
func runSpit(t *testing.T, args []string, dataset []map[string]interface{}, al attrs.AttrList) string {
	t.Helper()

	var buf bytes.Buffer
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "local"},
			&cli.BoolFlag{Name: "titles"},
			&cli.BoolFlag{Name: "color"},
			&cli.IntFlag{Name: "padding", Value: 2},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			SliceDiceSpit(dataset, al, cmd, &buf, nil)
			return nil
		},
	}

	err := cmd.Run(context.Background(), append([]string{"test"}, args...))
	assert.NoError(t, err)
	return buf.String()
}

func testDataset() []map[string]interface{} {
	return []map[string]interface{}{
		{"bucket": "infra-remotestates", "key": "staging/vpc", "kind": "s3"},
		{"bucket": "acme-tfstate", "key": "prod/network", "kind": "s3"},
	}
}

func testAttrs(t *testing.T) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	assert.NoError(t, al.Set("bucket,key,kind"))
	return al
}

func TestSliceDiceSpit_JSON(t *testing.T) {
	out := runSpit(t, []string{"--output", "json", "--sort", "bucket"}, testDataset(), testAttrs(t))

	var rows []map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 2)
	assert.Equal(t, "acme-tfstate", rows[0]["bucket"])
	assert.Equal(t, "infra-remotestates", rows[1]["bucket"])
}

func TestSliceDiceSpit_YAML(t *testing.T) {
	out := runSpit(t, []string{"--output", "yaml"}, testDataset(), testAttrs(t))
	assert.Contains(t, out, "bucket: infra-remotestates")
	assert.Contains(t, out, "key: prod/network")
}

func TestSliceDiceSpit_Filtered(t *testing.T) {
	out := runSpit(t, []string{"--output", "json", "--filter", "key^staging/"}, testDataset(), testAttrs(t))

	var rows []map[string]interface{}
	assert.NoError(t, json.Unmarshal([]byte(out), &rows))
	assert.Len(t, rows, 1)
	assert.Equal(t, "staging/vpc", rows[0]["key"])
}

func TestSliceDiceSpit_Raw(t *testing.T) {
	out := runSpit(t, []string{"--output", "raw", "--sort", "bucket"}, testDataset(), testAttrs(t))
	assert.Equal(t, "acme-tfstate prod/network s3\ninfra-remotestates staging/vpc s3\n", out)
}

func TestSliceDiceSpit_Text(t *testing.T) {
	out := runSpit(t, []string{"--titles"}, testDataset(), testAttrs(t))
	assert.Contains(t, out, "infra-remotestates")
	assert.Contains(t, out, "bucket")
}

func TestSliceDiceSpit_ExcludedAttr(t *testing.T) {
	var al attrs.AttrList
	assert.NoError(t, al.Set("bucket,!kind"))

	out := runSpit(t, []string{}, testDataset(), al)
	assert.Contains(t, out, "infra-remotestates")
	assert.NotContains(t, out, "s3")
}

func TestSliceDiceSpit_PostProcess(t *testing.T) {
	dataset := testDataset()
	var al attrs.AttrList
	assert.NoError(t, al.Set("bucket"))

	var buf bytes.Buffer
	cmd := &cli.Command{
		Name: "test",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "output", Value: "text"},
			&cli.StringFlag{Name: "filter"},
			&cli.StringFlag{Name: "sort"},
			&cli.BoolFlag{Name: "local"},
			&cli.BoolFlag{Name: "titles"},
			&cli.BoolFlag{Name: "color"},
			&cli.IntFlag{Name: "padding"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			SliceDiceSpit(dataset, al, cmd, &buf, func(rows []map[string]interface{}) error {
				for _, row := range rows {
					row["bucket"] = "redacted"
				}
				return nil
			})
			return nil
		},
	}
	assert.NoError(t, cmd.Run(context.Background(), []string{"test"}))
	assert.Contains(t, buf.String(), "redacted")
}

func TestInterfaceToString(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  string
	}{
		{name: "string", value: "x", want: "x"},
		{name: "int", value: 7, want: "7"},
		{name: "float", value: 7.9, want: "8"},
		{name: "bool", value: true, want: "true"},
		{name: "nil default empty", value: nil, want: ""},
		{name: "map marshals", value: map[string]string{"a": "b"}, want: `{"a":"b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InterfaceToString(tt.value))
		})
	}

	assert.Equal(t, "-", InterfaceToString("", "-"))
}

func TestSortDataset(t *testing.T) {
	rows := []map[string]interface{}{
		{"bucket": "zeta", "serial": 1.0},
		{"bucket": "Alpha", "serial": 3.0},
		{"bucket": "mid", "serial": 2.0},
	}

	SortDataset(rows, "bucket")
	assert.Equal(t, "Alpha", rows[0]["bucket"])

	SortDataset(rows, "-serial")
	assert.Equal(t, 3.0, rows[0]["serial"])

	// Empty spec leaves order alone.
	SortDataset(rows, "")
	assert.Equal(t, 3.0, rows[0]["serial"])
}
