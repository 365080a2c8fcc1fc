// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tfbq/tfbq/internal/decl"
)

func validDecl() *decl.Declaration {
	return &decl.Declaration{
		RequiredVersion: ">= 1.5.0",
		Kind:            decl.KindS3,
		Bucket:          "infra-remotestates",
		Key:             "staging/vpc",
		Region:          "ap-southeast-1",
		ProviderName:    "aws",
		ProviderRegion:  "ap-southeast-1",
	}
}

func TestProblemRows_Pass(t *testing.T) {
	rows := problemRows(moduleDecl{Rel: "vpc", Decl: validDecl()})

	assert.Len(t, rows, 1)
	assert.Equal(t, statusPass, rows[0]["status"])
	assert.Equal(t, "vpc", rows[0]["rootdir"])
}

func TestProblemRows_Findings(t *testing.T) {
	d := validDecl()
	d.Bucket = ""
	d.Region = "nowhere"

	rows := problemRows(moduleDecl{Rel: "vpc", Decl: d})

	assert.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, statusFail, row["status"])
		assert.Equal(t, "vpc", row["rootdir"])
	}
	assert.Equal(t, "backend.bucket", rows[0]["field"])
	assert.Equal(t, "backend.region", rows[1]["field"])
}

func TestProblemRows_ParseError(t *testing.T) {
	rows := problemRows(moduleDecl{Rel: "broken", Err: errors.New("conflicting values for bucket")})

	assert.Len(t, rows, 1)
	assert.Equal(t, statusFail, rows[0]["status"])
	assert.Equal(t, "declaration", rows[0]["field"])
	assert.Contains(t, rows[0]["message"], "conflicting")
}

func TestColorizeStatus(t *testing.T) {
	rows := []map[string]interface{}{
		{"status": statusPass},
		{"status": statusFail},
		{"status": 42},
	}

	colorizeStatus(rows)

	assert.Contains(t, rows[0]["status"], statusPass)
	assert.Contains(t, rows[1]["status"], statusFail)
	assert.Equal(t, 42, rows[2]["status"])
}
