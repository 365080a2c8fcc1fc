// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package driller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const stateDoc = `{
  "version": 4,
  "terraform_version": "1.6.2",
  "serial": 9,
  "outputs": {
    "vpc_id": {"value": "vpc-0a1b2c", "type": "string"}
  },
  "resources": [
    {"type": "aws_vpc", "name": "main", "instances": [{"attributes": {"cidr_block": "10.0.0.0/16"}}]},
    {"type": "aws_subnet", "name": "a"}
  ]
}`

func TestDrill(t *testing.T) {
	tests := []struct {
		name  string
		path  string
		want  interface{}
		found bool
	}{
		{name: "top-level scalar", path: "terraform_version", want: "1.6.2", found: true},
		{name: "numeric", path: "serial", want: float64(9), found: true},
		{name: "nested output value", path: "outputs.vpc_id.value", want: "vpc-0a1b2c", found: true},
		{name: "array index", path: "resources[1].name", want: "a", found: true},
		{name: "single-element array hop", path: "resources[0].instances.attributes.cidr_block", want: "10.0.0.0/16", found: true},
		{name: "missing key", path: "outputs.nope.value", found: false},
		{name: "index out of range", path: "resources[9].name", found: false},
		{name: "invalid segment", path: "outputs..value", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := Drill([]byte(stateDoc), tt.path)
			assert.Equal(t, tt.found, found)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDrill_WholeArray(t *testing.T) {
	got, found := Drill([]byte(stateDoc), "resources")
	assert.True(t, found)
	assert.Len(t, got, 2)
}
