// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package attrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSet(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want AttrList
	}{
		{
			name: "empty spec is a no-op",
			spec: "",
			want: nil,
		},
		{
			name: "bare star is a no-op",
			spec: "*",
			want: nil,
		},
		{
			name: "single key",
			spec: "bucket",
			want: AttrList{
				{Key: "bucket", OutputKey: "bucket", Include: true},
			},
		},
		{
			name: "excluded key",
			spec: "!kind",
			want: AttrList{
				{Key: "kind", OutputKey: "kind", Include: false},
			},
		},
		{
			name: "output rename",
			spec: "required_version:version",
			want: AttrList{
				{Key: "required_version", OutputKey: "version", Include: true},
			},
		},
		{
			name: "transform spec",
			spec: "bucket::u",
			want: AttrList{
				{Key: "bucket", OutputKey: "bucket", Include: true, TransformSpec: "u"},
			},
		},
		{
			name: "multiple specs",
			spec: "bucket,key,!region",
			want: AttrList{
				{Key: "bucket", OutputKey: "bucket", Include: true},
				{Key: "key", OutputKey: "key", Include: true},
				{Key: "region", OutputKey: "region", Include: false},
			},
		},
		{
			name: "star with transform is excluded",
			spec: "*::U",
			want: AttrList{
				{Key: "*", OutputKey: "*", Include: false, TransformSpec: "U"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var al AttrList
			assert.NoError(t, al.Set(tt.spec))
			assert.Equal(t, tt.want, al)
		})
	}
}

func TestSet_Invalid(t *testing.T) {
	var al AttrList
	assert.Error(t, al.Set("bucket::::"))
	assert.Error(t, al.Set("bucket,,key"))
}

func TestSet_UpdatesExisting(t *testing.T) {
	var al AttrList
	assert.NoError(t, al.Set("bucket,key"))

	// A later spec for an existing key updates in place rather than appending.
	assert.NoError(t, al.Set("!bucket"))
	assert.Len(t, al, 2)
	assert.False(t, al[0].Include)
}

func TestSetGlobalTransformSpec(t *testing.T) {
	var al AttrList
	assert.NoError(t, al.Set("*::U,bucket,key::l"))
	assert.NoError(t, al.SetGlobalTransformSpec())

	// Global spec is prepended so attr-level specs win.
	assert.Equal(t, "U,", al[1].TransformSpec)
	assert.Equal(t, "U,l", al[2].TransformSpec)
}

func TestTransform(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		value interface{}
		want  interface{}
	}{
		{
			name:  "no spec passes through",
			spec:  "",
			value: "staging/vpc",
			want:  "staging/vpc",
		},
		{
			name:  "non-string passes through",
			spec:  "u",
			value: 42,
			want:  42,
		},
		{
			name:  "upper",
			spec:  "u",
			value: "ap-southeast-1",
			want:  "AP-SOUTHEAST-1",
		},
		{
			name:  "lower beats earlier upper",
			spec:  "U,l",
			value: "Staging",
			want:  "staging",
		},
		{
			name:  "truncate",
			spec:  "5",
			value: "infra-remotestates",
			want:  "infra",
		},
		{
			name:  "middle ellipsis",
			spec:  "-8",
			value: "infra-remotestates",
			want:  "inf..tes",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := Attr{Key: "x", TransformSpec: tt.spec}
			assert.Equal(t, tt.want, a.Transform(tt.value))
		})
	}
}

func TestTransform_TimeAgo(t *testing.T) {
	a := Attr{Key: "x", TransformSpec: "T"}
	got := a.Transform("2001-01-02T15:04:05Z")
	assert.Contains(t, got, "ago")
}

func TestString(t *testing.T) {
	var al AttrList
	assert.NoError(t, al.Set("bucket,key:path:u"))
	assert.Equal(t, "bucket:bucket:,key:path:u", al.String())
	assert.Equal(t, "list", al.Type())
}
