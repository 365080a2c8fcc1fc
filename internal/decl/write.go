// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decl

import (
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// HCL renders the declaration in canonical form. Parsing the result yields an
// equal Declaration, which is the round-trip property fmt and the tests rely
// on.
func (d *Declaration) HCL() []byte {
	f := hclwrite.NewEmptyFile()
	root := f.Body()

	tf := root.AppendNewBlock("terraform", nil).Body()
	if d.RequiredVersion != "" {
		tf.SetAttributeValue("required_version", cty.StringVal(d.RequiredVersion))
	}

	if d.Kind == KindS3 {
		if d.RequiredVersion != "" {
			tf.AppendNewline()
		}
		be := tf.AppendNewBlock("backend", []string{string(KindS3)}).Body()
		be.SetAttributeValue("bucket", cty.StringVal(d.Bucket))
		be.SetAttributeValue("key", cty.StringVal(d.Key))
		be.SetAttributeValue("region", cty.StringVal(d.Region))
	}

	if d.ProviderRegion != "" {
		name := d.ProviderName
		if name == "" {
			name = "aws"
		}
		root.AppendNewline()
		p := root.AppendNewBlock("provider", []string{name}).Body()
		p.SetAttributeValue("region", cty.StringVal(d.ProviderRegion))
	}

	return f.Bytes()
}
