// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/tfbq/tfbq/internal/log"
)

// ErrNoDeclaration is returned by ParseDir when a directory contains no
// terraform or provider blocks at all. Tree walkers use it to skip
// directories that aren't root modules.
var ErrNoDeclaration = errors.New("no backend declaration found")

// Partial schemas. Anything not named here passes through undecoded, which
// keeps the parser tolerant of full root modules (resources, variables,
// modules, future language constructs).
var (
	rootSchema = &hcl.BodySchema{
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "terraform"},
			{Type: "provider", LabelNames: []string{"name"}},
		},
	}

	terraformSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "required_version"},
		},
		Blocks: []hcl.BlockHeaderSchema{
			{Type: "backend", LabelNames: []string{"type"}},
		},
	}

	backendSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "bucket"},
			{Name: "key"},
			{Name: "region"},
		},
	}

	providerSchema = &hcl.BodySchema{
		Attributes: []hcl.AttributeSchema{
			{Name: "region"},
		},
	}
)

// ParseFile resolves the backend declaration from a single .tf file.
func ParseFile(path string) (*Declaration, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
	}

	d := &Declaration{}
	found, err := decodeBody(f.Body, d)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, ErrNoDeclaration
	}

	finishDecl(d)
	return d, nil
}

// ParseDir resolves the backend declaration of the root module rooted at dir.
// All top-level *.tf files are merged, the way the orchestration engine loads
// a module directory. Conflicting duplicate declarations across files are
// rejected.
func ParseDir(dir string) (*Declaration, error) {
	paths, err := tfFiles(dir)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, ErrNoDeclaration
	}

	parser := hclparse.NewParser()
	d := &Declaration{}
	anyFound := false

	for _, path := range paths {
		f, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("failed to parse %s: %w", path, diags)
		}

		found, err := decodeBody(f.Body, d)
		if err != nil {
			return nil, err
		}
		anyFound = anyFound || found
	}

	if !anyFound {
		return nil, ErrNoDeclaration
	}

	finishDecl(d)
	log.Debugf("parsed declaration: dir=%s kind=%s", dir, d.Kind)
	return d, nil
}

// decodeBody folds one file's terraform/provider blocks into d. It reports
// whether the body contributed anything and errors on conflicting duplicate
// values.
func decodeBody(body hcl.Body, d *Declaration) (bool, error) {
	content, _, diags := body.PartialContent(rootSchema)
	if diags.HasErrors() {
		return false, diags
	}

	found := false
	for _, block := range content.Blocks {
		found = true
		switch block.Type {
		case "terraform":
			if err := decodeTerraformBlock(block, d); err != nil {
				return found, err
			}
		case "provider":
			if err := decodeProviderBlock(block, d); err != nil {
				return found, err
			}
		}
	}

	return found, nil
}

func decodeTerraformBlock(block *hcl.Block, d *Declaration) error {
	content, _, diags := block.Body.PartialContent(terraformSchema)
	if diags.HasErrors() {
		return diags
	}

	if attr, exists := content.Attributes["required_version"]; exists {
		v, err := literalString(attr)
		if err != nil {
			return err
		}
		if err := mergeField(&d.RequiredVersion, "required_version", v); err != nil {
			return err
		}
	}

	for _, be := range content.Blocks {
		kind := Kind(be.Labels[0])
		switch kind {
		case KindS3, KindLocal:
		default:
			return fmt.Errorf("unsupported backend type %q at %s", be.Labels[0], be.DefRange.String())
		}
		if d.Kind != KindUnknown && d.Kind != kind {
			return fmt.Errorf("conflicting backend types %q and %q", d.Kind, kind)
		}
		d.Kind = kind

		beContent, _, beDiags := be.Body.PartialContent(backendSchema)
		if beDiags.HasErrors() {
			return beDiags
		}
		for name, field := range map[string]*string{
			"bucket": &d.Bucket,
			"key":    &d.Key,
			"region": &d.Region,
		} {
			attr, exists := beContent.Attributes[name]
			if !exists {
				continue
			}
			v, err := literalString(attr)
			if err != nil {
				return err
			}
			if err := mergeField(field, name, v); err != nil {
				return err
			}
		}
	}

	return nil
}

func decodeProviderBlock(block *hcl.Block, d *Declaration) error {
	content, _, diags := block.Body.PartialContent(providerSchema)
	if diags.HasErrors() {
		return diags
	}

	// Providers without a region attribute (random, tls, ...) don't take part
	// in the declaration.
	attr, exists := content.Attributes["region"]
	if !exists {
		return nil
	}

	v, err := literalString(attr)
	if err != nil {
		return err
	}
	if err := mergeField(&d.ProviderName, "provider", block.Labels[0]); err != nil {
		return err
	}

	return mergeField(&d.ProviderRegion, "provider region", v)
}

// literalString evaluates an attribute expression with no eval context, so
// only literal values are accepted. A backend declaration referencing
// variables or functions can't be resolved statically and is an error.
func literalString(attr *hcl.Attribute) (string, error) {
	val, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return "", fmt.Errorf("%s must be a literal value at %s: %w",
			attr.Name, attr.Range.String(), diags)
	}
	if !val.IsKnown() || val.IsNull() || val.Type() != cty.String {
		return "", fmt.Errorf("%s must be a string at %s", attr.Name, attr.Range.String())
	}
	return val.AsString(), nil
}

// mergeField sets dst to v, tolerating an identical repeat but rejecting a
// conflicting one.
func mergeField(dst *string, name string, v string) error {
	if *dst != "" && *dst != v {
		return fmt.Errorf("conflicting values for %s: %q and %q", name, *dst, v)
	}
	*dst = v
	return nil
}

// finishDecl applies the implicit defaults the orchestration engine applies:
// no backend block means the local backend.
func finishDecl(d *Declaration) {
	if d.Kind == KindUnknown {
		d.Kind = KindLocal
	}
}

// tfFiles returns the sorted top-level *.tf files of dir, skipping hidden
// and override files.
func tfFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var paths []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".tf") || strings.HasPrefix(name, ".") {
			continue
		}
		// Override files merge with last-wins precedence at load time, which a
		// static resolver cannot honor, so they are left out entirely.
		if name == "override.tf" || strings.HasSuffix(name, "_override.tf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	sort.Strings(paths)

	return paths, nil
}
