// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package decl parses, validates and canonicalizes the backend declaration of
// a Terraform/OpenTofu root module: the terraform {} block with its
// required_version constraint and nested backend block, plus the provider
// block's region. Parsing is schema-partial so unrelated constructs in the
// same files (resources, variables, modules) are ignored rather than
// rejected.
package decl
