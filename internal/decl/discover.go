// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package decl

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tfbq/tfbq/internal/log"
)

// Discover walks root and returns every directory containing top-level *.tf
// files. Hidden directories and workspace state directories are skipped, so
// .terraform/ module caches never show up as root modules.
func Discover(root string) ([]string, error) {
	var dirs []string

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			return nil
		}

		name := entry.Name()
		if path != root && (strings.HasPrefix(name, ".") || name == "terraform.tfstate.d") {
			return fs.SkipDir
		}

		paths, err := tfFiles(path)
		if err != nil {
			return err
		}
		if len(paths) > 0 {
			dirs = append(dirs, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(dirs)
	log.Debugf("discovered %d module dirs under %s", len(dirs), root)
	return dirs, nil
}
