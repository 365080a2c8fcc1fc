// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var segmentRe = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d|\*)?\])?$`)

// Drill navigates a state document using a flexible dot path supporting
// arrays (e.g. "outputs.vpc_id.value", "resources[0].type"). The second
// return value is false when the path doesn't resolve.
func Drill(doc []byte, path string) (interface{}, bool) {
	current := gjson.ParseBytes(doc)

	for _, p := range strings.Split(path, ".") {
		matches := segmentRe.FindStringSubmatch(p)
		if len(matches) == 0 {
			return nil, false // Invalid path segment
		}

		key := matches[1]

		index := -1
		if matches[3] != "" && matches[3] != "*" {
			i, err := strconv.Atoi(matches[3])
			if err != nil {
				return nil, false
			}
			index = i
		}

		val := current.Get(key)
		if val.IsArray() {
			arr := val.Array()
			switch {
			case index == -1:
				if len(arr) == 1 {
					val = arr[0]
				}
				// Otherwise leave the whole list in place.
			case index < len(arr):
				val = arr[index]
			default:
				return nil, false
			}
		}

		current = val
	}

	if !current.Exists() {
		return nil, false
	}
	return current.Value(), true
}
