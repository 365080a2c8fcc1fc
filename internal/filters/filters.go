// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/apex/log"
)

// filterRegex is the pattern used to parse filter expressions into key,
// operator, and target components. Operators are one of = ^ ~ or /,
// optionally prefixed with '!'. Examples: "bucket" (key only),
// "bucket=infra-remotestates", "key^staging/", "region!~gov",
// "bucket/^infra-.*$".
var filterRegex = regexp.MustCompile(`^([^!=^~/]*)(!?[=^~/])?(.*)$`)

// Filter is a single parsed --filter expression including the key, operand,
// optional negation and value to match against.
type Filter struct {
	Key     string `yaml:"key" json:"Key"`
	Negate  bool   `yaml:"negate" json:"Negate"`
	Operand string `yaml:"operand" json:"Operand"`
	Value   string `yaml:"value" json:"Value"`
}

// BuildFilters parses a filter specification string into a slice of Filter.
// Invalid specs (malformed expression, empty key) are skipped.
func BuildFilters(spec string) []Filter {
	//nolint:prealloc
	var filters []Filter

	if spec == "" {
		return filters
	}

	// Default delimiter is ",", allow an override for situations where the value
	// contains commas.
	delim := ","
	if d, ok := os.LookupEnv("TFBQ_FILTER_DELIM"); ok {
		delim = d
	}

	for _, filterSpec := range strings.Split(spec, delim) {
		filterSpec = strings.TrimSpace(filterSpec)
		if filterSpec == "" {
			continue
		}

		parts := filterRegex.FindStringSubmatch(filterSpec)
		if parts == nil {
			log.Error("invalid filter: " + filterSpec)
			continue
		}

		key := strings.TrimSpace(parts[1])
		operand := parts[2]
		target := parts[3]

		if key == "" {
			log.Error("invalid filter: empty key in " + filterSpec)
			continue
		}

		negate := strings.HasPrefix(operand, "!")
		if negate {
			operand = strings.TrimPrefix(operand, "!")
		}

		filters = append(filters, Filter{
			Key:     key,
			Negate:  negate,
			Operand: operand,
			Value:   target,
		})
	}

	return filters
}

// FilterDataset returns the rows that pass every filter in the spec. Rows are
// the flat maps produced by the declaration and probe queries.
func FilterDataset(rows []map[string]interface{}, spec string) []map[string]interface{} {
	filters := BuildFilters(spec)
	if len(filters) == 0 {
		return rows
	}

	//nolint:prealloc
	var filtered []map[string]interface{}
	for _, row := range rows {
		if matchesAll(row, filters) {
			filtered = append(filtered, row)
		}
	}

	return filtered
}

// matchesAll applies every filter to a row; all must pass.
func matchesAll(row map[string]interface{}, filters []Filter) bool {
	for _, f := range filters {
		ok := f.matches(row)
		if f.Negate {
			ok = !ok
		}
		if !ok {
			return false
		}
	}
	return true
}

func (f Filter) matches(row map[string]interface{}) bool {
	raw, present := row[f.Key]
	value := ""
	if present && raw != nil {
		value = fmt.Sprintf("%v", raw)
	}

	switch f.Operand {
	case "":
		// Bare key: present and non-empty.
		return value != ""
	case "=":
		return value == f.Value
	case "^":
		return strings.HasPrefix(value, f.Value)
	case "~":
		return strings.Contains(value, f.Value)
	case "/":
		re, err := regexp.Compile(f.Value)
		if err != nil {
			log.Error("invalid filter regex: " + f.Value)
			return false
		}
		return re.MatchString(value)
	default:
		return false
	}
}
