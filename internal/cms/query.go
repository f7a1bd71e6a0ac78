// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"fmt"
	"net/url"
	"strconv"
)

// Default query values applied when the caller does not set them.
const (
	DefaultLimit = 100
	DefaultDepth = 1
)

// Filter operators understood by the CMS query dialect.
const (
	OpEquals   = "equals"
	OpContains = "contains"
)

// Filter is a single where-clause on a document field.
type Filter struct {
	Field string
	Op    string
	Value string
}

// QueryOptions describes a collection query: relation expansion depth,
// ordering, pagination, and field filters.
type QueryOptions struct {
	Depth int
	Sort  string
	Limit int
	Page  int
	Where []Filter
}

// Encode translates the options into the CMS's query-string dialect,
// e.g. depth=1&limit=100&sort=index&where[language][equals]=abc.
func (o QueryOptions) Encode() string {
	v := url.Values{}

	depth := o.Depth
	if depth == 0 {
		depth = DefaultDepth
	}
	v.Set("depth", strconv.Itoa(depth))

	limit := o.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	v.Set("limit", strconv.Itoa(limit))

	if o.Sort != "" {
		v.Set("sort", o.Sort)
	}
	if o.Page > 0 {
		v.Set("page", strconv.Itoa(o.Page))
	}

	for _, f := range o.Where {
		op := f.Op
		if op != OpEquals && op != OpContains {
			op = OpEquals
		}
		v.Set(fmt.Sprintf("where[%s][%s]", f.Field, op), f.Value)
	}

	return v.Encode()
}

// ParseQuery translates recognized client query parameters into QueryOptions.
// Recognized: depth, sort, limit, page, and where[field][equals|contains]
// filters. Unrecognized parameters are dropped rather than forwarded, so the
// browser cannot smuggle arbitrary operators to the CMS.
func ParseQuery(values url.Values) QueryOptions {
	opts := QueryOptions{}

	if d, err := strconv.Atoi(values.Get("depth")); err == nil && d >= 0 {
		opts.Depth = d
	}
	if l, err := strconv.Atoi(values.Get("limit")); err == nil && l > 0 {
		opts.Limit = l
	}
	if p, err := strconv.Atoi(values.Get("page")); err == nil && p > 0 {
		opts.Page = p
	}
	opts.Sort = values.Get("sort")

	for key, vals := range values {
		if len(vals) == 0 {
			continue
		}
		field, op, ok := parseWhereKey(key)
		if !ok {
			continue
		}
		opts.Where = append(opts.Where, Filter{Field: field, Op: op, Value: vals[0]})
	}

	return opts
}

// parseWhereKey splits "where[field][op]" into its parts.
func parseWhereKey(key string) (field, op string, ok bool) {
	const prefix = "where["
	if len(key) <= len(prefix) || key[:len(prefix)] != prefix || key[len(key)-1] != ']' {
		return "", "", false
	}

	inner := key[len(prefix) : len(key)-1] // "field][op"
	for i := 0; i+1 < len(inner); i++ {
		if inner[i] == ']' && inner[i+1] == '[' {
			field, op = inner[:i], inner[i+2:]
			if field == "" || (op != OpEquals && op != OpContains) {
				return "", "", false
			}
			return field, op, true
		}
	}
	return "", "", false
}
