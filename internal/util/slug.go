// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package util provides general-purpose utility functions including
// URL slug generation and validation with Unicode normalization support.
package util

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// disallowedChars matches everything outside lowercase alphanumerics,
	// whitespace, and hyphens
	disallowedChars = regexp.MustCompile(`[^a-z0-9\s-]+`)
	// whitespaceRun matches one or more whitespace characters
	whitespaceRun = regexp.MustCompile(`\s+`)
	// multipleHyphens matches multiple consecutive hyphens
	multipleHyphens = regexp.MustCompile(`-{2,}`)
)

// Slugify converts a title to a URL-friendly slug.
// It converts to lowercase, removes accents, strips characters outside
// [a-z0-9\s-], collapses whitespace runs to single hyphens, and collapses
// repeated hyphens. Total function: all-symbol input yields an empty string.
func Slugify(s string) string {
	// Normalize unicode characters (decompose accents)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)

	result = strings.ToLower(result)

	// Strip everything outside [a-z0-9\s-]
	result = disallowedChars.ReplaceAllString(result, "")

	// Collapse whitespace runs to single hyphens
	result = whitespaceRun.ReplaceAllString(result, "-")

	// Replace multiple hyphens with single hyphen
	result = multipleHyphens.ReplaceAllString(result, "-")

	// Trim hyphens from start and end
	return strings.Trim(result, "-")
}

// IsValidSlug checks if a string is a valid slug format.
func IsValidSlug(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !((r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-') {
			return false
		}
	}

	if s[0] == '-' || s[len(s)-1] == '-' {
		return false
	}

	return !strings.Contains(s, "--")
}
