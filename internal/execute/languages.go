// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package execute proxies playground code to the external compiler API.
package execute

import "strings"

// languageIDs maps the human-facing language label to the identifier the
// compiler service expects. Unknown labels pass through lower-cased.
var languageIDs = map[string]string{
	"c":           "c",
	"c++":         "cpp",
	"c#":          "csharp",
	"java":        "java",
	"python":      "python",
	"javascript":  "javascript",
	"typescript":  "typescript",
	"go":          "go",
	"rust":        "rust",
	"ruby":        "ruby",
	"php":         "php",
	"kotlin":      "kotlin",
	"swift":       "swift",
	"scala":       "scala",
	"r":           "r",
	"perl":        "perl",
	"bash":        "bash",
	"sql":         "mysql",
	"objective-c": "objectivec",
}

// fileExtensions maps a compiler-service identifier to the source file
// extension. Unknown identifiers default to "txt".
var fileExtensions = map[string]string{
	"c":          "c",
	"cpp":        "cpp",
	"csharp":     "cs",
	"java":       "java",
	"python":     "py",
	"javascript": "js",
	"typescript": "ts",
	"go":         "go",
	"rust":       "rs",
	"ruby":       "rb",
	"php":        "php",
	"kotlin":     "kt",
	"swift":      "swift",
	"scala":      "scala",
	"r":          "r",
	"perl":       "pl",
	"bash":       "sh",
	"mysql":      "sql",
	"objectivec": "m",
}

// LanguageID returns the compiler-service identifier for a human-facing
// language label.
func LanguageID(label string) string {
	normalized := strings.ToLower(strings.TrimSpace(label))
	if id, ok := languageIDs[normalized]; ok {
		return id
	}
	return normalized
}

// FileExtension returns the source file extension for a compiler-service
// identifier.
func FileExtension(languageID string) string {
	if ext, ok := fileExtensions[languageID]; ok {
		return ext
	}
	return "txt"
}
