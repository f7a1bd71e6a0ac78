// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package web holds the embedded frontend assets.
package web

import "embed"

// Templates contains the HTML templates served by the frontend handlers.
//
//go:embed templates
var Templates embed.FS
