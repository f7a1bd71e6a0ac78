// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cms

import (
	"errors"

	"github.com/codehub-dev/codehub-go/internal/model"
	"github.com/codehub-dev/codehub-go/internal/util"
)

// ErrNotFound is the sentinel for a slug that resolves to no document.
// Handlers render it as a not-found state.
var ErrNotFound = errors.New("cms: not found")

// ResolveLanguage scans candidates for the first language whose derived slug
// matches. First-match-wins: two titles normalizing to the same slug resolve
// to whichever the CMS returned first.
func ResolveLanguage(slug string, candidates []model.Language) (*model.Language, error) {
	for i := range candidates {
		if util.Slugify(candidates[i].Name) == slug {
			return &candidates[i], nil
		}
	}
	return nil, ErrNotFound
}

// ResolveTutorial scans candidates for the first tutorial whose derived slug
// matches.
func ResolveTutorial(slug string, candidates []model.Tutorial) (*model.Tutorial, error) {
	for i := range candidates {
		if util.Slugify(candidates[i].Title) == slug {
			return &candidates[i], nil
		}
	}
	return nil, ErrNotFound
}
