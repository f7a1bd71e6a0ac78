// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

import "encoding/json"

// Language is a programming language document from the CMS.
// Ordering on listing pages follows the Index field.
type Language struct {
	ID          string `json:"id"`
	Name        string `json:"Name"`
	Description string `json:"description,omitempty"`
	Index       int    `json:"index"`
}

// Tutorial is a tutorial document from the CMS. Content is an HTML or
// markdown string rendered by the frontend. LanguageID relates the tutorial
// to its Language; with depth>0 the CMS expands the relation into an object,
// so the field decodes both shapes.
type Tutorial struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	LanguageID RelationID `json:"language"`
	Index      int        `json:"index"`
}

// Exercise is an exercise document from the CMS. Difficulty ranges 1-3.
type Exercise struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Question    string     `json:"question,omitempty"`
	Difficulty  int        `json:"difficulty"`
	Hints       []string   `json:"hints,omitempty"`
	Explanation string     `json:"explanation,omitempty"`
	LanguageID  RelationID `json:"language"`
}

// RelationID decodes a CMS relationship field, which is a bare ID string at
// depth 0 and an expanded object with an "id" key at depth>0.
type RelationID string

// UnmarshalJSON accepts either "abc123" or {"id": "abc123", ...}.
func (r *RelationID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = RelationID(s)
		return nil
	}

	var obj struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = RelationID(obj.ID)
	return nil
}

// String returns the underlying document ID.
func (r RelationID) String() string {
	return string(r)
}
