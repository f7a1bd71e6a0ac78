// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler provides HTTP handlers for the application.
package handler

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	ghtml "github.com/yuin/goldmark/renderer/html"

	"github.com/codehub-dev/codehub-go/internal/cms"
	"github.com/codehub-dev/codehub-go/internal/middleware"
	"github.com/codehub-dev/codehub-go/internal/model"
	"github.com/codehub-dev/codehub-go/internal/util"
)

// htmlSanitizer strips dangerous markup from rendered tutorial content.
// Tutorial bodies come from CMS editors, not anonymous users, but the UGC
// policy costs nothing and the admin area is cookie-gated only.
var htmlSanitizer = bluemonday.UGCPolicy()

// markdown renders tutorial content. WithUnsafe lets authored HTML through;
// the sanitizer decides what survives, not the renderer.
var markdown = goldmark.New(goldmark.WithRendererOptions(ghtml.WithUnsafe()))

// FrontendHandler renders the server-side pages from CMS content.
type FrontendHandler struct {
	cms  *cms.Client
	tmpl *template.Template
}

// NewFrontendHandler creates a frontend handler with templates parsed from
// the embedded filesystem.
func NewFrontendHandler(client *cms.Client, templates fs.FS) (*FrontendHandler, error) {
	tmpl, err := template.ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &FrontendHandler{cms: client, tmpl: tmpl}, nil
}

// NavLink is a previous/next tutorial reference.
type NavLink struct {
	Title string
	URL   string
}

// LanguageView is a language entry on the home page.
type LanguageView struct {
	Name        string
	Description string
	URL         string
}

// TutorialView is a tutorial entry on a language page.
type TutorialView struct {
	Title string
	URL   string
}

type pageData struct {
	Title     string
	User      *model.User
	Languages []LanguageView
	Tutorials []TutorialView
	Language  *model.Language
	Tutorial  *model.Tutorial
	Content   template.HTML
	Prev      *NavLink
	Next      *NavLink
	Redirect  string
}

// render executes a page template; template failures become a plain 500.
func (h *FrontendHandler) render(w http.ResponseWriter, r *http.Request, name string, status int, data pageData) {
	data.User = middleware.GetUser(r)

	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		slog.ErrorContext(r.Context(), "template render failed", "template", name, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// NotFound renders the 404 state.
func (h *FrontendHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "404.html", http.StatusNotFound, pageData{Title: "Page not found"})
}

// Home handles GET /. Languages are listed in their CMS index order.
func (h *FrontendHandler) Home(w http.ResponseWriter, r *http.Request) {
	languages := h.cms.Languages(r.Context())

	views := make([]LanguageView, 0, len(languages))
	for _, lang := range languages {
		views = append(views, LanguageView{
			Name:        lang.Name,
			Description: lang.Description,
			URL:         "/learn/" + util.Slugify(lang.Name),
		})
	}

	h.render(w, r, "home.html", http.StatusOK, pageData{
		Title:     "CodeHub",
		Languages: views,
	})
}

// Language handles GET /learn/{language}: the tutorial list of one language.
func (h *FrontendHandler) Language(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "language")

	language, err := cms.ResolveLanguage(slug, h.cms.Languages(r.Context()))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	tutorials := h.cms.Tutorials(r.Context(), language.ID)
	views := make([]TutorialView, 0, len(tutorials))
	for _, t := range tutorials {
		views = append(views, TutorialView{
			Title: t.Title,
			URL:   "/learn/" + slug + "/" + util.Slugify(t.Title),
		})
	}

	h.render(w, r, "language.html", http.StatusOK, pageData{
		Title:     language.Name,
		Language:  language,
		Tutorials: views,
	})
}

// Tutorial handles GET /learn/{language}/{tutorial}: one rendered tutorial
// with previous/next navigation following the CMS index order.
func (h *FrontendHandler) Tutorial(w http.ResponseWriter, r *http.Request) {
	langSlug := chi.URLParam(r, "language")
	tutSlug := chi.URLParam(r, "tutorial")

	language, err := cms.ResolveLanguage(langSlug, h.cms.Languages(r.Context()))
	if err != nil {
		h.NotFound(w, r)
		return
	}

	tutorials := h.cms.Tutorials(r.Context(), language.ID)
	tutorial, err := cms.ResolveTutorial(tutSlug, tutorials)
	if err != nil {
		h.NotFound(w, r)
		return
	}

	data := pageData{
		Title:    tutorial.Title,
		Language: language,
		Tutorial: tutorial,
		Content:  renderContent(tutorial.Content),
	}

	for i := range tutorials {
		if tutorials[i].ID != tutorial.ID {
			continue
		}
		if i > 0 {
			data.Prev = &NavLink{
				Title: tutorials[i-1].Title,
				URL:   "/learn/" + langSlug + "/" + util.Slugify(tutorials[i-1].Title),
			}
		}
		if i+1 < len(tutorials) {
			data.Next = &NavLink{
				Title: tutorials[i+1].Title,
				URL:   "/learn/" + langSlug + "/" + util.Slugify(tutorials[i+1].Title),
			}
		}
		break
	}

	h.render(w, r, "tutorial.html", http.StatusOK, data)
}

// Login handles GET /login.
func (h *FrontendHandler) Login(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "login.html", http.StatusOK, pageData{
		Title:    "Log in",
		Redirect: r.URL.Query().Get("redirect"),
	})
}

// Admin handles GET /admin: the admin shell page. Route-level middleware has
// already checked the session cookie; the page itself re-checks capabilities
// through the loaded user.
func (h *FrontendHandler) Admin(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "admin.html", http.StatusOK, pageData{Title: "Admin"})
}

// renderContent converts tutorial markdown (or authored HTML) into
// sanitized HTML for templating.
func renderContent(content string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		// Markdown conversion failing is rare; fall back to the sanitized raw text.
		return template.HTML(htmlSanitizer.Sanitize(content)) //nolint:gosec // sanitized above
	}
	return template.HTML(htmlSanitizer.SanitizeBytes(buf.Bytes())) //nolint:gosec // sanitized above
}
