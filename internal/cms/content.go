// Package cms loads localized markdown pages from disk, renders them to
// sanitized HTML and caches the result.
package cms

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"finitefield.org/catalog-web/internal/observability"
)

// ErrNotFound is returned when no locale has the requested page.
var ErrNotFound = errors.New("cms: not found")

const defaultContentDir = "content"

// Page is a rendered markdown page.
type Page struct {
	Slug string
	// Lang is the locale of the file actually served.
	Lang string
	// Fallback is true when Lang differs from the requested locale.
	Fallback             bool
	Title                string
	Description          string
	SummaryPoints        []string
	BreadcrumbStartDepth int
	HTML                 string
	Headings             []Heading
	UpdatedAt            time.Time
}

type frontMatter struct {
	Title                string   `yaml:"title"`
	Description          string   `yaml:"description"`
	Lang                 string   `yaml:"lang"`
	SummaryPoints        []string `yaml:"summary_points"`
	BreadcrumbStartDepth int      `yaml:"breadcrumb_start_depth"`
	UpdatedAt            string   `yaml:"updated_at"`
}

// Recorder observes cache lookups.
type Recorder interface {
	RecordCacheLookup(hit bool)
}

// Store reads pages from <dir>/<lang>/<slug>.md or <dir>/<lang>/<slug>/index.md.
type Store struct {
	dir           string
	defaultLocale string
	cache         Cache
	recorder      Recorder
	render        *renderer
}

// Option customises a Store.
type Option func(*Store)

// WithCache enables caching of rendered pages.
func WithCache(c Cache) Option {
	return func(s *Store) { s.cache = c }
}

// WithRecorder reports cache hits and misses.
func WithRecorder(r Recorder) Option {
	return func(s *Store) { s.recorder = r }
}

// NewStore creates a store rooted at dir. Pages missing in a locale are served
// from defaultLocale.
func NewStore(dir, defaultLocale string, opts ...Option) *Store {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = defaultContentDir
	}
	s := &Store{
		dir:           dir,
		defaultLocale: strings.ToLower(strings.TrimSpace(defaultLocale)),
		render:        newRenderer(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Dir returns the content root.
func (s *Store) Dir() string { return s.dir }

// Invalidate drops all cached pages.
func (s *Store) Invalidate() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

// Page returns the page at slug in lang, falling back to the default locale.
func (s *Store) Page(ctx context.Context, slug, lang string) (Page, error) {
	if err := ctx.Err(); err != nil {
		return Page{}, err
	}
	slug = SanitizeSlug(slug)
	if slug == "" {
		return Page{}, ErrNotFound
	}
	lang = strings.ToLower(strings.TrimSpace(lang))

	key := lang + "|" + slug
	if s.cache != nil {
		page, ok := s.cache.Get(key)
		s.record(ok)
		if ok {
			return clonePage(page), nil
		}
	}

	page, err := s.load(ctx, slug, lang)
	if err != nil {
		return Page{}, err
	}
	if s.cache != nil {
		s.cache.Set(key, clonePage(page))
	}
	return page, nil
}

func (s *Store) record(hit bool) {
	if s.recorder != nil {
		s.recorder.RecordCacheLookup(hit)
	}
}

func (s *Store) load(ctx context.Context, slug, lang string) (Page, error) {
	priority := []string{lang}
	if s.defaultLocale != "" && lang != s.defaultLocale {
		priority = append(priority, s.defaultLocale)
	}
	for _, candidate := range priority {
		if candidate == "" {
			continue
		}
		page, err := s.read(slug, candidate)
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			// parse failures stop the lookup rather than serve another locale
			return Page{}, err
		}
		page.Fallback = candidate != lang
		if page.Fallback {
			observability.FromContext(ctx).Debug("content served from fallback locale",
				zap.String("slug", slug),
				zap.String("requested", lang),
				zap.String("served", candidate),
			)
		}
		return page, nil
	}
	return Page{}, ErrNotFound
}

func (s *Store) read(slug, lang string) (Page, error) {
	base := filepath.Join(s.dir, lang, filepath.FromSlash(slug))
	var (
		data []byte
		file string
		err  error
	)
	for _, candidate := range []string{base + ".md", filepath.Join(base, "index.md")} {
		data, err = os.ReadFile(candidate)
		if err == nil {
			file = candidate
			break
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return Page{}, fmt.Errorf("cms: read %s: %w", candidate, err)
		}
	}
	if file == "" {
		return Page{}, ErrNotFound
	}

	fm, body := splitFrontMatter(string(data))
	front := frontMatter{}
	if strings.TrimSpace(fm) != "" {
		if err := yaml.Unmarshal([]byte(fm), &front); err != nil {
			return Page{}, fmt.Errorf("cms: parse front matter %s: %w", file, err)
		}
	}
	html, headings, err := s.render.render([]byte(body))
	if err != nil {
		return Page{}, fmt.Errorf("cms: %s: %w", file, err)
	}

	page := Page{
		Slug:                 slug,
		Lang:                 firstNonEmpty(strings.TrimSpace(front.Lang), lang),
		Title:                strings.TrimSpace(front.Title),
		Description:          strings.TrimSpace(front.Description),
		SummaryPoints:        front.SummaryPoints,
		BreadcrumbStartDepth: front.BreadcrumbStartDepth,
		HTML:                 html,
		Headings:             headings,
		UpdatedAt:            parseContentDate(front.UpdatedAt),
	}
	if page.UpdatedAt.IsZero() {
		if info, err := os.Stat(file); err == nil {
			page.UpdatedAt = info.ModTime()
		}
	}
	if page.Title == "" {
		page.Title = prettifySlug(path.Base(slug))
	}
	return page, nil
}

func splitFrontMatter(input string) (string, string) {
	input = strings.TrimLeft(input, "\ufeff")
	lines := strings.Split(input, "\n")
	if strings.TrimSpace(lines[0]) != "---" {
		return "", input
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			fm := strings.Join(lines[1:i], "\n")
			body := strings.Join(lines[i+1:], "\n")
			return fm, strings.TrimLeft(body, "\n\r")
		}
	}
	return "", input
}

func parseContentDate(v string) time.Time {
	v = strings.TrimSpace(v)
	if v == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02", "2006/01/02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t
		}
	}
	return time.Time{}
}

func prettifySlug(slug string) string {
	parts := strings.Split(strings.TrimSpace(slug), "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		runes[0] = asciiUpper(runes[0])
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

// SanitizeSlug normalises a URL path into a content slug. It returns "" for
// paths that could escape the content root.
func SanitizeSlug(slug string) string {
	slug = strings.TrimSpace(strings.ToLower(slug))
	slug = strings.Trim(slug, "/")
	if slug == "" || strings.Contains(slug, "..") || strings.ContainsRune(slug, '\\') {
		return ""
	}
	for _, r := range slug {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '/':
		default:
			return ""
		}
	}
	return slug
}

func clonePage(src Page) Page {
	cp := src
	if src.SummaryPoints != nil {
		cp.SummaryPoints = append([]string(nil), src.SummaryPoints...)
	}
	if src.Headings != nil {
		cp.Headings = append([]Heading(nil), src.Headings...)
	}
	return cp
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func asciiUpper(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	return r
}
