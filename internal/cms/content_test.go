package cms

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRecorder struct {
	hits, misses int
}

func (r *countingRecorder) RecordCacheLookup(hit bool) {
	if hit {
		r.hits++
		return
	}
	r.misses++
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
}

func fixture(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "en/what-is-ethereum.md", `---
title: What is Ethereum?
description: An introduction
summary_points:
  - A global computer
  - Programmable money
updated_at: 2024-03-01
---
# What is Ethereum?

## The basics

Ethereum is a **network**.

### Smart contracts

<script>alert("x")</script>

[Docs](https://ethereum.org/developers/)
`)
	writeFile(t, dir, "ja/what-is-ethereum.md", "---\ntitle: イーサリアムとは\n---\n本文\n")
	writeFile(t, dir, "en/roadmap/merge/index.md", "---\nbreadcrumb_start_depth: 1\n---\n## Merge\n")
	writeFile(t, dir, "en/broken.md", "---\ntitle: [unclosed\n---\nbody\n")
	writeFile(t, dir, "en/no-front-matter.md", "Just text.\n")
	return dir
}

func TestPageRendersMarkdown(t *testing.T) {
	store := NewStore(fixture(t), "en")

	page, err := store.Page(context.Background(), "/what-is-ethereum/", "en")
	require.NoError(t, err)

	assert.Equal(t, "what-is-ethereum", page.Slug)
	assert.Equal(t, "en", page.Lang)
	assert.False(t, page.Fallback)
	assert.Equal(t, "What is Ethereum?", page.Title)
	assert.Equal(t, "An introduction", page.Description)
	assert.Equal(t, []string{"A global computer", "Programmable money"}, page.SummaryPoints)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), page.UpdatedAt)
	assert.Contains(t, page.HTML, "<strong>network</strong>")
	assert.Contains(t, page.HTML, `id="the-basics"`)
	assert.Contains(t, page.HTML, "nofollow")
	assert.NotContains(t, page.HTML, "<script")

	require.Len(t, page.Headings, 2)
	assert.Equal(t, Heading{ID: "the-basics", Text: "The basics", Level: 2}, page.Headings[0])
	assert.Equal(t, 3, page.Headings[1].Level)
}

func TestPageLocaleFallback(t *testing.T) {
	store := NewStore(fixture(t), "en")

	ja, err := store.Page(context.Background(), "what-is-ethereum", "ja")
	require.NoError(t, err)
	assert.Equal(t, "ja", ja.Lang)
	assert.False(t, ja.Fallback)
	assert.Equal(t, "イーサリアムとは", ja.Title)

	es, err := store.Page(context.Background(), "what-is-ethereum", "es")
	require.NoError(t, err)
	assert.Equal(t, "en", es.Lang)
	assert.True(t, es.Fallback)
}

func TestPageIndexFileAndStartDepth(t *testing.T) {
	store := NewStore(fixture(t), "en")

	page, err := store.Page(context.Background(), "roadmap/merge", "en")
	require.NoError(t, err)
	assert.Equal(t, 1, page.BreadcrumbStartDepth)
	assert.Equal(t, "Merge", page.Title)
}

func TestPageTitleFromSlug(t *testing.T) {
	store := NewStore(fixture(t), "en")

	page, err := store.Page(context.Background(), "no-front-matter", "en")
	require.NoError(t, err)
	assert.Equal(t, "No Front Matter", page.Title)
}

func TestPageErrors(t *testing.T) {
	store := NewStore(fixture(t), "en")

	_, err := store.Page(context.Background(), "missing", "en")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Page(context.Background(), "../etc/passwd", "en")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Page(context.Background(), "broken", "en")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.True(t, strings.Contains(err.Error(), "front matter"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = store.Page(ctx, "what-is-ethereum", "en")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSanitizeSlug(t *testing.T) {
	tests := map[string]string{
		"/What-Is-Ethereum/":  "what-is-ethereum",
		"eth2/proof-of-stake": "eth2/proof-of-stake",
		"../secrets":          "",
		`a\b`:                 "",
		"hello world":         "",
		"":                    "",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeSlug(in), in)
	}
}

func TestPageCache(t *testing.T) {
	dir := fixture(t)
	cache, err := NewRistrettoCache(1<<20, 1000, time.Minute)
	require.NoError(t, err)
	defer cache.Close()

	rec := &countingRecorder{}
	store := NewStore(dir, "en", WithCache(cache), WithRecorder(rec))

	first, err := store.Page(context.Background(), "what-is-ethereum", "en")
	require.NoError(t, err)

	// the cached copy survives the file disappearing
	require.NoError(t, os.Remove(filepath.Join(dir, "en", "what-is-ethereum.md")))
	second, err := store.Page(context.Background(), "what-is-ethereum", "en")
	require.NoError(t, err)

	assert.Equal(t, first.HTML, second.HTML)
	assert.Equal(t, 1, rec.misses)
	assert.Equal(t, 1, rec.hits)

	second.SummaryPoints[0] = "mutated"
	third, err := store.Page(context.Background(), "what-is-ethereum", "en")
	require.NoError(t, err)
	assert.Equal(t, "A global computer", third.SummaryPoints[0])
}
