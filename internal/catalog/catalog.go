// Package catalog holds the immutable set of blog posts and the queries
// served over it: date-ordered listings, slug lookup and category filters.
package catalog

import (
	"encoding/hex"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"

	"blog/internal/models"
)

var (
	ErrEmptySlug     = errors.New("post slug cannot be empty")
	ErrDuplicateSlug = errors.New("duplicate post slug")
	ErrInvalidDate   = errors.New("invalid post date")
)

// dateLayouts are tried in order when parsing Post.Date.
var dateLayouts = []string{
	"2006-01-02",
	"2006-1-2",
	time.RFC3339,
	"January 2, 2006",
	"Jan 2, 2006",
}

type entry struct {
	post      models.Post
	published time.Time
	etag      string
}

// Catalog is safe for concurrent use; nothing mutates it after New.
type Catalog struct {
	entries []entry
	bySlug  map[string]int
}

// New validates posts and builds a catalog. Insertion order is kept as the
// tie-breaker for posts sharing a date.
func New(posts []models.Post) (*Catalog, error) {
	c := &Catalog{
		entries: make([]entry, 0, len(posts)),
		bySlug:  make(map[string]int, len(posts)),
	}
	for _, p := range posts {
		if strings.TrimSpace(p.Slug) == "" {
			return nil, fmt.Errorf("post %d: %w", p.ID, ErrEmptySlug)
		}
		if _, ok := c.bySlug[p.Slug]; ok {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSlug, p.Slug)
		}
		published, err := ParseDate(p.Date)
		if err != nil {
			return nil, fmt.Errorf("post %q: %w", p.Slug, err)
		}
		p = clonePost(p)
		c.bySlug[p.Slug] = len(c.entries)
		c.entries = append(c.entries, entry{post: p, published: published, etag: fingerprint(p)})
	}
	return c, nil
}

// ParseDate parses a post date in any of the accepted layouts.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// ListAll returns every post, most recent first.
func (c *Catalog) ListAll() []models.Post {
	return c.sorted(func(models.Post) bool { return true })
}

// GetBySlug returns the post whose slug matches exactly.
func (c *Catalog) GetBySlug(slug string) (models.Post, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return models.Post{}, false
	}
	return clonePost(c.entries[i].post), true
}

// ListByCategory returns the posts labelled with category, most recent
// first. An unknown category yields an empty slice.
func (c *Catalog) ListByCategory(category string) []models.Post {
	return c.sorted(func(p models.Post) bool { return p.HasCategory(category) })
}

// ListCategories returns the distinct categories across all posts in
// ascending order. It is recomputed on every call.
func (c *Catalog) ListCategories() []string {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, e := range c.entries {
		for _, name := range e.post.Categories {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			categories = append(categories, name)
		}
	}
	slices.Sort(categories)
	return categories
}

// HasCategory reports whether name is in the derived category set.
func (c *Catalog) HasCategory(name string) bool {
	_, found := slices.BinarySearch(c.ListCategories(), name)
	return found
}

// ETag returns the weak entity tag of the post with the given slug.
func (c *Catalog) ETag(slug string) (string, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return "", false
	}
	return c.entries[i].etag, true
}

// Len returns the number of posts.
func (c *Catalog) Len() int {
	return len(c.entries)
}

func (c *Catalog) sorted(keep func(models.Post) bool) []models.Post {
	matched := make([]entry, 0, len(c.entries))
	for _, e := range c.entries {
		if keep(e.post) {
			matched = append(matched, e)
		}
	}
	slices.SortStableFunc(matched, func(a, b entry) int {
		return b.published.Compare(a.published)
	})
	posts := make([]models.Post, len(matched))
	for i, e := range matched {
		posts[i] = clonePost(e.post)
	}
	return posts
}

func clonePost(p models.Post) models.Post {
	p.Categories = slices.Clone(p.Categories)
	return p
}

func fingerprint(p models.Post) string {
	h, _ := blake2b.New256(nil)
	fmt.Fprintf(h, "%d\x00%s\x00%s\x00%s\x00%s\x00%s\x00", p.ID, p.Slug, p.Title, p.Date, p.Excerpt, p.Content)
	for _, c := range p.Categories {
		fmt.Fprintf(h, "%s\x00", c)
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`
}
