// Package catalog holds the content shown by the scenes: code snippets,
// feature records and dictionary entries, with the aggregate queries and the
// mappings to text descriptions the renderer draws.
package catalog

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/ErikKalkoken/go-set"
)

// Language tags a snippet.
type Language string

const (
	TypeScript Language = "typescript"
	JavaScript Language = "javascript"
	Python     Language = "python"
	Other      Language = "other"
)

// Snippet is one code sample. Replace the whole item to change it.
type Snippet struct {
	Name     string   `yaml:"name"`
	Lines    int      `yaml:"lines"`
	Language Language `yaml:"language"`
	Content  string   `yaml:"content,omitempty"`
}

// FeatureStatus is the delivery state of a feature.
type FeatureStatus string

const (
	StatusLive        FeatureStatus = "live"
	StatusDevelopment FeatureStatus = "development"
	StatusConcept     FeatureStatus = "concept"
	StatusOther       FeatureStatus = "other"
)

// Feature is an application feature record. Since applies to live features,
// ETA to features in development and Priority to concepts.
type Feature struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Status      FeatureStatus `yaml:"status"`
	Since       time.Time     `yaml:"since,omitempty"`
	ETA         time.Time     `yaml:"eta,omitempty"`
	Priority    int           `yaml:"priority,omitempty"`
}

// Description is the text element derived from an item. It is recomputed on
// every call and never cached.
type Description struct {
	Text     string  `yaml:"text"`
	Fill     string  `yaml:"fill"`
	FontSize float64 `yaml:"font_size"`
}

// Catalog is an append-only, insertion-ordered list of snippets.
// Duplicate names are allowed.
type Catalog struct {
	mu       sync.RWMutex
	snippets []Snippet
}

// New returns a catalog holding a copy of snippets.
func New(snippets ...Snippet) *Catalog {
	return &Catalog{snippets: slices.Clone(snippets)}
}

// Add appends s.
func (c *Catalog) Add(s Snippet) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snippets = append(c.snippets, s)
}

// Items returns a copy of all snippets in insertion order.
func (c *Catalog) Items() []Snippet {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.snippets)
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.snippets)
}

// TotalLines sums the line counts. It is 0 for an empty catalog.
func (c *Catalog) TotalLines() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return totalLines(c.snippets)
}

// CountWhere counts the snippets matching pred.
func (c *Catalog) CountWhere(pred func(Snippet) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return countWhere(c.snippets, pred)
}

func totalLines(snippets []Snippet) int {
	total := 0
	for _, s := range snippets {
		total += s.Lines
	}
	return total
}

func countWhere(snippets []Snippet, pred func(Snippet) bool) int {
	n := 0
	for _, s := range snippets {
		if pred(s) {
			n++
		}
	}
	return n
}

// IsTypeScript reports whether s is a TypeScript snippet.
func IsTypeScript(s Snippet) bool {
	return s.Language == TypeScript
}

func (c *Catalog) TypeScriptCount() int {
	return c.CountWhere(IsTypeScript)
}

// Languages returns the distinct languages present.
func (c *Catalog) Languages() set.Set[Language] {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var langs set.Set[Language]
	for _, s := range c.snippets {
		langs.Add(normalizeLanguage(s.Language))
	}
	return langs
}

func normalizeLanguage(l Language) Language {
	if _, ok := LanguagePalette[l]; ok {
		return l
	}
	return Other
}

// Describe maps a snippet at position index to its description.
func Describe(s Snippet, index int) Description {
	return Description{
		Text:     fmt.Sprintf("%d. %s (%d lines)", index+1, s.Name, s.Lines),
		Fill:     LanguagePalette[normalizeLanguage(s.Language)],
		FontSize: SnippetFontSize,
	}
}

// DescribeAll returns one description per snippet, in order.
func (c *Catalog) DescribeAll() []Description {
	items := c.Items()
	out := make([]Description, 0, len(items))
	for i, s := range items {
		out = append(out, Describe(s, i))
	}
	return out
}

// DescribeFeature maps a feature to its status-coloured description.
func DescribeFeature(f Feature) Description {
	fill, ok := StatusPalette[f.Status]
	if !ok || f.Status == "" {
		fill = StatusPalette[StatusOther]
	}
	return Description{
		Text:     fmt.Sprintf("%s: %s", f.Name, f.Status),
		Fill:     fill,
		FontSize: FeatureFontSize,
	}
}

// DescribeSummary combines the snippet count, the line total and the
// TypeScript count into one description. All three come from one snapshot.
func (c *Catalog) DescribeSummary() Description {
	items := c.Items()
	return Description{
		Text: fmt.Sprintf("Total: %d snippets, %d lines (%d TypeScript)",
			len(items), totalLines(items), countWhere(items, IsTypeScript)),
		Fill:     SummaryFill,
		FontSize: SummaryFontSize,
	}
}
