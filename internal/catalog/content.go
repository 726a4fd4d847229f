package catalog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Dictionary is a source dictionary shown as a counted node.
type Dictionary struct {
	ID      string `yaml:"id"`
	Name    string `yaml:"name,omitempty"`
	Entries int    `yaml:"entries"`
	Color   string `yaml:"color,omitempty"`
}

var titleCase = cases.Title(language.Und)

// Label is Name, or the ID title-cased with dashes as spaces.
func (d Dictionary) Label() string {
	if d.Name != "" {
		return d.Name
	}
	return titleCase.String(strings.ReplaceAll(d.ID, "-", " "))
}

// Stat is a headline figure on the summary card.
type Stat struct {
	Title string `yaml:"title"`
	Value string `yaml:"value"`
	Color string `yaml:"color"`
}

// Content is everything the scenes display.
type Content struct {
	Title         string            `yaml:"title"`
	Subtitle      string            `yaml:"subtitle"`
	Author        string            `yaml:"author"`
	RepositoryURL string            `yaml:"repository_url"`
	Snippets      []Snippet         `yaml:"snippets"`
	Features      []Feature         `yaml:"features"`
	Entries       []DictionaryEntry `yaml:"entries"`
	Dictionaries  []Dictionary      `yaml:"dictionaries"`
	Stats         []Stat            `yaml:"stats"`
	Closing       []string          `yaml:"closing"`
}

// Catalog returns a new catalog over the content snippets.
func (c *Content) Catalog() *Catalog {
	return New(c.Snippets...)
}

// Validate checks every entry with AssertDictionaryEntry.
func (c *Content) Validate() error {
	for i, e := range c.Entries {
		if err := AssertDictionaryEntry(e); err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
	}
	return nil
}

// LoadFile reads content from a YAML file.
func LoadFile(path string) (*Content, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse decodes YAML content. Entries are checked in their raw decoded form
// first, so shape errors are reported before any field is coerced.
func Parse(data []byte) (*Content, error) {
	var raw struct {
		Entries []map[string]any `yaml:"entries"`
	}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	for i, e := range raw.Entries {
		if err := AssertDictionaryEntry(e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
	}

	var c Content
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// WriteFile stores content as YAML.
func WriteFile(c *Content, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultContent returns the SagaScape presentation data.
func DefaultContent() *Content {
	return &Content{
		Title:         "SagaScape",
		Subtitle:      "Old Norse Digital Study Environment",
		Author:        "CSE 310 Module 2: TypeScript Data Layer",
		RepositoryURL: "https://github.com/soulphimic2/SagaScape-Motion-Canvas-Animation",
		Snippets: []Snippet{
			{Name: "Dictionary Interface", Lines: 25, Language: TypeScript},
			{Name: "AnimatedDiagram Class", Lines: 85, Language: TypeScript},
			{Name: "Type Guards", Lines: 35, Language: TypeScript},
			{Name: "Animation Helpers", Lines: 42, Language: TypeScript},
		},
		Features: []Feature{
			{Name: "TypeScript Interfaces", Description: "Strongly-typed data structures", Status: StatusLive, Since: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
			{Name: "Generic Classes", Description: "Reusable animated components", Status: StatusLive, Since: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC)},
			{Name: "Discriminated Unions", Description: "Typed animation variants", Status: StatusDevelopment, ETA: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)},
			{Name: "Type Guards", Description: "Runtime shape checks", Status: StatusLive, Since: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)},
		},
		Entries: []DictionaryEntry{
			{Word: "maðr", Definitions: []string{"man", "person"}, Language: OldNorse},
			{Word: "konungr", Definitions: []string{"king"}, Language: OldNorse},
			{Word: "saga", Definitions: []string{"story", "history"}, Language: OldNorse},
		},
		Dictionaries: []Dictionary{
			{ID: "cleasby-vigfusson", Name: "Cleasby & Vigfusson", Entries: 35207, Color: "#8b5cf6"},
			{ID: "geir-zoëga", Entries: 28000, Color: "#ec4899"},
			{ID: "johan-fritzner", Entries: 42000, Color: "#10b981"},
		},
		Stats: []Stat{
			{Title: "Lines of TypeScript", Value: "400+", Color: "#3b82f6"},
			{Title: "Custom Interfaces", Value: "12+", Color: "#8b5cf6"},
			{Title: "Animation Types", Value: "4", Color: "#ec4899"},
			{Title: "Code Quality", Value: "100%", Color: "#10b981"},
		},
		Closing: []string{
			"Thank you for watching!",
			"This demonstrates CSE 310 Module 2 requirements:",
			"• TypeScript Data Layer Implementation",
			"• 400+ lines of documented code",
			"• Advanced TypeScript features",
			"• Motion Canvas integration",
		},
	}
}
