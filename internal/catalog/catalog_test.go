package catalog_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ErikKalkoken/go-set"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/sagascape/internal/catalog"
)

func TestEmptyCatalog(t *testing.T) {
	c := catalog.New()
	assert.Equal(t, 0, c.TotalLines())
	assert.Equal(t, 0, c.CountWhere(catalog.IsTypeScript))
	assert.Equal(t, 0, c.CountWhere(func(catalog.Snippet) bool { return true }))
	assert.Empty(t, c.DescribeAll())
	assert.Empty(t, c.Items())
	assert.Equal(t, 0, c.Languages().Size())
}

func TestAggregates(t *testing.T) {
	c := catalog.New()
	c.Add(catalog.Snippet{Name: "a", Lines: 25, Language: catalog.TypeScript})
	c.Add(catalog.Snippet{Name: "b", Lines: 42, Language: catalog.Python})

	assert.Equal(t, 67, c.TotalLines())
	assert.Equal(t, 1, c.CountWhere(catalog.IsTypeScript))
	assert.Equal(t, 1, c.TypeScriptCount())
	assert.Equal(t, 2, c.Len())
	assert.True(t, c.Languages().Equal(set.Of(catalog.TypeScript, catalog.Python)))
}

func TestDuplicatesAllowed(t *testing.T) {
	s := catalog.Snippet{Name: "Type Guards", Lines: 35, Language: catalog.TypeScript}
	c := catalog.New(s)
	c.Add(s)
	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 70, c.TotalLines())
}

func TestItemsIsCopy(t *testing.T) {
	c := catalog.New(catalog.Snippet{Name: "a", Lines: 1, Language: catalog.TypeScript})
	items := c.Items()
	items[0].Name = "changed"
	items = append(items, catalog.Snippet{Name: "extra"})
	assert.Equal(t, "a", c.Items()[0].Name)
	assert.Equal(t, 1, c.Len())

	src := []catalog.Snippet{{Name: "x"}}
	c2 := catalog.New(src...)
	src[0].Name = "y"
	assert.Equal(t, "x", c2.Items()[0].Name)
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		lang catalog.Language
		want string
	}{
		{catalog.TypeScript, "#3178c6"},
		{catalog.JavaScript, "#f1e05a"},
		{catalog.Python, "#3572A5"},
		{catalog.Other, "#6f42c1"},
		{catalog.Language("rust"), "#6f42c1"},
		{catalog.Language(""), "#6f42c1"},
	}
	for _, tt := range tests {
		t.Run(string(tt.lang), func(t *testing.T) {
			s := catalog.Snippet{Name: "Type Guards", Lines: 35, Language: tt.lang}
			d := catalog.Describe(s, 2)
			assert.Equal(t, "3. Type Guards (35 lines)", d.Text)
			assert.Equal(t, tt.want, d.Fill)
			assert.Equal(t, float64(catalog.SnippetFontSize), d.FontSize)
			assert.Equal(t, d, catalog.Describe(s, 2))
		})
	}
}

func TestDescribeAll(t *testing.T) {
	c := catalog.DefaultContent().Catalog()
	first := c.DescribeAll()
	second := c.DescribeAll()
	assert.Equal(t, first, second)
	assert.Len(t, first, 4)
	assert.Equal(t, "1. Dictionary Interface (25 lines)", first[0].Text)
	assert.Equal(t, "4. Animation Helpers (42 lines)", first[3].Text)
}

func TestDescribeFeature(t *testing.T) {
	tests := []struct {
		status catalog.FeatureStatus
		want   string
	}{
		{catalog.StatusLive, "#10B981"},
		{catalog.StatusDevelopment, "#F59E0B"},
		{catalog.StatusConcept, "#6B7280"},
		{catalog.StatusOther, "#6B7280"},
		{"", "#6B7280"},
		{"archived", "#6B7280"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			d := catalog.DescribeFeature(catalog.Feature{Name: "Type Guards", Status: tt.status})
			assert.Equal(t, tt.want, d.Fill)
			assert.Equal(t, "Type Guards: "+string(tt.status), d.Text)
			assert.Equal(t, float64(catalog.FeatureFontSize), d.FontSize)
		})
	}
}

func TestDescribeSummary(t *testing.T) {
	c := catalog.DefaultContent().Catalog()
	c.Add(catalog.Snippet{Name: "script", Lines: 10, Language: catalog.Python})
	d := c.DescribeSummary()
	assert.Equal(t, "Total: 5 snippets, 197 lines (4 TypeScript)", d.Text)
	assert.Equal(t, catalog.SummaryFill, d.Fill)
}

func TestDescribeSummaryIsConsistentUnderAdds(t *testing.T) {
	c := catalog.New()
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			c.Add(catalog.Snippet{Name: fmt.Sprintf("s%d.ts", i), Lines: 1, Language: catalog.TypeScript})
		}
	}()

	for i := 0; i < 200; i++ {
		var n, lines, ts int
		_, err := fmt.Sscanf(c.DescribeSummary().Text, "Total: %d snippets, %d lines (%d TypeScript)", &n, &lines, &ts)
		require.NoError(t, err)
		assert.Equal(t, n, lines)
		assert.Equal(t, n, ts)
	}
	wg.Wait()
	assert.Equal(t, "Total: 500 snippets, 500 lines (500 TypeScript)", c.DescribeSummary().Text)
}
