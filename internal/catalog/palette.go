package catalog

// Colour tables used by the description mappings. They are configuration:
// change a colour here, not in the mapping functions.

// LanguagePalette maps a snippet language to its fill colour.
var LanguagePalette = map[Language]string{
	TypeScript: "#3178c6",
	JavaScript: "#f1e05a",
	Python:     "#3572A5",
	Other:      "#6f42c1",
}

// StatusPalette maps a feature status to its fill colour. Statuses not listed
// here, including the empty status, use StatusPalette[StatusOther].
var StatusPalette = map[FeatureStatus]string{
	StatusLive:        "#10B981",
	StatusDevelopment: "#F59E0B",
	StatusOther:       "#6B7280",
}

// Font sizes and summary colour of the generated descriptions.
const (
	SnippetFontSize = 20
	FeatureFontSize = 24
	SummaryFontSize = 28
	SummaryFill     = "#60a5fa"
)
