// Package render turns raw retrieval results into the Markdown text blocks
// returned to the MCP client.
//
// Every function here is pure and total over its input shape: an empty result
// list renders a "no results" sentence instead of an empty document, and
// missing fields render a placeholder instead of panicking. This is the layer
// the test suite exercises without any network dependency — byte-identical
// output for identical input is what makes the cache idempotence law hold.
package render

import (
	"fmt"
	"strings"
)

const noDescription = "_no description_"

// orPlaceholder substitutes placeholder for an empty value.
func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

// titleCase turns a snake_case section key into a heading: "naming_conventions"
// becomes "Naming Conventions".
func titleCase(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// excerpt truncates s to at most max runes, appending an ellipsis when cut.
func excerpt(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return strings.TrimSpace(string(runes[:max])) + "…"
}

// writeFiltersLine writes an italic "filters" line for the non-empty pairs.
func writeFiltersLine(b *strings.Builder, pairs [][2]string) {
	var parts []string
	for _, p := range pairs {
		if p[1] != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", p[0], p[1]))
		}
	}
	if len(parts) > 0 {
		fmt.Fprintf(b, "_%s_\n\n", strings.Join(parts, " · "))
	}
}
