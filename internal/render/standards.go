package render

import (
	"fmt"
	"sort"
	"strings"
)

// sectionHeadings maps the section keys the backend stores to their human
// headings. Keys not listed here fall back to titleCase.
var sectionHeadings = map[string]string{
	"naming_conventions": "Naming Conventions",
	"code_style":         "Code Style",
	"formatting":         "Formatting",
	"imports":            "Imports",
	"error_handling":     "Error Handling",
	"testing":            "Testing",
	"documentation":      "Documentation",
	"security":           "Security",
	"performance":        "Performance",
	"best_practices":     "Best Practices",
}

// CodingStandards renders the standards sections for a language. Sections
// arrive as the backend's raw map; keys are emitted in sorted order so the
// output is deterministic.
func CodingStandards(language, category string, sections map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Coding Standards: %s\n\n", titleCase(language))
	if category != "" {
		fmt.Fprintf(&b, "_Category: %s_\n\n", category)
	}

	if len(sections) == 0 {
		fmt.Fprintf(&b, "No coding standards found for %s.\n", language)
		return b.String()
	}

	keys := make([]string, 0, len(sections))
	for k := range sections {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		heading, ok := sectionHeadings[key]
		if !ok {
			heading = titleCase(key)
		}
		fmt.Fprintf(&b, "### %s\n\n", heading)
		writeSectionValue(&b, sections[key], 0)
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// writeSectionValue renders one section body. Maps become sorted bullet
// lists, slices become bullets, scalars become paragraphs or inline values.
func writeSectionValue(b *strings.Builder, value any, indent int) {
	prefix := strings.Repeat("  ", indent)

	switch v := value.(type) {
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			switch child := v[k].(type) {
			case map[string]any, []any:
				fmt.Fprintf(b, "%s- **%s**:\n", prefix, k)
				writeSectionValue(b, child, indent+1)
			default:
				fmt.Fprintf(b, "%s- %s: %s\n", prefix, k, scalar(child))
			}
		}
	case []any:
		for _, item := range v {
			switch child := item.(type) {
			case map[string]any, []any:
				writeSectionValue(b, child, indent)
			default:
				fmt.Fprintf(b, "%s- %s\n", prefix, scalar(child))
			}
		}
	default:
		fmt.Fprintf(b, "%s%s\n", prefix, scalar(v))
	}
}

func scalar(v any) string {
	if v == nil {
		return noDescription
	}
	if s, ok := v.(string); ok {
		return orPlaceholder(s, noDescription)
	}
	return fmt.Sprintf("%v", v)
}
