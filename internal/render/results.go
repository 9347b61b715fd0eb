package render

import (
	"fmt"
	"strings"

	"github.com/teamctx/teamctx/internal/ragclient"
)

// CodeExamples renders a ranked code example list.
func CodeExamples(params ragclient.SearchParams, examples []ragclient.CodeExample) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Code Examples: %q\n\n", params.Query)
	writeFiltersLine(&b, [][2]string{
		{"Language", params.Language},
		{"Framework", params.Framework},
	})

	if len(examples) == 0 {
		fmt.Fprintf(&b, "No code examples found for %q. Try a broader query or drop the filters.\n", params.Query)
		return b.String()
	}

	fmt.Fprintf(&b, "Found %d example(s).\n\n", len(examples))

	for i, ex := range examples {
		title := orPlaceholder(ex.Title, "untitled example")
		fmt.Fprintf(&b, "### %d. %s", i+1, title)
		if ex.Language != "" {
			fmt.Fprintf(&b, " (%s)", ex.Language)
		}
		b.WriteString("\n\n")

		b.WriteString(orPlaceholder(ex.Description, noDescription))
		b.WriteString("\n\n")

		fmt.Fprintf(&b, "```%s\n%s\n```\n\n", ex.Language, strings.TrimRight(ex.Code, "\n"))

		var meta []string
		if ex.Repository != "" || ex.FilePath != "" {
			source := strings.TrimPrefix(ex.Repository+"/"+ex.FilePath, "/")
			meta = append(meta, "Source: "+strings.TrimSuffix(source, "/"))
		}
		if ex.Score > 0 {
			meta = append(meta, fmt.Sprintf("relevance %.2f", ex.Score))
		}
		if len(ex.Tags) > 0 {
			meta = append(meta, "tags: "+strings.Join(ex.Tags, ", "))
		}
		if len(meta) > 0 {
			fmt.Fprintf(&b, "_%s_\n\n", strings.Join(meta, " — "))
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// DesignDocs renders a design document list.
func DesignDocs(params ragclient.DesignDocParams, docs []ragclient.DesignDoc) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Design Documents: %q\n\n", params.Query)
	writeFiltersLine(&b, [][2]string{
		{"Type", params.DocType},
		{"Team", params.Team},
		{"Project", params.Project},
	})

	if len(docs) == 0 {
		fmt.Fprintf(&b, "No design documents found for %q.\n", params.Query)
		return b.String()
	}

	fmt.Fprintf(&b, "Found %d document(s).\n\n", len(docs))

	for i, doc := range docs {
		fmt.Fprintf(&b, "### %d. %s\n\n", i+1, orPlaceholder(doc.Title, "untitled document"))

		var meta []string
		if doc.DocType != "" {
			meta = append(meta, "type: "+doc.DocType)
		}
		if doc.Team != "" {
			meta = append(meta, "team: "+doc.Team)
		}
		if doc.Project != "" {
			meta = append(meta, "project: "+doc.Project)
		}
		if doc.Author != "" {
			meta = append(meta, "author: "+doc.Author)
		}
		if doc.UpdatedAt != "" {
			meta = append(meta, "updated: "+doc.UpdatedAt)
		}
		if len(meta) > 0 {
			fmt.Fprintf(&b, "_%s_\n\n", strings.Join(meta, " · "))
		}

		b.WriteString(orPlaceholder(doc.Summary, noDescription))
		b.WriteString("\n\n")

		if doc.Content != "" {
			fmt.Fprintf(&b, "%s\n\n", excerpt(doc.Content, 1500))
		}
		if doc.URL != "" {
			fmt.Fprintf(&b, "[Full document](%s)\n\n", doc.URL)
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}
