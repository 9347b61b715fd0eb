package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/teamctx/teamctx/internal/ragclient"
)

// KnowledgeGraph renders the traversal result for one entity.
func KnowledgeGraph(query ragclient.GraphQuery, answer *ragclient.GraphAnswer) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Knowledge Graph: %s\n\n", query.Entity)

	scope := fmt.Sprintf("depth %d", query.Depth)
	if query.RelationType != "" {
		scope += ", relation: " + query.RelationType
	}
	fmt.Fprintf(&b, "_%s_\n\n", scope)

	if answer == nil || (len(answer.Nodes) == 0 && len(answer.Edges) == 0) {
		fmt.Fprintf(&b, "No knowledge graph facts found for %q.\n", query.Entity)
		return b.String()
	}

	if len(answer.Nodes) > 0 {
		b.WriteString("### Connected Entities\n\n")
		for _, n := range answer.Nodes {
			fmt.Fprintf(&b, "- **%s**", orPlaceholder(n.Name, "unnamed"))
			if n.Type != "" {
				fmt.Fprintf(&b, " (%s)", n.Type)
			}
			fmt.Fprintf(&b, " — %s\n", orPlaceholder(n.Description, noDescription))
		}
		b.WriteString("\n")
	}

	if len(answer.Edges) > 0 {
		b.WriteString("### Relations\n\n")
		for _, e := range answer.Edges {
			fmt.Fprintf(&b, "- %s —%s→ %s", e.From, e.Type, e.To)
			if e.Note != "" {
				fmt.Fprintf(&b, " (%s)", e.Note)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// KnowledgeBaseStats renders the corpus overview used by the knowledge-base
// resource.
func KnowledgeBaseStats(stats *ragclient.Stats) string {
	var b strings.Builder
	b.WriteString("## Team Knowledge Base\n\n")

	if stats == nil {
		b.WriteString("No knowledge base statistics available.\n")
		return b.String()
	}

	fmt.Fprintf(&b, "- Documents: %d\n", stats.Documents)
	fmt.Fprintf(&b, "- Code examples: %d\n", stats.CodeExamples)
	fmt.Fprintf(&b, "- Design docs: %d\n", stats.DesignDocs)
	fmt.Fprintf(&b, "- Graph entities: %d\n", stats.Entities)
	fmt.Fprintf(&b, "- Graph relations: %d\n", stats.Relations)

	if len(stats.ByLanguage) > 0 {
		langs := make([]string, 0, len(stats.ByLanguage))
		for l := range stats.ByLanguage {
			langs = append(langs, l)
		}
		sort.Strings(langs)

		parts := make([]string, 0, len(langs))
		for _, l := range langs {
			parts = append(parts, fmt.Sprintf("%s (%d)", l, stats.ByLanguage[l]))
		}
		fmt.Fprintf(&b, "- By language: %s\n", strings.Join(parts, ", "))
	}

	if stats.LastIndexedAt != "" {
		fmt.Fprintf(&b, "\n_Last indexed: %s_\n", stats.LastIndexedAt)
	}

	return b.String()
}
