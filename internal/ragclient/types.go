package ragclient

// CodeExample is one ranked search hit from the retrieval engine.
type CodeExample struct {
	Title       string   `json:"title"`
	Language    string   `json:"language"`
	Framework   string   `json:"framework,omitempty"`
	Description string   `json:"description,omitempty"`
	Code        string   `json:"code"`
	FilePath    string   `json:"file_path,omitempty"`
	Repository  string   `json:"repository,omitempty"`
	Score       float64  `json:"score"`
	Tags        []string `json:"tags,omitempty"`
}

// DesignDoc is one design document hit.
type DesignDoc struct {
	Title     string  `json:"title"`
	DocType   string  `json:"doc_type,omitempty"`
	Team      string  `json:"team,omitempty"`
	Project   string  `json:"project,omitempty"`
	Summary   string  `json:"summary,omitempty"`
	Content   string  `json:"content,omitempty"`
	URL       string  `json:"url,omitempty"`
	Author    string  `json:"author,omitempty"`
	UpdatedAt string  `json:"updated_at,omitempty"`
	Score     float64 `json:"score"`
}

// GraphNode is an entity in the knowledge graph.
type GraphNode struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`
}

// GraphEdge is a typed directional relation between two entities.
type GraphEdge struct {
	From string `json:"from"`
	Type string `json:"type"`
	To   string `json:"to"`
	Note string `json:"note,omitempty"`
}

// GraphAnswer is the traversal result for one entity query.
type GraphAnswer struct {
	Entity string      `json:"entity"`
	Nodes  []GraphNode `json:"nodes"`
	Edges  []GraphEdge `json:"edges"`
}

// Stats summarizes the knowledge base contents.
type Stats struct {
	Documents     int            `json:"documents"`
	CodeExamples  int            `json:"code_examples"`
	DesignDocs    int            `json:"design_docs"`
	Entities      int            `json:"entities"`
	Relations     int            `json:"relations"`
	ByLanguage    map[string]int `json:"by_language,omitempty"`
	LastIndexedAt string         `json:"last_indexed_at,omitempty"`
}

// SearchParams are the validated arguments for a code example search.
type SearchParams struct {
	Query     string `json:"query"`
	Language  string `json:"language,omitempty"`
	Framework string `json:"framework,omitempty"`
	Limit     int    `json:"limit"`
}

// DesignDocParams are the validated arguments for a design doc lookup.
type DesignDocParams struct {
	Query   string `json:"query"`
	DocType string `json:"doc_type,omitempty"`
	Team    string `json:"team,omitempty"`
	Project string `json:"project,omitempty"`
}

// GraphQuery are the validated arguments for a knowledge graph traversal.
type GraphQuery struct {
	Entity       string `json:"entity"`
	RelationType string `json:"relation_type,omitempty"`
	Depth        int    `json:"depth"`
}
