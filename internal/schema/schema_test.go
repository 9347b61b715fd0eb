package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teamctx/teamctx/internal/fault"
)

func testSpec() ToolSpec {
	return ToolSpec{
		Name:        "search_code_examples",
		Description: "Search team code examples.",
		Fields: []FieldSpec{
			{Name: "query", Type: TypeString, Required: true, Description: "Search query"},
			{Name: "language", Type: TypeString, Description: "Programming language"},
			{Name: "doc_type", Type: TypeEnum, Enum: []string{"architecture", "api"}, Description: "Document type"},
			{Name: "limit", Type: TypeNumber, Min: F(1), Max: F(20), Default: float64(5), Description: "Max results"},
		},
	}
}

func TestValidate_AppliesDefaults(t *testing.T) {
	spec := testSpec()

	got, err := spec.Validate(map[string]any{"query": "auth middleware"})
	require.NoError(t, err)

	assert.Equal(t, "auth middleware", got["query"])
	assert.Equal(t, float64(5), got["limit"])
	assert.NotContains(t, got, "language")
	assert.NotContains(t, got, "doc_type")
}

func TestValidate_MissingRequired(t *testing.T) {
	spec := testSpec()

	_, err := spec.Validate(map[string]any{"limit": float64(3)})
	require.Error(t, err)
	assert.True(t, fault.IsValidation(err))
	assert.Contains(t, err.Error(), "query: is required")
}

func TestValidate_EmptyRequired(t *testing.T) {
	spec := testSpec()

	_, err := spec.Validate(map[string]any{"query": "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query: must not be empty")
}

func TestValidate_EnumMembership(t *testing.T) {
	spec := testSpec()

	got, err := spec.Validate(map[string]any{"query": "q", "doc_type": "api"})
	require.NoError(t, err)
	assert.Equal(t, "api", got["doc_type"])

	_, err = spec.Validate(map[string]any{"query": "q", "doc_type": "wiki"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "doc_type: must be one of: architecture, api")
}

func TestValidate_NumericBounds(t *testing.T) {
	spec := testSpec()

	tests := []struct {
		name    string
		limit   any
		wantErr string
	}{
		{"in range", float64(10), ""},
		{"at min", float64(1), ""},
		{"below min", float64(0), "limit: must be at least 1"},
		{"above max", float64(21), "limit: must be at most 20"},
		{"not a number", "ten", "limit: must be a number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := spec.Validate(map[string]any{"query": "q", "limit": tt.limit})
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_NormalizesIntToFloat(t *testing.T) {
	spec := testSpec()

	got, err := spec.Validate(map[string]any{"query": "q", "limit": 7})
	require.NoError(t, err)
	assert.Equal(t, float64(7), got["limit"])
}

func TestValidate_DropsUnknownKeys(t *testing.T) {
	spec := testSpec()

	got, err := spec.Validate(map[string]any{"query": "q", "bogus": "x"})
	require.NoError(t, err)
	assert.NotContains(t, got, "bogus")
}

func TestValidate_CollectsAllFieldErrors(t *testing.T) {
	spec := testSpec()

	_, err := spec.Validate(map[string]any{"doc_type": "wiki", "limit": float64(0)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query")
	assert.Contains(t, err.Error(), "doc_type")
	assert.Contains(t, err.Error(), "limit")
}

func TestTool_DescriptorMatchesSpec(t *testing.T) {
	def := testSpec().Tool()

	assert.Equal(t, "search_code_examples", def.Name)
	assert.Equal(t, "Search team code examples.", def.Description)

	props := def.InputSchema.Properties
	for _, name := range []string{"query", "language", "doc_type", "limit"} {
		assert.Contains(t, props, name)
	}
	assert.Equal(t, []string{"query"}, def.InputSchema.Required)
}
