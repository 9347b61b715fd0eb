// Package schema declares tool argument shapes and validates calls against
// them.
//
// Each tool's shape is a single ToolSpec. Both the MCP tool descriptor and
// the validator derive from it, so the schema advertised to clients and the
// checks enforced on calls can never drift apart. Validation is purely
// structural — no I/O, deterministic — and runs before any cache or backend
// work.
package schema

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/teamctx/teamctx/internal/fault"
)

// FieldType is the declared type of a tool argument.
type FieldType string

const (
	TypeString FieldType = "string"
	TypeNumber FieldType = "number"
	TypeEnum   FieldType = "enum"
)

// FieldSpec describes one argument of a tool.
type FieldSpec struct {
	Name        string
	Type        FieldType
	Description string
	Required    bool

	// Enum lists the allowed values when Type is TypeEnum.
	Enum []string

	// Min and Max bound numeric fields. Nil means unbounded.
	Min *float64
	Max *float64

	// Default is substituted when an optional field is absent. Numeric
	// defaults must be float64 so normalized arguments stay uniform.
	Default any
}

// ToolSpec is the full declared shape of a tool.
type ToolSpec struct {
	Name        string
	Description string
	Fields      []FieldSpec
}

// F returns a float64 pointer, for Min/Max literals.
func F(v float64) *float64 { return &v }

// Tool builds the mcp-go descriptor from the spec.
func (s ToolSpec) Tool() mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(s.Description)}
	for _, f := range s.Fields {
		opts = append(opts, f.toolOption())
	}
	return mcp.NewTool(s.Name, opts...)
}

func (f FieldSpec) toolOption() mcp.ToolOption {
	var props []mcp.PropertyOption
	props = append(props, mcp.Description(f.Description))
	if f.Required {
		props = append(props, mcp.Required())
	}

	switch f.Type {
	case TypeNumber:
		if f.Min != nil {
			props = append(props, mcp.Min(*f.Min))
		}
		if f.Max != nil {
			props = append(props, mcp.Max(*f.Max))
		}
		if d, ok := f.Default.(float64); ok {
			props = append(props, mcp.DefaultNumber(d))
		}
		return mcp.WithNumber(f.Name, props...)
	case TypeEnum:
		props = append(props, mcp.Enum(f.Enum...))
		return mcp.WithString(f.Name, props...)
	default:
		if d, ok := f.Default.(string); ok && d != "" {
			props = append(props, mcp.DefaultString(d))
		}
		return mcp.WithString(f.Name, props...)
	}
}

// Validate checks args against the spec and returns the normalized argument
// map: defaults applied, numbers coerced to float64, unknown keys dropped.
// The normalized map is what handlers pass downstream and what cache keys are
// derived from, so invalid or stray arguments can never reach the backend or
// poison the cache. On failure the error is a *fault.ValidationError naming
// every offending field.
func (s ToolSpec) Validate(args map[string]any) (map[string]any, error) {
	normalized := make(map[string]any, len(s.Fields))
	var errs []fault.FieldError

	for _, f := range s.Fields {
		raw, present := args[f.Name]
		if !present || raw == nil {
			if f.Required {
				errs = append(errs, fault.FieldError{Field: f.Name, Message: "is required"})
				continue
			}
			if f.Default != nil {
				normalized[f.Name] = f.Default
			}
			continue
		}

		value, fieldErr := f.check(raw)
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
			continue
		}
		normalized[f.Name] = value
	}

	if len(errs) > 0 {
		return nil, fault.Validation(s.Name, errs...)
	}
	return normalized, nil
}

func (f FieldSpec) check(raw any) (any, *fault.FieldError) {
	switch f.Type {
	case TypeNumber:
		n, ok := asFloat(raw)
		if !ok {
			return nil, &fault.FieldError{Field: f.Name, Message: "must be a number"}
		}
		if f.Min != nil && n < *f.Min {
			return nil, &fault.FieldError{
				Field:   f.Name,
				Message: fmt.Sprintf("must be at least %g", *f.Min),
			}
		}
		if f.Max != nil && n > *f.Max {
			return nil, &fault.FieldError{
				Field:   f.Name,
				Message: fmt.Sprintf("must be at most %g", *f.Max),
			}
		}
		return n, nil

	case TypeEnum:
		v, ok := raw.(string)
		if !ok {
			return nil, &fault.FieldError{Field: f.Name, Message: "must be a string"}
		}
		for _, allowed := range f.Enum {
			if v == allowed {
				return v, nil
			}
		}
		return nil, &fault.FieldError{
			Field:   f.Name,
			Message: fmt.Sprintf("must be one of: %s", strings.Join(f.Enum, ", ")),
		}

	default:
		v, ok := raw.(string)
		if !ok {
			return nil, &fault.FieldError{Field: f.Name, Message: "must be a string"}
		}
		v = strings.TrimSpace(v)
		if f.Required && v == "" {
			return nil, &fault.FieldError{Field: f.Name, Message: "must not be empty"}
		}
		return v, nil
	}
}

// asFloat accepts the numeric representations a value can arrive in: float64
// from JSON decoding, int variants from in-process callers.
func asFloat(raw any) (float64, bool) {
	switch n := raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}
