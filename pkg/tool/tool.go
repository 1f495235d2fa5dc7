package tool

import (
	"context"
	"encoding/json"
	"errors"
	"maps"

	"github.com/google/jsonschema-go/jsonschema"
)

var (
	ErrInvalidTool       = errors.New("invalid tool")
	ErrInvalidParameters = errors.New("invalid parameters")
)

type Provider interface {
	Tools(ctx context.Context) ([]Tool, error)
	Execute(ctx context.Context, name string, parameters map[string]any) (any, error)
}

type Tool struct {
	Name        string
	Description string

	// JSON schema of the arguments object
	Parameters map[string]any
}

// InputSchema converts the parameter map into a typed schema whose root is
// always an object.
func (t Tool) InputSchema() (*jsonschema.Schema, error) {
	data, err := json.Marshal(NormalizeSchema(t.Parameters))

	if err != nil {
		return nil, err
	}

	schema := new(jsonschema.Schema)

	if err := schema.UnmarshalJSON(data); err != nil {
		return nil, err
	}

	if schema.Type != "object" {
		return nil, errors.New("tool " + t.Name + ": parameters must describe an object")
	}

	return schema, nil
}

// NormalizeSchema fills in a missing type, properties or items. The input map
// is not modified.
func NormalizeSchema(schema map[string]any) map[string]any {
	result := maps.Clone(schema)

	if result == nil {
		result = map[string]any{}
	}

	if result["type"] == nil {
		result["type"] = "object"

		if result["properties"] == nil && result["items"] != nil {
			result["type"] = "array"
		}
	}

	switch result["type"] {
	case "object":
		if result["properties"] == nil {
			result["properties"] = map[string]any{}
		}

	case "array":
		if result["items"] == nil {
			result["items"] = map[string]any{"type": "string"}
		}
	}

	return result
}
