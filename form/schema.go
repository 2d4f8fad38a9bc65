package form

import (
	"fmt"

	"github.com/bytedance/sonic"
	"github.com/eino-contrib/jsonschema"
)

// JSONSchema describes RequestForm for tool callers and the CLI.
func JSONSchema() (string, error) {
	schema := jsonschema.Reflect(&RequestForm{})
	schema.Title = "Service request"
	schema.Description = "Request form for an AC service visit: what is needed and where and when and how to reach the visitor."
	data, err := sonic.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON schema: %w", err)
	}
	return string(data), nil
}
