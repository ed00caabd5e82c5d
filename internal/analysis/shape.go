package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// expectedShape describes the object the prompt asks for. It is used for
// diagnostics only and never rejects a reply.
const expectedShape = `{
  "type": "object",
  "required": ["document_type", "fields", "summary"],
  "properties": {
    "document_type": {"type": "string", "minLength": 1},
    "fields": {"type": "object"},
    "summary": {
      "type": "array",
      "minItems": 1,
      "maxItems": 5,
      "items": {"type": "string"}
    }
  }
}`

var (
	shapeOnce   sync.Once
	shapeSchema *jsonschema.Schema
	shapeErr    error
)

func compiledShape() (*jsonschema.Schema, error) {
	shapeOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("analysis.json", strings.NewReader(expectedShape)); err != nil {
			shapeErr = fmt.Errorf("add schema: %w", err)
			return
		}
		shapeSchema, shapeErr = compiler.Compile("analysis.json")
	})
	return shapeSchema, shapeErr
}

// CheckShape reports how doc deviates from the expected analysis shape.
// A nil error means the object matches.
func CheckShape(doc []byte) error {
	schema, err := compiledShape()
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(doc))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("unmarshal document: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("document does not match expected shape: %w", err)
	}
	return nil
}
