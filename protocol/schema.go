package protocol

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.json
var schemaFS embed.FS

const (
	inputSchemaFile = "input.schema.json"
	inputSchemaURL  = "https://aquarium.local/schemas/" + inputSchemaFile
)

// Validator checks client messages against the embedded JSON schema.
type Validator struct {
	input *jsonschema.Schema
}

// NewValidator compiles the embedded schemas.
func NewValidator() (*Validator, error) {
	data, err := schemaFS.ReadFile("schemas/" + inputSchemaFile)
	if err != nil {
		return nil, fmt.Errorf("reading input schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(inputSchemaURL, bytes.NewReader(data)); err != nil {
		return nil, fmt.Errorf("adding input schema: %w", err)
	}
	s, err := c.Compile(inputSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compiling input schema: %w", err)
	}
	return &Validator{input: s}, nil
}

// DecodeInput validates raw against the input schema and decodes it.
func (v *Validator) DecodeInput(raw []byte) (InputMsg, error) {
	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return InputMsg{}, fmt.Errorf("decoding input: %w", err)
	}
	if err := v.input.Validate(doc); err != nil {
		return InputMsg{}, fmt.Errorf("invalid input: %w", err)
	}
	var msg InputMsg
	if err := json.Unmarshal(raw, &msg); err != nil {
		return InputMsg{}, fmt.Errorf("decoding input: %w", err)
	}
	return msg, nil
}
