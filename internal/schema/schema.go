// File: internal/schema/schema.go
// Brief: Embedded JSON Schemas and structural validation of config/style docs.

// Package schema validates clispec configuration and style documents against
// the embedded, versioned JSON Schemas. Validation is structural and fatal:
// a document that fails here is rejected before resolution begins.
package schema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/example/clispec/internal/document"
)

//go:embed clispec.schema.1.0.0.json
var coreSchemaJSON []byte

//go:embed clispec_style.schema.1.0.0.json
var styleSchemaJSON []byte

// Violation is one schema non-conformance with its instance location.
type Violation struct {
	Path    string
	Message string
}

// Error reports that a document failed structural validation. It lists every
// leaf violation the validator produced.
type Error struct {
	Schema     string
	Violations []Violation
}

func (e *Error) Error() string {
	if len(e.Violations) == 0 {
		return fmt.Sprintf("%s schema validation failed", e.Schema)
	}
	first := e.Violations[0]
	loc := first.Path
	if loc == "" {
		loc = "<root>"
	}
	msg := fmt.Sprintf("%s schema validation failed at %s: %s", e.Schema, loc, first.Message)
	if extra := len(e.Violations) - 1; extra > 0 {
		msg += fmt.Sprintf(" (and %d more)", extra)
	}
	return msg
}

type compiled struct {
	once   sync.Once
	schema *jsonschema.Schema
	err    error
}

var (
	coreSchema  compiled
	styleSchema compiled
)

func (c *compiled) load(name string, data []byte) (*jsonschema.Schema, error) {
	c.once.Do(func() {
		raw, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			c.err = fmt.Errorf("decode embedded schema %s: %w", name, err)
			return
		}
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(name, raw); err != nil {
			c.err = fmt.Errorf("register embedded schema %s: %w", name, err)
			return
		}
		c.schema, c.err = compiler.Compile(name)
	})
	return c.schema, c.err
}

// ValidateConfig checks a raw configuration document against the core schema.
func ValidateConfig(doc *document.Value) error {
	sch, err := coreSchema.load("clispec.schema.1.0.0.json", coreSchemaJSON)
	if err != nil {
		return err
	}
	return validate(sch, "config", doc)
}

// ValidateStyle checks a declarative style document against the style schema.
func ValidateStyle(doc *document.Value) error {
	sch, err := styleSchema.load("clispec_style.schema.1.0.0.json", styleSchemaJSON)
	if err != nil {
		return err
	}
	return validate(sch, "style", doc)
}

func validate(sch *jsonschema.Schema, name string, doc *document.Value) error {
	// Round-trip through JSON so the validator sees canonical number and
	// container types regardless of how the document was built.
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document for validation: %w", err)
	}
	instance, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decode document for validation: %w", err)
	}
	err = sch.Validate(instance)
	if err == nil {
		return nil
	}
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	out := &Error{Schema: name}
	for _, leaf := range flatten(ve) {
		out.Violations = append(out.Violations, Violation{
			Path:    strings.Join(leaf.InstanceLocation, "/"),
			Message: fmt.Sprintf("%v", leaf.ErrorKind),
		})
	}
	return out
}

// flatten collects the leaf causes of a validation error tree.
func flatten(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var out []*jsonschema.ValidationError
	for _, cause := range ve.Causes {
		out = append(out, flatten(cause)...)
	}
	return out
}
