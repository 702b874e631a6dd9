// Package jsonschema derives JSON Schema documents from Go types via
// reflection. The schemas describe tool argument shapes in the payload sent
// to the language model, so the model knows which arguments each tool takes.
//
// Field metadata is read from struct tags: the json tag supplies the property
// name, and the jsonschema tag supplies description, enum values, and an
// explicit required marker:
//
//	type Input struct {
//	    Path string `json:"path" jsonschema:"description=Relative file path,required"`
//	    Mode string `json:"mode,omitempty" jsonschema:"enum=read,enum=write"`
//	}
package jsonschema
