package schema

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/xreflint/xreflint/xreflerr"
)

// LoadFromYAML decodes a SchemaSpec from r and compiles it, the
// data-driven alternative to Builder (Design Notes: "whether that builder
// is populated from source code, a config file, or a DSL is not this
// spec's concern").
func LoadFromYAML(r io.Reader) (Schema, error) {
	var spec SchemaSpec
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&spec); err != nil {
		return Schema{}, xreflerr.NewSchemaLoad("yaml decode", err)
	}
	return Compile(spec)
}
