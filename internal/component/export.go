package component

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"
)

// SchemaID is the $id of the exported widget tree schema.
const SchemaID = "https://gauntlet.sh/schema/widget-tree.json"

// JSONSchema describes the serialized widget tree as a JSON Schema document.
// Each component becomes a definition keyed by display name; function
// properties are listed under the "x-events" extension.
func (m *Model) JSONSchema() *jsonschema.Schema {
	defs := jsonschema.Definitions{}
	for i := range m.components {
		c := &m.components[i]
		defs[c.Name] = m.componentSchema(c)
	}

	return &jsonschema.Schema{
		Version:     jsonschema.Version,
		ID:          jsonschema.ID(SchemaID),
		Title:       "Gauntlet widget tree",
		Ref:         "#/$defs/" + m.root.Name,
		Definitions: defs,
	}
}

func (m *Model) componentSchema(c *Component) *jsonschema.Schema {
	properties := jsonschema.NewProperties()
	properties.Set("type", &jsonschema.Schema{Const: c.WireTag()})
	required := []string{"type"}

	if c.Kind == KindTextPart {
		properties.Set("value", &jsonschema.Schema{Type: "string"})
		required = append(required, "value")
	}

	var events []map[string]any
	for _, p := range c.Props {
		switch p.Type.Kind {
		case PropFunction:
			args := make([]map[string]any, len(p.Type.Arguments))
			for i, a := range p.Type.Arguments {
				args[i] = map[string]any{
					"name":     a.Name,
					"type":     a.Type.String(),
					"optional": a.Optional,
				}
			}
			events = append(events, map[string]any{"name": p.Name, "arguments": args})
		case PropComponent:
			// Supplied as a child; documented by the children schema.
		default:
			properties.Set(p.Name, typeSchema(p.Type))
			if !p.Optional {
				required = append(required, p.Name)
			}
		}
	}

	if c.HasChildren() {
		var refs []*jsonschema.Schema
		for _, name := range c.AllowedChildren() {
			refs = append(refs, &jsonschema.Schema{Ref: "#/$defs/" + m.DisplayName(name)})
		}
		properties.Set("children", &jsonschema.Schema{
			Type:  "array",
			Items: &jsonschema.Schema{AnyOf: refs},
		})
	}

	s := &jsonschema.Schema{
		Type:                 "object",
		Title:                c.Name,
		Properties:           properties,
		Required:             required,
		AdditionalProperties: jsonschema.FalseSchema,
	}
	if len(events) > 0 {
		s.Extras = map[string]any{"x-events": events}
	}
	return s
}

func typeSchema(t PropertyType) *jsonschema.Schema {
	switch t.Kind {
	case PropString:
		return &jsonschema.Schema{Type: "string"}
	case PropNumber:
		return &jsonschema.Schema{Type: "number"}
	case PropBoolean:
		return &jsonschema.Schema{Type: "boolean"}
	case PropImageSource:
		return &jsonschema.Schema{Type: "string", ContentEncoding: "base64"}
	case PropArray:
		return &jsonschema.Schema{Type: "array", Items: typeSchema(*t.Nested)}
	default:
		panic(fmt.Sprintf("component model: %s has no data schema", t))
	}
}

// ExportJSON renders the model schema as indented JSON.
func (m *Model) ExportJSON() ([]byte, error) {
	return json.MarshalIndent(m.JSONSchema(), "", "  ")
}

// ExportYAML renders the model schema as YAML, preserving key order.
func (m *Model) ExportYAML() ([]byte, error) {
	data, err := json.Marshal(m.JSONSchema())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("failed to convert schema: %w", err)
	}
	blockStyle(&node)
	return yaml.Marshal(&node)
}

// blockStyle drops the flow style yaml.v3 keeps for JSON input.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, child := range n.Content {
		blockStyle(child)
	}
}
