package loam

// GrammarMetadata is the frontmatter of a grammar document. Numeric fields
// are untyped because Loam's strict mode yields json.Number; they are
// checked and converted by the grammar schema.
type GrammarMetadata struct {
	Name        string         `json:"name" mapstructure:"name"`
	Description string         `json:"description" mapstructure:"description"`
	Axiom       string         `json:"axiom" mapstructure:"axiom"`
	Iterations  any            `json:"iterations" mapstructure:"iterations"`
	Angle       any            `json:"angle" mapstructure:"angle"`
	Width       any            `json:"width" mapstructure:"width"`
	Length      any            `json:"length" mapstructure:"length"`
	Rules       map[string]any `json:"rules" mapstructure:"rules"`
	Commands    map[string]any `json:"commands" mapstructure:"commands"`
	Data        map[string]any `json:"data" mapstructure:"data"`
}

// raw rebuilds the document map, omitting absent fields.
func (m GrammarMetadata) raw() map[string]any {
	out := map[string]any{"axiom": m.Axiom}
	set := func(key string, v any) {
		if v != nil {
			out[key] = v
		}
	}
	if m.Name != "" {
		out["name"] = m.Name
	}
	if m.Description != "" {
		out["description"] = m.Description
	}
	set("iterations", m.Iterations)
	set("angle", m.Angle)
	set("width", m.Width)
	set("length", m.Length)
	if len(m.Rules) > 0 {
		out["rules"] = m.Rules
	}
	if len(m.Commands) > 0 {
		out["commands"] = m.Commands
	}
	if len(m.Data) > 0 {
		out["data"] = m.Data
	}
	return out
}
