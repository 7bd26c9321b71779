// Package dto defines the document shapes grammars take on the wire and on
// disk, and converts them to and from domain values.
package dto

import (
	"fmt"
	"sort"

	"github.com/aretw0/arbor/pkg/domain"
	"github.com/aretw0/arbor/pkg/registry"
	"github.com/aretw0/arbor/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

// RuleDocument is one production. Scale and ScaleBy are mutually exclusive.
type RuleDocument struct {
	Replace string  `json:"replace" yaml:"replace" mapstructure:"replace"`
	Scale   float64 `json:"scale,omitempty" yaml:"scale,omitempty" mapstructure:"scale"`
	ScaleBy string  `json:"scale_by,omitempty" yaml:"scale_by,omitempty" mapstructure:"scale_by"`
}

// GrammarDocument is the serializable form of a grammar.
type GrammarDocument struct {
	Name        string                  `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description string                  `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	Axiom       string                  `json:"axiom" yaml:"axiom" mapstructure:"axiom"`
	Iterations  int                     `json:"iterations" yaml:"iterations" mapstructure:"iterations"`
	Angle       float64                 `json:"angle" yaml:"angle" mapstructure:"angle"`
	Width       float64                 `json:"width" yaml:"width" mapstructure:"width"`
	Length      float64                 `json:"length,omitempty" yaml:"length,omitempty" mapstructure:"length"`
	Rules       map[string]RuleDocument `json:"rules,omitempty" yaml:"rules,omitempty" mapstructure:"rules"`
	Commands    map[string]string       `json:"commands,omitempty" yaml:"commands,omitempty" mapstructure:"commands"`
	Data        map[string]float64      `json:"data,omitempty" yaml:"data,omitempty" mapstructure:"data"`
}

// Decode validates raw against schema.Grammar and decodes it. Rules given
// as bare strings are expanded to RuleDocuments.
func Decode(raw map[string]any) (GrammarDocument, error) {
	var doc GrammarDocument
	if err := schema.Validate(schema.Grammar, raw); err != nil {
		return doc, fmt.Errorf("%w: %w", domain.ErrInvalidGrammar, err)
	}

	normalized := make(map[string]any, len(raw))
	for k, v := range raw {
		normalized[k] = v
	}
	if rules, ok := raw["rules"].(map[string]any); ok {
		expanded := make(map[string]any, len(rules))
		for sym, r := range rules {
			if s, ok := r.(string); ok {
				expanded[sym] = map[string]any{"replace": s}
			} else {
				expanded[sym] = r
			}
		}
		normalized["rules"] = expanded
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &doc,
		ErrorUnused: true,
	})
	if err != nil {
		return doc, err
	}
	if err := decoder.Decode(normalized); err != nil {
		return doc, fmt.Errorf("%w: %w", domain.ErrInvalidGrammar, err)
	}
	return doc, nil
}

// ToGrammar converts the document into a domain grammar.
func (d GrammarDocument) ToGrammar() (domain.Grammar, error) {
	g := domain.Grammar{
		Name:        d.Name,
		Description: d.Description,
		Axiom:       d.Axiom,
		Iterations:  d.Iterations,
		Angle:       d.Angle,
		Width:       d.Width,
		Length:      d.Length,
	}

	if len(d.Rules) > 0 {
		g.Rules = make(domain.Rules, len(d.Rules))
		for key, r := range d.Rules {
			sym, ok := domain.ParseSymbol(key)
			if !ok {
				return g, fmt.Errorf("%w: invalid rule symbol %q", domain.ErrInvalidGrammar, key)
			}
			rule := domain.Rule{Replacement: r.Replace}
			switch {
			case r.Scale != 0 && r.ScaleBy != "":
				return g, fmt.Errorf("%w: rule %q sets both scale and scale_by", domain.ErrInvalidGrammar, key)
			case r.Scale != 0:
				rule.Transform = domain.Scale(r.Scale)
			case r.ScaleBy != "":
				if _, ok := d.Data[r.ScaleBy]; !ok {
					return g, fmt.Errorf("%w: rule %q scales by undefined coefficient %q", domain.ErrInvalidGrammar, key, r.ScaleBy)
				}
				rule.Transform = domain.ScaleBy(r.ScaleBy)
			}
			g.Rules[sym] = rule
		}
	}

	if len(d.Commands) > 0 {
		g.Commands = make(domain.Bindings, len(d.Commands))
		for key, name := range d.Commands {
			sym, ok := domain.ParseSymbol(key)
			if !ok {
				return g, fmt.Errorf("%w: invalid command symbol %q", domain.ErrInvalidGrammar, key)
			}
			cmd, ok := registry.ByName(name)
			if !ok {
				return g, fmt.Errorf("%w: unknown command %q for %q (have %v)", domain.ErrInvalidGrammar, name, key, registry.Names())
			}
			g.Commands[sym] = cmd
		}
	}

	if len(d.Data) > 0 {
		coeffs := make(domain.Coefficients, len(d.Data))
		for k, v := range d.Data {
			coeffs[k] = v
		}
		g.Data = coeffs
	}

	return g, g.Validate()
}

// FromGrammar converts g into a document. It fails when a rule transform or
// command binding has no document form.
func FromGrammar(g domain.Grammar) (GrammarDocument, error) {
	d := GrammarDocument{
		Name:        g.Name,
		Description: g.Description,
		Axiom:       g.Axiom,
		Iterations:  g.Iterations,
		Angle:       g.Angle,
		Width:       g.Width,
		Length:      g.Length,
	}

	src, _ := g.Data.(domain.CoefficientSource)
	for _, sym := range sortedSymbols(g.Rules) {
		rule := g.Rules[sym]
		r := RuleDocument{Replace: rule.Replacement}
		switch t := rule.Transform.(type) {
		case nil:
		case domain.Scale:
			r.Scale = float64(t)
		case domain.ScaleBy:
			r.ScaleBy = string(t)
			if src != nil {
				if v, ok := src.Coefficient(string(t)); ok {
					if d.Data == nil {
						d.Data = make(map[string]float64)
					}
					d.Data[string(t)] = v
				}
			}
		default:
			return d, fmt.Errorf("rule %q: transform %T has no document form", rune(sym), rule.Transform)
		}
		if d.Rules == nil {
			d.Rules = make(map[string]RuleDocument, len(g.Rules))
		}
		d.Rules[sym.String()] = r
	}

	for sym, cmd := range g.Commands {
		name, ok := registry.NameOf(cmd)
		if !ok {
			return d, fmt.Errorf("command %q: %T has no document form", rune(sym), cmd)
		}
		if d.Commands == nil {
			d.Commands = make(map[string]string, len(g.Commands))
		}
		d.Commands[sym.String()] = name
	}

	return d, nil
}

func sortedSymbols(r domain.Rules) []domain.Symbol {
	out := make([]domain.Symbol, 0, len(r))
	for sym := range r {
		out = append(out, sym)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
