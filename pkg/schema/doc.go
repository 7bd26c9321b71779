// Package schema provides runtime validation of loosely typed documents,
// such as grammars decoded from YAML, JSON or Markdown frontmatter.
//
// A Schema maps field names to Types. Fields are required unless wrapped
// with Optional:
//
//	s := schema.Schema{
//	    "axiom":      schema.String(),
//	    "iterations": schema.Optional(schema.Int()),
//	    "rules":      schema.Optional(schema.Map(schema.Symbol(), schema.String())),
//	}
//
//	if err := schema.Validate(s, data); err != nil {
//	    for _, e := range schema.ValidationErrors(err) {
//	        // Handle each failure
//	    }
//	}
//
// Numeric types accept every Go numeric kind as well as json.Number, so the
// same schema works whichever decoder produced the data. Grammar is the
// schema of arbor grammar documents.
package schema
