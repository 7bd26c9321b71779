package schema

// Schema is a map of field names to their expected types.
// Fields are required unless wrapped with Optional.
type Schema map[string]Type

// Validate checks if data conforms to the schema.
// Returns an *AggregateError with every failure found, in field order.
func Validate(schema Schema, data map[string]any) error {
	if len(schema) == 0 {
		return nil
	}

	var errs []error
	for _, fieldName := range sortedKeys(toAny(schema)) {
		fieldType := schema[fieldName]
		value, exists := data[fieldName]
		if !exists || value == nil {
			if IsOptional(fieldType) {
				continue
			}
			errs = append(errs, &ValidationError{Key: fieldName, Reason: "required"})
			continue
		}

		if err := fieldType.Validate(value); err != nil {
			errs = append(errs, &ValidationError{Key: fieldName, Reason: err.Error(), Value: value})
		}
	}

	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

// ValidateStrict is Validate plus a failure for every key of data that the
// schema does not define.
func ValidateStrict(schema Schema, data map[string]any) error {
	var errs []error
	if err := Validate(schema, data); err != nil {
		errs = append(errs, ValidationErrors(err)...)
	}
	for _, key := range sortedKeys(data) {
		if _, ok := schema[key]; !ok {
			errs = append(errs, &ValidationError{Key: key, Reason: "unknown field"})
		}
	}
	if len(errs) > 0 {
		return &AggregateError{Errors: errs}
	}
	return nil
}

func toAny(s Schema) map[string]any {
	out := make(map[string]any, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
