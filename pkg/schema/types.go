package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"
)

// Type defines the contract for field validation.
// Implementations determine how values are validated against a type.
type Type interface {
	// Name returns the human-readable name of the type (e.g., "string", "int").
	Name() string
	// Validate checks if a value conforms to this type.
	Validate(value any) error
}

// --- Built-in Type Implementations ---

// StringType validates string values.
type StringType struct{}

func (t *StringType) Name() string { return "string" }

func (t *StringType) Validate(value any) error {
	if _, ok := value.(string); !ok {
		return fmt.Errorf("expected string, got %T", value)
	}
	return nil
}

// IntType validates integer values. Whole floats and json.Number are
// accepted since decoders produce them for integers.
type IntType struct{}

func (t *IntType) Name() string { return "int" }

func (t *IntType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) {
			return nil
		}
		return fmt.Errorf("expected int, got float (not a whole number)")
	case json.Number:
		if _, err := v.Int64(); err != nil {
			return fmt.Errorf("expected int, got %q", v.String())
		}
		return nil
	default:
		return fmt.Errorf("expected int, got %T", value)
	}
}

// FloatType validates finite numeric values.
type FloatType struct{}

func (t *FloatType) Name() string { return "float" }

func (t *FloatType) Validate(value any) error {
	switch v := value.(type) {
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return nil
	case float32:
		return finite(float64(v))
	case float64:
		return finite(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return fmt.Errorf("expected float, got %q", v.String())
		}
		return finite(f)
	default:
		return fmt.Errorf("expected float, got %T", value)
	}
}

func finite(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("expected finite number, got %v", f)
	}
	return nil
}

// SymbolType validates one-character strings other than the parameter
// delimiters.
type SymbolType struct{}

func (t *SymbolType) Name() string { return "symbol" }

func (t *SymbolType) Validate(value any) error {
	s, ok := value.(string)
	if !ok {
		return fmt.Errorf("expected symbol, got %T", value)
	}
	if len(s) != 1 {
		return fmt.Errorf("expected a single character, got %q", s)
	}
	if s == "(" || s == ")" {
		return fmt.Errorf("%q is a parameter delimiter", s)
	}
	return nil
}

// SliceType validates slices of a specific element type.
type SliceType struct {
	elemType Type
}

func (t *SliceType) Name() string {
	return fmt.Sprintf("[%s]", t.elemType.Name())
}

func (t *SliceType) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return fmt.Errorf("expected slice, got %T", value)
	}
	for i := 0; i < rv.Len(); i++ {
		if err := t.elemType.Validate(rv.Index(i).Interface()); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

// MapType validates string-keyed maps. Keys are checked against keyType
// and values against elemType.
type MapType struct {
	keyType  Type
	elemType Type
}

func (t *MapType) Name() string {
	return fmt.Sprintf("{%s:%s}", t.keyType.Name(), t.elemType.Name())
}

func (t *MapType) Validate(value any) error {
	m, err := asMap(value)
	if err != nil {
		return err
	}
	for _, k := range sortedKeys(m) {
		if err := t.keyType.Validate(k); err != nil {
			return fmt.Errorf("key %q: %w", k, err)
		}
		if err := t.elemType.Validate(m[k]); err != nil {
			return fmt.Errorf("%s: %w", k, err)
		}
	}
	return nil
}

// ObjectType validates a nested map against a schema.
type ObjectType struct {
	schema Schema
}

func (t *ObjectType) Name() string {
	keys := make([]string, 0, len(t.schema))
	for k, typ := range t.schema {
		keys = append(keys, k+":"+typ.Name())
	}
	sort.Strings(keys)
	return "{" + strings.Join(keys, ",") + "}"
}

func (t *ObjectType) Validate(value any) error {
	m, err := asMap(value)
	if err != nil {
		return err
	}
	return Validate(t.schema, m)
}

// OneOfType accepts a value matching any of its alternatives.
type OneOfType struct {
	alternatives []Type
}

func (t *OneOfType) Name() string {
	names := make([]string, len(t.alternatives))
	for i, a := range t.alternatives {
		names[i] = a.Name()
	}
	return strings.Join(names, "|")
}

func (t *OneOfType) Validate(value any) error {
	for _, a := range t.alternatives {
		if a.Validate(value) == nil {
			return nil
		}
	}
	return fmt.Errorf("expected %s, got %T", t.Name(), value)
}

// OptionalType marks a field that may be absent. A nil value counts as absent.
type OptionalType struct {
	Type
}

func (t *OptionalType) Name() string { return t.Type.Name() + "?" }

func (t *OptionalType) Validate(value any) error {
	if value == nil {
		return nil
	}
	return t.Type.Validate(value)
}

// CustomType applies a user-defined validation function.
type CustomType struct {
	name     string
	validate func(any) error
}

func (t *CustomType) Name() string { return t.name }

func (t *CustomType) Validate(value any) error {
	return t.validate(value)
}

// --- Factory Functions ---

// String creates a string type validator.
func String() Type { return &StringType{} }

// Int creates an integer type validator.
func Int() Type { return &IntType{} }

// Float creates a float type validator.
func Float() Type { return &FloatType{} }

// Symbol creates a grammar symbol validator.
func Symbol() Type { return &SymbolType{} }

// Slice creates a slice type validator for elements of the given type.
func Slice(elemType Type) Type {
	return &SliceType{elemType: elemType}
}

// Map creates a map validator.
func Map(keyType, elemType Type) Type {
	return &MapType{keyType: keyType, elemType: elemType}
}

// Object creates a nested-schema validator.
func Object(s Schema) Type {
	return &ObjectType{schema: s}
}

// OneOf creates a validator accepting any of the given types.
func OneOf(alternatives ...Type) Type {
	return &OneOfType{alternatives: alternatives}
}

// Optional marks t as not required.
func Optional(t Type) Type {
	return &OptionalType{Type: t}
}

// Custom creates a custom type validator with a user-defined function.
func Custom(name string, validate func(any) error) Type {
	return &CustomType{name: name, validate: validate}
}

// IsOptional reports whether t may be absent.
func IsOptional(t Type) bool {
	_, ok := t.(*OptionalType)
	return ok
}

func asMap(value any) (map[string]any, error) {
	switch m := value.(type) {
	case map[string]any:
		return m, nil
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	case map[string]float64:
		out := make(map[string]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("expected string keys, got %T", k)
			}
			out[ks] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("expected map, got %T", value)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
