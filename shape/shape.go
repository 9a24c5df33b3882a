// Package shape provides composable predicates for validating the structure of
// decoded JSON values. A Shape describes what a response body is required to look
// like (required keys, value types, list element structure, set membership), and
// checking a value against it yields either nil or a human-readable violation.
//
// Shapes are pure values with no mutable state, so they can be declared once and
// reused across scenarios.
package shape

import (
	"fmt"
	"strings"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Shape is a predicate over a decoded JSON value.
type Shape interface {
	// Check returns nil if the value satisfies the shape, or an error describing
	// the first violation found.
	Check(v ldvalue.Value) error

	// Describe returns a short description of the shape for use in messages.
	Describe() string
}

type typeShape struct {
	expected ldvalue.ValueType
}

func (s typeShape) Check(v ldvalue.Value) error {
	if v.Type() != s.expected {
		return fmt.Errorf("expected %s but got %s (%s)", s.expected, v.Type(), excerpt(v))
	}
	return nil
}

func (s typeShape) Describe() string { return s.expected.String() }

// String matches any JSON string.
func String() Shape { return typeShape{ldvalue.StringType} }

// Bool matches any JSON boolean.
func Bool() Shape { return typeShape{ldvalue.BoolType} }

// Number matches any JSON number.
func Number() Shape { return typeShape{ldvalue.NumberType} }

// AnyObject matches any JSON object without constraining its keys.
func AnyObject() Shape { return typeShape{ldvalue.ObjectType} }

// List matches any JSON array without constraining its elements.
func List() Shape { return typeShape{ldvalue.ArrayType} }

type intShape struct{}

func (s intShape) Check(v ldvalue.Value) error {
	if !v.IsInt() {
		return fmt.Errorf("expected integer but got %s (%s)", v.Type(), excerpt(v))
	}
	return nil
}

func (s intShape) Describe() string { return "integer" }

// Int matches a JSON number with an integral value.
func Int() Shape { return intShape{} }

type nonEmptyStringShape struct{}

func (s nonEmptyStringShape) Check(v ldvalue.Value) error {
	if v.Type() != ldvalue.StringType {
		return fmt.Errorf("expected string but got %s (%s)", v.Type(), excerpt(v))
	}
	if v.StringValue() == "" {
		return fmt.Errorf("expected non-empty string but got \"\"")
	}
	return nil
}

func (s nonEmptyStringShape) Describe() string { return "non-empty string" }

// NonEmptyString matches a JSON string with at least one character.
func NonEmptyString() Shape { return nonEmptyStringShape{} }

type stringPrefixShape struct {
	prefix string
}

func (s stringPrefixShape) Check(v ldvalue.Value) error {
	if v.Type() != ldvalue.StringType {
		return fmt.Errorf("expected string but got %s (%s)", v.Type(), excerpt(v))
	}
	if !strings.HasPrefix(v.StringValue(), s.prefix) {
		return fmt.Errorf("expected string starting with %q but got %q", s.prefix, v.StringValue())
	}
	return nil
}

func (s stringPrefixShape) Describe() string {
	return fmt.Sprintf("string starting with %q", s.prefix)
}

// StringPrefix matches a JSON string that starts with the given prefix.
func StringPrefix(prefix string) Shape { return stringPrefixShape{prefix} }

type numberBetweenShape struct {
	lo, hi float64
}

func (s numberBetweenShape) Check(v ldvalue.Value) error {
	if v.Type() != ldvalue.NumberType {
		return fmt.Errorf("expected number but got %s (%s)", v.Type(), excerpt(v))
	}
	n := v.Float64Value()
	if n < s.lo || n > s.hi {
		return fmt.Errorf("expected number in [%v, %v] but got %v", s.lo, s.hi, n)
	}
	return nil
}

func (s numberBetweenShape) Describe() string {
	return fmt.Sprintf("number in [%v, %v]", s.lo, s.hi)
}

// NumberBetween matches a JSON number within the inclusive range [lo, hi].
func NumberBetween(lo, hi float64) Shape { return numberBetweenShape{lo, hi} }

// Field describes one key of an Object shape.
type Field struct {
	Name     string
	Value    Shape
	Optional bool
}

// Required declares an object field that must be present.
func Required(name string, value Shape) Field {
	return Field{Name: name, Value: value}
}

// OptionalField declares an object field that is validated only if present.
func OptionalField(name string, value Shape) Field {
	return Field{Name: name, Value: value, Optional: true}
}

type objectShape struct {
	fields []Field
}

func (s objectShape) Check(v ldvalue.Value) error {
	if v.Type() != ldvalue.ObjectType {
		return fmt.Errorf("expected object but got %s (%s)", v.Type(), excerpt(v))
	}
	for _, f := range s.fields {
		fv, ok := v.TryGetByKey(f.Name)
		if !ok {
			if f.Optional {
				continue
			}
			return fmt.Errorf("required key %q is missing (%s)", f.Name, excerpt(v))
		}
		if f.Value == nil {
			continue
		}
		if err := f.Value.Check(fv); err != nil {
			return fmt.Errorf("key %q: %w", f.Name, err)
		}
	}
	return nil
}

func (s objectShape) Describe() string {
	var names []string
	for _, f := range s.fields {
		names = append(names, f.Name)
	}
	return fmt.Sprintf("object with keys {%s}", strings.Join(names, ", "))
}

// Object matches a JSON object carrying the given fields. Keys that are not
// declared are ignored.
func Object(fields ...Field) Shape { return objectShape{fields} }

type listOfShape struct {
	elem Shape
}

func (s listOfShape) Check(v ldvalue.Value) error {
	if v.Type() != ldvalue.ArrayType {
		return fmt.Errorf("expected list but got %s (%s)", v.Type(), excerpt(v))
	}
	for i := 0; i < v.Count(); i++ {
		if err := s.elem.Check(v.GetByIndex(i)); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	return nil
}

func (s listOfShape) Describe() string {
	return fmt.Sprintf("list of %s", s.elem.Describe())
}

// ListOf matches a JSON array in which every element satisfies elem. An empty
// array satisfies any ListOf shape.
func ListOf(elem Shape) Shape { return listOfShape{elem} }

type codesIncludeShape struct {
	key   string
	codes []string
}

func (s codesIncludeShape) Check(v ldvalue.Value) error {
	if v.Type() != ldvalue.ArrayType {
		return fmt.Errorf("expected list but got %s (%s)", v.Type(), excerpt(v))
	}
	found := make(map[string]bool)
	for i := 0; i < v.Count(); i++ {
		found[v.GetByIndex(i).GetByKey(s.key).StringValue()] = true
	}
	var missing []string
	for _, code := range s.codes {
		if !found[code] {
			missing = append(missing, code)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("list is missing expected %q values: %s", s.key, strings.Join(missing, ", "))
	}
	return nil
}

func (s codesIncludeShape) Describe() string {
	return fmt.Sprintf("list including %q values {%s}", s.key, strings.Join(s.codes, ", "))
}

// CodesInclude matches a JSON array of objects in which every one of the given
// values appears as the named key of at least one element.
func CodesInclude(key string, codes ...string) Shape {
	return codesIncludeShape{key: key, codes: codes}
}

type equalToShape struct {
	expected ldvalue.Value
}

func (s equalToShape) Check(v ldvalue.Value) error {
	if !v.Equal(s.expected) {
		return fmt.Errorf("expected %s but got %s", s.expected.JSONString(), excerpt(v))
	}
	return nil
}

func (s equalToShape) Describe() string { return "value equal to " + s.expected.JSONString() }

// EqualTo matches a JSON value exactly equal to the given value.
func EqualTo(expected ldvalue.Value) Shape { return equalToShape{expected} }

type echoShape struct {
	fields map[string]ldvalue.Value
}

func (s echoShape) Check(v ldvalue.Value) error {
	if v.Type() != ldvalue.ObjectType {
		return fmt.Errorf("expected object but got %s (%s)", v.Type(), excerpt(v))
	}
	for name, expected := range s.fields {
		fv, ok := v.TryGetByKey(name)
		if !ok {
			return fmt.Errorf("echoed key %q is missing (%s)", name, excerpt(v))
		}
		if !fv.Equal(expected) {
			return fmt.Errorf("key %q was not echoed back exactly: sent %s, got %s",
				name, expected.JSONString(), fv.JSONString())
		}
	}
	return nil
}

func (s echoShape) Describe() string {
	var names []string
	for name := range s.fields {
		names = append(names, name)
	}
	return fmt.Sprintf("object echoing submitted keys {%s}", strings.Join(names, ", "))
}

// EchoOf matches a JSON object that echoes back exactly the given key-value
// pairs, as required of endpoints that return the fields they were sent.
func EchoOf(fields map[string]ldvalue.Value) Shape { return echoShape{fields} }

type allOfShape struct {
	shapes []Shape
}

func (s allOfShape) Check(v ldvalue.Value) error {
	for _, shape := range s.shapes {
		if err := shape.Check(v); err != nil {
			return err
		}
	}
	return nil
}

func (s allOfShape) Describe() string {
	var descs []string
	for _, shape := range s.shapes {
		descs = append(descs, shape.Describe())
	}
	return fmt.Sprintf("all of (%s)", strings.Join(descs, " & "))
}

// AllOf matches a value satisfying every one of the given shapes.
func AllOf(shapes ...Shape) Shape { return allOfShape{shapes} }

type keyAbsentOrNullShape struct {
	name string
}

func (s keyAbsentOrNullShape) Check(v ldvalue.Value) error {
	if v.Type() != ldvalue.ObjectType {
		return fmt.Errorf("expected object but got %s (%s)", v.Type(), excerpt(v))
	}
	fv, ok := v.TryGetByKey(s.name)
	if ok && !fv.IsNull() {
		return fmt.Errorf("expected key %q to be absent or null but got %s", s.name, fv.JSONString())
	}
	return nil
}

func (s keyAbsentOrNullShape) Describe() string {
	return fmt.Sprintf("object without key %q", s.name)
}

// KeyAbsentOrNull matches a JSON object in which the named key is either missing
// or null.
func KeyAbsentOrNull(name string) Shape { return keyAbsentOrNullShape{name} }

type anyOfShape struct {
	shapes []Shape
}

func (s anyOfShape) Check(v ldvalue.Value) error {
	var reasons []string
	for _, shape := range s.shapes {
		err := shape.Check(v)
		if err == nil {
			return nil
		}
		reasons = append(reasons, err.Error())
	}
	return fmt.Errorf("value matched none of the acceptable shapes: %s", strings.Join(reasons, "; also "))
}

func (s anyOfShape) Describe() string {
	var descs []string
	for _, shape := range s.shapes {
		descs = append(descs, shape.Describe())
	}
	return fmt.Sprintf("any of (%s)", strings.Join(descs, " | "))
}

// AnyOf matches a value satisfying at least one of the given shapes.
func AnyOf(shapes ...Shape) Shape { return anyOfShape{shapes} }

const maxExcerptLen = 120

// excerpt renders a value compactly for failure messages.
func excerpt(v ldvalue.Value) string {
	s := v.JSONString()
	if len(s) > maxExcerptLen {
		s = s[:maxExcerptLen] + "..."
	}
	return s
}
