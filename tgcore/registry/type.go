/*
   Copyright 2026 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package registry

import (
	"fmt"
	"strings"

	tgerrors "dirpx.dev/tgdf/tgcore/errors"
	"dirpx.dev/tgdf/tgcore/item"
	"dirpx.dev/tgdf/tgcore/optional"
)

// Field declares one field of a composite type.
type Field struct {
	// Name is the field name, a flexname.
	Name string

	// Type names the registered type of the field value.
	Type string

	// Optional permits the field to be absent.
	Optional bool

	// Sentinel is the absence token; empty means optional.DefaultSentinel.
	Sentinel string
}

// Required declares a field that must be present.
func Required(name, typ string) Field {
	return Field{Name: name, Type: typ}
}

// Optional declares a field that may be absent, marked by "none".
func Optional(name, typ string) Field {
	return Field{Name: name, Type: typ, Optional: true}
}

// OptionalWith declares an optional field with its own sentinel.
func OptionalWith(name, typ, sentinel string) Field {
	return Field{Name: name, Type: typ, Optional: true, Sentinel: sentinel}
}

// Token returns the field's absence sentinel.
func (f Field) Token() string {
	if f.Sentinel == "" {
		return optional.DefaultSentinel
	}
	return f.Sentinel
}

func (f Field) String() string {
	s := f.Name + ": " + f.Type
	if f.Optional {
		s += " | " + f.Token()
	}
	return s
}

// Type is a registered type definition, the typed handle Register returns.
// A Type is immutable once constructed.
type Type struct {
	name    string
	kind    Kind
	rule    Rule
	units   UnitSet
	members []string
	fields  []Field
}

// Primitive defines a type whose scalar must satisfy rule.
func Primitive(name string, rule Rule) *Type {
	return &Type{name: name, kind: KindPrimitive, rule: rule}
}

// Quantity defines a (unit, number) type. The number follows the number
// rule; the unit must belong to units.
func Quantity(name string, units UnitSet) *Type {
	return &Type{name: name, kind: KindQuantity, rule: NumberRule, units: units}
}

// Enum defines a type whose scalar must be one of members.
func Enum(name string, members ...string) *Type {
	return &Type{name: name, kind: KindEnum, members: append([]string(nil), members...)}
}

// Composite defines a record type. Field order is the declared order used
// by the validator and the canonical encoder.
func Composite(name string, fields ...Field) *Type {
	return &Type{name: name, kind: KindComposite, fields: append([]Field(nil), fields...)}
}

// Name returns the type name.
func (t *Type) Name() string { return t.name }

// Kind returns the kind of the type.
func (t *Type) Kind() Kind { return t.kind }

// Units returns the unit set of a quantity type, or nil.
func (t *Type) Units() UnitSet { return t.units }

// Members returns a copy of the enum members.
func (t *Type) Members() []string { return append([]string(nil), t.members...) }

// Fields returns a copy of the composite fields in declared order.
func (t *Type) Fields() []Field { return append([]Field(nil), t.fields...) }

// Field returns the declared field called name.
func (t *Type) Field(name string) (Field, bool) {
	for _, f := range t.fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// CheckScalar applies a primitive or enum rule to s.
func (t *Type) CheckScalar(s string) error {
	switch t.kind {
	case KindPrimitive:
		return t.rule.Check(s)
	case KindEnum:
		for _, m := range t.members {
			if s == m {
				return nil
			}
		}
		return fmt.Errorf("%q is not one of {%s}", s, strings.Join(t.members, ", "))
	default:
		return fmt.Errorf("%s type expects a %s value, got a scalar", t.kind, t.expects())
	}
}

// CheckQuantity applies a quantity rule to the pair (unit, number).
func (t *Type) CheckQuantity(unit, number string) error {
	if t.kind != KindQuantity {
		return fmt.Errorf("%s type expects a %s value, got a quantity", t.kind, t.expects())
	}
	if !t.units.Contains(unit) {
		return fmt.Errorf("unit %q is not one of %s", unit, t.units)
	}
	return t.rule.Check(number)
}

// expects names the value form a kind accepts.
func (t *Type) expects() string {
	switch t.kind {
	case KindQuantity:
		return "(unit, number)"
	case KindComposite:
		return "record"
	default:
		return "scalar"
	}
}

// Validate checks that the definition is well-formed. Field types are not
// resolved here; the registry allows forward references.
func (t *Type) Validate() error {
	if t == nil {
		return &tgerrors.RegistryError{Kind: tgerrors.InvalidDefinition, Reason: "nil type"}
	}
	fail := func(format string, args ...any) error {
		return &tgerrors.RegistryError{Kind: tgerrors.InvalidDefinition, TypeName: t.name, Reason: fmt.Sprintf(format, args...)}
	}

	if !item.IsFlexname(t.name) {
		return fail("name is not a flexname")
	}

	switch t.kind {
	case KindPrimitive:
		if t.rule == nil {
			return fail("primitive type needs a rule")
		}
	case KindQuantity:
		if t.units == nil || t.units.Len() == 0 {
			return fail("quantity type needs a unit set")
		}
	case KindEnum:
		if len(t.members) == 0 {
			return fail("enum type needs members")
		}
		seen := make(map[string]bool, len(t.members))
		for _, m := range t.members {
			if m == "" || seen[m] {
				return fail("enum member %q is empty or repeated", m)
			}
			seen[m] = true
		}
	case KindComposite:
		if len(t.fields) == 0 {
			return fail("composite type needs fields")
		}
		seen := make(map[string]bool, len(t.fields))
		for _, f := range t.fields {
			if !item.IsFlexname(f.Name) {
				return fail("field name %q is not a flexname", f.Name)
			}
			if seen[f.Name] {
				return fail("field %q declared twice", f.Name)
			}
			seen[f.Name] = true
			if !item.IsFlexname(f.Type) {
				return fail("field %q has invalid type name %q", f.Name, f.Type)
			}
			if f.Sentinel != "" && !item.IsFlexname(f.Sentinel) {
				return fail("field %q has invalid sentinel %q", f.Name, f.Sentinel)
			}
		}
	default:
		return fail("kind %s cannot be registered", t.kind)
	}
	return nil
}

// String renders the definition, for example "person_name{first: text, last: text}".
func (t *Type) String() string {
	switch t.kind {
	case KindQuantity:
		return t.name + "(" + t.units.String() + ")"
	case KindEnum:
		return t.name + "{" + strings.Join(t.members, "|") + "}"
	case KindComposite:
		parts := make([]string, len(t.fields))
		for i, f := range t.fields {
			parts[i] = f.String()
		}
		return t.name + "{" + strings.Join(parts, ", ") + "}"
	default:
		return t.name
	}
}
