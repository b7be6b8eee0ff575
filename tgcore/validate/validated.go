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

package validate

import (
	"dirpx.dev/tgdf/tgcore/item"
	"dirpx.dev/tgdf/tgcore/model/integrity"
	"dirpx.dev/tgdf/tgcore/optional"
	"dirpx.dev/tgdf/tgcore/registry"
)

// FieldValue is a declared composite field and its resolved value.
type FieldValue struct {
	Field registry.Field
	Value optional.Value[*Validated]
}

// Validated is an item that passed validation. It is read-only and refers
// to, but never changes, the item it was produced from.
type Validated struct {
	item   item.Item
	typ    *registry.Type
	value  item.Value
	fields []FieldValue
}

// Item returns the source item.
func (v *Validated) Item() item.Item { return v.item }

// Type returns the registry type the item satisfied.
func (v *Validated) Type() *registry.Type { return v.typ }

// TypeName returns the item's type name.
func (v *Validated) TypeName() string { return v.item.TypeName() }

// Shape returns the item's shape.
func (v *Validated) Shape() item.Shape { return v.item.Shape() }

// Value returns the scalar or quantity of a Basic item.
func (v *Validated) Value() item.Value { return v.value }

// Fields returns every declared field in declared order. Optional fields
// that were omitted or carried their sentinel are Absent.
func (v *Validated) Fields() []FieldValue {
	return append([]FieldValue(nil), v.fields...)
}

// Field returns the value of the declared field called name.
func (v *Validated) Field(name string) (optional.Value[*Validated], bool) {
	for _, fv := range v.fields {
		if fv.Field.Name == name {
			return fv.Value, true
		}
	}
	return optional.Value[*Validated]{}, false
}

// Metadata returns the envelope of a Custom item.
func (v *Validated) Metadata() (integrity.Metadata, bool) {
	c, ok := v.item.(*item.Custom)
	if !ok {
		return integrity.Metadata{}, false
	}
	return c.Metadata, true
}

// String returns the source item's String.
func (v *Validated) String() string { return v.item.String() }

// Redacted returns the source item's Redacted.
func (v *Validated) Redacted() string { return v.item.Redacted() }
