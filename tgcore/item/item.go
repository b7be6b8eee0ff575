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

// Package item implements the shape parser of the tgdf core.
//
// An item is a tagged union over three shapes:
//
//	Basic   [type, scalar]              a primitive, enum or quantity leaf
//	Short   [type, {field: item...}]    a record without metadata
//	Custom  [type, metadata, {field...}] a record carrying an integrity envelope
//
// Parse classifies a raw tree (strings, []any and records) into one of these
// shapes. It checks the envelope only: field values of Short and Custom items
// stay raw trees and are resolved and parsed recursively by the validator.
package item

import (
	"strconv"
	"strings"

	"dirpx.dev/tgdf/tgcore/model/integrity"
)

// Shape discriminates the three item shapes.
type Shape uint8

const (
	ShapeBasic Shape = iota + 1
	ShapeShort
	ShapeCustom
)

// String returns "basic", "short" or "custom".
func (s Shape) String() string {
	switch s {
	case ShapeBasic:
		return "basic"
	case ShapeShort:
		return "short"
	case ShapeCustom:
		return "custom"
	default:
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
}

// Item is a parsed, not yet validated, item. The concrete types are Basic,
// Short and Custom.
type Item interface {
	// TypeName returns the type name of the envelope.
	TypeName() string

	// Shape returns the envelope shape.
	Shape() Shape

	// String returns the item with its values, for debugging.
	String() string

	// Redacted returns the item with scalar values masked, safe for logs.
	Redacted() string

	isItem()
}

// Value is the payload of a Basic item: a plain scalar or a quantity pair.
type Value struct {
	// Scalar is the scalar, or the number of a quantity.
	Scalar string

	// Unit is the unit of a quantity; empty for plain scalars.
	Unit string

	// Quantity reports whether the value was written as a (unit, number)
	// pair.
	Quantity bool
}

// ScalarValue returns a plain scalar value.
func ScalarValue(s string) Value {
	return Value{Scalar: s}
}

// QuantityValue returns a (unit, number) pair.
func QuantityValue(unit, number string) Value {
	return Value{Scalar: number, Unit: unit, Quantity: true}
}

func (v Value) String() string {
	if v.Quantity {
		return v.Unit + " " + v.Scalar
	}
	return strconv.Quote(v.Scalar)
}

func (v Value) redacted() string {
	if v.Quantity {
		return v.Unit + " ***"
	}
	return "***"
}

// Basic is a [type, scalar] or quantity item.
type Basic struct {
	Type  string
	Value Value
}

func (b *Basic) TypeName() string { return b.Type }
func (b *Basic) Shape() Shape     { return ShapeBasic }
func (b *Basic) String() string   { return "[" + b.Type + " " + b.Value.String() + "]" }
func (b *Basic) Redacted() string { return "[" + b.Type + " " + b.Value.redacted() + "]" }
func (b *Basic) isItem()          {}

// Short is a [type, fields] item.
type Short struct {
	Type   string
	Fields *Record
}

func (s *Short) TypeName() string { return s.Type }
func (s *Short) Shape() Shape     { return ShapeShort }
func (s *Short) String() string   { return "[" + s.Type + " " + s.Fields.String() + "]" }
func (s *Short) Redacted() string { return "[" + s.Type + " " + fieldNames(s.Fields) + "]" }
func (s *Short) isItem()          {}

// Custom is a [type, metadata, fields] item.
type Custom struct {
	Type     string
	Metadata integrity.Metadata
	Fields   *Record
}

func (c *Custom) TypeName() string { return c.Type }
func (c *Custom) Shape() Shape     { return ShapeCustom }
func (c *Custom) isItem()          {}

func (c *Custom) String() string {
	return "[" + c.Type + " " + c.Metadata.String() + " " + c.Fields.String() + "]"
}

func (c *Custom) Redacted() string {
	return "[" + c.Type + " " + c.Metadata.Redacted() + " " + fieldNames(c.Fields) + "]"
}

// fieldNames lists field names without values.
func fieldNames(r *Record) string {
	return "{" + strings.Join(r.Keys(), ", ") + "}"
}
