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
	"encoding/json"
	"fmt"
	"strings"

	tgerrors "dirpx.dev/tgdf/tgcore/errors"
	"dirpx.dev/tgdf/tgcore/model"
	"gopkg.in/yaml.v3"
)

// Kind classifies a type definition by the rule it carries.
//
// The zero value KindUnknown is valid as a "not yet classified" marker but
// no registered type ever has it. JSON and YAML use the lowercase names.
type Kind uint8

const (
	// KindUnknown is the zero value.
	KindUnknown Kind = iota

	// KindPrimitive types check a scalar with a predicate.
	KindPrimitive

	// KindQuantity types check a (unit, number) pair against a unit set.
	KindQuantity

	// KindEnum types accept one of a fixed list of literals.
	KindEnum

	// KindComposite types hold named fields, each typed by another
	// registered type.
	KindComposite
)

const (
	KindUnknownStr   = "unknown"
	KindPrimitiveStr = "primitive"
	KindQuantityStr  = "quantity"
	KindEnumStr      = "enum"
	KindCompositeStr = "composite"
)

// ParseKind parses a kind name. Surrounding whitespace and case are ignored.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case KindUnknownStr:
		return KindUnknown, nil
	case KindPrimitiveStr:
		return KindPrimitive, nil
	case KindQuantityStr:
		return KindQuantity, nil
	case KindEnumStr:
		return KindEnum, nil
	case KindCompositeStr:
		return KindComposite, nil
	default:
		return KindUnknown, &tgerrors.ParseError{Type: "Kind", Value: s}
	}
}

var _ model.Model = (*Kind)(nil)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindUnknown:
		return KindUnknownStr
	case KindPrimitive:
		return KindPrimitiveStr
	case KindQuantity:
		return KindQuantityStr
	case KindEnum:
		return KindEnumStr
	case KindComposite:
		return KindCompositeStr
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Redacted returns String; kinds are not sensitive.
func (k Kind) Redacted() string {
	return k.String()
}

// TypeName returns "Kind".
func (k Kind) TypeName() string {
	return "Kind"
}

// IsZero reports whether k is KindUnknown.
func (k Kind) IsZero() bool {
	return k == KindUnknown
}

// Validate reports an error for values outside the declared constants.
func (k Kind) Validate() error {
	if k > KindComposite {
		return fmt.Errorf("Kind value %d is not a known kind (valid range: 0-%d)", uint8(k), uint8(KindComposite))
	}
	return nil
}

// MarshalJSON encodes the kind as its name.
func (k Kind) MarshalJSON() ([]byte, error) {
	if err := k.Validate(); err != nil {
		return nil, &tgerrors.MarshalError{Type: k.TypeName(), Value: int(k)}
	}
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name via ParseKind.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &tgerrors.UnmarshalError{Type: "Kind", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return &tgerrors.UnmarshalError{Type: "Kind", Data: data, Reason: err.Error()}
	}
	*k = parsed
	return nil
}

// MarshalYAML encodes the kind as its name.
func (k Kind) MarshalYAML() (interface{}, error) {
	if err := k.Validate(); err != nil {
		return nil, &tgerrors.MarshalError{Type: k.TypeName(), Value: int(k)}
	}
	return k.String(), nil
}

// UnmarshalYAML decodes a kind name via ParseKind.
func (k *Kind) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &tgerrors.UnmarshalError{Type: "Kind", Reason: err.Error()}
	}
	parsed, err := ParseKind(s)
	if err != nil {
		return &tgerrors.UnmarshalError{Type: "Kind", Reason: err.Error()}
	}
	*k = parsed
	return nil
}
