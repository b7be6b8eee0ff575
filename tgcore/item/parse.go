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

package item

import (
	"encoding/json"
	"fmt"
	"regexp"

	tgerrors "dirpx.dev/tgdf/tgcore/errors"
	"dirpx.dev/tgdf/tgcore/model/integrity"
)

// FlexnameRegexp is the grammar of type names and field names.
var FlexnameRegexp = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// IsFlexname reports whether s is a valid type or field name.
func IsFlexname(s string) bool {
	return FlexnameRegexp.MatchString(s)
}

// AsScalar returns the string form of a scalar node. Strings and json.Number
// are scalars; every other node is not.
func AsScalar(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case json.Number:
		return string(s), true
	default:
		return "", false
	}
}

// AsRecord returns v as a Record. A map[string]any is copied with sorted
// keys.
func AsRecord(v any) (*Record, bool) {
	switch r := v.(type) {
	case *Record:
		if r == nil {
			return nil, false
		}
		return r, true
	case map[string]any:
		return RecordFromMap(r), true
	default:
		return nil, false
	}
}

// JoinPath appends field to a dotted path.
func JoinPath(base, field string) string {
	if base == "" {
		return field
	}
	return base + "." + field
}

// Parse classifies a raw tree as a Basic, Short or Custom item.
//
// The rules, applied in order:
//
//	[name, scalar]                 Basic
//	[name, record]                 Short
//	[name, [unit, number]]         Basic quantity (nested pair)
//	[name, unit, number]           Basic quantity (canonical)
//	[name, metadata, record]       Custom
//
// Anything else fails with a ShapeError of kind Malformed. A name outside the
// flexname grammar fails with kind InvalidTypeName.
func Parse(raw any) (Item, error) {
	return ParseAt(raw, "")
}

// ParseAt is Parse for a node located at path inside an enclosing item.
// The path is carried into every ShapeError.
func ParseAt(raw any, path string) (Item, error) {
	seq, ok := raw.([]any)
	if !ok {
		return nil, malformed(path, "", "expected a sequence, got "+describe(raw))
	}
	if len(seq) != 2 && len(seq) != 3 {
		var name string
		if len(seq) > 0 {
			name, _ = AsScalar(seq[0])
		}
		return nil, malformed(path, name, fmt.Sprintf("expected 2 or 3 elements, got %d", len(seq)))
	}

	name, ok := AsScalar(seq[0])
	if !ok {
		return nil, malformed(path, "", "type name must be a scalar, got "+describe(seq[0]))
	}
	if !IsFlexname(name) {
		return nil, &tgerrors.ShapeError{Kind: tgerrors.InvalidTypeName, Path: path, TypeName: name}
	}

	if len(seq) == 2 {
		return parsePair(name, seq[1], path)
	}
	return parseTriple(name, seq[1], seq[2], path)
}

func parsePair(name string, v any, path string) (Item, error) {
	if s, ok := AsScalar(v); ok {
		return &Basic{Type: name, Value: ScalarValue(s)}, nil
	}
	if r, ok := AsRecord(v); ok {
		if err := checkFieldNames(r, name, path); err != nil {
			return nil, err
		}
		return &Short{Type: name, Fields: r}, nil
	}
	if pair, ok := v.([]any); ok && len(pair) == 2 {
		unit, uok := AsScalar(pair[0])
		number, nok := AsScalar(pair[1])
		if uok && nok {
			return &Basic{Type: name, Value: QuantityValue(unit, number)}, nil
		}
	}
	return nil, malformed(path, name, "second element must be a scalar, a record or a (unit, number) pair, got "+describe(v))
}

func parseTriple(name string, second, third any, path string) (Item, error) {
	if unit, ok := AsScalar(second); ok {
		number, ok := AsScalar(third)
		if !ok {
			return nil, malformed(path, name, "quantity number must be a scalar, got "+describe(third))
		}
		return &Basic{Type: name, Value: QuantityValue(unit, number)}, nil
	}

	meta, ok := AsRecord(second)
	if !ok {
		return nil, malformed(path, name, "second element must be a unit or a metadata record, got "+describe(second))
	}
	md, reason := parseMetadata(meta)
	if reason != "" {
		return nil, malformed(path, name, reason)
	}

	fields, ok := AsRecord(third)
	if !ok {
		return nil, malformed(path, name, "third element must be a record, got "+describe(third))
	}
	if err := checkFieldNames(fields, name, path); err != nil {
		return nil, err
	}
	return &Custom{Type: name, Metadata: md, Fields: fields}, nil
}

// parseMetadata reads a metadata-shaped record:
//
//	{version: scalar, integrity: {hashes: {key: scalar, ...}}}
//
// It returns a non-empty reason when r is not metadata-shaped. Digest
// contents are left to integrity.Verify.
func parseMetadata(r *Record) (integrity.Metadata, string) {
	if r.Len() != 2 || !r.Has("version") || !r.Has("integrity") {
		return integrity.Metadata{}, "metadata must hold exactly version and integrity"
	}

	v, _ := r.Get("version")
	version, ok := AsScalar(v)
	if !ok {
		return integrity.Metadata{}, "metadata version must be a scalar"
	}

	iv, _ := r.Get("integrity")
	block, ok := AsRecord(iv)
	if !ok || block.Len() != 1 || !block.Has("hashes") {
		return integrity.Metadata{}, "metadata integrity must hold exactly hashes"
	}

	hv, _ := block.Get("hashes")
	hashes, ok := AsRecord(hv)
	if !ok {
		return integrity.Metadata{}, "integrity hashes must be a record"
	}

	md := integrity.Metadata{Version: version}
	var reason string
	hashes.Range(func(key string, v any) bool {
		digest, ok := AsScalar(v)
		if !ok {
			reason = fmt.Sprintf("hash %q must be a scalar", key)
			return false
		}
		md.Hashes = append(md.Hashes, integrity.Hash{Key: key, Digest: digest})
		return true
	})
	return md, reason
}

func checkFieldNames(r *Record, name, path string) error {
	for _, k := range r.Keys() {
		if !IsFlexname(k) {
			return malformed(JoinPath(path, k), name, fmt.Sprintf("invalid field name %q", k))
		}
	}
	return nil
}

func malformed(path, name, reason string) error {
	return &tgerrors.ShapeError{Kind: tgerrors.Malformed, Path: path, TypeName: name, Reason: reason}
}

// describe names the node kind of v for error messages.
func describe(v any) string {
	switch v.(type) {
	case nil:
		return "nothing"
	case string, json.Number:
		return "a scalar"
	case []any:
		return "a sequence"
	case *Record, map[string]any:
		return "a record"
	default:
		return fmt.Sprintf("%T", v)
	}
}
