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

// Package encode turns validated items into their canonical tree.
//
// The canonical tree uses the raw tree vocabulary (strings, []any and
// *item.Record) and is fully determined by the validated item:
//
//	Basic     [type, scalar]
//	quantity  [type, unit, number]
//	Short     [type, {field: item, ...}]                 declared order, absent fields omitted
//	Custom    [type, {version, integrity: {hashes}}, {...}] declared order, absent fields as their sentinel
//
// Hash keys are sorted. Scalars are copied verbatim; numbers are never
// renormalised. Encoding the result of Canonicalize again yields the same
// tree.
package encode

import (
	"errors"

	"dirpx.dev/tgdf/tgcore/item"
	"dirpx.dev/tgdf/tgcore/model/integrity"
	"dirpx.dev/tgdf/tgcore/validate"
)

// ErrNilItem is returned by Encode for a nil item.
var ErrNilItem = errors.New("tgdf: cannot encode nil item")

// Encode returns the canonical tree of v.
func Encode(v *validate.Validated) (any, error) {
	if v == nil {
		return nil, ErrNilItem
	}

	switch v.Shape() {
	case item.ShapeBasic:
		val := v.Value()
		if val.Quantity {
			return []any{v.TypeName(), val.Unit, val.Scalar}, nil
		}
		return []any{v.TypeName(), val.Scalar}, nil
	case item.ShapeShort:
		fields, err := encodeFields(v, false)
		if err != nil {
			return nil, err
		}
		return []any{v.TypeName(), fields}, nil
	default:
		md, _ := v.Metadata()
		fields, err := encodeFields(v, true)
		if err != nil {
			return nil, err
		}
		return []any{v.TypeName(), Metadata(md), fields}, nil
	}
}

// Metadata returns the canonical record of md:
// {version, integrity: {hashes: {key: digest, ...}}} with sorted keys.
func Metadata(md integrity.Metadata) *item.Record {
	hashes := item.NewRecord()
	for _, h := range md.Sorted() {
		hashes.Set(h.Key, h.Digest)
	}
	return item.NewRecord().
		Set("version", md.Version).
		Set("integrity", item.NewRecord().Set("hashes", hashes))
}

func encodeFields(v *validate.Validated, sentinels bool) (*item.Record, error) {
	out := item.NewRecord()
	for _, fv := range v.Fields() {
		child, ok := fv.Value.Get()
		if !ok {
			if sentinels {
				out.Set(fv.Field.Name, fv.Value.Token())
			}
			continue
		}
		enc, err := Encode(child)
		if err != nil {
			return nil, err
		}
		out.Set(fv.Field.Name, enc)
	}
	return out, nil
}

// Canonicalize parses, validates and encodes raw.
func Canonicalize(v *validate.Validator, raw any) (any, error) {
	out, err := v.ValidateRaw(raw)
	if err != nil {
		return nil, err
	}
	return Encode(out)
}
