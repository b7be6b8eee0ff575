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

package encode_test

import (
	"testing"

	"dirpx.dev/tgdf/tgcore/encode"
	"dirpx.dev/tgdf/tgcore/item"
	"dirpx.dev/tgdf/tgcore/model/integrity"
	"dirpx.dev/tgdf/tgcore/registry"
	"dirpx.dev/tgdf/tgcore/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rec(kv ...any) *item.Record {
	r := item.NewRecord()
	for i := 0; i < len(kv); i += 2 {
		r.Set(kv[i].(string), kv[i+1])
	}
	return r
}

func newValidator() *validate.Validator {
	return validate.New(registry.NewBuiltin())
}

func TestEncode_Quantity(t *testing.T) {
	v := newValidator()

	got, err := encode.Canonicalize(v, []any{"weight", "kg", "75.5"})
	require.NoError(t, err)
	assert.Equal(t, []any{"weight", "kg", "75.5"}, got)

	got, err = encode.Canonicalize(v, []any{"weight", []any{"kg", "75.5"}})
	require.NoError(t, err)
	assert.Equal(t, []any{"weight", "kg", "75.5"}, got)
}

func TestEncode_ScalarsVerbatim(t *testing.T) {
	v := newValidator()

	for _, raw := range [][]any{
		{"number", "007.50"},
		{"number", "+1"},
		{"latitude", "45.000000000000000001"},
		{"text", "ünïcödé <b>"},
	} {
		got, err := encode.Canonicalize(v, raw)
		require.NoError(t, err)
		assert.Equal(t, raw, got)
	}
}

func TestEncode_ShortDeclaredOrder(t *testing.T) {
	v := newValidator()

	got, err := encode.Canonicalize(v, []any{"person", rec(
		"contact", []any{"contact", rec(
			"address", []any{"text", "1 Main St"},
			"email", []any{"email", "ann@example.com"},
		)},
		"name", []any{"text", "Ann"},
	)})
	require.NoError(t, err)

	want := []any{"person", rec(
		"name", []any{"text", "Ann"},
		"contact", []any{"contact", rec(
			"email", []any{"email", "ann@example.com"},
			"address", []any{"text", "1 Main St"},
		)},
	)}
	assert.Equal(t, want, got)
}

func TestEncode_CustomSentinels(t *testing.T) {
	v := newValidator()
	md, err := integrity.Seal("v0.2.0", []byte("payload"), integrity.SHA512, integrity.SHA256)
	require.NoError(t, err)

	got, err := encode.Canonicalize(v, []any{"full_person_name", encode.Metadata(md), rec(
		"last_name", []any{"text", "Smith"},
		"first_name", []any{"text", "John"},
		"middle_names", "none",
	)})
	require.NoError(t, err)

	seq := got.([]any)
	require.Len(t, seq, 3)
	assert.Equal(t, "full_person_name", seq[0])

	meta := seq[1].(*item.Record)
	assert.Equal(t, []string{"version", "integrity"}, meta.Keys())
	block, _ := meta.Get("integrity")
	hashes, _ := block.(*item.Record).Get("hashes")
	assert.Equal(t, []string{"sha256", "sha512"}, hashes.(*item.Record).Keys())

	fields := seq[2].(*item.Record)
	assert.Equal(t, []string{"first_name", "middle_names", "maiden_name", "last_name"}, fields.Keys())
	middle, _ := fields.Get("middle_names")
	assert.Equal(t, "none", middle)
	maiden, _ := fields.Get("maiden_name")
	assert.Equal(t, "none", maiden)
}

func TestEncode_ShortOmitsAbsent(t *testing.T) {
	got, err := encode.Canonicalize(newValidator(), []any{"earth_location", rec(
		"longitude", []any{"longitude", "-0.12"},
		"latitude", []any{"latitude", "51.5"},
	)})
	require.NoError(t, err)
	assert.Equal(t, []string{"latitude", "longitude"}, got.([]any)[1].(*item.Record).Keys())
}

func TestEncode_Idempotent(t *testing.T) {
	v := newValidator()
	md, err := integrity.Seal("1.2.3", []byte("x"))
	require.NoError(t, err)

	inputs := []any{
		[]any{"text", "John"},
		[]any{"yesno", "no"},
		[]any{"currency", "EUR", "12.50"},
		[]any{"distance", []any{"mi", "3"}},
		[]any{"person_name", map[string]any{"last": []any{"text", "Lee"}, "first": []any{"text", "Ann"}}},
		[]any{"person", encode.Metadata(md), rec(
			"contact", []any{"contact", rec("phone", []any{"text", "+1 555 0100"})},
			"name", []any{"text", "Ann"},
			"birth_date", "none",
		)},
	}

	for _, raw := range inputs {
		once, err := encode.Canonicalize(v, raw)
		require.NoError(t, err)
		twice, err := encode.Canonicalize(v, once)
		require.NoError(t, err)
		assert.Equal(t, once, twice)
	}
}

func TestEncode_Errors(t *testing.T) {
	_, err := encode.Encode(nil)
	assert.ErrorIs(t, err, encode.ErrNilItem)

	_, err = encode.Canonicalize(newValidator(), []any{"yesno", "maybe"})
	assert.Error(t, err)
}
