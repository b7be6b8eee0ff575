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
	"fmt"
	"sort"
	"strings"
)

// Record is an insertion-ordered string-keyed mapping, the record node of a
// raw tree. Field maps, metadata blocks and the canonical encoder's output
// all use it so that key order survives a round trip.
//
// A Record is not safe for concurrent mutation. Records handed to the
// validator must not be modified while validation runs.
type Record struct {
	keys   []string
	values map[string]any
}

// NewRecord returns an empty Record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// RecordFromMap copies m into a Record with keys in sorted order, so that
// plain Go maps produce deterministic trees.
func RecordFromMap(m map[string]any) *Record {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	r := &Record{keys: keys, values: make(map[string]any, len(m))}
	for k, v := range m {
		r.values[k] = v
	}
	return r
}

// Set stores v under key. An existing key keeps its position. Set returns
// the receiver so that records can be built inline.
func (r *Record) Set(key string, v any) *Record {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[key]; !ok {
		r.keys = append(r.keys, key)
	}
	r.values[key] = v
	return r
}

// Get returns the value stored under key.
func (r *Record) Get(key string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[key]
	return v, ok
}

// Has reports whether key is present.
func (r *Record) Has(key string) bool {
	_, ok := r.Get(key)
	return ok
}

// Keys returns a copy of the keys in order.
func (r *Record) Keys() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Len returns the number of keys.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.keys)
}

// Range calls fn for each entry in order until fn returns false.
func (r *Record) Range(fn func(key string, v any) bool) {
	if r == nil {
		return
	}
	for _, k := range r.keys {
		if !fn(k, r.values[k]) {
			return
		}
	}
}

// String renders the record as {k: v, ...} in key order.
func (r *Record) String() string {
	var b strings.Builder
	b.WriteByte('{')
	r.Range(func(k string, v any) bool {
		if b.Len() > 1 {
			b.WriteString(", ")
		}
		b.WriteString(k)
		b.WriteString(": ")
		b.WriteString(describeValue(v))
		return true
	})
	b.WriteByte('}')
	return b.String()
}

func describeValue(v any) string {
	switch x := v.(type) {
	case string:
		return fmt.Sprintf("%q", x)
	case []any:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = describeValue(e)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Record:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
