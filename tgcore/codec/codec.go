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

// Package codec reads and writes the textual form of raw trees.
//
// Decode accepts JSON or YAML (flow or block style) and produces a raw tree
// of strings, []any and *item.Record. Every scalar is kept verbatim as a
// string, so 75.50 stays "75.50", and records keep their key order.
// Anchors and aliases are rejected.
//
// MarshalJSON writes compact JSON with records in stored order; applied to a
// canonical tree it yields the canonical text. MarshalYAML writes the same
// tree as flow-style YAML with double-quoted scalars.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"dirpx.dev/tgdf/tgcore/item"
	"gopkg.in/yaml.v3"
)

// ErrEmpty is returned by Decode for input without a document.
var ErrEmpty = errors.New("codec: empty document")

// Decode parses data into a raw tree.
func Decode(data []byte) (any, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("codec: parsing document: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ErrEmpty
	}
	return fromNode(doc.Content[0])
}

// DecodeItems parses data as a sequence of items and returns them.
func DecodeItems(data []byte) ([]any, error) {
	tree, err := Decode(data)
	if err != nil {
		return nil, err
	}
	seq, ok := tree.([]any)
	if !ok {
		return nil, errors.New("codec: document is not a sequence of items")
	}
	for i, el := range seq {
		if _, ok := el.([]any); !ok {
			return nil, fmt.Errorf("codec: element %d is not an item", i)
		}
	}
	return seq, nil
}

func fromNode(n *yaml.Node) (any, error) {
	if n.Anchor != "" {
		return nil, fmt.Errorf("codec: line %d: anchor &%s is not supported", n.Line, n.Anchor)
	}
	switch n.Kind {
	case yaml.ScalarNode:
		if n.ShortTag() == "!!null" {
			return nil, fmt.Errorf("codec: line %d: null is not a value", n.Line)
		}
		return n.Value, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case yaml.MappingNode:
		r := item.NewRecord()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("codec: line %d: record keys must be scalars", k.Line)
			}
			if r.Has(k.Value) {
				return nil, fmt.Errorf("codec: line %d: duplicate key %q", k.Line, k.Value)
			}
			v, err := fromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			r.Set(k.Value, v)
		}
		return r, nil
	case yaml.AliasNode:
		return nil, fmt.Errorf("codec: line %d: alias *%s is not supported", n.Line, n.Value)
	default:
		return nil, fmt.Errorf("codec: line %d: unsupported node", n.Line)
	}
}

// MarshalJSON writes tree as compact JSON.
func MarshalJSON(tree any) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, tree); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case string:
		return writeString(buf, x)
	case json.Number:
		return writeString(buf, string(x))
	case []any:
		buf.WriteByte('[')
		for i, el := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSON(buf, el); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	case *item.Record, map[string]any:
		r, _ := item.AsRecord(x)
		buf.WriteByte('{')
		var err error
		first := true
		r.Range(func(k string, el any) bool {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			if err = writeString(buf, k); err != nil {
				return false
			}
			buf.WriteByte(':')
			err = writeJSON(buf, el)
			return err == nil
		})
		if err != nil {
			return err
		}
		buf.WriteByte('}')
		return nil
	default:
		return fmt.Errorf("codec: cannot write %T", v)
	}
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

// MarshalYAML writes tree as flow-style YAML.
func MarshalYAML(tree any) ([]byte, error) {
	n, err := toNode(tree)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(n)
}

func toNode(v any) (*yaml.Node, error) {
	switch x := v.(type) {
	case string:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Style: yaml.DoubleQuotedStyle, Value: x}, nil
	case json.Number:
		return toNode(string(x))
	case []any:
		n := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, el := range x {
			c, err := toNode(el)
			if err != nil {
				return nil, err
			}
			n.Content = append(n.Content, c)
		}
		return n, nil
	case *item.Record, map[string]any:
		r, _ := item.AsRecord(x)
		n := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}
		var err error
		r.Range(func(k string, el any) bool {
			var c *yaml.Node
			if c, err = toNode(el); err != nil {
				return false
			}
			key, _ := toNode(k)
			n.Content = append(n.Content, key, c)
			return true
		})
		if err != nil {
			return nil, err
		}
		return n, nil
	default:
		return nil, fmt.Errorf("codec: cannot write %T", v)
	}
}

// FieldsPayload is a validate.PayloadFunc: the digests of a custom item
// cover the compact JSON of its field record as written.
func FieldsPayload(c *item.Custom) ([]byte, error) {
	return MarshalJSON(c.Fields)
}
