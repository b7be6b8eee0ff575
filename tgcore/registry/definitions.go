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
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"dirpx.dev/tgdf/tgcore/model"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Format selects the syntax of a definitions file.
type Format uint8

const (
	FormatYAML Format = iota + 1
	FormatTOML
)

// FormatFromPath picks the format from a file extension: .yaml, .yml or
// .toml.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return 0, fmt.Errorf("unsupported definitions file %q (want .yaml, .yml or .toml)", path)
	}
}

// Definitions is the document of a definitions file:
//
//	types:
//	  - name: address
//	    kind: composite
//	    fields:
//	      - {name: street, type: text}
//	      - {name: zip, type: text, optional: true}
//	  - name: mood
//	    kind: enum
//	    members: [happy, sad]
//	  - name: pressure
//	    kind: quantity
//	    units: [pa, kpa, bar]
//	  - name: phone_number
//	    kind: primitive
//	    pattern: '\+?[0-9 ]+'
//
// The same structure is accepted in TOML as [[types]] tables.
type Definitions struct {
	Types []Definition `yaml:"types" toml:"types"`
}

// Definition describes one type in a definitions file. Which attributes
// apply depends on Kind.
type Definition struct {
	Name    string            `yaml:"name" toml:"name"`
	Kind    string            `yaml:"kind" toml:"kind"`
	Fields  []FieldDefinition `yaml:"fields,omitempty" toml:"fields,omitempty"`
	Members []string          `yaml:"members,omitempty" toml:"members,omitempty"`
	Units   []string          `yaml:"units,omitempty" toml:"units,omitempty"`
	Pattern string            `yaml:"pattern,omitempty" toml:"pattern,omitempty"`
}

// FieldDefinition describes one composite field.
type FieldDefinition struct {
	Name     string `yaml:"name" toml:"name"`
	Type     string `yaml:"type" toml:"type"`
	Optional bool   `yaml:"optional,omitempty" toml:"optional,omitempty"`
	Sentinel string `yaml:"sentinel,omitempty" toml:"sentinel,omitempty"`
}

var _ model.Checked = Definition{}

// TypeName returns "Definition".
func (d Definition) TypeName() string {
	return "Definition"
}

// Validate checks the definition without registering it.
func (d Definition) Validate() error {
	t, err := d.Type()
	if err != nil {
		return err
	}
	return t.Validate()
}

// Type builds the registry type described by d.
func (d Definition) Type() (*Type, error) {
	kind, err := ParseKind(d.Kind)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindPrimitive:
		if d.Pattern == "" {
			return nil, fmt.Errorf("primitive type %q needs a pattern", d.Name)
		}
		re, err := regexp.Compile(`^(?:` + d.Pattern + `)$`)
		if err != nil {
			return nil, fmt.Errorf("primitive type %q: %w", d.Name, err)
		}
		return Primitive(d.Name, Pattern(re)), nil
	case KindQuantity:
		return Quantity(d.Name, Units(d.Units...)), nil
	case KindEnum:
		return Enum(d.Name, d.Members...), nil
	case KindComposite:
		fields := make([]Field, len(d.Fields))
		for i, f := range d.Fields {
			fields[i] = Field{Name: f.Name, Type: f.Type, Optional: f.Optional, Sentinel: f.Sentinel}
		}
		return Composite(d.Name, fields...), nil
	default:
		return nil, fmt.Errorf("type %q has no kind", d.Name)
	}
}

// LoadDefinitions parses data and registers every type it defines, in file
// order. Malformed entries are all reported before anything is registered.
// A rejected registration stops loading; the types registered before it
// stay in r and are returned with the error.
func LoadDefinitions(r *Registry, data []byte, format Format) ([]*Type, error) {
	var doc Definitions
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing definitions YAML: %w", err)
		}
	case FormatTOML:
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, fmt.Errorf("parsing definitions TOML: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown definitions format %d", format)
	}

	if len(doc.Types) == 0 {
		return nil, errors.New("definitions file defines no types")
	}
	if err := model.ValidateAll(doc.Types); err != nil {
		return nil, fmt.Errorf("invalid definitions: %w", err)
	}

	out := make([]*Type, 0, len(doc.Types))
	for _, d := range doc.Types {
		t, err := d.Type()
		if err != nil {
			return out, err
		}
		if _, err := r.Register(t); err != nil {
			return out, err
		}
		out = append(out, t)
	}
	return out, nil
}

// LoadFile reads a definitions file and registers its types. The format
// follows the file extension.
func LoadFile(r *Registry, path string) ([]*Type, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definitions: %w", err)
	}
	return LoadDefinitions(r, data, format)
}
