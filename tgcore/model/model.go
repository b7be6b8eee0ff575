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

// Package model defines the contracts shared by the tgdf value types.
//
// The small value types of the core (registry kinds, digest algorithms,
// integrity hashes, metadata envelopes, semantic versions) implement Model so
// that they validate, serialise, log and identify themselves the same way.
// Items themselves only implement Loggable and Identifiable: an item cannot
// validate itself because validation needs a type registry.
//
// Implementations are immutable value types. Concurrent reads are safe;
// unmarshal methods mutate the receiver and need exclusive access.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining the fundamental contracts of a tgdf
// value type.
//
// Example implementation:
//
//	type Unit string
//
//	func (u Unit) Validate() error {
//	    if u == "" {
//	        return errors.New("unit required")
//	    }
//	    return nil
//	}
//
//	func (u Unit) TypeName() string { return "Unit" }
//	func (u Unit) IsZero() bool     { return u == "" }
//	func (u Unit) Redacted() string { return string(u) }
//	func (u Unit) String() string   { return string(u) }
//	// ... MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ model.Model = (*Unit)(nil)
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable is implemented by types that check their own invariants.
//
// Validate MUST be fast, deterministic and free of side effects. It returns
// nil if and only if the receiver is fully valid, and otherwise an error that
// names what is wrong.
type Validatable interface {
	Validate() error
}

// Serializable is implemented by types with JSON and YAML round trips.
//
// Marshal methods MUST validate first and refuse to emit invalid values.
// Unmarshal methods MUST validate the decoded value before accepting it.
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable is implemented by types that can be logged safely.
//
// Redacted hides personal data (names, e-mail addresses, free text) and is
// the only form that may reach production logs. String MAY include
// everything and is meant for tests and local debugging.
type Loggable interface {
	Redacted() string
	String() string
}

// Identifiable is implemented by types that report a constant type name.
//
// For value types the name is CamelCase without package prefix ("Kind",
// "Metadata"). Items report their format type name instead ("weight").
type Identifiable interface {
	TypeName() string
}

// ZeroCheckable is implemented by types that can report an empty state.
type ZeroCheckable interface {
	IsZero() bool
}
