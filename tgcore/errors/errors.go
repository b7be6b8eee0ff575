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

// Package errors provides the error taxonomy of the tgdf core.
//
// Every failure the core reports is a typed value carrier defined here. The
// types are intentionally simple: they hold the offending type name, the
// dotted field path of the failing node (for example "contact.email") and a
// Kind discriminator, and they format a stable message. Callers recognise
// them with errors.As and switch on Kind:
//
//	var verr *errors.ValidationError
//	if stderrors.As(err, &verr) && verr.Kind == errors.MissingField {
//	    // report verr.Field
//	}
//
// # Error Types
//
//   - ShapeError
//     The raw tree does not form an item envelope, or its type name does not
//     satisfy the flexname grammar.
//
//   - OptionalityError
//     A field carried its absence sentinel where absence is not permitted.
//
//   - ValidationError
//     Unknown type, rule violation, missing or unexpected composite field.
//
//   - IntegrityError
//     Malformed metadata envelope on a custom item (version or digests).
//
//   - RegistryError
//     Rejected type registration (duplicate name, cyclic field graph,
//     malformed definition, registration after the registry was frozen).
//
// ParseError, MarshalError and UnmarshalError are shared by the enum-like
// model types (registry kinds, digest algorithms) for their Parse, JSON and
// YAML helpers.
//
// None of these errors is fatal. A failing item never prevents sibling items
// from being validated in batch mode.
package errors

import (
	"strconv"
	"strings"
)

// ParseError is returned when parsing a string into a strongly typed
// enum-like value fails.
//
// Type identifies the logical type being parsed (for example, "Kind" or
// "Algorithm"), and Value contains the exact string that could not be
// interpreted.
type ParseError struct {
	// Type is the logical name of the type being parsed (for example, "Kind").
	Type string

	// Value is the invalid textual representation that was provided.
	Value string
}

// Error implements the error interface for ParseError.
//
// The error message format is:
//
//	"tgdf: invalid {Type} value: {Value}"
func (e *ParseError) Error() string {
	return "tgdf: invalid " + e.Type + " value: " + e.Value
}

// MarshalError is returned when marshaling an enum-like value fails because
// it does not correspond to a known constant. It usually indicates a
// programming error such as an unvalidated zero value.
type MarshalError struct {
	// Type is the logical name of the type being marshaled.
	Type string

	// Value is the underlying numeric representation that could not be
	// marshaled.
	Value int
}

// Error implements the error interface for MarshalError.
//
// The error message format is:
//
//	"tgdf: cannot marshal invalid {Type} value: {Value}"
func (e *MarshalError) Error() string {
	return "tgdf: cannot marshal invalid " + e.Type + " value: " + strconv.Itoa(e.Value)
}

// UnmarshalError is returned when unmarshaling data into a typed value fails.
//
// Data holds the raw payload and is deliberately left out of Error() so that
// large or sensitive payloads do not end up in logs.
type UnmarshalError struct {
	// Type is the logical name of the type being unmarshaled into.
	Type string

	// Data is the raw input that failed to unmarshal.
	Data []byte

	// Reason is a short, human-readable explanation of the failure.
	Reason string
}

// Error implements the error interface for UnmarshalError.
//
// The error message format is:
//
//	"tgdf: cannot unmarshal {Type}: {Reason}"
func (e *UnmarshalError) Error() string {
	return "tgdf: cannot unmarshal " + e.Type + ": " + e.Reason
}

// where renders the location suffix of an error message.
func where(path string) string {
	if path == "" {
		return ""
	}
	return " at " + path
}

// ShapeErrorKind discriminates ShapeError values.
type ShapeErrorKind uint8

const (
	// Malformed reports a raw tree that is not one of the item shapes.
	Malformed ShapeErrorKind = iota + 1

	// InvalidTypeName reports a type name outside the flexname grammar.
	InvalidTypeName
)

// String returns the lower_snake name of the kind.
func (k ShapeErrorKind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case InvalidTypeName:
		return "invalid_type_name"
	default:
		return "ShapeErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ShapeError is returned by the shape parser when a raw tree cannot be
// classified as a basic, short or custom item.
type ShapeError struct {
	// Kind tells which shape rule failed.
	Kind ShapeErrorKind

	// Path is the dotted field path of the offending node; empty at the root.
	Path string

	// TypeName is the type name found in the envelope, if any.
	TypeName string

	// Reason describes the malformation for Malformed errors.
	Reason string
}

// Error implements the error interface for ShapeError.
//
// The error message formats are:
//
//	"tgdf: malformed item[ at {Path}]: {Reason}"
//	"tgdf: invalid type name {TypeName}[ at {Path}]"
func (e *ShapeError) Error() string {
	if e.Kind == InvalidTypeName {
		return "tgdf: invalid type name " + strconv.Quote(e.TypeName) + where(e.Path)
	}
	if e.TypeName != "" {
		return "tgdf: malformed " + e.TypeName + " item" + where(e.Path) + ": " + e.Reason
	}
	return "tgdf: malformed item" + where(e.Path) + ": " + e.Reason
}

// OptionalityErrorKind discriminates OptionalityError values.
type OptionalityErrorKind uint8

const (
	// NotOptional reports a sentinel in a field that may not be absent.
	NotOptional OptionalityErrorKind = iota + 1
)

// String returns the lower_snake name of the kind.
func (k OptionalityErrorKind) String() string {
	if k == NotOptional {
		return "not_optional"
	}
	return "OptionalityErrorKind(" + strconv.Itoa(int(k)) + ")"
}

// OptionalityError is returned when a field holds its absence sentinel but
// the field (or the item shape carrying it) does not permit absence.
type OptionalityError struct {
	Kind OptionalityErrorKind

	// TypeName is the composite type that declares the field.
	TypeName string

	// Path is the dotted path of the field.
	Path string

	// Field is the bare field name.
	Field string

	// Sentinel is the literal that was found.
	Sentinel string
}

// Error implements the error interface for OptionalityError.
//
// The error message format is:
//
//	"tgdf: field {Field} of {TypeName} is not optional[ at {Path}] (got sentinel {Sentinel})"
func (e *OptionalityError) Error() string {
	var b strings.Builder
	b.WriteString("tgdf: field ")
	b.WriteString(strconv.Quote(e.Field))
	if e.TypeName != "" {
		b.WriteString(" of ")
		b.WriteString(e.TypeName)
	}
	b.WriteString(" is not optional")
	b.WriteString(where(e.Path))
	b.WriteString(" (got sentinel ")
	b.WriteString(strconv.Quote(e.Sentinel))
	b.WriteString(")")
	return b.String()
}

// ValidationErrorKind discriminates ValidationError values.
type ValidationErrorKind uint8

const (
	// UnknownType reports a type name absent from the registry.
	UnknownType ValidationErrorKind = iota + 1

	// RuleViolation reports a value rejected by its type's rule, or an item
	// whose shape does not fit its type's kind.
	RuleViolation

	// MissingField reports a required composite field that is not present.
	MissingField

	// UnexpectedField reports a field the composite type does not declare.
	UnexpectedField
)

// String returns the lower_snake name of the kind.
func (k ValidationErrorKind) String() string {
	switch k {
	case UnknownType:
		return "unknown_type"
	case RuleViolation:
		return "rule_violation"
	case MissingField:
		return "missing_field"
	case UnexpectedField:
		return "unexpected_field"
	default:
		return "ValidationErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// ValidationError is returned when an item does not satisfy its registered
// type definition.
type ValidationError struct {
	Kind ValidationErrorKind

	// TypeName is the type whose rule failed. For MissingField and
	// UnexpectedField it is the composite type that owns the field.
	TypeName string

	// Path is the dotted path of the failing node; empty at the root.
	Path string

	// Field is the field name for MissingField and UnexpectedField.
	Field string

	// Detail explains a RuleViolation.
	Detail string

	// Value optionally carries the rejected scalar.
	Value any
}

// Error implements the error interface for ValidationError.
//
// The error message formats are:
//
//	"tgdf: unknown type {TypeName}[ at {Path}]"
//	"tgdf: invalid {TypeName}[ at {Path}]: {Detail}"
//	"tgdf: {TypeName} missing required field {Field}[ at {Path}]"
//	"tgdf: {TypeName} has unexpected field {Field}[ at {Path}]"
func (e *ValidationError) Error() string {
	switch e.Kind {
	case UnknownType:
		return "tgdf: unknown type " + strconv.Quote(e.TypeName) + where(e.Path)
	case MissingField:
		return "tgdf: " + e.TypeName + " missing required field " + strconv.Quote(e.Field) + where(e.Path)
	case UnexpectedField:
		return "tgdf: " + e.TypeName + " has unexpected field " + strconv.Quote(e.Field) + where(e.Path)
	default:
		return "tgdf: invalid " + e.TypeName + where(e.Path) + ": " + e.Detail
	}
}

// IntegrityErrorKind discriminates IntegrityError values.
type IntegrityErrorKind uint8

const (
	// InvalidVersion reports a metadata version that is not semantic.
	InvalidVersion IntegrityErrorKind = iota + 1

	// NoRecognizedHash reports a hashes block without any known algorithm.
	NoRecognizedHash

	// MalformedDigest reports a digest that is not lowercase hex of the
	// length its algorithm produces.
	MalformedDigest

	// DigestMismatch reports a well-formed digest that does not match the
	// recomputed payload digest.
	DigestMismatch
)

// String returns the lower_snake name of the kind.
func (k IntegrityErrorKind) String() string {
	switch k {
	case InvalidVersion:
		return "invalid_version"
	case NoRecognizedHash:
		return "no_recognized_hash"
	case MalformedDigest:
		return "malformed_digest"
	case DigestMismatch:
		return "digest_mismatch"
	default:
		return "IntegrityErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// IntegrityError is returned when the metadata envelope of a custom item is
// not well-formed.
type IntegrityError struct {
	Kind IntegrityErrorKind

	// TypeName is the custom item's type, filled in by the validator.
	TypeName string

	// Path is the dotted path of the custom item; empty at the root.
	Path string

	// Algorithm names the offending hash entry, if any.
	Algorithm string

	// Reason explains the failure.
	Reason string
}

// Error implements the error interface for IntegrityError.
//
// The error message format is:
//
//	"tgdf: bad integrity metadata[ of {TypeName}][ at {Path}]: {Reason}"
func (e *IntegrityError) Error() string {
	var b strings.Builder
	b.WriteString("tgdf: bad integrity metadata")
	if e.TypeName != "" {
		b.WriteString(" of ")
		b.WriteString(e.TypeName)
	}
	b.WriteString(where(e.Path))
	b.WriteString(": ")
	if e.Algorithm != "" {
		b.WriteString(e.Algorithm)
		b.WriteString(": ")
	}
	b.WriteString(e.Reason)
	return b.String()
}

// RegistryErrorKind discriminates RegistryError values.
type RegistryErrorKind uint8

const (
	// DuplicateType reports a name that is already registered.
	DuplicateType RegistryErrorKind = iota + 1

	// CyclicTypeGraph reports a composite type whose field graph leads back
	// to itself.
	CyclicTypeGraph

	// InvalidDefinition reports a structurally broken type definition.
	InvalidDefinition

	// Frozen reports a registration attempted after validation started.
	Frozen
)

// String returns the lower_snake name of the kind.
func (k RegistryErrorKind) String() string {
	switch k {
	case DuplicateType:
		return "duplicate_type"
	case CyclicTypeGraph:
		return "cyclic_type_graph"
	case InvalidDefinition:
		return "invalid_definition"
	case Frozen:
		return "frozen"
	default:
		return "RegistryErrorKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// RegistryError is returned when a type registration is rejected.
type RegistryError struct {
	Kind RegistryErrorKind

	// TypeName is the name being registered.
	TypeName string

	// Cycle lists the type names forming the cycle for CyclicTypeGraph.
	Cycle []string

	// Reason explains an InvalidDefinition.
	Reason string
}

// Error implements the error interface for RegistryError.
//
// The error message formats are:
//
//	"tgdf: type {TypeName} already registered"
//	"tgdf: type {TypeName} creates a cycle: {a -> b -> a}"
//	"tgdf: invalid definition of {TypeName}: {Reason}"
//	"tgdf: registry is frozen, cannot register {TypeName}"
func (e *RegistryError) Error() string {
	name := strconv.Quote(e.TypeName)
	switch e.Kind {
	case DuplicateType:
		return "tgdf: type " + name + " already registered"
	case CyclicTypeGraph:
		return "tgdf: type " + name + " creates a cycle: " + strings.Join(e.Cycle, " -> ")
	case Frozen:
		return "tgdf: registry is frozen, cannot register " + name
	default:
		return "tgdf: invalid definition of " + name + ": " + e.Reason
	}
}
