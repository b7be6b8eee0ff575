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

// Package optional implements the "value or sentinel" union of composite
// fields.
//
// A field declared optional may hold either an item or a reserved literal
// token, its sentinel, that stands for "intentionally absent". Value keeps
// the two cases apart, so a text field whose value is the item
// ["text", "none"] is never confused with the bare sentinel "none".
package optional

import (
	tgerrors "dirpx.dev/tgdf/tgcore/errors"
)

// DefaultSentinel is the absence token used when a field declares none.
const DefaultSentinel = "none"

// Value is either Present(v) or Absent(token).
type Value[T any] struct {
	v       T
	token   string
	present bool
}

// Present wraps v.
func Present[T any](v T) Value[T] {
	return Value[T]{v: v, present: true}
}

// Absent records absence with its sentinel token.
func Absent[T any](token string) Value[T] {
	return Value[T]{token: token}
}

// IsPresent reports whether the value is Present.
func (o Value[T]) IsPresent() bool {
	return o.present
}

// Get returns the wrapped value and true, or the zero T and false.
func (o Value[T]) Get() (T, bool) {
	return o.v, o.present
}

// Token returns the sentinel of an Absent value, or "" when Present.
func (o Value[T]) Token() string {
	return o.token
}

// OrElse returns the wrapped value, or def when Absent.
func (o Value[T]) OrElse(def T) T {
	if o.present {
		return o.v
	}
	return def
}

// String returns "present" or "absent(token)".
func (o Value[T]) String() string {
	if o.present {
		return "present"
	}
	return "absent(" + o.token + ")"
}

// Map applies fn to a Present value. An Absent value keeps its token and fn
// is not called.
func Map[T, U any](o Value[T], fn func(T) (U, error)) (Value[U], error) {
	if !o.present {
		return Absent[U](o.token), nil
	}
	u, err := fn(o.v)
	if err != nil {
		return Value[U]{}, err
	}
	return Present(u), nil
}

// Resolve interprets the raw value of a field.
//
// When raw is exactly the sentinel string it returns Absent if optional is
// true, and an *errors.OptionalityError of kind NotOptional otherwise. Any
// other raw value is returned as Present unchanged. An empty sentinel means
// DefaultSentinel.
//
// The returned error carries only the sentinel; callers fill in the type
// name, field and path they know about.
func Resolve(raw any, sentinel string, optional bool) (Value[any], error) {
	if sentinel == "" {
		sentinel = DefaultSentinel
	}
	if s, ok := raw.(string); ok && s == sentinel {
		if !optional {
			return Value[any]{}, &tgerrors.OptionalityError{Kind: tgerrors.NotOptional, Sentinel: sentinel}
		}
		return Absent[any](sentinel), nil
	}
	return Present(raw), nil
}
