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

// Package validate checks parsed items against the type registry.
//
// A Validator looks up the item's type, applies primitive, enum and quantity
// rules to scalars, and walks composite fields in declared order: each field
// is resolved against its sentinel, parsed and validated recursively. Custom
// items have their metadata envelope verified before their fields.
//
// The default FailFast mode stops at the first error of the depth-first
// walk. CollectAll keeps walking and returns every error combined into one;
// Errors splits it again.
//
//	v := validate.New(registry.NewBuiltin())
//	out, err := v.ValidateRaw([]any{"weight", "kg", "75.5"})
package validate

import (
	"errors"
	"fmt"
	"runtime"

	tgerrors "dirpx.dev/tgdf/tgcore/errors"
	"dirpx.dev/tgdf/tgcore/item"
	"dirpx.dev/tgdf/tgcore/model/integrity"
	"dirpx.dev/tgdf/tgcore/optional"
	"dirpx.dev/tgdf/tgcore/registry"
	"github.com/rs/zerolog"
	"go.uber.org/multierr"
)

// PayloadFunc derives the bytes the digests of a custom item cover.
type PayloadFunc func(c *item.Custom) ([]byte, error)

// Option configures a Validator.
type Option func(*Validator)

// WithMode sets the error reporting mode.
func WithMode(m Mode) Option {
	return func(v *Validator) { v.mode = m }
}

// WithConcurrency bounds the workers of ValidateBatch. Values below one
// mean one.
func WithConcurrency(n int) Option {
	return func(v *Validator) {
		if n < 1 {
			n = 1
		}
		v.workers = n
	}
}

// WithLogger sets the logger of ValidateBatch.
func WithLogger(l zerolog.Logger) Option {
	return func(v *Validator) { v.logger = l }
}

// WithPayload makes the Validator compare custom item digests with the
// digests of fn's output, in addition to the well-formedness checks.
func WithPayload(fn PayloadFunc) Option {
	return func(v *Validator) { v.payload = fn }
}

// Validator validates items against a frozen registry. It holds no mutable
// state and is safe for concurrent use.
type Validator struct {
	reg     *registry.Registry
	mode    Mode
	workers int
	logger  zerolog.Logger
	payload PayloadFunc
}

// New returns a Validator over reg and freezes reg.
func New(reg *registry.Registry, opts ...Option) *Validator {
	reg.Freeze()
	v := &Validator{
		reg:     reg,
		workers: runtime.GOMAXPROCS(0),
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Registry returns the registry the Validator reads.
func (v *Validator) Registry() *registry.Registry {
	return v.reg
}

// Validate checks it and returns a new read-only Validated wrapper. The
// input item is not modified.
func (v *Validator) Validate(it item.Item) (*Validated, error) {
	if isNil(it) {
		return nil, &tgerrors.ShapeError{Kind: tgerrors.Malformed, Reason: "nil item"}
	}
	w := &walker{v: v}
	out := w.item(it, "")
	if w.errs != nil {
		return nil, w.errs
	}
	return out, nil
}

// isNil reports whether it is nil or a typed nil item pointer.
func isNil(it item.Item) bool {
	switch x := it.(type) {
	case nil:
		return true
	case *item.Basic:
		return x == nil
	case *item.Short:
		return x == nil
	case *item.Custom:
		return x == nil
	}
	return false
}

// ValidateRaw parses raw and validates the resulting item.
func (v *Validator) ValidateRaw(raw any) (*Validated, error) {
	it, err := item.Parse(raw)
	if err != nil {
		return nil, err
	}
	return v.Validate(it)
}

// Errors returns the individual errors combined in err. It returns nil for
// a nil err and a one-element slice for a single error.
func Errors(err error) []error {
	return multierr.Errors(err)
}

// walker carries the state of one validation.
type walker struct {
	v    *Validator
	errs error
}

// report records err and tells whether the walk continues.
func (w *walker) report(err error) bool {
	w.errs = multierr.Append(w.errs, err)
	return w.v.mode == CollectAll
}

func (w *walker) halted() bool {
	return w.errs != nil && w.v.mode != CollectAll
}

// item validates it and returns nil when it is invalid.
func (w *walker) item(it item.Item, path string) *Validated {
	typ, ok := w.v.reg.Lookup(it.TypeName())
	if !ok {
		w.report(&tgerrors.ValidationError{Kind: tgerrors.UnknownType, TypeName: it.TypeName(), Path: path})
		return nil
	}

	switch x := it.(type) {
	case *item.Basic:
		return w.basic(x, typ, path)
	case *item.Short:
		return w.record(x, typ, x.Fields, path)
	case *item.Custom:
		verified := w.metadata(x, typ, path)
		if w.halted() {
			return nil
		}
		out := w.record(x, typ, x.Fields, path)
		if !verified {
			return nil
		}
		return out
	default:
		w.report(&tgerrors.ShapeError{Kind: tgerrors.Malformed, Path: path, TypeName: it.TypeName(), Reason: fmt.Sprintf("unsupported item %T", it)})
		return nil
	}
}

func (w *walker) basic(b *item.Basic, typ *registry.Type, path string) *Validated {
	var err error
	if b.Value.Quantity {
		err = typ.CheckQuantity(b.Value.Unit, b.Value.Scalar)
	} else {
		err = typ.CheckScalar(b.Value.Scalar)
	}
	if err != nil {
		w.report(&tgerrors.ValidationError{
			Kind:     tgerrors.RuleViolation,
			TypeName: typ.Name(),
			Path:     path,
			Detail:   err.Error(),
			Value:    b.Value.Scalar,
		})
		return nil
	}
	return &Validated{item: b, typ: typ, value: b.Value}
}

// metadata verifies the envelope of c and, with a payload hook, its digests.
func (w *walker) metadata(c *item.Custom, typ *registry.Type, path string) bool {
	err := integrity.Verify(c.Metadata)
	if err == nil && w.v.payload != nil {
		var payload []byte
		payload, err = w.v.payload(c)
		if err != nil {
			err = fmt.Errorf("deriving payload of %s: %w", typ.Name(), err)
		} else {
			err = integrity.VerifyPayload(c.Metadata, payload)
		}
	}
	if err == nil {
		return true
	}

	var ierr *tgerrors.IntegrityError
	if errors.As(err, &ierr) {
		ierr.TypeName = typ.Name()
		ierr.Path = path
	}
	w.report(err)
	return false
}

// record walks the fields of a Short or Custom item in declared order and
// then reports undeclared fields.
func (w *walker) record(it item.Item, typ *registry.Type, fields *item.Record, path string) *Validated {
	if typ.Kind() != registry.KindComposite {
		w.report(&tgerrors.ValidationError{
			Kind:     tgerrors.RuleViolation,
			TypeName: typ.Name(),
			Path:     path,
			Detail:   fmt.Sprintf("%s type cannot hold fields", typ.Kind()),
		})
		return nil
	}

	absentAllowed := it.Shape() == item.ShapeCustom
	out := &Validated{item: it, typ: typ}
	ok := true

	for _, f := range typ.Fields() {
		fpath := item.JoinPath(path, f.Name)

		raw, present := fields.Get(f.Name)
		if !present {
			if f.Optional {
				out.fields = append(out.fields, FieldValue{Field: f, Value: optional.Absent[*Validated](f.Token())})
				continue
			}
			ok = false
			if !w.report(&tgerrors.ValidationError{Kind: tgerrors.MissingField, TypeName: typ.Name(), Path: fpath, Field: f.Name}) {
				return nil
			}
			continue
		}

		resolved, err := optional.Resolve(raw, f.Token(), f.Optional && absentAllowed)
		if err != nil {
			var oerr *tgerrors.OptionalityError
			if errors.As(err, &oerr) {
				oerr.TypeName = typ.Name()
				oerr.Path = fpath
				oerr.Field = f.Name
			}
			ok = false
			if !w.report(err) {
				return nil
			}
			continue
		}
		if !resolved.IsPresent() {
			out.fields = append(out.fields, FieldValue{Field: f, Value: optional.Absent[*Validated](resolved.Token())})
			continue
		}

		value, _ := resolved.Get()
		child := w.field(typ, f, value, fpath)
		if child == nil {
			ok = false
			if w.halted() {
				return nil
			}
			continue
		}
		out.fields = append(out.fields, FieldValue{Field: f, Value: optional.Present(child)})
	}

	for _, k := range fields.Keys() {
		if _, declared := typ.Field(k); declared {
			continue
		}
		ok = false
		if !w.report(&tgerrors.ValidationError{Kind: tgerrors.UnexpectedField, TypeName: typ.Name(), Path: item.JoinPath(path, k), Field: k}) {
			return nil
		}
	}

	if !ok {
		return nil
	}
	return out
}

// field parses and validates the raw value of f, a field of owner.
func (w *walker) field(owner *registry.Type, f registry.Field, raw any, path string) *Validated {
	child, err := item.ParseAt(raw, path)
	if err != nil {
		var serr *tgerrors.ShapeError
		if errors.As(err, &serr) && serr.TypeName == "" {
			serr.TypeName = owner.Name()
		}
		w.report(err)
		return nil
	}
	if child.TypeName() != f.Type {
		w.report(&tgerrors.ValidationError{
			Kind:     tgerrors.RuleViolation,
			TypeName: f.Type,
			Path:     path,
			Detail:   fmt.Sprintf("field %q holds a %s item", f.Name, child.TypeName()),
		})
		return nil
	}
	return w.item(child, path)
}
