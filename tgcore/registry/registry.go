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

// Package registry implements the type catalogue of the tgdf core.
//
// A Registry maps type names to definitions (*Type). It is populated during a
// single-threaded setup phase, either from the built-in table (NewBuiltin),
// by Register calls, or from definition files (LoadDefinitions, LoadFile).
// The validator freezes the registry when it is constructed; from then on
// the registry is read-only and shared by all validation workers without
// locking. Registering while validations are in flight is not supported.
//
// Composite fields may name types that are registered later. The field graph
// must stay acyclic: a type whose fields lead back to itself is rejected
// with a RegistryError of kind CyclicTypeGraph.
package registry

import (
	"slices"
	"sort"
	"sync/atomic"

	tgerrors "dirpx.dev/tgdf/tgcore/errors"
)

// Registry is the type catalogue.
type Registry struct {
	types  map[string]*Type
	names  []string
	frozen atomic.Bool
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Register adds t and returns it as the handle for the new type.
//
// It fails with a *errors.RegistryError of kind Frozen after Freeze,
// InvalidDefinition when t is malformed, DuplicateType when the name is taken
// and CyclicTypeGraph when t's fields lead back to t.
func (r *Registry) Register(t *Type) (*Type, error) {
	if t == nil {
		return nil, &tgerrors.RegistryError{Kind: tgerrors.InvalidDefinition, Reason: "nil type"}
	}
	if r.frozen.Load() {
		return nil, &tgerrors.RegistryError{Kind: tgerrors.Frozen, TypeName: t.name}
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if _, ok := r.types[t.name]; ok {
		return nil, &tgerrors.RegistryError{Kind: tgerrors.DuplicateType, TypeName: t.name}
	}

	g := r.graph()
	addType(g, t)
	if _, _, ok := g.sort(); !ok {
		cycle := g.path(t.name, t.name)
		slices.Reverse(cycle)
		return nil, &tgerrors.RegistryError{Kind: tgerrors.CyclicTypeGraph, TypeName: t.name, Cycle: cycle}
	}

	r.types[t.name] = t
	r.names = append(r.names, t.name)
	return t, nil
}

// MustRegister is Register for static tables. It panics on error.
func (r *Registry) MustRegister(t *Type) *Type {
	t, err := r.Register(t)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the type called name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Len returns the number of registered types.
func (r *Registry) Len() int {
	return len(r.names)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	out := append([]string(nil), r.names...)
	sort.Strings(out)
	return out
}

// Order returns the registered names with every type after the types its
// fields use. Names referenced by fields but not yet registered are left out.
func (r *Registry) Order() []string {
	order, _, _ := r.graph().sort()
	out := order[:0]
	for _, name := range order {
		if _, ok := r.types[name]; ok {
			out = append(out, name)
		}
	}
	return out
}

// Unresolved returns the sorted field type names that are not registered.
func (r *Registry) Unresolved() []string {
	var out []string
	seen := make(map[string]bool)
	for _, name := range r.names {
		for _, f := range r.types[name].fields {
			if _, ok := r.types[f.Type]; !ok && !seen[f.Type] {
				seen[f.Type] = true
				out = append(out, f.Type)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Freeze makes the registry read-only. It is idempotent.
func (r *Registry) Freeze() {
	r.frozen.Store(true)
}

// Frozen reports whether Freeze was called.
func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

func (r *Registry) graph() *graph {
	g := newGraph()
	for _, name := range r.names {
		addType(g, r.types[name])
	}
	return g
}

func addType(g *graph, t *Type) {
	g.addNode(t.name)
	for _, f := range t.fields {
		g.addEdge(f.Type, t.name)
	}
}
