// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package refactor

import (
	"sort"

	"gopkg.in/yaml.v3"
)

// A Transform rewrites one compilation unit's Snapshot. Implementations
// record edits and diagnostics on the snapshot; they never mutate the
// syntax tree.
type Transform interface {
	Name() string
	Rewrite(snap *Snapshot)
}

// A Factory builds a configured transform instance from the transform's
// section of the run configuration.
type Factory func(cfg *yaml.Node) (Transform, error)

// A Registry maps transform names to factories. It is an explicit value
// constructed once at process start; transforms are added by calling
// Register, never by package initialization side effects.
type Registry struct {
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// Register adds a named transform factory. Registering the same name
// twice replaces the earlier factory.
func (r *Registry) Register(name string, f Factory) {
	r.factories[name] = f
}

// Lookup returns the factory registered under name, or nil.
func (r *Registry) Lookup(name string) Factory {
	return r.factories[name]
}

// Names returns the registered transform names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
