// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"io"

	"golang.org/x/xerrors"
	"gopkg.in/yaml.v3"

	"encap/refactor"
)

// A Section is one document of the run configuration: the files to
// rewrite and the transforms to apply to each of them, in order of
// appearance.
type Section struct {
	Files      []string  `yaml:"Files"`
	Transforms yaml.Node `yaml:"Transforms"`
}

// readConfig decodes a multi-document YAML stream of Sections.
func readConfig(r io.Reader) ([]*Section, error) {
	dec := yaml.NewDecoder(r)
	var sections []*Section
	for {
		s := new(Section)
		err := dec.Decode(s)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xerrors.Errorf("reading configuration: %w", err)
		}
		sections = append(sections, s)
	}
	return sections, nil
}

// transforms instantiates the section's transforms through the registry,
// preserving their order in the document.
func (s *Section) transforms(reg *refactor.Registry) ([]refactor.Transform, error) {
	if s.Transforms.Kind == 0 {
		return nil, nil
	}
	if s.Transforms.Kind != yaml.MappingNode {
		return nil, xerrors.New("Transforms must be a mapping of name to configuration")
	}
	var list []refactor.Transform
	for i := 0; i+1 < len(s.Transforms.Content); i += 2 {
		name := s.Transforms.Content[i].Value
		cfg := s.Transforms.Content[i+1]
		f := reg.Lookup(name)
		if f == nil {
			return nil, xerrors.Errorf("unknown transform %q", name)
		}
		t, err := f(cfg)
		if err != nil {
			return nil, xerrors.Errorf("transform %s: %w", name, err)
		}
		list = append(list, t)
	}
	return list, nil
}
