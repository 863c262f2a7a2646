// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Encap rewrites C-family sources so that configured fields are only
// reached through synthesized getter and setter methods.
//
// Usage:
//
//	encap [-diff] [-config file]
//
// The run configuration is a multi-document YAML stream, read from
// standard input unless -config names a file. Each document lists the
// files to rewrite and the transforms to apply:
//
//	Files:
//	  - point.cpp
//	Transforms:
//	  Accessors:
//	    Fields:
//	      - Point::x
//	      - Point::y
//
// By default encap rewrites the files in place. With -diff it prints
// unified diffs of the pending changes instead. Advisory warnings, such
// as a reference to an encapsulated field escaping into an alias, are
// printed to standard error and never affect the rewritten text.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/xerrors"

	"encap/refactor"
)

func main() {
	var (
		showDiff   bool
		configFile string
	)
	cmd := &cobra.Command{
		Use:           "encap [-diff] [-config file]",
		Short:         "rewrite field accesses into getter/setter calls",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := newRegistry()
			rf := refactor.New()
			rf.ShowDiff = showDiff

			in := os.Stdin
			if configFile != "" {
				f, err := os.Open(configFile)
				if err != nil {
					return err
				}
				defer f.Close()
				in = f
			}
			sections, err := readConfig(in)
			if err != nil {
				return err
			}
			return run(rf, reg, sections)
		},
	}
	cmd.Flags().BoolVar(&showDiff, "diff", false, "show diffs instead of writing files")
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "read run configuration from `file`")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "encap: %v\n", err)
		os.Exit(1)
	}
}

// newRegistry builds the transform registry. Transforms are registered
// here, at process start, never by package initialization.
func newRegistry() *refactor.Registry {
	reg := refactor.NewRegistry()
	reg.Register("Accessors", refactor.NewAccessors)
	return reg
}

var warnColor = color.New(color.FgYellow)

// run processes every configuration section in order. Each file is an
// independent compilation unit with its own snapshot.
func run(rf *refactor.Refactor, reg *refactor.Registry, sections []*Section) error {
	for _, sec := range sections {
		if len(sec.Files) == 0 {
			fmt.Fprintf(rf.Stderr, "encap: configuration section has no files\n")
			continue
		}
		transforms, err := sec.transforms(reg)
		if err != nil {
			return err
		}
		for _, file := range sec.Files {
			if err := runFile(rf, file, transforms); err != nil {
				return err
			}
		}
	}
	return nil
}

func runFile(rf *refactor.Refactor, file string, transforms []refactor.Transform) error {
	src, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	out, snap, err := rf.Run(file, src, transforms)
	if snap != nil {
		for _, w := range snap.Warnings() {
			warnColor.Fprintf(rf.Stderr, "%v\n", w)
		}
	}
	if err != nil {
		return err
	}
	if rf.ShowDiff {
		d, err := snap.Diff()
		if err != nil {
			return xerrors.Errorf("diffing %s: %w", file, err)
		}
		rf.Stdout.Write(d)
		return nil
	}
	if snap.NumEdits() == 0 {
		return nil
	}
	return os.WriteFile(file, out, 0666)
}
