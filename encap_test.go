// Copyright 2026 The Encap Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"golang.org/x/tools/txtar"

	"encap/refactor"
)

// TestRun executes the txtar scripts in testdata. Each archive's comment
// is the run configuration; "stderr" and "stdout" entries hold expected
// diagnostics and diff output, "want/<file>" entries hold the expected
// rewritten files. When a "stdout" entry is present the script runs in
// diff mode and leaves the inputs untouched.
func TestRun(t *testing.T) {
	color.NoColor = true

	files, err := filepath.Glob("testdata/*.txt")
	if err != nil {
		t.Fatal(err)
	}
	if len(files) == 0 {
		t.Fatal("no test cases")
	}

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			ar, err := txtar.ParseFile(file)
			if err != nil {
				t.Fatal(err)
			}
			dir := t.TempDir()
			var wantStdout, wantStderr []byte
			wantFiles := make(map[string][]byte)
			showDiff := false
			for _, f := range ar.Files {
				switch {
				case f.Name == "stdout":
					wantStdout = f.Data
					showDiff = true
				case f.Name == "stderr":
					wantStderr = f.Data
				case strings.HasPrefix(f.Name, "want/"):
					wantFiles[strings.TrimPrefix(f.Name, "want/")] = f.Data
				default:
					if err := os.WriteFile(filepath.Join(dir, f.Name), f.Data, 0666); err != nil {
						t.Fatal(err)
					}
				}
			}
			wd, err := os.Getwd()
			if err != nil {
				t.Fatal(err)
			}
			if err := os.Chdir(dir); err != nil {
				t.Fatal(err)
			}
			t.Cleanup(func() { os.Chdir(wd) })

			sections, err := readConfig(bytes.NewReader(ar.Comment))
			if err != nil {
				t.Fatal(err)
			}
			var stdout, stderr bytes.Buffer
			rf := refactor.New()
			rf.Stdout = &stdout
			rf.Stderr = &stderr
			rf.ShowDiff = showDiff
			if err := run(rf, newRegistry(), sections); err != nil {
				fmt.Fprintf(rf.Stderr, "ERROR: %v\n", err)
			}

			cmp := func(name string, have, want []byte) {
				have = trimSpace(have)
				want = trimSpace(want)
				if !bytes.Equal(have, want) {
					t.Errorf("%s:\n%s", name, have)
					t.Errorf("want:\n%s", want)
				}
			}
			cmp("stderr", stderr.Bytes(), wantStderr)
			cmp("stdout", stdout.Bytes(), wantStdout)
			for name, want := range wantFiles {
				have, err := os.ReadFile(name)
				if err != nil {
					t.Fatal(err)
				}
				cmp(name, have, want)
			}
		})
	}
}

func trimSpace(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	for i, line := range lines {
		lines[i] = bytes.TrimRight(line, " ")
	}
	return bytes.Join(lines, []byte("\n"))
}
