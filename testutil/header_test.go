// Copyright 2025 The nodecrypto-go Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package testutil_test

import (
	"bufio"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// derivedFromTink lists the files carried over from Tink, which keep
// Google's copyright line and year.
var derivedFromTink = map[string]string{
	"internal/aead/aesctr.go":           "// Copyright 2024 Google LLC",
	"internal/aead/aesctr_test.go":      "// Copyright 2024 Google LLC",
	"internal/aead/aesgcm.go":           "// Copyright 2022 Google LLC",
	"internal/aead/aesgcm_test.go":      "// Copyright 2022 Google LLC",
	"internal/aead/chacha20poly1305.go": "// Copyright 2020 Google LLC",
	"internal/ec/ec.go":                 "// Copyright 2025 Google LLC",
	"internal/ec/ec_test.go":            "// Copyright 2025 Google LLC",
	"subtle/hkdf.go":                    "// Copyright 2020 Google LLC",
	"testutil/vectors.go":               "// Copyright 2019 Google LLC",
	"testutil/vectors_test.go":          "// Copyright 2019 Google LLC",
}

const ownCopyright = "// Copyright 2025 The nodecrypto-go Authors"

func firstLine(t *testing.T, path string) string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("os.Open(%q) err = %v", path, err)
	}
	defer f.Close()
	s := bufio.NewScanner(f)
	s.Scan()
	return s.Text()
}

func TestCopyrightHeaders(t *testing.T) {
	root := ".."
	seen := 0
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), "_") || strings.HasPrefix(d.Name(), ".") || d.Name() == "testdata" {
				if path != root {
					return filepath.SkipDir
				}
			}
			return nil
		}
		if filepath.Ext(path) != ".go" {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		want, ok := derivedFromTink[rel]
		if !ok {
			want = ownCopyright
		}
		if got := firstLine(t, path); got != want {
			t.Errorf("%s: first line = %q, want %q", rel, got, want)
		}
		seen++
		return nil
	})
	if err != nil {
		t.Fatalf("filepath.WalkDir() err = %v", err)
	}
	if seen < len(derivedFromTink) {
		t.Errorf("checked %d files, want at least %d", seen, len(derivedFromTink))
	}
}
