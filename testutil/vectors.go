// Copyright 2019 Google LLC
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

// Package testutil loads the known-answer test vectors shared by the
// package tests.
package testutil

import (
	"embed"
	"encoding/hex"
	"encoding/json"
	"path"
)

// Suite represents the common elements of the top level object in a vector
// file. Implementations embed Suite in a struct that strongly types the
// testGroups field. See vectors_test.go for an example.
type Suite struct {
	Algorithm     string            `json:"algorithm"`
	Source        string            `json:"source"`
	NumberOfTests int               `json:"numberOfTests"`
	Notes         map[string]string `json:"notes"`
}

// Group represents the common elements of a testGroups object. Implementations
// embed Group in a struct that strongly types its list of cases.
type Group struct {
	Type string `json:"type"`
}

// Case represents the common elements of a tests object. Result is "valid"
// for cases that must succeed and "invalid" for cases that must fail.
type Case struct {
	CaseID  int      `json:"tcId"`
	Comment string   `json:"comment"`
	Result  string   `json:"result"`
	Flags   []string `json:"flags"`
}

// Valid reports whether the case is expected to succeed.
func (c Case) Valid() bool { return c.Result == "valid" }

// HexBytes is a helper type for unmarshalling a byte sequence represented as a
// hex encoded string.
type HexBytes []byte

// UnmarshalText converts a hex encoded string into a sequence of bytes.
func (a *HexBytes) UnmarshalText(text []byte) error {
	decoded, err := hex.DecodeString(string(text))
	if err != nil {
		return err
	}

	*a = decoded
	return nil
}

// vectors holds the JSON vector files. Every case carries the document it
// was transcribed from in the suite's source field.
//
//go:embed testvectors/*.json
var vectors embed.FS

// PopulateSuite opens filename from the test vectors directory and
// populates suite with the decoded JSON data.
func PopulateSuite(suite any, filename string) error {
	f, err := vectors.Open(path.Join("testvectors", filename))
	if err != nil {
		return err
	}
	defer f.Close()
	parser := json.NewDecoder(f)
	if err := parser.Decode(suite); err != nil {
		return err
	}
	return nil
}
