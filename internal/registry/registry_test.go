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

package registry_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/nodecrypto/nodecrypto-go/internal/registry"
)

func TestRegisterLookupWorks(t *testing.T) {
	r := registry.New[int]()
	if err := r.Register("b", 2); err != nil {
		t.Fatalf("r.Register(%q) err = %v, want nil", "b", err)
	}
	if err := r.Register("a", 1); err != nil {
		t.Fatalf("r.Register(%q) err = %v, want nil", "a", err)
	}
	got, ok := r.Lookup("a")
	if !ok || got != 1 {
		t.Errorf("r.Lookup(%q) = %v, %v, want 1, true", "a", got, ok)
	}
	if diff := cmp.Diff([]string{"a", "b"}, r.Names()); diff != "" {
		t.Errorf("r.Names() diff (-want +got):\n%s", diff)
	}
}

func TestRegisterFailsIfRegisteredTwice(t *testing.T) {
	r := registry.New[int]()
	if err := r.Register("a", 1); err != nil {
		t.Fatalf("r.Register(%q) err = %v, want nil", "a", err)
	}
	if err := r.Register("a", 2); err == nil {
		t.Errorf("r.Register(%q) err = nil, want error", "a")
	}
}

func TestLookupIsCaseSensitive(t *testing.T) {
	r := registry.New[int]()
	r.MustRegister("sha256", 1)
	if _, ok := r.Lookup("SHA256"); ok {
		t.Errorf("r.Lookup(%q) ok = true, want false", "SHA256")
	}
}

func TestUnregister(t *testing.T) {
	r := registry.New[int]()
	r.MustRegister("a", 1)
	r.Unregister("a")
	if _, ok := r.Lookup("a"); ok {
		t.Errorf("r.Lookup(%q) ok = true after Unregister, want false", "a")
	}
}
