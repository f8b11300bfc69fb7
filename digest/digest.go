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

// Package digest implements incremental hash contexts addressed by Node.js
// algorithm names.
package digest

import (
	"encoding"
	"encoding/hex"
	"fmt"
	"hash"
	"reflect"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/subtle"
)

// Context is a running hash computation. It is finalized exactly once by
// Digest or DigestHex.
type Context struct {
	fn        subtle.HashFunc
	h         hash.Hash
	finalized bool
}

// New returns a fresh context for algorithm.
func New(algorithm string) (*Context, error) {
	fn, err := subtle.LookupHash(algorithm)
	if err != nil {
		return nil, fmt.Errorf("digest: %w", err)
	}
	return &Context{fn: fn, h: fn.New()}, nil
}

// Algorithms returns the supported algorithm names.
func Algorithms() []string {
	return subtle.HashNames()
}

// Algorithm returns the name c was created with.
func (c *Context) Algorithm() string { return c.fn.Name }

// Size returns the digest length in bytes.
func (c *Context) Size() int { return c.fn.Size }

// Update appends data to the running hash.
func (c *Context) Update(data []byte) error {
	if c.finalized {
		return fmt.Errorf("digest: %s context already finalized: %w", c.fn.Name, cryptoerr.ErrResource)
	}
	// hash.Hash.Write never returns an error.
	c.h.Write(data)
	return nil
}

// Clone returns an independent copy of c's running state.
func (c *Context) Clone() (*Context, error) {
	if c.finalized {
		return nil, fmt.Errorf("digest: %s context already finalized: %w", c.fn.Name, cryptoerr.ErrResource)
	}
	h, err := cloneHash(c.h, c.fn.New)
	if err != nil {
		return nil, fmt.Errorf("digest: cannot clone %s: %v", c.fn.Name, err)
	}
	return &Context{fn: c.fn, h: h}, nil
}

// Digest finalizes c and returns the digest.
func (c *Context) Digest() ([]byte, error) {
	if c.finalized {
		return nil, fmt.Errorf("digest: %s context already finalized: %w", c.fn.Name, cryptoerr.ErrResource)
	}
	c.finalized = true
	sum := c.h.Sum(nil)
	c.h = nil
	return sum, nil
}

// DigestHex finalizes c and returns the lowercase hex digest.
func (c *Context) DigestHex() (string, error) {
	sum, err := c.Digest()
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(sum), nil
}

// cloneHash copies the state of h into a new hash from fresh. Hashes that
// implement encoding.BinaryMarshaler round-trip through it; the rest must be
// pointers to structs of plain values, which are copied directly.
func cloneHash(h hash.Hash, fresh func() hash.Hash) (hash.Hash, error) {
	if m, ok := h.(encoding.BinaryMarshaler); ok {
		out := fresh()
		u, ok := out.(encoding.BinaryUnmarshaler)
		if !ok {
			return nil, fmt.Errorf("%T is not a BinaryUnmarshaler", out)
		}
		state, err := m.MarshalBinary()
		if err != nil {
			return nil, err
		}
		if err := u.UnmarshalBinary(state); err != nil {
			return nil, err
		}
		return out, nil
	}
	v := reflect.ValueOf(h)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct || !plain(v.Elem().Type()) {
		return nil, fmt.Errorf("%T state cannot be copied", h)
	}
	cp := reflect.New(v.Elem().Type())
	cp.Elem().Set(v.Elem())
	out, ok := cp.Interface().(hash.Hash)
	if !ok {
		return nil, fmt.Errorf("%T copy is not a hash.Hash", h)
	}
	return out, nil
}

// plain reports whether values of t hold no references.
func plain(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Array:
		return plain(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if !plain(t.Field(i).Type) {
				return false
			}
		}
		return true
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface,
		reflect.Func, reflect.Chan, reflect.String, reflect.UnsafePointer:
		return false
	default:
		return true
	}
}
