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

// Package subtle resolves Node.js digest names to hash constructors and
// provides the HKDF helper built on them.
package subtle

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"hash"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/internal/registry"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/md4"
	"golang.org/x/crypto/ripemd160"
	"golang.org/x/crypto/sha3"
)

// HashFunc describes one digest algorithm.
type HashFunc struct {
	Name string
	New  func() hash.Hash
	Size int
}

var hashes = registry.New[HashFunc]()

func register(name string, fn func() hash.Hash) {
	hashes.MustRegister(name, HashFunc{Name: name, New: fn, Size: fn().Size()})
}

func unkeyed(fn func([]byte) (hash.Hash, error)) func() hash.Hash {
	return func() hash.Hash {
		h, err := fn(nil)
		if err != nil {
			// Only reachable with a key longer than the block size.
			panic(err)
		}
		return h
	}
}

func init() {
	register("md4", md4.New)
	register("md5", md5.New)
	register("ripemd160", ripemd160.New)
	register("sha1", sha1.New)
	register("sha224", sha256.New224)
	register("sha256", sha256.New)
	register("sha384", sha512.New384)
	register("sha512", sha512.New)
	register("sha512-224", sha512.New512_224)
	register("sha512-256", sha512.New512_256)
	register("sha3-224", sha3.New224)
	register("sha3-256", sha3.New256)
	register("sha3-384", sha3.New384)
	register("sha3-512", sha3.New512)
	register("blake2b512", unkeyed(blake2b.New512))
	register("blake2s256", unkeyed(blake2s.New256))
}

// LookupHash returns the digest algorithm registered under name.
func LookupHash(name string) (HashFunc, error) {
	h, ok := hashes.Lookup(name)
	if !ok {
		return HashFunc{}, cryptoerr.Parameterf("unknown digest %q", name)
	}
	return h, nil
}

// GetHashFunc returns the constructor for name, or nil if name is unknown.
func GetHashFunc(name string) func() hash.Hash {
	h, ok := hashes.Lookup(name)
	if !ok {
		return nil
	}
	return h.New
}

// GetHashDigestSize returns the digest size in bytes of name.
func GetHashDigestSize(name string) (uint32, error) {
	h, err := LookupHash(name)
	if err != nil {
		return 0, err
	}
	return uint32(h.Size), nil
}

// HashNames returns the supported digest names in sorted order.
func HashNames() []string {
	return hashes.Names()
}
