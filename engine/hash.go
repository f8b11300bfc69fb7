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

package engine

import (
	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/digest"
	"github.com/nodecrypto/nodecrypto-go/handle"
)

// CreateHash starts a digest of algorithm. It returns 0 if the algorithm is
// unknown.
func (e *Engine) CreateHash(algorithm string) handle.Handle {
	c, err := digest.New(algorithm)
	if err != nil {
		e.failed("create_hash", err)
		return 0
	}
	return e.add("create_hash", c)
}

// GetHashes lists the digest algorithms.
func (e *Engine) GetHashes() []string { return digest.Algorithms() }

// HashUpdate feeds data into the digest behind h.
func (e *Engine) HashUpdate(h handle.Handle, data []byte) bool {
	err := handle.Get(e.table, h, func(c *digest.Context) error {
		return c.Update(data)
	})
	if err != nil {
		e.failed("hash_update", err)
		return false
	}
	return true
}

// HashUpdateString feeds the UTF-8 bytes of s into the digest behind h.
func (e *Engine) HashUpdateString(h handle.Handle, s string) bool {
	return e.HashUpdate(h, []byte(s))
}

// HashDigest consumes h and returns the digest.
func (e *Engine) HashDigest(h handle.Handle) ([]byte, error) {
	c, err := handle.Take[*digest.Context](e.table, h)
	if err != nil {
		e.failed("hash_digest", err)
		return nil, err
	}
	return c.Digest()
}

// HashDigestHex consumes h and returns the digest in lowercase hex.
func (e *Engine) HashDigestHex(h handle.Handle) (string, error) {
	c, err := handle.Take[*digest.Context](e.table, h)
	if err != nil {
		e.failed("hash_digest_hex", err)
		return "", err
	}
	return c.DigestHex()
}

// HashClone returns a new handle holding a copy of the digest state behind
// h. The two digests then evolve independently.
func (e *Engine) HashClone(h handle.Handle) (handle.Handle, error) {
	var dup *digest.Context
	err := handle.Get(e.table, h, func(c *digest.Context) error {
		var err error
		dup, err = c.Clone()
		return err
	})
	if err != nil {
		e.failed("hash_clone", err)
		return 0, err
	}
	nh := e.add("hash_clone", dup)
	if nh == 0 {
		return 0, cryptoerr.ErrResource
	}
	return nh, nil
}
