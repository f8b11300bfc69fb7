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

// Package cipheriv implements incremental symmetric encryption and
// decryption contexts addressed by Node.js cipher names.
//
// A context moves through Created -> [AAD set] -> Updating -> Finalized.
// Associated data may be set at most once and only before the first Update;
// later calls are rejected with [cryptoerr.ErrParameter].
//
// For AEAD algorithms a Decipher returns plaintext from Update before the
// tag is checked. That plaintext must be discarded if Final fails with
// [cryptoerr.ErrAuthentication].
package cipheriv

import (
	"fmt"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
)

// mode is the per-algorithm strategy behind a context.
type mode interface {
	// update appends the output for src to dst.
	update(dst, src []byte) ([]byte, error)
	setAAD(aad []byte) error
	setAutoPadding(on bool) error
	// finish appends any remaining output to dst. Encrypting modes return
	// their tag; decrypting AEAD modes verify tag.
	finish(dst, tag []byte) (out, outTag []byte, err error)
}

type context struct {
	alg       *Algorithm
	m         mode
	aadSet    bool
	started   bool
	finalized bool
}

func newContext(name string, key, iv []byte, decrypt bool) (*context, error) {
	alg, err := lookup(name)
	if err != nil {
		return nil, err
	}
	if err := alg.validate(key, iv); err != nil {
		return nil, err
	}
	m, err := alg.newMode(key, iv, decrypt)
	if err != nil {
		return nil, fmt.Errorf("cipheriv: %s: %w", name, err)
	}
	return &context{alg: alg, m: m}, nil
}

func (c *context) checkLive() error {
	if c.finalized {
		return fmt.Errorf("cipheriv: %s context already finalized: %w", c.alg.Name, cryptoerr.ErrResource)
	}
	return nil
}

func (c *context) setAAD(aad []byte) error {
	if err := c.checkLive(); err != nil {
		return err
	}
	if !c.alg.AEAD {
		return cryptoerr.Parameterf("cipheriv: %s does not take associated data", c.alg.Name)
	}
	if c.aadSet {
		return cryptoerr.Parameterf("cipheriv: associated data already set")
	}
	if c.started {
		return cryptoerr.Parameterf("cipheriv: associated data must be set before the first update")
	}
	if err := c.m.setAAD(aad); err != nil {
		return cryptoerr.Parameterf("cipheriv: %v", err)
	}
	c.aadSet = true
	return nil
}

func (c *context) setAutoPadding(on bool) error {
	if err := c.checkLive(); err != nil {
		return err
	}
	if err := c.m.setAutoPadding(on); err != nil {
		return cryptoerr.Parameterf("cipheriv: %s: %v", c.alg.Name, err)
	}
	return nil
}

func (c *context) update(in []byte) ([]byte, error) {
	if err := c.checkLive(); err != nil {
		return nil, err
	}
	c.started = true
	return c.m.update(make([]byte, 0, len(in)+c.alg.BlockSize), in)
}

func (c *context) final(tag []byte) ([]byte, []byte, error) {
	if err := c.checkLive(); err != nil {
		return nil, nil, err
	}
	c.finalized = true
	return c.m.finish(make([]byte, 0, c.alg.BlockSize), tag)
}

// Cipher is an encryption context.
type Cipher struct {
	ctx *context
}

// NewCipher returns an encryption context for the named algorithm.
//
// It fails with [cryptoerr.ErrParameter] if the algorithm is unknown or the
// key or IV has the wrong length.
func NewCipher(algorithm string, key, iv []byte) (*Cipher, error) {
	ctx, err := newContext(algorithm, key, iv, false)
	if err != nil {
		return nil, err
	}
	return &Cipher{ctx: ctx}, nil
}

// Algorithm returns the algorithm c was created with.
func (c *Cipher) Algorithm() *Algorithm { return c.ctx.alg }

// SetAAD sets the associated data of an AEAD encryption.
func (c *Cipher) SetAAD(aad []byte) error { return c.ctx.setAAD(aad) }

// SetAutoPadding turns PKCS#7 padding on or off for block modes. It is on
// by default.
func (c *Cipher) SetAutoPadding(on bool) error { return c.ctx.setAutoPadding(on) }

// Update encrypts in and returns the ciphertext available so far.
func (c *Cipher) Update(in []byte) ([]byte, error) { return c.ctx.update(in) }

// Final consumes c and returns the remaining ciphertext and, for AEAD
// algorithms, the authentication tag.
func (c *Cipher) Final() (out, tag []byte, err error) { return c.ctx.final(nil) }

// Decipher is a decryption context.
type Decipher struct {
	ctx *context
}

// NewDecipher returns a decryption context for the named algorithm.
func NewDecipher(algorithm string, key, iv []byte) (*Decipher, error) {
	ctx, err := newContext(algorithm, key, iv, true)
	if err != nil {
		return nil, err
	}
	return &Decipher{ctx: ctx}, nil
}

// Algorithm returns the algorithm d was created with.
func (d *Decipher) Algorithm() *Algorithm { return d.ctx.alg }

// SetAAD sets the associated data of an AEAD decryption.
func (d *Decipher) SetAAD(aad []byte) error { return d.ctx.setAAD(aad) }

// SetAutoPadding turns PKCS#7 unpadding on or off for block modes.
func (d *Decipher) SetAutoPadding(on bool) error { return d.ctx.setAutoPadding(on) }

// Update decrypts in and returns the plaintext available so far.
func (d *Decipher) Update(in []byte) ([]byte, error) { return d.ctx.update(in) }

// Final consumes d and returns the remaining plaintext. For AEAD algorithms
// tag is verified and a mismatch fails with [cryptoerr.ErrAuthentication];
// other algorithms ignore tag.
func (d *Decipher) Final(tag []byte) ([]byte, error) {
	out, _, err := d.ctx.final(tag)
	return out, err
}
