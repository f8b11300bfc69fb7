// Copyright 2020 Google LLC
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

package aead

import (
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"

	"golang.org/x/crypto/chacha20"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/poly1305"
)

const (
	// ChaCha20Poly1305KeySize is the size of the key.
	ChaCha20Poly1305KeySize = chacha20poly1305.KeySize
	// ChaCha20Poly1305NonceSize is the size of the nonce.
	ChaCha20Poly1305NonceSize = chacha20poly1305.NonceSize
	// ChaCha20Poly1305TagSize is the size of the tag.
	ChaCha20Poly1305TagSize = chacha20poly1305.Overhead
)

var errAADAfterData = errors.New("chacha20poly1305: associated data after message data")

// ChaCha20Poly1305Stream is the RFC 8439 AEAD construction driven one chunk
// at a time. Associated data must be added before any message data.
type ChaCha20Poly1305Stream struct {
	stream  *chacha20.Cipher
	mac     *poly1305.MAC
	aadLen  uint64
	dataLen uint64
	inData  bool
}

// NewChaCha20Poly1305Stream returns a stream for key and nonce.
func NewChaCha20Poly1305Stream(key, nonce []byte) (*ChaCha20Poly1305Stream, error) {
	if len(key) != ChaCha20Poly1305KeySize {
		return nil, fmt.Errorf("chacha20poly1305: bad key length %d", len(key))
	}
	if len(nonce) != ChaCha20Poly1305NonceSize {
		return nil, fmt.Errorf("chacha20poly1305: bad nonce length %d", len(nonce))
	}
	s, err := chacha20.NewUnauthenticatedCipher(key, nonce)
	if err != nil {
		return nil, err
	}
	// The one-time Poly1305 key is the first 32 bytes of block 0.
	var polyKey [32]byte
	s.XORKeyStream(polyKey[:], polyKey[:])
	s.SetCounter(1)
	return &ChaCha20Poly1305Stream{stream: s, mac: poly1305.New(&polyKey)}, nil
}

// AddAAD authenticates additional data.
func (c *ChaCha20Poly1305Stream) AddAAD(aad []byte) error {
	if c.inData {
		return errAADAfterData
	}
	c.mac.Write(aad)
	c.aadLen += uint64(len(aad))
	return nil
}

func (c *ChaCha20Poly1305Stream) pad(n uint64) {
	if rem := n % 16; rem != 0 {
		var zeros [16]byte
		c.mac.Write(zeros[:16-rem])
	}
}

func (c *ChaCha20Poly1305Stream) startData() {
	if !c.inData {
		c.pad(c.aadLen)
		c.inData = true
	}
}

// Seal encrypts src into dst, which must be at least len(src) long.
func (c *ChaCha20Poly1305Stream) Seal(dst, src []byte) {
	c.startData()
	c.stream.XORKeyStream(dst[:len(src)], src)
	c.mac.Write(dst[:len(src)])
	c.dataLen += uint64(len(src))
}

// Open decrypts src into dst, which must be at least len(src) long. The
// output is unauthenticated until Verify succeeds.
func (c *ChaCha20Poly1305Stream) Open(dst, src []byte) {
	c.startData()
	c.mac.Write(src)
	c.stream.XORKeyStream(dst[:len(src)], src)
	c.dataLen += uint64(len(src))
}

// Tag finishes the computation and returns the 16-byte tag.
func (c *ChaCha20Poly1305Stream) Tag() []byte {
	c.startData()
	c.pad(c.dataLen)
	var lengths [16]byte
	binary.LittleEndian.PutUint64(lengths[:8], c.aadLen)
	binary.LittleEndian.PutUint64(lengths[8:], c.dataLen)
	c.mac.Write(lengths[:])
	return c.mac.Sum(nil)
}

// Verify finishes the computation and compares the tag in constant time.
func (c *ChaCha20Poly1305Stream) Verify(tag []byte) bool {
	return subtle.ConstantTimeCompare(c.Tag(), tag) == 1
}
