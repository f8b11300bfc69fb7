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

package cipheriv

import (
	"crypto/cipher"
	"fmt"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/internal/aead"
)

var errBadTag = fmt.Errorf("cipheriv: %w", cryptoerr.ErrAuthentication)

// streamMode is CTR: output is available byte for byte.
type streamMode struct {
	stream cipher.Stream
}

func (m *streamMode) setAAD([]byte) error       { return errNotAEAD }
func (m *streamMode) setAutoPadding(bool) error { return errNotPaddable }

func (m *streamMode) update(dst, src []byte) ([]byte, error) {
	start := len(dst)
	dst = append(dst, make([]byte, len(src))...)
	m.stream.XORKeyStream(dst[start:], src)
	return dst, nil
}

func (m *streamMode) finish(dst, _ []byte) ([]byte, []byte, error) { return dst, nil, nil }

// gcmMode streams AES-GCM output through the GCM counter key stream and
// computes the tag over the buffered message at finish. crypto/cipher does
// not expose an incremental GHASH.
type gcmMode struct {
	key, iv []byte
	stream  cipher.Stream
	decrypt bool
	aad     []byte
	// msg is the plaintext when encrypting and the ciphertext when
	// decrypting. Either way it is what Update received.
	msg []byte
}

func newGCMMode(key, iv []byte, decrypt bool) (mode, error) {
	s, err := aead.NewGCMKeyStream(key, iv)
	if err != nil {
		return nil, err
	}
	return &gcmMode{
		key:     append([]byte(nil), key...),
		iv:      append([]byte(nil), iv...),
		stream:  s,
		decrypt: decrypt,
	}, nil
}

func (m *gcmMode) setAAD(aad []byte) error {
	m.aad = append([]byte(nil), aad...)
	return nil
}

func (m *gcmMode) setAutoPadding(bool) error { return errNotPaddable }

func (m *gcmMode) update(dst, src []byte) ([]byte, error) {
	if err := aead.CheckPlaintextSize(uint64(len(m.msg)) + uint64(len(src))); err != nil {
		return nil, cryptoerr.Parameterf("cipheriv: %v", err)
	}
	m.msg = append(m.msg, src...)
	start := len(dst)
	dst = append(dst, make([]byte, len(src))...)
	m.stream.XORKeyStream(dst[start:], src)
	return dst, nil
}

func (m *gcmMode) finish(dst, tag []byte) ([]byte, []byte, error) {
	defer func() {
		clear(m.msg)
		clear(m.key)
	}()
	if !m.decrypt {
		gcm, err := aead.NewAESGCMCipher(m.key, aead.AESGCMTagSize)
		if err != nil {
			return nil, nil, err
		}
		sealed := gcm.Seal(nil, m.iv, m.msg, m.aad)
		return dst, sealed[len(m.msg):], nil
	}
	if len(tag) < aead.AESGCMMinTagSize || len(tag) > aead.AESGCMTagSize {
		return nil, nil, errBadTag
	}
	gcm, err := aead.NewAESGCMCipher(m.key, len(tag))
	if err != nil {
		return nil, nil, err
	}
	ct := make([]byte, 0, len(m.msg)+len(tag))
	ct = append(append(ct, m.msg...), tag...)
	pt, err := gcm.Open(nil, m.iv, ct, m.aad)
	clear(pt)
	if err != nil {
		return nil, nil, errBadTag
	}
	return dst, nil, nil
}

type chachaMode struct {
	s       *aead.ChaCha20Poly1305Stream
	decrypt bool
}

func newChaChaMode(key, iv []byte, decrypt bool) (mode, error) {
	s, err := aead.NewChaCha20Poly1305Stream(key, iv)
	if err != nil {
		return nil, err
	}
	return &chachaMode{s: s, decrypt: decrypt}, nil
}

func (m *chachaMode) setAAD(aad []byte) error   { return m.s.AddAAD(aad) }
func (m *chachaMode) setAutoPadding(bool) error { return errNotPaddable }

func (m *chachaMode) update(dst, src []byte) ([]byte, error) {
	start := len(dst)
	dst = append(dst, make([]byte, len(src))...)
	if m.decrypt {
		m.s.Open(dst[start:], src)
	} else {
		m.s.Seal(dst[start:], src)
	}
	return dst, nil
}

func (m *chachaMode) finish(dst, tag []byte) ([]byte, []byte, error) {
	if !m.decrypt {
		return dst, m.s.Tag(), nil
	}
	if len(tag) != aead.ChaCha20Poly1305TagSize || !m.s.Verify(tag) {
		return nil, nil, errBadTag
	}
	return dst, nil, nil
}
