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
	"crypto/subtle"
	"errors"
	"fmt"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
)

var (
	errNotAEAD     = errors.New("not an AEAD mode")
	errBadDecrypt  = fmt.Errorf("cipheriv: bad decrypt: %w", cryptoerr.ErrAuthentication)
	errNotPaddable = errors.New("auto padding applies to block modes only")
)

// ecb implements cipher.BlockMode without chaining. crypto/cipher does not
// provide it.
type ecb struct {
	b       cipher.Block
	decrypt bool
}

func (e *ecb) BlockSize() int { return e.b.BlockSize() }

func (e *ecb) CryptBlocks(dst, src []byte) {
	bs := e.b.BlockSize()
	for len(src) > 0 {
		if e.decrypt {
			e.b.Decrypt(dst[:bs], src[:bs])
		} else {
			e.b.Encrypt(dst[:bs], src[:bs])
		}
		dst, src = dst[bs:], src[bs:]
	}
}

// blockMode buffers input into whole blocks for ECB and CBC.
type blockMode struct {
	bm      cipher.BlockMode
	decrypt bool
	padding bool
	buf     []byte
}

func newECBMode(newBlock func([]byte) (cipher.Block, error), key []byte, decrypt bool) (mode, error) {
	b, err := newBlock(key)
	if err != nil {
		return nil, err
	}
	return &blockMode{bm: &ecb{b: b, decrypt: decrypt}, decrypt: decrypt, padding: true}, nil
}

func newCBCMode(newBlock func([]byte) (cipher.Block, error), key, iv []byte, decrypt bool) (mode, error) {
	b, err := newBlock(key)
	if err != nil {
		return nil, err
	}
	m := &blockMode{decrypt: decrypt, padding: true}
	if decrypt {
		m.bm = cipher.NewCBCDecrypter(b, iv)
	} else {
		m.bm = cipher.NewCBCEncrypter(b, iv)
	}
	return m, nil
}

func (m *blockMode) setAAD([]byte) error { return errNotAEAD }

func (m *blockMode) setAutoPadding(on bool) error {
	m.padding = on
	return nil
}

func (m *blockMode) crypt(dst, src []byte) []byte {
	start := len(dst)
	dst = append(dst, src...)
	m.bm.CryptBlocks(dst[start:], dst[start:])
	return dst
}

func (m *blockMode) update(dst, src []byte) ([]byte, error) {
	bs := m.bm.BlockSize()
	m.buf = append(m.buf, src...)
	n := len(m.buf) / bs * bs
	// Unpadding needs the last block, so keep one back until Final.
	if m.decrypt && m.padding && n == len(m.buf) && n > 0 {
		n -= bs
	}
	if n == 0 {
		return dst, nil
	}
	dst = m.crypt(dst, m.buf[:n])
	m.buf = append(m.buf[:0], m.buf[n:]...)
	return dst, nil
}

func (m *blockMode) finish(dst, _ []byte) ([]byte, []byte, error) {
	bs := m.bm.BlockSize()
	defer func() { clear(m.buf) }()
	if !m.decrypt {
		if m.padding {
			pad := bs - len(m.buf)%bs
			for i := 0; i < pad; i++ {
				m.buf = append(m.buf, byte(pad))
			}
		} else if len(m.buf)%bs != 0 {
			return nil, nil, cryptoerr.Parameterf("cipheriv: data not multiple of block length")
		}
		return m.crypt(dst, m.buf), nil, nil
	}
	if len(m.buf)%bs != 0 {
		if m.padding {
			return nil, nil, errBadDecrypt
		}
		return nil, nil, cryptoerr.Parameterf("cipheriv: data not multiple of block length")
	}
	if !m.padding {
		return m.crypt(dst, m.buf), nil, nil
	}
	if len(m.buf) == 0 {
		return nil, nil, errBadDecrypt
	}
	start := len(dst)
	dst = m.crypt(dst, m.buf)
	n, ok := unpad(dst[start:], bs)
	if !ok {
		clear(dst[start:])
		return nil, nil, errBadDecrypt
	}
	return dst[:start+n], nil, nil
}

// unpad returns the length of block without its PKCS#7 padding. The check
// runs in time independent of the padding value.
func unpad(block []byte, bs int) (int, bool) {
	last := block[len(block)-bs:]
	pad := int(last[bs-1])
	good := subtle.ConstantTimeLessOrEq(1, pad) & subtle.ConstantTimeLessOrEq(pad, bs)
	for i := 0; i < bs; i++ {
		inPad := subtle.ConstantTimeLessOrEq(bs-i, pad)
		match := subtle.ConstantTimeByteEq(last[i], byte(pad))
		// Bytes inside the padding must equal the pad value.
		good &= match | (1 ^ inPad)
	}
	if good != 1 {
		return 0, false
	}
	return len(block) - pad, true
}
