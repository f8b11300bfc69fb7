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
	"github.com/nodecrypto/nodecrypto-go/cipheriv"
	"github.com/nodecrypto/nodecrypto-go/handle"
	"github.com/nodecrypto/nodecrypto-go/internal/logging"
)

// GetCiphers lists the cipher algorithms.
func (e *Engine) GetCiphers() []string { return cipheriv.Algorithms() }

// CreateCipheriv starts an encryption. It returns 0 for an unknown
// algorithm or a key or IV of the wrong length.
func (e *Engine) CreateCipheriv(algorithm string, key, iv []byte) handle.Handle {
	c, err := cipheriv.NewCipher(algorithm, key, iv)
	if err != nil {
		e.failed("create_cipheriv", err, "algorithm", algorithm, logging.Redacted("key"))
		return 0
	}
	return e.add("create_cipheriv", c)
}

// CipherivSetAAD sets the additional authenticated data of an AEAD
// encryption. It must precede the first CipherivEncrypt.
func (e *Engine) CipherivSetAAD(h handle.Handle, aad []byte) bool {
	err := handle.Get(e.table, h, func(c *cipheriv.Cipher) error {
		return c.SetAAD(aad)
	})
	if err != nil {
		e.failed("cipheriv_set_aad", err)
		return false
	}
	return true
}

// CipherivSetAutoPadding toggles PKCS #7 padding of a block mode encryption.
func (e *Engine) CipherivSetAutoPadding(h handle.Handle, on bool) bool {
	err := handle.Get(e.table, h, func(c *cipheriv.Cipher) error {
		return c.SetAutoPadding(on)
	})
	if err != nil {
		e.failed("cipheriv_set_auto_padding", err)
		return false
	}
	return true
}

// CipherivEncrypt encrypts in and returns the ciphertext produced so far.
func (e *Engine) CipherivEncrypt(h handle.Handle, in []byte) ([]byte, bool) {
	var out []byte
	err := handle.Get(e.table, h, func(c *cipheriv.Cipher) error {
		var err error
		out, err = c.Update(in)
		return err
	})
	if err != nil {
		e.failed("cipheriv_encrypt", err)
		return nil, false
	}
	return out, true
}

// CipherivFinal consumes h after encrypting the last input in. It returns the
// remaining ciphertext and, for AEAD algorithms, the 16-byte tag.
func (e *Engine) CipherivFinal(h handle.Handle, in []byte) (out, tag []byte, err error) {
	c, err := handle.Take[*cipheriv.Cipher](e.table, h)
	if err != nil {
		e.failed("cipheriv_final", err)
		return nil, nil, err
	}
	head, err := c.Update(in)
	if err != nil {
		e.failed("cipheriv_final", err)
		return nil, nil, err
	}
	rest, tag, err := c.Final()
	if err != nil {
		e.failed("cipheriv_final", err)
		return nil, nil, err
	}
	return append(head, rest...), tag, nil
}

// CreateDecipheriv starts a decryption. It returns 0 for an unknown
// algorithm or a key or IV of the wrong length.
func (e *Engine) CreateDecipheriv(algorithm string, key, iv []byte) handle.Handle {
	d, err := cipheriv.NewDecipher(algorithm, key, iv)
	if err != nil {
		e.failed("create_decipheriv", err, "algorithm", algorithm, logging.Redacted("key"))
		return 0
	}
	return e.add("create_decipheriv", d)
}

// DecipherivSetAAD sets the additional authenticated data of an AEAD
// decryption.
func (e *Engine) DecipherivSetAAD(h handle.Handle, aad []byte) bool {
	err := handle.Get(e.table, h, func(d *cipheriv.Decipher) error {
		return d.SetAAD(aad)
	})
	if err != nil {
		e.failed("decipheriv_set_aad", err)
		return false
	}
	return true
}

// DecipherivSetAutoPadding toggles PKCS #7 unpadding of a block mode
// decryption.
func (e *Engine) DecipherivSetAutoPadding(h handle.Handle, on bool) bool {
	err := handle.Get(e.table, h, func(d *cipheriv.Decipher) error {
		return d.SetAutoPadding(on)
	})
	if err != nil {
		e.failed("decipheriv_set_auto_padding", err)
		return false
	}
	return true
}

// DecipherivDecrypt decrypts in and returns the plaintext produced so far.
// For AEAD algorithms this plaintext is unauthenticated until
// DecipherivFinal succeeds.
func (e *Engine) DecipherivDecrypt(h handle.Handle, in []byte) ([]byte, bool) {
	var out []byte
	err := handle.Get(e.table, h, func(d *cipheriv.Decipher) error {
		var err error
		out, err = d.Update(in)
		return err
	})
	if err != nil {
		e.failed("decipheriv_decrypt", err)
		return nil, false
	}
	return out, true
}

// DecipherivFinal consumes h after decrypting the last input in. For AEAD
// algorithms it verifies tag and fails with [cryptoerr.ErrAuthentication]
// on mismatch.
func (e *Engine) DecipherivFinal(h handle.Handle, in, tag []byte) ([]byte, error) {
	d, err := handle.Take[*cipheriv.Decipher](e.table, h)
	if err != nil {
		e.failed("decipheriv_final", err)
		return nil, err
	}
	head, err := d.Update(in)
	if err != nil {
		e.failed("decipheriv_final", err)
		return nil, err
	}
	rest, err := d.Final(tag)
	if err != nil {
		e.failed("decipheriv_final", err)
		return nil, err
	}
	return append(head, rest...), nil
}
