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
	"github.com/nodecrypto/nodecrypto-go/internal/logging"
	"github.com/nodecrypto/nodecrypto-go/publickey"
)

func (e *Engine) rsaResult(op string, out []byte, err error) ([]byte, error) {
	if err != nil {
		e.failed(op, err, logging.Redacted("key"))
		return nil, err
	}
	return out, nil
}

// PublicEncrypt encrypts msg to a PEM public key. padding is 1 for
// PKCS #1 v1.5 or 4 for OAEP.
func (e *Engine) PublicEncrypt(pemPublic, msg []byte, padding int) ([]byte, error) {
	out, err := publickey.PublicEncrypt(pemPublic, msg, publickey.Padding(padding))
	return e.rsaResult("public_encrypt", out, err)
}

// PrivateEncrypt encrypts msg under the public half of a PEM private key.
func (e *Engine) PrivateEncrypt(pemPrivate, msg []byte, padding int) ([]byte, error) {
	out, err := publickey.PrivateEncrypt(pemPrivate, msg, publickey.Padding(padding))
	return e.rsaResult("private_encrypt", out, err)
}

// PrivateDecrypt decrypts msg with a PEM private key.
func (e *Engine) PrivateDecrypt(pemPrivate, msg []byte, padding int) ([]byte, error) {
	out, err := publickey.PrivateDecrypt(pemPrivate, msg, publickey.Padding(padding))
	return e.rsaResult("private_decrypt", out, err)
}

// Sign returns a PKCS #1 v1.5 signature over a precomputed digest.
func (e *Engine) Sign(digest []byte, digestType string, pemKey []byte, keyType, keyFormat string) ([]byte, error) {
	sig, err := publickey.Sign(digest, digestType, pemKey, keyType, keyFormat)
	return e.rsaResult("sign", sig, err)
}

// Verify checks a PKCS #1 v1.5 signature over a precomputed digest.
func (e *Engine) Verify(digest []byte, digestType string, pemKey []byte, keyType, keyFormat string, signature []byte) (bool, error) {
	ok, err := publickey.Verify(digest, digestType, pemKey, keyType, keyFormat, signature)
	if err != nil {
		e.failed("verify", err)
		return false, err
	}
	return ok, nil
}
