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

// Package publickey implements RSA encryption and PKCS #1 v1.5 signatures
// over PEM encoded keys.
package publickey

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha1"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
)

// Padding selects the RSA encryption padding, using the OpenSSL constants.
type Padding int

const (
	// PKCS1 is RSA_PKCS1_PADDING.
	PKCS1 Padding = 1
	// OAEP is RSA_PKCS1_OAEP_PADDING with SHA-1.
	OAEP Padding = 4
)

func (p Padding) String() string {
	switch p {
	case PKCS1:
		return "PKCS1"
	case OAEP:
		return "OAEP"
	default:
		return fmt.Sprintf("Padding(%d)", int(p))
	}
}

var signHashes = map[string]crypto.Hash{
	"sha224": crypto.SHA224,
	"sha256": crypto.SHA256,
	"sha384": crypto.SHA384,
	"sha512": crypto.SHA512,
}

func pemBlock(key []byte, which string) ([]byte, error) {
	block, _ := pem.Decode(key)
	if block == nil {
		return nil, cryptoerr.Decodef("publickey: %s key is not PEM", which)
	}
	return block.Bytes, nil
}

// ParsePrivateKey parses a PEM encoded PKCS #8 RSA private key.
func ParsePrivateKey(pemKey []byte) (*rsa.PrivateKey, error) {
	der, err := pemBlock(pemKey, "private")
	if err != nil {
		return nil, err
	}
	k, err := x509.ParsePKCS8PrivateKey(der)
	if err != nil {
		return nil, cryptoerr.Decodef("publickey: invalid private key: %v", err)
	}
	rk, ok := k.(*rsa.PrivateKey)
	if !ok {
		return nil, cryptoerr.Decodef("publickey: private key is %T, not RSA", k)
	}
	return rk, nil
}

// ParsePublicKey parses a PEM encoded SubjectPublicKeyInfo RSA public key.
func ParsePublicKey(pemKey []byte) (*rsa.PublicKey, error) {
	der, err := pemBlock(pemKey, "public")
	if err != nil {
		return nil, err
	}
	k, err := x509.ParsePKIXPublicKey(der)
	if err != nil {
		return nil, cryptoerr.Decodef("publickey: invalid public key: %v", err)
	}
	rk, ok := k.(*rsa.PublicKey)
	if !ok {
		return nil, cryptoerr.Decodef("publickey: public key is %T, not RSA", k)
	}
	return rk, nil
}

func encrypt(pub *rsa.PublicKey, msg []byte, padding Padding) ([]byte, error) {
	var (
		out []byte
		err error
	)
	switch padding {
	case PKCS1:
		out, err = rsa.EncryptPKCS1v15(rand.Reader, pub, msg)
	case OAEP:
		out, err = rsa.EncryptOAEP(sha1.New(), rand.Reader, pub, msg, nil)
	default:
		return nil, cryptoerr.Parameterf("publickey: unknown padding %v", padding)
	}
	if err != nil {
		if errors.Is(err, rsa.ErrMessageTooLong) {
			return nil, cryptoerr.Parameterf("publickey: %v", err)
		}
		return nil, fmt.Errorf("publickey: %w", err)
	}
	return out, nil
}

// PublicEncrypt encrypts msg to a PEM SubjectPublicKeyInfo key.
func PublicEncrypt(pemPublic, msg []byte, padding Padding) ([]byte, error) {
	pub, err := ParsePublicKey(pemPublic)
	if err != nil {
		return nil, err
	}
	return encrypt(pub, msg, padding)
}

// PrivateEncrypt encrypts msg under the public half of a PEM PKCS #8
// private key. The result is decrypted with PrivateDecrypt.
func PrivateEncrypt(pemPrivate, msg []byte, padding Padding) ([]byte, error) {
	priv, err := ParsePrivateKey(pemPrivate)
	if err != nil {
		return nil, err
	}
	return encrypt(&priv.PublicKey, msg, padding)
}

// PrivateDecrypt decrypts msg with a PEM PKCS #8 private key.
func PrivateDecrypt(pemPrivate, msg []byte, padding Padding) ([]byte, error) {
	priv, err := ParsePrivateKey(pemPrivate)
	if err != nil {
		return nil, err
	}
	var out []byte
	switch padding {
	case PKCS1:
		out, err = rsa.DecryptPKCS1v15(nil, priv, msg)
	case OAEP:
		out, err = rsa.DecryptOAEP(sha1.New(), nil, priv, msg, nil)
	default:
		return nil, cryptoerr.Parameterf("publickey: unknown padding %v", padding)
	}
	if err != nil {
		return nil, fmt.Errorf("publickey: %w: %v", cryptoerr.ErrAuthentication, err)
	}
	return out, nil
}

func checkKeyKind(keyType, keyFormat string) error {
	if keyType != "rsa" {
		return cryptoerr.Parameterf("publickey: %s keys are not supported", keyType)
	}
	if keyFormat != "pem" {
		return cryptoerr.Parameterf("publickey: unsupported key format %q", keyFormat)
	}
	return nil
}

func signHash(digestType string, digest []byte) (crypto.Hash, error) {
	h, ok := signHashes[digestType]
	if !ok {
		return 0, cryptoerr.Parameterf("publickey: unknown digest algorithm %q", digestType)
	}
	if len(digest) != h.Size() {
		return 0, cryptoerr.Parameterf("publickey: %s digest must be %d bytes, got %d", digestType, h.Size(), len(digest))
	}
	return h, nil
}

// Sign returns a PKCS #1 v1.5 signature over a precomputed digest.
func Sign(digest []byte, digestType string, pemKey []byte, keyType, keyFormat string) ([]byte, error) {
	if err := checkKeyKind(keyType, keyFormat); err != nil {
		return nil, err
	}
	h, err := signHash(digestType, digest)
	if err != nil {
		return nil, err
	}
	priv, err := ParsePrivateKey(pemKey)
	if err != nil {
		return nil, err
	}
	sig, err := rsa.SignPKCS1v15(rand.Reader, priv, h, digest)
	if err != nil {
		return nil, fmt.Errorf("publickey: sign: %w", err)
	}
	return sig, nil
}

// Verify checks a PKCS #1 v1.5 signature over a precomputed digest. A
// signature that does not verify is reported as false with a nil error.
func Verify(digest []byte, digestType string, pemKey []byte, keyType, keyFormat string, signature []byte) (bool, error) {
	if err := checkKeyKind(keyType, keyFormat); err != nil {
		return false, err
	}
	h, err := signHash(digestType, digest)
	if err != nil {
		return false, err
	}
	pub, err := ParsePublicKey(pemKey)
	if err != nil {
		return false, err
	}
	return rsa.VerifyPKCS1v15(pub, h, digest, signature) == nil, nil
}
