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

// Package kdf provides password and key based key derivation and secure
// random values.
package kdf

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/subtle"
	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/crypto/scrypt"
)

// DefaultScryptMaxMemory bounds the scrypt working set when the caller
// passes zero.
const DefaultScryptMaxMemory = 32 << 20

// maxRandomIntRange matches the largest range Node.js accepts for randomInt.
const maxRandomIntRange = 1 << 48

// PBKDF2 derives keyLen bytes from password and salt with HMAC over the
// named digest.
func PBKDF2(password, salt []byte, iterations int, digest string, keyLen int) ([]byte, error) {
	h, err := subtle.LookupHash(digest)
	if err != nil {
		return nil, fmt.Errorf("pbkdf2: %w", err)
	}
	if iterations < 1 {
		return nil, cryptoerr.Parameterf("pbkdf2: iterations must be positive, got %d", iterations)
	}
	if keyLen < 0 {
		return nil, cryptoerr.Parameterf("pbkdf2: negative key length %d", keyLen)
	}
	return pbkdf2.Key(password, salt, iterations, keyLen, h.New), nil
}

// HKDF runs RFC 5869 extract-then-expand. A length above 255 times the
// digest size fails with [cryptoerr.ErrDerivation].
func HKDF(digest string, ikm, salt, info []byte, length int) ([]byte, error) {
	return subtle.ComputeHKDF(digest, ikm, salt, info, length)
}

// ScryptParams are the scrypt cost parameters.
type ScryptParams struct {
	// N is the CPU/memory cost. It must be a power of two greater than one.
	N uint64
	R uint64
	P uint64
	// MaxMemory caps 128*N*r*(p+2). Zero selects DefaultScryptMaxMemory.
	MaxMemory uint64
}

func (p ScryptParams) validate() error {
	if p.N < 2 || p.N&(p.N-1) != 0 {
		return cryptoerr.Parameterf("scrypt: N must be a power of two greater than 1, got %d", p.N)
	}
	if p.R == 0 || p.P == 0 {
		return cryptoerr.Parameterf("scrypt: r and p must be positive")
	}
	maxMem := p.MaxMemory
	if maxMem == 0 {
		maxMem = DefaultScryptMaxMemory
	}
	need := new(big.Int).SetUint64(128)
	need.Mul(need, new(big.Int).SetUint64(p.N))
	need.Mul(need, new(big.Int).SetUint64(p.R))
	need.Mul(need, new(big.Int).Add(new(big.Int).SetUint64(p.P), big.NewInt(2)))
	if need.Cmp(new(big.Int).SetUint64(maxMem)) > 0 {
		return cryptoerr.Parameterf("scrypt: parameters need %v bytes, above the %d byte limit", need, maxMem)
	}
	return nil
}

// Scrypt derives keyLen bytes with scrypt.
func Scrypt(password, salt []byte, keyLen int, params ScryptParams) ([]byte, error) {
	if err := params.validate(); err != nil {
		return nil, err
	}
	if keyLen < 0 {
		return nil, cryptoerr.Parameterf("scrypt: negative key length %d", keyLen)
	}
	if keyLen == 0 {
		return []byte{}, nil
	}
	key, err := scrypt.Key(password, salt, int(params.N), int(params.R), int(params.P), keyLen)
	if err != nil {
		return nil, cryptoerr.Parameterf("scrypt: %v", err)
	}
	return key, nil
}

// GenerateSecret returns n random bytes.
func GenerateSecret(n int) ([]byte, error) {
	if n < 0 {
		return nil, cryptoerr.Parameterf("random: negative length %d", n)
	}
	buf := make([]byte, n)
	if err := FillRandom(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// FillRandom overwrites buf with random bytes.
func FillRandom(buf []byte) error {
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("random: %w", err)
	}
	return nil
}

// RandomInt returns a uniform integer in [min, max).
func RandomInt(min, max int64) (int64, error) {
	if min >= max {
		return 0, cryptoerr.Parameterf("random: min %d is not below max %d", min, max)
	}
	span := new(big.Int).Sub(big.NewInt(max), big.NewInt(min))
	if span.Cmp(big.NewInt(maxRandomIntRange)) > 0 {
		return 0, cryptoerr.Parameterf("random: range %v exceeds 2^48", span)
	}
	// rand.Int rejection samples, so there is no modulo bias.
	v, err := rand.Int(rand.Reader, span)
	if err != nil {
		return 0, fmt.Errorf("random: %w", err)
	}
	return min + v.Int64(), nil
}
