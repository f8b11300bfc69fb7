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
	"github.com/nodecrypto/nodecrypto-go/keygen"
	"github.com/nodecrypto/nodecrypto-go/offload"
)

type keyPairFuture = offload.Future[*keygen.KeyPair]

func (e *Engine) generated(op string, kp *keygen.KeyPair, err error) (*keygen.KeyPair, error) {
	if err != nil {
		e.failed(op, err)
		return nil, err
	}
	return kp, nil
}

// GenerateRSA returns a PKCS #1 DER RSA key pair.
func (e *Engine) GenerateRSA(modulusLength int, publicExponent uint64) (*keygen.KeyPair, error) {
	kp, err := keygen.RSA(modulusLength, publicExponent)
	return e.generated("generate_rsa", kp, err)
}

// GenerateRSAAsync is GenerateRSA on the worker pool.
func (e *Engine) GenerateRSAAsync(modulusLength int, publicExponent uint64) *keyPairFuture {
	return submit(e, "generate_rsa", func() (*keygen.KeyPair, error) {
		return e.GenerateRSA(modulusLength, publicExponent)
	})
}

// GenerateDSA returns a DSA key pair as PKCS #8 and SubjectPublicKeyInfo DER.
func (e *Engine) GenerateDSA(modulusLength, divisorLength int) (*keygen.KeyPair, error) {
	kp, err := keygen.DSA(modulusLength, divisorLength)
	return e.generated("generate_dsa", kp, err)
}

// GenerateDSAAsync is GenerateDSA on the worker pool.
func (e *Engine) GenerateDSAAsync(modulusLength, divisorLength int) *keyPairFuture {
	return submit(e, "generate_dsa", func() (*keygen.KeyPair, error) {
		return e.GenerateDSA(modulusLength, divisorLength)
	})
}

// GenerateEC returns an ECDSA key pair on P-256 or P-384.
func (e *Engine) GenerateEC(namedCurve string) (*keygen.KeyPair, error) {
	kp, err := keygen.EC(namedCurve)
	return e.generated("generate_ec", kp, err)
}

// GenerateECAsync is GenerateEC on the worker pool.
func (e *Engine) GenerateECAsync(namedCurve string) *keyPairFuture {
	return submit(e, "generate_ec", func() (*keygen.KeyPair, error) {
		return e.GenerateEC(namedCurve)
	})
}

// GenerateEd25519 returns an Ed25519 seed and public key.
func (e *Engine) GenerateEd25519() (*keygen.KeyPair, error) {
	kp, err := keygen.Ed25519()
	return e.generated("generate_ed25519", kp, err)
}

// GenerateEd25519Async is GenerateEd25519 on the worker pool.
func (e *Engine) GenerateEd25519Async() *keyPairFuture {
	return submit(e, "generate_ed25519", e.GenerateEd25519)
}

// GenerateX25519 returns an X25519 scalar and public value.
func (e *Engine) GenerateX25519() (*keygen.KeyPair, error) {
	kp, err := keygen.X25519()
	return e.generated("generate_x25519", kp, err)
}

// GenerateX25519Async is GenerateX25519 on the worker pool.
func (e *Engine) GenerateX25519Async() *keyPairFuture {
	return submit(e, "generate_x25519", e.GenerateX25519)
}

// GenerateEd448 returns an Ed448 seed and public key.
func (e *Engine) GenerateEd448() (*keygen.KeyPair, error) {
	kp, err := keygen.Ed448()
	return e.generated("generate_ed448", kp, err)
}

// GenerateEd448Async is GenerateEd448 on the worker pool.
func (e *Engine) GenerateEd448Async() *keyPairFuture {
	return submit(e, "generate_ed448", e.GenerateEd448)
}

// GenerateX448 returns an X448 scalar and public value.
func (e *Engine) GenerateX448() (*keygen.KeyPair, error) {
	kp, err := keygen.X448()
	return e.generated("generate_x448", kp, err)
}

// GenerateX448Async is GenerateX448 on the worker pool.
func (e *Engine) GenerateX448Async() *keyPairFuture {
	return submit(e, "generate_x448", e.GenerateX448)
}

// GenerateDHGroup returns a key pair in the named MODP group.
func (e *Engine) GenerateDHGroup(name string) (*keygen.KeyPair, error) {
	kp, err := keygen.DHGroup(name)
	return e.generated("generate_dh_group", kp, err)
}

// GenerateDHGroupAsync is GenerateDHGroup on the worker pool.
func (e *Engine) GenerateDHGroupAsync(name string) *keyPairFuture {
	return submit(e, "generate_dh_group", func() (*keygen.KeyPair, error) {
		return e.GenerateDHGroup(name)
	})
}

// GenerateDH returns a key pair over prime, or over a fresh prime of
// primeLength bits if prime is empty.
func (e *Engine) GenerateDH(prime []byte, primeLength int, generator int64) (*keygen.KeyPair, error) {
	kp, err := keygen.DH(prime, primeLength, generator)
	return e.generated("generate_dh", kp, err)
}

// GenerateDHAsync is GenerateDH on the worker pool.
func (e *Engine) GenerateDHAsync(prime []byte, primeLength int, generator int64) *keyPairFuture {
	prime = clone(prime)
	return submit(e, "generate_dh", func() (*keygen.KeyPair, error) {
		return e.GenerateDH(prime, primeLength, generator)
	})
}
