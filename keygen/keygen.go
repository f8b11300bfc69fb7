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

// Package keygen generates asymmetric key pairs in the encodings Node.js
// expects from its key generation bindings.
package keygen

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"fmt"
	"math"
	"math/big"

	"github.com/cloudflare/circl/dh/x448"
	"github.com/cloudflare/circl/sign/ed448"
	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"golang.org/x/crypto/curve25519"
)

// KeyPair holds encoded private and public keys.
type KeyPair struct {
	Private []byte
	Public  []byte
}

const (
	minRSABits   = 512
	defaultRSAE  = 65537
	maxRSAPrimes = 100
)

// RSA generates an RSA key pair. Both halves are PKCS#1 DER.
//
// publicExponent must be odd and at least 3.
func RSA(modulusLength int, publicExponent uint64) (*KeyPair, error) {
	if modulusLength < minRSABits {
		return nil, cryptoerr.Parameterf("keygen: RSA modulus length %d is below %d", modulusLength, minRSABits)
	}
	if publicExponent < 3 || publicExponent%2 == 0 || publicExponent > math.MaxInt32 {
		return nil, cryptoerr.Parameterf("keygen: invalid RSA public exponent %d", publicExponent)
	}
	var (
		key *rsa.PrivateKey
		err error
	)
	if publicExponent == defaultRSAE {
		key, err = rsa.GenerateKey(rand.Reader, modulusLength)
	} else {
		key, err = rsaWithExponent(modulusLength, int(publicExponent))
	}
	if err != nil {
		return nil, fmt.Errorf("keygen: RSA: %w", err)
	}
	return &KeyPair{
		Private: x509.MarshalPKCS1PrivateKey(key),
		Public:  x509.MarshalPKCS1PublicKey(&key.PublicKey),
	}, nil
}

// rsaWithExponent generates a two-prime key for an exponent other than
// 65537, which crypto/rsa does not support.
func rsaWithExponent(bits, e int) (*rsa.PrivateKey, error) {
	bigE := big.NewInt(int64(e))
	one := big.NewInt(1)
	pBits := (bits + 1) / 2
	for i := 0; i < maxRSAPrimes; i++ {
		p, err := rand.Prime(rand.Reader, pBits)
		if err != nil {
			return nil, err
		}
		q, err := rand.Prime(rand.Reader, bits-pBits)
		if err != nil {
			return nil, err
		}
		if p.Cmp(q) == 0 {
			continue
		}
		n := new(big.Int).Mul(p, q)
		if n.BitLen() != bits {
			continue
		}
		pm1 := new(big.Int).Sub(p, one)
		qm1 := new(big.Int).Sub(q, one)
		phi := new(big.Int).Mul(pm1, qm1)
		d := new(big.Int).ModInverse(bigE, phi)
		if d == nil {
			continue
		}
		key := &rsa.PrivateKey{
			PublicKey: rsa.PublicKey{N: n, E: e},
			D:         d,
			Primes:    []*big.Int{p, q},
		}
		key.Precompute()
		if err := key.Validate(); err != nil {
			return nil, err
		}
		return key, nil
	}
	return nil, fmt.Errorf("no suitable primes for exponent %d after %d attempts", e, maxRSAPrimes)
}

var ecCurves = map[string]elliptic.Curve{
	"P-256": elliptic.P256(),
	"P-384": elliptic.P384(),
}

// EC generates an ECDSA key pair on P-256 or P-384. The private key is
// PKCS#8 DER and the public key an uncompressed SEC1 point.
func EC(namedCurve string) (*KeyPair, error) {
	curve, ok := ecCurves[namedCurve]
	if !ok {
		return nil, cryptoerr.Parameterf("keygen: unsupported named curve %q", namedCurve)
	}
	key, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("keygen: EC: %w", err)
	}
	priv, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, fmt.Errorf("keygen: EC: %w", err)
	}
	pub, err := key.PublicKey.ECDH()
	if err != nil {
		return nil, fmt.Errorf("keygen: EC: %w", err)
	}
	return &KeyPair{Private: priv, Public: pub.Bytes()}, nil
}

// Ed25519 returns a 32-byte seed and the matching 32-byte public key.
func Ed25519() (*KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("keygen: Ed25519: %w", err)
	}
	return &KeyPair{Private: priv.Seed(), Public: pub}, nil
}

// X25519 returns a 32-byte scalar and the matching public value.
func X25519() (*KeyPair, error) {
	priv := make([]byte, curve25519.ScalarSize)
	if _, err := rand.Read(priv); err != nil {
		return nil, fmt.Errorf("keygen: X25519: %w", err)
	}
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("keygen: X25519: %w", err)
	}
	return &KeyPair{Private: priv, Public: pub}, nil
}

// Ed448 returns a 57-byte seed and the matching 57-byte public key.
func Ed448() (*KeyPair, error) {
	pub, priv, err := ed448.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("keygen: Ed448: %w", err)
	}
	return &KeyPair{Private: priv.Seed(), Public: pub}, nil
}

// X448 returns a 56-byte scalar and the matching public value.
func X448() (*KeyPair, error) {
	var priv, pub x448.Key
	if _, err := rand.Read(priv[:]); err != nil {
		return nil, fmt.Errorf("keygen: X448: %w", err)
	}
	x448.KeyGen(&pub, &priv)
	return &KeyPair{Private: priv[:], Public: pub[:]}, nil
}
