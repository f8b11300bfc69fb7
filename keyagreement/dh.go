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

package keyagreement

import (
	"fmt"
	"math/big"

	"github.com/cloudflare/circl/dh/x448"
	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/internal/ec"
	"golang.org/x/crypto/curve25519"
)

// DHComputeSecret returns peerPublic^priv mod prime as a big-endian integer
// left padded to the length of prime, as Node's DiffieHellman.computeSecret
// does. A bare modular exponentiation would return the minimal encoding
// instead; callers that need it can strip the leading zeros.
//
// A peer value outside [2, prime-2] is rejected with
// [cryptoerr.ErrParameter], since 0, 1 and prime-1 force a known secret.
func DHComputeSecret(prime, priv, peerPublic []byte) ([]byte, error) {
	p := new(big.Int).SetBytes(prime)
	if p.Cmp(big.NewInt(5)) < 0 {
		return nil, cryptoerr.Parameterf("dh: prime is too small")
	}
	x := new(big.Int).SetBytes(priv)
	if x.Sign() == 0 {
		return nil, cryptoerr.Parameterf("dh: zero private key")
	}
	y := new(big.Int).SetBytes(peerPublic)
	pm2 := new(big.Int).Sub(p, big.NewInt(2))
	if y.Cmp(big.NewInt(2)) < 0 || y.Cmp(pm2) > 0 {
		return nil, cryptoerr.Parameterf("dh: peer public key out of range")
	}
	s := new(big.Int).Exp(y, x, p)
	return ec.BigIntBytesToFixedSizeBuffer(s.Bytes(), (p.BitLen()+7)/8)
}

// X25519 returns the RFC 7748 shared secret of priv and peerPublic.
func X25519(priv, peerPublic []byte) ([]byte, error) {
	if len(priv) != curve25519.ScalarSize || len(peerPublic) != curve25519.PointSize {
		return nil, cryptoerr.Decodef("x25519: keys must be %d bytes", curve25519.ScalarSize)
	}
	secret, err := curve25519.X25519(priv, peerPublic)
	if err != nil {
		// The only failure is an all-zero result from a low order point.
		return nil, cryptoerr.Parameterf("x25519: %v", err)
	}
	return secret, nil
}

// X448 returns the RFC 7748 shared secret of priv and peerPublic.
func X448(priv, peerPublic []byte) ([]byte, error) {
	if len(priv) != x448.Size || len(peerPublic) != x448.Size {
		return nil, cryptoerr.Decodef("x448: keys must be %d bytes", x448.Size)
	}
	var secret, sk, pk x448.Key
	copy(sk[:], priv)
	copy(pk[:], peerPublic)
	if !x448.Shared(&secret, &sk, &pk) {
		return nil, cryptoerr.Parameterf("x448: low order public key")
	}
	return secret[:], nil
}

// X448PublicKey returns the public value for priv.
func X448PublicKey(priv []byte) ([]byte, error) {
	if len(priv) != x448.Size {
		return nil, cryptoerr.Decodef("x448: private key must be %d bytes", x448.Size)
	}
	var sk, pk x448.Key
	copy(sk[:], priv)
	x448.KeyGen(&pk, &sk)
	return pk[:], nil
}

// X25519PublicKey returns the public value for priv.
func X25519PublicKey(priv []byte) ([]byte, error) {
	if len(priv) != curve25519.ScalarSize {
		return nil, cryptoerr.Decodef("x25519: private key must be %d bytes", curve25519.ScalarSize)
	}
	pub, err := curve25519.X25519(priv, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("x25519: %w", err)
	}
	return pub, nil
}
