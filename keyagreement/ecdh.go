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

// Package keyagreement computes Diffie-Hellman shared secrets over elliptic
// curves, finite fields and the Montgomery curves X25519 and X448.
//
// Public keys are uncompressed SEC1 points (compressed points are accepted
// as peer keys). Shared secrets are the raw x-coordinate, without hashing.
package keyagreement

import (
	"crypto/ecdh"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/internal/ec"
)

type curveImpl interface {
	generate() (pub, priv []byte, err error)
	publicKey(priv []byte) ([]byte, error)
	sharedSecret(priv, peer []byte) ([]byte, error)
}

var curves = map[string]curveImpl{
	ec.Secp256k1: secp256k1Curve{},
	ec.P224:      p224Curve{},
	ec.P256:      nistCurve{c: ecdh.P256(), ell: elliptic.P256()},
	ec.P384:      nistCurve{c: ecdh.P384(), ell: elliptic.P384()},
	ec.P521:      nistCurve{c: ecdh.P521(), ell: elliptic.P521()},
}

func lookupCurve(name string) (curveImpl, error) {
	canonical, ok := ec.CanonicalName(name)
	if !ok {
		return nil, cryptoerr.Parameterf("ecdh: unsupported curve %q", name)
	}
	return curves[canonical], nil
}

// Curves returns the accepted curve names, aliases included.
func Curves() []string { return ec.CurveNames() }

// GenerateKeys returns a fresh key pair on curve.
func GenerateKeys(curve string) (pub, priv []byte, err error) {
	c, err := lookupCurve(curve)
	if err != nil {
		return nil, nil, err
	}
	pub, priv, err = c.generate()
	if err != nil {
		return nil, nil, fmt.Errorf("ecdh: %s: %w", curve, err)
	}
	return pub, priv, nil
}

// ComputePublicKey derives the public key of priv.
func ComputePublicKey(curve string, priv []byte) ([]byte, error) {
	c, err := lookupCurve(curve)
	if err != nil {
		return nil, err
	}
	return c.publicKey(priv)
}

// ComputeSecret returns the x-coordinate of priv times the peer's point.
func ComputeSecret(curve string, priv, peerPublic []byte) ([]byte, error) {
	c, err := lookupCurve(curve)
	if err != nil {
		return nil, err
	}
	return c.sharedSecret(priv, peerPublic)
}

func badPrivate(curve string, err error) error {
	return cryptoerr.Decodef("ecdh: invalid %s private key: %v", curve, err)
}

func badPublic(curve string, err error) error {
	return cryptoerr.Decodef("ecdh: invalid %s public key: %v", curve, err)
}

// nistCurve is backed by crypto/ecdh.
type nistCurve struct {
	c   ecdh.Curve
	ell elliptic.Curve
}

func (n nistCurve) name() string { return n.ell.Params().Name }

func (n nistCurve) scalarSize() int { return (n.ell.Params().BitSize + 7) / 8 }

func (n nistCurve) private(priv []byte) (*ecdh.PrivateKey, error) {
	scalar, err := ec.BigIntBytesToFixedSizeBuffer(priv, n.scalarSize())
	if err != nil {
		return nil, badPrivate(n.name(), err)
	}
	k, err := n.c.NewPrivateKey(scalar)
	if err != nil {
		return nil, badPrivate(n.name(), err)
	}
	return k, nil
}

func (n nistCurve) generate() ([]byte, []byte, error) {
	k, err := n.c.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return k.PublicKey().Bytes(), k.Bytes(), nil
}

func (n nistCurve) publicKey(priv []byte) ([]byte, error) {
	k, err := n.private(priv)
	if err != nil {
		return nil, err
	}
	return k.PublicKey().Bytes(), nil
}

func (n nistCurve) sharedSecret(priv, peer []byte) ([]byte, error) {
	k, err := n.private(priv)
	if err != nil {
		return nil, err
	}
	point, err := ec.UncompressedPoint(n.ell, peer)
	if err != nil {
		return nil, badPublic(n.name(), err)
	}
	pub, err := n.c.NewPublicKey(point)
	if err != nil {
		return nil, badPublic(n.name(), err)
	}
	secret, err := k.ECDH(pub)
	if err != nil {
		return nil, badPublic(n.name(), err)
	}
	return secret, nil
}

// p224Curve uses crypto/elliptic, since crypto/ecdh has no P-224.
type p224Curve struct{}

func (p224Curve) scalar(priv []byte) (*big.Int, error) {
	params := elliptic.P224().Params()
	if len(priv) > (params.BitSize+7)/8 {
		return nil, badPrivate(params.Name, fmt.Errorf("length %d", len(priv)))
	}
	d := new(big.Int).SetBytes(priv)
	if d.Sign() == 0 || d.Cmp(params.N) >= 0 {
		return nil, badPrivate(params.Name, fmt.Errorf("scalar out of range"))
	}
	return d, nil
}

func (p224Curve) generate() ([]byte, []byte, error) {
	k, err := ecdsa.GenerateKey(elliptic.P224(), rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	priv, err := ec.BigIntBytesToFixedSizeBuffer(k.D.Bytes(), 28)
	if err != nil {
		return nil, nil, err
	}
	return elliptic.Marshal(elliptic.P224(), k.X, k.Y), priv, nil
}

func (c p224Curve) publicKey(priv []byte) ([]byte, error) {
	d, err := c.scalar(priv)
	if err != nil {
		return nil, err
	}
	curve := elliptic.P224()
	x, y := curve.ScalarBaseMult(d.Bytes())
	return elliptic.Marshal(curve, x, y), nil
}

func (c p224Curve) sharedSecret(priv, peer []byte) ([]byte, error) {
	d, err := c.scalar(priv)
	if err != nil {
		return nil, err
	}
	curve := elliptic.P224()
	point, err := ec.UncompressedPoint(curve, peer)
	if err != nil {
		return nil, badPublic("P-224", err)
	}
	px, py := elliptic.Unmarshal(curve, point)
	x, _ := curve.ScalarMult(px, py, d.Bytes())
	return ec.BigIntBytesToFixedSizeBuffer(x.Bytes(), 28)
}

// secp256k1Curve is backed by btcec.
type secp256k1Curve struct{}

var secp256k1N = btcec.S256().Params().N

func (secp256k1Curve) private(priv []byte) (*btcec.PrivateKey, error) {
	if len(priv) > btcec.PrivKeyBytesLen {
		return nil, badPrivate(ec.Secp256k1, fmt.Errorf("length %d", len(priv)))
	}
	// PrivKeyFromBytes reduces modulo N, so check the range first.
	d := new(big.Int).SetBytes(priv)
	if d.Sign() == 0 || d.Cmp(secp256k1N) >= 0 {
		return nil, badPrivate(ec.Secp256k1, fmt.Errorf("scalar out of range"))
	}
	k, _ := btcec.PrivKeyFromBytes(priv)
	return k, nil
}

func (secp256k1Curve) generate() ([]byte, []byte, error) {
	k, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, nil, err
	}
	return k.PubKey().SerializeUncompressed(), k.Serialize(), nil
}

func (c secp256k1Curve) publicKey(priv []byte) ([]byte, error) {
	k, err := c.private(priv)
	if err != nil {
		return nil, err
	}
	return k.PubKey().SerializeUncompressed(), nil
}

func (c secp256k1Curve) sharedSecret(priv, peer []byte) ([]byte, error) {
	k, err := c.private(priv)
	if err != nil {
		return nil, err
	}
	pub, err := btcec.ParsePubKey(peer)
	if err != nil {
		return nil, badPublic(ec.Secp256k1, err)
	}
	return btcec.GenerateSharedSecret(k, pub), nil
}
