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

package keygen

import (
	"crypto/dsa"
	"crypto/rand"
	encasn1 "encoding/asn1"
	"fmt"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"golang.org/x/crypto/cryptobyte"
	"golang.org/x/crypto/cryptobyte/asn1"
)

var oidDSA = encasn1.ObjectIdentifier{1, 2, 840, 10040, 4, 1}

type dsaSize struct{ l, n int }

var dsaSizes = map[dsaSize]dsa.ParameterSizes{
	{1024, 160}: dsa.L1024N160,
	{2048, 224}: dsa.L2048N224,
	{2048, 256}: dsa.L2048N256,
	{3072, 256}: dsa.L3072N256,
}

// DSA generates a DSA key pair with an L-bit modulus and N-bit divisor.
// The private key is PKCS#8 DER and the public key SubjectPublicKeyInfo DER.
func DSA(modulusLength, divisorLength int) (*KeyPair, error) {
	sizes, ok := dsaSizes[dsaSize{modulusLength, divisorLength}]
	if !ok {
		return nil, cryptoerr.Parameterf("keygen: invalid DSA sizes L=%d N=%d", modulusLength, divisorLength)
	}
	var key dsa.PrivateKey
	if err := dsa.GenerateParameters(&key.Parameters, rand.Reader, sizes); err != nil {
		return nil, fmt.Errorf("keygen: DSA parameters: %w", err)
	}
	if err := dsa.GenerateKey(&key, rand.Reader); err != nil {
		return nil, fmt.Errorf("keygen: DSA: %w", err)
	}
	priv, err := marshalDSAPrivateKey(&key)
	if err != nil {
		return nil, fmt.Errorf("keygen: DSA: %w", err)
	}
	pub, err := marshalDSAPublicKey(&key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("keygen: DSA: %w", err)
	}
	return &KeyPair{Private: priv, Public: pub}, nil
}

func addDSAAlgorithm(b *cryptobyte.Builder, params *dsa.Parameters) {
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1ObjectIdentifier(oidDSA)
		b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
			b.AddASN1BigInt(params.P)
			b.AddASN1BigInt(params.Q)
			b.AddASN1BigInt(params.G)
		})
	})
}

// marshalDSAPrivateKey encodes key as a PKCS#8 PrivateKeyInfo. crypto/x509
// only parses DSA, it never encodes it.
func marshalDSAPrivateKey(key *dsa.PrivateKey) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		b.AddASN1Int64(0)
		addDSAAlgorithm(b, &key.Parameters)
		b.AddASN1(asn1.OCTET_STRING, func(b *cryptobyte.Builder) {
			b.AddASN1BigInt(key.X)
		})
	})
	return b.Bytes()
}

func marshalDSAPublicKey(key *dsa.PublicKey) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(asn1.SEQUENCE, func(b *cryptobyte.Builder) {
		addDSAAlgorithm(b, &key.Parameters)
		b.AddASN1(asn1.BIT_STRING, func(b *cryptobyte.Builder) {
			b.AddUint8(0) // no unused bits
			b.AddASN1BigInt(key.Y)
		})
	})
	return b.Bytes()
}
