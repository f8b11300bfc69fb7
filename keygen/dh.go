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
	"crypto/rand"
	"fmt"
	"math/big"
	"slices"
	"sync"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/primes"
)

// DHParameters are the public parameters of a finite field Diffie-Hellman
// group.
type DHParameters struct {
	Prime     *big.Int
	Generator *big.Int
}

// modpGroup is an RFC 3526 group. Its prime is
//
//	2^n - 2^(n-64) - 1 + 2^64 * (floor(2^(n-130) * pi) + k)
//
// and is computed on first use.
type modpGroup struct {
	bits uint
	k    int64

	once  sync.Once
	prime *big.Int
}

var modpGroups = map[string]*modpGroup{
	"modp5":  {bits: 1536, k: 741804},
	"modp14": {bits: 2048, k: 124476},
	"modp15": {bits: 3072, k: 1690314},
	"modp16": {bits: 4096, k: 240904},
	"modp17": {bits: 6144, k: 929484},
	"modp18": {bits: 8192, k: 4743158},
}

func (g *modpGroup) params() DHParameters {
	g.once.Do(func() {
		n := g.bits
		p := new(big.Int).Lsh(big.NewInt(1), n)
		p.Sub(p, new(big.Int).Lsh(big.NewInt(1), n-64))
		p.Sub(p, big.NewInt(1))
		t := piFloor(n - 130)
		t.Add(t, big.NewInt(g.k))
		p.Add(p, t.Lsh(t, 64))
		g.prime = p
	})
	return DHParameters{Prime: new(big.Int).Set(g.prime), Generator: big.NewInt(2)}
}

// piFloor returns floor(pi * 2^m), using Machin's formula
// pi = 16 atan(1/5) - 4 atan(1/239) with guard bits.
func piFloor(m uint) *big.Int {
	const guard = 64
	unity := new(big.Int).Lsh(big.NewInt(1), m+guard)
	pi := new(big.Int).Mul(arctanInv(5, unity), big.NewInt(16))
	pi.Sub(pi, new(big.Int).Mul(arctanInv(239, unity), big.NewInt(4)))
	return pi.Rsh(pi, guard)
}

// arctanInv returns atan(1/x) scaled by unity.
func arctanInv(x int64, unity *big.Int) *big.Int {
	x2 := big.NewInt(x * x)
	power := new(big.Int).Quo(unity, big.NewInt(x))
	sum := new(big.Int).Set(power)
	term := new(big.Int)
	for k := int64(1); power.Sign() != 0; k++ {
		power.Quo(power, x2)
		term.Quo(power, big.NewInt(2*k+1))
		if k%2 == 1 {
			sum.Sub(sum, term)
		} else {
			sum.Add(sum, term)
		}
	}
	return sum
}

// DHGroups returns the supported group names.
func DHGroups() []string {
	names := make([]string, 0, len(modpGroups))
	for name := range modpGroups {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// DHGroupParameters returns the prime and generator of a named group.
func DHGroupParameters(name string) (DHParameters, error) {
	g, ok := modpGroups[name]
	if !ok {
		return DHParameters{}, cryptoerr.Parameterf("keygen: unknown DH group %q", name)
	}
	return g.params(), nil
}

// DHGroup generates a key pair in a named MODP group.
func DHGroup(name string) (*KeyPair, error) {
	params, err := DHGroupParameters(name)
	if err != nil {
		return nil, err
	}
	return dhKeyPair(params)
}

// DH generates a key pair for a caller prime, or for a fresh prime of
// primeLength bits when prime is empty. Keys are big-endian unsigned
// integers.
func DH(prime []byte, primeLength int, generator int64) (*KeyPair, error) {
	if generator < 2 {
		return nil, cryptoerr.Parameterf("keygen: invalid DH generator %d", generator)
	}
	var p *big.Int
	if len(prime) > 0 {
		p = new(big.Int).SetBytes(prime)
	} else {
		var err error
		if p, err = primes.Generate(primeLength); err != nil {
			return nil, fmt.Errorf("keygen: DH: %w", err)
		}
	}
	return dhKeyPair(DHParameters{Prime: p, Generator: big.NewInt(generator)})
}

func dhKeyPair(params DHParameters) (*KeyPair, error) {
	p := params.Prime
	// Need a non-empty [2, p-2].
	if p.Cmp(big.NewInt(5)) < 0 {
		return nil, cryptoerr.Parameterf("keygen: DH prime is too small")
	}
	if params.Generator.Cmp(p) >= 0 {
		return nil, cryptoerr.Parameterf("keygen: DH generator is not below the prime")
	}
	x, err := rand.Int(rand.Reader, new(big.Int).Sub(p, big.NewInt(3)))
	if err != nil {
		return nil, fmt.Errorf("keygen: DH: %w", err)
	}
	x.Add(x, big.NewInt(2))
	y := new(big.Int).Exp(params.Generator, x, p)
	return &KeyPair{Private: x.Bytes(), Public: y.Bytes()}, nil
}
