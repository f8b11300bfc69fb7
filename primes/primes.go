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

// Package primes provides probabilistic primality testing and prime
// generation.
package primes

import (
	"crypto/rand"
	"math/big"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
)

// DefaultRounds is the number of Miller-Rabin rounds used when the caller
// passes rounds <= 0.
const DefaultRounds = 20

// smallPrimes are the odd primes below 1000, used for trial division.
var smallPrimes = sieve(1000)

func sieve(limit int) []uint64 {
	composite := make([]bool, limit)
	var out []uint64
	for i := 3; i < limit; i += 2 {
		if composite[i] {
			continue
		}
		out = append(out, uint64(i))
		for j := i * i; j < limit; j += 2 * i {
			composite[j] = true
		}
	}
	return out
}

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// IsProbablyPrime reports whether n is prime with error probability at most
// 4^-rounds. Values below 2 are never prime.
func IsProbablyPrime(n *big.Int, rounds int) bool {
	if rounds <= 0 {
		rounds = DefaultRounds
	}
	if n.Cmp(two) < 0 {
		return false
	}
	if n.Bit(0) == 0 {
		return n.Cmp(two) == 0
	}
	if n.IsUint64() && n.Uint64() < 1000*1000 {
		v := n.Uint64()
		for _, p := range smallPrimes {
			if p*p > v {
				return true
			}
			if v%p == 0 {
				return v == p
			}
		}
		return true
	}
	var rem big.Int
	for _, p := range smallPrimes {
		if rem.Mod(n, new(big.Int).SetUint64(p)).Sign() == 0 {
			return false
		}
	}
	return millerRabin(n, rounds)
}

// millerRabin runs rounds iterations with bases drawn uniformly from
// [2, n-2]. n must be odd and greater than 4.
func millerRabin(n *big.Int, rounds int) bool {
	nm1 := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nm1)
	s := d.TrailingZeroBits()
	d.Rsh(d, s)

	// bases come from [0, n-3) shifted by 2.
	span := new(big.Int).Sub(n, big.NewInt(3))
	x := new(big.Int)
	for i := 0; i < rounds; i++ {
		a, err := rand.Int(rand.Reader, span)
		if err != nil {
			return false
		}
		a.Add(a, two)
		x.Exp(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nm1) == 0 {
			continue
		}
		witness := true
		for r := uint(1); r < s; r++ {
			x.Exp(x, two, n)
			if x.Cmp(nm1) == 0 {
				witness = false
				break
			}
			if x.Cmp(one) == 0 {
				break
			}
		}
		if witness {
			return false
		}
	}
	return true
}

// IsProbablyPrimeInt is IsProbablyPrime for a machine integer.
func IsProbablyPrimeInt(n int64, rounds int) bool {
	return IsProbablyPrime(big.NewInt(n), rounds)
}

// IsProbablyPrimeBytes is IsProbablyPrime for a big-endian unsigned integer.
func IsProbablyPrimeBytes(b []byte, rounds int) bool {
	return IsProbablyPrime(new(big.Int).SetBytes(b), rounds)
}

// Generate returns a random prime of exactly bits bits.
func Generate(bits int) (*big.Int, error) {
	if bits < 2 {
		return nil, cryptoerr.Parameterf("primes: bit length %d is too small", bits)
	}
	p, err := rand.Prime(rand.Reader, bits)
	if err != nil {
		return nil, cryptoerr.Parameterf("primes: %v", err)
	}
	return p, nil
}
