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

package primes_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/primes"
)

func TestIsProbablyPrimeInt(t *testing.T) {
	for _, tc := range []struct {
		n    int64
		want bool
	}{
		{-7, false},
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{9, false},
		{100, false},
		{997, true},
		{7919, true},
		{1000003, true},
		{561, false},        // Carmichael
		{1105, false},       // Carmichael
		{3215031751, false}, // strong pseudoprime to bases 2, 3, 5, 7
		{2147483647, true},  // 2^31-1
	} {
		if got := primes.IsProbablyPrimeInt(tc.n, 0); got != tc.want {
			t.Errorf("IsProbablyPrimeInt(%d) = %v, want %v", tc.n, got, tc.want)
		}
	}
}

func TestIsProbablyPrimeLarge(t *testing.T) {
	// 2^127-1 is a Mersenne prime; 2^128+1 is composite.
	m127 := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 127), big.NewInt(1))
	if !primes.IsProbablyPrime(m127, 10) {
		t.Errorf("IsProbablyPrime(2^127-1) = false, want true")
	}
	f7 := new(big.Int).Add(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	if primes.IsProbablyPrime(f7, 10) {
		t.Errorf("IsProbablyPrime(2^128+1) = true, want false")
	}
	// Product of two primes with no factor below 1000.
	p, _ := new(big.Int).SetString("170141183460469231731687303715884105727", 10)
	q := big.NewInt(1000003)
	if primes.IsProbablyPrime(new(big.Int).Mul(p, q), 10) {
		t.Errorf("IsProbablyPrime(p*q) = true, want false")
	}
}

func TestIsProbablyPrimeBytes(t *testing.T) {
	if !primes.IsProbablyPrimeBytes([]byte{0x1e, 0xef}, 5) { // 7919
		t.Errorf("IsProbablyPrimeBytes(7919) = false, want true")
	}
	if primes.IsProbablyPrimeBytes(nil, 5) {
		t.Errorf("IsProbablyPrimeBytes(empty) = true, want false")
	}
	if primes.IsProbablyPrimeBytes([]byte{0x00, 0x64}, 5) { // 100
		t.Errorf("IsProbablyPrimeBytes(100) = true, want false")
	}
}

func TestGenerate(t *testing.T) {
	for _, bits := range []int{16, 64, 256} {
		p, err := primes.Generate(bits)
		if err != nil {
			t.Fatalf("Generate(%d) err = %v", bits, err)
		}
		if p.BitLen() != bits {
			t.Errorf("Generate(%d).BitLen() = %d", bits, p.BitLen())
		}
		if !primes.IsProbablyPrime(p, 0) {
			t.Errorf("Generate(%d) = %v is not prime", bits, p)
		}
	}
	if _, err := primes.Generate(1); !errors.Is(err, cryptoerr.ErrParameter) {
		t.Errorf("Generate(1) err = %v, want ErrParameter", err)
	}
}
