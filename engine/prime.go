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
	"github.com/nodecrypto/nodecrypto-go/offload"
	"github.com/nodecrypto/nodecrypto-go/primes"
)

func (e *Engine) rounds(checks int) int {
	if checks <= 0 {
		return e.cfg.PrimalityRounds
	}
	return checks
}

// CheckPrime reports whether candidate is probably prime after checks
// Miller-Rabin rounds. checks <= 0 selects the configured round count.
func (e *Engine) CheckPrime(candidate int64, checks int) bool {
	return primes.IsProbablyPrimeInt(candidate, e.rounds(checks))
}

// CheckPrimeAsync is CheckPrime on the worker pool.
func (e *Engine) CheckPrimeAsync(candidate int64, checks int) *offload.Future[bool] {
	return submit(e, "check_prime", func() (bool, error) {
		return e.CheckPrime(candidate, checks), nil
	})
}

// CheckPrimeBytes is CheckPrime for a big-endian unsigned candidate.
func (e *Engine) CheckPrimeBytes(candidate []byte, checks int) bool {
	return primes.IsProbablyPrimeBytes(candidate, e.rounds(checks))
}

// CheckPrimeBytesAsync is CheckPrimeBytes on the worker pool.
func (e *Engine) CheckPrimeBytesAsync(candidate []byte, checks int) *offload.Future[bool] {
	candidate = clone(candidate)
	return submit(e, "check_prime_bytes", func() (bool, error) {
		return e.CheckPrimeBytes(candidate, checks), nil
	})
}

// GeneratePrime returns a random prime of exactly bits bits, big-endian.
func (e *Engine) GeneratePrime(bits int) ([]byte, error) {
	p, err := primes.Generate(bits)
	if err != nil {
		e.failed("generate_prime", err, "bits", bits)
		return nil, err
	}
	return p.Bytes(), nil
}

// GeneratePrimeAsync is GeneratePrime on the worker pool.
func (e *Engine) GeneratePrimeAsync(bits int) *offload.Future[[]byte] {
	return submit(e, "generate_prime", func() ([]byte, error) {
		return e.GeneratePrime(bits)
	})
}
