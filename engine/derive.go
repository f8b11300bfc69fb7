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
	"github.com/nodecrypto/nodecrypto-go/kdf"
	"github.com/nodecrypto/nodecrypto-go/offload"
)

func (e *Engine) derived(op string, key []byte, err error) ([]byte, error) {
	if err != nil {
		e.failed(op, err)
		return nil, err
	}
	return key, nil
}

// PBKDF2 derives keyLen bytes with PBKDF2-HMAC over digest.
func (e *Engine) PBKDF2(password, salt []byte, iterations int, digest string, keyLen int) ([]byte, error) {
	key, err := kdf.PBKDF2(password, salt, iterations, digest, keyLen)
	return e.derived("pbkdf2", key, err)
}

// PBKDF2Async is PBKDF2 on the worker pool.
func (e *Engine) PBKDF2Async(password, salt []byte, iterations int, digest string, keyLen int) *offload.Future[[]byte] {
	password, salt = clone(password), clone(salt)
	return submit(e, "pbkdf2", func() ([]byte, error) {
		return e.PBKDF2(password, salt, iterations, digest, keyLen)
	})
}

// HKDF derives length bytes with RFC 5869 HKDF over digest.
func (e *Engine) HKDF(digest string, ikm, salt, info []byte, length int) ([]byte, error) {
	key, err := kdf.HKDF(digest, ikm, salt, info, length)
	return e.derived("hkdf", key, err)
}

// HKDFAsync is HKDF on the worker pool.
func (e *Engine) HKDFAsync(digest string, ikm, salt, info []byte, length int) *offload.Future[[]byte] {
	ikm, salt, info = clone(ikm), clone(salt), clone(info)
	return submit(e, "hkdf", func() ([]byte, error) {
		return e.HKDF(digest, ikm, salt, info, length)
	})
}

// Scrypt derives keyLen bytes with scrypt. A maxMemory of zero selects the
// configured limit.
func (e *Engine) Scrypt(password, salt []byte, keyLen int, n, r, p, maxMemory uint64) ([]byte, error) {
	if maxMemory == 0 {
		maxMemory = e.cfg.ScryptMaxMemory
	}
	key, err := kdf.Scrypt(password, salt, keyLen, kdf.ScryptParams{N: n, R: r, P: p, MaxMemory: maxMemory})
	return e.derived("scrypt", key, err)
}

// ScryptAsync is Scrypt on the worker pool.
func (e *Engine) ScryptAsync(password, salt []byte, keyLen int, n, r, p, maxMemory uint64) *offload.Future[[]byte] {
	password, salt = clone(password), clone(salt)
	return submit(e, "scrypt", func() ([]byte, error) {
		return e.Scrypt(password, salt, keyLen, n, r, p, maxMemory)
	})
}

// GenerateSecret returns n random bytes.
func (e *Engine) GenerateSecret(n int) ([]byte, error) {
	b, err := kdf.GenerateSecret(n)
	return e.derived("generate_secret", b, err)
}

// GenerateSecretAsync is GenerateSecret on the worker pool.
func (e *Engine) GenerateSecretAsync(n int) *offload.Future[[]byte] {
	return submit(e, "generate_secret", func() ([]byte, error) {
		return e.GenerateSecret(n)
	})
}

// FillRandom overwrites buf with random bytes.
func (e *Engine) FillRandom(buf []byte) error {
	if err := kdf.FillRandom(buf); err != nil {
		e.failed("fill_random", err)
		return err
	}
	return nil
}

// RandomInt returns a uniform integer in [min, max).
func (e *Engine) RandomInt(min, max int64) (int64, error) {
	v, err := kdf.RandomInt(min, max)
	if err != nil {
		e.failed("random_int", err)
		return 0, err
	}
	return v, nil
}

// RandomIntAsync is RandomInt on the worker pool.
func (e *Engine) RandomIntAsync(min, max int64) *offload.Future[int64] {
	return submit(e, "random_int", func() (int64, error) {
		return e.RandomInt(min, max)
	})
}
