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

package engine_test

import (
	"bytes"
	"context"
	"encoding/hex"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/engine"
	"github.com/nodecrypto/nodecrypto-go/handle"
	"github.com/nodecrypto/nodecrypto-go/keygen"
	"github.com/nodecrypto/nodecrypto-go/offload"
	"github.com/stretchr/testify/require"
)

func newEngine(t *testing.T, cfg engine.Config) *engine.Engine {
	t.Helper()
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e, err := engine.New(cfg)
	require.NoError(t, err)
	t.Cleanup(e.Close)
	return e
}

func TestNewRejectsNegativeWorkers(t *testing.T) {
	_, err := engine.New(engine.Config{Workers: -1})
	require.ErrorIs(t, err, cryptoerr.ErrParameter)
}

func TestHashLifecycle(t *testing.T) {
	e := newEngine(t, engine.Config{})
	h := e.CreateHash("sha256")
	require.NotZero(t, h)
	require.True(t, e.HashUpdateString(h, "a"))
	require.True(t, e.HashUpdate(h, []byte("b")))

	c, err := e.HashClone(h)
	require.NoError(t, err)
	require.NotEqual(t, h, c)
	require.True(t, e.HashUpdate(c, []byte("c")))
	require.True(t, e.HashUpdate(h, []byte("c")))

	got, err := e.HashDigestHex(h)
	require.NoError(t, err)
	require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", got)
	sum, err := e.HashDigest(c)
	require.NoError(t, err)
	require.Equal(t, got, hex.EncodeToString(sum))

	_, err = e.HashDigest(h)
	require.ErrorIs(t, err, cryptoerr.ErrResource)
	require.False(t, e.HashUpdate(h, []byte("d")))
	require.Zero(t, e.Live())
}

func TestCreateHashUnknownReturnsZero(t *testing.T) {
	e := newEngine(t, engine.Config{})
	require.Zero(t, e.CreateHash("SHA256"))
	require.False(t, e.HashUpdate(0, []byte("x")))
	_, err := e.HashClone(0)
	require.ErrorIs(t, err, cryptoerr.ErrResource)
	require.Contains(t, e.GetHashes(), "sha512")
}

func TestHandleTypeMismatch(t *testing.T) {
	e := newEngine(t, engine.Config{})
	h := e.CreateHash("md5")
	_, ok := e.CipherivEncrypt(h, []byte("x"))
	require.False(t, ok)
	_, _, err := e.CipherivFinal(h, nil)
	require.ErrorIs(t, err, cryptoerr.ErrResource)
	// The hash survives the failed accesses.
	_, err = e.HashDigest(h)
	require.NoError(t, err)
}

func TestCipherivGCMRoundTrip(t *testing.T) {
	e := newEngine(t, engine.Config{})
	key := bytes.Repeat([]byte{0x42}, 32)
	iv := bytes.Repeat([]byte{0x24}, 12)
	aad := []byte("header")
	msg := []byte("the quick brown fox jumps over the lazy dog")

	enc := e.CreateCipheriv("aes-256-gcm", key, iv)
	require.NotZero(t, enc)
	require.True(t, e.CipherivSetAAD(enc, aad))
	head, ok := e.CipherivEncrypt(enc, msg[:10])
	require.True(t, ok)
	require.Len(t, head, 10)
	require.False(t, e.CipherivSetAAD(enc, aad), "SetAAD after Update")
	tail, tag, err := e.CipherivFinal(enc, msg[10:])
	require.NoError(t, err)
	require.Len(t, tag, 16)
	ct := append(head, tail...)

	dec := e.CreateDecipheriv("aes-256-gcm", key, iv)
	require.True(t, e.DecipherivSetAAD(dec, aad))
	pt, err := e.DecipherivFinal(dec, ct, tag)
	require.NoError(t, err)
	require.Equal(t, msg, pt)

	bad := bytes.Clone(tag)
	bad[0] ^= 1
	dec = e.CreateDecipheriv("aes-256-gcm", key, iv)
	require.True(t, e.DecipherivSetAAD(dec, aad))
	_, ok = e.DecipherivDecrypt(dec, ct)
	require.True(t, ok)
	_, err = e.DecipherivFinal(dec, nil, bad)
	require.ErrorIs(t, err, cryptoerr.ErrAuthentication)
	require.Zero(t, e.Live())
}

func TestCipherivCBCPadding(t *testing.T) {
	e := newEngine(t, engine.Config{})
	key := bytes.Repeat([]byte{1}, 16)
	iv := bytes.Repeat([]byte{2}, 16)
	msg := []byte("seventeen bytes!!")

	enc := e.CreateCipheriv("aes-128-cbc", key, iv)
	ct, tag, err := e.CipherivFinal(enc, msg)
	require.NoError(t, err)
	require.Nil(t, tag)
	require.Len(t, ct, 32)

	dec := e.CreateDecipheriv("aes-128-cbc", key, iv)
	pt, err := e.DecipherivFinal(dec, ct, nil)
	require.NoError(t, err)
	require.Equal(t, msg, pt)

	// Without padding the ciphertext must be block aligned.
	enc = e.CreateCipheriv("aes-128-cbc", key, iv)
	require.True(t, e.CipherivSetAutoPadding(enc, false))
	_, _, err = e.CipherivFinal(enc, msg)
	require.ErrorIs(t, err, cryptoerr.ErrParameter)

	// Truncated ciphertext cannot be unpadded.
	dec = e.CreateDecipheriv("aes-128-cbc", key, iv)
	_, err = e.DecipherivFinal(dec, ct[:20], nil)
	require.Error(t, err)
}

func TestCreateCipherivInvalidReturnsZero(t *testing.T) {
	e := newEngine(t, engine.Config{})
	require.Zero(t, e.CreateCipheriv("aes-128-cbc", make([]byte, 15), make([]byte, 16)))
	require.Zero(t, e.CreateCipheriv("aes-256-gcm", make([]byte, 32), make([]byte, 16)))
	require.Zero(t, e.CreateDecipheriv("rc4", make([]byte, 16), nil))
	require.False(t, e.CipherivSetAAD(0, nil))
	require.False(t, e.DecipherivSetAutoPadding(0, false))
	require.Contains(t, e.GetCiphers(), "chacha20-poly1305")
}

func TestReleaseAbandonsStream(t *testing.T) {
	e := newEngine(t, engine.Config{})
	h := e.CreateCipheriv("aes-128-ctr", make([]byte, 16), make([]byte, 16))
	require.Equal(t, 1, e.Live())
	require.NoError(t, e.Release(h))
	require.Zero(t, e.Live())
	require.ErrorIs(t, e.Release(h), cryptoerr.ErrResource)
}

func TestConcurrentHashes(t *testing.T) {
	e := newEngine(t, engine.Config{})
	const n = 32
	var wg sync.WaitGroup
	results := make([]string, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			h := e.CreateHash("sha256")
			if !e.HashUpdateString(h, "abc") {
				return
			}
			results[i], _ = e.HashDigestHex(h)
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		require.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", r)
	}
	require.Zero(t, e.Live())
}

func TestPBKDF2AsyncMatchesSync(t *testing.T) {
	e := newEngine(t, engine.Config{Workers: 2})
	password := []byte("password")
	salt := []byte("salt")
	f := e.PBKDF2Async(password, salt, 1, "sha1", 20)
	// The task works on a copy of its inputs.
	password[0] = 'X'
	got, err := f.Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, "0c60c80f961f0e71f3a9b524af6012062fe037a6", hex.EncodeToString(got))

	want, err := e.PBKDF2([]byte("password"), salt, 1, "sha1", 20)
	require.NoError(t, err)
	require.Equal(t, want, got)

	_, err = e.PBKDF2Async(salt, salt, 1, "whirlpool", 20).Wait(context.Background())
	require.ErrorIs(t, err, cryptoerr.ErrParameter)
}

func TestScryptUsesConfiguredMemoryLimit(t *testing.T) {
	e := newEngine(t, engine.Config{ScryptMaxMemory: 1 << 10})
	_, err := e.Scrypt([]byte("p"), []byte("s"), 16, 1024, 8, 1, 0)
	require.ErrorIs(t, err, cryptoerr.ErrParameter)

	got, err := e.ScryptAsync([]byte("p"), []byte("s"), 16, 1024, 8, 1, 32<<20).Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 16)
}

func TestHKDFAsync(t *testing.T) {
	e := newEngine(t, engine.Config{})
	ikm, _ := hex.DecodeString("0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b0b")
	salt, _ := hex.DecodeString("000102030405060708090a0b0c")
	info, _ := hex.DecodeString("f0f1f2f3f4f5f6f7f8f9")
	got, err := e.HKDFAsync("sha256", ikm, salt, info, 42).Wait(context.Background())
	require.NoError(t, err)
	require.Equal(t, "3cb25f25faacd57a90434f64d0362f2a2d2d0a90cf1a5a4c5db02d56ecc4c5bf34007208d5b887185865", hex.EncodeToString(got))

	_, err = e.HKDF("sha256", ikm, salt, info, 255*32+1)
	require.ErrorIs(t, err, cryptoerr.ErrDerivation)
}

func TestRandom(t *testing.T) {
	e := newEngine(t, engine.Config{})
	b, err := e.GenerateSecretAsync(24).Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, b, 24)

	buf := make([]byte, 32)
	require.NoError(t, e.FillRandom(buf))
	require.NotEqual(t, make([]byte, 32), buf)

	for i := 0; i < 100; i++ {
		v, err := e.RandomInt(-3, 4)
		require.NoError(t, err)
		require.GreaterOrEqual(t, v, int64(-3))
		require.Less(t, v, int64(4))
	}
	_, err = e.RandomIntAsync(5, 5).Wait(context.Background())
	require.ErrorIs(t, err, cryptoerr.ErrParameter)
}

func TestPrimes(t *testing.T) {
	e := newEngine(t, engine.Config{PrimalityRounds: 8})
	require.True(t, e.CheckPrime(7919, 0))
	require.False(t, e.CheckPrime(7917, 0))
	ok, err := e.CheckPrimeAsync(2147483647, 0).Wait(context.Background())
	require.NoError(t, err)
	require.True(t, ok)
	require.False(t, e.CheckPrimeBytes([]byte{0x01, 0x00}, 4))

	p, err := e.GeneratePrimeAsync(64).Wait(context.Background())
	require.NoError(t, err)
	require.Len(t, p, 8)
	require.NotZero(t, p[0]&0x80)
	require.True(t, e.CheckPrimeBytes(p, 0))

	_, err = e.GeneratePrime(1)
	require.ErrorIs(t, err, cryptoerr.ErrParameter)
}

func TestKeyGenerationAsync(t *testing.T) {
	e := newEngine(t, engine.Config{})
	for name, f := range map[string]*offload.Future[*keygen.KeyPair]{
		"ed25519": e.GenerateEd25519Async(),
		"x25519":  e.GenerateX25519Async(),
		"ed448":   e.GenerateEd448Async(),
		"x448":    e.GenerateX448Async(),
		"ec":      e.GenerateECAsync("P-256"),
		"modp5":   e.GenerateDHGroupAsync("modp5"),
	} {
		kp, err := f.Wait(context.Background())
		require.NoError(t, err, name)
		require.NotEmpty(t, kp.Private, name)
		require.NotEmpty(t, kp.Public, name)
	}
	_, err := e.GenerateECAsync("P-521").Wait(context.Background())
	require.ErrorIs(t, err, cryptoerr.ErrParameter)
	_, err = e.GenerateRSA(256, 65537)
	require.ErrorIs(t, err, cryptoerr.ErrParameter)
}

func TestKeyAgreement(t *testing.T) {
	e := newEngine(t, engine.Config{})
	pubA, privA, err := e.ECDHGenerateKeys("secp256k1")
	require.NoError(t, err)
	pubB, privB, err := e.ECDHGenerateKeys("secp256k1")
	require.NoError(t, err)
	sA, err := e.ECDHComputeSecret("secp256k1", privA, pubB)
	require.NoError(t, err)
	sB, err := e.ECDHComputeSecret("secp256k1", privB, pubA)
	require.NoError(t, err)
	require.Equal(t, sA, sB)
	pub, err := e.ECDHComputePublicKey("secp256k1", privA)
	require.NoError(t, err)
	require.Equal(t, pubA, pub)
	_, _, err = e.ECDHGenerateKeys("curve9")
	require.ErrorIs(t, err, cryptoerr.ErrParameter)

	a, err := e.GenerateDHGroup("modp14")
	require.NoError(t, err)
	b, err := e.GenerateDHGroup("modp14")
	require.NoError(t, err)
	params, err := keygen.DHGroupParameters("modp14")
	require.NoError(t, err)
	prime := params.Prime.Bytes()
	dA, err := e.DHComputeSecretAsync(prime, a.Private, b.Public).Wait(context.Background())
	require.NoError(t, err)
	dB, err := e.DHComputeSecret(prime, b.Private, a.Public)
	require.NoError(t, err)
	require.Equal(t, dA, dB)

	x1, err := e.GenerateX25519()
	require.NoError(t, err)
	x2, err := e.GenerateX25519()
	require.NoError(t, err)
	s1, err := e.X25519ComputeSecret(x1.Private, x2.Public)
	require.NoError(t, err)
	s2, err := e.X25519ComputeSecret(x2.Private, x1.Public)
	require.NoError(t, err)
	require.Equal(t, s1, s2)
}

func TestRSAErrors(t *testing.T) {
	e := newEngine(t, engine.Config{})
	_, err := e.PublicEncrypt([]byte("not a key"), []byte("m"), 1)
	require.ErrorIs(t, err, cryptoerr.ErrDecode)
	_, err = e.Sign(make([]byte, 32), "sha256", nil, "dsa", "pem")
	require.ErrorIs(t, err, cryptoerr.ErrParameter)
	ok, err := e.Verify(make([]byte, 32), "sha256", nil, "rsa", "der", nil)
	require.ErrorIs(t, err, cryptoerr.ErrParameter)
	require.False(t, ok)
}

func TestAsyncAfterCloseFails(t *testing.T) {
	e, err := engine.New(engine.Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)
	h := e.CreateHash("sha1")
	e.Close()
	_, err = e.GenerateSecretAsync(8).Wait(context.Background())
	require.ErrorIs(t, err, offload.ErrClosed)
	// Handles outlive the pool.
	require.True(t, e.HashUpdateString(h, "x"))
	_, err = e.HashDigest(h)
	require.NoError(t, err)
}

func TestZeroHandleIsNeverLive(t *testing.T) {
	e := newEngine(t, engine.Config{})
	var zero handle.Handle
	_, err := e.HashDigestHex(zero)
	require.ErrorIs(t, err, cryptoerr.ErrResource)
	_, err = e.DecipherivFinal(zero, nil, nil)
	require.ErrorIs(t, err, cryptoerr.ErrResource)
}
