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

package cipheriv

import (
	"crypto/aes"
	"crypto/des"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/internal/aead"
	"github.com/nodecrypto/nodecrypto-go/internal/registry"
	"golang.org/x/sys/cpu"
)

// Algorithm describes a supported cipher.
type Algorithm struct {
	Name    string
	KeySize int
	// IVSize is the required IV length. Zero means no IV is taken.
	IVSize int
	// BlockSize is the cipher block size for block modes and 1 otherwise.
	BlockSize int
	AEAD      bool

	newMode func(key, iv []byte, decrypt bool) (mode, error)
}

func (a *Algorithm) validate(key, iv []byte) error {
	if len(key) != a.KeySize {
		return cryptoerr.Parameterf("cipheriv: invalid key length %d for %s, want %d", len(key), a.Name, a.KeySize)
	}
	if len(iv) != a.IVSize {
		return cryptoerr.Parameterf("cipheriv: invalid IV length %d for %s, want %d", len(iv), a.Name, a.IVSize)
	}
	return nil
}

var algorithms = registry.New[*Algorithm]()

func lookup(name string) (*Algorithm, error) {
	alg, ok := algorithms.Lookup(name)
	if !ok {
		return nil, cryptoerr.Parameterf("cipheriv: unknown cipher %q", name)
	}
	return alg, nil
}

// Lookup returns the description of the named cipher.
func Lookup(name string) (*Algorithm, error) { return lookup(name) }

// Algorithms returns the supported cipher names in sorted order.
func Algorithms() []string { return algorithms.Names() }

// HardwareAES reports whether the CPU has AES instructions that crypto/aes
// will use.
func HardwareAES() bool {
	return cpu.X86.HasAES || cpu.ARM64.HasAES
}

func init() {
	for _, size := range []struct {
		bits  string
		bytes int
	}{{"128", 16}, {"192", 24}, {"256", 32}} {
		algorithms.MustRegister("aes-"+size.bits+"-ecb", &Algorithm{
			Name: "aes-" + size.bits + "-ecb", KeySize: size.bytes, BlockSize: aes.BlockSize,
			newMode: func(key, _ []byte, decrypt bool) (mode, error) {
				return newECBMode(aes.NewCipher, key, decrypt)
			},
		})
		algorithms.MustRegister("aes-"+size.bits+"-cbc", &Algorithm{
			Name: "aes-" + size.bits + "-cbc", KeySize: size.bytes, IVSize: aes.BlockSize, BlockSize: aes.BlockSize,
			newMode: func(key, iv []byte, decrypt bool) (mode, error) {
				return newCBCMode(aes.NewCipher, key, iv, decrypt)
			},
		})
		algorithms.MustRegister("aes-"+size.bits+"-ctr", &Algorithm{
			Name: "aes-" + size.bits + "-ctr", KeySize: size.bytes, IVSize: aes.BlockSize, BlockSize: 1,
			newMode: func(key, iv []byte, _ bool) (mode, error) {
				s, err := aead.NewCTR(key, iv)
				if err != nil {
					return nil, err
				}
				return &streamMode{stream: s}, nil
			},
		})
		algorithms.MustRegister("aes-"+size.bits+"-gcm", &Algorithm{
			Name: "aes-" + size.bits + "-gcm", KeySize: size.bytes, IVSize: aead.AESGCMIVSize, BlockSize: 1, AEAD: true,
			newMode: newGCMMode,
		})
	}
	algorithms.MustRegister("chacha20-poly1305", &Algorithm{
		Name: "chacha20-poly1305", KeySize: aead.ChaCha20Poly1305KeySize, IVSize: aead.ChaCha20Poly1305NonceSize,
		BlockSize: 1, AEAD: true,
		newMode: newChaChaMode,
	})
	algorithms.MustRegister("des-ede3-cbc", &Algorithm{
		Name: "des-ede3-cbc", KeySize: 24, IVSize: des.BlockSize, BlockSize: des.BlockSize,
		newMode: func(key, iv []byte, decrypt bool) (mode, error) {
			return newCBCMode(des.NewTripleDESCipher, key, iv, decrypt)
		},
	})
}
