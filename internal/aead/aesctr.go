// Copyright 2024 Google LLC
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

package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"
)

// NewCTR returns an AES-CTR key stream whose first counter block is iv.
// An IV shorter than the block size is zero padded on the right.
func NewCTR(key, iv []byte) (cipher.Stream, error) {
	if err := ValidateAESKeySize(len(key)); err != nil {
		return nil, fmt.Errorf("aes_ctr: %v", err)
	}
	if len(iv) > aes.BlockSize {
		return nil, fmt.Errorf("aes_ctr: invalid IV size: %d", len(iv))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("aes_ctr: failed to create block cipher, error: %v", err)
	}
	// NewCTR panics unless the IV is exactly one block.
	if len(iv) < aes.BlockSize {
		padded := make([]byte, aes.BlockSize)
		copy(padded, iv)
		iv = padded
	}
	return cipher.NewCTR(block, iv), nil
}

// NewGCMKeyStream returns the CTR key stream AES-GCM applies to the
// plaintext for a 12-byte IV: the counter block starts at IV || 2, since
// IV || 1 is reserved for masking the tag.
func NewGCMKeyStream(key, iv []byte) (cipher.Stream, error) {
	if len(iv) != AESGCMIVSize {
		return nil, fmt.Errorf("aes_gcm: invalid IV size: %d", len(iv))
	}
	counter := make([]byte, aes.BlockSize)
	copy(counter, iv)
	counter[aes.BlockSize-1] = 2
	return NewCTR(key, counter)
}
