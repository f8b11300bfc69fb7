// Copyright 2022 Google LLC
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

// Package aead contains the AES and ChaCha20 building blocks used by the
// streaming cipher contexts.
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"errors"
	"fmt"
)

const (
	// AESGCMIVSize is the only IV size accepted for AES-GCM.
	AESGCMIVSize = 12
	// AESGCMTagSize is the tag size produced by AES-GCM encryption.
	AESGCMTagSize = 16
	// AESGCMMinTagSize is the shortest tag accepted when decrypting.
	AESGCMMinTagSize = 12

	// aesGCMMaxPlaintextSize is the maximum plaintext size defined by RFC 5116.
	aesGCMMaxPlaintextSize = (1 << 36) - 31
)

// ValidateAESKeySize checks that sizeInBytes selects AES-128, AES-192 or
// AES-256.
func ValidateAESKeySize(sizeInBytes int) error {
	switch sizeInBytes {
	case 16, 24, 32:
		return nil
	default:
		return fmt.Errorf("invalid AES key size; want 16, 24 or 32, got %d", sizeInBytes)
	}
}

// NewAESGCMCipher creates an AES-GCM cipher with a 12-byte nonce and the
// given tag size.
func NewAESGCMCipher(key []byte, tagSize int) (cipher.AEAD, error) {
	if err := ValidateAESKeySize(len(key)); err != nil {
		return nil, err
	}
	if tagSize < AESGCMMinTagSize || tagSize > AESGCMTagSize {
		return nil, fmt.Errorf("invalid AES-GCM tag size %d", tagSize)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.New("failed to initialize cipher")
	}
	gcm, err := cipher.NewGCMWithTagSize(block, tagSize)
	if err != nil {
		return nil, errors.New("failed to create cipher.AEAD")
	}
	return gcm, nil
}

// CheckPlaintextSize checks if the given plaintext size is valid for AES-GCM.
func CheckPlaintextSize(size uint64) error {
	if size > aesGCMMaxPlaintextSize {
		return fmt.Errorf("plaintext too long: got %d", size)
	}
	return nil
}
