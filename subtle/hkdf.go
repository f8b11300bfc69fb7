// Copyright 2020 Google LLC
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

package subtle

import (
	"fmt"
	"io"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"golang.org/x/crypto/hkdf"
)

// validateHKDFParams checks the output length against RFC 5869 and returns
// the hash to use.
func validateHKDFParams(hashAlg string, length int) (HashFunc, error) {
	h, err := LookupHash(hashAlg)
	if err != nil {
		return HashFunc{}, err
	}
	if length < 0 {
		return HashFunc{}, cryptoerr.Parameterf("negative HKDF output length %d", length)
	}
	if length > 255*h.Size {
		return HashFunc{}, fmt.Errorf("%w: HKDF-Expand output of %d bytes exceeds %d for %s", cryptoerr.ErrDerivation, length, 255*h.Size, hashAlg)
	}
	return h, nil
}

// ComputeHKDF runs HKDF extract-then-expand and returns length bytes.
//
// An empty salt is replaced with HashLen zero bytes, as RFC 5869 requires.
func ComputeHKDF(hashAlg string, ikm, salt, info []byte, length int) ([]byte, error) {
	h, err := validateHKDFParams(hashAlg, length)
	if err != nil {
		return nil, fmt.Errorf("hkdf: %w", err)
	}
	if len(salt) == 0 {
		salt = make([]byte, h.Size)
	}
	okm := make([]byte, length)
	if _, err := io.ReadFull(hkdf.New(h.New, ikm, salt, info), okm); err != nil {
		return nil, fmt.Errorf("hkdf: %w: %v", cryptoerr.ErrDerivation, err)
	}
	return okm, nil
}
