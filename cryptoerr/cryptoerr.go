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

// Package cryptoerr defines the error classes shared by every package of
// the engine.
//
// Errors returned by the engine wrap exactly one of the sentinels below and
// must be tested with [errors.Is]:
//
//	if errors.Is(err, cryptoerr.ErrAuthentication) {
//		// discard any plaintext already produced
//	}
package cryptoerr

import (
	"errors"
	"fmt"
)

var (
	// ErrParameter is returned for an unknown algorithm, curve, digest or
	// padding name, or an invalid combination of numeric parameters.
	ErrParameter = errors.New("invalid parameter")

	// ErrResource is returned when a handle does not resolve to live state,
	// or resolves to state of a different kind.
	ErrResource = errors.New("bad resource")

	// ErrInUse is returned when state cannot be taken because it is still
	// borrowed. It wraps ErrResource.
	ErrInUse = fmt.Errorf("%w: context is already in use", ErrResource)

	// ErrDecode is returned for malformed key encodings.
	ErrDecode = errors.New("decode failure")

	// ErrAuthentication is returned when an AEAD tag or a block cipher
	// padding does not verify.
	ErrAuthentication = errors.New("unable to authenticate data")

	// ErrDerivation is returned when a key derivation cannot produce the
	// requested output.
	ErrDerivation = errors.New("key derivation failed")
)

// Parameterf returns an ErrParameter with a formatted explanation.
func Parameterf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParameter, fmt.Sprintf(format, args...))
}

// Decodef returns an ErrDecode with a formatted explanation.
func Decodef(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrDecode, fmt.Sprintf(format, args...))
}
