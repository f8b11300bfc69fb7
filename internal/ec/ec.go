// Copyright 2025 Google LLC
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

// Package ec provides utility functions for Elliptic Curves.
package ec

import (
	"crypto/elliptic"
	"errors"
	"fmt"
	"slices"
)

// Canonical curve names.
const (
	Secp256k1 = "secp256k1"
	P224      = "P-224"
	P256      = "P-256"
	P384      = "P-384"
	P521      = "P-521"
)

var curveNames = map[string]string{
	"secp256k1":  Secp256k1,
	"secp224r1":  P224,
	"P-224":      P224,
	"prime256v1": P256,
	"secp256r1":  P256,
	"P-256":      P256,
	"secp384r1":  P384,
	"P-384":      P384,
	"secp521r1":  P521,
	"P-521":      P521,
}

// CanonicalName maps an OpenSSL or NIST curve name to its canonical form.
func CanonicalName(name string) (string, bool) {
	c, ok := curveNames[name]
	return c, ok
}

// CurveNames returns every accepted curve name, including aliases, in
// sorted order.
func CurveNames() []string {
	names := make([]string, 0, len(curveNames))
	for name := range curveNames {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

var errInvalidPoint = errors.New("invalid point encoding")

// UncompressedPoint returns the uncompressed SEC1 form of point, which may
// be compressed or uncompressed. The point must lie on curve.
func UncompressedPoint(curve elliptic.Curve, point []byte) ([]byte, error) {
	byteLen := (curve.Params().BitSize + 7) / 8
	if len(point) == 0 {
		return nil, errInvalidPoint
	}
	switch point[0] {
	case 4:
		if len(point) != 1+2*byteLen {
			return nil, errInvalidPoint
		}
		// Unmarshal also checks the point is on the curve.
		if x, _ := elliptic.Unmarshal(curve, point); x == nil {
			return nil, errInvalidPoint
		}
		return point, nil
	case 2, 3:
		x, y := elliptic.UnmarshalCompressed(curve, point)
		if x == nil {
			return nil, errInvalidPoint
		}
		return elliptic.Marshal(curve, x, y), nil
	default:
		return nil, errInvalidPoint
	}
}

// BigIntBytesToFixedSizeBuffer converts a big integer representation to a
// fixed size buffer.
//
// If the bytes representation is smaller, it is padded with leading zeros.
// If the bytes representation is larger, the leading bytes are removed.
// If the bytes representation is larger than the given size, an error is
// returned.
func BigIntBytesToFixedSizeBuffer(bigIntBytes []byte, size int) ([]byte, error) {
	if len(bigIntBytes) == size {
		return bigIntBytes, nil
	}
	if len(bigIntBytes) < size {
		buf := make([]byte, size-len(bigIntBytes), size)
		return append(buf, bigIntBytes...), nil
	}
	// Remove the leading len(bigIntValue)-size bytes. Fail if any is not zero.
	for i := 0; i < len(bigIntBytes)-size; i++ {
		if bigIntBytes[i] != 0 {
			return nil, fmt.Errorf("big int has invalid size: %v, want %v", len(bigIntBytes)-i, size)
		}
	}
	return bigIntBytes[len(bigIntBytes)-size:], nil
}
