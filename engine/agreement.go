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
	"github.com/nodecrypto/nodecrypto-go/keyagreement"
	"github.com/nodecrypto/nodecrypto-go/offload"
)

func (e *Engine) agreed(op string, secret []byte, err error) ([]byte, error) {
	if err != nil {
		e.failed(op, err)
		return nil, err
	}
	return secret, nil
}

// ECDHCurves lists the accepted ECDH curve names.
func (e *Engine) ECDHCurves() []string { return keyagreement.Curves() }

// ECDHGenerateKeys returns a fresh uncompressed public key and private
// scalar on curve.
func (e *Engine) ECDHGenerateKeys(curve string) (pub, priv []byte, err error) {
	pub, priv, err = keyagreement.GenerateKeys(curve)
	if err != nil {
		e.failed("ecdh_generate_keys", err, "curve", curve)
		return nil, nil, err
	}
	return pub, priv, nil
}

// ECDHComputePublicKey derives the uncompressed public key of priv.
func (e *Engine) ECDHComputePublicKey(curve string, priv []byte) ([]byte, error) {
	pub, err := keyagreement.ComputePublicKey(curve, priv)
	return e.agreed("ecdh_compute_public_key", pub, err)
}

// ECDHComputeSecret returns the shared x-coordinate of priv and peerPublic.
func (e *Engine) ECDHComputeSecret(curve string, priv, peerPublic []byte) ([]byte, error) {
	secret, err := keyagreement.ComputeSecret(curve, priv, peerPublic)
	return e.agreed("ecdh_compute_secret", secret, err)
}

// DHComputeSecret returns peerPublic^priv mod prime.
func (e *Engine) DHComputeSecret(prime, priv, peerPublic []byte) ([]byte, error) {
	secret, err := keyagreement.DHComputeSecret(prime, priv, peerPublic)
	return e.agreed("dh_compute_secret", secret, err)
}

// DHComputeSecretAsync is DHComputeSecret on the worker pool.
func (e *Engine) DHComputeSecretAsync(prime, priv, peerPublic []byte) *offload.Future[[]byte] {
	prime, priv, peerPublic = clone(prime), clone(priv), clone(peerPublic)
	return submit(e, "dh_compute_secret", func() ([]byte, error) {
		return e.DHComputeSecret(prime, priv, peerPublic)
	})
}

// X25519ComputeSecret returns the X25519 shared secret.
func (e *Engine) X25519ComputeSecret(priv, peerPublic []byte) ([]byte, error) {
	secret, err := keyagreement.X25519(priv, peerPublic)
	return e.agreed("x25519", secret, err)
}

// X448ComputeSecret returns the X448 shared secret.
func (e *Engine) X448ComputeSecret(priv, peerPublic []byte) ([]byte, error) {
	secret, err := keyagreement.X448(priv, peerPublic)
	return e.agreed("x448", secret, err)
}
