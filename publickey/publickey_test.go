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

package publickey_test

import (
	"bytes"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"sync"
	"testing"

	"github.com/nodecrypto/nodecrypto-go/cryptoerr"
	"github.com/nodecrypto/nodecrypto-go/publickey"
)

var (
	keyOnce         sync.Once
	privPEM, pubPEM []byte
)

func testKeys(t *testing.T) (priv, pub []byte) {
	t.Helper()
	keyOnce.Do(func() {
		k, err := rsa.GenerateKey(rand.Reader, 2048)
		if err != nil {
			t.Fatalf("rsa.GenerateKey() err = %v", err)
		}
		der, err := x509.MarshalPKCS8PrivateKey(k)
		if err != nil {
			t.Fatalf("x509.MarshalPKCS8PrivateKey() err = %v", err)
		}
		privPEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
		der, err = x509.MarshalPKIXPublicKey(&k.PublicKey)
		if err != nil {
			t.Fatalf("x509.MarshalPKIXPublicKey() err = %v", err)
		}
		pubPEM = pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	})
	return privPEM, pubPEM
}

func TestEncryptDecrypt(t *testing.T) {
	priv, pub := testKeys(t)
	msg := []byte("a secret message")
	for _, padding := range []publickey.Padding{publickey.PKCS1, publickey.OAEP} {
		t.Run(padding.String(), func(t *testing.T) {
			ct, err := publickey.PublicEncrypt(pub, msg, padding)
			if err != nil {
				t.Fatalf("PublicEncrypt() err = %v", err)
			}
			pt, err := publickey.PrivateDecrypt(priv, ct, padding)
			if err != nil {
				t.Fatalf("PrivateDecrypt() err = %v", err)
			}
			if !bytes.Equal(pt, msg) {
				t.Errorf("PrivateDecrypt() = %q, want %q", pt, msg)
			}

			ct, err = publickey.PrivateEncrypt(priv, msg, padding)
			if err != nil {
				t.Fatalf("PrivateEncrypt() err = %v", err)
			}
			pt, err = publickey.PrivateDecrypt(priv, ct, padding)
			if err != nil {
				t.Fatalf("PrivateDecrypt() err = %v", err)
			}
			if !bytes.Equal(pt, msg) {
				t.Errorf("PrivateDecrypt(PrivateEncrypt()) = %q, want %q", pt, msg)
			}

			ct[len(ct)/2] ^= 0x01
			if _, err := publickey.PrivateDecrypt(priv, ct, padding); !errors.Is(err, cryptoerr.ErrAuthentication) {
				t.Errorf("tampered ciphertext err = %v, want ErrAuthentication", err)
			}
		})
	}
}

func TestEncryptInvalidInputs(t *testing.T) {
	priv, pub := testKeys(t)
	if _, err := publickey.PublicEncrypt(pub, []byte("m"), 3); !errors.Is(err, cryptoerr.ErrParameter) {
		t.Errorf("unknown padding err = %v, want ErrParameter", err)
	}
	if _, err := publickey.PrivateDecrypt(priv, []byte("m"), 2); !errors.Is(err, cryptoerr.ErrParameter) {
		t.Errorf("unknown padding err = %v, want ErrParameter", err)
	}
	if _, err := publickey.PublicEncrypt([]byte("not pem"), []byte("m"), publickey.PKCS1); !errors.Is(err, cryptoerr.ErrDecode) {
		t.Errorf("bad PEM err = %v, want ErrDecode", err)
	}
	// A private key where a public key is expected.
	if _, err := publickey.PublicEncrypt(priv, []byte("m"), publickey.PKCS1); !errors.Is(err, cryptoerr.ErrDecode) {
		t.Errorf("private key as public err = %v, want ErrDecode", err)
	}
	if _, err := publickey.PublicEncrypt(pub, make([]byte, 1024), publickey.OAEP); !errors.Is(err, cryptoerr.ErrParameter) {
		t.Errorf("oversized message err = %v, want ErrParameter", err)
	}
}

func TestNonRSAKeyRejected(t *testing.T) {
	k, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("ecdsa.GenerateKey() err = %v", err)
	}
	der, _ := x509.MarshalPKCS8PrivateKey(k)
	ecPEM := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})
	if _, err := publickey.PrivateDecrypt(ecPEM, []byte("m"), publickey.PKCS1); !errors.Is(err, cryptoerr.ErrDecode) {
		t.Errorf("EC private key err = %v, want ErrDecode", err)
	}
}

func TestSignVerify(t *testing.T) {
	priv, pub := testKeys(t)
	d256 := sha256.Sum256([]byte("message"))
	d384 := sha512.Sum384([]byte("message"))
	for _, tc := range []struct {
		digestType string
		digest     []byte
	}{
		{"sha256", d256[:]},
		{"sha384", d384[:]},
	} {
		t.Run(tc.digestType, func(t *testing.T) {
			sig, err := publickey.Sign(tc.digest, tc.digestType, priv, "rsa", "pem")
			if err != nil {
				t.Fatalf("Sign() err = %v", err)
			}
			ok, err := publickey.Verify(tc.digest, tc.digestType, pub, "rsa", "pem", sig)
			if err != nil || !ok {
				t.Errorf("Verify() = %v, %v, want true, nil", ok, err)
			}
			sig[0] ^= 0x80
			ok, err = publickey.Verify(tc.digest, tc.digestType, pub, "rsa", "pem", sig)
			if err != nil || ok {
				t.Errorf("Verify(tampered) = %v, %v, want false, nil", ok, err)
			}
		})
	}
}

func TestSignInvalidParameters(t *testing.T) {
	priv, _ := testKeys(t)
	d := sha256.Sum256([]byte("message"))
	for _, tc := range []struct {
		name                           string
		digest                         []byte
		digestType, keyType, keyFormat string
	}{
		{"unknown digest", d[:], "md5", "rsa", "pem"},
		{"wrong digest length", d[:16], "sha256", "rsa", "pem"},
		{"ec key type", d[:], "sha256", "ec", "pem"},
		{"der format", d[:], "sha256", "rsa", "der"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := publickey.Sign(tc.digest, tc.digestType, priv, tc.keyType, tc.keyFormat); !errors.Is(err, cryptoerr.ErrParameter) {
				t.Errorf("Sign() err = %v, want ErrParameter", err)
			}
		})
	}
}
