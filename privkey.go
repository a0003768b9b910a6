// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/rand"
	"io"
)

// PrivKeyBytesLen defines the length in bytes of a serialized private key.
const PrivKeyBytesLen = 32

// PrivateKey is a secp256k1 private key: a Scalar in [1, n-1] (spec.md §3).
type PrivateKey struct {
	Key ModNScalar
}

// NewPrivateKey instantiates a new private key from a scalar, rejecting
// zero (spec.md §3: "private keys additionally nonzero").
func NewPrivateKey(key *ModNScalar) (*PrivateKey, error) {
	if key.IsZero() {
		return nil, Error{Err: ErrPrivKeyOutOfRange, Description: "private key scalar is zero"}
	}
	return &PrivateKey{Key: *key}, nil
}

// PrivKeyFromBytes returns a private and public key pair for the given
// 32-byte big-endian scalar.  Unlike ECDSA signature parsing, private key
// bytes are reduced mod n rather than rejected when out of range, matching
// the teacher's historical PrivKeyFromBytes behavior; callers that need
// strict range rejection should use IsValidPrivateKey on the input first.
func PrivKeyFromBytes(pk []byte) (*PrivateKey, *PublicKey) {
	var b [32]byte
	copy(b[32-len(pk):], pk)
	var s ModNScalar
	s.SetBytes(&b)

	priv := &PrivateKey{Key: s}
	return priv, priv.PubKey()
}

// GeneratePrivateKey generates a new private key using the platform CSPRNG
// (crypto/rand), retrying on the (astronomically unlikely) event that the
// drawn scalar is zero.
func GeneratePrivateKey() (*PrivateKey, error) {
	return generatePrivateKey(rand.Reader)
}

func generatePrivateKey(randSource io.Reader) (*PrivateKey, error) {
	var b [32]byte
	for {
		if _, err := io.ReadFull(randSource, b[:]); err != nil {
			return nil, Error{Err: ErrRandomSourceFailure, Description: "failed to read randomness: " + err.Error()}
		}
		var s ModNScalar
		if _, inRange := s.SetBytes(&b); !inRange {
			continue
		}
		if s.IsZero() {
			continue
		}
		return &PrivateKey{Key: s}, nil
	}
}

// Serialize returns the private key's scalar as 32 big-endian bytes.
func (p *PrivateKey) Serialize() []byte {
	b := p.Key.Bytes()
	return b[:]
}

// PubKey derives and returns the public key d*G corresponding to p.
func (p *PrivateKey) PubKey() *PublicKey {
	point := ScalarBaseMultConstTime(&p.Key)
	x, y, err := point.ToAffineCoords()
	if err != nil {
		// k*G can only collapse to infinity for k == 0 mod n.
		// NewPrivateKey and GeneratePrivateKey never produce such a key;
		// PrivKeyFromBytes does for input bytes that are zero mod n, and
		// deriving its public key panics here.
		panic("secp256k1: public key derivation produced the point at infinity")
	}
	return &PublicKey{X: x, Y: y}
}

// IsValidPrivateKey reports whether the 32-byte big-endian candidate d
// satisfies 1 <= d <= n-1, per spec.md §4.2/§6.
func IsValidPrivateKey(d []byte) bool {
	if len(d) != PrivKeyBytesLen {
		return false
	}
	var b [32]byte
	copy(b[:], d)
	var s ModNScalar
	_, inRange := s.SetBytes(&b)
	return inRange && !s.IsZero()
}
