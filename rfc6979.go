// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/hmac"
	"crypto/sha256"
)

// maxNonceAttempts bounds the RFC 6979 candidate-generation retry loop
// (spec.md §4.9: "the spec allows unbounded iteration with a safety cap of,
// e.g., 1000"). In practice the first or second candidate is always
// accepted; this cap only guards against a never-terminating loop on a
// corrupted modulus.
const maxNonceAttempts = 1000

// rfc6979NonceGenerator produces the deterministic candidate-nonce stream
// described by RFC 6979 §3.2, given a message hash and private key. Each
// call to next runs one more round of the HMAC-driven K/V update schedule
// and returns the next candidate; callers loop until a candidate lands in
// [1, n-1] (spec.md §4.6).
type rfc6979NonceGenerator struct {
	k [sha256.Size]byte
	v [sha256.Size]byte
}

// newRFC6979NonceGenerator initializes V = 0x01*32, K = 0x00*32, then runs
// the two HMAC update steps from RFC 6979 §3.2(b)/(d) seeded with the
// private key and bits2octets(hash): the hash read as a 32-byte big-endian
// integer (copied the same way signing reads it) and reduced mod n.
func newRFC6979NonceGenerator(privKey *ModNScalar, hash []byte) *rfc6979NonceGenerator {
	g := &rfc6979NonceGenerator{}
	for i := range g.v {
		g.v[i] = 0x01
	}
	for i := range g.k {
		g.k[i] = 0x00
	}

	keyBytes := privKey.Bytes()

	var hBuf [32]byte
	copy(hBuf[:], hash)
	var hScalar ModNScalar
	hScalar.SetBytes(&hBuf)
	hashOctets := hScalar.Bytes()

	// K = HMAC_K(V || 0x00 || int2octets(x) || bits2octets(h1))
	mac := hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	mac.Write([]byte{0x00})
	mac.Write(keyBytes[:])
	mac.Write(hashOctets[:])
	copy(g.k[:], mac.Sum(nil))

	// V = HMAC_K(V)
	mac = hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	copy(g.v[:], mac.Sum(nil))

	// K = HMAC_K(V || 0x01 || int2octets(x) || bits2octets(h1))
	mac = hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	mac.Write([]byte{0x01})
	mac.Write(keyBytes[:])
	mac.Write(hashOctets[:])
	copy(g.k[:], mac.Sum(nil))

	// V = HMAC_K(V)
	mac = hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	copy(g.v[:], mac.Sum(nil))

	return g
}

// next runs the RFC 6979 §3.2(g)/(h) retry step: T = HMAC_K(V); V = T;
// repeated until T has enough bytes (one SHA-256 round already supplies
// the full 32 bytes needed for a 256-bit curve), returning the candidate
// bytes.
func (g *rfc6979NonceGenerator) next() [32]byte {
	mac := hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	copy(g.v[:], mac.Sum(nil))

	var t [32]byte
	copy(t[:], g.v[:])
	return t
}

// reject runs the RFC 6979 §3.2(h) update applied when a candidate is out
// of range, advancing K and V before the next candidate is drawn.
func (g *rfc6979NonceGenerator) reject() {
	mac := hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	mac.Write([]byte{0x00})
	copy(g.k[:], mac.Sum(nil))

	mac = hmac.New(sha256.New, g.k[:])
	mac.Write(g.v[:])
	copy(g.v[:], mac.Sum(nil))
}

// nonceRFC6979 returns the first RFC 6979 candidate nonce k in [1, n-1]
// for the given private key and 32-byte message hash, per spec.md §4.6.
// Deterministic: the same (hash, privKey) pair always yields the same k.
func nonceRFC6979(privKey *ModNScalar, hash []byte) (ModNScalar, error) {
	gen := newRFC6979NonceGenerator(privKey, hash)
	for attempt := 0; attempt < maxNonceAttempts; attempt++ {
		candidate := gen.next()
		var k ModNScalar
		if _, inRange := k.SetBytes(&candidate); inRange && !k.IsZero() {
			return k, nil
		}
		gen.reject()
	}
	return ModNScalar{}, Error{Err: ErrPrivKeyOutOfRange, Description: "RFC 6979 nonce generation exceeded maximum attempts"}
}
