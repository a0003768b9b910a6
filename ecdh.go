// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2023 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// arbitraryPointWindowWidth is the window width used for the ad hoc,
// per-call table built for ECDH's remote (non-generator) point.  Smaller
// than the base point's default of 8 since this table is thrown away after
// a single scalar multiplication rather than cached for reuse.
const arbitraryPointWindowWidth = 4

// GenerateSharedSecret generates a shared secret based on a private key and a
// public key using Diffie-Hellman key exchange (ECDH) (RFC 5903).
// RFC5903 Section 9 states we should only return x.
//
// Unlike verification's u1*G + u2*Q (public scalars, public points, so
// ScalarMultNonConst's variable-time double-and-add is harmless), the
// private key here is secret, so this builds a local constant-time window
// table for the remote point and scans it the same way ScalarBaseMultConstTime
// does for G.
//
// It is recommended to securely hash the result before using as a cryptographic
// key.
func GenerateSharedSecret(privkey *PrivateKey, pubkey *PublicKey) []byte {
	var point JacobianPoint
	pubkey.AsJacobian(&point)
	table := buildWindowTable(&point, arbitraryPointWindowWidth)
	result := ScalarMultConstTime(&privkey.Key, &PrecomputedPoint{w: arbitraryPointWindowWidth, table: table})
	result.ToAffine()
	xBytes := result.X.Bytes()
	return xBytes[:]
}

// ECDH generates a shared secret and is an alias to GenerateSharedSecret, however
// by being part of the private key it is closer to go's own ecdh api.
func (privkey *PrivateKey) ECDH(remote *PublicKey) ([]byte, error) {
	return GenerateSharedSecret(privkey, remote), nil
}
