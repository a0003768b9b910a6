// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package schnorr implements BIP-340-style Schnorr signatures over
// secp256k1: x-only public keys, tagged-hash nonce and challenge
// derivation, and the 64-byte (R.x || s) signature encoding.
package schnorr

import (
	"crypto/sha256"

	"github.com/dcrlabs/secp256k1"
)

// SignatureSize is the length, in bytes, of a serialized Schnorr signature:
// a 32-byte x-only nonce point plus a 32-byte scalar.
const SignatureSize = 64

// PubKeySize is the length, in bytes, of an x-only public key.
const PubKeySize = 32

// Signature is a BIP-340 Schnorr signature (R.x, s).
type Signature struct {
	rX secp256k1.FieldVal
	s  secp256k1.ModNScalar
}

// taggedHash computes SHA256(SHA256(tag) || SHA256(tag) || msg), the
// domain-separated hash construction of BIP-340.
func taggedHash(tag string, parts ...[]byte) [32]byte {
	tagHash := sha256.Sum256([]byte(tag))
	h := sha256.New()
	h.Write(tagHash[:])
	h.Write(tagHash[:])
	for _, p := range parts {
		h.Write(p)
	}
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

// liftX reconstructs the curve point with x-coordinate x and even y, per
// BIP-340's lift_x. Returns an error if x has no corresponding point.
func liftX(x *secp256k1.FieldVal) (secp256k1.JacobianPoint, secp256k1.FieldVal, error) {
	var rhs, x3 secp256k1.FieldVal
	x3.Square(x)
	x3.Mul(&x3, x)
	curveB := new(secp256k1.FieldVal).SetInt(7)
	rhs.Add(&x3, curveB)

	y, err := new(secp256k1.FieldVal).Sqrt(&rhs)
	if err != nil {
		var zero secp256k1.JacobianPoint
		return zero, secp256k1.FieldVal{}, makeError(ErrPubKeyNotOnCurve, "x-only public key has no point on the curve")
	}
	if y.IsOdd() {
		y.Negate(y)
	}

	var p secp256k1.JacobianPoint
	p.FromAffine(x, y)
	return p, *y, nil
}

// Sign produces a BIP-340 Schnorr signature over the 32-byte message msg
// using priv, per spec.md §4.8.  If the public point P = d*G has odd y, the
// private scalar is negated to n-d before nonce derivation so that the
// signature always verifies against P's x-only (implicitly even-y) form.
func Sign(priv *secp256k1.PrivateKey, msg []byte) (*Signature, error) {
	if len(msg) != 32 {
		return nil, makeError(ErrInvalidMessageLen, "message must be exactly 32 bytes")
	}

	d := priv.Key
	if d.IsZero() {
		return nil, makeError(ErrPrivateKeyIsZero, "cannot sign with the zero private key")
	}

	pubPoint := secp256k1.ScalarBaseMultConstTime(&d)
	px, py, err := pubPoint.ToAffineCoords()
	if err != nil {
		return nil, makeError(ErrPublicKeyIsInfinity, "public key derivation produced the point at infinity")
	}
	if py.IsOdd() {
		d.Negate(&d)
	}

	dBytes := d.Bytes()
	pxBytes := px.Bytes()
	nonceHash := taggedHash("BIP0340/nonce", dBytes[:], pxBytes[:], msg)

	var k0 secp256k1.ModNScalar
	k0.SetBytes(&nonceHash)
	if k0.IsZero() {
		return nil, makeError(ErrInvalidNonce, "derived nonce reduced to zero")
	}

	rPoint := secp256k1.ScalarBaseMultConstTime(&k0)
	rx, ry, err := rPoint.ToAffineCoords()
	if err != nil {
		return nil, makeError(ErrInvalidNonce, "nonce point is the point at infinity")
	}

	k := k0
	if ry.IsOdd() {
		k.Negate(&k0)
	}

	rxBytes := rx.Bytes()
	challengeHash := taggedHash("BIP0340/challenge", rxBytes[:], pxBytes[:], msg)
	var e secp256k1.ModNScalar
	e.SetBytes(&challengeHash)

	var ed, s secp256k1.ModNScalar
	ed.Mul(&e, &d)
	s.Add(&k, &ed)

	return &Signature{rX: rx, s: s}, nil
}

// Verify reports whether sig is a valid BIP-340 signature over msg for the
// x-only public key encoded in pubKeyX (32 bytes), per spec.md §4.8.  Like
// the ECDSA Verify, this never errors: any malformed input simply yields
// false.
func Verify(pubKeyX []byte, msg []byte, sig *Signature) bool {
	if len(msg) != 32 || len(pubKeyX) != PubKeySize {
		return false
	}

	var xBuf [32]byte
	copy(xBuf[:], pubKeyX)
	var px secp256k1.FieldVal
	if _, inRange := px.SetBytes(&xBuf); !inRange {
		return false
	}

	pubPoint, _, err := liftX(&px)
	if err != nil {
		return false
	}

	rxBytes := sig.rX.Bytes()
	pxBytes := px.Bytes()
	challengeHash := taggedHash("BIP0340/challenge", rxBytes[:], pxBytes[:], msg)
	var e secp256k1.ModNScalar
	e.SetBytes(&challengeHash)

	var sG, eP, negEP, rPrime secp256k1.JacobianPoint
	g := secp256k1.BasePoint()
	secp256k1.ScalarMultNonConst(&sig.s, &g, &sG)
	secp256k1.ScalarMultNonConst(&e, &pubPoint, &eP)
	secp256k1.NegateNonConst(&eP, &negEP)
	secp256k1.AddNonConst(&sG, &negEP, &rPrime)

	if rPrime.IsInfinity() {
		return false
	}
	rpx, rpy, err := rPrime.ToAffineCoords()
	if err != nil {
		return false
	}
	if rpy.IsOdd() {
		return false
	}
	return rpx.Equals(&sig.rX)
}

// Serialize returns sig encoded as 64 bytes: R.x(32) || s(32).
func (sig *Signature) Serialize() []byte {
	out := make([]byte, SignatureSize)
	rx := sig.rX.Bytes()
	s := sig.s.Bytes()
	copy(out[0:32], rx[:])
	copy(out[32:64], s[:])
	return out
}

// ParseSignature parses a 64-byte Schnorr signature, rejecting an
// out-of-range x-coordinate or scalar.
func ParseSignature(sigBytes []byte) (*Signature, error) {
	if len(sigBytes) != SignatureSize {
		return nil, makeError(ErrSigSizeMismatch, "schnorr signature must be exactly 64 bytes")
	}

	var rxBuf, sBuf [32]byte
	copy(rxBuf[:], sigBytes[0:32])
	copy(sBuf[:], sigBytes[32:64])

	var rx secp256k1.FieldVal
	if _, inRange := rx.SetBytes(&rxBuf); !inRange {
		return nil, makeError(ErrSigRTooBig, "schnorr signature R.x >= field prime")
	}
	var s secp256k1.ModNScalar
	if _, inRange := s.SetBytes(&sBuf); !inRange {
		return nil, makeError(ErrSigSTooBig, "schnorr signature s >= group order")
	}

	return &Signature{rX: rx, s: s}, nil
}

// SerializePubKey returns the 32-byte x-only encoding of pub, per BIP-340.
// The x-coordinate alone is sufficient: Verify always reconstructs the
// point with even y via lift_x, regardless of pub's original parity.
func SerializePubKey(pub *secp256k1.PublicKey) []byte {
	x := pub.X.Bytes()
	return x[:]
}

// ParsePubKey parses a 32-byte x-only public key and reconstructs the full
// point with even y (BIP-340's lift_x), returning an error if x has no
// corresponding point on the curve or is out of range.
func ParsePubKey(data []byte) (*secp256k1.PublicKey, error) {
	if len(data) != PubKeySize {
		return nil, makeError(ErrPubKeySizeMismatch, "x-only public key must be exactly 32 bytes")
	}

	var xBuf [32]byte
	copy(xBuf[:], data)
	var x secp256k1.FieldVal
	if _, inRange := x.SetBytes(&xBuf); !inRange {
		return nil, makeError(ErrPubKeyXTooBig, "x-only public key's x >= field prime")
	}

	_, y, err := liftX(&x)
	if err != nil {
		return nil, err
	}
	return secp256k1.NewPublicKey(&x, &y)
}
