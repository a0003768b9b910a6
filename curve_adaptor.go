// Copyright 2020 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"crypto/elliptic"
	"math/big"
)

// koblitzCurve adapts secp256k1 to the standard library's crypto/elliptic
// Curve interface, per spec.md §6's mention that the package should compose
// with crypto/tls and crypto/x509 via the classic Curve shape. It is a
// compatibility layer only: internal signing/verification never routes
// scalar multiplication through it (see SPEC_FULL.md's DOMAIN STACK table),
// since big.Int arithmetic here is not held to the constant-time
// discipline the rest of the package follows.
type koblitzCurve struct {
	params *elliptic.CurveParams
}

var s256 = func() *koblitzCurve {
	p := Params()
	cp := &elliptic.CurveParams{
		P:       new(big.Int).SetBytes(p.P[:]),
		N:       new(big.Int).SetBytes(p.N[:]),
		B:       big.NewInt(7),
		Gx:      new(big.Int).SetBytes(p.Gx[:]),
		Gy:      new(big.Int).SetBytes(p.Gy[:]),
		BitSize: 256,
		Name:    "secp256k1",
	}
	return &koblitzCurve{params: cp}
}()

// S256 returns a crypto/elliptic.Curve implementation for secp256k1, for
// interop with stdlib APIs that still expect that interface. Prefer the
// PublicKey/PrivateKey/Sign/Verify API in this package directly; it is
// faster and carries the constant-time guarantees this shim does not.
func S256() elliptic.Curve {
	return s256
}

func (c *koblitzCurve) Params() *elliptic.CurveParams {
	return c.params
}

func bigToFieldVal(v *big.Int) FieldVal {
	var b [32]byte
	v.FillBytes(b[:])
	var f FieldVal
	f.SetBytes(&b)
	return f
}

func fieldValToBig(f *FieldVal) *big.Int {
	b := f.Bytes()
	return new(big.Int).SetBytes(b[:])
}

func isInfinityAffine(x, y *big.Int) bool {
	return x.Sign() == 0 && y.Sign() == 0
}

// IsOnCurve reports whether (x, y) lies on the curve. Part of
// crypto/elliptic.Curve.
func (c *koblitzCurve) IsOnCurve(x, y *big.Int) bool {
	fx := bigToFieldVal(x)
	fy := bigToFieldVal(y)
	return IsOnCurve(&fx, &fy)
}

// Add returns (x1,y1) + (x2,y2), treating (0,0) as the point at infinity
// per the crypto/elliptic convention. Part of crypto/elliptic.Curve.
func (c *koblitzCurve) Add(x1, y1, x2, y2 *big.Int) (*big.Int, *big.Int) {
	if isInfinityAffine(x1, y1) {
		return x2, y2
	}
	if isInfinityAffine(x2, y2) {
		return x1, y1
	}

	var p, q, r JacobianPoint
	fx1, fy1 := bigToFieldVal(x1), bigToFieldVal(y1)
	fx2, fy2 := bigToFieldVal(x2), bigToFieldVal(y2)
	p.FromAffine(&fx1, &fy1)
	q.FromAffine(&fx2, &fy2)
	AddNonConst(&p, &q, &r)
	return jacobianToBigAffine(&r)
}

// Double returns 2*(x1,y1). Part of crypto/elliptic.Curve.
func (c *koblitzCurve) Double(x1, y1 *big.Int) (*big.Int, *big.Int) {
	var p, r JacobianPoint
	fx1, fy1 := bigToFieldVal(x1), bigToFieldVal(y1)
	p.FromAffine(&fx1, &fy1)
	DoubleNonConst(&p, &r)
	return jacobianToBigAffine(&r)
}

func jacobianToBigAffine(p *JacobianPoint) (*big.Int, *big.Int) {
	if p.IsInfinity() {
		return new(big.Int), new(big.Int)
	}
	x, y, _ := p.ToAffineCoords()
	return fieldValToBig(&x), fieldValToBig(&y)
}

// ScalarMult returns k*(x1,y1). Part of crypto/elliptic.Curve. This is the
// compatibility path; it is not constant time (see the package doc comment
// on koblitzCurve).
func (c *koblitzCurve) ScalarMult(x1, y1 *big.Int, k []byte) (*big.Int, *big.Int) {
	scalar := bigBytesToScalar(k)

	var p, r JacobianPoint
	fx1, fy1 := bigToFieldVal(x1), bigToFieldVal(y1)
	p.FromAffine(&fx1, &fy1)
	ScalarMultNonConst(&scalar, &p, &r)
	return jacobianToBigAffine(&r)
}

// ScalarBaseMult returns k*G. Part of crypto/elliptic.Curve.
func (c *koblitzCurve) ScalarBaseMult(k []byte) (*big.Int, *big.Int) {
	scalar := bigBytesToScalar(k)
	r := ScalarBaseMultConstTime(&scalar)
	return jacobianToBigAffine(&r)
}

// bigBytesToScalar reduces an arbitrary-length big-endian byte slice mod the
// group order, per the crypto/elliptic convention that k need not be exactly
// 32 bytes (callers may pass a shorter or longer big-endian integer).
func bigBytesToScalar(k []byte) ModNScalar {
	reduced := new(big.Int).Mod(new(big.Int).SetBytes(k), s256.params.N)
	var b [32]byte
	reduced.FillBytes(b[:])
	var scalar ModNScalar
	scalar.SetBytes(&b)
	return scalar
}
