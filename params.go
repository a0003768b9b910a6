// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// Curve parameters for secp256k1, per SEC2 and spec.md §3.  Exposed
// read-only at the package boundary via Params() and the BASE point via
// the generator accessors below.

var curveGx = func() FieldVal {
	var x FieldVal
	b := [32]byte{
		0x79, 0xbe, 0x66, 0x7e, 0xf9, 0xdc, 0xbb, 0xac,
		0x55, 0xa0, 0x62, 0x95, 0xce, 0x87, 0x0b, 0x07,
		0x02, 0x9b, 0xfc, 0xdb, 0x2d, 0xce, 0x28, 0xd9,
		0x59, 0xf2, 0x81, 0x5b, 0x16, 0xf8, 0x17, 0x98,
	}
	x.SetBytes(&b)
	return x
}()

var curveGy = func() FieldVal {
	var y FieldVal
	b := [32]byte{
		0x48, 0x3a, 0xda, 0x77, 0x26, 0xa3, 0xc4, 0x65,
		0x5d, 0xa4, 0xfb, 0xfc, 0x0e, 0x11, 0x08, 0xa8,
		0xfd, 0x17, 0xb4, 0x48, 0xa6, 0x85, 0x54, 0x19,
		0x9c, 0x47, 0xd0, 0x8f, 0xfb, 0x10, 0xd4, 0xb8,
	}
	y.SetBytes(&b)
	return y
}()

// CurveParams groups the public curve constants for introspection.
type CurveParams struct {
	P  [32]byte // field prime
	N  [32]byte // group order
	Gx [32]byte
	Gy [32]byte
	H  int // cofactor
}

// Params returns the secp256k1 curve parameters.
func Params() CurveParams {
	var p CurveParams
	var fp FieldVal
	fp.n = fieldPrime
	p.P = fp.Bytes()
	var sn ModNScalar
	sn.n = scalarOrder
	p.N = sn.Bytes()
	p.Gx = curveGx.Bytes()
	p.Gy = curveGy.Bytes()
	p.H = 1
	return p
}

// BasePoint returns the Jacobian representation of the generator G.
func BasePoint() JacobianPoint {
	var g JacobianPoint
	g.FromAffine(&curveGx, &curveGy)
	return g
}
