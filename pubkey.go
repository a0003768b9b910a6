// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// PubKeyBytesLenCompressed is the number of bytes of a serialized compressed
// public key.
const PubKeyBytesLenCompressed = 33

// PubKeyBytesLenUncompressed is the number of bytes of a serialized
// uncompressed public key.
const PubKeyBytesLenUncompressed = 65

const (
	pubkeyUncompressed   byte = 0x04
	pubkeyCompressedEven byte = 0x02
	pubkeyCompressedOdd  byte = 0x03
)

// PublicKey is a secp256k1 public key, the affine point (X, Y) satisfying
// Y^2 = X^3 + 7.  See spec.md §3/§4.4.
type PublicKey struct {
	X, Y FieldVal
}

// NewPublicKey instantiates a new public key from the given X and Y
// coordinates, validating that the point lies on the curve.
func NewPublicKey(x, y *FieldVal) (*PublicKey, error) {
	if !IsOnCurve(x, y) {
		return nil, Error{Err: ErrPubKeyNotOnCurve, Description: "public key point is not on the curve"}
	}
	return &PublicKey{X: *x, Y: *y}, nil
}

// AsJacobian sets result to the Jacobian representation of pub.
func (pub *PublicKey) AsJacobian(result *JacobianPoint) {
	result.FromAffine(&pub.X, &pub.Y)
}

// SerializeUncompressed returns pub serialized as 0x04 || x(32) || y(32).
func (pub *PublicKey) SerializeUncompressed() []byte {
	b := make([]byte, PubKeyBytesLenUncompressed)
	b[0] = pubkeyUncompressed
	pub.X.PutBytesUnchecked(b[1:33])
	pub.Y.PutBytesUnchecked(b[33:65])
	return b
}

// SerializeCompressed returns pub serialized as 0x02/0x03 || x(32), the
// format byte encoding the parity of Y.
func (pub *PublicKey) SerializeCompressed() []byte {
	b := make([]byte, PubKeyBytesLenCompressed)
	if pub.Y.IsOdd() {
		b[0] = pubkeyCompressedOdd
	} else {
		b[0] = pubkeyCompressedEven
	}
	pub.X.PutBytesUnchecked(b[1:33])
	return b
}

// ParsePubKey parses a public key in compressed (33-byte) or uncompressed
// (65-byte) SEC1 format, validating the encoding, coordinate range, and
// curve membership, per spec.md §4.4.  For compressed keys Y is the root of
// x^3+7 with the parity named by the format byte.  Hybrid (0x06/0x07)
// encodings are rejected.
func ParsePubKey(data []byte) (*PublicKey, error) {
	switch len(data) {
	case PubKeyBytesLenCompressed:
		format := data[0]
		if format != pubkeyCompressedEven && format != pubkeyCompressedOdd {
			return nil, Error{Err: ErrPubKeyInvalidFormat, Description: "invalid point: unrecognized compressed format byte"}
		}

		var xb [32]byte
		copy(xb[:], data[1:33])
		var x FieldVal
		if _, inRange := x.SetBytes(&xb); !inRange {
			return nil, Error{Err: ErrPubKeyXTooBig, Description: "invalid point: x coordinate >= field prime"}
		}

		var rhs FieldVal
		var x3 FieldVal
		x3.Square(&x)
		x3.Mul(&x3, &x)
		rhs.Add(&x3, &curveB)

		y, err := new(FieldVal).Sqrt(&rhs)
		if err != nil {
			return nil, Error{Err: ErrPubKeyNotOnCurve, Description: "invalid point: x is not on the curve"}
		}
		wantOdd := format == pubkeyCompressedOdd
		if y.IsOdd() != wantOdd {
			y.Negate(y)
		}
		return &PublicKey{X: x, Y: *y}, nil

	case PubKeyBytesLenUncompressed:
		if data[0] != pubkeyUncompressed {
			return nil, Error{Err: ErrPubKeyInvalidFormat, Description: "invalid point: unrecognized uncompressed format byte"}
		}

		var xb, yb [32]byte
		copy(xb[:], data[1:33])
		copy(yb[:], data[33:65])

		var x, y FieldVal
		if _, inRange := x.SetBytes(&xb); !inRange {
			return nil, Error{Err: ErrPubKeyXTooBig, Description: "invalid point: x coordinate >= field prime"}
		}
		if _, inRange := y.SetBytes(&yb); !inRange {
			return nil, Error{Err: ErrPubKeyYTooBig, Description: "invalid point: y coordinate >= field prime"}
		}
		if !IsOnCurve(&x, &y) {
			return nil, Error{Err: ErrPubKeyNotOnCurve, Description: "invalid point: not on the curve"}
		}
		return &PublicKey{X: x, Y: y}, nil

	default:
		return nil, Error{Err: ErrPubKeyInvalidLen, Description: "invalid point: bad serialized length"}
	}
}

// IsEqual reports whether pub and other are the same point.
func (pub *PublicKey) IsEqual(other *PublicKey) bool {
	return pub.X.Equals(&other.X) && pub.Y.Equals(&other.Y)
}
