// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "math/bits"

// ModNScalar represents an element of the scalar field modulo the secp256k1
// group order n.  Values are always fully reduced into [0, n); private keys
// are additionally required to be nonzero (enforced by IsValidPrivateKey,
// not by this type itself, matching the data model in spec.md §3: Scalar
// reduction is an invariant of the type, nonzero-ness is a private-key
// specific constraint enforced at the call site).
type ModNScalar struct {
	n [4]uint64
}

// scalarOrder holds the secp256k1 group order n as little-endian 64-bit words.
var scalarOrder = [4]uint64{
	0xBFD25E8CD0364141,
	0xBAAEDCE6AF48A03B,
	0xFFFFFFFFFFFFFFFE,
	0xFFFFFFFFFFFFFFFF,
}

// scalarCompl is 2^256 mod n (i.e. 2^256 - n), used to fold the carry bit
// back in after an addition that overflows 256 bits.  Unlike fieldC this is
// not numerically small, but it is a fixed public constant so folding it in
// is still a single, data-independent limb addition.
var scalarCompl = [4]uint64{
	0x402DA1732FC9BEBF,
	0x4551231950B75FC4,
	0x0000000000000001,
	0x0000000000000000,
}

// Zero sets s to 0.
func (s *ModNScalar) Zero() *ModNScalar {
	s.n = [4]uint64{}
	return s
}

// SetInt sets s to the given small unsigned integer.
func (s *ModNScalar) SetInt(ui uint64) *ModNScalar {
	s.n = [4]uint64{ui, 0, 0, 0}
	return s
}

// Set sets s equal to val.
func (s *ModNScalar) Set(val *ModNScalar) *ModNScalar {
	s.n = val.n
	return s
}

// SetBytes interprets b as a 32-byte big-endian integer and reduces it
// modulo n.  It returns s and a bool that is false if the input was >= n
// and had to be reduced; callers that must reject out-of-range scalars
// (ECDSA r/s parsing, RFC 6979 candidate nonces) check this flag, while
// callers that intentionally reduce (message hashes, Schnorr nonce and
// challenge hashes) ignore it.
func (s *ModNScalar) SetBytes(b *[32]byte) (*ModNScalar, bool) {
	var n [4]uint64
	n[3] = beUint64(b[0:8])
	n[2] = beUint64(b[8:16])
	n[1] = beUint64(b[16:24])
	n[0] = beUint64(b[24:32])
	inRange := less4(n, scalarOrder)
	s.n = n
	s.reduceOnce()
	return s, inRange
}

// Bytes returns the big-endian, 32-byte encoding of s.
func (s *ModNScalar) Bytes() [32]byte {
	var b [32]byte
	putBeUint64(b[0:8], s.n[3])
	putBeUint64(b[8:16], s.n[2])
	putBeUint64(b[16:24], s.n[1])
	putBeUint64(b[24:32], s.n[0])
	return b
}

func (s *ModNScalar) reduceOnce() {
	var diff [4]uint64
	borrow := uint64(0)
	for i := 0; i < 4; i++ {
		diff[i], borrow = bits.Sub64(s.n[i], scalarOrder[i], borrow)
	}
	mask := uint64(0) - (borrow ^ 1)
	for i := 0; i < 4; i++ {
		s.n[i] = (diff[i] & mask) | (s.n[i] &^ mask)
	}
}

// Add sets s = a + b mod n.
func (s *ModNScalar) Add(a, b *ModNScalar) *ModNScalar {
	var sum [4]uint64
	carry := uint64(0)
	for i := 0; i < 4; i++ {
		sum[i], carry = bits.Add64(a.n[i], b.n[i], carry)
	}

	// If the 256-bit addition overflowed, fold the carry back in via
	// 2^256 mod n before the final conditional reduction.
	var folded [4]uint64
	c := uint64(0)
	for i := 0; i < 4; i++ {
		folded[i], c = bits.Add64(sum[i], scalarCompl[i], c)
	}
	mask := uint64(0) - carry
	for i := 0; i < 4; i++ {
		sum[i] = (folded[i] & mask) | (sum[i] &^ mask)
	}

	s.n = sum
	s.reduceOnce()
	return s
}

// Negate sets s = -a mod n.
func (s *ModNScalar) Negate(a *ModNScalar) *ModNScalar {
	var diff [4]uint64
	borrow := uint64(0)
	for i := 0; i < 4; i++ {
		diff[i], borrow = bits.Sub64(scalarOrder[i], a.n[i], borrow)
	}
	s.n = diff
	s.reduceOnce()
	return s
}

// Sub sets s = a - b mod n.
func (s *ModNScalar) Sub(a, b *ModNScalar) *ModNScalar {
	var nb ModNScalar
	nb.Negate(b)
	return s.Add(a, &nb)
}

// Mul sets s = a * b mod n.  The 512-bit product is folded into the
// residue class mod n by walking its bits from most to least significant
// and repeatedly doubling-and-conditionally-incrementing an accumulator,
// which reuses the already-reduced Add as its only arithmetic primitive
// instead of a second, n-specific wide reduction routine.
func (s *ModNScalar) Mul(a, b *ModNScalar) *ModNScalar {
	prod := mul512(a.n, b.n)

	var acc ModNScalar
	var one ModNScalar
	one.SetInt(1)
	for limbIdx := 7; limbIdx >= 0; limbIdx-- {
		word := prod[limbIdx]
		for bit := 63; bit >= 0; bit-- {
			acc.Add(&acc, &acc)
			if (word>>uint(bit))&1 == 1 {
				acc.Add(&acc, &one)
			}
		}
	}
	s.n = acc.n
	return s
}

// Square sets s = a * a mod n.
func (s *ModNScalar) Square(a *ModNScalar) *ModNScalar {
	return s.Mul(a, a)
}

// pow sets s = a^e mod n via the same fixed-length square-and-multiply
// ladder as FieldVal.pow; the multiplies follow e's bits, and the only
// caller (Inverse) passes the public constant n-2.
func (s *ModNScalar) pow(a *ModNScalar, e [4]uint64) *ModNScalar {
	var result ModNScalar
	result.SetInt(1)
	var base ModNScalar
	base.Set(a)
	for word := 3; word >= 0; word-- {
		for bit := 63; bit >= 0; bit-- {
			result.Square(&result)
			if (e[word]>>uint(bit))&1 == 1 {
				result.Mul(&result, &base)
			}
		}
	}
	s.Set(&result)
	return s
}

// Inverse sets s = a^-1 mod n via Fermat's little theorem (a^(n-2)).
func (s *ModNScalar) Inverse(a *ModNScalar) (*ModNScalar, error) {
	if a.IsZero() {
		return s, Error{Err: ErrScalarNonInvertible, Description: "cannot invert zero scalar"}
	}
	exp := scalarOrder
	var borrow uint64
	exp[0], borrow = bits.Sub64(exp[0], 2, 0)
	for i := 1; i < 4 && borrow != 0; i++ {
		exp[i], borrow = bits.Sub64(exp[i], 0, borrow)
	}
	s.pow(a, exp)
	return s, nil
}

// IsZero reports whether s == 0.
func (s *ModNScalar) IsZero() bool {
	return s.n[0] == 0 && s.n[1] == 0 && s.n[2] == 0 && s.n[3] == 0
}

// IsOdd reports whether s, as a canonical integer, is odd.
func (s *ModNScalar) IsOdd() bool {
	return s.n[0]&1 == 1
}

// Equals reports whether s == val.
func (s *ModNScalar) Equals(val *ModNScalar) bool {
	return s.n == val.n
}

// Cmp returns -1, 0, or 1 depending on whether s is less than, equal to, or
// greater than val. Only ever used on public values (e.g. comparing s to
// n/2 for canonical low-s normalization), never on a secret in a way that
// would leak it through timing, since the result here feeds a single public
// bit (the signature's canonical form), not a branch over secret data.
func (s *ModNScalar) Cmp(val *ModNScalar) int {
	for i := 3; i >= 0; i-- {
		if s.n[i] != val.n[i] {
			if s.n[i] < val.n[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// IsValidPrivateKey reports whether s is in the valid private key range
// [1, n-1].
func (s *ModNScalar) IsValidPrivateKey() bool {
	return !s.IsZero()
}

// halfOrder is n/2, used to decide whether a signature's s value is
// canonical (low-s) per BIP-0062.
var halfOrder = func() ModNScalar {
	var h ModNScalar
	h.n = scalarOrder
	carry := uint64(0)
	for i := 3; i >= 0; i-- {
		bit := carry
		carry = h.n[i] & 1
		h.n[i] = (h.n[i] >> 1) | (bit << 63)
	}
	return h
}()
