// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"math/bits"
)

// References:
//   [SEC2]: Recommended Elliptic Curve Domain Parameters
//   [HAC]: Handbook of Applied Cryptography Menezes, van Oorschot, Vanstone.
//
// FieldVal represents an element of the field modulo the secp256k1 prime,
//
//	p = 2^256 - 2^32 - 977
//
// Unlike the teacher's 10x26-bit lazily-normalized representation (chosen
// there for 32-bit-friendly carry batching), this is kept in four 64-bit
// limbs and is always fully reduced into [0, p) between operations.  The
// 2^256 ≡ fieldC (mod p) identity used below is the same reduction trick
// the decred/btcsuite lineage uses; only the word size and normalization
// schedule differ.
type FieldVal struct {
	// n is little-endian: n[0] holds the least-significant 64 bits.
	n [4]uint64
}

// fieldPrime holds the secp256k1 field prime as little-endian 64-bit words.
var fieldPrime = [4]uint64{
	0xFFFFFFFEFFFFFC2F,
	0xFFFFFFFFFFFFFFFF,
	0xFFFFFFFFFFFFFFFF,
	0xFFFFFFFFFFFFFFFF,
}

// fieldC is the constant such that 2^256 ≡ fieldC (mod p); p = 2^256 - fieldC.
const fieldC = uint64(0x1000003D1)

// Zero sets f to 0.
func (f *FieldVal) Zero() *FieldVal {
	f.n = [4]uint64{}
	return f
}

// SetInt sets f to the value of the given small unsigned integer.
func (f *FieldVal) SetInt(ui uint64) *FieldVal {
	f.n = [4]uint64{ui, 0, 0, 0}
	return f
}

// Set sets f equal to val.
func (f *FieldVal) Set(val *FieldVal) *FieldVal {
	f.n = val.n
	return f
}

// SetBytes interprets b as a 32-byte big-endian integer, reduces it modulo
// p, and stores the result in f.  It returns f and a bool that is false if
// the input needed to be reduced (i.e. was >= p).
func (f *FieldVal) SetBytes(b *[32]byte) (*FieldVal, bool) {
	var n [4]uint64
	n[3] = beUint64(b[0:8])
	n[2] = beUint64(b[8:16])
	n[1] = beUint64(b[16:24])
	n[0] = beUint64(b[24:32])
	inRange := less4(n, fieldPrime)
	f.n = n
	f.reduceOnce()
	return f, inRange
}

func beUint64(b []byte) uint64 {
	return uint64(b[0])<<56 | uint64(b[1])<<48 | uint64(b[2])<<40 | uint64(b[3])<<32 |
		uint64(b[4])<<24 | uint64(b[5])<<16 | uint64(b[6])<<8 | uint64(b[7])
}

func putBeUint64(b []byte, v uint64) {
	b[0] = byte(v >> 56)
	b[1] = byte(v >> 48)
	b[2] = byte(v >> 40)
	b[3] = byte(v >> 32)
	b[4] = byte(v >> 24)
	b[5] = byte(v >> 16)
	b[6] = byte(v >> 8)
	b[7] = byte(v)
}

// Bytes returns the big-endian, 32-byte encoding of f.
func (f *FieldVal) Bytes() [32]byte {
	var b [32]byte
	f.PutBytesUnchecked(b[:])
	return b
}

// PutBytesUnchecked serializes f as 32 big-endian bytes into b, which must
// have at least 32 bytes of capacity remaining.
func (f *FieldVal) PutBytesUnchecked(b []byte) {
	putBeUint64(b[0:8], f.n[3])
	putBeUint64(b[8:16], f.n[2])
	putBeUint64(b[16:24], f.n[1])
	putBeUint64(b[24:32], f.n[0])
}

// addLimbsRaw adds two 256-bit little-endian limb arrays without any
// modular reduction, returning the 256-bit result and the carry-out bit.
func addLimbsRaw(a, b [4]uint64) ([4]uint64, uint64) {
	var sum [4]uint64
	carry := uint64(0)
	for i := 0; i < 4; i++ {
		sum[i], carry = bits.Add64(a[i], b[i], carry)
	}
	return sum, carry
}

// less4 reports whether a < b as 256-bit little-endian limb arrays.
func less4(a, b [4]uint64) bool {
	for i := 3; i >= 0; i-- {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// reduceOnce subtracts p from f.n if f.n >= p, in constant time.
func (f *FieldVal) reduceOnce() {
	var diff [4]uint64
	borrow := uint64(0)
	for i := 0; i < 4; i++ {
		var b uint64
		diff[i], b = bits.Sub64(f.n[i], fieldPrime[i], borrow)
		borrow = b
	}
	// borrow == 1 means f.n < p (no subtraction needed); borrow == 0 means
	// f.n >= p and diff is the reduced value.  Select without branching on
	// the secret-independent-but-still-don't-branch-on-it comparison.
	mask := uint64(0) - (borrow ^ 1)
	for i := 0; i < 4; i++ {
		f.n[i] = (diff[i] & mask) | (f.n[i] &^ mask)
	}
}

// addC folds a carry-out bit of the 256-bit representation back in, using
// 2^256 ≡ fieldC (mod p).  carry * fieldC does not fit in 64 bits in
// general (Mul's overflow can itself run into fieldC's own ~33-bit range),
// so the multiply is done as a full 64x64->128 product via bits.Mul64 and
// both result words are folded into the limb array.  Two fixed passes are
// always performed regardless of whether the first pass produced further
// overflow, so the number of limb operations never depends on the
// operands' values.
func (f *FieldVal) addC(carry uint64) {
	for pass := 0; pass < 2; pass++ {
		hi, lo := bits.Mul64(carry, fieldC)
		var c uint64
		f.n[0], c = bits.Add64(f.n[0], lo, 0)
		f.n[1], c = bits.Add64(f.n[1], hi, c)
		f.n[2], c = bits.Add64(f.n[2], 0, c)
		f.n[3], c = bits.Add64(f.n[3], 0, c)
		carry = c
	}
	f.reduceOnce()
}

// Add sets f = a + b mod p.
func (f *FieldVal) Add(a, b *FieldVal) *FieldVal {
	var sum [4]uint64
	carry := uint64(0)
	for i := 0; i < 4; i++ {
		sum[i], carry = bits.Add64(a.n[i], b.n[i], carry)
	}
	f.n = sum
	f.addC(carry)
	return f
}

// Negate sets f = -a mod p (i.e. p - a, or 0 if a is 0).
func (f *FieldVal) Negate(a *FieldVal) *FieldVal {
	var diff [4]uint64
	borrow := uint64(0)
	for i := 0; i < 4; i++ {
		diff[i], borrow = bits.Sub64(fieldPrime[i], a.n[i], borrow)
	}
	f.n = diff
	f.reduceOnce()
	return f
}

// Sub sets f = a - b mod p.
func (f *FieldVal) Sub(a, b *FieldVal) *FieldVal {
	var nb FieldVal
	nb.Negate(b)
	return f.Add(a, &nb)
}

// mul512 multiplies two 256-bit little-endian limb arrays, producing an
// 8-limb little-endian product, via schoolbook multiplication.
func mul512(a, b [4]uint64) [8]uint64 {
	var p [8]uint64
	for i := 0; i < 4; i++ {
		if a[i] == 0 {
			continue
		}
		var carry uint64
		for j := 0; j < 4; j++ {
			hi, lo := bits.Mul64(a[i], b[j])
			var c1, c2 uint64
			p[i+j], c1 = bits.Add64(p[i+j], lo, 0)
			p[i+j], c2 = bits.Add64(p[i+j], carry, 0)
			carry = hi + c1 + c2
		}
		p[i+4], _ = bits.Add64(p[i+4], carry, 0)
	}
	return p
}

// mulSmall multiplies the 256-bit little-endian limb array a by the 64-bit
// value m, returning a 5-limb little-endian product (the top limb is the
// overflow beyond 256 bits, which is always small since m is small).
func mulSmall(a [4]uint64, m uint64) [5]uint64 {
	var r [5]uint64
	var carry uint64
	for i := 0; i < 4; i++ {
		hi, lo := bits.Mul64(a[i], m)
		var c uint64
		r[i], c = bits.Add64(lo, carry, 0)
		carry = hi + c
	}
	r[4] = carry
	return r
}

// Mul sets f = a * b mod p.
func (f *FieldVal) Mul(a, b *FieldVal) *FieldVal {
	prod := mul512(a.n, b.n)
	var lo [4]uint64
	copy(lo[:], prod[:4])
	var hi [4]uint64
	copy(hi[:], prod[4:])

	r := mulSmall(hi, fieldC)

	var sum [4]uint64
	carry := uint64(0)
	for i := 0; i < 4; i++ {
		sum[i], carry = bits.Add64(lo[i], r[i], carry)
	}
	overflow := r[4] + carry

	f.n = sum
	f.addC(overflow)
	return f
}

// Square sets f = a * a mod p.
func (f *FieldVal) Square(a *FieldVal) *FieldVal {
	return f.Mul(a, a)
}

// pow sets f = a^e mod p using a fixed-length square-and-multiply ladder:
// every one of the 256 exponent bits performs a square, and a multiply
// follows only where that bit is set, so the sequence of operations
// depends on e but not on a.  Every caller passes a public constant
// exponent (p-2 for inversion, (p+1)/4 for square roots).
func (f *FieldVal) pow(a *FieldVal, e [4]uint64) *FieldVal {
	var result FieldVal
	result.SetInt(1)
	var base FieldVal
	base.Set(a)
	for word := 3; word >= 0; word-- {
		for bit := 63; bit >= 0; bit-- {
			result.Square(&result)
			if (e[word]>>uint(bit))&1 == 1 {
				result.Mul(&result, &base)
			}
		}
	}
	f.Set(&result)
	return f
}

// Inverse sets f = a^-1 mod p using Fermat's little theorem (a^(p-2)).  The
// exponent p-2 is a public constant, so the order of squarings and
// multiplications in pow does not depend on a.
func (f *FieldVal) Inverse(a *FieldVal) (*FieldVal, error) {
	if a.IsZero() {
		return f, Error{Err: ErrFieldNonInvertible, Description: "cannot invert zero field element"}
	}
	// p - 2.
	exp := fieldPrime
	var borrow uint64
	exp[0], borrow = bits.Sub64(exp[0], 2, 0)
	for i := 1; i < 4 && borrow != 0; i++ {
		exp[i], borrow = bits.Sub64(exp[i], 0, borrow)
	}
	f.pow(a, exp)
	return f, nil
}

// sqrtExp is (p+1)/4, used for the closed-form square root since p ≡ 3 (mod 4).
var sqrtExp = func() [4]uint64 {
	// (p+1)/4: add 1 to p then shift right by 2.
	n := fieldPrime
	carry := uint64(1)
	for i := 0; i < 4 && carry != 0; i++ {
		var c uint64
		n[i], c = bits.Add64(n[i], carry, 0)
		carry = c
	}
	// shift right by 2 bits across the limb array.
	var out [4]uint64
	for i := 0; i < 4; i++ {
		out[i] = n[i] >> 2
		if i < 3 {
			out[i] |= n[i+1] << 62
		}
	}
	return out
}()

// Sqrt sets f to a square root of a (f*f == a) using the closed form
// m = a^((p+1)/4) mod p, valid because p ≡ 3 (mod 4).  The result is
// verified by squaring; if a is not a quadratic residue, an error is
// returned and f is left unchanged.
func (f *FieldVal) Sqrt(a *FieldVal) (*FieldVal, error) {
	var candidate FieldVal
	candidate.pow(a, sqrtExp)
	var check FieldVal
	check.Square(&candidate)
	if !check.Equals(a) {
		return f, Error{Err: ErrFieldNotSquare, Description: "value is not a quadratic residue mod p"}
	}
	f.Set(&candidate)
	return f, nil
}

// IsZero reports whether f == 0.
func (f *FieldVal) IsZero() bool {
	return f.n[0] == 0 && f.n[1] == 0 && f.n[2] == 0 && f.n[3] == 0
}

// IsOdd reports whether f, as a canonical integer, is odd.
func (f *FieldVal) IsOdd() bool {
	return f.n[0]&1 == 1
}

// Equals reports whether f == val.
func (f *FieldVal) Equals(val *FieldVal) bool {
	return f.n == val.n
}

// Cmp returns -1, 0, or 1 depending on whether f is less than, equal to, or
// greater than val, as canonical integers.  Only used on public values
// (point coordinates during encoding), never on secret scalars.
func (f *FieldVal) Cmp(val *FieldVal) int {
	for i := 3; i >= 0; i-- {
		if f.n[i] != val.n[i] {
			if f.n[i] < val.n[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}
