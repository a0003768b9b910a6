// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "testing"

// TestScalarAddSubNegate exercises the additive group laws on ModNScalar.
func TestScalarAddSubNegate(t *testing.T) {
	one := new(ModNScalar).SetInt(1)
	zero := new(ModNScalar).SetInt(0)

	var negOne, sum ModNScalar
	negOne.Negate(one)
	sum.Add(one, &negOne)
	if !sum.Equals(zero) {
		t.Fatalf("1 + (-1) = %x, want 0", sum.Bytes())
	}

	var diff ModNScalar
	diff.Sub(one, one)
	if !diff.Equals(zero) {
		t.Fatalf("1 - 1 = %x, want 0", diff.Bytes())
	}
}

// TestScalarMulDistributes checks (a+b)*c == a*c + b*c over the scalar
// field, per spec.md §8's algebraic invariants.
func TestScalarMulDistributes(t *testing.T) {
	a := new(ModNScalar).SetInt(12345)
	b := new(ModNScalar).SetInt(67890)
	c := new(ModNScalar).SetInt(999331)

	var sum, lhs ModNScalar
	sum.Add(a, b)
	lhs.Mul(&sum, c)

	var ac, bc, rhs ModNScalar
	ac.Mul(a, c)
	bc.Mul(b, c)
	rhs.Add(&ac, &bc)

	if !lhs.Equals(&rhs) {
		t.Fatalf("(a+b)*c = %x, a*c+b*c = %x", lhs.Bytes(), rhs.Bytes())
	}
}

// TestScalarInverse checks that a * a^-1 == 1 for a nonzero value, and that
// inverting zero fails.
func TestScalarInverse(t *testing.T) {
	a := new(ModNScalar).SetInt(424242)
	inv, err := new(ModNScalar).Inverse(a)
	if err != nil {
		t.Fatalf("unexpected error inverting nonzero scalar: %v", err)
	}
	var prod ModNScalar
	prod.Mul(a, inv)
	one := new(ModNScalar).SetInt(1)
	if !prod.Equals(one) {
		t.Fatalf("a * a^-1 = %x, want 1", prod.Bytes())
	}

	zero := new(ModNScalar).SetInt(0)
	if _, err := new(ModNScalar).Inverse(zero); err == nil {
		t.Fatal("expected error inverting zero scalar, got nil")
	}
}

// TestScalarBoundary checks the private-key boundary conditions from
// spec.md §8: 0 and n are rejected, n-1 is accepted.
func TestScalarBoundary(t *testing.T) {
	var nBytes [32]byte
	var n ModNScalar
	n.n = scalarOrder
	nBytes = n.Bytes()

	var reduced ModNScalar
	if _, inRange := reduced.SetBytes(&nBytes); inRange {
		t.Fatal("expected n itself to be reported out of range")
	}
	if !reduced.IsZero() {
		t.Fatalf("n mod n = %x, want 0", reduced.Bytes())
	}
	if reduced.IsValidPrivateKey() {
		t.Fatal("expected 0 to be rejected as a private key")
	}

	var nMinus1 ModNScalar
	one := new(ModNScalar).SetInt(1)
	nMinus1.Sub(&n, one)
	if !nMinus1.IsValidPrivateKey() {
		t.Fatal("expected n-1 to be accepted as a private key")
	}

	zero := new(ModNScalar)
	if zero.IsValidPrivateKey() {
		t.Fatal("expected 0 to be rejected as a private key")
	}
}

// TestScalarCmpHalfOrder sanity checks halfOrder sits strictly below n-1.
func TestScalarCmpHalfOrder(t *testing.T) {
	var n ModNScalar
	n.n = scalarOrder
	var nMinus1 ModNScalar
	one := new(ModNScalar).SetInt(1)
	nMinus1.Sub(&n, one)

	if halfOrder.Cmp(&nMinus1) >= 0 {
		t.Fatalf("halfOrder >= n-1, got %x", halfOrder.Bytes())
	}
}
