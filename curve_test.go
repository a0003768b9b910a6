// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "testing"

// TestBasePointOnCurve confirms the generator satisfies the curve equation.
func TestBasePointOnCurve(t *testing.T) {
	if !IsOnCurve(&curveGx, &curveGy) {
		t.Fatal("base point does not satisfy y^2 = x^3 + 7")
	}
}

// TestDoubleMatchesAdd checks that double(P) == add(P, P), per spec.md §8.
func TestDoubleMatchesAdd(t *testing.T) {
	g := BasePoint()

	var dbl, sum JacobianPoint
	DoubleNonConst(&g, &dbl)
	AddNonConst(&g, &g, &sum)

	if !EqualsNonConst(&dbl, &sum) {
		t.Fatal("double(G) != add(G, G)")
	}
}

// TestAddIdentity checks P + identity == P and P + (-P) == identity.
func TestAddIdentity(t *testing.T) {
	g := BasePoint()

	var identity, sum JacobianPoint
	identity.SetInfinity()
	AddNonConst(&g, &identity, &sum)
	if !EqualsNonConst(&g, &sum) {
		t.Fatal("G + identity != G")
	}

	var negG, sum2 JacobianPoint
	NegateNonConst(&g, &negG)
	AddNonConst(&g, &negG, &sum2)
	if !sum2.IsInfinity() {
		t.Fatal("G + (-G) != identity")
	}
}

// TestScalarMulAssociative checks a*(b*P) == (a*b mod n)*P, per spec.md §8.
func TestScalarMulAssociative(t *testing.T) {
	g := BasePoint()
	a := new(ModNScalar).SetInt(7)
	b := new(ModNScalar).SetInt(11)

	var bG, aBG JacobianPoint
	ScalarMultNonConst(b, &g, &bG)
	ScalarMultNonConst(a, &bG, &aBG)

	var ab ModNScalar
	ab.Mul(a, b)
	var abG JacobianPoint
	ScalarMultNonConst(&ab, &g, &abG)

	if !EqualsNonConst(&aBG, &abG) {
		t.Fatal("a*(b*G) != (a*b mod n)*G")
	}
}

// TestAddConstTimeMatchesAddNonConst checks that AddConstTime agrees with
// AddNonConst across the identity, doubling, negation, and general cases.
func TestAddConstTimeMatchesAddNonConst(t *testing.T) {
	g := BasePoint()
	var g2 JacobianPoint
	DoubleNonConst(&g, &g2)
	var negG JacobianPoint
	NegateNonConst(&g, &negG)
	var identity JacobianPoint
	identity.SetInfinity()

	cases := []struct {
		name string
		p, q JacobianPoint
	}{
		{"general", g, g2},
		{"double", g, g},
		{"negation", g, negG},
		{"p infinite", identity, g},
		{"q infinite", g, identity},
		{"both infinite", identity, identity},
	}

	for _, c := range cases {
		var want, got JacobianPoint
		AddNonConst(&c.p, &c.q, &want)
		AddConstTime(&c.p, &c.q, &got)
		if !EqualsNonConst(&want, &got) {
			t.Fatalf("%s: AddConstTime != AddNonConst", c.name)
		}
	}
}

// TestToAffineInfinityErrors checks that converting the point at infinity to
// affine coordinates is rejected, per spec.md §4.3.
func TestToAffineInfinityErrors(t *testing.T) {
	var identity JacobianPoint
	identity.SetInfinity()
	if _, _, err := identity.ToAffineCoords(); err == nil {
		t.Fatal("expected error converting infinity to affine")
	}
}
