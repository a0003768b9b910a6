// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "testing"

// TestScalarBaseMultMatchesNonConst checks that the constant-time windowed
// base-point multiplication agrees with the plain variable-time path, for a
// handful of scalars.
func TestScalarBaseMultMatchesNonConst(t *testing.T) {
	g := BasePoint()
	scalars := []uint64{1, 2, 3, 255, 65537, 1 << 40}

	for _, si := range scalars {
		k := new(ModNScalar).SetInt(si)

		ct := ScalarBaseMultConstTime(k)

		var nc JacobianPoint
		ScalarMultNonConst(k, &g, &nc)

		if !EqualsNonConst(&ct, &nc) {
			t.Errorf("scalar %d: const-time and non-const base mult disagree", si)
		}
	}
}

// TestPrecomputeRejectsBadWindowWidth checks the W not-in-[1,16] boundary
// from spec.md §6.
func TestPrecomputeRejectsBadWindowWidth(t *testing.T) {
	g := BasePoint()
	if _, err := Precompute(0, &g); err == nil {
		t.Fatal("expected error for window width 0")
	}
	if _, err := Precompute(17, &g); err == nil {
		t.Fatal("expected error for window width 17")
	}
	if _, err := Precompute(8, &g); err != nil {
		t.Fatalf("unexpected error for window width 8: %v", err)
	}
}

// TestPrecomputeIdempotent checks that calling Precompute twice for the same
// point still produces a table that yields correct scalar multiplication
// results (spec.md §3: "never invalidated").
func TestPrecomputeIdempotent(t *testing.T) {
	g := BasePoint()
	handle1, err := Precompute(4, &g)
	if err != nil {
		t.Fatalf("unexpected error on first precompute: %v", err)
	}
	handle2, err := Precompute(4, &g)
	if err != nil {
		t.Fatalf("unexpected error on second precompute: %v", err)
	}

	k := new(ModNScalar).SetInt(99)
	r1 := ScalarMultConstTime(k, handle1)
	r2 := ScalarMultConstTime(k, handle2)
	if !EqualsNonConst(&r1, &r2) {
		t.Fatal("repeated precompute for the same point produced different results")
	}

	var want JacobianPoint
	ScalarMultNonConst(k, &g, &want)
	if !EqualsNonConst(&r1, &want) {
		t.Fatal("windowed constant-time result disagrees with variable-time result")
	}
}
