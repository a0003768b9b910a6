// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// JacobianPoint is the internal representation of a point on the curve in
// Jacobian projective coordinates (X, Y, Z), representing the affine point
// (X/Z^2, Y/Z^3) when Z != 0.  Z == 0 is the sentinel for the point at
// infinity.  See spec.md §3/§4.3.
type JacobianPoint struct {
	X, Y, Z FieldVal
}

// curveB is the secp256k1 curve equation constant: y^2 = x^3 + curveB.
var curveB = func() FieldVal {
	var b FieldVal
	b.SetInt(7)
	return b
}()

// IsInfinity reports whether p is the point at infinity.
func (p *JacobianPoint) IsInfinity() bool {
	return p.Z.IsZero()
}

// SetInfinity sets p to the point at infinity.
func (p *JacobianPoint) SetInfinity() {
	p.X.Zero()
	p.Y.Zero()
	p.Z.Zero()
}

// Set sets p equal to q.
func (p *JacobianPoint) Set(q *JacobianPoint) {
	p.X.Set(&q.X)
	p.Y.Set(&q.Y)
	p.Z.Set(&q.Z)
}

// FromAffine sets p to the Jacobian representation of the affine point
// (x, y), with Z = 1.
func (p *JacobianPoint) FromAffine(x, y *FieldVal) {
	p.X.Set(x)
	p.Y.Set(y)
	p.Z.SetInt(1)
}

// DoubleNonConst sets r = 2*p.  Named to match the teacher's convention
// that arbitrary-point formulas not used in the constant-time base-point
// path are explicitly labeled "NonConst": doubling a single publicly-known
// accumulator point during signature verification does not need to hide
// timing, only scalar multiplication over a *secret* scalar does (spec
// §5's timing discipline binds the scalar, not every point operation).
func DoubleNonConst(p, r *JacobianPoint) {
	if p.IsInfinity() {
		r.SetInfinity()
		return
	}

	// [HAC] formulas for a = 0 short Weierstrass doubling:
	//   A = X1^2, B = Y1^2, C = B^2
	//   D = 2*((X1+B)^2 - A - C)
	//   E = 3*A
	//   F = E^2
	//   X3 = F - 2*D
	//   Y3 = E*(D-X3) - 8*C
	//   Z3 = 2*Y1*Z1
	var a, b, c, d, e, f FieldVal
	a.Square(&p.X)
	b.Square(&p.Y)
	c.Square(&b)

	var xb, xbSq, dInner FieldVal
	xb.Add(&p.X, &b)
	xbSq.Square(&xb)
	dInner.Sub(&xbSq, &a)
	dInner.Sub(&dInner, &c)
	d.Add(&dInner, &dInner)

	e.Add(&a, &a)
	e.Add(&e, &a)
	f.Square(&e)

	var twoD FieldVal
	twoD.Add(&d, &d)
	var x3 FieldVal
	x3.Sub(&f, &twoD)

	var dMinusX3, eTimes, eightC FieldVal
	dMinusX3.Sub(&d, &x3)
	eTimes.Mul(&e, &dMinusX3)
	eightC.Add(&c, &c)
	eightC.Add(&eightC, &eightC)
	eightC.Add(&eightC, &eightC)
	var y3 FieldVal
	y3.Sub(&eTimes, &eightC)

	var yz, z3 FieldVal
	yz.Mul(&p.Y, &p.Z)
	z3.Add(&yz, &yz)

	r.X.Set(&x3)
	r.Y.Set(&y3)
	r.Z.Set(&z3)
}

// AddNonConst sets r = p + q using the general Jacobian addition formulas
// (there is no separate mixed-addition path for operands with Z == 1),
// handling the identity and doubling special cases per spec.md §4.3.
func AddNonConst(p, q, r *JacobianPoint) {
	if p.IsInfinity() {
		r.Set(q)
		return
	}
	if q.IsInfinity() {
		r.Set(p)
		return
	}

	// U1 = X1*Z2^2, U2 = X2*Z1^2, S1 = Y1*Z2^3, S2 = Y2*Z1^3.
	var z1z1, z2z2 FieldVal
	z1z1.Square(&p.Z)
	z2z2.Square(&q.Z)

	var u1, u2 FieldVal
	u1.Mul(&p.X, &z2z2)
	u2.Mul(&q.X, &z1z1)

	var z1Cubed, z2Cubed FieldVal
	z1Cubed.Mul(&z1z1, &p.Z)
	z2Cubed.Mul(&z2z2, &q.Z)

	var s1, s2 FieldVal
	s1.Mul(&p.Y, &z2Cubed)
	s2.Mul(&q.Y, &z1Cubed)

	if u1.Equals(&u2) {
		if !s1.Equals(&s2) {
			// P = -Q.
			r.SetInfinity()
			return
		}
		// P == Q.
		DoubleNonConst(p, r)
		return
	}

	// H = U2-U1, R = S2-S1.
	var h, rr FieldVal
	h.Sub(&u2, &u1)
	rr.Sub(&s2, &s1)

	var hSq, hCubed FieldVal
	hSq.Square(&h)
	hCubed.Mul(&hSq, &h)

	var u1HSq FieldVal
	u1HSq.Mul(&u1, &hSq)

	// X3 = R^2 - H^3 - 2*U1*H^2.
	var rSq, twoU1HSq FieldVal
	rSq.Square(&rr)
	twoU1HSq.Add(&u1HSq, &u1HSq)
	var x3 FieldVal
	x3.Sub(&rSq, &hCubed)
	x3.Sub(&x3, &twoU1HSq)

	// Y3 = R*(U1*H^2 - X3) - S1*H^3.
	var inner, left, s1HCubed FieldVal
	inner.Sub(&u1HSq, &x3)
	left.Mul(&rr, &inner)
	s1HCubed.Mul(&s1, &hCubed)
	var y3 FieldVal
	y3.Sub(&left, &s1HCubed)

	// Z3 = H*Z1*Z2.
	var z1z2, z3 FieldVal
	z1z2.Mul(&p.Z, &q.Z)
	z3.Mul(&h, &z1z2)

	r.X.Set(&x3)
	r.Y.Set(&y3)
	r.Z.Set(&z3)
}

// ctZeroMask returns all-ones if f == 0, else all-zeros.
func ctZeroMask(f *FieldVal) uint64 {
	var acc uint64
	for i := 0; i < 4; i++ {
		acc |= f.n[i]
	}
	return ctEq64(acc, 0)
}

// ctEqFieldVal returns all-ones if a == b, else all-zeros.
func ctEqFieldVal(a, b *FieldVal) uint64 {
	var diff uint64
	for i := 0; i < 4; i++ {
		diff |= a.n[i] ^ b.n[i]
	}
	return ctEq64(diff, 0)
}

// AddConstTime sets r = p + q the same way AddNonConst does, but without
// branching on which case (either operand infinite, the operands
// coinciding, or the general case) applies: every case's arithmetic is
// computed unconditionally and the final coordinates are chosen with
// constant-time masked selects.  AddNonConst's early returns make its
// running time depend on its operands' values, which is exactly what
// ScalarMultConstTime (precompute.go) must not do when folding a
// window's selected table entry — itself already selected in constant
// time — into the running accumulator: an identity window entry (digit
// == 0) must take the same time to add as any other, or the digit leaks
// through timing even though the table lookup itself did not (spec §5).
func AddConstTime(p, q, r *JacobianPoint) {
	pInf := ctZeroMask(&p.Z)
	qInf := ctZeroMask(&q.Z)

	// General addition formula, computed unconditionally; meaningless
	// when either input is infinite or the points coincide, but those
	// cases are masked in below rather than branched around.
	var z1z1, z2z2 FieldVal
	z1z1.Square(&p.Z)
	z2z2.Square(&q.Z)

	var u1, u2 FieldVal
	u1.Mul(&p.X, &z2z2)
	u2.Mul(&q.X, &z1z1)

	var z1Cubed, z2Cubed FieldVal
	z1Cubed.Mul(&z1z1, &p.Z)
	z2Cubed.Mul(&z2z2, &q.Z)

	var s1, s2 FieldVal
	s1.Mul(&p.Y, &z2Cubed)
	s2.Mul(&q.Y, &z1Cubed)

	var h, rr FieldVal
	h.Sub(&u2, &u1)
	rr.Sub(&s2, &s1)

	var hSq, hCubed FieldVal
	hSq.Square(&h)
	hCubed.Mul(&hSq, &h)

	var u1HSq FieldVal
	u1HSq.Mul(&u1, &hSq)

	var rSq, twoU1HSq, genX FieldVal
	rSq.Square(&rr)
	twoU1HSq.Add(&u1HSq, &u1HSq)
	genX.Sub(&rSq, &hCubed)
	genX.Sub(&genX, &twoU1HSq)

	var inner, left, s1HCubed, genY FieldVal
	inner.Sub(&u1HSq, &genX)
	left.Mul(&rr, &inner)
	s1HCubed.Mul(&s1, &hCubed)
	genY.Sub(&left, &s1HCubed)

	var z1z2, genZ FieldVal
	z1z2.Mul(&p.Z, &q.Z)
	genZ.Mul(&h, &z1z2)

	// Doubling formula, also computed unconditionally, on p alone.
	var a, b, c, d, e, fe FieldVal
	a.Square(&p.X)
	b.Square(&p.Y)
	c.Square(&b)

	var xb, xbSq, dInner FieldVal
	xb.Add(&p.X, &b)
	xbSq.Square(&xb)
	dInner.Sub(&xbSq, &a)
	dInner.Sub(&dInner, &c)
	d.Add(&dInner, &dInner)

	e.Add(&a, &a)
	e.Add(&e, &a)
	fe.Square(&e)

	var twoD, dblX FieldVal
	twoD.Add(&d, &d)
	dblX.Sub(&fe, &twoD)

	var dMinusX3, eTimes, eightC, dblY FieldVal
	dMinusX3.Sub(&d, &dblX)
	eTimes.Mul(&e, &dMinusX3)
	eightC.Add(&c, &c)
	eightC.Add(&eightC, &eightC)
	eightC.Add(&eightC, &eightC)
	dblY.Sub(&eTimes, &eightC)

	var yz, dblZ FieldVal
	yz.Mul(&p.Y, &p.Z)
	dblZ.Add(&yz, &yz)

	// Select among: P == Q (double), P == -Q (infinity), or the general
	// sum, then among those and the two infinite-operand cases.
	sameX := ctEqFieldVal(&u1, &u2)
	sameY := ctEqFieldVal(&s1, &s2)
	isDouble := sameX & sameY
	isNegation := sameX &^ sameY

	x := selectFieldVal(isDouble, &dblX, &genX)
	y := selectFieldVal(isDouble, &dblY, &genY)
	z := selectFieldVal(isDouble, &dblZ, &genZ)

	var zero FieldVal
	x = selectFieldVal(isNegation, &zero, &x)
	y = selectFieldVal(isNegation, &zero, &y)
	z = selectFieldVal(isNegation, &zero, &z)

	x = selectFieldVal(qInf, &p.X, &x)
	y = selectFieldVal(qInf, &p.Y, &y)
	z = selectFieldVal(qInf, &p.Z, &z)

	x = selectFieldVal(pInf, &q.X, &x)
	y = selectFieldVal(pInf, &q.Y, &y)
	z = selectFieldVal(pInf, &q.Z, &z)

	r.X = x
	r.Y = y
	r.Z = z
}

// NegateNonConst sets r = -p (same X,Z; Y negated).
func NegateNonConst(p, r *JacobianPoint) {
	r.X.Set(&p.X)
	r.Z.Set(&p.Z)
	r.Y.Negate(&p.Y)
}

// ToAffine converts p to affine coordinates in place: p.X, p.Y become the
// affine (x, y) and p.Z becomes 1.  Converting the point at infinity is a
// programming error (callers must check IsInfinity first per spec §4.3).
func (p *JacobianPoint) ToAffine() {
	if p.IsInfinity() {
		return
	}
	zInv, _ := new(FieldVal).Inverse(&p.Z)
	zInv2 := new(FieldVal).Square(zInv)
	zInv3 := new(FieldVal).Mul(zInv2, zInv)

	p.X.Mul(&p.X, zInv2)
	p.Y.Mul(&p.Y, zInv3)
	p.Z.SetInt(1)
}

// ToAffineCoords returns the affine (x, y) of p without mutating p.  Returns
// an error if p is the point at infinity (spec §4.3: "identity -> error").
func (p *JacobianPoint) ToAffineCoords() (FieldVal, FieldVal, error) {
	if p.IsInfinity() {
		return FieldVal{}, FieldVal{}, Error{Err: ErrPointIsInfinity, Description: "cannot convert point at infinity to affine coordinates"}
	}
	q := *p
	q.ToAffine()
	return q.X, q.Y, nil
}

// EqualsNonConst reports whether p and q represent the same affine point,
// comparing via cross-multiplication (X_P*Z_Q^2 == X_Q*Z_P^2 and likewise
// for Y) so neither side needs an inversion, per spec §4.3.
func EqualsNonConst(p, q *JacobianPoint) bool {
	if p.IsInfinity() != q.IsInfinity() {
		return false
	}
	if p.IsInfinity() {
		return true
	}

	var zp2, zq2 FieldVal
	zp2.Square(&p.Z)
	zq2.Square(&q.Z)

	var lhsX, rhsX FieldVal
	lhsX.Mul(&p.X, &zq2)
	rhsX.Mul(&q.X, &zp2)
	if !lhsX.Equals(&rhsX) {
		return false
	}

	var zp3, zq3 FieldVal
	zp3.Mul(&zp2, &p.Z)
	zq3.Mul(&zq2, &q.Z)

	var lhsY, rhsY FieldVal
	lhsY.Mul(&p.Y, &zq3)
	rhsY.Mul(&q.Y, &zp3)
	return lhsY.Equals(&rhsY)
}

// IsOnCurve reports whether the affine point (x, y) satisfies y^2 = x^3 + 7.
func IsOnCurve(x, y *FieldVal) bool {
	var y2, x3, rhs FieldVal
	y2.Square(y)
	x3.Square(x)
	x3.Mul(&x3, x)
	rhs.Add(&x3, &curveB)
	return y2.Equals(&rhs)
}
