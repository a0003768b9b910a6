// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// signRFC6979 implements the ECDSA sign state machine of spec.md §4.7/§4.9:
// draw a nonce -> compute R -> check r -> compute s -> check s -> emit, or
// retry with the next RFC 6979 candidate.  When canonical is true, s is
// normalized to the lower half of the scalar range and the recovery id's
// low bit is flipped to match (spec.md §9, Open Question 1).
func signRFC6979(priv *PrivateKey, hash []byte, canonical bool) (*Signature, byte, error) {
	gen := newRFC6979NonceGenerator(&priv.Key, hash)

	var hScalar ModNScalar
	var hBuf [32]byte
	copy(hBuf[:], hash)
	hScalar.SetBytes(&hBuf)

	for attempt := 0; attempt < maxNonceAttempts; attempt++ {
		candidate := gen.next()
		var k ModNScalar
		if _, inRange := k.SetBytes(&candidate); !inRange || k.IsZero() {
			gen.reject()
			continue
		}

		point := ScalarBaseMultConstTime(&k)
		x, y, err := point.ToAffineCoords()
		if err != nil {
			gen.reject()
			continue
		}

		xBytes := x.Bytes()
		var r ModNScalar
		_, xInRange := r.SetBytes(&xBytes)
		if r.IsZero() {
			gen.reject()
			continue
		}

		recID := byte(0)
		if y.IsOdd() {
			recID |= 1
		}
		if !xInRange {
			recID |= 2
		}

		kInv, err := new(ModNScalar).Inverse(&k)
		if err != nil {
			gen.reject()
			continue
		}

		var rd, hPlusRd ModNScalar
		rd.Mul(&r, &priv.Key)
		hPlusRd.Add(&hScalar, &rd)
		var s ModNScalar
		s.Mul(kInv, &hPlusRd)
		if s.IsZero() {
			gen.reject()
			continue
		}

		if canonical && s.Cmp(&halfOrder) > 0 {
			s.Negate(&s)
			recID ^= 1
		}

		return &Signature{r: r, s: s}, recID, nil
	}
	return nil, 0, Error{Err: ErrPrivKeyOutOfRange, Description: "ECDSA signing exceeded maximum nonce attempts"}
}

// Sign produces a deterministic (RFC 6979), canonical (low-s) ECDSA
// signature over the 32-byte hash using priv, per spec.md §4.7.
func Sign(priv *PrivateKey, hash []byte) (*Signature, error) {
	sig, _, err := signRFC6979(priv, hash, true)
	return sig, err
}

// SignWithRecoveryID is like Sign but also returns the recovery id needed
// to recover the public key from the signature and hash alone (spec.md
// §6: sign(h, d, {canonical?, recovered?})).
func SignWithRecoveryID(priv *PrivateKey, hash []byte, canonical bool) (*Signature, byte, error) {
	return signRFC6979(priv, hash, canonical)
}

// Verify reports whether sig is a valid ECDSA signature over hash by the
// holder of pub, per spec.md §4.7.  Verify never returns an error: any
// malformed or out-of-range input simply yields false (spec.md §7).
func Verify(sig *Signature, hash []byte, pub *PublicKey) bool {
	if sig.r.IsZero() || sig.s.IsZero() {
		return false
	}
	if !IsOnCurve(&pub.X, &pub.Y) {
		return false
	}

	w, err := new(ModNScalar).Inverse(&sig.s)
	if err != nil {
		return false
	}

	var hScalar ModNScalar
	var hBuf [32]byte
	copy(hBuf[:], hash)
	hScalar.SetBytes(&hBuf)

	var u1, u2 ModNScalar
	u1.Mul(&hScalar, w)
	u2.Mul(&sig.r, w)

	var pubJac, u1G, u2Q, sum JacobianPoint
	pub.AsJacobian(&pubJac)
	g := BasePoint()
	ScalarMultNonConst(&u1, &g, &u1G)
	ScalarMultNonConst(&u2, &pubJac, &u2Q)
	AddNonConst(&u1G, &u2Q, &sum)

	if sum.IsInfinity() {
		return false
	}
	x, _, err := sum.ToAffineCoords()
	if err != nil {
		return false
	}
	xBytes := x.Bytes()
	var rFromSum ModNScalar
	rFromSum.SetBytes(&xBytes)

	return rFromSum.Equals(&sig.r)
}

// recoverPublicKey implements spec.md §4.7's recover(h, sig, rec_id):
// reconstruct R from r and the recovery id, then compute
// Q = r^-1 * (s*R - h*G).
func recoverPublicKey(r, s *ModNScalar, hash []byte, recID byte) (*PublicKey, error) {
	if recID > 3 {
		return nil, Error{Err: ErrSigInvalidRecoveryCode, Description: "invalid recovery id"}
	}

	rBytes := r.Bytes()
	var xR FieldVal
	if _, inRange := xR.SetBytes(&rBytes); !inRange {
		return nil, Error{Err: ErrSigRTooBig, Description: "invalid signature: R out of range for recovery"}
	}
	if recID&2 != 0 {
		// x_R = r + n; reject if this meets or exceeds the field prime
		// (spec.md §4.7) rather than silently reducing mod p.
		sum, carry := addLimbsRaw(xR.n, scalarOrder)
		if carry != 0 || !less4(sum, fieldPrime) {
			return nil, Error{Err: ErrSigOverflowsPrime, Description: "invalid signature: recovered R.x >= field prime"}
		}
		xR.n = sum
	}

	var rhs FieldVal
	var x3 FieldVal
	x3.Square(&xR)
	x3.Mul(&x3, &xR)
	rhs.Add(&x3, &curveB)

	y, err := new(FieldVal).Sqrt(&rhs)
	if err != nil {
		return nil, Error{Err: ErrPointNotOnCurve, Description: "no point on curve for recovered R.x"}
	}
	wantOdd := recID&1 != 0
	if y.IsOdd() != wantOdd {
		y.Negate(y)
	}

	var rPoint JacobianPoint
	rPoint.FromAffine(&xR, y)

	var hScalar ModNScalar
	var hBuf [32]byte
	copy(hBuf[:], hash)
	hScalar.SetBytes(&hBuf)

	var sR, hG, diff JacobianPoint
	g := BasePoint()
	ScalarMultNonConst(s, &rPoint, &sR)
	ScalarMultNonConst(&hScalar, &g, &hG)
	var negHG JacobianPoint
	NegateNonConst(&hG, &negHG)
	AddNonConst(&sR, &negHG, &diff)

	rInv, err := new(ModNScalar).Inverse(r)
	if err != nil {
		return nil, err
	}
	var q JacobianPoint
	ScalarMultNonConst(rInv, &diff, &q)

	if q.IsInfinity() {
		return nil, Error{Err: ErrPointIsInfinity, Description: "recovered public key is the point at infinity"}
	}
	x, y2, err := q.ToAffineCoords()
	if err != nil {
		return nil, err
	}
	if !IsOnCurve(&x, &y2) {
		return nil, Error{Err: ErrPubKeyNotOnCurve, Description: "recovered public key is not on the curve"}
	}
	return &PublicKey{X: x, Y: y2}, nil
}

// RecoverPublicKey recovers the public key from hash, a DER-agnostic
// (r, s) signature, and an explicit recovery id (spec.md §6).
func RecoverPublicKey(hash []byte, sig *Signature, recID byte) (*PublicKey, error) {
	r := sig.r
	s := sig.s
	return recoverPublicKey(&r, &s, hash, recID)
}
