// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import "testing"

// TestPubKeyRoundTrip checks decode(encode(P, c)) == P for both compressed
// and uncompressed encodings, per spec.md §8.
func TestPubKeyRoundTrip(t *testing.T) {
	_, pub := PrivKeyFromBytes([]byte{0x01})

	compressed := pub.SerializeCompressed()
	decodedC, err := ParsePubKey(compressed)
	if err != nil {
		t.Fatalf("ParsePubKey(compressed) failed: %v", err)
	}
	if !decodedC.IsEqual(pub) {
		t.Fatal("compressed round trip did not reproduce the original point")
	}

	uncompressed := pub.SerializeUncompressed()
	decodedU, err := ParsePubKey(uncompressed)
	if err != nil {
		t.Fatalf("ParsePubKey(uncompressed) failed: %v", err)
	}
	if !decodedU.IsEqual(pub) {
		t.Fatal("uncompressed round trip did not reproduce the original point")
	}
}

// TestD1IsGeneratorPoint checks spec.md §8 concrete scenario 1: d=1 yields
// the base point, with compressed encoding 02 || Gx.
func TestD1IsGeneratorPoint(t *testing.T) {
	_, pub := PrivKeyFromBytes([]byte{0x01})
	if !pub.X.Equals(&curveGx) || !pub.Y.Equals(&curveGy) {
		t.Fatal("public key for d=1 is not the generator point")
	}

	compressed := pub.SerializeCompressed()
	if compressed[0] != 0x02 {
		t.Fatalf("expected even-y format byte 0x02, got %#x", compressed[0])
	}
	gxBytes := curveGx.Bytes()
	if string(compressed[1:]) != string(gxBytes[:]) {
		t.Fatal("compressed encoding's x-coordinate does not match Gx")
	}
}

// TestParsePubKeyRejectsBadLength checks the invalid-length boundary.
func TestParsePubKeyRejectsBadLength(t *testing.T) {
	if _, err := ParsePubKey(make([]byte, 10)); err == nil {
		t.Fatal("expected error for bad-length input")
	}
}

// TestParsePubKeyRejectsXTooBig checks that an x-coordinate at or above the
// field prime is rejected, per spec.md §8's boundary properties.
func TestParsePubKeyRejectsXTooBig(t *testing.T) {
	data := make([]byte, PubKeyBytesLenCompressed)
	data[0] = 0x02
	var p FieldVal
	p.n = fieldPrime
	pBytes := p.Bytes()
	copy(data[1:], pBytes[:])

	if _, err := ParsePubKey(data); err == nil {
		t.Fatal("expected error for x >= field prime")
	}
}
