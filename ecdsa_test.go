// Copyright (c) 2015 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

import (
	"bytes"
	"testing"
)

func testHash(b byte) []byte {
	h := make([]byte, 32)
	for i := range h {
		h[i] = b
	}
	return h
}

// TestECDSACompleteness checks spec.md §8: verify(sign(h, d), h,
// get_public_key(d)) is true.
func TestECDSACompleteness(t *testing.T) {
	priv, pub := PrivKeyFromBytes([]byte{0x2a})
	hash := testHash(0x42)

	sig, err := Sign(priv, hash)
	if err != nil {
		t.Fatalf("unexpected error signing: %v", err)
	}
	if !Verify(sig, hash, pub) {
		t.Fatal("signature failed to verify against the signer's own public key")
	}
}

// TestSignDeterministic checks spec.md §8 concrete scenario 2: signing the
// same (hash, key) pair twice yields byte-identical signatures.
func TestSignDeterministic(t *testing.T) {
	priv, _ := PrivKeyFromBytes([]byte{0x2a})
	hash := testHash(0x99)

	sig1, err := Sign(priv, hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sig2, err := Sign(priv, hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(sig1.Serialize(), sig2.Serialize()) {
		t.Fatal("RFC 6979 signing was not deterministic across calls")
	}
}

// TestVerifyRejectsTampering checks spec.md §8 concrete scenario 3: altering
// the message, public key, or any byte of the signature must fail
// verification.
func TestVerifyRejectsTampering(t *testing.T) {
	priv, pub := PrivKeyFromBytes([]byte{0x2a})
	_, otherPub := PrivKeyFromBytes([]byte{0x2b})
	hash := testHash(0x11)

	sig, err := Sign(priv, hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !Verify(sig, hash, pub) {
		t.Fatal("baseline signature did not verify")
	}

	tamperedHash := testHash(0x12)
	if Verify(sig, tamperedHash, pub) {
		t.Fatal("verification succeeded against a tampered message")
	}

	if Verify(sig, hash, otherPub) {
		t.Fatal("verification succeeded against the wrong public key")
	}

	var badR ModNScalar
	one := new(ModNScalar).SetInt(1)
	badR.Add(&sig.r, one)
	tamperedSig := &Signature{r: badR, s: sig.s}
	if Verify(tamperedSig, hash, pub) {
		t.Fatal("verification succeeded against a tampered r value")
	}
}

// TestSignRecoverRoundTrip checks spec.md §8 concrete scenario 4:
// recover(h, sign(h, d, recovered=true), rec_id) == get_public_key(d).
func TestSignRecoverRoundTrip(t *testing.T) {
	priv, pub := PrivKeyFromBytes([]byte{0x77, 0x01})
	hash := testHash(0x34)

	sig, recID, err := SignWithRecoveryID(priv, hash, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	recovered, err := RecoverPublicKey(hash, sig, recID)
	if err != nil {
		t.Fatalf("unexpected error recovering public key: %v", err)
	}
	if !recovered.IsEqual(pub) {
		t.Fatal("recovered public key does not match the signer's public key")
	}
}

// TestCompactSignRecoverRoundTrip exercises the 65-byte compact format.
func TestCompactSignRecoverRoundTrip(t *testing.T) {
	priv, pub := PrivKeyFromBytes([]byte{0x03, 0x09})
	hash := testHash(0x55)

	compact, err := SignCompact(priv, hash, true, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(compact) != CompactSigSize {
		t.Fatalf("compact signature length = %d, want %d", len(compact), CompactSigSize)
	}

	recovered, compressed, err := RecoverCompact(compact, hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !compressed {
		t.Fatal("expected compressed flag to round trip as true")
	}
	if !recovered.IsEqual(pub) {
		t.Fatal("compact-recovered public key does not match the signer's public key")
	}
}

// TestDERRoundTrip checks spec.md §8: decode(encode(r, s)) == (r, s).
func TestDERRoundTrip(t *testing.T) {
	priv, _ := PrivKeyFromBytes([]byte{0x2a})
	hash := testHash(0x61)

	sig, err := Sign(priv, hash)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	der := sig.Serialize()
	parsed, err := ParseDERSignature(der)
	if err != nil {
		t.Fatalf("unexpected error parsing DER signature: %v", err)
	}
	if !parsed.r.Equals(&sig.r) || !parsed.s.Equals(&sig.s) {
		t.Fatal("DER round trip did not reproduce (r, s)")
	}
}

// TestParseSignatureBoundaries checks that a truncated and an over-long
// signature are both rejected.
func TestParseSignatureBoundaries(t *testing.T) {
	if _, err := ParseDERSignature(nil); err == nil {
		t.Fatal("expected error for empty signature")
	}
	if _, err := ParseDERSignature(make([]byte, 100)); err == nil {
		t.Fatal("expected error for an over-long buffer of zero bytes")
	}
}

// TestVerifyNeverErrors confirms spec.md §7: Verify's signature is a plain
// bool, so even a garbage Signature value cannot panic.
func TestVerifyNeverErrors(t *testing.T) {
	_, pub := PrivKeyFromBytes([]byte{0x2a})
	var zeroSig Signature
	if Verify(&zeroSig, testHash(0x01), pub) {
		t.Fatal("expected the all-zero signature to fail verification")
	}
}
