// Copyright (c) 2013-2014 The btcsuite developers
// Copyright (c) 2015-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// Signature is an ECDSA signature, a pair of Scalars (r, s) in [1, n-1]
// (spec.md §3).
type Signature struct {
	r, s ModNScalar
}

// NewSignature instantiates a new signature given some r, s values.
func NewSignature(r, s *ModNScalar) *Signature {
	return &Signature{r: *r, s: *s}
}

// R returns a copy of the signature's r value.
func (sig *Signature) R() ModNScalar { return sig.r }

// S returns a copy of the signature's s value.
func (sig *Signature) S() ModNScalar { return sig.s }

const derHeaderTagSeq = 0x30
const derHeaderTagInt = 0x02

// asn1Int serializes val as a minimal-length, two's-complement-safe DER
// INTEGER content: a leading 0x00 is prefixed iff the high bit of the first
// content byte would otherwise be set (spec.md §4.7).
func asn1Int(val *ModNScalar) []byte {
	raw := val.Bytes()
	i := 0
	for i < len(raw)-1 && raw[i] == 0x00 {
		i++
	}
	content := raw[i:]
	if content[0]&0x80 != 0 {
		content = append([]byte{0x00}, content...)
	}
	return content
}

// Serialize returns sig encoded as a strict, minimal DER signature: a
// SEQUENCE containing two INTEGERs (spec.md §4.7).
func (sig *Signature) Serialize() []byte {
	rBytes := asn1Int(&sig.r)
	sBytes := asn1Int(&sig.s)

	body := make([]byte, 0, 4+len(rBytes)+len(sBytes))
	body = append(body, derHeaderTagInt, byte(len(rBytes)))
	body = append(body, rBytes...)
	body = append(body, derHeaderTagInt, byte(len(sBytes)))
	body = append(body, sBytes...)

	out := make([]byte, 0, 2+len(body))
	out = append(out, derHeaderTagSeq, byte(len(body)))
	out = append(out, body...)
	return out
}

// ParseDERSignature parses sigStr as a strict, minimal DER signature,
// rejecting non-minimal length encodings, wrong tags, negative or
// out-of-range integers, and trailing data, per spec.md §4.7/§9's DER
// strictness Open Question (resolved: strict by default).
func ParseDERSignature(sigStr []byte) (*Signature, error) {
	return parseSignature(sigStr, true)
}

// ParseSignature parses sigStr as a signature using the more lenient BER
// rules (non-minimal length integers permitted), for interop with signers
// that do not produce strict DER.  Prefer ParseDERSignature unless lenient
// parsing is explicitly required (spec.md §9).
func ParseSignature(sigStr []byte) (*Signature, error) {
	return parseSignature(sigStr, false)
}

func parseSignature(sigStr []byte, strict bool) (*Signature, error) {
	if len(sigStr) < 8 {
		return nil, Error{Err: ErrSigTooShort, Description: "malformed signature: too short"}
	}
	if len(sigStr) > 72 {
		return nil, Error{Err: ErrSigTooLong, Description: "malformed signature: too long"}
	}
	if sigStr[0] != derHeaderTagSeq {
		return nil, Error{Err: ErrSigInvalidSeqID, Description: "malformed signature: missing sequence tag"}
	}

	seqLen := int(sigStr[1])
	if strict && seqLen != len(sigStr)-2 {
		return nil, Error{Err: ErrSigInvalidDataLen, Description: "malformed signature: sequence length mismatch"}
	}
	if seqLen > len(sigStr)-2 {
		return nil, Error{Err: ErrSigInvalidDataLen, Description: "malformed signature: sequence length out of bounds"}
	}

	data := sigStr[2 : 2+seqLen]

	r, rest, err := parseDERInt(data, strict, true)
	if err != nil {
		return nil, err
	}
	if len(rest) == 0 {
		return nil, Error{Err: ErrSigMissingSTypeID, Description: "malformed signature: missing S type id"}
	}
	s, rest, err := parseDERInt(rest, strict, false)
	if err != nil {
		return nil, err
	}
	if strict && len(rest) != 0 {
		return nil, Error{Err: ErrSigTooLong, Description: "malformed signature: trailing data after S"}
	}

	var rScalar, sScalar ModNScalar
	var rBuf, sBuf [32]byte
	if len(r) > 32 {
		return nil, Error{Err: ErrSigRTooBig, Description: "malformed signature: R overflows scalar size"}
	}
	if len(s) > 32 {
		return nil, Error{Err: ErrSigSTooBig, Description: "malformed signature: S overflows scalar size"}
	}
	copy(rBuf[32-len(r):], r)
	copy(sBuf[32-len(s):], s)

	if _, inRange := rScalar.SetBytes(&rBuf); !inRange {
		return nil, Error{Err: ErrSigRTooBig, Description: "malformed signature: R >= group order"}
	}
	if _, inRange := sScalar.SetBytes(&sBuf); !inRange {
		return nil, Error{Err: ErrSigSTooBig, Description: "malformed signature: S >= group order"}
	}
	if rScalar.IsZero() {
		return nil, Error{Err: ErrSigRIsZero, Description: "malformed signature: R is zero"}
	}
	if sScalar.IsZero() {
		return nil, Error{Err: ErrSigSIsZero, Description: "malformed signature: S is zero"}
	}

	return &Signature{r: rScalar, s: sScalar}, nil
}

// parseDERInt parses one ASN.1 INTEGER TLV from data, returning its content
// bytes (without a leading padding 0x00) and the remaining, unparsed data.
func parseDERInt(data []byte, strict bool, isR bool) (content, rest []byte, err error) {
	seqIDErr := ErrSigInvalidRIntID
	zeroLenErr := ErrSigZeroRLen
	negErr := ErrSigNegativeR
	paddingErr := ErrSigTooMuchRPadding
	lenErr := ErrSigInvalidDataLen
	boundsErr := ErrSigInvalidDataLen
	if !isR {
		seqIDErr = ErrSigInvalidSIntID
		zeroLenErr = ErrSigZeroSLen
		negErr = ErrSigNegativeS
		paddingErr = ErrSigTooMuchSPadding
		lenErr = ErrSigMissingSLen
		boundsErr = ErrSigInvalidSLen
	}

	if len(data) < 2 {
		return nil, nil, Error{Err: lenErr, Description: "malformed signature: missing integer header"}
	}
	if data[0] != derHeaderTagInt {
		return nil, nil, Error{Err: seqIDErr, Description: "malformed signature: missing integer tag"}
	}
	length := int(data[1])
	if length == 0 {
		return nil, nil, Error{Err: zeroLenErr, Description: "malformed signature: zero-length integer"}
	}
	if len(data) < 2+length {
		return nil, nil, Error{Err: boundsErr, Description: "malformed signature: integer length out of bounds"}
	}
	content = data[2 : 2+length]
	rest = data[2+length:]

	if content[0]&0x80 != 0 {
		return nil, nil, Error{Err: negErr, Description: "malformed signature: negative integer"}
	}
	if strict && len(content) > 1 && content[0] == 0x00 && content[1]&0x80 == 0 {
		return nil, nil, Error{Err: paddingErr, Description: "malformed signature: non-minimal integer padding"}
	}
	// Strip a single legitimate leading zero pad byte for the numeric value.
	if len(content) > 1 && content[0] == 0x00 {
		content = content[1:]
	}
	return content, rest, nil
}

// CompactSigSize is the length, in bytes, of a compact (recoverable)
// signature: 1 header byte + 32-byte R + 32-byte S.
const CompactSigSize = 65

// compactSigMagicOffset is the SEC1/Bitcoin convention header base; the
// low two bits carry the recovery id and bit 2 flags a compressed pubkey.
const compactSigMagicOffset = 27

// SignCompact produces a 65-byte compact signature
// (27+recID(+4 if compressed)) || R(32) || S(32)), which embeds the
// recovery id so the signer's public key can be recovered from the
// signature and message hash alone (spec.md §6).
func SignCompact(priv *PrivateKey, hash []byte, isCompressedKey bool, canonical bool) ([]byte, error) {
	sig, recID, err := signRFC6979(priv, hash, canonical)
	if err != nil {
		return nil, err
	}

	out := make([]byte, CompactSigSize)
	header := byte(compactSigMagicOffset) + recID
	if isCompressedKey {
		header += 4
	}
	out[0] = header
	rBytes := sig.r.Bytes()
	sBytes := sig.s.Bytes()
	copy(out[1:33], rBytes[:])
	copy(out[33:65], sBytes[:])
	return out, nil
}

// RecoverCompact verifies the compact signature sig against hash and
// recovers the signing public key, also reporting whether the original
// key was marked compressed in the signature header (spec.md §6).
func RecoverCompact(sig, hash []byte) (*PublicKey, bool, error) {
	if len(sig) != CompactSigSize {
		return nil, false, Error{Err: ErrSigInvalidLen, Description: "invalid compact signature length"}
	}
	header := sig[0]
	if header < compactSigMagicOffset || header >= compactSigMagicOffset+8 {
		return nil, false, Error{Err: ErrSigInvalidRecoveryCode, Description: "invalid compact signature recovery code"}
	}
	header -= compactSigMagicOffset
	compressed := header&4 != 0
	recID := header & 3

	var rBuf, sBuf [32]byte
	copy(rBuf[:], sig[1:33])
	copy(sBuf[:], sig[33:65])
	var r, s ModNScalar
	if _, inRange := r.SetBytes(&rBuf); !inRange {
		return nil, false, Error{Err: ErrSigRTooBig, Description: "invalid compact signature: R >= group order"}
	}
	if _, inRange := s.SetBytes(&sBuf); !inRange {
		return nil, false, Error{Err: ErrSigSTooBig, Description: "invalid compact signature: S >= group order"}
	}

	pub, err := recoverPublicKey(&r, &s, hash, recID)
	if err != nil {
		return nil, false, err
	}
	return pub, compressed, nil
}
