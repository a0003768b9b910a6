package secp256k1

import (
	"crypto"
	"io"
)

type SignOptions struct {
	Hash crypto.Hash
}

func (s *SignOptions) HashFunc() crypto.Hash {
	return s.Hash
}

// Sign will sign the provided digest, returning the resulting signature. [SignOptions] can be used
// to pass options. The digest is not rehashed; callers are responsible for
// hashing the message with the algorithm opts.HashFunc() identifies.
func (privkey *PrivateKey) Sign(rand io.Reader, digest []byte, opts crypto.SignerOpts) ([]byte, error) {
	sig, err := Sign(privkey, digest)
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil // DER
}

// Public returns the crypto.PublicKey corresponding to privkey, completing
// the crypto.Signer interface.
func (privkey *PrivateKey) Public() crypto.PublicKey {
	return privkey.PubKey()
}
