// Copyright (c) 2020-2022 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package secp256k1

// ErrorKind identifies a kind of error.  It is a distinct type so callers
// can use errors.Is/errors.As to test for a specific failure without
// string-matching the description, per spec.md §7.
type ErrorKind string

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// These constants identify field, scalar, and point errors (spec.md §7:
// invalid-point, invalid-scalar, non-invertible, not-on-curve-square-root).
const (
	// ErrFieldNonInvertible is returned when attempting to invert a zero
	// field element.
	ErrFieldNonInvertible = ErrorKind("ErrFieldNonInvertible")

	// ErrFieldNotSquare is returned when Sqrt is asked for the square root
	// of a value that is not a quadratic residue mod p.
	ErrFieldNotSquare = ErrorKind("ErrFieldNotSquare")

	// ErrScalarNonInvertible is returned when attempting to invert a zero
	// scalar.
	ErrScalarNonInvertible = ErrorKind("ErrScalarNonInvertible")

	// ErrPointIsInfinity is returned when an operation that forbids the
	// point at infinity (such as affine conversion or encoding) is given
	// one anyway.
	ErrPointIsInfinity = ErrorKind("ErrPointIsInfinity")

	// ErrInvalidWindowWidth is returned when Precompute is called with a
	// window width outside [1, 16].
	ErrInvalidWindowWidth = ErrorKind("ErrInvalidWindowWidth")

	// ErrPubKeyInvalidLen is returned when a serialized public key does not
	// have one of the allowed lengths.
	ErrPubKeyInvalidLen = ErrorKind("ErrPubKeyInvalidLen")

	// ErrPubKeyInvalidFormat is returned when a serialized public key does
	// not have a recognized format byte.
	ErrPubKeyInvalidFormat = ErrorKind("ErrPubKeyInvalidFormat")

	// ErrPubKeyXTooBig is returned when a serialized public key has an X
	// coordinate that is greater than or equal to the field prime.
	ErrPubKeyXTooBig = ErrorKind("ErrPubKeyXTooBig")

	// ErrPubKeyYTooBig is returned when a serialized public key has a Y
	// coordinate that is greater than or equal to the field prime.
	ErrPubKeyYTooBig = ErrorKind("ErrPubKeyYTooBig")

	// ErrPubKeyNotOnCurve is returned when a serialized public key does not
	// describe a point that lies on the curve.
	ErrPubKeyNotOnCurve = ErrorKind("ErrPubKeyNotOnCurve")

	// ErrPubKeyMismatchedOddness is returned when the parity of a decoded
	// uncompressed public key's Y coordinate does not match the claimed
	// format byte.
	ErrPubKeyMismatchedOddness = ErrorKind("ErrPubKeyMismatchedOddness")

	// ErrPrivKeyOutOfRange is returned when a candidate private key scalar
	// is zero or greater than or equal to the group order.
	ErrPrivKeyOutOfRange = ErrorKind("ErrPrivKeyOutOfRange")

	// ErrRandomSourceFailure is returned when the platform CSPRNG fails to
	// supply randomness for key generation.
	ErrRandomSourceFailure = ErrorKind("ErrRandomSourceFailure")
)

// Error identifies an error related to secp256k1 cryptographic operations.
// It has full support for errors.Is and errors.As, so the caller can
// programmatically determine the specific error kind without having to
// check the message text.
type Error struct {
	Err         ErrorKind
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error kind.
func (e Error) Unwrap() error {
	return e.Err
}

// Is implements the interface to work with the standard library's
// errors.Is.  It returns true in either of the following cases:
//   - The target is an Error and the Err fields match
//   - The target is an ErrorKind and it matches the Err field
func (e Error) Is(target error) bool {
	switch target := target.(type) {
	case Error:
		return e.Err == target.Err
	case ErrorKind:
		return e.Err == target
	}
	return false
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
