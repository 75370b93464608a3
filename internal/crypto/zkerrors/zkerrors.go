// Package zkerrors defines the shared two-outcome error vocabulary used by
// every primitive in the MtA core: a primitive either succeeds or fails with
// one of a small set of named reasons. Nothing here carries diagnostics
// beyond the reason itself, so a verifier can never leak which sub-check of
// a Sigma-protocol failed.
package zkerrors

import "errors"

var (
	// ErrInputOutOfRange is returned when a scalar exceeds the curve order,
	// or a purported ciphertext/commitment falls outside its required range.
	ErrInputOutOfRange = errors.New("mta: input out of range")

	// ErrProofRejected is the single, uniform rejection channel for every
	// range-proof and ZK-proof verification failure. Callers must not infer
	// which internal check failed from this error alone.
	ErrProofRejected = errors.New("mta: proof rejected")

	// ErrDecryptFailure indicates Paillier decryption produced a value
	// outside [0, N). With a correctly generated key and a valid
	// ciphertext this is structurally impossible, so it is treated as fatal.
	ErrDecryptFailure = errors.New("mta: paillier decrypt failure")
)
