package block

import (
	errorsmod "cosmossdk.io/errors"
)

// Registered error codes for the verifier's result kinds, following the
// same codespace+code convention celestia-app and the rest of the
// Cosmos SDK use so each kind stays distinguishable via errors.Is
// regardless of the wrapped reason text.
const codespace = "daverify"

var (
	// ErrMissingDataHash is returned when a block header carries no data
	// hash at all.
	ErrMissingDataHash = errorsmod.Register(codespace, 1, "block header missing data hash")

	// ErrInvalidDataRoot is returned when the DAH's recomputed simple-
	// Merkle root does not match the header's declared data hash.
	ErrInvalidDataRoot = errorsmod.Register(codespace, 2, "DAH root does not match header data hash")

	// ErrInvalidRowProof is returned when a completeness proof is
	// missing or fails namespace-proof verification against its row
	// root.
	ErrInvalidRowProof = errorsmod.Register(codespace, 3, "invalid completeness row proof")

	// ErrInvalidEtxProof is returned when an inclusion proof is
	// malformed, non-contiguous, carries a bad start offset, or its
	// shares fail to decode into a PFB transaction.
	ErrInvalidEtxProof = errorsmod.Register(codespace, 4, "invalid inclusion proof")

	// ErrMissingTx is returned on any blob-to-PFB or PFB-to-blob count
	// mismatch.
	ErrMissingTx = errorsmod.Register(codespace, 5, "blob/PFB count mismatch")

	// ErrInvalidSigner is returned when a blob's declared sender
	// disagrees with its linking PFB's signer.
	ErrInvalidSigner = errorsmod.Register(codespace, 6, "sender disagrees with PFB signer")
)
