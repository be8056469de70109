package tx

import "errors"

// Structural validation errors. The core enforces no UTXO balance
// model (Non-goal); these checks only guard the shapes the gossip
// worker and mempool rely on.
var (
	ErrNoInputs     = errors.New("transaction has no inputs")
	ErrNoOutputs    = errors.New("transaction has no outputs")
	ErrMissingSig   = errors.New("signed tx missing signature")
	ErrMissingPub   = errors.New("signed tx missing public key")
	ErrInvalidSig   = errors.New("signature verification failed")
)

// ValidateStructure checks that a transaction has at least one input
// and one output.
func (t *Transaction) ValidateStructure() error {
	if len(t.Inputs) == 0 {
		return ErrNoInputs
	}
	if len(t.Outputs) == 0 {
		return ErrNoOutputs
	}
	return nil
}

// Validate checks structure and signature validity of a SignedTx.
// Mempool admission (and the spec's error-handling design) treats a
// signature failure as grounds to drop the tx.
func (s *SignedTx) Validate() error {
	if err := s.Transaction.ValidateStructure(); err != nil {
		return err
	}
	if len(s.Signature) == 0 {
		return ErrMissingSig
	}
	if len(s.PubKey) == 0 {
		return ErrMissingPub
	}
	if !s.Verify() {
		return ErrInvalidSig
	}
	return nil
}
