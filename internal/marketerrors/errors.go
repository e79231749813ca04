package marketerrors

import "errors"

// Repository-level errors
var (
	ErrOfferNotFound   = errors.New("offer not found")
	ErrTradeNotFound   = errors.New("trade not found")
	ErrProductNotFound = errors.New("product not found")

	// ErrConcurrentModification means an optimistic-lock conflict: the entity
	// changed between read and write. Callers retry against fresh state.
	ErrConcurrentModification = errors.New("concurrent modification, retry with fresh state")

	// ErrItemLocked means the product is already committed to another active
	// negotiation.
	ErrItemLocked = errors.New("item locked by another negotiation")
)

// business logic errors
var (
	ErrValidation           = errors.New("invalid input")
	ErrNotAuthorized        = errors.New("actor is not a party to this transition")
	ErrInvalidState         = errors.New("transition not legal from current state")
	ErrExpired              = errors.New("deadline passed")
	ErrWrongPhase           = errors.New("trade is not in the required phase")
	ErrDuplicateActiveOffer = errors.New("an active offer already exists for this product and buyer")

	// ErrDependencyFailure means an external collaborator call failed or timed
	// out; the entity keeps its pre-call phase and the operation may be retried.
	ErrDependencyFailure = errors.New("external dependency failed")
)
