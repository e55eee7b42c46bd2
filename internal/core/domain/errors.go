package domain

import "errors"

var (
	// ErrInsufficientFunds is thrown when a party cannot cover its committed
	// side of the swap with its unlocked outputs.
	ErrInsufficientFunds = errors.New("unlocked outputs do not cover the requested amount")
	// ErrAssetNotActive is thrown when the referenced asset type is not yet
	// enabled at the current ledger height.
	ErrAssetNotActive = errors.New("asset is not active at the current ledger height")
	// ErrOutputsReserved is thrown when a reservation would need outputs
	// already reserved by a concurrent negotiation.
	ErrOutputsReserved = errors.New("outputs are reserved by another negotiation")
	// ErrProposalAlreadyAccepted is thrown when a proposal id is presented for
	// acceptance a second time while a live or accepted negotiation already
	// tracks it.
	ErrProposalAlreadyAccepted = errors.New("proposal is already tracked by a live negotiation")
	// ErrOutputNotFound ...
	ErrOutputNotFound = errors.New("output not found")
	// ErrOutputAlreadySpent ...
	ErrOutputAlreadySpent = errors.New("output is already spent")

	// ErrInvalidAssetID ...
	ErrInvalidAssetID = errors.New("asset id must be a 32 byte array in hex format")
	// ErrNullAssetTicker ...
	ErrNullAssetTicker = errors.New("asset ticker must not be null")
	// ErrUnknownAssetKind ...
	ErrUnknownAssetKind = errors.New("unknown asset kind")
	// ErrInvalidAssetPrecision ...
	ErrInvalidAssetPrecision = errors.New("asset precision out of range")
)
