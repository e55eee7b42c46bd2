package wallet

import (
	"errors"
)

// NativeAsset is the reserved asset id of the network's native coin.
const NativeAsset = "0000000000000000000000000000000000000000000000000000000000000000"

var (
	// ErrNullSigner ...
	ErrNullSigner = errors.New("signing key pair must not be null")
	// ErrNullLeg ...
	ErrNullLeg = errors.New("transaction leg must not be null")
	// ErrNullChangeAddress ...
	ErrNullChangeAddress = errors.New("change address must not be null")
	// ErrEmptyOutputs ...
	ErrEmptyOutputs = errors.New("output list must not be empty")
	// ErrEmptyDestinations ...
	ErrEmptyDestinations = errors.New("destination list must not be empty")
	// ErrZeroDestinationAmount ...
	ErrZeroDestinationAmount = errors.New("destination amount must not be zero")
	// ErrInvalidAsset ...
	ErrInvalidAsset = errors.New("asset must be a 32 byte array in hex format")
	// ErrInvalidAddress ...
	ErrInvalidAddress = errors.New("address must be a 32 byte public key in hex format")
	// ErrNotEnoughDecoys ...
	ErrNotEnoughDecoys = errors.New(
		"output does not carry enough decoys to satisfy the requested ring size",
	)

	// ErrInsufficientFunds is returned when the selected outputs do not cover
	// the destination amounts plus the network fee.
	ErrInsufficientFunds = errors.New("not enough funds to cover destination amounts")
	// ErrFeeRequiresNative is returned when a leg must pay the network fee but
	// spends no native coin the fee could be taken from.
	ErrFeeRequiresNative = errors.New("network fee must be paid in native coin")

	// ErrTermsMismatch is returned when a leg does not pay exactly the agreed
	// amounts to the counterparty's address.
	ErrTermsMismatch = errors.New("leg payments do not match the agreed swap terms")
	// ErrValueConservationViolation is returned when, for some asset, the sum
	// of inputs does not equal the sum of outputs plus the network fee over
	// the union of both legs.
	ErrValueConservationViolation = errors.New("per-asset value conservation violated")
	// ErrDuplicateOutputReference is returned when the same output is spent
	// by both legs.
	ErrDuplicateOutputReference = errors.New("output reference spent by both legs")
	// ErrMixinsMismatch is returned when some input carries a ring whose size
	// differs from the agreed one.
	ErrMixinsMismatch = errors.New("input ring size differs from agreed mixin count")
	// ErrInvalidProof is returned when an input's ownership proof does not
	// verify against the leg it belongs to.
	ErrInvalidProof = errors.New("input ownership proof does not verify")
)
