package swap

import "errors"

var (
	// ErrEmptyTerms ...
	ErrEmptyTerms = errors.New("both swap directions must carry at least one entry")
	// ErrZeroAmount ...
	ErrZeroAmount = errors.New("swap amounts must be strictly positive")
	// ErrDuplicateAsset ...
	ErrDuplicateAsset = errors.New("swap direction names the same asset twice")
	// ErrNullLeg ...
	ErrNullLeg = errors.New("initiator leg must not be null")
	// ErrNullInitiatorAddress ...
	ErrNullInitiatorAddress = errors.New("initiator address must not be null")

	// ErrInvalidFormat is returned when proposal bytes are not a proposal at
	// all: wrong prefix, broken base64 or garbled envelope.
	ErrInvalidFormat = errors.New("proposal is not in a valid format")
	// ErrUnsupportedVersion is returned when the proposal was produced by a
	// newer codec. Unknown versions and unknown payload fields fail closed
	// rather than being silently ignored.
	ErrUnsupportedVersion = errors.New("proposal version is not supported")
	// ErrIntegrityCheckFailed is returned when the payload does not match its
	// integrity tag, meaning the proposal was corrupted or tampered with in
	// transit.
	ErrIntegrityCheckFailed = errors.New("proposal integrity check failed")
)
