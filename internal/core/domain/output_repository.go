package domain

import (
	"context"

	"github.com/google/uuid"
)

// OutputRepository is the single shared mutable resource of the wallet: the
// table of the party's own outputs and their reservation state.
// Implementations must make lock and unlock atomic with respect to one
// another so that two concurrent negotiations can never hold the same output.
type OutputRepository interface {
	// AddOutputs inserts the given outputs, skipping those already known.
	AddOutputs(ctx context.Context, outputs []Output) error
	// GetAllOutputs returns every output stored, spent ones included.
	GetAllOutputs(ctx context.Context) ([]Output, error)
	// GetAvailableOutputsForAsset returns the unspent, unlocked outputs of
	// the given asset.
	GetAvailableOutputsForAsset(ctx context.Context, assetID string) ([]Output, error)
	// GetBalance returns the total unspent amount of the given asset,
	// locked outputs included.
	GetBalance(ctx context.Context, assetID string) (uint64, error)
	// GetUnlockedBalance returns the spendable amount of the given asset.
	GetUnlockedBalance(ctx context.Context, assetID string) (uint64, error)
	// GetOutput returns the output with the given key.
	GetOutput(ctx context.Context, key OutputKey) (*Output, error)
	// LockOutputs reserves the given outputs for the negotiation identified
	// by id. Either all outputs get locked or none.
	LockOutputs(ctx context.Context, keys []OutputKey, id uuid.UUID) error
	// UnlockOutputs returns the given outputs to the spendable pool. Unknown
	// or already unlocked keys are ignored so that release can run on every
	// exit path.
	UnlockOutputs(ctx context.Context, keys []OutputKey) error
	// SpendOutputs marks the given outputs as spent and clears their lock.
	SpendOutputs(ctx context.Context, keys []OutputKey) error
}
