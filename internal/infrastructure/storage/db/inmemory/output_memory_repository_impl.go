package inmemory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/reza1mahb/zano/internal/core/domain"
)

// OutputRepositoryImpl represents an in memory storage for the party's own
// outputs and their reservation state.
type OutputRepositoryImpl struct {
	outputs map[domain.OutputKey]domain.Output
	lock    *sync.RWMutex
}

// NewOutputRepositoryImpl returns a new empty OutputRepositoryImpl.
func NewOutputRepositoryImpl() domain.OutputRepository {
	return &OutputRepositoryImpl{
		outputs: map[domain.OutputKey]domain.Output{},
		lock:    &sync.RWMutex{},
	}
}

// AddOutputs adds the given outputs, skipping those already stored.
func (r *OutputRepositoryImpl) AddOutputs(
	ctx context.Context, outputs []domain.Output,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, out := range outputs {
		if _, ok := r.outputs[out.Key()]; !ok {
			r.outputs[out.Key()] = out
		}
	}
	return nil
}

// GetAllOutputs returns all the outputs stored, spent ones included.
func (r *OutputRepositoryImpl) GetAllOutputs(ctx context.Context) ([]domain.Output, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	outputs := make([]domain.Output, 0, len(r.outputs))
	for _, out := range r.outputs {
		outputs = append(outputs, out)
	}
	return outputs, nil
}

// GetAvailableOutputsForAsset returns the unspent, unlocked outputs of the
// given asset.
func (r *OutputRepositoryImpl) GetAvailableOutputsForAsset(
	ctx context.Context, assetID string,
) ([]domain.Output, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	outputs := make([]domain.Output, 0)
	for _, out := range r.outputs {
		if out.AssetID == assetID && !out.IsSpent() && !out.IsLocked() {
			outputs = append(outputs, out)
		}
	}
	return outputs, nil
}

// GetBalance returns the total unspent amount of the given asset.
func (r *OutputRepositoryImpl) GetBalance(
	ctx context.Context, assetID string,
) (uint64, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var balance uint64
	for _, out := range r.outputs {
		if out.AssetID == assetID && !out.IsSpent() {
			balance += out.Value
		}
	}
	return balance, nil
}

// GetUnlockedBalance returns the spendable amount of the given asset.
func (r *OutputRepositoryImpl) GetUnlockedBalance(
	ctx context.Context, assetID string,
) (uint64, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	var balance uint64
	for _, out := range r.outputs {
		if out.AssetID == assetID && !out.IsSpent() && !out.IsLocked() {
			balance += out.Value
		}
	}
	return balance, nil
}

// GetOutput returns the output with the given key.
func (r *OutputRepositoryImpl) GetOutput(
	ctx context.Context, key domain.OutputKey,
) (*domain.Output, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	out, ok := r.outputs[key]
	if !ok {
		return nil, domain.ErrOutputNotFound
	}
	return &out, nil
}

// LockOutputs reserves the given outputs for the negotiation identified by
// id. The whole batch is checked before any output is touched so that a
// contended output leaves no partial reservation behind.
func (r *OutputRepositoryImpl) LockOutputs(
	ctx context.Context, keys []domain.OutputKey, id uuid.UUID,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, key := range keys {
		out, ok := r.outputs[key]
		if !ok {
			return domain.ErrOutputNotFound
		}
		if out.IsSpent() {
			return domain.ErrOutputAlreadySpent
		}
		if out.IsLocked() && out.LockedBy.String() != id.String() {
			return domain.ErrOutputsReserved
		}
	}
	for _, key := range keys {
		out := r.outputs[key]
		if err := out.Lock(&id); err != nil {
			return err
		}
		r.outputs[key] = out
	}
	return nil
}

// UnlockOutputs returns the given outputs to the spendable pool.
func (r *OutputRepositoryImpl) UnlockOutputs(
	ctx context.Context, keys []domain.OutputKey,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, key := range keys {
		out, ok := r.outputs[key]
		if !ok {
			continue
		}
		out.Unlock()
		r.outputs[key] = out
	}
	return nil
}

// SpendOutputs marks the given outputs as spent and clears their lock.
func (r *OutputRepositoryImpl) SpendOutputs(
	ctx context.Context, keys []domain.OutputKey,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, key := range keys {
		out, ok := r.outputs[key]
		if !ok {
			return domain.ErrOutputNotFound
		}
		out.Spend()
		out.Unlock()
		r.outputs[key] = out
	}
	return nil
}
