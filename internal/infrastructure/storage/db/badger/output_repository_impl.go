package dbbadger

import (
	"context"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/reza1mahb/zano/internal/core/domain"
)

type outputRepositoryImpl struct {
	db *DbManager
}

// NewOutputRepositoryImpl returns a badger backed OutputRepository.
func NewOutputRepositoryImpl(db *DbManager) domain.OutputRepository {
	return outputRepositoryImpl{db: db}
}

func outputKeyString(key domain.OutputKey) string {
	return fmt.Sprintf("%s:%d", key.TxID, key.VOut)
}

func (r outputRepositoryImpl) AddOutputs(
	ctx context.Context, outputs []domain.Output,
) error {
	return r.db.OutputStore.Badger().Update(func(tx *badger.Txn) error {
		for i := range outputs {
			out := outputs[i]
			err := r.db.OutputStore.TxInsert(tx, outputKeyString(out.Key()), &out)
			if err != nil && err != badgerhold.ErrKeyExists {
				return err
			}
		}
		return nil
	})
}

func (r outputRepositoryImpl) GetAllOutputs(ctx context.Context) ([]domain.Output, error) {
	var outputs []domain.Output
	if err := r.db.OutputStore.Find(&outputs, nil); err != nil {
		return nil, err
	}
	return outputs, nil
}

func (r outputRepositoryImpl) GetAvailableOutputsForAsset(
	ctx context.Context, assetID string,
) ([]domain.Output, error) {
	query := badgerhold.Where("AssetID").Eq(assetID).
		And("Spent").Eq(false).
		And("Locked").Eq(false)

	var outputs []domain.Output
	if err := r.db.OutputStore.Find(&outputs, query); err != nil {
		return nil, err
	}
	return outputs, nil
}

func (r outputRepositoryImpl) GetBalance(
	ctx context.Context, assetID string,
) (uint64, error) {
	query := badgerhold.Where("AssetID").Eq(assetID).And("Spent").Eq(false)
	return r.sumOutputs(query)
}

func (r outputRepositoryImpl) GetUnlockedBalance(
	ctx context.Context, assetID string,
) (uint64, error) {
	query := badgerhold.Where("AssetID").Eq(assetID).
		And("Spent").Eq(false).
		And("Locked").Eq(false)
	return r.sumOutputs(query)
}

func (r outputRepositoryImpl) GetOutput(
	ctx context.Context, key domain.OutputKey,
) (*domain.Output, error) {
	var out domain.Output
	if err := r.db.OutputStore.Get(outputKeyString(key), &out); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrOutputNotFound
		}
		return nil, err
	}
	return &out, nil
}

// LockOutputs runs in a single badger transaction: either every output of
// the batch gets locked for the given negotiation or none does.
func (r outputRepositoryImpl) LockOutputs(
	ctx context.Context, keys []domain.OutputKey, id uuid.UUID,
) error {
	return r.db.OutputStore.Badger().Update(func(tx *badger.Txn) error {
		for _, key := range keys {
			var out domain.Output
			if err := r.db.OutputStore.TxGet(tx, outputKeyString(key), &out); err != nil {
				if err == badgerhold.ErrNotFound {
					return domain.ErrOutputNotFound
				}
				return err
			}
			if out.IsSpent() {
				return domain.ErrOutputAlreadySpent
			}
			if err := out.Lock(&id); err != nil {
				return err
			}
			if err := r.db.OutputStore.TxUpdate(tx, outputKeyString(key), &out); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r outputRepositoryImpl) UnlockOutputs(
	ctx context.Context, keys []domain.OutputKey,
) error {
	return r.db.OutputStore.Badger().Update(func(tx *badger.Txn) error {
		for _, key := range keys {
			var out domain.Output
			if err := r.db.OutputStore.TxGet(tx, outputKeyString(key), &out); err != nil {
				if err == badgerhold.ErrNotFound {
					continue
				}
				return err
			}
			out.Unlock()
			if err := r.db.OutputStore.TxUpdate(tx, outputKeyString(key), &out); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r outputRepositoryImpl) SpendOutputs(
	ctx context.Context, keys []domain.OutputKey,
) error {
	return r.db.OutputStore.Badger().Update(func(tx *badger.Txn) error {
		for _, key := range keys {
			var out domain.Output
			if err := r.db.OutputStore.TxGet(tx, outputKeyString(key), &out); err != nil {
				if err == badgerhold.ErrNotFound {
					return domain.ErrOutputNotFound
				}
				return err
			}
			out.Spend()
			out.Unlock()
			if err := r.db.OutputStore.TxUpdate(tx, outputKeyString(key), &out); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r outputRepositoryImpl) sumOutputs(query *badgerhold.Query) (uint64, error) {
	var outputs []domain.Output
	if err := r.db.OutputStore.Find(&outputs, query); err != nil {
		return 0, err
	}
	var balance uint64
	for i := range outputs {
		balance += outputs[i].Value
	}
	return balance, nil
}
