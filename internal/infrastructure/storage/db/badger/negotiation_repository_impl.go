package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/google/uuid"
	"github.com/timshannon/badgerhold/v4"

	"github.com/reza1mahb/zano/internal/core/domain"
)

type negotiationRepositoryImpl struct {
	db *DbManager
}

// NewNegotiationRepositoryImpl returns a badger backed NegotiationRepository.
func NewNegotiationRepositoryImpl(db *DbManager) domain.NegotiationRepository {
	return negotiationRepositoryImpl{db: db}
}

func (r negotiationRepositoryImpl) AddNegotiation(
	ctx context.Context, negotiation *domain.Negotiation,
) error {
	err := r.db.NegotiationStore.Insert(negotiation.ID.String(), negotiation)
	if err == badgerhold.ErrKeyExists {
		return r.db.NegotiationStore.Update(negotiation.ID.String(), negotiation)
	}
	return err
}

func (r negotiationRepositoryImpl) GetNegotiation(
	ctx context.Context, id uuid.UUID,
) (*domain.Negotiation, error) {
	var negotiation domain.Negotiation
	if err := r.db.NegotiationStore.Get(id.String(), &negotiation); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, domain.ErrNegotiationNotFound
		}
		return nil, err
	}
	return &negotiation, nil
}

func (r negotiationRepositoryImpl) GetNegotiationByProposalID(
	ctx context.Context, proposalID string,
) (*domain.Negotiation, error) {
	query := badgerhold.Where("ProposalID").Eq(proposalID)

	var negotiations []domain.Negotiation
	if err := r.db.NegotiationStore.Find(&negotiations, query); err != nil {
		return nil, err
	}
	if len(negotiations) <= 0 {
		return nil, nil
	}
	return &negotiations[0], nil
}

func (r negotiationRepositoryImpl) GetAllNegotiations(
	ctx context.Context,
) ([]domain.Negotiation, error) {
	var negotiations []domain.Negotiation
	if err := r.db.NegotiationStore.Find(&negotiations, nil); err != nil {
		return nil, err
	}
	return negotiations, nil
}

func (r negotiationRepositoryImpl) UpdateNegotiation(
	ctx context.Context, id uuid.UUID,
	updateFn func(n *domain.Negotiation) (*domain.Negotiation, error),
) error {
	return r.db.NegotiationStore.Badger().Update(func(tx *badger.Txn) error {
		var negotiation domain.Negotiation
		if err := r.db.NegotiationStore.TxGet(tx, id.String(), &negotiation); err != nil {
			if err == badgerhold.ErrNotFound {
				return domain.ErrNegotiationNotFound
			}
			return err
		}
		updated, err := updateFn(&negotiation)
		if err != nil {
			return err
		}
		return r.db.NegotiationStore.TxUpdate(tx, id.String(), updated)
	})
}
