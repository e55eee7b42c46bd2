package inmemory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/reza1mahb/zano/internal/core/domain"
)

// NegotiationRepositoryImpl represents an in memory storage for swap
// negotiations.
type NegotiationRepositoryImpl struct {
	negotiations map[uuid.UUID]domain.Negotiation
	lock         *sync.RWMutex
}

// NewNegotiationRepositoryImpl returns a new empty NegotiationRepositoryImpl.
func NewNegotiationRepositoryImpl() domain.NegotiationRepository {
	return &NegotiationRepositoryImpl{
		negotiations: map[uuid.UUID]domain.Negotiation{},
		lock:         &sync.RWMutex{},
	}
}

// AddNegotiation inserts a new negotiation.
func (r *NegotiationRepositoryImpl) AddNegotiation(
	ctx context.Context, negotiation *domain.Negotiation,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.negotiations[negotiation.ID] = *negotiation
	return nil
}

// GetNegotiation returns the negotiation with the given id.
func (r *NegotiationRepositoryImpl) GetNegotiation(
	ctx context.Context, id uuid.UUID,
) (*domain.Negotiation, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	negotiation, ok := r.negotiations[id]
	if !ok {
		return nil, domain.ErrNegotiationNotFound
	}
	return &negotiation, nil
}

// GetNegotiationByProposalID returns the negotiation tracking the given
// proposal, or nil when no negotiation references it.
func (r *NegotiationRepositoryImpl) GetNegotiationByProposalID(
	ctx context.Context, proposalID string,
) (*domain.Negotiation, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	for _, negotiation := range r.negotiations {
		if negotiation.ProposalID == proposalID {
			return &negotiation, nil
		}
	}
	return nil, nil
}

// GetAllNegotiations returns every stored negotiation.
func (r *NegotiationRepositoryImpl) GetAllNegotiations(
	ctx context.Context,
) ([]domain.Negotiation, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	negotiations := make([]domain.Negotiation, 0, len(r.negotiations))
	for _, negotiation := range r.negotiations {
		negotiations = append(negotiations, negotiation)
	}
	return negotiations, nil
}

// UpdateNegotiation applies updateFn to the stored negotiation atomically.
func (r *NegotiationRepositoryImpl) UpdateNegotiation(
	ctx context.Context, id uuid.UUID,
	updateFn func(n *domain.Negotiation) (*domain.Negotiation, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	negotiation, ok := r.negotiations[id]
	if !ok {
		return domain.ErrNegotiationNotFound
	}
	updated, err := updateFn(&negotiation)
	if err != nil {
		return err
	}
	r.negotiations[id] = *updated
	return nil
}
