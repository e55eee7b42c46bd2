package domain

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNegotiationNotFound ...
var ErrNegotiationNotFound = errors.New("negotiation not found")

// NegotiationRepository persists the per-swap negotiation records.
type NegotiationRepository interface {
	// AddNegotiation inserts a new negotiation.
	AddNegotiation(ctx context.Context, negotiation *Negotiation) error
	// GetNegotiation returns the negotiation with the given id.
	GetNegotiation(ctx context.Context, id uuid.UUID) (*Negotiation, error)
	// GetNegotiationByProposalID returns the negotiation tracking the given
	// proposal, or nil when no negotiation references it.
	GetNegotiationByProposalID(ctx context.Context, proposalID string) (*Negotiation, error)
	// GetAllNegotiations returns every stored negotiation.
	GetAllNegotiations(ctx context.Context) ([]Negotiation, error)
	// UpdateNegotiation reads the negotiation with the given id, applies
	// updateFn to it and stores the result back atomically.
	UpdateNegotiation(
		ctx context.Context,
		id uuid.UUID,
		updateFn func(n *Negotiation) (*Negotiation, error),
	) error
}
