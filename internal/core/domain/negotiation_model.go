package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/reza1mahb/zano/pkg/swap"
)

var (
	// ErrMustBeDrafted ...
	ErrMustBeDrafted = errors.New(
		"negotiation must be in drafted state for building a leg",
	)
	// ErrMustBeLegBuilt ...
	ErrMustBeLegBuilt = errors.New(
		"negotiation must have a built leg for encoding a proposal",
	)
	// ErrMustBePending ...
	ErrMustBePending = errors.New(
		"negotiation must have a built leg or a sent proposal to reach a terminal state",
	)
	// ErrIsTerminal ...
	ErrIsTerminal = errors.New("negotiation already reached a terminal state")
)

// StatusCode enumerates the stages of a swap negotiation.
type StatusCode int

const (
	// StatusCodeDrafted means the terms exist but no funds are committed yet.
	StatusCodeDrafted StatusCode = iota
	// StatusCodeLegBuilt means the party's own leg is built and its outputs
	// are reserved.
	StatusCodeLegBuilt
	// StatusCodeProposed means the proposal left for the counterparty.
	StatusCodeProposed
	// StatusCodeAccepted means both legs were merged into the final
	// transaction.
	StatusCodeAccepted
)

// Status represents the different statuses that a swap negotiation can
// assume.
type Status struct {
	Code    StatusCode
	Failed  bool
	Expired bool
}

var (
	// DraftedStatus ...
	DraftedStatus = Status{Code: StatusCodeDrafted}
	// LegBuiltStatus ...
	LegBuiltStatus = Status{Code: StatusCodeLegBuilt}
	// ProposedStatus ...
	ProposedStatus = Status{Code: StatusCodeProposed}
	// AcceptedStatus ...
	AcceptedStatus = Status{Code: StatusCodeAccepted}
	// RejectedStatus ...
	RejectedStatus = Status{Code: StatusCodeProposed, Failed: true}
	// ExpiredStatus ...
	ExpiredStatus = Status{Code: StatusCodeProposed, Expired: true}
)

// IsTerminal returns whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s.Code == StatusCodeAccepted || s.Failed || s.Expired
}

// Timestamp collects the unix times at which the negotiation changed stage.
type Timestamp struct {
	Drafted  uint64
	LegBuilt uint64
	Proposed uint64
	Closed   uint64
}

// Negotiation is one swap seen from one party's side, from drafting the terms
// to the terminal accepted, rejected or expired state. It records the
// reservation held since the leg was built so that every terminal transition
// can release it.
type Negotiation struct {
	ID                  uuid.UUID
	ProposalID          string
	Terms               swap.Terms
	CounterpartyAddress string
	ReservationID       *uuid.UUID
	Status              Status
	TxID                string
	Timestamp           Timestamp
}

// NewNegotiation returns a drafted negotiation for the given terms.
func NewNegotiation(terms swap.Terms, counterpartyAddress string) (*Negotiation, error) {
	if err := terms.Validate(); err != nil {
		return nil, err
	}
	return &Negotiation{
		ID:                  uuid.New(),
		Terms:               terms,
		CounterpartyAddress: counterpartyAddress,
		Status:              DraftedStatus,
		Timestamp:           Timestamp{Drafted: uint64(time.Now().Unix())},
	}, nil
}

// LegBuilt records that the party's own leg exists and which reservation
// backs it. The negotiation must be in drafted state.
func (n *Negotiation) LegBuilt(reservationID uuid.UUID) error {
	if n.Status != DraftedStatus {
		return ErrMustBeDrafted
	}
	n.ReservationID = &reservationID
	n.Status = LegBuiltStatus
	n.Timestamp.LegBuilt = uint64(time.Now().Unix())
	return nil
}

// Proposed records that the encoded proposal was handed over for transport.
func (n *Negotiation) Proposed(proposalID string) error {
	if n.Status != LegBuiltStatus {
		return ErrMustBeLegBuilt
	}
	n.ProposalID = proposalID
	n.Status = ProposedStatus
	n.Timestamp.Proposed = uint64(time.Now().Unix())
	return nil
}

// Accept is terminal: both legs were merged into the transaction identified
// by txID. The initiator accepts from the proposed state, the finalizer right
// after building its own leg.
func (n *Negotiation) Accept(txID string) error {
	if n.Status.IsTerminal() {
		return ErrIsTerminal
	}
	if n.Status != LegBuiltStatus && n.Status != ProposedStatus {
		return ErrMustBePending
	}
	n.TxID = txID
	n.Status = AcceptedStatus
	n.Timestamp.Closed = uint64(time.Now().Unix())
	return nil
}

// Reject is terminal; the caller must release the negotiation's reservation.
func (n *Negotiation) Reject() error {
	if n.Status.IsTerminal() {
		return ErrIsTerminal
	}
	n.Status = RejectedStatus
	n.Timestamp.Closed = uint64(time.Now().Unix())
	return nil
}

// Expire is terminal; the caller decides when a negotiation has gone stale
// and must release its reservation.
func (n *Negotiation) Expire() error {
	if n.Status.IsTerminal() {
		return ErrIsTerminal
	}
	if n.Status != LegBuiltStatus && n.Status != ProposedStatus {
		return ErrMustBePending
	}
	n.Status = ExpiredStatus
	n.Timestamp.Closed = uint64(time.Now().Unix())
	return nil
}

// IsAccepted returns whether the negotiation ended with an assembled
// transaction.
func (n *Negotiation) IsAccepted() bool {
	return n.Status == AcceptedStatus
}
