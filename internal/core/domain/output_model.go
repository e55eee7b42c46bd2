package domain

import (
	"github.com/google/uuid"

	"github.com/reza1mahb/zano/pkg/coinselect"
	"github.com/reza1mahb/zano/pkg/wallet"
)

// OutputKey represents the ID of an Output, composed by the id of the
// transaction that created it and its position within that transaction.
type OutputKey struct {
	TxID string
	VOut uint32
}

// Output is the data structure representing one of the party's own spendable
// outputs, with some other information like whether it is spent/unspent or
// locked/unlocked and by which negotiation.
type Output struct {
	TxID         string
	VOut         uint32
	Value        uint64
	AssetID      string
	Address      string
	RingCapacity uint64
	Spent        bool
	Locked       bool
	LockedBy     *uuid.UUID
}

// Key returns the OutputKey of the current output.
func (o *Output) Key() OutputKey {
	return OutputKey{
		TxID: o.TxID,
		VOut: o.VOut,
	}
}

// IsKeyEqual returns whether the provided OutputKey matches that of the
// current output.
func (o *Output) IsKeyEqual(key OutputKey) bool {
	return o.TxID == key.TxID && o.VOut == key.VOut
}

// IsSpent returns whether the output is already spent.
func (o *Output) IsSpent() bool {
	return o.Spent
}

// IsLocked returns whether the output is reserved by some in-flight
// negotiation.
func (o *Output) IsLocked() bool {
	return o.Locked
}

// Lock marks the current output as reserved, referring to some negotiation by
// its UUID. Locking an output already held by the same negotiation is a
// no-op; locking one held by another negotiation fails.
func (o *Output) Lock(negotiationID *uuid.UUID) error {
	if o.IsLocked() {
		if negotiationID.String() != o.LockedBy.String() {
			return ErrOutputsReserved
		}
		return nil
	}

	o.Locked = true
	o.LockedBy = negotiationID
	return nil
}

// Unlock marks the current locked output as unlocked.
func (o *Output) Unlock() {
	o.Locked = false
	o.LockedBy = nil
}

// Spend marks the output as spent.
func (o *Output) Spend() {
	o.Spent = true
}

// ToCoin returns the current output as a selectable coin.
func (o *Output) ToCoin() coinselect.Coin {
	return coinselect.Coin{
		TxID:         o.TxID,
		VOut:         o.VOut,
		Asset:        o.AssetID,
		Value:        o.Value,
		RingCapacity: o.RingCapacity,
	}
}

// Ref returns the wire-level reference of the current output.
func (o *Output) Ref() wallet.OutputRef {
	return wallet.OutputRef{
		TxID: o.TxID,
		VOut: o.VOut,
	}
}
