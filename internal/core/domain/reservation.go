package domain

import (
	"github.com/google/uuid"
)

// ReservedOutputSet binds a set of the party's own outputs to a single
// in-flight negotiation. It is owned exclusively by the party that created it
// and never transmitted; releasing it returns the outputs to the spendable
// pool. A single reservation may span several assets when the same leg pays
// both a swap amount and the network fee.
type ReservedOutputSet struct {
	ID      uuid.UUID
	Outputs []Output
}

// Keys returns the keys of the reserved outputs.
func (r *ReservedOutputSet) Keys() []OutputKey {
	keys := make([]OutputKey, 0, len(r.Outputs))
	for i := range r.Outputs {
		keys = append(keys, r.Outputs[i].Key())
	}
	return keys
}

// Total returns the cumulative reserved amount of the given asset.
func (r *ReservedOutputSet) Total(assetID string) uint64 {
	var total uint64
	for i := range r.Outputs {
		if r.Outputs[i].AssetID == assetID {
			total += r.Outputs[i].Value
		}
	}
	return total
}
