package swap

import (
	"github.com/reza1mahb/zano/pkg/wallet"
)

// Terms is the economic agreement of an ionic swap: what the initiator sends
// to the finalizer, what it expects back, who pays the network fee and the
// ring size both legs must use.
type Terms struct {
	ToFinalizer []wallet.AssetFunds `json:"to_finalizer"`
	ToInitiator []wallet.AssetFunds `json:"to_initiator"`
	FeePaidByA  bool                `json:"fee_paid_by_a"`
	Mixins      uint64              `json:"mixins"`
}

// Validate checks the structural invariants of the terms: both directions are
// non empty, amounts are strictly positive and no direction names the same
// asset twice.
func (t Terms) Validate() error {
	if len(t.ToFinalizer) <= 0 || len(t.ToInitiator) <= 0 {
		return ErrEmptyTerms
	}
	for _, funds := range [][]wallet.AssetFunds{t.ToFinalizer, t.ToInitiator} {
		seen := make(map[string]struct{})
		for _, f := range funds {
			if f.Amount == 0 {
				return ErrZeroAmount
			}
			if _, ok := seen[f.Asset]; ok {
				return ErrDuplicateAsset
			}
			seen[f.Asset] = struct{}{}
		}
	}
	return nil
}

// TermsMatch reports whether two terms are exactly the same agreement. The
// codec guarantees that decoding reproduces the encoded terms bit for bit;
// whether the decoded terms are the expected ones is the caller's decision,
// made through this helper.
func TermsMatch(a, b Terms) bool {
	if a.FeePaidByA != b.FeePaidByA || a.Mixins != b.Mixins {
		return false
	}
	if !fundsEqual(a.ToFinalizer, b.ToFinalizer) {
		return false
	}
	return fundsEqual(a.ToInitiator, b.ToInitiator)
}

func fundsEqual(a, b []wallet.AssetFunds) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
