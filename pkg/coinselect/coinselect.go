// Package coinselect picks a subset of a party's own spendable outputs to
// cover a target amount of one asset.
package coinselect

import (
	"errors"
	"sort"
)

var (
	// ErrInsufficientFunds is returned when the available coins of the target
	// asset do not cover the target amount.
	ErrInsufficientFunds = errors.New(
		"total coin amount does not cover target amount",
	)
	// ErrZeroTargetAmount ...
	ErrZeroTargetAmount = errors.New("target amount must not be zero")
)

// Coin is a selectable output.
type Coin struct {
	TxID         string
	VOut         uint32
	Asset        string
	Value        uint64
	RingCapacity uint64
}

// SelectCoins performs a largest-first selection over the given coins and
// returns a subset of type targetAsset covering the targetAmount, along with
// the surplus to be returned as change. Only coins whose history supports at
// least the requested ring size are eligible, so every selected output can be
// spent behind a ring of `mixins` decoys.
func SelectCoins(
	coins []Coin,
	targetAmount uint64,
	targetAsset string,
	mixins uint64,
) (selected []Coin, change uint64, err error) {
	if targetAmount == 0 {
		return nil, 0, ErrZeroTargetAmount
	}

	eligible := make([]Coin, 0, len(coins))
	for _, coin := range coins {
		if coin.Asset == targetAsset && coin.RingCapacity >= mixins {
			eligible = append(eligible, coin)
		}
	}
	// largest first keeps the input count, and with it the leaked linkage
	// surface, as small as possible
	sort.Slice(eligible, func(i, j int) bool {
		return eligible[i].Value > eligible[j].Value
	})

	total := uint64(0)
	for _, coin := range eligible {
		selected = append(selected, coin)
		total += coin.Value
		if total >= targetAmount {
			return selected, total - targetAmount, nil
		}
	}

	return nil, 0, ErrInsufficientFunds
}
