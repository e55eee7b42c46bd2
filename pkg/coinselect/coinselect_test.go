package coinselect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reza1mahb/zano/pkg/coinselect"
)

var (
	assetX = strings.Repeat("aa", 32)
	assetY = strings.Repeat("bb", 32)
)

func newCoins() []coinselect.Coin {
	return []coinselect.Coin{
		{TxID: "t1", VOut: 0, Asset: assetX, Value: 10, RingCapacity: 16},
		{TxID: "t2", VOut: 1, Asset: assetX, Value: 40, RingCapacity: 16},
		{TxID: "t3", VOut: 0, Asset: assetX, Value: 25, RingCapacity: 16},
		{TxID: "t4", VOut: 0, Asset: assetY, Value: 100, RingCapacity: 16},
	}
}

func TestSelectCoins(t *testing.T) {
	t.Run("largest first", func(t *testing.T) {
		selected, change, err := coinselect.SelectCoins(newCoins(), 50, assetX, 10)
		require.NoError(t, err)
		require.Len(t, selected, 2)
		require.Equal(t, "t2", selected[0].TxID)
		require.Equal(t, "t3", selected[1].TxID)
		require.Equal(t, uint64(15), change)
	})

	t.Run("exact amount no change", func(t *testing.T) {
		selected, change, err := coinselect.SelectCoins(newCoins(), 40, assetX, 10)
		require.NoError(t, err)
		require.Len(t, selected, 1)
		require.Zero(t, change)
	})

	t.Run("other assets are ignored", func(t *testing.T) {
		selected, _, err := coinselect.SelectCoins(newCoins(), 60, assetY, 10)
		require.NoError(t, err)
		require.Len(t, selected, 1)
		require.Equal(t, "t4", selected[0].TxID)
	})

	t.Run("insufficient funds", func(t *testing.T) {
		selected, change, err := coinselect.SelectCoins(newCoins(), 76, assetX, 10)
		require.ErrorIs(t, err, coinselect.ErrInsufficientFunds)
		require.Nil(t, selected)
		require.Zero(t, change)
	})

	t.Run("zero target amount", func(t *testing.T) {
		_, _, err := coinselect.SelectCoins(newCoins(), 0, assetX, 10)
		require.ErrorIs(t, err, coinselect.ErrZeroTargetAmount)
	})

	t.Run("ring capacity filter", func(t *testing.T) {
		coins := newCoins()
		// t2 cannot hide behind a 32 decoy ring, selection must route
		// around it even though it is the largest coin
		selected, change, err := coinselect.SelectCoins(coins, 30, assetX, 32)
		require.ErrorIs(t, err, coinselect.ErrInsufficientFunds)
		require.Nil(t, selected)

		coins[0].RingCapacity = 32
		coins[2].RingCapacity = 32
		selected, change, err = coinselect.SelectCoins(coins, 30, assetX, 32)
		require.NoError(t, err)
		require.Len(t, selected, 2)
		require.Equal(t, "t3", selected[0].TxID)
		require.Equal(t, "t1", selected[1].TxID)
		require.Equal(t, uint64(5), change)
	})
}
