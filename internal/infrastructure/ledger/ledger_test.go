package ledger_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reza1mahb/zano/internal/infrastructure/ledger"
	"github.com/reza1mahb/zano/pkg/wallet"
)

var (
	assetX  = strings.Repeat("aa", 32)
	address = strings.Repeat("ab", 32)
)

func TestAssetActivation(t *testing.T) {
	chain := ledger.New()
	require.Equal(t, uint64(1), chain.CurrentHeight())
	require.True(t, chain.IsAssetActive(wallet.NativeAsset, chain.CurrentHeight()))
	require.False(t, chain.IsAssetActive(assetX, chain.CurrentHeight()))

	chain.RegisterAsset(assetX, 5)
	require.False(t, chain.IsAssetActive(assetX, chain.CurrentHeight()))

	chain.MineBlocks(4)
	require.Equal(t, uint64(5), chain.CurrentHeight())
	require.True(t, chain.IsAssetActive(assetX, chain.CurrentHeight()))
}

func TestFundAndSpendableOutputs(t *testing.T) {
	chain := ledger.New()
	chain.RegisterAsset(assetX, 1)

	out := chain.Fund(address, assetX, 100)
	require.Equal(t, address, out.Address)
	require.Equal(t, uint64(100), out.Value)

	outputs := chain.SpendableOutputs(address, assetX)
	require.Len(t, outputs, 1)
	require.Equal(t, out, outputs[0])

	require.Empty(t, chain.SpendableOutputs(address, wallet.NativeAsset))
	require.Empty(t, chain.SpendableOutputs(strings.Repeat("ba", 32), assetX))
}

func TestConfirmCreditsTransactionOutputs(t *testing.T) {
	chain := ledger.New()
	height := chain.CurrentHeight()

	tx := &wallet.AtomicTransaction{
		Outputs: []wallet.TxOutput{
			{Address: address, Asset: wallet.NativeAsset, Value: 40},
			{Address: address, Asset: wallet.NativeAsset, Value: 60},
		},
	}
	chain.Confirm(tx)
	require.Equal(t, height+1, chain.CurrentHeight())

	outputs := chain.SpendableOutputs(address, wallet.NativeAsset)
	require.Len(t, outputs, 2)
	require.Equal(t, tx.TxID(), outputs[0].TxID)
	require.Equal(t, uint32(0), outputs[0].VOut)
	require.Equal(t, uint32(1), outputs[1].VOut)
}

func TestDecoyRefs(t *testing.T) {
	chain := ledger.New()
	chain.RegisterAsset(assetX, 1)

	refs := chain.DecoyRefs(assetX, 10, wallet.OutputRef{})
	require.Len(t, refs, 10)

	// the excluded ref never shows up even if it sits in the pool
	excluded := refs[0]
	refs = chain.DecoyRefs(assetX, 10, excluded)
	require.Len(t, refs, 10)
	require.NotContains(t, refs, excluded)

	require.Empty(t, chain.DecoyRefs(strings.Repeat("cc", 32), 10, wallet.OutputRef{}))
}
