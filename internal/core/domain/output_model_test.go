package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/reza1mahb/zano/internal/core/domain"
)

func newTestOutput() domain.Output {
	return domain.Output{
		TxID:         "txid1",
		VOut:         2,
		Value:        100,
		AssetID:      assetX,
		Address:      counterpartyAddress,
		RingCapacity: 16,
	}
}

func TestOutputLock(t *testing.T) {
	output := newTestOutput()
	negotiationID := uuid.New()

	require.False(t, output.IsLocked())
	require.NoError(t, output.Lock(&negotiationID))
	require.True(t, output.IsLocked())
	require.Equal(t, negotiationID, *output.LockedBy)

	// same negotiation relocking is a no-op
	require.NoError(t, output.Lock(&negotiationID))

	otherID := uuid.New()
	require.ErrorIs(t, output.Lock(&otherID), domain.ErrOutputsReserved)
	require.Equal(t, negotiationID, *output.LockedBy)

	output.Unlock()
	require.False(t, output.IsLocked())
	require.Nil(t, output.LockedBy)
	require.NoError(t, output.Lock(&otherID))
}

func TestOutputSpend(t *testing.T) {
	output := newTestOutput()
	require.False(t, output.IsSpent())
	output.Spend()
	require.True(t, output.IsSpent())
}

func TestOutputKey(t *testing.T) {
	output := newTestOutput()
	key := output.Key()
	require.Equal(t, domain.OutputKey{TxID: "txid1", VOut: 2}, key)
	require.True(t, output.IsKeyEqual(key))
	require.False(t, output.IsKeyEqual(domain.OutputKey{TxID: "txid1", VOut: 3}))
}

func TestReservedOutputSet(t *testing.T) {
	nativeOutput := newTestOutput()
	nativeOutput.TxID = "txid2"
	nativeOutput.AssetID = domain.NativeAsset
	nativeOutput.Value = 555

	reservation := domain.ReservedOutputSet{
		ID:      uuid.New(),
		Outputs: []domain.Output{newTestOutput(), nativeOutput},
	}

	require.Equal(t, []domain.OutputKey{
		{TxID: "txid1", VOut: 2},
		{TxID: "txid2", VOut: 2},
	}, reservation.Keys())

	require.Equal(t, uint64(100), reservation.Total(assetX))
	require.Equal(t, uint64(555), reservation.Total(domain.NativeAsset))
	require.Zero(t, reservation.Total(strings.Repeat("ee", 32)))
}

func TestOutputConversions(t *testing.T) {
	output := newTestOutput()

	coin := output.ToCoin()
	require.Equal(t, output.TxID, coin.TxID)
	require.Equal(t, output.VOut, coin.VOut)
	require.Equal(t, output.AssetID, coin.Asset)
	require.Equal(t, output.Value, coin.Value)
	require.Equal(t, output.RingCapacity, coin.RingCapacity)

	ref := output.Ref()
	require.Equal(t, output.TxID, ref.TxID)
	require.Equal(t, output.VOut, ref.VOut)
}
