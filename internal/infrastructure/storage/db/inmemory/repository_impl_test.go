package inmemory_test

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/reza1mahb/zano/internal/core/domain"
	"github.com/reza1mahb/zano/internal/infrastructure/storage/db/inmemory"
	"github.com/reza1mahb/zano/pkg/swap"
	"github.com/reza1mahb/zano/pkg/wallet"
)

var (
	ctx    = context.Background()
	assetX = strings.Repeat("aa", 32)
)

func newTestOutputs(n int) []domain.Output {
	outputs := make([]domain.Output, 0, n)
	for i := 0; i < n; i++ {
		outputs = append(outputs, domain.Output{
			TxID:         fmt.Sprintf("txid%d", i),
			VOut:         0,
			Value:        uint64(10 * (i + 1)),
			AssetID:      assetX,
			Address:      strings.Repeat("ab", 32),
			RingCapacity: 16,
		})
	}
	return outputs
}

func keysOf(outputs []domain.Output) []domain.OutputKey {
	keys := make([]domain.OutputKey, 0, len(outputs))
	for i := range outputs {
		keys = append(keys, outputs[i].Key())
	}
	return keys
}

func TestOutputRepository(t *testing.T) {
	repo := inmemory.NewOutputRepositoryImpl()
	outputs := newTestOutputs(3)
	require.NoError(t, repo.AddOutputs(ctx, outputs))

	t.Run("adding twice is idempotent", func(t *testing.T) {
		require.NoError(t, repo.AddOutputs(ctx, outputs))
		all, err := repo.GetAllOutputs(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
	})

	t.Run("get output", func(t *testing.T) {
		out, err := repo.GetOutput(ctx, outputs[0].Key())
		require.NoError(t, err)
		require.Equal(t, outputs[0], *out)

		out, err = repo.GetOutput(ctx, domain.OutputKey{TxID: "missing"})
		require.ErrorIs(t, err, domain.ErrOutputNotFound)
		require.Nil(t, out)
	})

	t.Run("balances", func(t *testing.T) {
		balance, err := repo.GetBalance(ctx, assetX)
		require.NoError(t, err)
		require.Equal(t, uint64(60), balance)

		unlocked, err := repo.GetUnlockedBalance(ctx, assetX)
		require.NoError(t, err)
		require.Equal(t, uint64(60), unlocked)
	})

	negotiationID := uuid.New()

	t.Run("lock", func(t *testing.T) {
		require.NoError(
			t, repo.LockOutputs(ctx, keysOf(outputs[:2]), negotiationID),
		)

		available, err := repo.GetAvailableOutputsForAsset(ctx, assetX)
		require.NoError(t, err)
		require.Len(t, available, 1)

		unlocked, err := repo.GetUnlockedBalance(ctx, assetX)
		require.NoError(t, err)
		require.Equal(t, uint64(30), unlocked)

		// total balance counts locked outputs
		balance, err := repo.GetBalance(ctx, assetX)
		require.NoError(t, err)
		require.Equal(t, uint64(60), balance)
	})

	t.Run("contended lock leaves no partial reservation", func(t *testing.T) {
		err := repo.LockOutputs(
			ctx, []domain.OutputKey{outputs[2].Key(), outputs[0].Key()}, uuid.New(),
		)
		require.ErrorIs(t, err, domain.ErrOutputsReserved)

		out, err := repo.GetOutput(ctx, outputs[2].Key())
		require.NoError(t, err)
		require.False(t, out.IsLocked())
	})

	t.Run("relock by owner", func(t *testing.T) {
		require.NoError(
			t, repo.LockOutputs(ctx, keysOf(outputs[:2]), negotiationID),
		)
	})

	t.Run("spend clears the lock", func(t *testing.T) {
		require.NoError(t, repo.SpendOutputs(ctx, keysOf(outputs[:2])))

		out, err := repo.GetOutput(ctx, outputs[0].Key())
		require.NoError(t, err)
		require.True(t, out.IsSpent())
		require.False(t, out.IsLocked())

		balance, err := repo.GetBalance(ctx, assetX)
		require.NoError(t, err)
		require.Equal(t, uint64(30), balance)

		err = repo.LockOutputs(ctx, keysOf(outputs[:1]), uuid.New())
		require.ErrorIs(t, err, domain.ErrOutputAlreadySpent)
	})

	t.Run("unlock is idempotent", func(t *testing.T) {
		keys := keysOf(outputs[2:])
		require.NoError(t, repo.LockOutputs(ctx, keys, negotiationID))
		require.NoError(t, repo.UnlockOutputs(ctx, keys))
		require.NoError(t, repo.UnlockOutputs(ctx, keys))
		require.NoError(
			t, repo.UnlockOutputs(ctx, []domain.OutputKey{{TxID: "missing"}}),
		)

		unlocked, err := repo.GetUnlockedBalance(ctx, assetX)
		require.NoError(t, err)
		require.Equal(t, uint64(30), unlocked)
	})
}

func TestNegotiationRepository(t *testing.T) {
	repo := inmemory.NewNegotiationRepositoryImpl()

	terms := swap.Terms{
		ToFinalizer: []wallet.AssetFunds{{Asset: assetX, Amount: 30}},
		ToInitiator: []wallet.AssetFunds{{Asset: wallet.NativeAsset, Amount: 40}},
		Mixins:      3,
	}
	negotiation, err := domain.NewNegotiation(terms, strings.Repeat("cd", 32))
	require.NoError(t, err)
	require.NoError(t, repo.AddNegotiation(ctx, negotiation))

	t.Run("get", func(t *testing.T) {
		stored, err := repo.GetNegotiation(ctx, negotiation.ID)
		require.NoError(t, err)
		require.Equal(t, *negotiation, *stored)

		stored, err = repo.GetNegotiation(ctx, uuid.New())
		require.ErrorIs(t, err, domain.ErrNegotiationNotFound)
		require.Nil(t, stored)
	})

	t.Run("update", func(t *testing.T) {
		reservationID := uuid.New()
		err := repo.UpdateNegotiation(
			ctx, negotiation.ID,
			func(n *domain.Negotiation) (*domain.Negotiation, error) {
				if err := n.LegBuilt(reservationID); err != nil {
					return nil, err
				}
				return n, nil
			},
		)
		require.NoError(t, err)

		stored, err := repo.GetNegotiation(ctx, negotiation.ID)
		require.NoError(t, err)
		require.Equal(t, domain.LegBuiltStatus, stored.Status)
		require.Equal(t, reservationID, *stored.ReservationID)
	})

	t.Run("update failure leaves the stored state untouched", func(t *testing.T) {
		err := repo.UpdateNegotiation(
			ctx, negotiation.ID,
			func(n *domain.Negotiation) (*domain.Negotiation, error) {
				n.Status = domain.AcceptedStatus
				return nil, domain.ErrMustBeDrafted
			},
		)
		require.ErrorIs(t, err, domain.ErrMustBeDrafted)

		stored, err := repo.GetNegotiation(ctx, negotiation.ID)
		require.NoError(t, err)
		require.Equal(t, domain.LegBuiltStatus, stored.Status)
	})

	t.Run("get by proposal id", func(t *testing.T) {
		stored, err := repo.GetNegotiationByProposalID(ctx, "unknown")
		require.NoError(t, err)
		require.Nil(t, stored)

		err = repo.UpdateNegotiation(
			ctx, negotiation.ID,
			func(n *domain.Negotiation) (*domain.Negotiation, error) {
				if err := n.Proposed("proposal1"); err != nil {
					return nil, err
				}
				return n, nil
			},
		)
		require.NoError(t, err)

		stored, err = repo.GetNegotiationByProposalID(ctx, "proposal1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.Equal(t, negotiation.ID, stored.ID)
	})

	t.Run("list", func(t *testing.T) {
		all, err := repo.GetAllNegotiations(ctx)
		require.NoError(t, err)
		require.Len(t, all, 1)
	})
}
