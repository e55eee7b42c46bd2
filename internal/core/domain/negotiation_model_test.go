package domain_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/reza1mahb/zano/internal/core/domain"
	"github.com/reza1mahb/zano/pkg/swap"
	"github.com/reza1mahb/zano/pkg/wallet"
)

var (
	assetX              = strings.Repeat("aa", 32)
	counterpartyAddress = strings.Repeat("cd", 32)
)

func newTestTerms() swap.Terms {
	return swap.Terms{
		ToFinalizer: []wallet.AssetFunds{{Asset: assetX, Amount: 30}},
		ToInitiator: []wallet.AssetFunds{{Asset: wallet.NativeAsset, Amount: 40}},
		FeePaidByA:  true,
		Mixins:      3,
	}
}

func newTestNegotiation(t *testing.T) *domain.Negotiation {
	t.Helper()
	negotiation, err := domain.NewNegotiation(newTestTerms(), counterpartyAddress)
	require.NoError(t, err)
	return negotiation
}

func TestNewNegotiation(t *testing.T) {
	negotiation := newTestNegotiation(t)
	require.NotEqual(t, uuid.Nil, negotiation.ID)
	require.Equal(t, domain.DraftedStatus, negotiation.Status)
	require.Nil(t, negotiation.ReservationID)
	require.NotZero(t, negotiation.Timestamp.Drafted)
	require.False(t, negotiation.Status.IsTerminal())

	t.Run("invalid terms", func(t *testing.T) {
		terms := newTestTerms()
		terms.ToInitiator = nil
		negotiation, err := domain.NewNegotiation(terms, counterpartyAddress)
		require.ErrorIs(t, err, swap.ErrEmptyTerms)
		require.Nil(t, negotiation)
	})
}

func TestNegotiationInitiatorPath(t *testing.T) {
	negotiation := newTestNegotiation(t)
	reservationID := uuid.New()

	require.NoError(t, negotiation.LegBuilt(reservationID))
	require.Equal(t, domain.LegBuiltStatus, negotiation.Status)
	require.Equal(t, reservationID, *negotiation.ReservationID)

	require.NoError(t, negotiation.Proposed("proposal1"))
	require.Equal(t, domain.ProposedStatus, negotiation.Status)
	require.Equal(t, "proposal1", negotiation.ProposalID)

	require.NoError(t, negotiation.Accept("txid1"))
	require.True(t, negotiation.IsAccepted())
	require.True(t, negotiation.Status.IsTerminal())
	require.Equal(t, "txid1", negotiation.TxID)
	require.NotZero(t, negotiation.Timestamp.Closed)
}

func TestNegotiationFinalizerPath(t *testing.T) {
	// the finalizer assembles the transaction right after building its own
	// leg, there is no proposed stage on its side
	negotiation := newTestNegotiation(t)
	require.NoError(t, negotiation.LegBuilt(uuid.New()))
	require.NoError(t, negotiation.Accept("txid1"))
	require.True(t, negotiation.IsAccepted())
}

func TestNegotiationGuards(t *testing.T) {
	t.Run("leg built requires drafted", func(t *testing.T) {
		negotiation := newTestNegotiation(t)
		require.NoError(t, negotiation.LegBuilt(uuid.New()))
		require.ErrorIs(t, negotiation.LegBuilt(uuid.New()), domain.ErrMustBeDrafted)
	})

	t.Run("proposed requires leg built", func(t *testing.T) {
		negotiation := newTestNegotiation(t)
		require.ErrorIs(t, negotiation.Proposed("p"), domain.ErrMustBeLegBuilt)
	})

	t.Run("accept requires pending", func(t *testing.T) {
		negotiation := newTestNegotiation(t)
		require.ErrorIs(t, negotiation.Accept("tx"), domain.ErrMustBePending)
	})

	t.Run("expire requires pending", func(t *testing.T) {
		negotiation := newTestNegotiation(t)
		require.ErrorIs(t, negotiation.Expire(), domain.ErrMustBePending)
	})

	t.Run("terminal is final", func(t *testing.T) {
		negotiation := newTestNegotiation(t)
		require.NoError(t, negotiation.LegBuilt(uuid.New()))
		require.NoError(t, negotiation.Accept("tx"))

		require.ErrorIs(t, negotiation.Accept("tx2"), domain.ErrIsTerminal)
		require.ErrorIs(t, negotiation.Reject(), domain.ErrIsTerminal)
		require.ErrorIs(t, negotiation.Expire(), domain.ErrIsTerminal)
		require.Equal(t, "tx", negotiation.TxID)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		negotiation := newTestNegotiation(t)
		require.NoError(t, negotiation.LegBuilt(uuid.New()))
		require.NoError(t, negotiation.Reject())
		require.True(t, negotiation.Status.IsTerminal())
		require.False(t, negotiation.IsAccepted())
		require.ErrorIs(t, negotiation.Accept("tx"), domain.ErrIsTerminal)
	})

	t.Run("expired is terminal", func(t *testing.T) {
		negotiation := newTestNegotiation(t)
		require.NoError(t, negotiation.LegBuilt(uuid.New()))
		require.NoError(t, negotiation.Proposed("p"))
		require.NoError(t, negotiation.Expire())
		require.Equal(t, domain.ExpiredStatus, negotiation.Status)
		require.ErrorIs(t, negotiation.Accept("tx"), domain.ErrIsTerminal)
	})
}
