package application

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/reza1mahb/zano/internal/core/domain"
	"github.com/reza1mahb/zano/internal/core/ports"
	"github.com/reza1mahb/zano/pkg/coinselect"
	pkgswap "github.com/reza1mahb/zano/pkg/swap"
	"github.com/reza1mahb/zano/pkg/wallet"
)

// SwapService is one party's entrypoint to the ionic swap protocol. The same
// service acts as initiator through CreateProposal and as finalizer through
// InspectProposal and AcceptProposal.
type SwapService interface {
	// Address returns the party's public address.
	Address() string
	// SyncOutputs imports the party's confirmed outputs of the given assets
	// from the ledger view into the local output table.
	SyncOutputs(ctx context.Context, assetIDs ...string) error
	// GetBalance returns the total and unlocked balances of the given asset.
	GetBalance(ctx context.Context, assetID string) (total, unlocked uint64, err error)
	// CreateProposal reserves funds for the initiator side of the given
	// terms, builds the initiator leg and returns the encoded proposal along
	// with the id of the tracking negotiation.
	CreateProposal(
		ctx context.Context, terms pkgswap.Terms, counterpartyAddress string,
	) ([]byte, uuid.UUID, error)
	// InspectProposal decodes a proposal without reserving anything.
	InspectProposal(proposal []byte) (*pkgswap.ProposalInfo, error)
	// AcceptProposal reserves funds for the finalizer side, builds the
	// finalizer leg and merges both legs into the final transaction.
	AcceptProposal(ctx context.Context, proposal []byte) (*wallet.AtomicTransaction, error)
	// CompleteNegotiation is called by the initiator once the assembled
	// transaction hit the chain: it marks the negotiation accepted and the
	// reserved outputs spent.
	CompleteNegotiation(ctx context.Context, id uuid.UUID, txID string) error
	// AbortNegotiation rejects a pending negotiation and releases its
	// reservation.
	AbortNegotiation(ctx context.Context, id uuid.UUID) error
	// ExpireNegotiation marks a stale negotiation expired and releases its
	// reservation. Staleness is the caller's call; the core has no internal
	// timeout.
	ExpireNegotiation(ctx context.Context, id uuid.UUID) error
}

type swapService struct {
	outputRepository      domain.OutputRepository
	negotiationRepository domain.NegotiationRepository
	ledger                ports.LedgerView
	signer                *wallet.KeyPair
	feeAmount             uint64
}

// NewSwapService returns a SwapService backed by the given repositories,
// ledger view and spend key. feeAmount is the flat network fee in native
// units attached to every swap transaction.
func NewSwapService(
	outputRepository domain.OutputRepository,
	negotiationRepository domain.NegotiationRepository,
	ledger ports.LedgerView,
	signer *wallet.KeyPair,
	feeAmount uint64,
) SwapService {
	return &swapService{
		outputRepository:      outputRepository,
		negotiationRepository: negotiationRepository,
		ledger:                ledger,
		signer:                signer,
		feeAmount:             feeAmount,
	}
}

func (s *swapService) Address() string {
	return s.signer.Address()
}

func (s *swapService) SyncOutputs(ctx context.Context, assetIDs ...string) error {
	for _, assetID := range assetIDs {
		outputs := s.ledger.SpendableOutputs(s.Address(), assetID)
		if err := s.outputRepository.AddOutputs(ctx, outputs); err != nil {
			return err
		}
	}
	return nil
}

func (s *swapService) GetBalance(
	ctx context.Context, assetID string,
) (uint64, uint64, error) {
	total, err := s.outputRepository.GetBalance(ctx, assetID)
	if err != nil {
		return 0, 0, err
	}
	unlocked, err := s.outputRepository.GetUnlockedBalance(ctx, assetID)
	if err != nil {
		return 0, 0, err
	}
	return total, unlocked, nil
}

func (s *swapService) CreateProposal(
	ctx context.Context, terms pkgswap.Terms, counterpartyAddress string,
) ([]byte, uuid.UUID, error) {
	if err := terms.Validate(); err != nil {
		return nil, uuid.Nil, err
	}
	if err := s.checkAssetsActive(terms); err != nil {
		return nil, uuid.Nil, err
	}

	negotiation, err := domain.NewNegotiation(terms, counterpartyAddress)
	if err != nil {
		return nil, uuid.Nil, err
	}

	reservation, err := s.reserveFunds(
		ctx, negotiation.ID, neededFunds(terms.ToFinalizer, terms.FeePaidByA, s.feeAmount),
		terms.Mixins,
	)
	if err != nil {
		return nil, uuid.Nil, err
	}

	proposal, err := s.buildAndEncode(negotiation, reservation, terms, counterpartyAddress)
	if err != nil {
		s.releaseFunds(ctx, reservation)
		return nil, uuid.Nil, err
	}

	if err := s.negotiationRepository.AddNegotiation(ctx, negotiation); err != nil {
		s.releaseFunds(ctx, reservation)
		return nil, uuid.Nil, err
	}

	log.WithFields(log.Fields{
		"negotiation": negotiation.ID,
		"proposal":    negotiation.ProposalID,
		"outputs":     len(reservation.Outputs),
	}).Info("swap proposal created")

	return proposal, negotiation.ID, nil
}

func (s *swapService) buildAndEncode(
	negotiation *domain.Negotiation,
	reservation *domain.ReservedOutputSet,
	terms pkgswap.Terms,
	counterpartyAddress string,
) ([]byte, error) {
	fee := uint64(0)
	if terms.FeePaidByA {
		fee = s.feeAmount
	}
	leg, err := s.buildLeg(reservation, terms.ToFinalizer, counterpartyAddress, terms.Mixins, fee)
	if err != nil {
		return nil, err
	}
	if err := negotiation.LegBuilt(negotiation.ID); err != nil {
		return nil, err
	}

	proposal, err := pkgswap.Encode(pkgswap.EncodeOpts{
		Terms:            terms,
		InitiatorAddress: s.Address(),
		InitiatorLeg:     leg,
	})
	if err != nil {
		return nil, err
	}
	info, err := pkgswap.Decode(proposal)
	if err != nil {
		return nil, err
	}
	if err := negotiation.Proposed(info.ID); err != nil {
		return nil, err
	}
	return proposal, nil
}

func (s *swapService) InspectProposal(proposal []byte) (*pkgswap.ProposalInfo, error) {
	return pkgswap.Decode(proposal)
}

func (s *swapService) AcceptProposal(
	ctx context.Context, proposal []byte,
) (*wallet.AtomicTransaction, error) {
	info, err := pkgswap.Decode(proposal)
	if err != nil {
		return nil, err
	}
	if err := s.checkAssetsActive(info.Terms); err != nil {
		return nil, err
	}

	// a proposal is consumed by its first acceptance: once a live or accepted
	// negotiation tracks its id, presenting the same bytes again must fail
	// even if spare funds could back another leg
	existing, err := s.negotiationRepository.GetNegotiationByProposalID(ctx, info.ID)
	if err != nil {
		return nil, err
	}
	if existing != nil && !existing.Status.Failed {
		return nil, domain.ErrProposalAlreadyAccepted
	}

	negotiation, err := domain.NewNegotiation(info.Terms, info.InitiatorAddress)
	if err != nil {
		return nil, err
	}
	negotiation.ProposalID = info.ID

	reservation, err := s.reserveFunds(
		ctx, negotiation.ID,
		neededFunds(info.Terms.ToInitiator, !info.Terms.FeePaidByA, s.feeAmount),
		info.Terms.Mixins,
	)
	if err != nil {
		return nil, err
	}

	tx, err := s.finalizeSwap(negotiation, reservation, info)
	if err != nil {
		s.releaseFunds(ctx, reservation)
		return nil, err
	}

	if err := s.outputRepository.SpendOutputs(ctx, reservation.Keys()); err != nil {
		s.releaseFunds(ctx, reservation)
		return nil, err
	}
	if err := s.negotiationRepository.AddNegotiation(ctx, negotiation); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"negotiation": negotiation.ID,
		"proposal":    info.ID,
		"txid":        tx.TxID(),
	}).Info("swap proposal accepted")

	return tx, nil
}

func (s *swapService) finalizeSwap(
	negotiation *domain.Negotiation,
	reservation *domain.ReservedOutputSet,
	info *pkgswap.ProposalInfo,
) (*wallet.AtomicTransaction, error) {
	fee := uint64(0)
	if !info.Terms.FeePaidByA {
		fee = s.feeAmount
	}
	leg, err := s.buildLeg(
		reservation, info.Terms.ToInitiator, info.InitiatorAddress, info.Terms.Mixins, fee,
	)
	if err != nil {
		return nil, err
	}
	if err := negotiation.LegBuilt(negotiation.ID); err != nil {
		return nil, err
	}

	tx, err := wallet.Assemble(wallet.AssembleOpts{
		InitiatorLeg:       info.InitiatorLeg,
		FinalizerLeg:       leg,
		ToFinalizer:        info.Terms.ToFinalizer,
		ToInitiator:        info.Terms.ToInitiator,
		InitiatorAddress:   info.InitiatorAddress,
		FinalizerAddress:   s.Address(),
		FeePaidByInitiator: info.Terms.FeePaidByA,
		Mixins:             info.Terms.Mixins,
	})
	if err != nil {
		return nil, err
	}
	if err := negotiation.Accept(tx.TxID()); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *swapService) CompleteNegotiation(
	ctx context.Context, id uuid.UUID, txID string,
) error {
	if err := s.negotiationRepository.UpdateNegotiation(
		ctx, id,
		func(n *domain.Negotiation) (*domain.Negotiation, error) {
			if err := n.Accept(txID); err != nil {
				return nil, err
			}
			return n, nil
		},
	); err != nil {
		return err
	}

	keys, err := s.outputKeysLockedBy(ctx, id)
	if err != nil {
		return err
	}
	if err := s.outputRepository.SpendOutputs(ctx, keys); err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"negotiation": id,
		"txid":        txID,
	}).Info("swap negotiation completed")
	return nil
}

func (s *swapService) AbortNegotiation(ctx context.Context, id uuid.UUID) error {
	return s.closeNegotiation(ctx, id, func(n *domain.Negotiation) error {
		return n.Reject()
	}, "swap negotiation rejected")
}

func (s *swapService) ExpireNegotiation(ctx context.Context, id uuid.UUID) error {
	return s.closeNegotiation(ctx, id, func(n *domain.Negotiation) error {
		return n.Expire()
	}, "swap negotiation expired")
}

func (s *swapService) closeNegotiation(
	ctx context.Context, id uuid.UUID,
	transition func(n *domain.Negotiation) error, msg string,
) error {
	if err := s.negotiationRepository.UpdateNegotiation(
		ctx, id,
		func(n *domain.Negotiation) (*domain.Negotiation, error) {
			if err := transition(n); err != nil {
				return nil, err
			}
			return n, nil
		},
	); err != nil {
		return err
	}

	keys, err := s.outputKeysLockedBy(ctx, id)
	if err != nil {
		return err
	}
	if err := s.outputRepository.UnlockOutputs(ctx, keys); err != nil {
		return err
	}

	log.WithField("negotiation", id).Info(msg)
	return nil
}

// reserveFunds selects and locks outputs covering the needed amount of every
// asset. Locking is all or nothing: a failure on any asset leaves no output
// locked.
func (s *swapService) reserveFunds(
	ctx context.Context, negotiationID uuid.UUID,
	needed map[string]uint64, mixins uint64,
) (*domain.ReservedOutputSet, error) {
	assets := make([]string, 0, len(needed))
	for asset := range needed {
		assets = append(assets, asset)
	}
	sort.Strings(assets)

	reserved := make([]domain.Output, 0)
	for _, asset := range assets {
		available, err := s.outputRepository.GetAvailableOutputsForAsset(ctx, asset)
		if err != nil {
			return nil, err
		}
		coins := make([]coinselect.Coin, 0, len(available))
		byKey := make(map[domain.OutputKey]domain.Output)
		for i := range available {
			coins = append(coins, available[i].ToCoin())
			byKey[available[i].Key()] = available[i]
		}

		selected, _, err := coinselect.SelectCoins(coins, needed[asset], asset, mixins)
		if err != nil {
			if errors.Is(err, coinselect.ErrInsufficientFunds) {
				return nil, domain.ErrInsufficientFunds
			}
			return nil, err
		}
		for _, coin := range selected {
			reserved = append(reserved, byKey[domain.OutputKey{TxID: coin.TxID, VOut: coin.VOut}])
		}
	}

	reservation := &domain.ReservedOutputSet{ID: negotiationID, Outputs: reserved}
	if err := s.outputRepository.LockOutputs(ctx, reservation.Keys(), negotiationID); err != nil {
		return nil, err
	}
	return reservation, nil
}

func (s *swapService) releaseFunds(ctx context.Context, reservation *domain.ReservedOutputSet) {
	if err := s.outputRepository.UnlockOutputs(ctx, reservation.Keys()); err != nil {
		log.WithError(err).WithField(
			"reservation", reservation.ID,
		).Error("failed to release reserved outputs")
	}
}

func (s *swapService) buildLeg(
	reservation *domain.ReservedOutputSet,
	destinations []wallet.AssetFunds,
	recipientAddress string,
	mixins, fee uint64,
) (*wallet.Leg, error) {
	outputs := make([]wallet.SpendableOutput, 0, len(reservation.Outputs))
	for i := range reservation.Outputs {
		out := reservation.Outputs[i]
		outputs = append(outputs, wallet.SpendableOutput{
			Ref:    out.Ref(),
			Asset:  out.AssetID,
			Value:  out.Value,
			Decoys: s.ledger.DecoyRefs(out.AssetID, mixins, out.Ref()),
		})
	}

	dests := make([]wallet.TxOutput, 0, len(destinations))
	for _, funds := range destinations {
		dests = append(dests, wallet.TxOutput{
			Address: recipientAddress,
			Asset:   funds.Asset,
			Value:   funds.Amount,
		})
	}

	return wallet.BuildLeg(wallet.BuildLegOpts{
		Outputs:       outputs,
		Destinations:  dests,
		ChangeAddress: s.Address(),
		Mixins:        mixins,
		Fee:           fee,
		Signer:        s.signer,
	})
}

func (s *swapService) checkAssetsActive(terms pkgswap.Terms) error {
	height := s.ledger.CurrentHeight()
	for _, funds := range append(
		append([]wallet.AssetFunds{}, terms.ToFinalizer...), terms.ToInitiator...,
	) {
		if !s.ledger.IsAssetActive(funds.Asset, height) {
			return domain.ErrAssetNotActive
		}
	}
	return nil
}

func (s *swapService) outputKeysLockedBy(
	ctx context.Context, id uuid.UUID,
) ([]domain.OutputKey, error) {
	outputs, err := s.outputRepository.GetAllOutputs(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]domain.OutputKey, 0)
	for i := range outputs {
		if outputs[i].LockedBy != nil && *outputs[i].LockedBy == id {
			keys = append(keys, outputs[i].Key())
		}
	}
	return keys, nil
}

// neededFunds sums, per asset, what one side of the swap must cover: the
// agreed amounts plus, for the fee paying party, the network fee in native
// coin.
func neededFunds(funds []wallet.AssetFunds, paysFee bool, feeAmount uint64) map[string]uint64 {
	needed := make(map[string]uint64)
	for _, f := range funds {
		needed[f.Asset] += f.Amount
	}
	if paysFee {
		needed[wallet.NativeAsset] += feeAmount
	}
	return needed
}
