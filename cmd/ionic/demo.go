package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/reza1mahb/zano/internal/config"
	"github.com/reza1mahb/zano/internal/core/application"
	"github.com/reza1mahb/zano/internal/core/domain"
	"github.com/reza1mahb/zano/internal/infrastructure/ledger"
	dbbadger "github.com/reza1mahb/zano/internal/infrastructure/storage/db/badger"
	"github.com/reza1mahb/zano/internal/infrastructure/storage/db/inmemory"
	"github.com/reza1mahb/zano/pkg/mathutil"
	pkgswap "github.com/reza1mahb/zano/pkg/swap"
	"github.com/reza1mahb/zano/pkg/wallet"
)

var demo = cli.Command{
	Name:   "demo",
	Usage:  "run a full two-party ionic swap against a local in-memory ledger",
	Action: demoAction,
}

func demoAction(ctx *cli.Context) error {
	cctx := context.Background()
	mixins := config.GetUint64(config.DefaultMixinsKey)
	fee := config.GetUint64(config.FeeAmountKey)

	chain := ledger.New()

	assetID := randomAssetID()
	chain.RegisterAsset(assetID, 1)

	// demo state is throwaway: each run starts from a wiped db folder
	dbDir := filepath.Join(config.GetString(config.DatadirKey), config.DbLocation)
	if err := os.RemoveAll(dbDir); err != nil {
		return err
	}

	alice, err := newParty(chain, fee, filepath.Join(dbDir, "alice"))
	if err != nil {
		return err
	}
	bob, err := newParty(chain, fee, filepath.Join(dbDir, "bob"))
	if err != nil {
		return err
	}

	// 1 native coin and 1M asset units for Alice, 1 native coin for Bob
	coin := uint64(1000000000000)
	chain.Fund(alice.Address(), wallet.NativeAsset, coin)
	chain.Fund(alice.Address(), assetID, 1000000)
	chain.Fund(bob.Address(), wallet.NativeAsset, coin)
	chain.MineBlocks(1)

	if err := alice.SyncOutputs(cctx, wallet.NativeAsset, assetID); err != nil {
		return err
	}
	if err := bob.SyncOutputs(cctx, wallet.NativeAsset, assetID); err != nil {
		return err
	}

	// Alice trades 10 asset units against half a native coin, paying the fee
	terms := pkgswap.Terms{
		ToFinalizer: []wallet.AssetFunds{{Asset: assetID, Amount: 10}},
		ToInitiator: []wallet.AssetFunds{{Asset: wallet.NativeAsset, Amount: coin / 2}},
		FeePaidByA:  true,
		Mixins:      mixins,
	}

	proposal, negotiationID, err := alice.CreateProposal(cctx, terms, bob.Address())
	if err != nil {
		return err
	}
	fmt.Printf("proposal (%d bytes):\n%s\n\n", len(proposal), proposal)

	info, err := bob.InspectProposal(proposal)
	if err != nil {
		return err
	}
	if !pkgswap.TermsMatch(info.Terms, terms) {
		return fmt.Errorf("decoded terms do not match the agreed ones")
	}

	tx, err := bob.AcceptProposal(cctx, proposal)
	if err != nil {
		return err
	}
	fmt.Printf("assembled transaction %s: %d inputs, %d outputs, fee %s\n\n",
		tx.TxID(), len(tx.Inputs), len(tx.Outputs),
		mathutil.FormatAmount(tx.Fee, nativePrecision),
	)

	chain.Confirm(tx)
	if err := alice.CompleteNegotiation(cctx, negotiationID, tx.TxID()); err != nil {
		return err
	}
	if err := alice.SyncOutputs(cctx, wallet.NativeAsset, assetID); err != nil {
		return err
	}
	if err := bob.SyncOutputs(cctx, wallet.NativeAsset, assetID); err != nil {
		return err
	}

	for name, party := range map[string]application.SwapService{
		"alice": alice, "bob": bob,
	} {
		native, _, err := party.GetBalance(cctx, wallet.NativeAsset)
		if err != nil {
			return err
		}
		asset, _, err := party.GetBalance(cctx, assetID)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s native, %d asset units\n",
			name, mathutil.FormatAmount(native, nativePrecision), asset)
	}
	return nil
}

func newParty(
	chain *ledger.Ledger, fee uint64, dbDir string,
) (application.SwapService, error) {
	keyPair, err := wallet.NewKeyPair()
	if err != nil {
		return nil, err
	}

	var outputRepository domain.OutputRepository
	var negotiationRepository domain.NegotiationRepository
	switch config.GetString(config.DBTypeKey) {
	case "badger":
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return nil, err
		}
		db, err := dbbadger.NewDbManager(dbDir, nil)
		if err != nil {
			return nil, err
		}
		outputRepository = dbbadger.NewOutputRepositoryImpl(db)
		negotiationRepository = dbbadger.NewNegotiationRepositoryImpl(db)
	default:
		outputRepository = inmemory.NewOutputRepositoryImpl()
		negotiationRepository = inmemory.NewNegotiationRepositoryImpl()
	}

	return application.NewSwapService(
		outputRepository, negotiationRepository, chain, keyPair, fee,
	), nil
}

func randomAssetID() string {
	buf := make([]byte, 32)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
