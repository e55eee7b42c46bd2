package ports

import (
	"github.com/reza1mahb/zano/internal/core/domain"
	"github.com/reza1mahb/zano/pkg/wallet"
)

// LedgerView is the wallet's read-only window on the ledger. It is consumed,
// never implemented, by the swap core: consensus, block production and relay
// all live behind it.
type LedgerView interface {
	// CurrentHeight returns the height of the chain tip.
	CurrentHeight() uint64
	// IsAssetActive returns whether the given asset type is enabled at the
	// given height, according to the chain's activation rules.
	IsAssetActive(assetID string, height uint64) bool
	// SpendableOutputs returns the party's confirmed outputs of the given
	// asset as known by the ledger.
	SpendableOutputs(address, assetID string) []domain.Output
	// DecoyRefs returns up to n output references of the given asset usable
	// as ring decoys, never including the excluded one.
	DecoyRefs(assetID string, n uint64, exclude wallet.OutputRef) []wallet.OutputRef
}
