package domain

import (
	"encoding/hex"

	"github.com/reza1mahb/zano/pkg/wallet"
)

// NativeAsset is the reserved asset id denoting the network's native coin.
const NativeAsset = wallet.NativeAsset

// AssetKind is the closed set of asset types the wallet knows how to handle.
type AssetKind int

const (
	// AssetKindNative is the network's native coin.
	AssetKindNative AssetKind = iota
	// AssetKindConfidential is a user issued confidential asset.
	AssetKindConfidential
)

// AssetDetails describes an asset type: its ledger id, its kind and the
// display metadata carried by its on-chain descriptor.
type AssetDetails struct {
	AssetID   string
	Kind      AssetKind
	Ticker    string
	Precision int32
}

// Validate checks the asset descriptor against the rules of its kind.
func (a AssetDetails) Validate() error {
	if buf, err := hex.DecodeString(a.AssetID); err != nil || len(buf) != 32 {
		return ErrInvalidAssetID
	}
	switch a.Kind {
	case AssetKindNative:
		if a.AssetID != NativeAsset {
			return ErrInvalidAssetID
		}
	case AssetKindConfidential:
		if a.AssetID == NativeAsset {
			return ErrInvalidAssetID
		}
		if len(a.Ticker) <= 0 {
			return ErrNullAssetTicker
		}
	default:
		return ErrUnknownAssetKind
	}
	if a.Precision < 0 || a.Precision > 18 {
		return ErrInvalidAssetPrecision
	}
	return nil
}
