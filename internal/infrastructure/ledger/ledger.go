// Package ledger provides an in-memory implementation of the wallet's
// read-only ledger view, with just enough chain behavior (heights, asset
// activation, decoy pools, output confirmation) to exercise swap negotiations
// end to end without a real node.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/reza1mahb/zano/internal/core/domain"
	"github.com/reza1mahb/zano/pkg/wallet"
)

// decoyPoolSize is how many decoy refs get minted per registered asset.
const decoyPoolSize = 64

// defaultRingCapacity is assigned to every confirmed output: how many decoys
// its history can be mixed with.
const defaultRingCapacity = 32

type Ledger struct {
	mu                sync.RWMutex
	height            uint64
	activationHeights map[string]uint64
	outputs           []domain.Output
	decoys            map[string][]wallet.OutputRef
	txCounter         uint64
}

// New returns an empty ledger at height 1 with only the native asset active.
func New() *Ledger {
	l := &Ledger{
		height:            1,
		activationHeights: map[string]uint64{wallet.NativeAsset: 0},
		decoys:            map[string][]wallet.OutputRef{},
	}
	l.mintDecoys(wallet.NativeAsset)
	return l
}

// RegisterAsset makes the given asset known to the chain, active from the
// given height on.
func (l *Ledger) RegisterAsset(assetID string, activationHeight uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.activationHeights[assetID]; ok {
		return
	}
	l.activationHeights[assetID] = activationHeight
	l.mintDecoys(assetID)
}

// Fund credits the given address with a confirmed output of the given asset.
func (l *Ledger) Fund(address, assetID string, amount uint64) domain.Output {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := domain.Output{
		TxID:         l.nextTxID(),
		VOut:         0,
		Value:        amount,
		AssetID:      assetID,
		Address:      address,
		RingCapacity: defaultRingCapacity,
	}
	l.outputs = append(l.outputs, out)
	return out
}

// MineBlocks advances the chain tip by n blocks.
func (l *Ledger) MineBlocks(n uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.height += n
}

// Confirm applies an assembled swap transaction: its destination and change
// outputs become spendable by their recipients and the chain advances one
// block. Broadcasting and consensus validation are out of the swap core's
// scope; this is the minimal bookkeeping tests and demos need after an
// accepted swap.
func (l *Ledger) Confirm(tx *wallet.AtomicTransaction) {
	l.mu.Lock()
	defer l.mu.Unlock()

	txID := tx.TxID()
	for vout, out := range tx.Outputs {
		l.outputs = append(l.outputs, domain.Output{
			TxID:         txID,
			VOut:         uint32(vout),
			Value:        out.Value,
			AssetID:      out.Asset,
			Address:      out.Address,
			RingCapacity: defaultRingCapacity,
		})
	}
	l.height++
}

// CurrentHeight returns the height of the chain tip.
func (l *Ledger) CurrentHeight() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.height
}

// IsAssetActive returns whether the asset is known and enabled at the given
// height.
func (l *Ledger) IsAssetActive(assetID string, height uint64) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	activation, ok := l.activationHeights[assetID]
	return ok && height >= activation
}

// SpendableOutputs returns the confirmed outputs of the given asset credited
// to the given address.
func (l *Ledger) SpendableOutputs(address, assetID string) []domain.Output {
	l.mu.RLock()
	defer l.mu.RUnlock()

	outputs := make([]domain.Output, 0)
	for _, out := range l.outputs {
		if out.Address == address && out.AssetID == assetID {
			outputs = append(outputs, out)
		}
	}
	return outputs
}

// DecoyRefs returns up to n decoy references of the given asset, never
// including the excluded one.
func (l *Ledger) DecoyRefs(
	assetID string, n uint64, exclude wallet.OutputRef,
) []wallet.OutputRef {
	l.mu.RLock()
	defer l.mu.RUnlock()

	refs := make([]wallet.OutputRef, 0, n)
	for _, ref := range l.decoys[assetID] {
		if uint64(len(refs)) == n {
			break
		}
		if ref == exclude {
			continue
		}
		refs = append(refs, ref)
	}
	return refs
}

func (l *Ledger) mintDecoys(assetID string) {
	refs := make([]wallet.OutputRef, 0, decoyPoolSize)
	for i := 0; i < decoyPoolSize; i++ {
		refs = append(refs, wallet.OutputRef{TxID: l.nextTxID(), VOut: 0})
	}
	l.decoys[assetID] = refs
}

func (l *Ledger) nextTxID() string {
	l.txCounter++
	hash := sha256.Sum256([]byte(fmt.Sprintf("ledger-tx-%d", l.txCounter)))
	return hex.EncodeToString(hash[:])
}
