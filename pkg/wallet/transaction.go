package wallet

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
)

// AssetFunds pairs an asset id with an amount expressed in the asset's
// smallest unit.
type AssetFunds struct {
	Asset  string `json:"asset"`
	Amount uint64 `json:"amount"`
}

// OutputRef references an output on the ledger by the transaction that
// created it and its position within that transaction.
type OutputRef struct {
	TxID string `json:"txid"`
	VOut uint32 `json:"vout"`
}

// TxOutput is a newly created destination output.
type TxOutput struct {
	Address string `json:"address"`
	Asset   string `json:"asset"`
	Value   uint64 `json:"value"`
}

// TxInput spends an output hidden inside a ring of decoy references. The
// proof is a schnorr signature of the leg digest made with the owner's spend
// key, standing in for the ledger's ring signature scheme.
type TxInput struct {
	Ref      OutputRef   `json:"ref"`
	Asset    string      `json:"asset"`
	Value    uint64      `json:"value"`
	Ring     []OutputRef `json:"ring"`
	KeyImage string      `json:"key_image"`
	PubKey   string      `json:"pub_key"`
	Proof    []byte      `json:"proof"`
}

// Leg is one party's contribution to the final swap transaction: its spent
// outputs with ownership proofs, the destination outputs created for the
// counterparty, its own change outputs and, for the fee paying party, the
// network fee.
type Leg struct {
	Inputs  []TxInput  `json:"inputs"`
	Outputs []TxOutput `json:"outputs"`
	Fee     uint64     `json:"fee"`
}

// AtomicTransaction is the merged transaction produced by Assemble. It is
// immutable once produced; broadcasting it is up to the caller.
type AtomicTransaction struct {
	Inputs  []TxInput  `json:"inputs"`
	Outputs []TxOutput `json:"outputs"`
	Fee     uint64     `json:"fee"`
}

// TxID returns the hash of the canonical transaction body.
func (t *AtomicTransaction) TxID() string {
	buf, _ := json.Marshal(t)
	hash := sha256.Sum256(buf)
	return hex.EncodeToString(hash[:])
}

// SpendableOutput is an output owned by the leg builder, along with the decoy
// references its unlinkable history provides for ring construction.
type SpendableOutput struct {
	Ref    OutputRef
	Asset  string
	Value  uint64
	Decoys []OutputRef
}

// Digest returns the 32 byte commitment every input proof signs. It covers
// the spent refs, their rings, all created outputs and the fee, so none of
// them can change after the leg has been proven.
func (l *Leg) Digest() []byte {
	unproven := Leg{
		Inputs:  make([]TxInput, 0, len(l.Inputs)),
		Outputs: l.Outputs,
		Fee:     l.Fee,
	}
	for _, in := range l.Inputs {
		in.Proof = nil
		unproven.Inputs = append(unproven.Inputs, in)
	}
	buf, _ := json.Marshal(unproven)
	hash := sha256.Sum256(buf)
	return hash[:]
}

func keyImage(pubkey string, ref OutputRef) string {
	h := sha256.New()
	h.Write([]byte("key-image"))
	h.Write([]byte(pubkey))
	h.Write([]byte(ref.TxID))
	h.Write([]byte{byte(ref.VOut), byte(ref.VOut >> 8), byte(ref.VOut >> 16), byte(ref.VOut >> 24)})
	return hex.EncodeToString(h.Sum(nil))
}

// BuildLegOpts is the struct to be given to the BuildLeg method.
type BuildLegOpts struct {
	Outputs       []SpendableOutput
	Destinations  []TxOutput
	ChangeAddress string
	Mixins        uint64
	Fee           uint64
	Signer        *KeyPair
}

func (o BuildLegOpts) validate() error {
	if o.Signer == nil {
		return ErrNullSigner
	}
	if len(o.Outputs) <= 0 {
		return ErrEmptyOutputs
	}
	if len(o.Destinations) <= 0 {
		return ErrEmptyDestinations
	}
	if !isValidAddress(o.ChangeAddress) {
		return ErrNullChangeAddress
	}
	for _, out := range o.Outputs {
		if !isValidAsset(out.Asset) {
			return ErrInvalidAsset
		}
		if uint64(len(out.Decoys)) < o.Mixins {
			return ErrNotEnoughDecoys
		}
	}
	for _, dest := range o.Destinations {
		if dest.Value == 0 {
			return ErrZeroDestinationAmount
		}
		if !isValidAsset(dest.Asset) {
			return ErrInvalidAsset
		}
		if !isValidAddress(dest.Address) {
			return ErrInvalidAddress
		}
	}
	return nil
}

// BuildLeg produces one party's contribution to the swap transaction from its
// reserved outputs and the agreed destination amounts. Any surplus goes back
// to the builder's change address, and the fee, when this party pays it, is
// taken from the native coin side only.
func BuildLeg(opts BuildLegOpts) (*Leg, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	inSums := make(map[string]uint64)
	for _, out := range opts.Outputs {
		inSums[out.Asset] += out.Value
	}
	outSums := make(map[string]uint64)
	for _, dest := range opts.Destinations {
		outSums[dest.Asset] += dest.Value
	}
	if opts.Fee > 0 && inSums[NativeAsset] == 0 {
		return nil, ErrFeeRequiresNative
	}

	outputs := make([]TxOutput, 0, len(opts.Destinations))
	outputs = append(outputs, opts.Destinations...)

	assets := make([]string, 0, len(inSums))
	for asset := range inSums {
		assets = append(assets, asset)
	}
	sort.Strings(assets)
	for _, asset := range assets {
		total := outSums[asset]
		if asset == NativeAsset {
			total += opts.Fee
		}
		if inSums[asset] < total {
			return nil, ErrInsufficientFunds
		}
		if change := inSums[asset] - total; change > 0 {
			outputs = append(outputs, TxOutput{
				Address: opts.ChangeAddress,
				Asset:   asset,
				Value:   change,
			})
		}
	}
	// destinations of assets this leg does not spend cannot be funded
	for asset, total := range outSums {
		if _, ok := inSums[asset]; !ok && total > 0 {
			return nil, ErrInsufficientFunds
		}
	}

	pubkey := opts.Signer.Address()
	inputs := make([]TxInput, 0, len(opts.Outputs))
	for _, out := range opts.Outputs {
		ring := make([]OutputRef, 0, opts.Mixins+1)
		ring = append(ring, out.Decoys[:opts.Mixins]...)
		ring = append(ring, out.Ref)
		sort.Slice(ring, func(i, j int) bool {
			if ring[i].TxID != ring[j].TxID {
				return ring[i].TxID < ring[j].TxID
			}
			return ring[i].VOut < ring[j].VOut
		})
		inputs = append(inputs, TxInput{
			Ref:      out.Ref,
			Asset:    out.Asset,
			Value:    out.Value,
			Ring:     ring,
			KeyImage: keyImage(pubkey, out.Ref),
			PubKey:   pubkey,
		})
	}

	leg := &Leg{
		Inputs:  inputs,
		Outputs: outputs,
		Fee:     opts.Fee,
	}

	digest := leg.Digest()
	for i := range leg.Inputs {
		proof, err := opts.Signer.Sign(digest)
		if err != nil {
			return nil, err
		}
		leg.Inputs[i].Proof = proof
	}

	return leg, nil
}
