package wallet

// AssembleOpts is the struct to be given to the Assemble method.
type AssembleOpts struct {
	InitiatorLeg       *Leg
	FinalizerLeg       *Leg
	ToFinalizer        []AssetFunds
	ToInitiator        []AssetFunds
	InitiatorAddress   string
	FinalizerAddress   string
	FeePaidByInitiator bool
	Mixins             uint64
}

func (o AssembleOpts) validate() error {
	if o.InitiatorLeg == nil || o.FinalizerLeg == nil {
		return ErrNullLeg
	}
	if !isValidAddress(o.InitiatorAddress) || !isValidAddress(o.FinalizerAddress) {
		return ErrInvalidAddress
	}
	return nil
}

// Assemble merges the two parties' legs into one transaction, enforcing the
// cross-leg checks neither leg can perform alone: per-asset value
// conservation over the union of both legs, exact payment of the agreed
// amounts in both directions, uniform ring sizes and no overlapping spends.
func Assemble(opts AssembleOpts) (*AtomicTransaction, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	for _, leg := range []*Leg{opts.InitiatorLeg, opts.FinalizerLeg} {
		digest := leg.Digest()
		for _, in := range leg.Inputs {
			if uint64(len(in.Ring)) != opts.Mixins+1 {
				return nil, ErrMixinsMismatch
			}
			if !VerifySignature(in.PubKey, digest, in.Proof) {
				return nil, ErrInvalidProof
			}
		}
	}

	// an overlapping spend would count twice in the conservation sums, so it
	// is ruled out first
	seen := make(map[OutputRef]struct{})
	for _, leg := range []*Leg{opts.InitiatorLeg, opts.FinalizerLeg} {
		for _, in := range leg.Inputs {
			if _, ok := seen[in.Ref]; ok {
				return nil, ErrDuplicateOutputReference
			}
			seen[in.Ref] = struct{}{}
		}
	}

	// the fee never comes from the non paying side
	if opts.FeePaidByInitiator && opts.FinalizerLeg.Fee > 0 {
		return nil, ErrTermsMismatch
	}
	if !opts.FeePaidByInitiator && opts.InitiatorLeg.Fee > 0 {
		return nil, ErrTermsMismatch
	}

	// sums accumulate with overflow checks: leg values are counterparty
	// supplied and wrapping sums must not cancel out
	inSums := make(map[string]uint64)
	outSums := make(map[string]uint64)
	for _, leg := range []*Leg{opts.InitiatorLeg, opts.FinalizerLeg} {
		for _, in := range leg.Inputs {
			if !addChecked(inSums, in.Asset, in.Value) {
				return nil, ErrValueConservationViolation
			}
		}
		for _, out := range leg.Outputs {
			if !addChecked(outSums, out.Asset, out.Value) {
				return nil, ErrValueConservationViolation
			}
		}
		if !addChecked(outSums, NativeAsset, leg.Fee) {
			return nil, ErrValueConservationViolation
		}
	}
	for asset, in := range inSums {
		if outSums[asset] != in {
			return nil, ErrValueConservationViolation
		}
	}
	for asset, out := range outSums {
		if _, ok := inSums[asset]; !ok && out > 0 {
			return nil, ErrValueConservationViolation
		}
	}

	if !paysExactly(opts.FinalizerLeg, opts.InitiatorAddress, opts.ToInitiator) {
		return nil, ErrTermsMismatch
	}
	if !paysExactly(opts.InitiatorLeg, opts.FinalizerAddress, opts.ToFinalizer) {
		return nil, ErrTermsMismatch
	}

	tx := &AtomicTransaction{
		Inputs: append(
			append([]TxInput{}, opts.InitiatorLeg.Inputs...),
			opts.FinalizerLeg.Inputs...,
		),
		Outputs: append(
			append([]TxOutput{}, opts.InitiatorLeg.Outputs...),
			opts.FinalizerLeg.Outputs...,
		),
		Fee: opts.InitiatorLeg.Fee + opts.FinalizerLeg.Fee,
	}
	return tx, nil
}

// addChecked accumulates v into sums[asset], reporting false when the sum
// would wrap around.
func addChecked(sums map[string]uint64, asset string, v uint64) bool {
	sum := sums[asset] + v
	if sum < sums[asset] {
		return false
	}
	sums[asset] = sum
	return true
}

// paysExactly reports whether the leg's destination outputs to the given
// address amount to exactly the agreed funds, asset by asset.
func paysExactly(leg *Leg, address string, funds []AssetFunds) bool {
	paid := make(map[string]uint64)
	for _, out := range leg.Outputs {
		if out.Address == address {
			paid[out.Asset] += out.Value
		}
	}
	if len(paid) != len(funds) {
		return false
	}
	for _, f := range funds {
		if paid[f.Asset] != f.Amount {
			return false
		}
	}
	return true
}
