package swap

import (
	"bytes"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/thanhpk/randstr"

	"github.com/reza1mahb/zano/pkg/wallet"
)

const (
	// ProposalVersion is the current proposal format version.
	ProposalVersion = 1

	proposalPrefix = "ionic1"
)

type proposalEnvelope struct {
	Version  uint32          `json:"version"`
	Payload  json.RawMessage `json:"payload"`
	Checksum string          `json:"checksum"`
}

type proposalPayload struct {
	ID               string      `json:"id"`
	Terms            Terms       `json:"terms"`
	InitiatorAddress string      `json:"initiator_address"`
	InitiatorLeg     *wallet.Leg `json:"initiator_leg"`
}

// ProposalInfo is the inspectable decoding of a proposal: the economic terms
// and the public part of the initiator's leg needed for assembly. It carries
// no private key material.
type ProposalInfo struct {
	ID               string
	Version          uint32
	Terms            Terms
	InitiatorAddress string
	InitiatorLeg     *wallet.Leg
}

// EncodeOpts is the struct to be given to the Encode method.
type EncodeOpts struct {
	ID               string
	Terms            Terms
	InitiatorAddress string
	InitiatorLeg     *wallet.Leg
}

func (o EncodeOpts) validate() error {
	if err := o.Terms.Validate(); err != nil {
		return err
	}
	if len(o.InitiatorAddress) <= 0 {
		return ErrNullInitiatorAddress
	}
	if o.InitiatorLeg == nil {
		return ErrNullLeg
	}
	return nil
}

func (o EncodeOpts) id() string {
	if o.ID != "" {
		return o.ID
	}
	return randstr.Hex(8)
}

// Encode serializes the swap terms and the initiator's committed leg into the
// opaque, versioned, integrity-protected form handed to the counterparty.
// Serialization is deterministic: encoding the same proposal twice yields the
// same bytes, except for the random id assigned when none is given.
func Encode(opts EncodeOpts) ([]byte, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(proposalPayload{
		ID:               opts.id(),
		Terms:            opts.Terms,
		InitiatorAddress: opts.InitiatorAddress,
		InitiatorLeg:     opts.InitiatorLeg,
	})
	if err != nil {
		return nil, err
	}

	checksum := sha256.Sum256(payload)
	envelope, err := json.Marshal(proposalEnvelope{
		Version:  ProposalVersion,
		Payload:  payload,
		Checksum: hex.EncodeToString(checksum[:]),
	})
	if err != nil {
		return nil, err
	}

	encoded := proposalPrefix + base64.RawURLEncoding.EncodeToString(envelope)
	return []byte(encoded), nil
}

// Decode parses proposal bytes back into an inspectable ProposalInfo. It is
// pure and idempotent: no reservation is taken and the same bytes can be
// decoded any number of times before deciding whether to accept.
func Decode(proposal []byte) (*ProposalInfo, error) {
	encoded := string(proposal)
	if !strings.HasPrefix(encoded, proposalPrefix) {
		return nil, ErrInvalidFormat
	}

	rawEnvelope, err := base64.RawURLEncoding.DecodeString(
		strings.TrimPrefix(encoded, proposalPrefix),
	)
	if err != nil {
		return nil, ErrInvalidFormat
	}

	var envelope proposalEnvelope
	if err := json.Unmarshal(rawEnvelope, &envelope); err != nil {
		return nil, ErrInvalidFormat
	}
	if envelope.Version != ProposalVersion {
		return nil, ErrUnsupportedVersion
	}

	checksum := sha256.Sum256(envelope.Payload)
	if hex.EncodeToString(checksum[:]) != envelope.Checksum {
		return nil, ErrIntegrityCheckFailed
	}

	var payload proposalPayload
	decoder := json.NewDecoder(bytes.NewReader(envelope.Payload))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		// the payload passed the integrity check, so unknown fields mean the
		// proposal comes from a newer codec rather than from tampering
		return nil, ErrUnsupportedVersion
	}
	if len(payload.ID) <= 0 {
		return nil, ErrInvalidFormat
	}
	if payload.InitiatorLeg == nil {
		return nil, ErrInvalidFormat
	}
	if err := payload.Terms.Validate(); err != nil {
		return nil, ErrInvalidFormat
	}

	return &ProposalInfo{
		ID:               payload.ID,
		Version:          envelope.Version,
		Terms:            payload.Terms,
		InitiatorAddress: payload.InitiatorAddress,
		InitiatorLeg:     payload.InitiatorLeg,
	}, nil
}
