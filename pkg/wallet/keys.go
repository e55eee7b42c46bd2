package wallet

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// KeyPair holds a party's spend key. The address is the hex encoding of the
// 32 byte x-only public key, which is also what destination outputs commit to.
type KeyPair struct {
	privateKey *btcec.PrivateKey
}

// NewKeyPair generates a new random spend key pair.
func NewKeyPair() (*KeyPair, error) {
	prvkey, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return &KeyPair{privateKey: prvkey}, nil
}

// Address returns the public address of the key pair.
func (k *KeyPair) Address() string {
	return hex.EncodeToString(schnorr.SerializePubKey(k.privateKey.PubKey()))
}

// Sign produces a schnorr signature of the given 32 byte digest.
func (k *KeyPair) Sign(digest []byte) ([]byte, error) {
	sig, err := schnorr.Sign(k.privateKey, digest)
	if err != nil {
		return nil, err
	}
	return sig.Serialize(), nil
}

// VerifySignature checks a schnorr signature of digest against the public key
// behind the given address.
func VerifySignature(address string, digest, signature []byte) bool {
	pubkeyBytes, err := hex.DecodeString(address)
	if err != nil {
		return false
	}
	pubkey, err := schnorr.ParsePubKey(pubkeyBytes)
	if err != nil {
		return false
	}
	sig, err := schnorr.ParseSignature(signature)
	if err != nil {
		return false
	}
	return sig.Verify(digest, pubkey)
}

func isValidAddress(addr string) bool {
	buf, err := hex.DecodeString(addr)
	return err == nil && len(buf) == 32
}

func isValidAsset(asset string) bool {
	buf, err := hex.DecodeString(asset)
	return err == nil && len(buf) == 32
}
