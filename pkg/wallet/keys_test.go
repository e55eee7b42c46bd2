package wallet_test

import (
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reza1mahb/zano/pkg/wallet"
)

func TestKeyPair(t *testing.T) {
	keyPair := newKeyPair(t)

	address := keyPair.Address()
	buf, err := hex.DecodeString(address)
	require.NoError(t, err)
	require.Len(t, buf, 32)

	digest := sha256.Sum256([]byte("leg digest"))
	proof, err := keyPair.Sign(digest[:])
	require.NoError(t, err)
	require.True(t, wallet.VerifySignature(address, digest[:], proof))

	otherDigest := sha256.Sum256([]byte("other digest"))
	require.False(t, wallet.VerifySignature(address, otherDigest[:], proof))

	other := newKeyPair(t)
	require.False(t, wallet.VerifySignature(other.Address(), digest[:], proof))
}
