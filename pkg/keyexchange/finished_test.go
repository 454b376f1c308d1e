package keyexchange

import (
	"testing"

	"github.com/pion/dtls/v2/pkg/crypto/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinishedVerifyData(t *testing.T) {
	masterSecret := make([]byte, 48)
	transcript := []byte("handshake messages in wire order")

	clientData, err := FinishedVerifyData(masterSecret, transcript, hash.SHA256, true)
	require.NoError(t, err)
	assert.Len(t, clientData, 12)

	// deterministic over the same inputs
	again, err := FinishedVerifyData(masterSecret, transcript, hash.SHA256, true)
	require.NoError(t, err)
	assert.Equal(t, clientData, again)

	// the two directions use distinct labels
	serverData, err := FinishedVerifyData(masterSecret, transcript, hash.SHA256, false)
	require.NoError(t, err)
	assert.NotEqual(t, clientData, serverData)

	// any transcript change shifts the result
	other, err := FinishedVerifyData(masterSecret, []byte("different transcript"), hash.SHA256, true)
	require.NoError(t, err)
	assert.NotEqual(t, clientData, other)
}
