package keyexchange

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/cryptoadapter"
	"github.com/AnkiHonnaiah/QUICKCOM-POC-sub026/pkg/layer"
)

func TestPskConfigResolution(t *testing.T) {
	config := NewPskConfig()
	id := uuid.New()
	config.SetHintIdentity("gateway", "ecu-17")
	require.NoError(t, config.AssociateIdentity("ecu-17", id))

	identity, ok := config.IdentityForHint("gateway")
	require.True(t, ok)
	assert.Equal(t, "ecu-17", identity)

	assert.Equal(t, id, config.GetPskUUID("ecu-17", "gateway", true))
	assert.Equal(t, id, config.GetPskUUID("ecu-17", "", false))

	// unknown identity resolves to Nil, never panics
	assert.Equal(t, uuid.Nil, config.GetPskUUID("stranger", "", false))
	// server side: identity must agree with what the hint selects
	assert.Equal(t, uuid.Nil, config.GetPskUUID("other-ecu", "gateway", true))
}

func TestPskConfigAssociationImmutable(t *testing.T) {
	config := NewPskConfig()
	id := uuid.New()
	require.NoError(t, config.AssociateIdentity("ecu-17", id))

	// same UUID again is a no-op
	require.NoError(t, config.AssociateIdentity("ecu-17", id))
	// different UUID is rejected and the original stands
	require.Error(t, config.AssociateIdentity("ecu-17", uuid.New()))
	assert.Equal(t, id, config.GetPskUUID("ecu-17", "", false))
}

func pskFixture(t *testing.T) (*PskConfig, cryptoadapter.Adapter) {
	t.Helper()
	storage := cryptoadapter.NewInMemoryKeyStorage()
	id := uuid.New()
	storage.AddPreSharedKey(id, []byte("sixteen byte key"))

	config := NewPskConfig()
	config.SetHintIdentity("gateway", "ecu-17")
	require.NoError(t, config.AssociateIdentity("ecu-17", id))
	return config, cryptoadapter.NewPerformanceCryptoAdapter(storage)
}

func TestPskExchange(t *testing.T) {
	config, adapter := pskFixture(t)
	ctx := &Context{}

	server := NewPSK(adapter, config, "gateway", true)
	client := NewPSK(adapter, config, "", false)

	hintMsg, err := server.PrepareServerKeyExchangeMessage(ctx)
	require.NoError(t, err)
	raw, err := hintMsg.Marshal()
	require.NoError(t, err)
	require.NoError(t, client.OnServerKeyExchangeMessageReceived(ctx, raw))

	identityMsg, err := client.PrepareClientKeyExchangeMessage(ctx)
	require.NoError(t, err)
	raw, err = identityMsg.Marshal()
	require.NoError(t, err)
	require.NoError(t, server.OnClientKeyExchangeMessageReceived(ctx, raw))

	clientSecret, err := client.PreMasterSecret()
	require.NoError(t, err)
	serverSecret, err := server.PreMasterSecret()
	require.NoError(t, err)
	assert.Equal(t, clientSecret, serverSecret)

	// RFC 4279 §2 layout: both halves length-prefixed, zero first half
	assert.Equal(t, []byte{0x00, 0x10}, clientSecret[:2])
}

func TestPskEmptyHint(t *testing.T) {
	config, adapter := pskFixture(t)
	server := NewPSK(adapter, config, "", true)

	_, err := server.PrepareServerKeyExchangeMessage(&Context{})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestPskUnknownIdentity(t *testing.T) {
	config, adapter := pskFixture(t)
	server := NewPSK(adapter, config, "gateway", true)

	raw, err := (&layer.MessageClientKeyExchangePsk{Identity: []byte("stranger")}).Marshal()
	require.NoError(t, err)
	require.ErrorIs(t, server.OnClientKeyExchangeMessageReceived(&Context{}, raw), ErrPskIdentityNotFound)

	_, err = server.PreMasterSecret()
	require.Error(t, err)
}

func TestPskUnknownHintOnClient(t *testing.T) {
	config, adapter := pskFixture(t)
	client := NewPSK(adapter, config, "", false)

	raw, err := (&layer.MessageServerKeyExchangePsk{IdentityHint: []byte("unknown-hint")}).Marshal()
	require.NoError(t, err)
	require.NoError(t, client.OnServerKeyExchangeMessageReceived(&Context{}, raw))

	_, err = client.PrepareClientKeyExchangeMessage(&Context{})
	require.ErrorIs(t, err, ErrPskIdentityNotFound)
}
