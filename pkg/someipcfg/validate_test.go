package someipcfg

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCfgElement(t *testing.T) {
	var e CfgElement[uint16]
	assert.False(t, e.IsSet())
	assert.Zero(t, e.Get())

	e.Set(7)
	assert.True(t, e.IsSet())
	assert.Equal(t, uint16(7), e.Get())

	// Set always transitions to set, a zero value included
	e.Set(0)
	assert.True(t, e.IsSet())
	assert.Zero(t, e.Get())
}

func TestEventObjectDecodePresence(t *testing.T) {
	var event EventObject
	require.NoError(t, json.Unmarshal([]byte(`{"event_id":100,"protocol":"udp"}`), &event))

	assert.True(t, event.EventID.IsSet())
	assert.Equal(t, uint16(100), event.EventID.Get())
	assert.True(t, event.Protocol.IsSet())
	assert.Equal(t, ProtocolUDP, event.Protocol.Get())
	// absent key stays unset, distinguishable from a false value
	assert.False(t, event.SomeIpTp.IsSet())
}

func TestEventValidator(t *testing.T) {
	decode := func(doc string) *EventObject {
		var event EventObject
		require.NoError(t, json.Unmarshal([]byte(doc), &event))
		return &event
	}

	tests := []struct {
		name string
		doc  string
		want ValidationResult
	}{
		{"valid udp", `{"event_id":1,"protocol":"udp"}`, Ok},
		{"valid tp over udp", `{"event_id":1,"protocol":"udp","someip_tp":true}`, Ok},
		{"tp disabled over tcp", `{"event_id":1,"protocol":"tcp","someip_tp":false}`, Ok},
		{"missing event id", `{"protocol":"udp"}`, MissingEventID},
		{"missing protocol", `{"event_id":1}`, MissingProtocol},
		{"tp over tcp", `{"event_id":1,"protocol":"tcp","someip_tp":true}`, SomeIpTpNotOverUdp},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := EventValidator{Object: decode(tt.doc)}
			assert.Equal(t, tt.want, validator.Check())
		})
	}
}

func TestEventValidatorIdempotent(t *testing.T) {
	var event EventObject
	require.NoError(t, json.Unmarshal([]byte(`{"event_id":1,"protocol":"tcp","someip_tp":true}`), &event))
	validator := EventValidator{Object: &event}

	// Check has no side effects; the result never drifts
	for i := 0; i < 10; i++ {
		assert.Equal(t, SomeIpTpNotOverUdp, validator.Check())
	}
}

func TestEventgroupValidator(t *testing.T) {
	decode := func(doc string) *EventgroupObject {
		var eventgroup EventgroupObject
		require.NoError(t, json.Unmarshal([]byte(doc), &eventgroup))
		return &eventgroup
	}

	tests := []struct {
		name string
		doc  string
		want ValidationResult
	}{
		{"unicast only", `{"eventgroup_id":5}`, Ok},
		{"multicast complete", `{"eventgroup_id":5,"multicast_address":"239.0.0.1","ttl":5,"event_multicast_threshold":2}`, Ok},
		{"threshold zero disables multicast", `{"eventgroup_id":5,"event_multicast_threshold":0}`, Ok},
		{"missing eventgroup id", `{}`, MissingEventgroupID},
		{"threshold without address", `{"eventgroup_id":5,"event_multicast_threshold":2}`, MissingMulticastAddress},
		{"address without threshold", `{"eventgroup_id":5,"multicast_address":"239.0.0.1","ttl":5}`, InvalidEventMulticastThreshold},
		{"multicast without ttl", `{"eventgroup_id":5,"multicast_address":"239.0.0.1","event_multicast_threshold":2}`, InvalidTTL},
		{"ttl zero", `{"eventgroup_id":5,"multicast_address":"239.0.0.1","ttl":0,"event_multicast_threshold":2}`, InvalidTTL},
		{"ttl too large", `{"eventgroup_id":5,"multicast_address":"239.0.0.1","ttl":300,"event_multicast_threshold":2}`, InvalidTTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := EventgroupValidator{Object: decode(tt.doc)}
			assert.Equal(t, tt.want, validator.Check())
			// idempotent
			assert.Equal(t, tt.want, validator.Check())
		})
	}
}
