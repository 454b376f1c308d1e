package someipcfg

// ValidationResult is the outcome of one validator Check call.
type ValidationResult int

const (
	Ok ValidationResult = iota
	MissingEventID
	MissingProtocol
	SomeIpTpNotOverUdp
	MissingEventgroupID
	MissingMulticastAddress
	InvalidTTL
	InvalidEventMulticastThreshold
)

func (r ValidationResult) String() string {
	switch r {
	case Ok:
		return "Ok"
	case MissingEventID:
		return "MissingEventID"
	case MissingProtocol:
		return "MissingProtocol"
	case SomeIpTpNotOverUdp:
		return "SomeIpTpNotOverUdp"
	case MissingEventgroupID:
		return "MissingEventgroupID"
	case MissingMulticastAddress:
		return "MissingMulticastAddress"
	case InvalidTTL:
		return "InvalidTTL"
	case InvalidEventMulticastThreshold:
		return "InvalidEventMulticastThreshold"
	default:
		return "Unknown"
	}
}

// EventValidator checks one event object. Check reads only; repeated
// calls over the same object always yield the same result.
type EventValidator struct {
	Object *EventObject
}

func (v EventValidator) Check() ValidationResult {
	if !v.Object.EventID.IsSet() {
		return MissingEventID
	}
	if !v.Object.Protocol.IsSet() {
		return MissingProtocol
	}
	// SOME/IP-TP segmentation only exists on UDP transports.
	if v.Object.SomeIpTp.IsSet() && v.Object.SomeIpTp.Get() && v.Object.Protocol.Get() != ProtocolUDP {
		return SomeIpTpNotOverUdp
	}
	return Ok
}

// EventgroupValidator checks one eventgroup object, including the
// cross-field constraints between the multicast parameters.
type EventgroupValidator struct {
	Object *EventgroupObject
}

func (v EventgroupValidator) Check() ValidationResult {
	if !v.Object.EventgroupID.IsSet() {
		return MissingEventgroupID
	}
	multicast := v.Object.MulticastAddress.IsSet()
	if v.Object.EventMulticastThreshold.IsSet() {
		// A threshold of zero disables multicast distribution; any other
		// value needs an address to distribute to.
		if v.Object.EventMulticastThreshold.Get() > 0 && !multicast {
			return MissingMulticastAddress
		}
	} else if multicast {
		return InvalidEventMulticastThreshold
	}
	if multicast {
		if !v.Object.TTL.IsSet() || v.Object.TTL.Get() == 0 || v.Object.TTL.Get() > 255 {
			return InvalidTTL
		}
	}
	return Ok
}
