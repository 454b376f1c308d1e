package someipcfg

// Protocol is the transport an event or eventgroup is offered over.
type Protocol string

const (
	ProtocolUDP Protocol = "udp"
	ProtocolTCP Protocol = "tcp"
)

// EventObject is the intermediate representation of one event entry of a
// service configuration document.
type EventObject struct {
	EventID  CfgElement[uint16]   `json:"event_id"`
	Protocol CfgElement[Protocol] `json:"protocol"`
	SomeIpTp CfgElement[bool]     `json:"someip_tp"`
}

// EventgroupObject is the intermediate representation of one eventgroup
// entry, carrying the multicast distribution parameters.
type EventgroupObject struct {
	EventgroupID            CfgElement[uint16] `json:"eventgroup_id"`
	MulticastAddress        CfgElement[string] `json:"multicast_address"`
	TTL                     CfgElement[uint32] `json:"ttl"`
	EventMulticastThreshold CfgElement[uint32] `json:"event_multicast_threshold"`
}
