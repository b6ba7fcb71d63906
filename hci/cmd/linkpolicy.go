package cmd

// HoldMode implements Hold Mode (0x02|0x0001) [Vol 2, Part E, 7.2.1].
type HoldMode struct {
	ConnectionHandle    uint16
	HoldModeMaxInterval uint16
	HoldModeMinInterval uint16
}

func (c *HoldMode) String() string { return "Hold Mode (0x02|0x0001)" }

func (c *HoldMode) OpCode() int { return 0x02<<10 | 0x0001 }

func (c *HoldMode) Len() int { return 6 }

// Marshal serializes the command parameters into binary form.
func (c *HoldMode) Marshal(b []byte) error { return marshal(c, b) }

// SniffMode implements Sniff Mode (0x02|0x0003) [Vol 2, Part E, 7.2.2].
type SniffMode struct {
	ConnectionHandle uint16
	SniffMaxInterval uint16
	SniffMinInterval uint16
	SniffAttempt     uint16
	SniffTimeout     uint16
}

func (c *SniffMode) String() string { return "Sniff Mode (0x02|0x0003)" }

func (c *SniffMode) OpCode() int { return 0x02<<10 | 0x0003 }

func (c *SniffMode) Len() int { return 10 }

// Marshal serializes the command parameters into binary form.
func (c *SniffMode) Marshal(b []byte) error { return marshal(c, b) }

// ExitSniffMode implements Exit Sniff Mode (0x02|0x0004) [Vol 2, Part E, 7.2.3].
type ExitSniffMode struct {
	ConnectionHandle uint16
}

func (c *ExitSniffMode) String() string { return "Exit Sniff Mode (0x02|0x0004)" }

func (c *ExitSniffMode) OpCode() int { return 0x02<<10 | 0x0004 }

func (c *ExitSniffMode) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *ExitSniffMode) Marshal(b []byte) error { return marshal(c, b) }

// QosSetup implements QoS Setup (0x02|0x0007) [Vol 2, Part E, 7.2.6].
type QosSetup struct {
	ConnectionHandle uint16
	Flags            uint8
	ServiceType      uint8
	TokenRate        uint32
	PeakBandwidth    uint32
	Latency          uint32
	DelayVariation   uint32
}

func (c *QosSetup) String() string { return "QoS Setup (0x02|0x0007)" }

func (c *QosSetup) OpCode() int { return 0x02<<10 | 0x0007 }

func (c *QosSetup) Len() int { return 20 }

// Marshal serializes the command parameters into binary form.
func (c *QosSetup) Marshal(b []byte) error { return marshal(c, b) }

// RoleDiscovery implements Role Discovery (0x02|0x0009) [Vol 2, Part E, 7.2.7].
type RoleDiscovery struct {
	ConnectionHandle uint16
}

func (c *RoleDiscovery) String() string { return "Role Discovery (0x02|0x0009)" }

func (c *RoleDiscovery) OpCode() int { return 0x02<<10 | 0x0009 }

func (c *RoleDiscovery) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *RoleDiscovery) Marshal(b []byte) error { return marshal(c, b) }

// RoleDiscoveryRP returns the return parameter of Role Discovery.
type RoleDiscoveryRP struct {
	Status           uint8
	ConnectionHandle uint16
	CurrentRole      uint8
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *RoleDiscoveryRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// ReadLinkPolicySettings implements Read Link Policy Settings (0x02|0x000C) [Vol 2, Part E, 7.2.9].
type ReadLinkPolicySettings struct {
	ConnectionHandle uint16
}

func (c *ReadLinkPolicySettings) String() string { return "Read Link Policy Settings (0x02|0x000C)" }

func (c *ReadLinkPolicySettings) OpCode() int { return 0x02<<10 | 0x000C }

func (c *ReadLinkPolicySettings) Len() int { return 2 }

// Marshal serializes the command parameters into binary form.
func (c *ReadLinkPolicySettings) Marshal(b []byte) error { return marshal(c, b) }

// ReadLinkPolicySettingsRP returns the return parameter of Read Link Policy Settings.
type ReadLinkPolicySettingsRP struct {
	Status             uint8
	ConnectionHandle   uint16
	LinkPolicySettings uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *ReadLinkPolicySettingsRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// WriteLinkPolicySettings implements Write Link Policy Settings (0x02|0x000D) [Vol 2, Part E, 7.2.10].
type WriteLinkPolicySettings struct {
	ConnectionHandle   uint16
	LinkPolicySettings uint16
}

func (c *WriteLinkPolicySettings) String() string { return "Write Link Policy Settings (0x02|0x000D)" }

func (c *WriteLinkPolicySettings) OpCode() int { return 0x02<<10 | 0x000D }

func (c *WriteLinkPolicySettings) Len() int { return 4 }

// Marshal serializes the command parameters into binary form.
func (c *WriteLinkPolicySettings) Marshal(b []byte) error { return marshal(c, b) }

// WriteLinkPolicySettingsRP returns the return parameter of Write Link Policy Settings.
type WriteLinkPolicySettingsRP struct {
	Status           uint8
	ConnectionHandle uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *WriteLinkPolicySettingsRP) Unmarshal(b []byte) error { return unmarshal(c, b) }

// FlowSpecification implements Flow Specification (0x02|0x0010) [Vol 2, Part E, 7.2.13].
type FlowSpecification struct {
	ConnectionHandle uint16
	Flags            uint8
	FlowDirection    uint8
	ServiceType      uint8
	TokenRate        uint32
	TokenBucketSize  uint32
	PeakBandwidth    uint32
	AccessLatency    uint32
}

func (c *FlowSpecification) String() string { return "Flow Specification (0x02|0x0010)" }

func (c *FlowSpecification) OpCode() int { return 0x02<<10 | 0x0010 }

func (c *FlowSpecification) Len() int { return 21 }

// Marshal serializes the command parameters into binary form.
func (c *FlowSpecification) Marshal(b []byte) error { return marshal(c, b) }

// SniffSubrating implements Sniff Subrating (0x02|0x0011) [Vol 2, Part E, 7.2.14].
type SniffSubrating struct {
	ConnectionHandle     uint16
	MaximumLatency       uint16
	MinimumRemoteTimeout uint16
	MinimumLocalTimeout  uint16
}

func (c *SniffSubrating) String() string { return "Sniff Subrating (0x02|0x0011)" }

func (c *SniffSubrating) OpCode() int { return 0x02<<10 | 0x0011 }

func (c *SniffSubrating) Len() int { return 8 }

// Marshal serializes the command parameters into binary form.
func (c *SniffSubrating) Marshal(b []byte) error { return marshal(c, b) }

// SniffSubratingRP returns the return parameter of Sniff Subrating.
type SniffSubratingRP struct {
	Status           uint8
	ConnectionHandle uint16
}

// Unmarshal de-serializes the binary data and stores the result in the receiver.
func (c *SniffSubratingRP) Unmarshal(b []byte) error { return unmarshal(c, b) }
