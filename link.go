package bredr

// ConnectionCallbacks is implemented by the application to learn the
// outcome of connection attempts, both outgoing and incoming. It must be
// registered with the manager before connections are expected to resolve.
type ConnectionCallbacks interface {
	// OnConnectSuccess delivers an open link. The manager retains
	// ownership of the underlying state; the Link stays valid until the
	// application calls Finish after disconnection.
	OnConnectSuccess(Link)

	// OnConnectFail reports a failed attempt with the controller's
	// reason code. The address is immediately eligible for a new Connect.
	OnConnectFail(Addr, uint8)
}

// DisconnectHandler receives the reason code reported by the
// disconnection complete event for one link.
type DisconnectHandler func(reason uint8)

// ManagementCallbacks is implemented by the application to receive the
// completion of per-link management commands. One method per completion
// event; decoded event fields are passed through unchanged.
type ManagementCallbacks interface {
	OnConnectionPacketTypeChanged(packetType uint16)
	OnAuthenticationComplete()
	OnEncryptionChange(enabled uint8)
	OnChangeConnectionLinkKeyComplete()
	OnReadClockOffsetComplete(clockOffset uint16)
	OnModeChange(mode uint8, interval uint16)
	OnQosSetupComplete(serviceType uint8, tokenRate, peakBandwidth, latency, delayVariation uint32)
	OnFlowSpecificationComplete(direction, serviceType uint8, tokenRate, tokenBucketSize, peakBandwidth, accessLatency uint32)
	OnFlushOccurred()
	OnRoleDiscoveryComplete(role uint8)
	OnReadLinkPolicySettingsComplete(settings uint16)
	OnReadAutomaticFlushTimeoutComplete(flushTimeout uint16)
	OnReadTransmitPowerLevelComplete(level int8)
	OnReadLinkSupervisionTimeoutComplete(timeout uint16)
	OnReadFailedContactCounterComplete(counter uint16)
	OnReadLinkQualityComplete(quality uint8)
	OnReadRssiComplete(rssi int8)
	OnReadClockComplete(clock uint32, accuracy uint16)
}

// Link is one open ACL connection. The data path treats the link as an
// opaque bidirectional packet channel; the management surface mirrors the
// per-link HCI command set, each call resolving asynchronously through
// the registered ManagementCallbacks.
type Link interface {
	Address() Addr
	Handle() uint16

	// Write enqueues p for transmission. It fragments to the controller
	// buffer length and never blocks on controller credits.
	Write(p []byte) (int, error)

	// TryDequeue returns the next inbound data packet payload, or nil if
	// none is waiting.
	TryDequeue() []byte

	// Inbound exposes the inbound queue for select-based consumers.
	Inbound() <-chan []byte

	// RegisterCallbacks installs the management completion callbacks.
	RegisterCallbacks(ManagementCallbacks)

	// RegisterDisconnect installs the handler invoked when the link's
	// disconnection complete event arrives.
	RegisterDisconnect(DisconnectHandler)

	// Disconnect issues a disconnect command with the given reason code.
	Disconnect(reason uint8) error

	// Disconnected is closed once the link reaches its terminal state.
	Disconnected() <-chan struct{}

	// Finish releases the link's resources. To be called by the
	// application once, after the disconnect handler has run.
	Finish()

	// Link management commands [Vol 2, Part E, 7.1-7.5]. Valid only while
	// the link is open.
	ChangeConnectionPacketType(packetType uint16) error
	AuthenticationRequested() error
	SetConnectionEncryption(enable uint8) error
	ChangeConnectionLinkKey() error
	ReadClockOffset() error
	HoldMode(maxInterval, minInterval uint16) error
	SniffMode(maxInterval, minInterval, attempt, timeout uint16) error
	ExitSniffMode() error
	SniffSubrating(maxLatency, minRemoteTimeout, minLocalTimeout uint16) error
	QosSetup(serviceType uint8, tokenRate, peakBandwidth, latency, delayVariation uint32) error
	FlowSpecification(direction, serviceType uint8, tokenRate, tokenBucketSize, peakBandwidth, accessLatency uint32) error
	Flush() error
	ReadAutomaticFlushTimeout() error
	WriteAutomaticFlushTimeout(flushTimeout uint16) error
	RoleDiscovery() error
	ReadLinkPolicySettings() error
	WriteLinkPolicySettings(settings uint16) error
	ReadTransmitPowerLevel(which uint8) error
	ReadLinkSupervisionTimeout() error
	WriteLinkSupervisionTimeout(timeout uint16) error
	ReadFailedContactCounter() error
	ResetFailedContactCounter() error
	ReadLinkQuality() error
	ReadRssi() error
	ReadClock(which uint8) error
}
