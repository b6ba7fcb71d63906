package bredr

import "time"

// Config is the setter interface the manager implements to allow
// configuration through options.
type Config interface {
	SetTransportHCISocket(id int) error
	SetTransportH4Socket(addr string, timeout time.Duration) error
	SetTransportH4Uart(path string) error

	SetAcceptedLinkTypes(types []uint8) error
	SetErrorHandler(handler func(error)) error
	SetIdentityCacheFile(filename string) error
	SetConnectionCallbacks(cb ConnectionCallbacks) error
}

// An Option is a configuration function, which configures the manager.
type Option func(Config) error

// OptTransportHCISocket sets the HCI device id for the raw socket transport.
func OptTransportHCISocket(id int) Option {
	return func(opt Config) error {
		return opt.SetTransportHCISocket(id)
	}
}

// OptTransportH4Socket uses an H4 server socket as the transport.
func OptTransportH4Socket(addr string, timeout time.Duration) Option {
	return func(opt Config) error {
		return opt.SetTransportH4Socket(addr, timeout)
	}
}

// OptTransportH4Uart uses an H4 UART as the transport.
func OptTransportH4Uart(path string) Option {
	return func(opt Config) error {
		return opt.SetTransportH4Uart(path)
	}
}

// OptAcceptedLinkTypes sets the link types accepted for incoming
// connection requests. The default accepts ACL only.
func OptAcceptedLinkTypes(types ...uint8) Option {
	return func(opt Config) error {
		return opt.SetAcceptedLinkTypes(types)
	}
}

// OptErrorHandler sets the handler for asynchronous transport errors.
func OptErrorHandler(handler func(error)) Option {
	return func(opt Config) error {
		return opt.SetErrorHandler(handler)
	}
}

// OptIdentityCacheFile enables the persisted identity cache.
func OptIdentityCacheFile(filename string) Option {
	return func(opt Config) error {
		return opt.SetIdentityCacheFile(filename)
	}
}

// OptConnectionCallbacks registers the connection outcome callbacks at
// construction time, before any connection can resolve.
func OptConnectionCallbacks(cb ConnectionCallbacks) Option {
	return func(opt Config) error {
		return opt.SetConnectionCallbacks(cb)
	}
}
