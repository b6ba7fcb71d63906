package hci

import (
	"time"

	"github.com/pkg/errors"

	"github.com/edgebt/bredr"
	"github.com/edgebt/bredr/cache"
)

// SetTransportHCISocket selects the raw HCI socket transport.
func (m *Manager) SetTransportHCISocket(id int) error {
	m.transport.hci = &transportHci{id: id}
	return nil
}

// SetTransportH4Socket selects the H4 socket transport.
func (m *Manager) SetTransportH4Socket(addr string, timeout time.Duration) error {
	m.transport.h4socket = &transportH4Socket{addr: addr, timeout: timeout}
	return nil
}

// SetTransportH4Uart selects the H4 UART transport.
func (m *Manager) SetTransportH4Uart(path string) error {
	m.transport.h4uart = &transportH4Uart{path: path}
	return nil
}

// SetAcceptedLinkTypes overrides the link types accepted for incoming
// connection requests.
func (m *Manager) SetAcceptedLinkTypes(types []uint8) error {
	if len(types) == 0 {
		return errors.New("no link types given")
	}
	for _, t := range types {
		switch t {
		case LinkTypeSCO, LinkTypeACL, LinkTypeESCO:
		default:
			return errors.Errorf("invalid link type 0x%02X", t)
		}
	}
	m.accepted = types
	return nil
}

// SetErrorHandler ...
func (m *Manager) SetErrorHandler(handler func(error)) error {
	m.errorHandler = handler
	return nil
}

// SetIdentityCacheFile enables the persisted identity cache.
func (m *Manager) SetIdentityCacheFile(filename string) error {
	m.cache = cache.New(filename)
	return nil
}

// SetConnectionCallbacks ...
func (m *Manager) SetConnectionCallbacks(cb bredr.ConnectionCallbacks) error {
	m.RegisterCallbacks(cb)
	return nil
}
