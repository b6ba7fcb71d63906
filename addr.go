package bredr

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Addr represents a remote device address (BD_ADDR).
type Addr interface {
	String() string
	Bytes() []byte
}

// NewAddr creates an Addr from a string such as "a1:a2:a3:a4:a5:a6".
func NewAddr(s string) Addr {
	return addr(strings.ToLower(s))
}

type addr string

func (a addr) String() string {
	return string(a)
}

func (a addr) Bytes() []byte {
	hexStr := strings.Replace(a.String(), ":", "", -1)

	out, err := hex.DecodeString(hexStr)
	if err != nil {
		fmt.Println("error decoding address:", err, a.String())
	}

	return out
}
