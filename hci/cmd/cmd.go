package cmd

import (
	"bytes"
	"encoding/binary"
)

func marshal(c interface{}, b []byte) error {
	buf := bytes.NewBuffer(b)
	buf.Reset()
	return binary.Write(buf, binary.LittleEndian, c)
}

func unmarshal(c interface{}, b []byte) error {
	buf := bytes.NewBuffer(b)
	return binary.Read(buf, binary.LittleEndian, c)
}
