package hci

// packet implements HCI ACL Data Packet [Vol 2, Part E, 5.4.2]
// Packet boundary flags, bit[5:6] of handle field's MSB
// Broadcast flags, bit[7:8] of handle field's MSB
type packet []byte

func (a packet) handle() uint16 { return uint16(a[0]) | (uint16(a[1]&0x0f) << 8) }
func (a packet) pbf() int       { return (int(a[1]) >> 4) & 0x3 }
func (a packet) bcf() int       { return (int(a[1]) >> 6) & 0x3 }
func (a packet) dlen() int      { return int(a[2]) | (int(a[3]) << 8) }
func (a packet) data() []byte   { return a[4:] }
