package rt

import "encoding/binary"

// Emulated RAM accessors. The core is little endian; all table entries and
// data moves are word sized. There is no error channel here: an access
// outside the emulated RAM is the host-side image of undefined hardware
// behavior and panics.

func (m *Machine) Read32(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(m.mem[addr : addr+4])
}

func (m *Machine) Write32(addr, val uint32) {
	binary.LittleEndian.PutUint32(m.mem[addr:addr+4], val)
}

// ReadBytes copies n bytes starting at addr.
func (m *Machine) ReadBytes(addr, n uint32) []byte {
	out := make([]byte, n)
	copy(out, m.mem[addr:addr+n])
	return out
}

// WriteBytes copies b into RAM at addr.
func (m *Machine) WriteBytes(addr uint32, b []byte) {
	copy(m.mem[addr:], b)
}
