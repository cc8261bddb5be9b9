package cpu

const (
	MEMORY_SIZE = 0x10000 // Full 16-bit address space.
)

// Memory is a flat 64KB byte-addressable store, zeroed at construction.
type Memory struct {
	cells [MEMORY_SIZE]uint8
}

// ReadByte reads the byte at addr.
func (m *Memory) ReadByte(addr uint16) uint8 {
	return m.cells[addr]
}

// WriteByte writes val to addr.
func (m *Memory) WriteByte(addr uint16, val uint8) {
	m.cells[addr] = val
}

// ReadWord reads a little-endian 16-bit value at addr. The high byte
// read at 0xffff wraps to 0x0000.
func (m *Memory) ReadWord(addr uint16) uint16 {
	lo := uint16(m.cells[addr])
	hi := uint16(m.cells[addr+1])
	return hi<<8 | lo
}

// WriteWord writes a little-endian 16-bit value at addr.
func (m *Memory) WriteWord(addr uint16, val uint16) {
	m.cells[addr] = uint8(val)
	m.cells[addr+1] = uint8(val >> 8)
}

// CopyAt copies data into memory starting at base.
func (m *Memory) CopyAt(base uint16, data []uint8) (err error) {
	if int(base)+len(data) > MEMORY_SIZE {
		err = ErrProgramTooLarge
		return
	}
	copy(m.cells[base:], data)
	return
}
