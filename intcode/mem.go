package intcode

// MaxMemory is the default number of cells a Machine may grow its memory
// to. Accessing an address at or above the limit is an AddressOutOfRange
// fault.
const MaxMemory = 1 << 24

func (m *Machine) limit() int64 {
	if m.MemLimit > 0 {
		return m.MemLimit
	}
	return MaxMemory
}

func (m *Machine) checkAddr(addr int64) error {
	switch {
	case addr < 0:
		return Fault{Code: NegativeAddress, Value: addr}
	case addr >= m.limit():
		return Fault{Code: AddressOutOfRange, Value: addr}
	}
	return nil
}

// grow extends Mem with zeros so that addr is in bounds.
// It panics with a Fault if addr is not addressable; Step recovers it.
func (m *Machine) grow(addr int64) {
	if err := m.checkAddr(addr); err != nil {
		panic(err)
	}
	if n := addr + 1; n > int64(len(m.Mem)) {
		m.Mem = append(m.Mem, make([]int64, n-int64(len(m.Mem)))...)
	}
}

func (m *Machine) read(addr int64) int64 {
	m.grow(addr)
	return m.Mem[addr]
}

func (m *Machine) write(addr, v int64) {
	m.grow(addr)
	m.Mem[addr] = v
}

// cell returns the value at addr without growing memory.
func (m *Machine) cell(addr int64) int64 {
	if addr < int64(len(m.Mem)) {
		return m.Mem[addr]
	}
	return 0
}

// Peek returns the value at addr. Cells beyond the end of memory read as
// zero and memory is not grown.
func (m *Machine) Peek(addr int64) (int64, error) {
	if err := m.checkAddr(addr); err != nil {
		return 0, err
	}
	return m.cell(addr), nil
}

// Poke stores v at addr, growing memory if necessary.
func (m *Machine) Poke(addr, v int64) error {
	if err := m.checkAddr(addr); err != nil {
		return err
	}
	m.write(addr, v)
	return nil
}
