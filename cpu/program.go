package cpu

// Statement is a single assembled source statement.
type Statement struct {
	Addr      uint16  // Address of the first encoded byte.
	LineNo    int     // Source line number.
	Source    string  // Source text, comment stripped.
	Bytes     []uint8 // Encoded bytes.
	LinkLabel string  // Absolute operand label, patched during linking.
}

// Program is an assembled listing.
type Program struct {
	Statements []Statement
}

// Debug locates the statement covering an execution address.
type Debug struct {
	*Statement
	Index int
}

func (prog *Program) Debug(addr uint16) (dbg Debug) {
	for n, st := range prog.Statements {
		if addr >= st.Addr && addr < st.Addr+uint16(len(st.Bytes)) {
			dbg = Debug{
				Statement: &prog.Statements[n],
				Index:     int(addr - st.Addr),
			}
			break
		}
	}

	return
}

// Binary flattens the listing into a raw image loadable at LOAD_BASE.
func (prog *Program) Binary() (bins []uint8) {
	for _, st := range prog.Statements {
		bins = append(bins, st.Bytes...)
	}

	return
}
