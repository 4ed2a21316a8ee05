package cpu

// buildOpcodeTable constructs the 256-entry dispatch table. Unused
// opcode slots fall back to a single-cycle implied NOP (XXX) rather
// than modeling the small number of genuine 6502 halt/crash opcodes,
// since no commercial NES title relies on those.
func (c *CPU) buildOpcodeTable() [256]Instruction {
	i := func(name string, op func() byte, am func() byte, amName string, cycles int) Instruction {
		return Instruction{Name: name, Operate: op, AddrMode: am, AddrModeName: amName, Cycles: cycles}
	}
	xxx := func(cycles int) Instruction { return i("???", c.XXX, c.IMP, "IMP", cycles) }

	t := [256]Instruction{}
	for idx := range t {
		t[idx] = xxx(2)
	}

	set := func(op byte, name string, fn func() byte, am func() byte, amName string, cycles int) {
		t[op] = i(name, fn, am, amName, cycles)
	}

	// Official instructions, grouped by mnemonic.
	set(0x69, "ADC", c.ADC, c.IMM, "IMM", 2)
	set(0x65, "ADC", c.ADC, c.ZP0, "ZP0", 3)
	set(0x75, "ADC", c.ADC, c.ZPX, "ZPX", 4)
	set(0x6D, "ADC", c.ADC, c.ABS, "ABS", 4)
	set(0x7D, "ADC", c.ADC, c.ABX, "ABX", 4)
	set(0x79, "ADC", c.ADC, c.ABY, "ABY", 4)
	set(0x61, "ADC", c.ADC, c.IZX, "IZX", 6)
	set(0x71, "ADC", c.ADC, c.IZY, "IZY", 5)

	set(0x29, "AND", c.AND, c.IMM, "IMM", 2)
	set(0x25, "AND", c.AND, c.ZP0, "ZP0", 3)
	set(0x35, "AND", c.AND, c.ZPX, "ZPX", 4)
	set(0x2D, "AND", c.AND, c.ABS, "ABS", 4)
	set(0x3D, "AND", c.AND, c.ABX, "ABX", 4)
	set(0x39, "AND", c.AND, c.ABY, "ABY", 4)
	set(0x21, "AND", c.AND, c.IZX, "IZX", 6)
	set(0x31, "AND", c.AND, c.IZY, "IZY", 5)

	set(0x0A, "ASL", c.ASL, c.IMP, "IMP", 2)
	set(0x06, "ASL", c.ASL, c.ZP0, "ZP0", 5)
	set(0x16, "ASL", c.ASL, c.ZPX, "ZPX", 6)
	set(0x0E, "ASL", c.ASL, c.ABS, "ABS", 6)
	set(0x1E, "ASL", c.ASL, c.ABX, "ABX", 7)

	set(0x90, "BCC", c.BCC, c.REL, "REL", 2)
	set(0xB0, "BCS", c.BCS, c.REL, "REL", 2)
	set(0xF0, "BEQ", c.BEQ, c.REL, "REL", 2)
	set(0x30, "BMI", c.BMI, c.REL, "REL", 2)
	set(0xD0, "BNE", c.BNE, c.REL, "REL", 2)
	set(0x10, "BPL", c.BPL, c.REL, "REL", 2)
	set(0x50, "BVC", c.BVC, c.REL, "REL", 2)
	set(0x70, "BVS", c.BVS, c.REL, "REL", 2)

	set(0x24, "BIT", c.BIT, c.ZP0, "ZP0", 3)
	set(0x2C, "BIT", c.BIT, c.ABS, "ABS", 4)

	set(0x00, "BRK", c.BRK, c.IMP, "IMP", 7)

	set(0x18, "CLC", c.CLC, c.IMP, "IMP", 2)
	set(0xD8, "CLD", c.CLD, c.IMP, "IMP", 2)
	set(0x58, "CLI", c.CLI, c.IMP, "IMP", 2)
	set(0xB8, "CLV", c.CLV, c.IMP, "IMP", 2)
	set(0x38, "SEC", c.SEC, c.IMP, "IMP", 2)
	set(0xF8, "SED", c.SED, c.IMP, "IMP", 2)
	set(0x78, "SEI", c.SEI, c.IMP, "IMP", 2)

	set(0xC9, "CMP", c.CMP, c.IMM, "IMM", 2)
	set(0xC5, "CMP", c.CMP, c.ZP0, "ZP0", 3)
	set(0xD5, "CMP", c.CMP, c.ZPX, "ZPX", 4)
	set(0xCD, "CMP", c.CMP, c.ABS, "ABS", 4)
	set(0xDD, "CMP", c.CMP, c.ABX, "ABX", 4)
	set(0xD9, "CMP", c.CMP, c.ABY, "ABY", 4)
	set(0xC1, "CMP", c.CMP, c.IZX, "IZX", 6)
	set(0xD1, "CMP", c.CMP, c.IZY, "IZY", 5)

	set(0xE0, "CPX", c.CPX, c.IMM, "IMM", 2)
	set(0xE4, "CPX", c.CPX, c.ZP0, "ZP0", 3)
	set(0xEC, "CPX", c.CPX, c.ABS, "ABS", 4)

	set(0xC0, "CPY", c.CPY, c.IMM, "IMM", 2)
	set(0xC4, "CPY", c.CPY, c.ZP0, "ZP0", 3)
	set(0xCC, "CPY", c.CPY, c.ABS, "ABS", 4)

	set(0xC6, "DEC", c.DEC, c.ZP0, "ZP0", 5)
	set(0xD6, "DEC", c.DEC, c.ZPX, "ZPX", 6)
	set(0xCE, "DEC", c.DEC, c.ABS, "ABS", 6)
	set(0xDE, "DEC", c.DEC, c.ABX, "ABX", 7)

	set(0xCA, "DEX", c.DEX, c.IMP, "IMP", 2)
	set(0x88, "DEY", c.DEY, c.IMP, "IMP", 2)
	set(0xE8, "INX", c.INX, c.IMP, "IMP", 2)
	set(0xC8, "INY", c.INY, c.IMP, "IMP", 2)

	set(0x49, "EOR", c.EOR, c.IMM, "IMM", 2)
	set(0x45, "EOR", c.EOR, c.ZP0, "ZP0", 3)
	set(0x55, "EOR", c.EOR, c.ZPX, "ZPX", 4)
	set(0x4D, "EOR", c.EOR, c.ABS, "ABS", 4)
	set(0x5D, "EOR", c.EOR, c.ABX, "ABX", 4)
	set(0x59, "EOR", c.EOR, c.ABY, "ABY", 4)
	set(0x41, "EOR", c.EOR, c.IZX, "IZX", 6)
	set(0x51, "EOR", c.EOR, c.IZY, "IZY", 5)

	set(0xE6, "INC", c.INC, c.ZP0, "ZP0", 5)
	set(0xF6, "INC", c.INC, c.ZPX, "ZPX", 6)
	set(0xEE, "INC", c.INC, c.ABS, "ABS", 6)
	set(0xFE, "INC", c.INC, c.ABX, "ABX", 7)

	set(0x4C, "JMP", c.JMP, c.ABS, "ABS", 3)
	set(0x6C, "JMP", c.JMP, c.IND, "IND", 5)
	set(0x20, "JSR", c.JSR, c.ABS, "ABS", 6)

	set(0xA9, "LDA", c.LDA, c.IMM, "IMM", 2)
	set(0xA5, "LDA", c.LDA, c.ZP0, "ZP0", 3)
	set(0xB5, "LDA", c.LDA, c.ZPX, "ZPX", 4)
	set(0xAD, "LDA", c.LDA, c.ABS, "ABS", 4)
	set(0xBD, "LDA", c.LDA, c.ABX, "ABX", 4)
	set(0xB9, "LDA", c.LDA, c.ABY, "ABY", 4)
	set(0xA1, "LDA", c.LDA, c.IZX, "IZX", 6)
	set(0xB1, "LDA", c.LDA, c.IZY, "IZY", 5)

	set(0xA2, "LDX", c.LDX, c.IMM, "IMM", 2)
	set(0xA6, "LDX", c.LDX, c.ZP0, "ZP0", 3)
	set(0xB6, "LDX", c.LDX, c.ZPY, "ZPY", 4)
	set(0xAE, "LDX", c.LDX, c.ABS, "ABS", 4)
	set(0xBE, "LDX", c.LDX, c.ABY, "ABY", 4)

	set(0xA0, "LDY", c.LDY, c.IMM, "IMM", 2)
	set(0xA4, "LDY", c.LDY, c.ZP0, "ZP0", 3)
	set(0xB4, "LDY", c.LDY, c.ZPX, "ZPX", 4)
	set(0xAC, "LDY", c.LDY, c.ABS, "ABS", 4)
	set(0xBC, "LDY", c.LDY, c.ABX, "ABX", 4)

	set(0x4A, "LSR", c.LSR, c.IMP, "IMP", 2)
	set(0x46, "LSR", c.LSR, c.ZP0, "ZP0", 5)
	set(0x56, "LSR", c.LSR, c.ZPX, "ZPX", 6)
	set(0x4E, "LSR", c.LSR, c.ABS, "ABS", 6)
	set(0x5E, "LSR", c.LSR, c.ABX, "ABX", 7)

	set(0xEA, "NOP", c.NOP, c.IMP, "IMP", 2)

	set(0x09, "ORA", c.ORA, c.IMM, "IMM", 2)
	set(0x05, "ORA", c.ORA, c.ZP0, "ZP0", 3)
	set(0x15, "ORA", c.ORA, c.ZPX, "ZPX", 4)
	set(0x0D, "ORA", c.ORA, c.ABS, "ABS", 4)
	set(0x1D, "ORA", c.ORA, c.ABX, "ABX", 4)
	set(0x19, "ORA", c.ORA, c.ABY, "ABY", 4)
	set(0x01, "ORA", c.ORA, c.IZX, "IZX", 6)
	set(0x11, "ORA", c.ORA, c.IZY, "IZY", 5)

	set(0x48, "PHA", c.PHA, c.IMP, "IMP", 3)
	set(0x08, "PHP", c.PHP, c.IMP, "IMP", 3)
	set(0x68, "PLA", c.PLA, c.IMP, "IMP", 4)
	set(0x28, "PLP", c.PLP, c.IMP, "IMP", 4)

	set(0x2A, "ROL", c.ROL, c.IMP, "IMP", 2)
	set(0x26, "ROL", c.ROL, c.ZP0, "ZP0", 5)
	set(0x36, "ROL", c.ROL, c.ZPX, "ZPX", 6)
	set(0x2E, "ROL", c.ROL, c.ABS, "ABS", 6)
	set(0x3E, "ROL", c.ROL, c.ABX, "ABX", 7)

	set(0x6A, "ROR", c.ROR, c.IMP, "IMP", 2)
	set(0x66, "ROR", c.ROR, c.ZP0, "ZP0", 5)
	set(0x76, "ROR", c.ROR, c.ZPX, "ZPX", 6)
	set(0x6E, "ROR", c.ROR, c.ABS, "ABS", 6)
	set(0x7E, "ROR", c.ROR, c.ABX, "ABX", 7)

	set(0x40, "RTI", c.RTI, c.IMP, "IMP", 6)
	set(0x60, "RTS", c.RTS, c.IMP, "IMP", 6)

	set(0xE9, "SBC", c.SBC, c.IMM, "IMM", 2)
	set(0xE5, "SBC", c.SBC, c.ZP0, "ZP0", 3)
	set(0xF5, "SBC", c.SBC, c.ZPX, "ZPX", 4)
	set(0xED, "SBC", c.SBC, c.ABS, "ABS", 4)
	set(0xFD, "SBC", c.SBC, c.ABX, "ABX", 4)
	set(0xF9, "SBC", c.SBC, c.ABY, "ABY", 4)
	set(0xE1, "SBC", c.SBC, c.IZX, "IZX", 6)
	set(0xF1, "SBC", c.SBC, c.IZY, "IZY", 5)

	set(0x85, "STA", c.STA, c.ZP0, "ZP0", 3)
	set(0x95, "STA", c.STA, c.ZPX, "ZPX", 4)
	set(0x8D, "STA", c.STA, c.ABS, "ABS", 4)
	set(0x9D, "STA", c.STA, c.ABX, "ABX", 5)
	set(0x99, "STA", c.STA, c.ABY, "ABY", 5)
	set(0x81, "STA", c.STA, c.IZX, "IZX", 6)
	set(0x91, "STA", c.STA, c.IZY, "IZY", 6)

	set(0x86, "STX", c.STX, c.ZP0, "ZP0", 3)
	set(0x96, "STX", c.STX, c.ZPY, "ZPY", 4)
	set(0x8E, "STX", c.STX, c.ABS, "ABS", 4)

	set(0x84, "STY", c.STY, c.ZP0, "ZP0", 3)
	set(0x94, "STY", c.STY, c.ZPX, "ZPX", 4)
	set(0x8C, "STY", c.STY, c.ABS, "ABS", 4)

	set(0xAA, "TAX", c.TAX, c.IMP, "IMP", 2)
	set(0xA8, "TAY", c.TAY, c.IMP, "IMP", 2)
	set(0xBA, "TSX", c.TSX, c.IMP, "IMP", 2)
	set(0x8A, "TXA", c.TXA, c.IMP, "IMP", 2)
	set(0x9A, "TXS", c.TXS, c.IMP, "IMP", 2)
	set(0x98, "TYA", c.TYA, c.IMP, "IMP", 2)

	// Unofficial opcodes relied on by a number of commercial titles
	// and by the nestest conformance ROM.
	set(0xA7, "LAX", c.LAX, c.ZP0, "ZP0", 3)
	set(0xB7, "LAX", c.LAX, c.ZPY, "ZPY", 4)
	set(0xAF, "LAX", c.LAX, c.ABS, "ABS", 4)
	set(0xBF, "LAX", c.LAX, c.ABY, "ABY", 4)
	set(0xA3, "LAX", c.LAX, c.IZX, "IZX", 6)
	set(0xB3, "LAX", c.LAX, c.IZY, "IZY", 5)

	set(0x87, "SAX", c.SAX, c.ZP0, "ZP0", 3)
	set(0x97, "SAX", c.SAX, c.ZPY, "ZPY", 4)
	set(0x8F, "SAX", c.SAX, c.ABS, "ABS", 4)
	set(0x83, "SAX", c.SAX, c.IZX, "IZX", 6)

	set(0xC7, "DCP", c.DCP, c.ZP0, "ZP0", 5)
	set(0xD7, "DCP", c.DCP, c.ZPX, "ZPX", 6)
	set(0xCF, "DCP", c.DCP, c.ABS, "ABS", 6)
	set(0xDF, "DCP", c.DCP, c.ABX, "ABX", 7)
	set(0xDB, "DCP", c.DCP, c.ABY, "ABY", 7)
	set(0xC3, "DCP", c.DCP, c.IZX, "IZX", 8)
	set(0xD3, "DCP", c.DCP, c.IZY, "IZY", 8)

	set(0xE7, "ISB", c.ISB, c.ZP0, "ZP0", 5)
	set(0xF7, "ISB", c.ISB, c.ZPX, "ZPX", 6)
	set(0xEF, "ISB", c.ISB, c.ABS, "ABS", 6)
	set(0xFF, "ISB", c.ISB, c.ABX, "ABX", 7)
	set(0xFB, "ISB", c.ISB, c.ABY, "ABY", 7)
	set(0xE3, "ISB", c.ISB, c.IZX, "IZX", 8)
	set(0xF3, "ISB", c.ISB, c.IZY, "IZY", 8)

	set(0x07, "SLO", c.SLO, c.ZP0, "ZP0", 5)
	set(0x17, "SLO", c.SLO, c.ZPX, "ZPX", 6)
	set(0x0F, "SLO", c.SLO, c.ABS, "ABS", 6)
	set(0x1F, "SLO", c.SLO, c.ABX, "ABX", 7)
	set(0x1B, "SLO", c.SLO, c.ABY, "ABY", 7)
	set(0x03, "SLO", c.SLO, c.IZX, "IZX", 8)
	set(0x13, "SLO", c.SLO, c.IZY, "IZY", 8)

	set(0x27, "RLA", c.RLA, c.ZP0, "ZP0", 5)
	set(0x37, "RLA", c.RLA, c.ZPX, "ZPX", 6)
	set(0x2F, "RLA", c.RLA, c.ABS, "ABS", 6)
	set(0x3F, "RLA", c.RLA, c.ABX, "ABX", 7)
	set(0x3B, "RLA", c.RLA, c.ABY, "ABY", 7)
	set(0x23, "RLA", c.RLA, c.IZX, "IZX", 8)
	set(0x33, "RLA", c.RLA, c.IZY, "IZY", 8)

	set(0x47, "SRE", c.SRE, c.ZP0, "ZP0", 5)
	set(0x57, "SRE", c.SRE, c.ZPX, "ZPX", 6)
	set(0x4F, "SRE", c.SRE, c.ABS, "ABS", 6)
	set(0x5F, "SRE", c.SRE, c.ABX, "ABX", 7)
	set(0x5B, "SRE", c.SRE, c.ABY, "ABY", 7)
	set(0x43, "SRE", c.SRE, c.IZX, "IZX", 8)
	set(0x53, "SRE", c.SRE, c.IZY, "IZY", 8)

	set(0x67, "RRA", c.RRA, c.ZP0, "ZP0", 5)
	set(0x77, "RRA", c.RRA, c.ZPX, "ZPX", 6)
	set(0x6F, "RRA", c.RRA, c.ABS, "ABS", 6)
	set(0x7F, "RRA", c.RRA, c.ABX, "ABX", 7)
	set(0x7B, "RRA", c.RRA, c.ABY, "ABY", 7)
	set(0x63, "RRA", c.RRA, c.IZX, "IZX", 8)
	set(0x73, "RRA", c.RRA, c.IZY, "IZY", 8)

	set(0x0B, "ANC", c.ANC, c.IMM, "IMM", 2)
	set(0x2B, "ANC", c.ANC, c.IMM, "IMM", 2)
	set(0x4B, "ALR", c.ALR, c.IMM, "IMM", 2)
	set(0x6B, "ARR", c.ARR, c.IMM, "IMM", 2)
	set(0xCB, "AXS", c.AXS, c.IMM, "IMM", 2)

	// Unofficial NOPs: some consume an operand byte (and one extra
	// cycle on a page-crossing absolute,X fetch), others are bare.
	for _, op := range []byte{0x1A, 0x3A, 0x5A, 0x7A, 0xDA, 0xFA} {
		set(op, "NOP", c.NOP, c.IMP, "IMP", 2)
	}
	for _, op := range []byte{0x80, 0x82, 0x89, 0xC2, 0xE2} {
		set(op, "NOP", c.NOP, c.IMM, "IMM", 2)
	}
	for _, op := range []byte{0x04, 0x44, 0x64} {
		set(op, "NOP", c.NOP, c.ZP0, "ZP0", 3)
	}
	for _, op := range []byte{0x14, 0x34, 0x54, 0x74, 0xD4, 0xF4} {
		set(op, "NOP", c.NOP, c.ZPX, "ZPX", 4)
	}
	set(0x0C, "NOP", c.NOP, c.ABS, "ABS", 4)
	for _, op := range []byte{0x1C, 0x3C, 0x5C, 0x7C, 0xDC, 0xFC} {
		set(op, "NOP", c.NOP, c.ABX, "ABX", 4)
	}
	set(0xEB, "SBC", c.SBC, c.IMM, "IMM", 2) // unofficial duplicate of E9

	return t
}
