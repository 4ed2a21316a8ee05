// Package cpu implements the NES's 6502-derived CPU (the 2A03, which
// drops the original 6502's decimal mode but is otherwise identical
// for instruction semantics).
package cpu

// Status flag bit positions, matched to the processor status byte
// layout used in BRK/PHP/PLP and every branch instruction.
const (
	C byte = 1 << 0 // carry
	Z byte = 1 << 1 // zero
	I byte = 1 << 2 // interrupt disable
	D byte = 1 << 3 // decimal (unused on the 2A03, but still settable)
	B byte = 1 << 4 // break (only meaningful in the byte pushed by BRK/PHP)
	U byte = 1 << 5 // unused, always reads back as 1
	V byte = 1 << 6 // overflow
	N byte = 1 << 7 // negative
)

// Bus is the address space the CPU reads instructions and operands
// from. The NES bus additionally wires in PPU/APU registers and the
// cartridge, none of which the CPU needs to know about.
type Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, data byte)
}

// CPU is a 2A03. Instruction dispatch is table-driven: each opcode
// maps to an addressing-mode function and an operation function, both
// of which report back whether they need one extra cycle.
type CPU struct {
	PC uint16
	SP byte
	A  byte
	X  byte
	Y  byte
	P  byte

	bus Bus

	opcode byte
	cycles int
	lookup [256]Instruction

	fetched uint8
	addrAbs uint16
	addrRel uint16

	nmiPending bool
	irqPending bool
}

// New creates a CPU with its opcode table built. Reset must be called
// before the first Clock to establish a valid PC.
func New() *CPU {
	c := &CPU{}
	c.lookup = c.buildOpcodeTable()
	return c
}

// ConnectBus wires the CPU to the system bus.
func (c *CPU) ConnectBus(bus Bus) {
	c.bus = bus
}

func (c *CPU) read(addr uint16) byte        { return c.bus.Read(addr) }
func (c *CPU) write(addr uint16, data byte) { c.bus.Write(addr, data) }

// flagMask lets callers name a flag either by its bit-mask constant
// (used throughout this package) or by its mnemonic letter (used by
// tests and debuggers that print flags the way assemblers do).
func flagMask(flag byte) byte {
	switch flag {
	case 'C':
		return C
	case 'Z':
		return Z
	case 'I':
		return I
	case 'D':
		return D
	case 'B':
		return B
	case 'U':
		return U
	case 'V':
		return V
	case 'N':
		return N
	default:
		return flag
	}
}

func (c *CPU) getFlag(flag byte) byte {
	if c.P&flagMask(flag) != 0 {
		return 1
	}
	return 0
}

func (c *CPU) setFlag(flag byte, v bool) {
	mask := flagMask(flag)
	if v {
		c.P |= mask
	} else {
		c.P &^= mask
	}
}

// Reset puts the CPU in its post-power-on-reset state: PC loaded from
// the reset vector at $FFFC/$FFFD, SP at $FD, interrupts disabled.
// The real 6502 spends 7 cycles doing this; modeled here as a fixed
// cycle count the caller clocks through before the first fetch.
func (c *CPU) Reset() {
	c.addrAbs = 0xFFFC
	lo := uint16(c.read(c.addrAbs))
	hi := uint16(c.read(c.addrAbs + 1))
	c.PC = (hi << 8) | lo

	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = U | I

	c.addrAbs, c.addrRel, c.fetched = 0, 0, 0
	c.cycles = 7
}

// RequestNMI latches a non-maskable interrupt, serviced at the next
// instruction boundary ahead of any pending IRQ.
func (c *CPU) RequestNMI() {
	c.nmiPending = true
}

// RequestIRQ latches a maskable interrupt; ignored if I is set when
// it's serviced.
func (c *CPU) RequestIRQ() {
	c.irqPending = true
}

func (c *CPU) pushStack(data byte) {
	c.write(0x0100+uint16(c.SP), data)
	c.SP--
}

func (c *CPU) popStack() byte {
	c.SP++
	return c.read(0x0100 + uint16(c.SP))
}

func (c *CPU) serviceNMI() {
	c.pushStack(byte(c.PC >> 8))
	c.pushStack(byte(c.PC))
	c.setFlag(B, false)
	c.setFlag(U, true)
	c.setFlag(I, true)
	c.pushStack(c.P)

	lo := uint16(c.read(0xFFFA))
	hi := uint16(c.read(0xFFFB))
	c.PC = (hi << 8) | lo
	c.cycles = 8
}

func (c *CPU) serviceIRQ() {
	c.pushStack(byte(c.PC >> 8))
	c.pushStack(byte(c.PC))
	c.setFlag(B, false)
	c.setFlag(U, true)
	c.setFlag(I, true)
	c.pushStack(c.P)

	lo := uint16(c.read(0xFFFE))
	hi := uint16(c.read(0xFFFF))
	c.PC = (hi << 8) | lo
	c.cycles = 7
}

// Clock advances the CPU by one cycle. Interrupts and the next
// instruction fetch only happen when the previous instruction's
// cycles have fully elapsed, matching the real part's instruction
// boundary semantics (NMI takes priority over IRQ).
func (c *CPU) Clock() {
	if c.cycles == 0 {
		if c.nmiPending {
			c.nmiPending = false
			c.serviceNMI()
			c.cycles--
			return
		}
		if c.irqPending {
			c.irqPending = false
			if c.getFlag(I) == 0 {
				c.serviceIRQ()
				c.cycles--
				return
			}
		}

		c.opcode = c.read(c.PC)
		c.PC++

		instr := c.lookup[c.opcode]
		c.cycles = instr.Cycles

		extra1 := instr.AddrMode()
		extra2 := instr.Operate()
		c.cycles += int(extra1 & extra2)
	}
	c.cycles--
}

// Cycles reports how many cycles remain before the CPU next fetches
// an opcode; nestest-style harnesses use it to step a whole
// instruction at a time.
func (c *CPU) Cycles() int { return c.cycles }

// InstructionAt looks up the decoded Instruction for an opcode byte,
// for disassembly in trace logs (nestest) and debuggers (vdb).
func (c *CPU) InstructionAt(opcode byte) Instruction { return c.lookup[opcode] }

// Complete reports whether the current instruction has finished
// executing.
func (c *CPU) Complete() bool { return c.cycles == 0 }
