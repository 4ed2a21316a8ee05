package cartridge

import "github.com/ashgrove/nescore/mapper"

// mmc3 implements mapper 4 (MMC3/TxROM). Eight internal bank
// registers are written through a bank-select/bank-data pair at
// $8000/$8001; PRG mode toggles which 8 KiB window at $8000/$C000 is
// switchable vs. fixed to the second-to-last bank; CHR mode inverts
// which half of the pattern tables uses 2+2 KiB banks vs. 1+1+1+1 KiB
// banks. A scanline IRQ counter decrements on each filtered rising
// edge of PPU address line A12, reloading from a latch written at
// $C000 when it underflows or when $C001 requests a reload.
type mmc3 struct {
	prgROM []byte
	chrROM []byte
	prgRAM []byte
	chrRAM bool

	targetRegister byte
	prgBankMode    bool // false: $8000 swappable, true: $C000 swappable
	chrInversion   bool // false: 2KB banks at $0000, true: at $1000
	registers      [8]byte

	prgBanks int
	chrBanks int

	irqCounter byte
	irqLatch   byte
	irqReload  bool
	irqEnabled bool
	irqPending bool
	lastA12    bool
	a12Delay   int
	fourScreen bool
	mirroring  byte
}

func newMMC3(cart *Cartridge) *mmc3 {
	return &mmc3{
		prgROM:     cart.PRGROM,
		chrROM:     cart.CHRROM,
		prgRAM:     make([]byte, 8192),
		chrRAM:     cart.IsCHRRAM,
		prgBanks:   len(cart.PRGROM) / 8192,
		chrBanks:   maxInt(len(cart.CHRROM)/1024, 1),
		fourScreen: cart.FourScreen,
	}
}

func (m *mmc3) PRGRAM() []byte { return m.prgRAM }

func (m *mmc3) CPURead(addr uint16) (byte, bool) {
	if addr >= 0x6000 && addr <= 0x7FFF {
		return m.prgRAM[addr-0x6000], true
	}
	if addr < 0x8000 {
		return 0, false
	}
	bank := m.getPRGBank(addr)
	return m.prgROM[bank*8192+int(addr&0x1FFF)], true
}

func (m *mmc3) getPRGBank(addr uint16) int {
	banks := maxInt(m.prgBanks, 1)
	secondToLast := maxInt(m.prgBanks-2, 0)
	last := maxInt(m.prgBanks-1, 0)
	switch {
	case addr <= 0x9FFF:
		if m.prgBankMode {
			return secondToLast
		}
		return int(m.registers[6]) % banks
	case addr <= 0xBFFF:
		return int(m.registers[7]) % banks
	case addr <= 0xDFFF:
		if m.prgBankMode {
			return int(m.registers[6]) % banks
		}
		return secondToLast
	default:
		return last
	}
}

func (m *mmc3) CPUWrite(addr uint16, data byte) bool {
	if addr >= 0x6000 && addr <= 0x7FFF {
		m.prgRAM[addr-0x6000] = data
		return true
	}
	if addr < 0x8000 {
		return false
	}

	isEven := addr%2 == 0
	switch {
	case addr <= 0x9FFF:
		if isEven {
			m.targetRegister = data & 0x07
			m.prgBankMode = data&0x40 != 0
			m.chrInversion = data&0x80 != 0
		} else {
			m.registers[m.targetRegister] = data
		}
	case addr <= 0xBFFF:
		if isEven {
			m.mirroring = data & 1
		}
		// odd ($A001) is PRG-RAM write-protect; not modeled.
	case addr <= 0xDFFF:
		if isEven {
			m.irqLatch = data
		} else {
			m.irqReload = true
		}
	default:
		if isEven {
			m.irqEnabled = false
			m.irqPending = false
		} else {
			m.irqEnabled = true
		}
	}
	return true
}

func (m *mmc3) getCHRBank(addr uint16) int {
	if m.chrInversion {
		switch {
		case addr <= 0x03FF:
			return int(m.registers[2]) % m.chrBanks
		case addr <= 0x07FF:
			return int(m.registers[3]) % m.chrBanks
		case addr <= 0x0BFF:
			return int(m.registers[4]) % m.chrBanks
		case addr <= 0x0FFF:
			return int(m.registers[5]) % m.chrBanks
		case addr <= 0x13FF:
			return int(m.registers[0]&0xFE) % m.chrBanks
		case addr <= 0x17FF:
			return int((m.registers[0]&0xFE)|1) % m.chrBanks
		case addr <= 0x1BFF:
			return int(m.registers[1]&0xFE) % m.chrBanks
		default:
			return int((m.registers[1]&0xFE)|1) % m.chrBanks
		}
	}
	switch {
	case addr <= 0x03FF:
		return int(m.registers[0]&0xFE) % m.chrBanks
	case addr <= 0x07FF:
		return int((m.registers[0]&0xFE)|1) % m.chrBanks
	case addr <= 0x0BFF:
		return int(m.registers[1]&0xFE) % m.chrBanks
	case addr <= 0x0FFF:
		return int((m.registers[1]&0xFE)|1) % m.chrBanks
	case addr <= 0x13FF:
		return int(m.registers[2]) % m.chrBanks
	case addr <= 0x17FF:
		return int(m.registers[3]) % m.chrBanks
	case addr <= 0x1BFF:
		return int(m.registers[4]) % m.chrBanks
	default:
		return int(m.registers[5]) % m.chrBanks
	}
}

func (m *mmc3) PPURead(addr uint16) (byte, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	m.checkA12(addr)
	bank := m.getCHRBank(addr)
	return m.chrROM[bank*1024+int(addr&0x03FF)], true
}

// DebugRead skips the A12 edge check so debugger overlays don't
// perturb the scanline IRQ counter.
func (m *mmc3) DebugRead(addr uint16) (byte, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	bank := m.getCHRBank(addr)
	return m.chrROM[bank*1024+int(addr&0x03FF)], true
}

func (m *mmc3) PPUWrite(addr uint16, data byte) bool {
	if addr > 0x1FFF || !m.chrRAM {
		return false
	}
	m.checkA12(addr)
	bank := m.getCHRBank(addr)
	m.chrROM[bank*1024+int(addr&0x03FF)] = data
	return true
}

func (m *mmc3) Mirroring() mapper.Mirroring {
	if m.fourScreen {
		return mapper.FourScreen
	}
	if m.mirroring == 0 {
		return mapper.Vertical
	}
	return mapper.Horizontal
}

// NotifyA12 is the primary edge-detection path: the PPU calls this on
// every internal bus access, including nametable fetches that never
// flow through PPURead/PPUWrite, so the mapper sees every A12
// transition.
func (m *mmc3) NotifyA12(addr uint16) {
	m.checkA12(addr)
}

func (m *mmc3) checkA12(addr uint16) {
	a12 := addr&0x1000 != 0
	if a12 && !m.lastA12 && m.a12Delay >= 2 {
		m.clockIRQ()
	}
	if a12 {
		m.lastA12 = true
		m.a12Delay = 0
	} else {
		m.lastA12 = false
	}
}

func (m *mmc3) clockIRQ() {
	if m.irqCounter == 0 || m.irqReload {
		m.irqCounter = m.irqLatch
		m.irqReload = false
	} else {
		m.irqCounter--
	}
	if m.irqCounter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

func (m *mmc3) Clock() {
	if !m.lastA12 {
		m.a12Delay++
	}
}

func (m *mmc3) PollIRQ() bool { return m.irqPending }
func (m *mmc3) ClearIRQ()     { m.irqPending = false }

type mmc3State struct {
	TargetRegister byte
	PrgBankMode    bool
	ChrInversion   bool
	Registers      [8]byte
	IrqCounter     byte
	IrqLatch       byte
	IrqReload      bool
	IrqEnabled     bool
	IrqPending     bool
	LastA12        bool
	A12Delay       int
	Mirroring      byte
}

func (m *mmc3) Save() []byte {
	s := mmc3State{
		TargetRegister: m.targetRegister,
		PrgBankMode:    m.prgBankMode,
		ChrInversion:   m.chrInversion,
		Registers:      m.registers,
		IrqCounter:     m.irqCounter,
		IrqLatch:       m.irqLatch,
		IrqReload:      m.irqReload,
		IrqEnabled:     m.irqEnabled,
		IrqPending:     m.irqPending,
		LastA12:        m.lastA12,
		A12Delay:       m.a12Delay,
		Mirroring:      m.mirroring,
	}
	return encodeGob(s)
}

func (m *mmc3) Load(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	var s mmc3State
	if err := decodeGob(b, &s); err != nil {
		return err
	}
	m.targetRegister = s.TargetRegister
	m.prgBankMode = s.PrgBankMode
	m.chrInversion = s.ChrInversion
	m.registers = s.Registers
	m.irqCounter = s.IrqCounter
	m.irqLatch = s.IrqLatch
	m.irqReload = s.IrqReload
	m.irqEnabled = s.IrqEnabled
	m.irqPending = s.IrqPending
	m.lastA12 = s.LastA12
	m.a12Delay = s.A12Delay
	m.mirroring = s.Mirroring
	return nil
}
