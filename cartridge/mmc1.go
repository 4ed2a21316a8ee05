package cartridge

import "github.com/ashgrove/nescore/mapper"

// mmc1 implements mapper 1 (MMC1/SxROM): a serial 5-bit shift
// register fed one bit per CPU write (LSB first), which after five
// writes latches into one of four internal registers selected by the
// address of the fifth write. Control selects mirroring, the PRG bank
// mode (32 KiB switchable, or 16 KiB fixed-low/fixed-high), and the
// CHR bank mode (one 8 KiB bank or two independent 4 KiB banks).
type mmc1 struct {
	prgROM []byte
	chrROM []byte
	chrRAM bool
	wram   []byte

	control  byte
	chrBank0 byte
	chrBank1 byte
	prgBank  byte

	shiftRegister byte
	writeCount    byte

	// mesen-compatible consecutive-write lockout: a write landing on
	// the CPU cycle immediately following a previous $8000-$FFFF write
	// is ignored outright (resolves spec.md's MMC1 Open Question).
	cycleCounter   uint64
	lastWriteCycle uint64
	haveLastWrite  bool

	wramDisabled       bool
	wramDisableCounter byte

	prgBanks int
	chrBanks int
}

func newMMC1(cart *Cartridge) *mmc1 {
	return &mmc1{
		prgROM:   cart.PRGROM,
		chrROM:   cart.CHRROM,
		chrRAM:   cart.IsCHRRAM,
		wram:     make([]byte, 8192),
		control:  0x0C,
		prgBanks: len(cart.PRGROM) / prgBankSize,
		chrBanks: len(cart.CHRROM) / 4096,
	}
}

func (m *mmc1) PRGRAM() []byte { return m.wram }

func (m *mmc1) CPURead(addr uint16) (byte, bool) {
	switch {
	case addr >= 0x6000 && addr <= 0x7FFF:
		if m.wramDisabled {
			return 0, false
		}
		return m.wram[addr-0x6000], true
	case addr >= 0x8000:
		prgMode := (m.control >> 2) & 3
		var bank int
		switch prgMode {
		case 0, 1:
			bank := int(m.prgBank&0x0E) >> 1
			bank %= maxInt(m.prgBanks/2, 1)
			return m.prgROM[bank*32768+int(addr&0x7FFF)], true
		case 2:
			if addr < 0xC000 {
				bank = 0
			} else {
				bank = int(m.prgBank&0x0F) % maxInt(m.prgBanks, 1)
			}
			return m.prgROM[bank*prgBankSize+int(addr&0x3FFF)], true
		default: // 3
			if addr < 0xC000 {
				bank = int(m.prgBank&0x0F) % maxInt(m.prgBanks, 1)
			} else {
				bank = m.prgBanks - 1
			}
			return m.prgROM[bank*prgBankSize+int(addr&0x3FFF)], true
		}
	}
	return 0, false
}

func (m *mmc1) CPUWrite(addr uint16, data byte) bool {
	if addr >= 0x6000 && addr <= 0x7FFF {
		if !m.wramDisabled {
			m.wram[addr-0x6000] = data
		}
		return true
	}
	if addr < 0x8000 {
		return false
	}

	if data&0x80 != 0 {
		m.shiftRegister = 0
		m.writeCount = 0
		m.control |= 0x0C
		m.haveLastWrite = false
		return true
	}

	if m.haveLastWrite && m.cycleCounter == m.lastWriteCycle+1 {
		// Consecutive-cycle write: ignored, per mesen's MMC1 behavior.
		return true
	}
	m.lastWriteCycle = m.cycleCounter
	m.haveLastWrite = true

	m.shiftRegister >>= 1
	m.shiftRegister |= (data & 1) << 4
	m.writeCount++

	if m.writeCount == 5 {
		target := (addr >> 13) & 3
		switch target {
		case 0:
			m.control = m.shiftRegister
		case 1:
			m.chrBank0 = m.shiftRegister
		case 2:
			m.chrBank1 = m.shiftRegister
		case 3:
			m.prgBank = m.shiftRegister
			if (m.prgBank>>4)&1 == 1 {
				m.wramDisableCounter = 2
			} else {
				m.wramDisabled = false
			}
		}
		m.shiftRegister = 0
		m.writeCount = 0
	}
	return true
}

func (m *mmc1) chrBankAddr(addr uint16) int {
	chrMode := (m.control >> 4) & 1
	if chrMode == 0 {
		bank := int(m.chrBank0&0x1E) >> 1
		bank %= maxInt(m.chrBanks/2, 1)
		return bank*8192 + int(addr&0x1FFF)
	}
	var bank int
	if addr < 0x1000 {
		bank = int(m.chrBank0)
	} else {
		bank = int(m.chrBank1)
	}
	bank %= maxInt(m.chrBanks, 1)
	return bank*4096 + int(addr&0x0FFF)
}

func (m *mmc1) PPURead(addr uint16) (byte, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return m.chrROM[m.chrBankAddr(addr)], true
}

func (m *mmc1) DebugRead(addr uint16) (byte, bool) { return m.PPURead(addr) }

func (m *mmc1) PPUWrite(addr uint16, data byte) bool {
	if addr > 0x1FFF || !m.chrRAM {
		return false
	}
	m.chrROM[m.chrBankAddr(addr)] = data
	return true
}

func (m *mmc1) Mirroring() mapper.Mirroring {
	switch m.control & 3 {
	case 0:
		return mapper.SingleScreenA
	case 1:
		return mapper.SingleScreenB
	case 2:
		return mapper.Vertical
	default:
		return mapper.Horizontal
	}
}

func (m *mmc1) NotifyA12(addr uint16) {}

func (m *mmc1) Clock() {
	m.cycleCounter++
	if m.wramDisableCounter > 0 {
		m.wramDisableCounter--
		if m.wramDisableCounter == 0 {
			m.wramDisabled = true
		}
	}
}

func (m *mmc1) PollIRQ() bool { return false }
func (m *mmc1) ClearIRQ()     {}

type mmc1State struct {
	Control, ChrBank0, ChrBank1, PrgBank byte
	ShiftRegister, WriteCount            byte
	WramDisableCounter                   byte
	WramDisabled                         bool
}

func (m *mmc1) Save() []byte {
	s := mmc1State{m.control, m.chrBank0, m.chrBank1, m.prgBank, m.shiftRegister, m.writeCount, m.wramDisableCounter, m.wramDisabled}
	return encodeGob(s)
}

func (m *mmc1) Load(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	var s mmc1State
	if err := decodeGob(b, &s); err != nil {
		return err
	}
	m.control, m.chrBank0, m.chrBank1, m.prgBank = s.Control, s.ChrBank0, s.ChrBank1, s.PrgBank
	m.shiftRegister, m.writeCount = s.ShiftRegister, s.WriteCount
	m.wramDisableCounter, m.wramDisabled = s.WramDisableCounter, s.WramDisabled
	return nil
}
