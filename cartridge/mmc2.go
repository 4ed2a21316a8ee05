package cartridge

import "github.com/ashgrove/nescore/mapper"

// mmc2 implements mapper 9 (PxROM/MMC2), used by Punch-Out!!. PRG-ROM
// is one switchable 8 KiB bank at $8000-$9FFF with the last three
// 8 KiB banks fixed at $A000-$FFFF. CHR-ROM is split into two 4 KiB
// windows, each served by one of two banks selected by a latch; the
// latch flips automatically when the PPU fetches specific tiles
// ($0FD8/$0FE8 for the low window, $1FD8-$1FDF/$1FE8-$1FEF for the
// high window), which is how Punch-Out!! animates large sprites built
// from background tiles.
type mmc2 struct {
	prgROM []byte
	chrROM []byte

	prgBanks8k int
	prgBank    int

	chrBank0FD int
	chrBank0FE int
	chrBank1FD int
	chrBank1FE int

	latch0 byte // 0xFD or 0xFE
	latch1 byte

	mirror mapper.Mirroring
}

func newMMC2(cart *Cartridge) *mmc2 {
	return &mmc2{
		prgROM:     cart.PRGROM,
		chrROM:     cart.CHRROM,
		prgBanks8k: len(cart.PRGROM) / 8192,
		latch0:     0xFE,
		latch1:     0xFE,
		mirror:     cart.initialMirroring,
	}
}

func (m *mmc2) CPURead(addr uint16) (byte, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	switch {
	case addr <= 0x9FFF:
		return m.prgROM[(m.prgBank%m.prgBanks8k)*8192+int(addr-0x8000)], true
	case addr <= 0xBFFF:
		return m.prgROM[(m.prgBanks8k-3)*8192+int(addr-0xA000)], true
	case addr <= 0xDFFF:
		return m.prgROM[(m.prgBanks8k-2)*8192+int(addr-0xC000)], true
	default:
		return m.prgROM[(m.prgBanks8k-1)*8192+int(addr-0xE000)], true
	}
}

func (m *mmc2) CPUWrite(addr uint16, data byte) bool {
	switch {
	case addr >= 0xA000 && addr <= 0xAFFF:
		m.prgBank = int(data & 0x0F)
	case addr >= 0xB000 && addr <= 0xBFFF:
		m.chrBank0FD = int(data & 0x1F)
	case addr >= 0xC000 && addr <= 0xCFFF:
		m.chrBank0FE = int(data & 0x1F)
	case addr >= 0xD000 && addr <= 0xDFFF:
		m.chrBank1FD = int(data & 0x1F)
	case addr >= 0xE000 && addr <= 0xEFFF:
		m.chrBank1FE = int(data & 0x1F)
	case addr >= 0xF000 && addr <= 0xFFFF:
		if data&1 != 0 {
			m.mirror = mapper.Horizontal
		} else {
			m.mirror = mapper.Vertical
		}
	default:
		return false
	}
	return true
}

func (m *mmc2) chrBank(addr uint16) int {
	if addr <= 0x0FFF {
		if m.latch0 == 0xFD {
			return m.chrBank0FD
		}
		return m.chrBank0FE
	}
	if m.latch1 == 0xFD {
		return m.chrBank1FD
	}
	return m.chrBank1FE
}

// latchFor inspects the address of a just-issued PPU read and flips
// the appropriate latch if it lands on one of MMC2's trigger tiles.
func (m *mmc2) latchFor(addr uint16) {
	switch {
	case addr == 0x0FD8:
		m.latch0 = 0xFD
	case addr == 0x0FE8:
		m.latch0 = 0xFE
	case addr >= 0x1FD8 && addr <= 0x1FDF:
		m.latch1 = 0xFD
	case addr >= 0x1FE8 && addr <= 0x1FEF:
		m.latch1 = 0xFE
	}
}

func (m *mmc2) PPURead(addr uint16) (byte, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	bank := m.chrBank(addr)
	data := m.chrROM[bank*4096+int(addr&0x0FFF)]
	m.latchFor(addr)
	return data, true
}

func (m *mmc2) DebugRead(addr uint16) (byte, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	bank := m.chrBank(addr)
	return m.chrROM[bank*4096+int(addr&0x0FFF)], true
}

func (m *mmc2) PPUWrite(addr uint16, data byte) bool { return false }

func (m *mmc2) Mirroring() mapper.Mirroring { return m.mirror }
func (m *mmc2) NotifyA12(addr uint16)       {}
func (m *mmc2) Clock()                      {}
func (m *mmc2) PollIRQ() bool               { return false }
func (m *mmc2) ClearIRQ()                   {}

func (m *mmc2) Save() []byte {
	return []byte{
		byte(m.prgBank), byte(m.chrBank0FD), byte(m.chrBank0FE),
		byte(m.chrBank1FD), byte(m.chrBank1FE), m.latch0, m.latch1, byte(m.mirror),
	}
}

func (m *mmc2) Load(b []byte) error {
	if len(b) < 8 {
		return nil
	}
	m.prgBank = int(b[0])
	m.chrBank0FD = int(b[1])
	m.chrBank0FE = int(b[2])
	m.chrBank1FD = int(b[3])
	m.chrBank1FE = int(b[4])
	m.latch0 = b[5]
	m.latch1 = b[6]
	m.mirror = mapper.Mirroring(b[7])
	return nil
}
