package cartridge

import "github.com/ashgrove/nescore/mapper"

// nrom implements mapper 0: fixed 16 or 32 KiB PRG-ROM, fixed 8 KiB
// CHR-ROM or CHR-RAM. The simplest board; no bank switching.
type nrom struct {
	prgROM   []byte
	chrROM   []byte
	chrRAM   bool
	mirror   mapper.Mirroring
	prgBanks int
}

func newNROM(cart *Cartridge) *nrom {
	return &nrom{
		prgROM:   cart.PRGROM,
		chrROM:   cart.CHRROM,
		chrRAM:   cart.IsCHRRAM,
		mirror:   cart.initialMirroring,
		prgBanks: len(cart.PRGROM) / prgBankSize,
	}
}

func (n *nrom) CPURead(addr uint16) (byte, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	a := addr - 0x8000
	if n.prgBanks == 1 {
		a &= 0x3FFF
	}
	return n.prgROM[a], true
}

func (n *nrom) CPUWrite(addr uint16, data byte) bool { return false }

func (n *nrom) PPURead(addr uint16) (byte, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return n.chrROM[addr], true
}

func (n *nrom) DebugRead(addr uint16) (byte, bool) { return n.PPURead(addr) }

func (n *nrom) PPUWrite(addr uint16, data byte) bool {
	if addr > 0x1FFF || !n.chrRAM {
		return false
	}
	n.chrROM[addr] = data
	return true
}

func (n *nrom) Mirroring() mapper.Mirroring { return n.mirror }
func (n *nrom) NotifyA12(addr uint16)       {}
func (n *nrom) Clock()                      {}
func (n *nrom) PollIRQ() bool               { return false }
func (n *nrom) ClearIRQ()                   {}
func (n *nrom) Save() []byte                { return nil }
func (n *nrom) Load(b []byte) error         { return nil }
