package cartridge

import "github.com/ashgrove/nescore/mapper"

// axrom implements mapper 7 (AxROM): a single register at
// $8000-$FFFF selects a 32 KiB PRG bank for the whole $8000-$FFFF
// window and picks which physical nametable page is mirrored across
// all four logical slots. CHR is always fixed 8 KiB RAM.
//
// 7  bit  0
// ---- ----
// xxxM xPPP
//    |  |||
//    |  +++- Select 32 KiB PRG-ROM bank for CPU $8000-$FFFF
//    +------ Select 1 KiB VRAM page for all 4 nametables
type axrom struct {
	prgROM   []byte
	chrRAM   []byte
	prgBanks int
	prgBank  int
	mirror   mapper.Mirroring
}

func newAxROM(cart *Cartridge) *axrom {
	return &axrom{
		prgROM:   cart.PRGROM,
		chrRAM:   cart.CHRROM,
		prgBanks: len(cart.PRGROM) / 32768,
		mirror:   mapper.SingleScreenA,
	}
}

func (a *axrom) CPURead(addr uint16) (byte, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	bank := a.prgBank % maxInt(a.prgBanks, 1)
	return a.prgROM[bank*32768+int(addr-0x8000)], true
}

func (a *axrom) CPUWrite(addr uint16, data byte) bool {
	if addr < 0x8000 {
		return false
	}
	a.prgBank = int(data & 0x07)
	if data&0x10 != 0 {
		a.mirror = mapper.SingleScreenB
	} else {
		a.mirror = mapper.SingleScreenA
	}
	return true
}

func (a *axrom) PPURead(addr uint16) (byte, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return a.chrRAM[addr], true
}

func (a *axrom) DebugRead(addr uint16) (byte, bool) { return a.PPURead(addr) }

func (a *axrom) PPUWrite(addr uint16, data byte) bool {
	if addr > 0x1FFF {
		return false
	}
	a.chrRAM[addr] = data
	return true
}

func (a *axrom) Mirroring() mapper.Mirroring { return a.mirror }
func (a *axrom) NotifyA12(addr uint16)       {}
func (a *axrom) Clock()                      {}
func (a *axrom) PollIRQ() bool               { return false }
func (a *axrom) ClearIRQ()                   {}
func (a *axrom) Save() []byte                { return []byte{byte(a.prgBank), byte(a.mirror)} }
func (a *axrom) Load(b []byte) error {
	if len(b) >= 2 {
		a.prgBank = int(b[0])
		a.mirror = mapper.Mirroring(b[1])
	}
	return nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
