package cartridge

import "github.com/ashgrove/nescore/mapper"

// gxrom implements mapper 66 (GxROM): a single register written to
// $8000-$FFFF selects both a 32 KiB PRG bank and an 8 KiB CHR bank.
//
// 7  bit  0
// ---- ----
// ..PP CCCC
//   ||   ++ Select 8 KiB CHR-ROM bank
//   ++----- Select 32 KiB PRG-ROM bank
type gxrom struct {
	prgROM   []byte
	chrROM   []byte
	prgBanks int
	chrBanks int
	prgBank  int
	chrBank  int
	mirror   mapper.Mirroring
}

func newGxROM(cart *Cartridge) *gxrom {
	return &gxrom{
		prgROM:   cart.PRGROM,
		chrROM:   cart.CHRROM,
		prgBanks: len(cart.PRGROM) / 32768,
		chrBanks: len(cart.CHRROM) / chrBankSize,
		mirror:   cart.initialMirroring,
	}
}

func (g *gxrom) CPURead(addr uint16) (byte, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	bank := g.prgBank % maxInt(g.prgBanks, 1)
	return g.prgROM[bank*32768+int(addr-0x8000)], true
}

func (g *gxrom) CPUWrite(addr uint16, data byte) bool {
	if addr < 0x8000 {
		return false
	}
	g.chrBank = int(data&0x0F) % maxInt(g.chrBanks, 1)
	g.prgBank = int((data>>4)&0x03) % maxInt(g.prgBanks, 1)
	return true
}

func (g *gxrom) PPURead(addr uint16) (byte, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return g.chrROM[g.chrBank*chrBankSize+int(addr)], true
}

func (g *gxrom) DebugRead(addr uint16) (byte, bool) { return g.PPURead(addr) }

func (g *gxrom) PPUWrite(addr uint16, data byte) bool { return false }

func (g *gxrom) Mirroring() mapper.Mirroring { return g.mirror }
func (g *gxrom) NotifyA12(addr uint16)       {}
func (g *gxrom) Clock()                      {}
func (g *gxrom) PollIRQ() bool               { return false }
func (g *gxrom) ClearIRQ()                   {}
func (g *gxrom) Save() []byte                { return []byte{byte(g.prgBank), byte(g.chrBank)} }
func (g *gxrom) Load(b []byte) error {
	if len(b) >= 2 {
		g.prgBank = int(b[0])
		g.chrBank = int(b[1])
	}
	return nil
}
