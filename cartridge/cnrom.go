package cartridge

import "github.com/ashgrove/nescore/mapper"

// cnrom implements mapper 3 (CNROM): fixed PRG-ROM (16 or 32 KiB) and
// switchable 8 KiB CHR-ROM banks. Bank select is written to any
// address in $8000-$FFFF.
type cnrom struct {
	prgROM   []byte
	chrROM   []byte
	chrRAM   bool
	mirror   mapper.Mirroring
	prgBanks int
	chrBanks int
	chrBank  int
}

func newCNROM(cart *Cartridge) *cnrom {
	return &cnrom{
		prgROM:   cart.PRGROM,
		chrROM:   cart.CHRROM,
		chrRAM:   cart.IsCHRRAM,
		mirror:   cart.initialMirroring,
		prgBanks: len(cart.PRGROM) / prgBankSize,
		chrBanks: len(cart.CHRROM) / chrBankSize,
	}
}

func (c *cnrom) CPURead(addr uint16) (byte, bool) {
	if addr < 0x8000 {
		return 0, false
	}
	a := addr - 0x8000
	if c.prgBanks == 1 {
		a &= 0x3FFF
	}
	return c.prgROM[a], true
}

func (c *cnrom) CPUWrite(addr uint16, data byte) bool {
	if addr < 0x8000 {
		return false
	}
	if c.chrBanks > 0 {
		c.chrBank = int(data) % c.chrBanks
	}
	return true
}

func (c *cnrom) PPURead(addr uint16) (byte, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return c.chrROM[c.chrBank*chrBankSize+int(addr)], true
}

func (c *cnrom) DebugRead(addr uint16) (byte, bool) { return c.PPURead(addr) }

func (c *cnrom) PPUWrite(addr uint16, data byte) bool {
	if addr > 0x1FFF || !c.chrRAM {
		return false
	}
	c.chrROM[c.chrBank*chrBankSize+int(addr)] = data
	return true
}

func (c *cnrom) Mirroring() mapper.Mirroring { return c.mirror }
func (c *cnrom) NotifyA12(addr uint16)       {}
func (c *cnrom) Clock()                      {}
func (c *cnrom) PollIRQ() bool               { return false }
func (c *cnrom) ClearIRQ()                   {}
func (c *cnrom) Save() []byte                { return []byte{byte(c.chrBank)} }
func (c *cnrom) Load(b []byte) error {
	if len(b) > 0 {
		c.chrBank = int(b[0])
	}
	return nil
}
