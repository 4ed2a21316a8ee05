package cartridge

import "github.com/ashgrove/nescore/mapper"

// uxrom implements mapper 2 (UxROM): a switchable 16 KiB PRG bank at
// $8000-$BFFF and a fixed last 16 KiB bank at $C000-$FFFF. CHR is
// unbanked, typically CHR-RAM.
type uxrom struct {
	prgROM   []byte
	chrROM   []byte
	chrRAM   bool
	mirror   mapper.Mirroring
	prgBanks int
	prgBank  int
}

func newUxROM(cart *Cartridge) *uxrom {
	return &uxrom{
		prgROM:   cart.PRGROM,
		chrROM:   cart.CHRROM,
		chrRAM:   cart.IsCHRRAM,
		mirror:   cart.initialMirroring,
		prgBanks: len(cart.PRGROM) / prgBankSize,
	}
}

func (u *uxrom) CPURead(addr uint16) (byte, bool) {
	switch {
	case addr >= 0x8000 && addr <= 0xBFFF:
		bank := u.prgBank % u.prgBanks
		return u.prgROM[bank*prgBankSize+int(addr-0x8000)], true
	case addr >= 0xC000:
		bank := u.prgBanks - 1
		return u.prgROM[bank*prgBankSize+int(addr-0xC000)], true
	}
	return 0, false
}

func (u *uxrom) CPUWrite(addr uint16, data byte) bool {
	if addr < 0x8000 {
		return false
	}
	u.prgBank = int(data)
	return true
}

func (u *uxrom) PPURead(addr uint16) (byte, bool) {
	if addr > 0x1FFF {
		return 0, false
	}
	return u.chrROM[addr], true
}

func (u *uxrom) DebugRead(addr uint16) (byte, bool) { return u.PPURead(addr) }

func (u *uxrom) PPUWrite(addr uint16, data byte) bool {
	if addr > 0x1FFF || !u.chrRAM {
		return false
	}
	u.chrROM[addr] = data
	return true
}

func (u *uxrom) Mirroring() mapper.Mirroring { return u.mirror }
func (u *uxrom) NotifyA12(addr uint16)       {}
func (u *uxrom) Clock()                      {}
func (u *uxrom) PollIRQ() bool               { return false }
func (u *uxrom) ClearIRQ()                   {}
func (u *uxrom) Save() []byte                { return []byte{byte(u.prgBank)} }
func (u *uxrom) Load(b []byte) error {
	if len(b) > 0 {
		u.prgBank = int(b[0])
	}
	return nil
}
