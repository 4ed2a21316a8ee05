// Package cartridge loads iNES ROM images and implements the NES
// mapper bus: the cartridge-side circuitry that decodes CPU and PPU
// accesses, switches PRG/CHR banks, and (for some boards) asserts
// IRQs or snoops the PPU's address lines.
package cartridge

import (
	"fmt"
	"io/ioutil"
	"os"

	"github.com/ashgrove/nescore/mapper"
)

// UnsupportedMapperError is returned by New when the iNES header names
// a mapper number this core has no implementation for.
type UnsupportedMapperError struct {
	ID byte
}

func (e *UnsupportedMapperError) Error() string {
	return fmt.Sprintf("unsupported mapper: %d", e.ID)
}

// MalformedCartridgeError is returned by New when the ROM image fails
// to parse as a valid iNES file.
type MalformedCartridgeError struct {
	Reason string
}

func (e *MalformedCartridgeError) Error() string {
	return fmt.Sprintf("malformed cartridge: %s", e.Reason)
}

// SramSizeMismatchError is returned by LoadSRAM when the supplied
// battery-RAM dump doesn't match the size the cartridge allocated.
type SramSizeMismatchError struct {
	Want, Got int
}

func (e *SramSizeMismatchError) Error() string {
	return fmt.Sprintf("sram size mismatch: want %d bytes, got %d", e.Want, e.Got)
}

const (
	prgBankSize  = 16384
	chrBankSize  = 8192
	trainerSize  = 512
	headerSize   = 16
	chrRAMSize   = 8192
	iNESMagic0   = 'N'
	iNESMagic1   = 'E'
	iNESMagic2   = 'S'
	iNESMagic3   = 0x1A
)

// Cartridge holds a parsed ROM image plus the mapper instantiated for
// it. PRGROM/CHRROM are immutable after load except where the mapper
// itself writes to CHR-RAM.
type Cartridge struct {
	PRGROM []byte
	CHRROM []byte
	Mapper mapper.Mapper

	MapperID byte
	// initialMirroring is the mirroring named by the iNES header; most
	// mappers use it as their startup value and some never change it.
	initialMirroring mapper.Mirroring
	FourScreen       bool
	HasBattery       bool
	IsCHRRAM         bool
}

// New loads and parses a .nes file and constructs the mapper it names.
func New(path string) (*Cartridge, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := ioutil.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return NewFromBytes(data)
}

// NewFromBytes parses an in-memory iNES image. New is a thin wrapper
// around this for the common file-path case.
func NewFromBytes(data []byte) (*Cartridge, error) {
	if len(data) < headerSize {
		return nil, &MalformedCartridgeError{Reason: "file is too small to be a valid NES ROM"}
	}
	if data[0] != iNESMagic0 || data[1] != iNESMagic1 || data[2] != iNESMagic2 || data[3] != iNESMagic3 {
		return nil, &MalformedCartridgeError{Reason: "missing iNES signature"}
	}

	c := &Cartridge{}
	prgROMSize := int(data[4]) * prgBankSize
	chrROMSize := int(data[5]) * chrBankSize

	if prgROMSize == 0 {
		return nil, &MalformedCartridgeError{Reason: "PRG-ROM size is zero"}
	}

	flags6 := data[6]
	flags7 := data[7]

	hasTrainer := flags6&0x04 != 0
	c.FourScreen = flags6&0x08 != 0
	c.HasBattery = flags6&0x02 != 0

	offset := headerSize
	if hasTrainer {
		// Trainers are ignored: spec.md leaves "loaded at $7000" as an
		// option but no mapper in this core maps cartridge RAM there,
		// so skipping the bytes is equivalent for every supported board.
		offset += trainerSize
	}

	c.PRGROM = make([]byte, prgROMSize)
	if chrROMSize > 0 {
		c.CHRROM = make([]byte, chrROMSize)
		c.IsCHRRAM = false
	} else {
		c.CHRROM = make([]byte, chrRAMSize)
		c.IsCHRRAM = true
	}

	prgEnd := offset + prgROMSize
	if prgEnd > len(data) {
		prgEnd = len(data)
	}
	if prgEnd > offset {
		copy(c.PRGROM, data[offset:prgEnd])
	}

	if chrROMSize > 0 {
		chrStart := offset + prgROMSize
		chrEnd := chrStart + chrROMSize
		if chrStart < len(data) {
			if chrEnd > len(data) {
				chrEnd = len(data)
			}
			copy(c.CHRROM, data[chrStart:chrEnd])
		}
	}

	c.MapperID = (flags6 >> 4) | (flags7 & 0xF0)
	if flags6&1 != 0 {
		c.initialMirroring = mapper.Vertical
	} else {
		c.initialMirroring = mapper.Horizontal
	}
	if c.FourScreen {
		c.initialMirroring = mapper.FourScreen
	}

	m, err := NewMapper(c, c.MapperID)
	if err != nil {
		return nil, err
	}
	c.Mapper = m

	return c, nil
}

// NewMapper constructs the concrete mapper named by mapperID. Kept as
// the single constructor for every board this core supports; the
// mapper package only names the shared interface because the structs
// below need direct access to the cartridge's ROM slices.
func NewMapper(cart *Cartridge, mapperID byte) (mapper.Mapper, error) {
	switch mapperID {
	case 0:
		return newNROM(cart), nil
	case 1:
		return newMMC1(cart), nil
	case 2:
		return newUxROM(cart), nil
	case 3:
		return newCNROM(cart), nil
	case 4:
		return newMMC3(cart), nil
	case 7:
		return newAxROM(cart), nil
	case 9:
		return newMMC2(cart), nil
	case 66:
		return newGxROM(cart), nil
	default:
		return nil, &UnsupportedMapperError{ID: mapperID}
	}
}

// prgRAMHolder is implemented by mappers that own a battery-backable
// PRG-RAM region (MMC1, MMC3, ...). Mappers without PRG-RAM simply
// don't implement it, and SRAM/LoadSRAM become no-ops.
type prgRAMHolder interface {
	PRGRAM() []byte
}

// SRAM returns the cartridge's battery-backed PRG-RAM, or nil if the
// mapper has none. Exported per spec.md §6's "sram() -> &[u8]" surface.
func (c *Cartridge) SRAM() []byte {
	if h, ok := c.Mapper.(prgRAMHolder); ok {
		return h.PRGRAM()
	}
	return nil
}

// LoadSRAM restores a previously-exported battery-RAM dump.
func (c *Cartridge) LoadSRAM(data []byte) error {
	h, ok := c.Mapper.(prgRAMHolder)
	if !ok {
		if len(data) == 0 {
			return nil
		}
		return &SramSizeMismatchError{Want: 0, Got: len(data)}
	}
	ram := h.PRGRAM()
	if len(data) != len(ram) {
		return &SramSizeMismatchError{Want: len(ram), Got: len(data)}
	}
	copy(ram, data)
	return nil
}
