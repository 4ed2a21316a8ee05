// Package ppu implements the NES 2C02 Picture Processing Unit: the
// background/sprite pixel pipeline, its loopy-style scroll registers,
// and the CPU-facing $2000-$2007 register file.
package ppu

import (
	"image"
	"image/color"

	"github.com/ashgrove/nescore/mapper"
)

// LogDebug is an assignable hook for verbose per-cycle tracing. It
// defaults to a no-op; tests and command-line tools may replace it.
var LogDebug = func(format string, a ...interface{}) {}

// Config carries PPU behavior switches that vary across emulator
// implementations. Non-goals exclude an accurate reproduction of the
// sprite-overflow hardware bug's diagonal read pattern; this flag
// exists so a future contributor can opt into it without touching the
// core pipeline.
type Config struct {
	ReplicateOverflowBug bool
}

type spriteInfo struct {
	index int
	y     byte
	tile  byte
	attr  byte
	x     byte
}

// PPU is the 2C02. Its exported fields (Ctrl, Mask, Status, Scanline,
// Cycle, FrameCounter, NMI) are read by save-state code and debug
// tooling; register access from the CPU goes through Read/Write.
type PPU struct {
	Config Config

	mapper mapper.Mapper

	vram    [2048]byte
	oam     [256]byte
	palette [32]byte
	nt_map  [4]uint16

	Ctrl    byte
	Mask    byte
	Status  byte
	oamAddr byte

	vramAddr    uint16
	vramTmpAddr uint16
	fineX       byte
	addrLatch   byte
	ppuData     byte

	Scanline     int
	Cycle        int
	FrameCounter int
	// VBlankCount increments once per vblank entry (scanline 241,
	// cycle 1) rather than once per full frame, so a shell pacing
	// itself off vertical blank doesn't have to wait out the
	// post-render and pre-render scanlines too.
	VBlankCount int

	bgNextTileID       byte
	bgNextTileAttrib   byte
	bgNextTileLSB      byte
	bgNextTileMSB      byte
	bgPatternShifterLo uint16
	bgPatternShifterHi uint16
	bgAttribShifterLo  uint16
	bgAttribShifterHi  uint16

	spriteScanline    []spriteInfo
	spriteCount       byte
	spriteEvalCycle   int
	spritePatternLo   [8]byte
	spritePatternHi   [8]byte
	spriteAttrib      [8]byte
	spriteX           [8]byte
	spriteIsZero      [8]bool
	spriteZeroHit     bool
	spriteZero        bool
	sprite0InScanline bool

	NMI bool

	frame *image.RGBA

	SystemPalette [64]color.RGBA
}

// New creates a PPU with a black frame buffer and the standard NES
// palette loaded.
func New() *PPU {
	return &PPU{
		frame:         image.NewRGBA(image.Rect(0, 0, 256, 240)),
		SystemPalette: buildSystemPalette(),
	}
}

// ConnectMapper wires the PPU to the cartridge's mapper for CHR access
// and mirroring.
func (p *PPU) ConnectMapper(m mapper.Mapper) {
	p.mapper = m
}

// GetFrame returns the completed frame buffer. Safe to read at any
// time; the buffer updates pixel-by-pixel as Clock advances.
func (p *PPU) GetFrame() *image.RGBA {
	return p.frame
}

// GetPixels returns the frame's raw RGBA bytes, for callers that want
// a flat buffer instead of an image.Image.
func (p *PPU) GetPixels() []byte {
	return p.frame.Pix
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func (p *PPU) mirrorNametable(addr uint16) uint16 {
	addr &= 0x0FFF
	if p.mapper == nil {
		return addr & 0x07FF
	}
	switch p.mapper.Mirroring() {
	case mapper.Horizontal:
		table := addr / 0x0400
		offset := addr % 0x0400
		return (table/2)*0x0400 + offset
	case mapper.Vertical:
		return addr & 0x07FF
	case mapper.SingleScreenA:
		return addr & 0x03FF
	case mapper.SingleScreenB:
		return (addr & 0x03FF) + 0x0400
	default: // FourScreen: not backed by extra VRAM, degrade to vertical
		return addr & 0x07FF
	}
}

func (p *PPU) ppuWrite(addr uint16, data byte) {
	addr &= 0x3FFF
	switch {
	case addr <= 0x1FFF:
		if p.mapper != nil {
			p.mapper.NotifyA12(addr)
			p.mapper.PPUWrite(addr, data)
		}
	case addr <= 0x3EFF:
		p.vram[p.mirrorNametable(addr)] = data
	default:
		addr &= 0x001F
		if addr%4 == 0 && addr >= 0x10 {
			addr -= 0x10
		}
		p.palette[addr] = data
	}
}

func (p *PPU) ppuRead(addr uint16) byte {
	addr &= 0x3FFF
	switch {
	case addr <= 0x1FFF:
		if p.mapper != nil {
			p.mapper.NotifyA12(addr)
			if data, ok := p.mapper.PPURead(addr); ok {
				return data
			}
		}
		return 0
	case addr <= 0x3EFF:
		return p.vram[p.mirrorNametable(addr)]
	default:
		addr &= 0x001F
		if addr%4 == 0 && addr >= 0x10 {
			addr -= 0x10
		}
		return p.palette[addr]
	}
}

func (p *PPU) renderingEnabled() bool {
	return p.Mask&0x18 != 0
}

func (p *PPU) spriteHeight() int {
	if p.Ctrl&0x20 != 0 {
		return 16
	}
	return 8
}

// evaluateSprites builds the up-to-8-sprite scanline list for the NEXT
// scanline (mirrors real hardware evaluating during the current one at
// cycle 257) and sets the overflow flag per the documented (not
// bugged) behavior.
func (p *PPU) evaluateSprites() {
	p.spriteScanline = p.spriteScanline[:0]
	p.spriteZero = false
	height := p.spriteHeight()
	next := p.Scanline + 1
	count := 0
	for i := 0; i < 64; i++ {
		y := p.oam[i*4]
		row := next - int(y) - 1
		if row < 0 || row >= height {
			continue
		}
		if count < 8 {
			p.spriteScanline = append(p.spriteScanline, spriteInfo{
				index: i,
				y:     y,
				tile:  p.oam[i*4+1],
				attr:  p.oam[i*4+2],
				x:     p.oam[i*4+3],
			})
			if i == 0 {
				p.spriteZero = true
			}
		}
		count++
	}
	if count > 8 {
		p.Status |= 0x20
	}
	p.spriteCount = byte(len(p.spriteScanline))
}

func (p *PPU) fetchSpritePatterns() {
	height := p.spriteHeight()
	for i := 0; i < 8; i++ {
		p.spritePatternLo[i] = 0
		p.spritePatternHi[i] = 0
		p.spriteIsZero[i] = false
	}
	for i, s := range p.spriteScanline {
		row := p.Scanline - int(s.y)
		flipV := s.attr&0x80 != 0
		flipH := s.attr&0x40 != 0
		if flipV {
			row = height - 1 - row
		}

		var base uint16
		var tile byte
		if height == 16 {
			table := uint16(s.tile&1) << 12
			tile = s.tile &^ 1
			if row >= 8 {
				tile++
				row -= 8
			}
			base = table + uint16(tile)*16
		} else {
			base = (uint16(p.Ctrl&0x08) << 9) + uint16(s.tile)*16
		}

		lo := p.ppuRead(base + uint16(row))
		hi := p.ppuRead(base + uint16(row) + 8)
		if flipH {
			lo = reverseBits(lo)
			hi = reverseBits(hi)
		}
		p.spritePatternLo[i] = lo
		p.spritePatternHi[i] = hi
		p.spriteAttrib[i] = s.attr
		p.spriteX[i] = s.x
		p.spriteIsZero[i] = i == 0 && p.spriteZero
	}
}

func reverseBits(b byte) byte {
	var r byte
	for i := 0; i < 8; i++ {
		r <<= 1
		r |= b & 1
		b >>= 1
	}
	return r
}

func (p *PPU) backgroundPixel() (index byte, opaque bool) {
	if p.Mask&0x08 == 0 {
		return 0, false
	}
	mux := uint16(0x8000) >> p.fineX
	p1 := boolToByte(p.bgPatternShifterHi&mux != 0)
	p0 := boolToByte(p.bgPatternShifterLo&mux != 0)
	idx := (p1 << 1) | p0
	a1 := boolToByte(p.bgAttribShifterHi&mux != 0)
	a0 := boolToByte(p.bgAttribShifterLo&mux != 0)
	pal := (a1 << 1) | a0
	return (pal << 2) | idx, idx != 0
}

func (p *PPU) spritePixel() (index byte, palette byte, priority bool, isZero bool, opaque bool) {
	if p.Mask&0x10 == 0 {
		return 0, 0, false, false, false
	}
	x := p.Cycle - 1
	for i := 0; i < int(p.spriteCount); i++ {
		offset := x - int(p.spriteX[i])
		if offset < 0 || offset > 7 {
			continue
		}
		bit := byte(7 - offset)
		lo := (p.spritePatternLo[i] >> bit) & 1
		hi := (p.spritePatternHi[i] >> bit) & 1
		idx := (hi << 1) | lo
		if idx == 0 {
			continue
		}
		return idx, p.spriteAttrib[i] & 0x03, p.spriteAttrib[i]&0x20 != 0, p.spriteIsZero[i], true
	}
	return 0, 0, false, false, false
}

func (p *PPU) renderPixel() {
	x, y := p.Cycle-1, p.Scanline
	if x < 0 || x > 255 || y < 0 || y > 239 {
		return
	}

	bgIdx, bgOpaque := p.backgroundPixel()
	spIdx, spPal, spBehind, spZero, spOpaque := p.spritePixel()

	var paletteAddr uint16
	switch {
	case !bgOpaque && !spOpaque:
		paletteAddr = 0x3F00
	case !bgOpaque && spOpaque:
		paletteAddr = 0x3F10 + uint16(spPal)*4 + uint16(spIdx)
	case bgOpaque && !spOpaque:
		paletteAddr = 0x3F00 + uint16(bgIdx)
	default:
		if bgOpaque && spOpaque && spZero && p.Mask&0x18 == 0x18 && x != 255 {
			p.Status |= 0x40
		}
		if spBehind {
			paletteAddr = 0x3F00 + uint16(bgIdx)
		} else {
			paletteAddr = 0x3F10 + uint16(spPal)*4 + uint16(spIdx)
		}
	}

	colorIndex := p.ppuRead(paletteAddr) & 0x3F
	c := p.SystemPalette[colorIndex]
	p.frame.SetRGBA(x, y, c)
}

// Clock advances the PPU by one dot. The bus calls this three times
// per CPU cycle.
func (p *PPU) Clock() {
	if p.Scanline >= -1 && p.Scanline < 240 {
		if p.Scanline == -1 && p.Cycle == 1 {
			p.Status &^= 0xE0
		}

		if (p.Cycle >= 1 && p.Cycle < 258) || (p.Cycle >= 321 && p.Cycle < 338) {
			if p.renderingEnabled() {
				p.bgPatternShifterLo <<= 1
				p.bgPatternShifterHi <<= 1
				p.bgAttribShifterLo <<= 1
				p.bgAttribShifterHi <<= 1
			}

			switch (p.Cycle - 1) % 8 {
			case 0:
				p.bgPatternShifterLo = (p.bgPatternShifterLo & 0xFF00) | uint16(p.bgNextTileLSB)
				p.bgPatternShifterHi = (p.bgPatternShifterHi & 0xFF00) | uint16(p.bgNextTileMSB)
				p.bgAttribShifterLo = (p.bgAttribShifterLo & 0xFF00) | (uint16(p.bgNextTileAttrib)&1)*0xFF
				p.bgAttribShifterHi = (p.bgAttribShifterHi & 0xFF00) | ((uint16(p.bgNextTileAttrib)>>1)&1)*0xFF
				p.bgNextTileID = p.ppuRead(0x2000 | (p.vramAddr & 0x0FFF))
			case 2:
				p.bgNextTileAttrib = p.ppuRead(0x23C0 | (p.vramAddr & 0x0C00) | ((p.vramAddr >> 4) & 0x38) | ((p.vramAddr >> 2) & 0x07))
				if (p.vramAddr>>1)&1 != 0 {
					p.bgNextTileAttrib >>= 4
				}
				if (p.vramAddr>>6)&1 != 0 {
					p.bgNextTileAttrib >>= 2
				}
				p.bgNextTileAttrib &= 0x03
			case 4:
				base := uint16(p.Ctrl&0x10) << 8
				p.bgNextTileLSB = p.ppuRead(base + uint16(p.bgNextTileID)*16 + (p.vramAddr >> 12))
			case 6:
				base := uint16(p.Ctrl&0x10) << 8
				p.bgNextTileMSB = p.ppuRead(base + uint16(p.bgNextTileID)*16 + (p.vramAddr >> 12) + 8)
			case 7:
				if p.renderingEnabled() {
					if p.vramAddr&0x001F == 31 {
						p.vramAddr &= ^uint16(0x001F)
						p.vramAddr ^= 0x0400
					} else {
						p.vramAddr++
					}
				}
			}
		}

		if p.Cycle >= 1 && p.Cycle <= 256 {
			p.renderPixel()
		}

		if p.Cycle == 256 {
			if p.renderingEnabled() {
				if p.vramAddr&0x7000 != 0x7000 {
					p.vramAddr += 0x1000
				} else {
					p.vramAddr &= ^uint16(0x7000)
					y := (p.vramAddr & 0x03E0) >> 5
					switch y {
					case 29:
						y = 0
						p.vramAddr ^= 0x0800
					case 31:
						y = 0
					default:
						y++
					}
					p.vramAddr = (p.vramAddr & ^uint16(0x03E0)) | (y << 5)
				}
			}
		}

		if p.Cycle == 257 {
			if p.renderingEnabled() {
				p.vramAddr = (p.vramAddr & 0xFBE0) | (p.vramTmpAddr & 0x041F)
			}
			p.evaluateSprites()
		}

		if p.Cycle == 340 {
			p.fetchSpritePatterns()
		}

		if p.Scanline == -1 && p.Cycle >= 280 && p.Cycle < 305 {
			if p.renderingEnabled() {
				p.vramAddr = (p.vramAddr & 0x841F) | (p.vramTmpAddr & 0x7BE0)
			}
		}
	}

	if p.Scanline == 241 && p.Cycle == 1 {
		p.Status |= 0x80
		p.VBlankCount++
		if p.Ctrl&0x80 != 0 {
			p.NMI = true
		}
	}

	p.Cycle++
	if p.Cycle >= 341 {
		p.Cycle = 0
		p.Scanline++
		if p.Scanline >= 261 {
			p.Scanline = -1
			p.FrameCounter++
		}
	}
}

// Read services a CPU read of $2000-$2007 (addr already reduced to
// the low 3 bits by the bus).
func (p *PPU) Read(addr uint16) byte {
	switch addr & 7 {
	case 2:
		status := p.Status
		p.Status &^= 0x80
		p.addrLatch = 0
		return status
	case 4:
		return p.oam[p.oamAddr]
	case 7:
		data := p.ppuData
		p.ppuData = p.ppuRead(p.vramAddr)
		if p.vramAddr >= 0x3F00 {
			data = p.ppuData
		}
		if p.Ctrl&0x04 == 0 {
			p.vramAddr++
		} else {
			p.vramAddr += 32
		}
		return data
	}
	return 0
}

// Write services a CPU write to $2000-$2007.
func (p *PPU) Write(addr uint16, data byte) {
	switch addr & 7 {
	case 0:
		p.Ctrl = data
		p.vramTmpAddr = (p.vramTmpAddr & 0xF3FF) | (uint16(data&0x03) << 10)
	case 1:
		p.Mask = data
	case 3:
		p.oamAddr = data
	case 4:
		p.oam[p.oamAddr] = data
		p.oamAddr++
	case 5:
		if p.addrLatch == 0 {
			p.fineX = data & 0x07
			p.vramTmpAddr = (p.vramTmpAddr & 0xFFE0) | (uint16(data) >> 3)
			p.addrLatch = 1
		} else {
			p.vramTmpAddr = (p.vramTmpAddr & 0x8C1F) | ((uint16(data) & 0x07) << 12) | ((uint16(data) & 0xF8) << 2)
			p.addrLatch = 0
		}
	case 6:
		if p.addrLatch == 0 {
			p.vramTmpAddr = (p.vramTmpAddr & 0x00FF) | ((uint16(data) & 0x3F) << 8)
			p.addrLatch = 1
		} else {
			p.vramTmpAddr = (p.vramTmpAddr & 0xFF00) | uint16(data)
			p.vramAddr = p.vramTmpAddr
			p.addrLatch = 0
		}
	case 7:
		p.ppuWrite(p.vramAddr, data)
		if p.Ctrl&0x04 == 0 {
			p.vramAddr++
		} else {
			p.vramAddr += 32
		}
	}
}

// WriteOAMByte is called by OAM DMA once per transferred byte.
func (p *PPU) WriteOAMByte(offset byte, data byte) {
	p.oam[offset] = data
}
