package ppu

import "image/color"

// DebugRead safely reads PPU memory without triggering mapper side
// effects like MMC3's A12 counter or MMC2's CHR latches.
func (p *PPU) DebugRead(addr uint16) byte {
	var data byte
	addr &= 0x3FFF

	switch {
	case addr <= 0x1FFF:
		if p.mapper != nil {
			data, _ = p.mapper.DebugRead(addr)
		}
	case addr >= 0x2000 && addr <= 0x3EFF:
		data = p.vram[p.mirrorNametable(addr)]
	case addr >= 0x3F00 && addr <= 0x3FFF:
		a := addr & 0x001F
		if a%4 == 0 && a >= 0x10 {
			a -= 0x10
		}
		data = p.palette[a]
	}

	return data
}

// GetPatternTable extracts the requested pattern table (0 or 1) into a
// 128x128 RGBA byte slice using the specified palette index (0-7), for
// debug overlays.
func (p *PPU) GetPatternTable(i int, palette byte, dest []byte) {
	for tileY := 0; tileY < 16; tileY++ {
		for tileX := 0; tileX < 16; tileX++ {
			offset := uint16(tileY*256 + tileX*16)
			for row := uint16(0); row < 8; row++ {
				tileLSB := p.DebugRead(uint16(i)*0x1000 + offset + row)
				tileMSB := p.DebugRead(uint16(i)*0x1000 + offset + row + 8)

				for col := 0; col < 8; col++ {
					pixel := (tileLSB & 0x01) | ((tileMSB & 0x01) << 1)
					tileLSB >>= 1
					tileMSB >>= 1

					x := tileX*8 + (7 - col)
					y := tileY*8 + int(row)

					colorIndex := p.DebugRead(0x3F00 + uint16(palette)*4 + uint16(pixel))
					var c color.RGBA
					if pixel == 0 {
						c = color.RGBA{R: 0, G: 0, B: 0, A: 255}
					} else {
						c = p.SystemPalette[colorIndex]
					}

					idx := (y*128 + x) * 4
					dest[idx] = c.R
					dest[idx+1] = c.G
					dest[idx+2] = c.B
					dest[idx+3] = 255
				}
			}
		}
	}
}
