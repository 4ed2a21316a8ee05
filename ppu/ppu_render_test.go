package ppu

import (
	"image/color"
	"testing"

	"github.com/ashgrove/nescore/mapper"
)

// mockMapper implements mapper.Mapper backed by a flat CHR slice, for
// background-rendering tests that don't need real bank switching.
type mockMapper struct {
	chrROM    []byte
	mirroring mapper.Mirroring
}

func (m *mockMapper) CPURead(addr uint16) (byte, bool)     { return 0, false }
func (m *mockMapper) CPUWrite(addr uint16, data byte) bool { return false }

func (m *mockMapper) PPURead(addr uint16) (byte, bool) {
	if addr <= 0x1FFF {
		return m.chrROM[addr], true
	}
	return 0, false
}

func (m *mockMapper) PPUWrite(addr uint16, data byte) bool {
	if addr <= 0x1FFF {
		m.chrROM[addr] = data
		return true
	}
	return false
}

func (m *mockMapper) DebugRead(addr uint16) (byte, bool) { return m.PPURead(addr) }
func (m *mockMapper) Mirroring() mapper.Mirroring        { return m.mirroring }
func (m *mockMapper) NotifyA12(addr uint16)              {}
func (m *mockMapper) Clock()                             {}
func (m *mockMapper) PollIRQ() bool                      { return false }
func (m *mockMapper) ClearIRQ()                          {}
func (m *mockMapper) Save() []byte                       { return nil }
func (m *mockMapper) Load([]byte) error                  { return nil }

func newTestMapper() *mockMapper {
	chrROM := make([]byte, 0x2000)
	for i := 0; i < 8; i++ {
		chrROM[i] = 0xFF // tile 0, plane 0: all set bits
	}
	return &mockMapper{chrROM: chrROM, mirroring: mapper.Vertical}
}

// TestPPURenderBackground checks that the PPU resolves a solid
// background tile to the expected palette color.
func TestPPURenderBackground(t *testing.T) {
	p := New()
	p.ConnectMapper(newTestMapper())

	for i := range p.oam {
		p.oam[i] = 0xFF // push all sprites off-screen
	}

	for i := 0; i < 0x0400; i++ {
		p.vram[i] = 0x00
	}

	p.palette[0x00] = 0x0F
	p.palette[0x01] = 0x16

	p.Ctrl = 0x00
	p.Mask = 0x18

	totalPPUCycles := 2 * 89342
	for i := 0; i < totalPPUCycles; i++ {
		p.Clock()
	}

	frame := p.GetFrame()
	expectedColor := p.SystemPalette[p.palette[1]]

	tests := []struct{ x, y int }{
		{0, 0},
		{128, 120},
		{255, 239},
	}
	for _, tc := range tests {
		actual := frame.At(tc.x, tc.y).(color.RGBA)
		if actual != expectedColor {
			t.Errorf("at (%d, %d): expected color %v, got %v", tc.x, tc.y, expectedColor, actual)
		}
	}
}

func TestMirrorNametableVertical(t *testing.T) {
	p := New()
	p.ConnectMapper(&mockMapper{chrROM: make([]byte, 0x2000), mirroring: mapper.Vertical})

	p.ppuWrite(0x2000, 0xAB)
	if got := p.ppuRead(0x2800); got != 0xAB {
		t.Errorf("vertical mirroring: expected $2800 to mirror $2000, got %#x", got)
	}
}

func TestMirrorNametableHorizontal(t *testing.T) {
	p := New()
	p.ConnectMapper(&mockMapper{chrROM: make([]byte, 0x2000), mirroring: mapper.Horizontal})

	p.ppuWrite(0x2000, 0xCD)
	if got := p.ppuRead(0x2400); got != 0xCD {
		t.Errorf("horizontal mirroring: expected $2400 to mirror $2000, got %#x", got)
	}
}
