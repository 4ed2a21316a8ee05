// Package bus wires the CPU, PPU, APU, controllers, and cartridge
// mapper into the single NES address space and drives the
// PPU-dot-at-a-time / CPUx1-per-3-dots / APUx1-per-3-dots tick
// interleaving real hardware runs.
package bus

import (
	"github.com/ashgrove/nescore/apu"
	"github.com/ashgrove/nescore/cartridge"
	"github.com/ashgrove/nescore/controller"
	"github.com/ashgrove/nescore/cpu"
	"github.com/ashgrove/nescore/ppu"
)

// Bus is the NES aggregate: spec.md's "memory bus and cartridge
// mapper abstraction" component.
type Bus struct {
	cpu  *cpu.CPU
	PPU  *ppu.PPU
	APU  *apu.APU
	cart *cartridge.Cartridge

	controller1 *controller.Controller
	controller2 *controller.Controller

	ram [2048]byte

	// openBus is the last byte driven onto the CPU data bus; reads of
	// unmapped addresses return it rather than zero, matching the
	// 2A03's floating-bus behavior (decay over time is not modeled,
	// per spec.md §7's explicit simplification).
	openBus byte

	// SystemClocks counts PPU dots (three per CPU cycle), so it also
	// serves as the master clock 89342-per-frame callers step by.
	SystemClocks int

	dmaPage    byte
	dmaAddr    byte
	dmaData    byte
	dmaActive  bool
	dmaSync    bool // true until the alignment (possibly +1) cycle has passed
	dmaHasData bool // true once dmaData holds a byte waiting to be written

	// paused freezes Clock() for the debug/RL transport (server.GRPCServer):
	// a shell driving its frame loop by calling Clock() in a fixed-size
	// batch, same as display.Display.Update does, just stops advancing
	// state while this is set.
	paused bool
}

// New creates a Bus with its CPU/PPU/APU/controllers wired together,
// but with no cartridge loaded. LoadCartridge must be called before
// Reset/stepping.
func New() *Bus {
	b := &Bus{
		cpu:         cpu.New(),
		PPU:         ppu.New(),
		APU:         apu.New(),
		controller1: controller.New(),
		controller2: controller.New(),
	}
	b.cpu.ConnectBus(b)
	b.APU.ConnectBus(b)
	return b
}

// LoadCartridge installs a parsed cartridge, connects its mapper to
// the PPU, and resets the machine.
func (b *Bus) LoadCartridge(cart *cartridge.Cartridge) {
	b.cart = cart
	b.PPU.ConnectMapper(cart.Mapper)
	b.Reset()
}

// HasCartridge reports whether a ROM is currently loaded, so a shell
// can show a static/no-signal screen instead of running the CPU with
// nothing mapped in cartridge space.
func (b *Bus) HasCartridge() bool {
	return b.cart != nil
}

// Reset re-seeds the CPU from the reset vector. The PPU and APU carry
// their current register contents across a reset, same as real
// hardware (only the CPU and a few PPU latches are guaranteed
// consistent after RESET, and this core's external API never needs
// those latches to be bit-exact across a soft reset).
func (b *Bus) Reset() {
	b.cpu.Reset()
	b.SystemClocks = 0
	b.dmaActive = false
}

// Read implements cpu.Bus and apu.BusReader: all CPU-visible address
// decoding lives here.
func (b *Bus) Read(addr uint16) byte {
	var data byte
	switch {
	case addr <= 0x1FFF:
		data = b.ram[addr&0x07FF]
	case addr >= 0x2000 && addr <= 0x3FFF:
		data = b.PPU.Read(addr & 0x0007)
	case addr == 0x4015:
		data = b.APU.CPURead(addr)
	case addr == 0x4016:
		data = b.controller1.Read() | (b.openBus & 0xE0)
	case addr == 0x4017:
		data = b.controller2.Read() | (b.openBus & 0xE0)
	case addr >= 0x4020:
		if b.cart != nil {
			if v, ok := b.cart.Mapper.CPURead(addr); ok {
				data = v
			} else {
				data = b.openBus
			}
		} else {
			data = b.openBus
		}
	default:
		data = b.openBus
	}
	b.openBus = data
	return data
}

// Write implements cpu.Bus.
func (b *Bus) Write(addr uint16, data byte) {
	b.openBus = data
	switch {
	case addr <= 0x1FFF:
		b.ram[addr&0x07FF] = data
	case addr >= 0x2000 && addr <= 0x3FFF:
		b.PPU.Write(addr&0x0007, data)
	case addr == 0x4014:
		b.startOAMDMA(data)
	case addr == 0x4016:
		b.controller1.Write(data)
		b.controller2.Write(data)
	case addr == 0x4015, addr == 0x4017, (addr >= 0x4000 && addr <= 0x4013):
		b.APU.CPUWrite(addr, data)
	case addr >= 0x4020:
		if b.cart != nil {
			b.cart.Mapper.CPUWrite(addr, data)
		}
	}
}

func (b *Bus) startOAMDMA(page byte) {
	b.dmaActive = true
	b.dmaPage = page
	b.dmaAddr = 0
	b.dmaHasData = false
	// The DMA always costs 513 CPU cycles, 514 if it starts on an odd
	// CPU cycle (one extra "get aligned" cycle before the first read).
	// SystemClocks counts PPU dots, so divide by 3 for the CPU-cycle parity.
	b.dmaSync = (b.SystemClocks/3)%2 == 1
}

// SetController1 latches the button state spec.md §6's `set_controller1`
// exposes. Bit order: A, B, Select, Start, Up, Down, Left, Right.
func (b *Bus) SetController1(buttons byte) {
	b.controller1.SetButtons(unpackButtons(buttons))
}

// SetController1State is the same latch taking the per-button bool
// array shells built on top of this core (the display package's
// ebiten key polling) already produce, so they don't need to pack a
// byte just to unpack it again.
func (b *Bus) SetController1State(buttons [8]bool) {
	b.controller1.SetButtons(buttons)
}

// SetController2/SetController2State are the same latch for the
// second port. Not named in spec.md's minimal surface but trivial to
// carry given controller.Controller already supports it and no
// Non-goal excludes a second local player.
func (b *Bus) SetController2(buttons byte) {
	b.controller2.SetButtons(unpackButtons(buttons))
}

func (b *Bus) SetController2State(buttons [8]bool) {
	b.controller2.SetButtons(buttons)
}

func unpackButtons(buttons byte) [8]bool {
	var out [8]bool
	for i := 0; i < 8; i++ {
		out[i] = buttons&(1<<uint(i)) != 0
	}
	return out
}

// stepCPUCycle runs one CPU-cycle's worth of work: either a CPU clock
// (and its NMI/IRQ sampling) or one cycle of an in-progress OAM DMA
// transfer, which steals CPU cycles instead of letting it run.
func (b *Bus) stepCPUCycle() {
	if b.dmaActive {
		switch {
		case b.dmaSync:
			b.dmaSync = false
		case !b.dmaHasData:
			b.dmaData = b.Read(uint16(b.dmaPage)<<8 | uint16(b.dmaAddr))
			b.dmaHasData = true
		default:
			b.PPU.WriteOAMByte(b.dmaAddr, b.dmaData)
			b.dmaHasData = false
			b.dmaAddr++
			if b.dmaAddr == 0 {
				b.dmaActive = false
			}
		}
		return
	}

	b.cpu.Clock()
}

// Clock advances the whole system by one PPU dot: the PPU always
// clocks, and every third dot also clocks the CPU (or one OAM-DMA
// cycle) and the APU, sampling whatever interrupt lines that produced.
// A full NTSC frame is exactly 341*262 = 89342 dots.
func (b *Bus) Clock() {
	if b.paused {
		return
	}

	b.PPU.Clock()
	if b.PPU.NMI {
		b.PPU.NMI = false
		b.cpu.RequestNMI()
	}

	if b.SystemClocks%3 == 0 {
		b.stepCPUCycle()

		b.APU.Clock()
		if b.APU.IRQPending() {
			b.cpu.RequestIRQ()
		}

		if b.cart != nil {
			b.cart.Mapper.Clock()
			if b.cart.Mapper.PollIRQ() {
				b.cpu.RequestIRQ()
			}
		}
	}

	b.SystemClocks++
}

// StepInstruction runs the bus until the CPU has completed exactly
// one instruction (plus however many OAM-DMA cycles intervened) and
// returns the CPU cycle cost, spec.md §6's `step_instruction`.
func (b *Bus) StepInstruction() int {
	startCPUCycles := b.SystemClocks / 3
	b.Clock()
	for !b.cpu.Complete() || b.dmaActive {
		b.Clock()
	}
	return b.SystemClocks/3 - startCPUCycles
}

// RunUntilVBlank steps whole instructions until the PPU enters
// vertical blank (scanline 241, dot 1), spec.md §6's `run_until_vblank`
// — the shell's per-frame pacing call.
func (b *Bus) RunUntilVBlank() {
	start := b.PPU.VBlankCount
	for b.PPU.VBlankCount == start {
		b.StepInstruction()
	}
}

// FrameBuffer returns the 256x240 frame the PPU rendered, spec.md §6's
// `frame_buffer`.
func (b *Bus) FrameBuffer() []byte {
	return b.PPU.GetPixels()
}

// AudioSamples drains queued 16-bit PCM audio, spec.md §6's
// `audio_samples`.
func (b *Bus) AudioSamples(p []byte) (int, error) {
	return b.APU.ReadSamples(p)
}

// SRAM exports the cartridge's battery-backed PRG-RAM, if any.
func (b *Bus) SRAM() []byte {
	if b.cart == nil {
		return nil
	}
	return b.cart.SRAM()
}

// LoadSRAM restores a previously exported battery-RAM dump.
func (b *Bus) LoadSRAM(data []byte) error {
	if b.cart == nil {
		return nil
	}
	return b.cart.LoadSRAM(data)
}

// GetFramePixels is FrameBuffer under the name server.EmuInterface (the
// RL/debug gRPC transport) expects.
func (b *Bus) GetFramePixels() []byte {
	return b.FrameBuffer()
}

// SetPaused freezes or resumes Clock(), letting the debug transport
// suspend the shell's frame loop without it needing to know the bus is
// running.
func (b *Bus) SetPaused(p bool) {
	b.paused = p
}

// RequestStep runs exactly one CPU instruction regardless of the paused
// flag, the single-step primitive the vdb debugger's "step" command
// drives.
func (b *Bus) RequestStep() {
	if b.cart == nil {
		return
	}
	b.StepInstruction()
}

// CPU exposes the underlying 6502 for callers that need more than the
// bus's own debug surface (nestest's trace dump, vdb's disassembly).
func (b *Bus) CPU() *cpu.CPU {
	return b.cpu
}

// SetPC overrides the program counter, bypassing the reset vector.
// nestest's automated mode starts execution at $C000 rather than
// wherever a cartridge's own reset vector points.
func (b *Bus) SetPC(pc uint16) {
	b.cpu.PC = pc
}

// GetCPUState reports the 6502's registers and the total CPU cycle
// count elapsed so far, for the debug transport's register dump.
func (b *Bus) GetCPUState() (a, x, y, sp, p byte, pc uint16, cycles int) {
	return b.cpu.A, b.cpu.X, b.cpu.Y, b.cpu.SP, b.cpu.P, b.cpu.PC, b.SystemClocks / 3
}

// GetMemoryBlock reads size bytes starting at addr through the normal
// CPU address decode (so it sees mapped registers and mapper banking,
// not just RAM), for the debug transport's memory-examine command.
func (b *Bus) GetMemoryBlock(addr uint16, size uint16) []byte {
	out := make([]byte, size)
	for i := uint16(0); i < size; i++ {
		out[i] = b.Read(addr + i)
	}
	return out
}
