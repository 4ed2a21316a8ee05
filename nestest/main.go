// Command nestest runs the nestest.nes CPU conformance ROM and prints a
// per-instruction trace in the same column layout as Nintendulator's
// log, for diffing against a known-good trace.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ashgrove/nescore/bus"
	"github.com/ashgrove/nescore/cartridge"
)

func main() {
	romPath := "nestest/testdata/nestest.nes"
	if len(os.Args) > 1 {
		romPath = os.Args[1]
	}

	cart, err := cartridge.New(romPath)
	if err != nil {
		log.Fatalf("error loading nestest ROM from %s: %v", romPath, err)
	}

	b := bus.New()
	b.LoadCartridge(cart)

	// nestest expects execution to start at $C000, the automated test
	// entry point, rather than the ROM's own reset vector.
	b.SetPC(0xC000)
	for b.CPU().Cycles() > 0 {
		b.Clock()
	}

	totalCycles := 7 // the 7 cycles Reset() just spent before the first fetch
	for i := 0; i < 8991; i++ {
		a, x, y, sp, p, pc, _ := b.GetCPUState()
		opcode := b.Read(pc)
		instr := b.CPU().InstructionAt(opcode)

		op1 := b.Read(pc + 1)
		op2 := b.Read(pc + 2)

		var raw, disasm string
		switch instr.AddrModeName {
		case "IMM", "ZP0", "ZPX", "ZPY", "REL", "IZX", "IZY":
			raw = fmt.Sprintf("%02X %02X", opcode, op1)
		case "ABS", "ABX", "ABY", "IND":
			raw = fmt.Sprintf("%02X %02X %02X", opcode, op1, op2)
		default:
			raw = fmt.Sprintf("%02X", opcode)
		}

		switch instr.AddrModeName {
		case "IMP":
			disasm = instr.Name
		case "IMM":
			disasm = fmt.Sprintf("%s #$%02X", instr.Name, op1)
		case "ZP0":
			disasm = fmt.Sprintf("%s $%02X", instr.Name, op1)
		case "ZPX":
			disasm = fmt.Sprintf("%s $%02X,X", instr.Name, op1)
		case "ZPY":
			disasm = fmt.Sprintf("%s $%02X,Y", instr.Name, op1)
		case "REL":
			target := (pc + 2 + uint16(int8(op1)))
			disasm = fmt.Sprintf("%s $%04X", instr.Name, target)
		case "ABS":
			disasm = fmt.Sprintf("%s $%04X", instr.Name, (uint16(op2)<<8)|uint16(op1))
		case "ABX":
			disasm = fmt.Sprintf("%s $%04X,X", instr.Name, (uint16(op2)<<8)|uint16(op1))
		case "ABY":
			disasm = fmt.Sprintf("%s $%04X,Y", instr.Name, (uint16(op2)<<8)|uint16(op1))
		case "IND":
			disasm = fmt.Sprintf("%s ($%04X)", instr.Name, (uint16(op2)<<8)|uint16(op1))
		case "IZX":
			disasm = fmt.Sprintf("%s ($%02X,X)", instr.Name, op1)
		case "IZY":
			disasm = fmt.Sprintf("%s ($%02X),Y", instr.Name, op1)
		default:
			disasm = fmt.Sprintf("%s ???", instr.Name)
		}

		fmt.Printf("%04X  %-8s %-32s A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d\n",
			pc, raw, disasm, a, x, y, p, sp, totalCycles)

		totalCycles += b.StepInstruction()

		if pc == 0xC66A || pc == 0xE000 {
			break
		}
	}
}
