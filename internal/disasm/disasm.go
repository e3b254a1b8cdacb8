// Package disasm formats CHIP-8 instruction words as assembler text for
// debug dumps, based on the retrogolib CHIP-8 opcode table.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Lookup returns the instruction matching the opcode word.
func Lookup(word uint16) (*chip8.Instruction, bool) {
	firstNibble := (word & 0xF000) >> 12
	for _, op := range chip8.Opcodes[int(firstNibble)] {
		if op.Info.Mask&word == op.Info.Value {
			return op.Instruction, op.Instruction != nil
		}
	}
	return nil, false
}

// Format returns the assembler text of an opcode word. Words that match no
// instruction are rendered as a data word.
func Format(word uint16) string {
	ins, ok := Lookup(word)
	if !ok {
		return fmt.Sprintf("dw $%04X", word)
	}

	if params := formatParams(ins.Name, word); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// IsControlFlow returns whether the instruction can change the program
// counter other than by advancing to the next instruction.
func IsControlFlow(word uint16) bool {
	ins, ok := Lookup(word)
	if !ok {
		return false
	}
	switch ins.Name {
	case chip8.JpName, chip8.CallName, chip8.RetName:
		return true
	}
	return chip8.SkipInstructions.Contains(ins.Name)
}

func formatParams(name string, word uint16) string {
	x := (word & 0x0F00) >> 8
	y := (word & 0x00F0) >> 4

	switch name {
	case chip8.ClsName, chip8.RetName:
		return ""
	case chip8.JpName:
		if word&0xF000 == 0xB000 {
			return fmt.Sprintf("V0, $%03X", word&0x0FFF)
		}
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case chip8.CallName:
		return fmt.Sprintf("$%03X", word&0x0FFF)
	case chip8.SeName, chip8.SneName:
		if word&0xF000 == 0x3000 || word&0xF000 == 0x4000 {
			return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.LdName:
		return formatLoad(word, x, y)
	case chip8.AddName:
		switch word & 0xF000 {
		case 0x7000:
			return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
		case 0xF000:
			return fmt.Sprintf("I, V%X", x)
		}
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.OrName, chip8.AndName, chip8.XorName, chip8.SubName, chip8.SubnName:
		return fmt.Sprintf("V%X, V%X", x, y)
	case chip8.ShrName, chip8.ShlName, chip8.SkpName, chip8.SknpName:
		return fmt.Sprintf("V%X", x)
	case chip8.RndName:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case chip8.DrwName:
		return fmt.Sprintf("V%X, V%X, $%X", x, y, word&0x000F)
	}
	return ""
}

// formatLoad formats the many forms of the LD instruction.
func formatLoad(word, x, y uint16) string {
	switch word & 0xF000 {
	case 0x6000:
		return fmt.Sprintf("V%X, $%02X", x, word&0x00FF)
	case 0x8000:
		return fmt.Sprintf("V%X, V%X", x, y)
	case 0xA000:
		return fmt.Sprintf("I, $%03X", word&0x0FFF)
	}

	switch word & 0x00FF {
	case 0x07:
		return fmt.Sprintf("V%X, DT", x)
	case 0x0A:
		return fmt.Sprintf("V%X, K", x)
	case 0x15:
		return fmt.Sprintf("DT, V%X", x)
	case 0x18:
		return fmt.Sprintf("ST, V%X", x)
	case 0x29:
		return fmt.Sprintf("F, V%X", x)
	case 0x33:
		return fmt.Sprintf("B, V%X", x)
	case 0x55:
		return fmt.Sprintf("[I], V%X", x)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", x)
	}
	return ""
}
