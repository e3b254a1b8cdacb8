// Package opcode decodes 16 bit CHIP-8 instruction words into enumerated
// operations. Decoding is independent of execution, the executor
// dispatches over the decoded Op.
package opcode

import (
	"errors"
	"fmt"
)

// ErrInvalidOpcode is returned for instruction words that match no known pattern.
var ErrInvalidOpcode = errors.New("invalid opcode")

// Op is an enumerated CHIP-8 operation.
type Op uint8

// Operations in opcode order. The comment shows the matched bit pattern.
const (
	Invalid Op = iota
	Sys        // 0NNN
	Cls        // 00E0
	Ret        // 00EE
	Jp         // 1NNN
	Call       // 2NNN
	SeImm      // 3XNN
	SneImm     // 4XNN
	SeReg      // 5XY0
	LdImm      // 6XNN
	AddImm     // 7XNN
	LdReg      // 8XY0
	Or         // 8XY1
	And        // 8XY2
	Xor        // 8XY3
	AddReg     // 8XY4
	Sub        // 8XY5
	Shr        // 8XY6
	Subn       // 8XY7
	Shl        // 8XYE
	SneReg     // 9XY0
	LdI        // ANNN
	JpV0       // BNNN
	Rnd        // CXNN
	Drw        // DXYN
	Skp        // EX9E
	Sknp       // EXA1
	LdVxDT     // FX07
	LdVxK      // FX0A
	LdDTVx     // FX15
	LdSTVx     // FX18
	AddIVx     // FX1E
	LdFVx      // FX29
	LdBVx      // FX33
	LdMemVx    // FX55
	LdVxMem    // FX65
)

var opNames = [...]string{
	Invalid: "INVALID",
	Sys:     "SYS",
	Cls:     "CLS",
	Ret:     "RET",
	Jp:      "JP",
	Call:    "CALL",
	SeImm:   "SE",
	SneImm:  "SNE",
	SeReg:   "SE",
	LdImm:   "LD",
	AddImm:  "ADD",
	LdReg:   "LD",
	Or:      "OR",
	And:     "AND",
	Xor:     "XOR",
	AddReg:  "ADD",
	Sub:     "SUB",
	Shr:     "SHR",
	Subn:    "SUBN",
	Shl:     "SHL",
	SneReg:  "SNE",
	LdI:     "LD",
	JpV0:    "JP",
	Rnd:     "RND",
	Drw:     "DRW",
	Skp:     "SKP",
	Sknp:    "SKNP",
	LdVxDT:  "LD",
	LdVxK:   "LD",
	LdDTVx:  "LD",
	LdSTVx:  "LD",
	AddIVx:  "ADD",
	LdFVx:   "LD",
	LdBVx:   "LD",
	LdMemVx: "LD",
	LdVxMem: "LD",
}

// String returns the assembler mnemonic of the operation.
func (o Op) String() string {
	if int(o) < len(opNames) {
		return opNames[o]
	}
	return fmt.Sprintf("Op(%d)", o)
}

// Instruction is a decoded instruction word with all operand fields extracted.
type Instruction struct {
	Word uint16 // raw instruction word
	Op   Op

	X   uint8  // register nibble 0x0F00
	Y   uint8  // register nibble 0x00F0
	N   uint8  // low nibble 0x000F
	NN  uint8  // low byte 0x00FF
	NNN uint16 // address 0x0FFF
}

// String returns the instruction in assembler notation.
func (i Instruction) String() string {
	switch i.Op {
	case Cls, Ret:
		return i.Op.String()
	case Sys, Jp, Call:
		return fmt.Sprintf("%s $%03X", i.Op, i.NNN)
	case SeImm, SneImm, LdImm, AddImm, Rnd:
		return fmt.Sprintf("%s V%X, $%02X", i.Op, i.X, i.NN)
	case SeReg, SneReg, LdReg, Or, And, Xor, AddReg, Sub, Subn:
		return fmt.Sprintf("%s V%X, V%X", i.Op, i.X, i.Y)
	case Shr, Shl, Skp, Sknp:
		return fmt.Sprintf("%s V%X", i.Op, i.X)
	case LdI:
		return fmt.Sprintf("LD I, $%03X", i.NNN)
	case JpV0:
		return fmt.Sprintf("JP V0, $%03X", i.NNN)
	case Drw:
		return fmt.Sprintf("DRW V%X, V%X, $%X", i.X, i.Y, i.N)
	case LdVxDT:
		return fmt.Sprintf("LD V%X, DT", i.X)
	case LdVxK:
		return fmt.Sprintf("LD V%X, K", i.X)
	case LdDTVx:
		return fmt.Sprintf("LD DT, V%X", i.X)
	case LdSTVx:
		return fmt.Sprintf("LD ST, V%X", i.X)
	case AddIVx:
		return fmt.Sprintf("ADD I, V%X", i.X)
	case LdFVx:
		return fmt.Sprintf("LD F, V%X", i.X)
	case LdBVx:
		return fmt.Sprintf("LD B, V%X", i.X)
	case LdMemVx:
		return fmt.Sprintf("LD [I], V%X", i.X)
	case LdVxMem:
		return fmt.Sprintf("LD V%X, [I]", i.X)
	default:
		return fmt.Sprintf("DW $%04X", i.Word)
	}
}

// aluOps maps the low nibble of 8XYN words to operations.
var aluOps = map[uint8]Op{
	0x0: LdReg,
	0x1: Or,
	0x2: And,
	0x3: Xor,
	0x4: AddReg,
	0x5: Sub,
	0x6: Shr,
	0x7: Subn,
	0xE: Shl,
}

// miscOps maps the low byte of FXNN words to operations.
var miscOps = map[uint8]Op{
	0x07: LdVxDT,
	0x0A: LdVxK,
	0x15: LdDTVx,
	0x18: LdSTVx,
	0x1E: AddIVx,
	0x29: LdFVx,
	0x33: LdBVx,
	0x55: LdMemVx,
	0x65: LdVxMem,
}

// Decode decodes an instruction word. Words that match no pattern return
// an Instruction with the Invalid operation and an error wrapping
// ErrInvalidOpcode.
func Decode(word uint16) (Instruction, error) {
	ins := Instruction{
		Word: word,
		X:    uint8((word & 0x0F00) >> 8),
		Y:    uint8((word & 0x00F0) >> 4),
		N:    uint8(word & 0x000F),
		NN:   uint8(word & 0x00FF),
		NNN:  word & 0x0FFF,
	}

	switch word >> 12 {
	case 0x0:
		switch word {
		case 0x00E0:
			ins.Op = Cls
		case 0x00EE:
			ins.Op = Ret
		default:
			ins.Op = Sys
		}
	case 0x1:
		ins.Op = Jp
	case 0x2:
		ins.Op = Call
	case 0x3:
		ins.Op = SeImm
	case 0x4:
		ins.Op = SneImm
	case 0x5:
		if ins.N == 0 {
			ins.Op = SeReg
		}
	case 0x6:
		ins.Op = LdImm
	case 0x7:
		ins.Op = AddImm
	case 0x8:
		ins.Op = aluOps[ins.N]
	case 0x9:
		if ins.N == 0 {
			ins.Op = SneReg
		}
	case 0xA:
		ins.Op = LdI
	case 0xB:
		ins.Op = JpV0
	case 0xC:
		ins.Op = Rnd
	case 0xD:
		ins.Op = Drw
	case 0xE:
		switch ins.NN {
		case 0x9E:
			ins.Op = Skp
		case 0xA1:
			ins.Op = Sknp
		}
	case 0xF:
		ins.Op = miscOps[ins.NN]
	}

	if ins.Op == Invalid {
		return ins, fmt.Errorf("%w: %04X", ErrInvalidOpcode, word)
	}
	return ins, nil
}
