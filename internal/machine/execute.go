package machine

import (
	"github.com/crumblingstatue/crusty-chip/internal/memory"
	"github.com/crumblingstatue/crusty-chip/internal/opcode"
	"github.com/crumblingstatue/crusty-chip/internal/registers"
)

// Step executes exactly one instruction. While a wait-for-key instruction
// is in progress, Step does nothing until a key-down transition has been
// seen, then completes the wait.
// Faults are returned as *Fault and leave the state untouched.
func (m *Machine) Step() error {
	s := &m.state

	if s.Keypad.Awaiting() {
		register, key, ok := s.Keypad.Resolve()
		if !ok {
			return nil
		}
		s.Registers.V[register] = key
		s.Registers.PC = (s.Registers.PC + 2) & memory.AddressMask
		return nil
	}

	pc := s.Registers.PC
	word := s.Memory.ReadWord(pc)

	ins, err := opcode.Decode(word)
	if err != nil {
		return &Fault{PC: pc, Word: word, Err: ErrInvalidOpcode}
	}

	s.Registers.PC = (pc + 2) & memory.AddressMask
	if err := m.execute(ins); err != nil {
		s.Registers.PC = pc
		return &Fault{PC: pc, Word: word, Err: err}
	}

	s.Cycles++
	return nil
}

// execute applies the side effects of a decoded instruction. The program
// counter already points to the next instruction.
//
//nolint:funlen,cyclop // a flat dispatch over all operations
func (m *Machine) execute(ins opcode.Instruction) error {
	s := &m.state
	r := &s.Registers
	vx := r.V[ins.X]
	vy := r.V[ins.Y]

	switch ins.Op {
	case opcode.Sys:
		// machine code routines of the original interpreter are not supported

	case opcode.Cls:
		s.Display.Clear()

	case opcode.Ret:
		address, err := r.Pop()
		if err != nil {
			return err
		}
		r.PC = address

	case opcode.Jp:
		r.PC = ins.NNN

	case opcode.Call:
		if err := r.Push(r.PC); err != nil {
			return err
		}
		r.PC = ins.NNN

	case opcode.SeImm:
		m.skipIf(vx == ins.NN)

	case opcode.SneImm:
		m.skipIf(vx != ins.NN)

	case opcode.SeReg:
		m.skipIf(vx == vy)

	case opcode.SneReg:
		m.skipIf(vx != vy)

	case opcode.LdImm:
		r.V[ins.X] = ins.NN

	case opcode.AddImm:
		r.V[ins.X] = vx + ins.NN

	case opcode.LdReg:
		r.V[ins.X] = vy

	case opcode.Or:
		r.V[ins.X] = vx | vy

	case opcode.And:
		r.V[ins.X] = vx & vy

	case opcode.Xor:
		r.V[ins.X] = vx ^ vy

	case opcode.AddReg:
		sum := uint16(vx) + uint16(vy)
		r.V[ins.X] = uint8(sum)
		r.SetFlag(sum > 0xFF)

	case opcode.Sub:
		r.V[ins.X] = vx - vy
		r.SetFlag(vx >= vy)

	case opcode.Subn:
		r.V[ins.X] = vy - vx
		r.SetFlag(vy >= vx)

	case opcode.Shr:
		r.V[ins.X] = vx >> 1
		r.V[registers.Flag] = vx & 0x01

	case opcode.Shl:
		r.V[ins.X] = vx << 1
		r.V[registers.Flag] = vx >> 7

	case opcode.LdI:
		r.I = ins.NNN

	case opcode.JpV0:
		r.PC = (ins.NNN + uint16(r.V[0])) & memory.AddressMask

	case opcode.Rnd:
		r.V[ins.X] = uint8(m.rng.Uint32()) & ins.NN

	case opcode.Drw:
		rows := s.Memory.ReadRange(r.Address(), int(ins.N))
		r.SetFlag(s.Display.Blit(int(vx), int(vy), rows))

	case opcode.Skp:
		m.skipIf(s.Keypad.Pressed(vx))

	case opcode.Sknp:
		m.skipIf(!s.Keypad.Pressed(vx))

	case opcode.LdVxDT:
		r.V[ins.X] = s.Timers.Delay

	case opcode.LdVxK:
		s.Keypad.Await(ins.X)
		// stay on this instruction until the wait completes
		r.PC = (r.PC - 2) & memory.AddressMask

	case opcode.LdDTVx:
		s.Timers.Delay = vx

	case opcode.LdSTVx:
		s.Timers.Sound = vx

	case opcode.AddIVx:
		r.I += uint16(vx)

	case opcode.LdFVx:
		r.I = memory.FontAddress(vx)

	case opcode.LdBVx:
		address := r.Address()
		s.Memory.Write(address, vx/100)
		s.Memory.Write(address+1, vx/10%10)
		s.Memory.Write(address+2, vx%10)

	case opcode.LdMemVx:
		address := r.Address()
		for i := uint16(0); i <= uint16(ins.X); i++ {
			s.Memory.Write(address+i, r.V[i])
		}

	case opcode.LdVxMem:
		address := r.Address()
		for i := uint16(0); i <= uint16(ins.X); i++ {
			r.V[i] = s.Memory.Read(address + i)
		}

	default:
		return ErrInvalidOpcode
	}

	return nil
}

func (m *Machine) skipIf(condition bool) {
	if condition {
		m.state.Registers.PC = (m.state.Registers.PC + 2) & memory.AddressMask
	}
}
