package intcode

import "fmt"

// Decode decodes the instruction at addr without executing it or growing
// memory. If the word at addr has an unknown opcode or an invalid mode digit
// the returned Instr is partially populated and the error is a Fault.
func (m *Machine) Decode(addr int64) (Instr, error) {
	if err := m.checkAddr(addr); err != nil {
		f := err.(Fault)
		f.Addr = addr
		return Instr{Addr: addr}, f
	}
	word := m.cell(addr)
	in := Instr{Addr: addr, Word: word, Op: OpOf(word)}
	if !in.Op.Valid() {
		return in, Fault{Code: UnknownOpcode, Addr: addr, Word: word, Value: word % 100}
	}
	for i := 0; i < in.Op.Arity(); i++ {
		mode, err := ModeOf(word, i+1)
		if err != nil {
			f := err.(Fault)
			f.Addr = addr
			return in, f
		}
		in.Modes[i] = mode
		in.Args[i] = m.cell(addr + 1 + int64(i))
	}
	return in, nil
}

// Step executes the instruction at m.PC.
//
// Once the machine has halted Step returns Halt without decoding anything.
// If the instruction is IN and the input queue is empty Step returns
// NeedInput and leaves m.PC on the IN instruction, so that stepping again
// after input is supplied resumes execution. Any other error is a Fault, in
// which case m.PC is left on the faulting instruction.
func (m *Machine) Step() (ev Event, err error) {
	if m.state == Halted {
		return Halt, nil
	}
	in, err := m.Decode(m.PC)
	if err != nil {
		return Continue, err
	}
	defer func() {
		if e := recover(); e != nil {
			f, ok := e.(Fault)
			if !ok {
				panic(e)
			}
			f.Addr, f.Word = in.Addr, in.Word
			ev, err = Continue, f
		}
	}()
	if in.Op == IN && len(m.Input) == 0 {
		m.state = AwaitingInput
		return NeedInput, nil
	}
	if m.Trace != nil {
		m.Trace(in)
	}

	next := m.PC + in.Len()
	ev = Continue

	switch in.Op {
	case ADD:
		m.write(m.dest(in, 2), m.load(in, 0)+m.load(in, 1))
	case MUL:
		m.write(m.dest(in, 2), m.load(in, 0)*m.load(in, 1))
	case IN:
		m.write(m.dest(in, 0), m.Input[0])
		m.Input = m.Input[1:]
	case OUT:
		m.Output = append(m.Output, m.load(in, 0))
		ev = Output
	case JNZ:
		if m.load(in, 0) != 0 {
			next = m.load(in, 1)
		}
	case JZ:
		if m.load(in, 0) == 0 {
			next = m.load(in, 1)
		}
	case LT:
		m.write(m.dest(in, 2), boolean(m.load(in, 0) < m.load(in, 1)))
	case EQ:
		m.write(m.dest(in, 2), boolean(m.load(in, 0) == m.load(in, 1)))
	case ARB:
		m.Base += m.load(in, 0)
	case HLT:
		m.state = Halted
		return Halt, nil
	case Invalid:
		panic(Fault{Code: UnknownOpcode, Value: in.Word % 100})
	default:
		panic(fmt.Errorf("internal error: %v not implemented", in.Op))
	}

	m.PC = next
	m.state = Running
	return ev, nil
}

// load returns the value of parameter i of in.
func (m *Machine) load(in Instr, i int) int64 {
	switch in.Modes[i] {
	case Immediate:
		return in.Args[i]
	case Relative:
		return m.read(m.Base + in.Args[i])
	default:
		return m.read(in.Args[i])
	}
}

// dest returns the address named by destination parameter i of in.
func (m *Machine) dest(in Instr, i int) int64 {
	switch in.Modes[i] {
	case Immediate:
		panic(Fault{Code: ImmediateWrite, Value: in.Args[i]})
	case Relative:
		return m.Base + in.Args[i]
	default:
		return in.Args[i]
	}
}

func boolean(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

// Fault is returned by Step, and the Run methods, when the program cannot
// continue executing.
type Fault struct {
	Code  FaultCode
	Addr  int64 // address of the faulting instruction
	Word  int64 // the faulting instruction word
	Value int64 // the offending opcode, mode digit or address
}

func (f Fault) Error() string {
	return fmt.Sprintf("%s (%d) executing %d at %d", f.Code, f.Value, f.Word, f.Addr)
}

// FaultCode signifies the type of condition that stopped execution.
type FaultCode byte

const (
	UnknownOpcode     FaultCode = iota + 1
	InvalidMode                 // mode digit other than 0, 1 or 2
	NegativeAddress             // resolved address below zero
	AddressOutOfRange           // resolved address at or above the memory limit
	ImmediateWrite              // destination parameter in immediate mode
)

func (c FaultCode) String() string {
	if s, ok := map[FaultCode]string{
		UnknownOpcode:     "unknown opcode",
		InvalidMode:       "invalid addressing mode",
		NegativeAddress:   "negative address",
		AddressOutOfRange: "address out of range",
		ImmediateWrite:    "write in immediate mode",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown (%d)", byte(c))
}
