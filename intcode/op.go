package intcode

import (
	"fmt"
	"strings"
)

// Op represents an Intcode opcode, the low two decimal digits of an
// instruction word.
type Op byte

const (
	Invalid Op = 0

	ADD Op = 1
	MUL Op = 2
	IN  Op = 3
	OUT Op = 4
	JNZ Op = 5
	JZ  Op = 6
	LT  Op = 7
	EQ  Op = 8
	ARB Op = 9
	HLT Op = 99
)

// OpOf returns the opcode encoded in word, or Invalid if there is none.
func OpOf(word int64) Op {
	if c := word % 100; c > 0 && Op(c).Valid() {
		return Op(c)
	}
	return Invalid
}

// Valid reports whether op is a member of the instruction set.
func (op Op) Valid() bool { return op != Invalid && opInfo[op].name != "" }

// Arity returns the number of parameters that follow op in memory.
func (op Op) Arity() int { return opInfo[op].arity }

// Writes reports whether the last parameter of op is a destination address.
func (op Op) Writes() bool { return opInfo[op].writes }

func (op Op) String() string {
	if s := opInfo[op].name; s != "" {
		return s
	}
	return fmt.Sprintf("op(%d)", byte(op))
}

var opInfo = [256]struct {
	name   string
	arity  int
	writes bool
}{
	ADD: {"ADD", 3, true},
	MUL: {"MUL", 3, true},
	IN:  {"IN", 1, true},
	OUT: {"OUT", 1, false},
	JNZ: {"JNZ", 2, false},
	JZ:  {"JZ", 2, false},
	LT:  {"LT", 3, true},
	EQ:  {"EQ", 3, true},
	ARB: {"ARB", 1, false},
	HLT: {"HLT", 0, false},
}

// Mode is the addressing mode of an instruction parameter.
type Mode byte

const (
	Position  Mode = 0 // parameter is an address
	Immediate Mode = 1 // parameter is the value
	Relative  Mode = 2 // parameter is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", byte(m))
}

// prefix is the disassembly prefix for a parameter in mode m.
func (m Mode) prefix() string {
	switch m {
	case Immediate:
		return "#"
	case Relative:
		return "r"
	}
	return "@"
}

var pow10 = [...]int64{1, 10, 100, 1000, 10000, 100000}

// ModeOf returns the addressing mode of the 1-based parameter param of the
// instruction word. A mode digit other than 0, 1 or 2 yields an InvalidMode
// Fault. A param outside 1 through 3 is an error.
func ModeOf(word int64, param int) (Mode, error) {
	if param < 1 || param > 3 {
		return 0, fmt.Errorf("mode of parameter %d: no such parameter", param)
	}
	switch d := word / pow10[param+1] % 10; d {
	case 0, 1, 2:
		return Mode(d), nil
	default:
		return 0, Fault{Code: InvalidMode, Word: word, Value: d}
	}
}

// Instr is a decoded instruction.
type Instr struct {
	Addr  int64 // address of the instruction word
	Word  int64
	Op    Op
	Modes [3]Mode
	Args  [3]int64 // raw parameter words
}

// Len returns the number of memory cells occupied by the instruction.
func (in Instr) Len() int64 { return 1 + int64(in.Op.Arity()) }

// String disassembles the instruction, for example "ADD @5 #3 r-1".
func (in Instr) String() string {
	if !in.Op.Valid() {
		return fmt.Sprintf("??? %d", in.Word)
	}
	var b strings.Builder
	b.WriteString(in.Op.String())
	for i := 0; i < in.Op.Arity(); i++ {
		fmt.Fprintf(&b, " %s%d", in.Modes[i].prefix(), in.Args[i])
	}
	return b.String()
}
