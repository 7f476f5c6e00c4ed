// Package intcode provides an implementation of the Intcode computer, called
// Machine, that can be used to execute Intcode programs.
package intcode

import "errors"

// Machine is an Intcode computer. Its exported fields may be inspected at any
// time between calls to Step or any of the Run methods.
type Machine struct {
	Mem    []int64 // memory image, grown with zeros on demand
	PC     int64   // address of the next instruction word
	Base   int64   // relative base
	Input  []int64 // pending input, consumed in order
	Output []int64 // every value produced by OUT, in order

	// Trace, if non-nil, is called with each instruction before it is
	// executed.
	Trace func(Instr)

	// MemLimit caps the number of memory cells. Zero means MaxMemory.
	MemLimit int64

	state State
}

// New returns a Machine loaded with a copy of program.
func New(program []int64) *Machine {
	return &Machine{Mem: append([]int64(nil), program...)}
}

// Clone returns an independent copy of m.
func (m *Machine) Clone() *Machine {
	c := *m
	c.Mem = append([]int64(nil), m.Mem...)
	c.Input = append([]int64(nil), m.Input...)
	c.Output = append([]int64(nil), m.Output...)
	return &c
}

// State is the state of the run loop.
type State byte

const (
	Running       State = iota
	AwaitingInput       // blocked on IN with an empty input queue
	Halted              // executed HLT; terminal
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case AwaitingInput:
		return "awaiting input"
	case Halted:
		return "halted"
	}
	return "unknown"
}

// State reports the state of the run loop after the last step.
func (m *Machine) State() State { return m.state }

// Event reports why Step or Run returned control to the caller.
type Event byte

const (
	Continue  Event = iota // an instruction executed; Run never returns this
	Halt                   // the machine is halted
	NeedInput              // IN found the input queue empty
	Output                 // OUT produced a value, see Last
)

func (e Event) String() string {
	switch e {
	case Continue:
		return "continue"
	case Halt:
		return "halt"
	case NeedInput:
		return "need input"
	case Output:
		return "output"
	}
	return "unknown"
}

// ErrMissingInput is returned by RunUntilHalt if the program blocks on input.
var ErrMissingInput = errors.New("missing input")

// SetInput replaces the pending input queue with values.
func (m *Machine) SetInput(values ...int64) {
	m.Input = append(m.Input[:0:0], values...)
}

// AppendInput adds values to the end of the input queue.
func (m *Machine) AppendInput(values ...int64) {
	m.Input = append(m.Input, values...)
}

// Last returns the most recent output value and reports whether there is one.
func (m *Machine) Last() (int64, bool) {
	if len(m.Output) == 0 {
		return 0, false
	}
	return m.Output[len(m.Output)-1], true
}

// Run executes instructions until the machine halts, blocks on input or
// produces an output value. At most one output is produced per call.
func (m *Machine) Run() (Event, error) {
	for {
		ev, err := m.Step()
		if err != nil || ev != Continue {
			return ev, err
		}
	}
}

// RunUntilHalt executes instructions until the machine halts, collecting any
// output along the way. It returns ErrMissingInput if the program blocks on
// input, leaving the machine resumable.
func (m *Machine) RunUntilHalt() error {
	for {
		ev, err := m.Step()
		if err != nil {
			return err
		}
		switch ev {
		case Halt:
			return nil
		case NeedInput:
			return ErrMissingInput
		}
	}
}

// RunWithInputs appends values to the input queue and then calls Run.
func (m *Machine) RunWithInputs(values ...int64) (Event, error) {
	m.AppendInput(values...)
	return m.Run()
}
