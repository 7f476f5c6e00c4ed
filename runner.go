package main

import (
	"log"

	"github.com/nf/nix/intcode"
)

// StateKind describes why the runner is reporting the machine state.
type StateKind int

const (
	ClearState StateKind = iota // program (re)loaded
	QuietState                  // periodic refresh while running
	PauseState                  // paused after a step or an output
	BreakState                  // stopped at the breakpoint
	InputState                  // blocked waiting for input
	HaltState
	FaultState
)

// StateFunc is called by the runner's goroutine whenever the machine state
// changes in a way the debugger should show. It must not retain m.
type StateFunc func(m *intcode.Machine, k StateKind)

// Runner drives a machine on behalf of the debugger. The machine is only
// touched by the goroutine that calls Run; other goroutines control it by
// sending commands.
type Runner struct {
	cfg   config
	prog  []int64
	state StateFunc

	cmds chan command
}

type command struct {
	name   string
	addr   int64
	values []int64
	prog   []int64
}

// stepBatch is the number of instructions executed between checks for new
// commands while running.
const stepBatch = 10000

func NewRunner(cfg config, prog []int64, state StateFunc) *Runner {
	return &Runner{
		cfg:   cfg,
		prog:  prog,
		state: state,
		cmds:  make(chan command),
	}
}

// Debug sends a debugger command to the runner. The addr argument is used by
// "break" and ignored otherwise.
func (r *Runner) Debug(cmd string, addr int64) { r.cmds <- command{name: cmd, addr: addr} }

// Input queues values for the program.
func (r *Runner) Input(values []int64) { r.cmds <- command{name: "input", values: values} }

// Swap replaces the program and resets the machine.
func (r *Runner) Swap(prog []int64) { r.cmds <- command{name: "swap", prog: prog} }

type execMode int

const (
	paused    execMode = iota
	toEvent           // run until an output, input, halt or breakpoint
	untilHalt         // run until input, halt or breakpoint
)

// Run processes commands until it receives "exit".
func (r *Runner) Run() {
	var (
		m    = r.load()
		brk  = int64(-1)
		mode = paused
	)
	for {
		var cmd command
		if mode == paused {
			cmd = <-r.cmds
		} else {
			select {
			case cmd = <-r.cmds:
			default:
				mode = r.exec(m, mode, brk, stepBatch)
				continue
			}
		}
		switch cmd.name {
		case "exit":
			return
		case "s", "step":
			mode = r.exec(m, paused, -1, 1)
		case "c", "cont":
			mode = toEvent
		case "r", "run":
			mode = untilHalt
		case "stop":
			if mode != paused {
				mode = paused
				r.state(m, PauseState)
			}
		case "b", "break":
			brk = cmd.addr
			r.state(m, QuietState)
		case "refresh":
			r.state(m, QuietState)
		case "input":
			m.AppendInput(cmd.values...)
			log.Printf("queued input %v", cmd.values)
			r.state(m, QuietState)
		case "swap":
			r.prog = cmd.prog
			fallthrough
		case "reset":
			m, mode = r.load(), paused
		default:
			log.Printf("unknown command %q", cmd.name)
		}
	}
}

func (r *Runner) load() *intcode.Machine {
	m, err := newMachine(r.cfg, r.prog)
	if err != nil {
		log.Printf("load: %v", err)
		m = intcode.New(r.prog)
	}
	r.state(m, ClearState)
	return m
}

// exec executes up to n instructions and returns the mode to continue in.
// A breakpoint is checked after each instruction; brk < 0 disables it.
func (r *Runner) exec(m *intcode.Machine, mode execMode, brk int64, n int) execMode {
	for i := 0; i < n; i++ {
		ev, err := m.Step()
		if err != nil {
			log.Printf("fault: %v", err)
			r.state(m, FaultState)
			return paused
		}
		switch ev {
		case intcode.Output:
			v, _ := m.Last()
			log.Printf("out: %d", v)
			if mode == toEvent {
				r.state(m, PauseState)
				return paused
			}
		case intcode.NeedInput:
			r.state(m, InputState)
			return paused
		case intcode.Halt:
			r.state(m, HaltState)
			return paused
		}
		if m.PC == brk {
			r.state(m, BreakState)
			return paused
		}
	}
	if mode == paused {
		r.state(m, PauseState)
	} else {
		r.state(m, QuietState)
	}
	return mode
}
