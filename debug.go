package main

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/nix/intcode"
)

type debugger struct {
	run *Runner

	app   *tview.Application
	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField

	mu      sync.Mutex
	brk     int64 // -1 if unset
	watches []int64
}

var debugCommands = []string{
	"break", "cont", "exit", "input", "reset", "run", "step", "stop", "watch", "unwatch",
}

// newDebugger lays the screen out as a grid: watched cells on the left third
// and the log on the rest, above a four line state bar and the command line.
func newDebugger() *debugger {
	d := &debugger{
		app:   tview.NewApplication(),
		log:   tview.NewTextView(),
		watch: tview.NewTextView(),
		state: tview.NewTextView(),
		input: tview.NewInputField(),
		brk:   -1,
	}
	d.log.SetMaxLines(1000).
		SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetWrap(false).
		SetTextAlign(tview.AlignRight).
		SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetWrap(false).
		SetBackgroundColor(tcell.ColorDarkGrey)
	d.input.SetLabel("> ")

	grid := tview.NewGrid().
		SetRows(0, 4, 1).
		SetColumns(0, 0, 0)
	grid.AddItem(d.watch, 0, 0, 1, 1, 0, 0, false)
	grid.AddItem(d.log, 0, 1, 1, 2, 0, 0, false)
	grid.AddItem(d.state, 1, 0, 1, 3, 0, 0, false)
	grid.AddItem(d.input, 2, 0, 1, 3, 0, 0, true)
	d.app.SetRoot(grid, true)

	d.input.SetAutocompleteFunc(func(t string) (entries []string) {
		if t == "" || strings.Contains(t, " ") {
			return nil
		}
		for _, c := range debugCommands {
			if strings.HasPrefix(c, t) {
				entries = append(entries, c)
			}
		}
		return
	})
	d.input.SetAutocompletedFunc(func(t string, index, src int) bool {
		if src != tview.AutocompletedNavigate {
			d.input.SetText(t)
		}
		return src == tview.AutocompletedEnter || src == tview.AutocompletedClick
	})
	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		cmd := d.input.GetText()
		if cmd == "" {
			return
		}
		d.input.SetText("")
		d.command(cmd)
	})
	return d
}

// command interprets a line typed into the debugger.
func (d *debugger) command(line string) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "exit":
		d.app.Stop()
	case "b", "break":
		if arg == "" {
			d.setBreak(-1)
			d.run.Debug(cmd, -1)
			log.Print("cleared break")
			return
		}
		addr, err := parseAddr(arg)
		if err != nil {
			log.Printf("invalid addr %q", arg)
			return
		}
		d.setBreak(addr)
		d.run.Debug(cmd, addr)
		log.Printf("set break %d", addr)
	case "w", "watch", "unwatch":
		addr, err := parseAddr(arg)
		if err != nil {
			log.Printf("invalid address %q", arg)
			return
		}
		if cmd == "unwatch" {
			d.unwatch(addr)
			log.Printf("unwatched %d", addr)
		} else {
			d.addWatch(addr)
			log.Printf("watching %d", addr)
		}
		d.run.Debug("refresh", 0)
	case "i", "input":
		vals, err := parseValues(arg)
		if err != nil || len(vals) == 0 {
			log.Printf("invalid input %q", arg)
			return
		}
		d.run.Input(vals)
	default:
		d.run.Debug(cmd, 0)
	}
}

func parseAddr(s string) (int64, error) {
	p, err := parseInt(s)
	if err != nil {
		return 0, err
	}
	if *p < 0 {
		return 0, fmt.Errorf("negative address %d", *p)
	}
	return *p, nil
}

func (d *debugger) setBreak(addr int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.brk = addr
}

func (d *debugger) addWatch(addr int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for _, a := range d.watches {
		if a == addr {
			return
		}
	}
	d.watches = append(d.watches, addr)
	sort.Slice(d.watches, func(i, j int) bool { return d.watches[i] < d.watches[j] })
}

func (d *debugger) unwatch(addr int64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	for i, a := range d.watches {
		if a == addr {
			d.watches = append(d.watches[:i], d.watches[i+1:]...)
			return
		}
	}
}

func (d *debugger) Run() error { return d.app.Run() }

func (d *debugger) StateFunc(m *intcode.Machine, k StateKind) {
	var (
		watch = d.watchContent(m)
		state string
	)
	if k != QuietState {
		state = stateMsg(m, k)
	}
	d.app.QueueUpdateDraw(func() {
		switch k {
		case PauseState, ClearState:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case BreakState:
			d.state.SetTextColor(tcell.ColorYellow)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case InputState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case HaltState, FaultState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		d.watch.SetText(watch)
		if k != QuietState {
			d.state.SetText(state)
		}
	})
}

// stateMsg describes the machine state and the next instruction.
func stateMsg(m *intcode.Machine, k StateKind) string {
	var next string
	if in, err := m.Decode(m.PC); err != nil {
		next = fmt.Sprintf("%v (%v)", in, err)
	} else {
		next = in.String() + operands(m, in)
	}
	kind := "       "
	switch k {
	case BreakState:
		kind = "[break]"
	case PauseState:
		kind = "[pause]"
	case InputState:
		kind = "[input]"
	case HaltState:
		kind = "[HALT!]"
	case FaultState:
		kind = "[FAULT]"
	}
	return fmt.Sprintf("%6d %s %s\nbase: %d  state: %v\nin:  %v\nout: %v\n",
		m.PC, kind, next, m.Base, m.State(), tail(m.Input, 16), tail(m.Output, 16))
}

// operands describes the values the parameters of in currently resolve to.
func operands(m *intcode.Machine, in intcode.Instr) string {
	var b strings.Builder
	for i := 0; i < in.Op.Arity(); i++ {
		if in.Modes[i] == intcode.Immediate {
			continue
		}
		addr := in.Args[i]
		if in.Modes[i] == intcode.Relative {
			addr += m.Base
		}
		if b.Len() == 0 {
			b.WriteString("   ;")
		}
		if v, err := m.Peek(addr); err != nil {
			fmt.Fprintf(&b, " [%d]=?", addr)
		} else {
			fmt.Fprintf(&b, " [%d]=%d", addr, v)
		}
	}
	return b.String()
}

func tail(v []int64, n int) string {
	if len(v) <= n {
		return fmt.Sprint(v)
	}
	return fmt.Sprintf("[... %v", fmt.Sprint(v[len(v)-n:])[1:])
}

func (d *debugger) watchContent(m *intcode.Machine) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	if d.brk >= 0 {
		fmt.Fprintf(&b, "[%d] brk!\n", d.brk)
	}
	for _, addr := range d.watches {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		v, _ := m.Peek(addr)
		fmt.Fprintf(&b, "[%d] %d", addr, v)
	}
	return b.String()
}
