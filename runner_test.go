package main

import (
	"io"
	"log"
	"os"
	"reflect"
	"testing"
	"time"

	"github.com/nf/nix/intcode"
)

func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	os.Exit(m.Run())
}

type runnerState struct {
	kind   StateKind
	pc     int64
	output []int64
}

// startRunner runs a Runner for prog and returns it along with a channel of
// the states it reports, excluding QuietState refreshes.
func startRunner(t *testing.T, prog []int64, input ...int64) (*Runner, <-chan runnerState) {
	t.Helper()
	states := make(chan runnerState, 100)
	cfg := defaultConfig()
	cfg.Input = input
	r := NewRunner(cfg, prog, func(m *intcode.Machine, k StateKind) {
		if k == QuietState {
			return
		}
		states <- runnerState{k, m.PC, append([]int64(nil), m.Output...)}
	})
	done := make(chan bool)
	go func() {
		r.Run()
		close(done)
	}()
	t.Cleanup(func() {
		r.Debug("exit", 0)
		<-done
	})
	return r, states
}

func expectState(t *testing.T, states <-chan runnerState, kind StateKind, pc int64) runnerState {
	t.Helper()
	select {
	case s := <-states:
		if s.kind != kind || s.pc != pc {
			t.Fatalf("got state %v at %d, want %v at %d", s.kind, s.pc, kind, pc)
		}
		return s
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for state %v", kind)
	}
	panic("unreachable")
}

func TestRunnerStep(t *testing.T) {
	r, states := startRunner(t, []int64{1101, 1, 2, 0, 104, 7, 99})
	expectState(t, states, ClearState, 0)
	r.Debug("step", 0)
	expectState(t, states, PauseState, 4)
	r.Debug("s", 0)
	s := expectState(t, states, PauseState, 6)
	if !reflect.DeepEqual(s.output, []int64{7}) {
		t.Errorf("output is %v, want [7]", s.output)
	}
	r.Debug("step", 0)
	expectState(t, states, HaltState, 6)
	r.Debug("step", 0)
	expectState(t, states, HaltState, 6)
	r.Debug("reset", 0)
	expectState(t, states, ClearState, 0)
}

func TestRunnerContAndInput(t *testing.T) {
	prog := []int64{3, 11, 4, 11, 3, 11, 4, 11, 99}
	r, states := startRunner(t, prog, 5)
	expectState(t, states, ClearState, 0)
	r.Debug("cont", 0)
	s := expectState(t, states, PauseState, 4)
	if !reflect.DeepEqual(s.output, []int64{5}) {
		t.Errorf("output is %v, want [5]", s.output)
	}
	r.Debug("cont", 0)
	expectState(t, states, InputState, 4)
	r.Input([]int64{6})
	r.Debug("run", 0)
	s = expectState(t, states, HaltState, 8)
	if !reflect.DeepEqual(s.output, []int64{5, 6}) {
		t.Errorf("output is %v, want [5 6]", s.output)
	}
}

func TestRunnerBreak(t *testing.T) {
	// Counts address 20 down from 3 to 0, then halts.
	prog := []int64{1101, 3, 0, 20, 1001, 20, -1, 20, 1005, 20, 4, 99}
	r, states := startRunner(t, prog)
	expectState(t, states, ClearState, 0)
	r.Debug("break", 8)
	r.Debug("run", 0)
	expectState(t, states, BreakState, 8)
	r.Debug("run", 0)
	expectState(t, states, BreakState, 8)
	r.Debug("break", -1)
	r.Debug("run", 0)
	expectState(t, states, HaltState, 11)
}

func TestRunnerFaultAndSwap(t *testing.T) {
	r, states := startRunner(t, []int64{1101, 1, 1, 0, 42})
	expectState(t, states, ClearState, 0)
	r.Debug("run", 0)
	expectState(t, states, FaultState, 4)
	r.Swap([]int64{104, 9, 99})
	expectState(t, states, ClearState, 0)
	r.Debug("cont", 0)
	s := expectState(t, states, PauseState, 2)
	if !reflect.DeepEqual(s.output, []int64{9}) {
		t.Errorf("output is %v, want [9]", s.output)
	}
}

func TestRunnerStop(t *testing.T) {
	// Loops forever.
	r, states := startRunner(t, []int64{1105, 1, 0})
	expectState(t, states, ClearState, 0)
	r.Debug("run", 0)
	r.Debug("stop", 0)
	expectState(t, states, PauseState, 0)
}
