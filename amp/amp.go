// Package amp wires Intcode machines into amplifier pipelines.
//
// Each amplifier is an independent intcode.Machine running the same program.
// The first input of every amplifier is its phase setting; the remaining
// inputs are signals produced by the previous amplifier in the pipeline.
package amp

import (
	"github.com/pkg/errors"

	"github.com/nf/nix/intcode"
)

// Chain runs one amplifier per phase in series, feeding a signal of 0 into
// the first, and returns the signal produced by the last.
func Chain(prog []int64, phases []int64) (int64, error) {
	var signal int64
	for i, phase := range phases {
		m := intcode.New(prog)
		ev, err := m.RunWithInputs(phase, signal)
		if err != nil {
			return 0, errors.Wrapf(err, "amplifier %d", i)
		}
		if ev != intcode.Output {
			return 0, errors.Errorf("amplifier %d: %v before producing a signal", i, ev)
		}
		signal, _ = m.Last()
	}
	return signal, nil
}

// Feedback runs one amplifier per phase in a loop, with the output of the
// last amplifier fed back into the first, until every amplifier has halted.
// It returns the final signal produced by the last amplifier.
func Feedback(prog []int64, phases []int64) (int64, error) {
	if len(phases) == 0 {
		return 0, errors.New("no amplifiers")
	}
	amps := make([]*intcode.Machine, len(phases))
	for i, phase := range phases {
		amps[i] = intcode.New(prog)
		amps[i].SetInput(phase)
	}

	// fresh reports whether signal was produced by the previous amplifier
	// in the loop and has not been delivered yet.
	var (
		signal int64
		fresh  = true
	)
	for halted := 0; halted < len(amps); {
		halted = 0
		for i, m := range amps {
			if m.State() == intcode.Halted {
				halted++
				fresh = false
				continue
			}
			var (
				ev  intcode.Event
				err error
			)
			if fresh {
				ev, err = m.RunWithInputs(signal)
			} else {
				ev, err = m.Run()
			}
			if err != nil {
				return 0, errors.Wrapf(err, "amplifier %d", i)
			}
			switch ev {
			case intcode.Output:
				signal, _ = m.Last()
				fresh = true
			case intcode.Halt:
				halted++
				fresh = false
			case intcode.NeedInput:
				return 0, errors.Errorf("amplifier %d: blocked waiting for input", i)
			}
		}
	}
	if s, ok := amps[len(amps)-1].Last(); ok {
		return s, nil
	}
	return 0, errors.New("last amplifier halted without producing a signal")
}

// Best tries every permutation of the phase settings lo through hi-1 and
// returns the highest signal along with the phases that produced it. If
// feedback is set the amplifiers are run with Feedback, otherwise Chain.
func Best(prog []int64, lo, hi int64, feedback bool) (signal int64, phases []int64, err error) {
	run := Chain
	if feedback {
		run = Feedback
	}
	for _, p := range Permutations(lo, hi) {
		s, err := run(prog, p)
		if err != nil {
			return 0, nil, errors.Wrapf(err, "phases %v", p)
		}
		if phases == nil || s > signal {
			signal, phases = s, p
		}
	}
	if phases == nil {
		return 0, nil, errors.Errorf("no phase settings in [%d, %d)", lo, hi)
	}
	return signal, phases, nil
}

// Permutations returns every ordering of the values lo through hi-1.
func Permutations(lo, hi int64) [][]int64 {
	if hi <= lo {
		return nil
	}
	var (
		out  [][]int64
		cur  = make([]int64, 0, hi-lo)
		used = make([]bool, hi-lo)
		walk func()
	)
	walk = func() {
		if len(cur) == cap(cur) {
			out = append(out, append([]int64(nil), cur...))
			return
		}
		for i := range used {
			if used[i] {
				continue
			}
			used[i] = true
			cur = append(cur, lo+int64(i))
			walk()
			cur = cur[:len(cur)-1]
			used[i] = false
		}
	}
	walk()
	return out
}
