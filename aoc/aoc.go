// Package aoc drives Intcode machines the way the individual puzzle
// programs expect: patching inputs into memory, searching parameter spaces
// and checking diagnostic output.
package aoc

import (
	"github.com/pkg/errors"

	"github.com/nf/nix/intcode"
)

// Restore stores noun and verb at addresses 1 and 2, runs the program to
// completion and returns the value left at address 0.
func Restore(prog []int64, noun, verb int64) (int64, error) {
	m := intcode.New(prog)
	if err := patch(m, noun, verb); err != nil {
		return 0, err
	}
	if err := m.RunUntilHalt(); err != nil {
		return 0, errors.Wrapf(err, "noun %d verb %d", noun, verb)
	}
	return m.Mem[0], nil
}

func patch(m *intcode.Machine, noun, verb int64) error {
	if err := m.Poke(1, noun); err != nil {
		return err
	}
	return m.Poke(2, verb)
}

// FindNounVerb searches nouns and verbs in the range 0 to 99 for the pair
// for which Restore yields target. Programs that fault for a given pair are
// skipped.
func FindNounVerb(prog []int64, target int64) (noun, verb int64, err error) {
	for noun = 0; noun <= 99; noun++ {
		for verb = 0; verb <= 99; verb++ {
			if v, err := Restore(prog, noun, verb); err == nil && v == target {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, errors.Errorf("no noun and verb produce %d", target)
}

// Diagnostic runs the program with the given system ID as its only input.
// Every output but the last is a test result and must be zero; the last is
// the diagnostic code, which is returned.
func Diagnostic(prog []int64, id int64) (int64, error) {
	m := intcode.New(prog)
	m.SetInput(id)
	if err := m.RunUntilHalt(); err != nil {
		return 0, errors.Wrapf(err, "system %d", id)
	}
	code, ok := m.Last()
	if !ok {
		return 0, errors.Errorf("system %d: no diagnostic code", id)
	}
	for i, v := range m.Output[:len(m.Output)-1] {
		if v != 0 {
			return 0, errors.Errorf("system %d: test %d failed with %d", id, i, v)
		}
	}
	return code, nil
}

// Boost runs the program with mode as its only input and returns all of its
// output. In test mode (1) any output but a single keycode names an opcode
// that is not working.
func Boost(prog []int64, mode int64) ([]int64, error) {
	m := intcode.New(prog)
	m.SetInput(mode)
	if err := m.RunUntilHalt(); err != nil {
		return m.Output, errors.Wrapf(err, "mode %d", mode)
	}
	return m.Output, nil
}
