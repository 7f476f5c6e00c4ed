package aoc

import (
	"reflect"
	"strings"
	"testing"
)

func TestRestore(t *testing.T) {
	for _, c := range []struct {
		prog       []int64
		noun, verb int64
		want       int64
	}{
		{[]int64{1, 9, 10, 3, 2, 3, 11, 0, 99, 30, 40, 50}, 9, 10, 3500},
		{[]int64{1, 0, 0, 0, 99}, 0, 0, 2},
		{[]int64{2, 3, 0, 3, 99}, 3, 0, 2},
		{[]int64{1, 1, 1, 4, 99, 5, 6, 0, 99}, 1, 1, 30},
	} {
		got, err := Restore(c.prog, c.noun, c.verb)
		if err != nil {
			t.Errorf("Restore(%v): %v", c.prog, err)
			continue
		}
		if got != c.want {
			t.Errorf("Restore(%v, %d, %d) = %d, want %d", c.prog, c.noun, c.verb, got, c.want)
		}
	}
}

// sumProg stores noun+verb at address 0.
var sumProg = []int64{1101, 0, 0, 0, 99}

func TestFindNounVerb(t *testing.T) {
	noun, verb, err := FindNounVerb(sumProg, 150)
	if err != nil {
		t.Fatal(err)
	}
	if noun+verb != 150 || noun > 99 || verb > 99 {
		t.Errorf("got noun %d verb %d, want a pair summing to 150", noun, verb)
	}
	if noun != 51 || verb != 99 {
		t.Errorf("got noun %d verb %d, want the first pair 51 99", noun, verb)
	}
	if _, _, err := FindNounVerb(sumProg, 500); err == nil {
		t.Error("FindNounVerb found an impossible target")
	}
}

func TestDiagnostic(t *testing.T) {
	// Outputs 0, 0, then the input plus 100.
	prog := []int64{3, 20, 104, 0, 104, 0, 1001, 20, 100, 20, 4, 20, 99}
	got, err := Diagnostic(prog, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got != 105 {
		t.Errorf("Diagnostic = %d, want 105", got)
	}

	failing := []int64{3, 20, 104, 7, 104, 0, 99}
	if _, err := Diagnostic(failing, 1); err == nil || !strings.Contains(err.Error(), "test 0 failed with 7") {
		t.Errorf("got error %v, want failed test", err)
	}
	if _, err := Diagnostic([]int64{3, 0, 99}, 1); err == nil {
		t.Error("Diagnostic without output succeeded")
	}
}

func TestBoost(t *testing.T) {
	quine := []int64{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	got, err := Boost(quine, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, quine) {
		t.Errorf("Boost = %v, want %v", got, quine)
	}

	if _, err := Boost([]int64{3, 0, 3, 0, 99}, 1); err == nil {
		t.Error("Boost of program needing two inputs succeeded")
	}
}
