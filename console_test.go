package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/nf/nix/intcode"
)

func TestConsole(t *testing.T) {
	// Echoes pairs of inputs as their sum until it reads a zero.
	prog := []int64{3, 20, 1006, 20, 16, 3, 21, 1, 20, 21, 22, 4, 22, 1105, 1, 0, 99}
	m := intcode.New(prog)
	var out bytes.Buffer
	c := NewConsole(strings.NewReader("1 2\nnot a number\n\n3,4\n0\n"), &out)
	if err := c.Run(m); err != nil {
		t.Fatal(err)
	}
	if got, want := out.String(), "3\n7\n"; got != want {
		t.Errorf("output is %q, want %q", got, want)
	}
}

func TestConsoleInputClosed(t *testing.T) {
	m := intcode.New([]int64{3, 0, 99})
	err := NewConsole(strings.NewReader(""), &bytes.Buffer{}).Run(m)
	if !errors.Is(err, errInputClosed) {
		t.Errorf("got error %v, want %v", err, errInputClosed)
	}
	if m.State() != intcode.AwaitingInput {
		t.Errorf("machine is %v, want awaiting input", m.State())
	}
}
