package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/nf/nix/intcode"
)

// Console connects a machine to a terminal: output values are written one
// per line and, whenever the program blocks on input, values are read from
// the next non-empty line.
type Console struct {
	in  *bufio.Scanner
	out io.Writer
}

func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{in: bufio.NewScanner(in), out: out}
}

var errInputClosed = errors.New("input closed while program awaits input")

// Run executes m until it halts.
func (c *Console) Run(m *intcode.Machine) error {
	for {
		ev, err := m.Run()
		if err != nil {
			return err
		}
		switch ev {
		case intcode.Output:
			v, _ := m.Last()
			fmt.Fprintln(c.out, v)
		case intcode.NeedInput:
			vals, err := c.readInput()
			if err != nil {
				return err
			}
			m.AppendInput(vals...)
		case intcode.Halt:
			return nil
		}
	}
}

func (c *Console) readInput() ([]int64, error) {
	for c.in.Scan() {
		vals, err := parseValues(c.in.Text())
		if err != nil {
			log.Printf("reading input: %v", err)
			continue
		}
		if len(vals) > 0 {
			return vals, nil
		}
	}
	if err := c.in.Err(); err != nil {
		return nil, err
	}
	return nil, errInputClosed
}
