package intcode

import (
	"errors"
	"fmt"
	"testing"
)

func TestModeOf(t *testing.T) {
	for _, c := range []struct {
		word int64
		want [3]Mode
	}{
		{1002, [3]Mode{Position, Immediate, Position}},
		{1, [3]Mode{Position, Position, Position}},
		{11101, [3]Mode{Immediate, Immediate, Immediate}},
		{21202, [3]Mode{Relative, Immediate, Relative}},
		{204, [3]Mode{Relative, Position, Position}},
		{109, [3]Mode{Immediate, Position, Position}},
	} {
		for p := 1; p <= 3; p++ {
			t.Run(fmt.Sprintf("%d_%d", c.word, p), func(t *testing.T) {
				got, err := ModeOf(c.word, p)
				if err != nil {
					t.Fatal(err)
				}
				if w := c.want[p-1]; got != w {
					t.Errorf("ModeOf(%d, %d) = %v, want %v", c.word, p, got, w)
				}
			})
		}
	}
}

func TestModeOfInvalid(t *testing.T) {
	_, err := ModeOf(301, 1)
	var f Fault
	if !errors.As(err, &f) {
		t.Fatalf("got error %v, want Fault", err)
	}
	if f.Code != InvalidMode || f.Value != 3 || f.Word != 301 {
		t.Errorf("got %+v, want InvalidMode digit 3 in word 301", f)
	}
}

func TestModeOfParamRange(t *testing.T) {
	for _, p := range []int{-1, 0, 4} {
		if _, err := ModeOf(11101, p); err == nil {
			t.Errorf("ModeOf(11101, %d) succeeded", p)
		}
	}
}

func TestOpOf(t *testing.T) {
	for word, want := range map[int64]Op{
		1:     ADD,
		1002:  MUL,
		3:     IN,
		104:   OUT,
		1105:  JNZ,
		1106:  JZ,
		1107:  LT,
		21108: EQ,
		109:   ARB,
		99:    HLT,
		199:   HLT,
		0:     Invalid,
		10:    Invalid,
		98:    Invalid,
		-4:    Invalid,
	} {
		if got := OpOf(word); got != want {
			t.Errorf("OpOf(%d) = %v, want %v", word, got, want)
		}
	}
}

// Check that every valid opcode has a name and an arity that matches the
// instruction set, and that everything else is invalid.
func TestOpTable(t *testing.T) {
	arity := map[Op]int{
		ADD: 3, MUL: 3, IN: 1, OUT: 1, JNZ: 2, JZ: 2, LT: 3, EQ: 3, ARB: 1, HLT: 0,
	}
	for i := 0; i < 0x100; i++ {
		op := Op(i)
		a, ok := arity[op]
		if op.Valid() != ok {
			t.Errorf("%v.Valid() = %v, want %v", op, op.Valid(), ok)
			continue
		}
		if ok && op.Arity() != a {
			t.Errorf("%v.Arity() = %d, want %d", op, op.Arity(), a)
		}
	}
}

func TestDecodeString(t *testing.T) {
	m := New([]int64{1002, 4, 3, 4, 33, 21101, 7, -1, -3, 99, 42})
	for _, c := range []struct {
		addr int64
		want string
	}{
		{0, "MUL @4 #3 @4"},
		{5, "ADD #7 #-1 r-3"},
		{9, "HLT"},
		{10, "??? 42"},
	} {
		in, _ := m.Decode(c.addr)
		if got := in.String(); got != c.want {
			t.Errorf("Decode(%d) = %q, want %q", c.addr, got, c.want)
		}
	}
	if n := len(m.Mem); n != 11 {
		t.Errorf("Decode grew memory to %d cells", n)
	}
}
