package intcode

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Parse reads a program image: base-10 signed integers separated by commas.
// Whitespace around the values, and a single trailing comma, are ignored.
func Parse(r io.Reader) ([]int64, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading program")
	}
	return ParseString(string(b))
}

// ParseString is like Parse but reads the image from s.
func ParseString(s string) ([]int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, ",")
	if s == "" {
		return nil, errors.New("empty program")
	}
	fields := strings.Split(s, ",")
	prog := make([]int64, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseInt(strings.TrimSpace(f), 10, 64)
		if err != nil {
			return nil, errors.Wrapf(err, "program value %d", i)
		}
		prog[i] = v
	}
	return prog, nil
}

// Load reads a program image from the named file.
func Load(name string) ([]int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	prog, err := Parse(f)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", name)
	}
	return prog, nil
}
