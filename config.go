package main

import (
	"flag"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// config holds the settings for a run of nix. It is read from an optional
// TOML file and then overridden by any flags set on the command line.
type config struct {
	Program  string  `toml:"program"`
	Input    []int64 `toml:"input"`
	Noun     *int64  `toml:"noun"`
	Verb     *int64  `toml:"verb"`
	Mem0     bool    `toml:"mem0"`
	Trace    bool    `toml:"trace"`
	Mode     string  `toml:"mode"` // run, amp, feedback, search or diag
	Target   int64   `toml:"target"`
	Debounce string  `toml:"debounce"`
	MemLimit int64   `toml:"mem_limit"` // cells; 0 is intcode.MaxMemory

	Debug bool `toml:"-"`
	Dev   bool `toml:"-"`
}

const (
	runMode      = "run"
	ampMode      = "amp"
	feedbackMode = "feedback"
	searchMode   = "search"
	diagMode     = "diag"
)

func defaultConfig() config {
	return config{Mode: runMode, Debounce: "100ms"}
}

// loadConfig decodes the named TOML file over the defaults. A relative
// program path is taken to be relative to the file.
func loadConfig(name string) (config, error) {
	cfg := defaultConfig()
	md, err := toml.DecodeFile(name, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("config: %v", err)
	}
	if keys := md.Undecoded(); len(keys) > 0 {
		return cfg, fmt.Errorf("config: unknown key %q", keys[0].String())
	}
	if p := cfg.Program; p != "" && !filepath.IsAbs(p) {
		cfg.Program = filepath.Join(filepath.Dir(name), p)
	}
	return cfg, cfg.check()
}

func (c *config) check() error {
	switch c.Mode {
	case runMode, ampMode, feedbackMode, searchMode, diagMode:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	if c.MemLimit < 0 {
		return fmt.Errorf("config: negative mem_limit %d", c.MemLimit)
	}
	if _, err := c.debounce(); err != nil {
		return fmt.Errorf("config: debounce: %v", err)
	}
	return nil
}

func (c *config) debounce() (time.Duration, error) {
	return time.ParseDuration(c.Debounce)
}

// override applies the flags that were set on the command line.
func (c *config) override(fs *flag.FlagSet) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		v := f.Value.String()
		switch f.Name {
		case "in":
			c.Input, err = parseValues(v)
		case "noun":
			c.Noun, err = parseInt(v)
		case "verb":
			c.Verb, err = parseInt(v)
		case "mem0":
			c.Mem0 = v == "true"
		case "trace":
			c.Trace = v == "true"
		case "amp":
			if v == "true" && c.Mode != feedbackMode {
				c.Mode = ampMode
			}
		case "feedback":
			if v == "true" {
				c.Mode = feedbackMode
			}
		case "search":
			var t *int64
			if t, err = parseInt(v); err == nil {
				c.Mode, c.Target = searchMode, *t
			}
		case "diag":
			if v == "true" {
				c.Mode = diagMode
			}
		case "debounce":
			c.Debounce = v
		case "mem_limit":
			var n *int64
			if n, err = parseInt(v); err == nil {
				c.MemLimit = *n
			}
		case "debug":
			c.Debug = v == "true"
		case "dev":
			c.Dev = v == "true"
		}
		if err != nil {
			err = fmt.Errorf("-%s: %v", f.Name, err)
		}
	})
	if err != nil {
		return err
	}
	return c.check()
}

func parseInt(s string) (*int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// parseValues parses integers separated by commas or white space.
func parseValues(s string) ([]int64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	vals := make([]int64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}
