// Command nix executes Intcode programs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"

	"github.com/nf/nix/amp"
	"github.com/nf/nix/aoc"
	"github.com/nf/nix/intcode"
)

func main() {
	log.SetPrefix("nix: ")
	log.SetFlags(0)

	var (
		configFlag = flag.String("config", "", "read settings from TOML `file`; flags override it")
		_          = flag.String("in", "", "comma-separated initial input `values`")
		_          = flag.Int64("noun", 0, "store `value` at address 1 before running")
		_          = flag.Int64("verb", 0, "store `value` at address 2 before running")
		_          = flag.Bool("mem0", false, "print the value at address 0 after the program halts")
		_          = flag.Bool("trace", false, "log every instruction as it is executed")
		_          = flag.Bool("amp", false, "find the highest amplifier signal for phases 0-4")
		_          = flag.Bool("feedback", false, "find the highest feedback-loop amplifier signal for phases 5-9")
		_          = flag.Int64("search", 0, "find the noun and verb that leave `target` at address 0")
		_          = flag.Bool("diag", false, "run a diagnostic for each input value and check its tests pass")
		_          = flag.Int64("mem_limit", 0, "fault on addresses at or above `cells` (0 means 1<<24)")
		_          = flag.String("debounce", "100ms", "in dev mode, wait `duration` after a change before re-running")
		_          = flag.Bool("dev", false, "enable developer mode (re-run the program whenever it changes)")
		_          = flag.Bool("debug", false, "enable debugger")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] <program.txt>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s -config <file.toml> [flags] [program.txt]\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()

	cfg := defaultConfig()
	if *configFlag != "" {
		var err error
		if cfg, err = loadConfig(*configFlag); err != nil {
			log.Fatal(err)
		}
	}
	if err := cfg.override(flag.CommandLine); err != nil {
		log.Fatal(err)
	}
	switch flag.NArg() {
	case 0:
		if cfg.Program == "" {
			flag.Usage()
		}
	case 1:
		cfg.Program = flag.Arg(0)
	default:
		flag.Usage()
	}

	if cfg.Dev || cfg.Debug {
		if err := devMode(cfg); err != nil {
			log.Fatal(err)
		}
		return
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	err := run(cfg, os.Stdin, os.Stdout)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

func run(cfg config, stdin io.Reader, stdout io.Writer) error {
	prog, err := intcode.Load(cfg.Program)
	if err != nil {
		return err
	}

	switch cfg.Mode {
	case ampMode, feedbackMode:
		lo, hi := int64(0), int64(5)
		if cfg.Mode == feedbackMode {
			lo, hi = 5, 10
		}
		signal, phases, err := amp.Best(prog, lo, hi, cfg.Mode == feedbackMode)
		if err != nil {
			return err
		}
		fmt.Fprintf(stdout, "%d %v\n", signal, phases)
		return nil

	case searchMode:
		noun, verb, err := aoc.FindNounVerb(prog, cfg.Target)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdout, 100*noun+verb)
		return nil

	case diagMode:
		if len(cfg.Input) == 0 {
			return fmt.Errorf("diag: no system ID given with -in")
		}
		for _, id := range cfg.Input {
			code, err := aoc.Diagnostic(prog, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(stdout, code)
		}
		return nil
	}

	m, err := newMachine(cfg, prog)
	if err != nil {
		return err
	}
	if err := NewConsole(stdin, stdout).Run(m); err != nil {
		return err
	}
	if cfg.Mem0 {
		fmt.Fprintln(stdout, m.Mem[0])
	}
	return nil
}

// newMachine returns a machine loaded with prog and set up as cfg describes.
func newMachine(cfg config, prog []int64) (*intcode.Machine, error) {
	m := intcode.New(prog)
	m.MemLimit = cfg.MemLimit
	m.SetInput(cfg.Input...)
	if cfg.Noun != nil {
		if err := m.Poke(1, *cfg.Noun); err != nil {
			return nil, err
		}
	}
	if cfg.Verb != nil {
		if err := m.Poke(2, *cfg.Verb); err != nil {
			return nil, err
		}
	}
	if cfg.Trace {
		m.Trace = func(in intcode.Instr) {
			log.Printf("%6d  %v", in.Addr, in)
		}
	}
	return m, nil
}
