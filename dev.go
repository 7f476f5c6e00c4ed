package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/nix/intcode"
)

// devMode runs the program under the debugger, re-running it whenever the
// program file changes, or both, as cfg.Debug and cfg.Dev ask.
func devMode(cfg config) error {
	progFile := filepath.Clean(cfg.Program)
	prog, err := intcode.Load(progFile)
	if err != nil {
		return err
	}
	if !cfg.Dev {
		return debugMode(cfg, prog, nil)
	}

	delay, err := cfg.debounce()
	if err != nil {
		return err
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(progFile)); err != nil {
		return err
	}
	progCh := watchProgram(watcher, progFile, delay)

	if cfg.Debug {
		return debugMode(cfg, prog, progCh)
	}
	log.Printf("dev: start %s", filepath.Base(progFile))
	devRun(cfg, prog)
	for prog := range progCh {
		log.Printf("dev: re-run %s", filepath.Base(progFile))
		devRun(cfg, prog)
	}
	return nil
}

// watchProgram sends the freshly loaded program on the returned channel each
// time the named file is written, once it has been left alone for delay.
func watchProgram(w *fsnotify.Watcher, name string, delay time.Duration) <-chan []int64 {
	progCh := make(chan []int64)
	go func() {
		var reload <-chan time.Time
		for {
			select {
			case <-reload:
				reload = nil
				prog, err := intcode.Load(name)
				if err != nil {
					log.Printf("dev: %v", err)
					break
				}
				progCh <- prog
			case ev := <-w.Event:
				if filepath.Clean(ev.Name) == name && !ev.IsAttrib() {
					reload = time.After(delay)
				}
			case err := <-w.Error:
				log.Printf("dev: watcher: %v", err)
			}
		}
	}()
	return progCh
}

// devRun runs prog to completion with the configured input and logs the
// result.
func devRun(cfg config, prog []int64) {
	m, err := newMachine(cfg, prog)
	if err != nil {
		log.Printf("dev: %v", err)
		return
	}
	err = m.RunUntilHalt()
	log.Printf("dev: output %v", m.Output)
	if err != nil {
		log.Printf("dev: %v at %d", err, m.PC)
		return
	}
	if cfg.Mem0 {
		log.Printf("dev: address 0 is %d", m.Mem[0])
	}
}

// debugMode runs prog under the terminal debugger until the user exits. If
// progCh is not nil the machine is reset with each program received on it.
func debugMode(cfg config, prog []int64, progCh <-chan []int64) error {
	debug := newDebugger()
	runner := NewRunner(cfg, prog, debug.StateFunc)
	debug.run = runner
	log.SetPrefix("")
	log.SetOutput(debug.log)
	go func() {
		if err := debug.Run(); err != nil {
			log.Fatalf("debug: %v", err)
		}
		log.SetOutput(os.Stderr)
		log.SetPrefix("nix: ")
		runner.Debug("exit", 0)
	}()
	if progCh != nil {
		go func() {
			for prog := range progCh {
				log.Printf("dev: reset")
				runner.Swap(prog)
			}
		}()
	}
	runner.Run()
	return nil
}
