// Command sqfvm is the CLI host for the sqf virtual machine: it parses and
// executes a script file (run), drops into an interactive read-eval-print
// loop (repl), assembles/disassembles the low-level instruction form (asm),
// or prints version information (version).
//
// Grounded on the teacher's cmd/msg/main.go: same subcommand dispatch shape
// and the same liner-based REPL with a history file and signal handling for
// Ctrl+C/SIGTERM/SIGHUP. The MindScript-specific "fmt"/"test"/"get"
// subcommands (which delegate to MindScript-level canon/testing script
// modules with no SQF analog) are dropped — see DESIGN.md.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	"github.com/sqfvm-go/sqfvm"
	"github.com/sqfvm-go/sqfvm/debugger"
	"github.com/sqfvm-go/sqfvm/diag"
	"github.com/sqfvm-go/sqfvm/fileio"
	"github.com/sqfvm-go/sqfvm/ops"
	"github.com/sqfvm-go/sqfvm/preprocessor"
	"github.com/sqfvm-go/sqfvm/sqfasm"
	"github.com/sqfvm-go/sqfvm/sqfexpr"
)

const version = "0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}
	var err error
	switch os.Args[1] {
	case "run":
		err = cmdRun(os.Args[2:])
	case "repl":
		err = cmdRepl(os.Args[2:])
	case "asm":
		err = cmdAsm(os.Args[2:])
	case "version":
		fmt.Println("sqfvm", version)
	default:
		usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "sqfvm:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: sqfvm <command> [args]

commands:
  run <file>    preprocess, parse, and execute a script
  repl          interactive read-eval-print loop
  asm <file>    parse assembly-form instructions and print them back
  version       print version information`)
}

func newVM() *sqf.VM {
	sink := diag.NewWriterSink(os.Stderr)
	reg := sqf.NewRegistry()
	ops.RegisterAll(reg)
	return sqf.NewVM(sink, reg)
}

func cmdRun(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("run: missing file argument")
	}
	path := args[0]

	src, err := preprocessSource(path)
	if err != nil {
		return err
	}

	vm := newVM()
	p := sqfexpr.New(path)
	code, msgs := vm.Parse(p, src)
	for _, m := range msgs {
		vm.Sink.Emit(m)
	}
	if code == nil {
		return fmt.Errorf("run: parse failed")
	}
	results, err := vm.Execute(code, "main", false)
	if err != nil {
		return err
	}
	if len(results) > 0 {
		fmt.Println(results[len(results)-1].String())
	}
	return nil
}

func preprocessSource(path string) (string, error) {
	dir := filepath.Dir(path)
	resolver := fileio.NewOSResolver(dir)
	sink := diag.NewWriterSink(os.Stderr)
	pp := preprocessor.New(resolver, sink)
	expanded, _, err := pp.Run(filepath.Base(path))
	if err != nil {
		return "", err
	}
	return expanded, nil
}

func cmdAsm(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("asm: missing file argument")
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	vm := newVM()
	p := sqfasm.New(args[0])
	code, msgs := vm.Parse(p, string(data))
	for _, m := range msgs {
		vm.Sink.Emit(m)
	}
	if code == nil {
		return fmt.Errorf("asm: parse failed")
	}
	fmt.Print(sqfasm.Format(code.Instructions))
	return nil
}

func cmdRepl(args []string) error {
	vm := newVM()
	dbg := debugger.New(nil)
	vm.Debugger = dbg

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	historyPath := filepath.Join(os.TempDir(), ".sqfvm_history")
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	go func() {
		<-sigCh
		saveHistory(line, historyPath)
		os.Exit(0)
	}()

	fmt.Println("sqfvm", version, "— interactive mode, type 'exit' to quit")
	for {
		text, err := line.Prompt("sqf> ")
		if err != nil {
			break
		}
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			continue
		}
		if trimmed == "exit" || trimmed == "quit" {
			break
		}
		line.AppendHistory(text)

		p := sqfexpr.New("<repl>")
		code, msgs := vm.Parse(p, trimmed)
		for _, m := range msgs {
			vm.Sink.Emit(m)
		}
		if code == nil {
			continue
		}
		results, err := vm.Execute(code, "repl", false)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			continue
		}
		if len(results) > 0 {
			fmt.Println(results[len(results)-1].String())
		}
	}
	saveHistory(line, historyPath)
	return nil
}

func saveHistory(line *liner.State, path string) {
	if f, err := os.Create(path); err == nil {
		line.WriteHistory(f)
		f.Close()
	}
}
