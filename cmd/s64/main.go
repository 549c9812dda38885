// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/ezrec/s64/cpu"
	"github.com/ezrec/s64/emulator"
	"github.com/ezrec/s64/internal"
	"github.com/ezrec/s64/sfile"
	"github.com/ezrec/s64/translate"
)

// readLines returns all of the lines of an input.
func readLines(input io.Reader) (lines []string, err error) {
	scanner := bufio.NewScanner(input)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	err = scanner.Err()
	return
}

func main() {
	var compile string
	var raw bool
	var exec string
	var output string
	var disasm bool
	var defines bool
	var jobs int
	var limit int
	var verbose bool

	flag.StringVar(&compile, "c", "", ".s file to compile")
	flag.BoolVar(&raw, "r", false, "Compile plain instruction lines, without the assembler")
	flag.StringVar(&exec, "x", "", ".sf container to execute")
	flag.StringVar(&output, "o", "", ".sf container to write, do not execute")
	flag.BoolVar(&disasm, "d", false, "Disassemble the program, do not execute")
	flag.BoolVar(&defines, "D", false, "Print the assembler predefines, do not execute")
	flag.IntVar(&jobs, "j", 0, "Translation workers (0 for one per CPU)")
	flag.IntVar(&limit, "l", emulator.TICK_LIMIT, "Tick limit (0 for unlimited)")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	if flag.NArg() != 0 {
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	if len(compile) != 0 && len(exec) != 0 {
		log.Fatalf("%v: -c and -x are exclusive", os.Args[0])
	}

	if verbose {
		log.Printf("%v: language %v", os.Args[0], translate.Language())
	}

	ctx := context.Background()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.Limit = limit

	if defines {
		for key, value := range internal.IterSeq2Sorted(emu.Defines()) {
			fmt.Printf(".equ %v %v\n", key, value)
		}
		return
	}

	// Compile a new instruction stream.
	if len(compile) != 0 {
		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		if raw {
			lines, err := readLines(inf)
			if err != nil {
				log.Fatalf("%v: %v", compile, err)
			}
			words, err := cpu.CompileLinesParallel(ctx, lines, jobs)
			if err != nil {
				log.Fatalf("%v: %v", compile, err)
			}
			emu.Program = cpu.NewProgram(words)
		} else {
			asm := &cpu.Assembler{Verbose: verbose}
			for key, value := range emu.Defines() {
				asm.Predefine(key, value)
			}
			emu.Program, err = asm.Parse(inf)
			if err != nil {
				log.Fatalf("%v: %v", compile, err)
			}
		}
	}

	// Load an existing container.
	if len(exec) != 0 {
		inf, err := os.Open(exec)
		if err != nil {
			log.Fatalf("%v: %v", exec, err)
		}
		defer inf.Close()

		err = emu.Load(inf)
		if err != nil {
			log.Fatalf("%v: %v", exec, err)
		}
	}

	if len(output) != 0 {
		ouf, err := os.Create(output)
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		defer ouf.Close()

		err = sfile.Write(ouf, sfile.NewHeader(sfile.FILETYPE_EXECUTABLE), emu.Program.Binary())
		if err != nil {
			log.Fatalf("%v: %v", output, err)
		}
		return
	}

	if disasm {
		lines, err := cpu.DecompileWordsParallel(ctx, emu.Program.Binary(), jobs)
		if err != nil {
			log.Fatal(err)
		}
		for ip, line := range lines {
			fmt.Printf("%04x: %v\n", ip, line)
		}
		return
	}

	err := emu.Reset()
	if err != nil {
		log.Fatal(err)
	}

	err = emu.Run()
	if err != nil {
		log.Print(emu.Cpu.String())
		log.Fatal(err)
	}

	fmt.Print(emu.Cpu.String())
	fmt.Printf("% 5s: %d\n", "ticks", emu.Ticks())
	fmt.Printf("% 5s: %d\n", "power", emu.Power())
}
