// Copyright 2025, Jordan Reyes <jordan@reyes.dev>

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/jreyes/mos6502/emulator"
)

func main() {
	var compile string
	var save string
	var verbose bool

	flag.StringVar(&compile, "c", "", ".asm file to assemble")
	flag.StringVar(&save, "s", "", "Save assembled image to file, do not execute")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")

	flag.Parse()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	var image []uint8

	if len(compile) != 0 {
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}

		inf, err := os.Open(compile)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		defer inf.Close()

		asm := emu.Assembler()
		prog, err := asm.Parse(inf)
		if err != nil {
			log.Fatalf("%v: %v", compile, err)
		}
		emu.Program = prog
		image = prog.Binary()
	} else {
		if flag.NArg() != 1 {
			log.Fatalf("%v: Expected a single binary image argument", os.Args[0])
		}

		var err error
		image, err = os.ReadFile(flag.Arg(0))
		if err != nil {
			log.Fatalf("%v: %v", flag.Arg(0), err)
		}
	}

	if len(save) != 0 {
		err := os.WriteFile(save, image, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		return
	}

	var err error
	if len(compile) != 0 {
		err = emu.Reset()
		if err == nil {
			err = emu.Run()
		}
	} else {
		err = emu.RunImage(image)
	}
	if err != nil {
		log.Fatal(err)
	}

	fmt.Print(emu.Cpu.String())
}
