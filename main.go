// Command nescore is the reference shell: it loads a ROM, opens the
// ebiten window, and optionally exposes the debug/RL gRPC transport
// vdb and scripted-input clients connect to.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ashgrove/nescore/bus"
	"github.com/ashgrove/nescore/cartridge"
	"github.com/ashgrove/nescore/display"
	"github.com/ashgrove/nescore/server"
)

func main() {
	listenAddr := flag.Int("listen", 0, "gRPC debug/RL port to listen on (0 disables the debug transport)")
	headless := flag.Bool("headless", false, "run without opening a window; drives the emulator purely off the debug transport")
	recordPath := flag.String("record", "", "path to write a controller input recording to")
	flag.Parse()

	if flag.NArg() < 1 && !*headless {
		log.Fatalf("usage: %s [flags] <rom.nes>", os.Args[0])
	}

	b := bus.New()
	if flag.NArg() > 0 {
		cart, err := cartridge.New(flag.Arg(0))
		if err != nil {
			log.Fatalf("failed to load %s: %v", flag.Arg(0), err)
		}
		b.LoadCartridge(cart)
	}

	// display.Display polls this unconditionally for network input even
	// when the debug transport is disabled, so it's always constructed;
	// only Start (which opens a listening socket) is conditional.
	srv := server.NewGRPCServer()
	srv.SetBus(b)
	if *listenAddr != 0 {
		if err := srv.Start(*listenAddr); err != nil {
			log.Fatalf("failed to start debug transport: %v", err)
		}
		defer srv.Stop()
	}

	if *headless {
		if !b.HasCartridge() {
			log.Fatalf("headless mode requires a ROM argument")
		}
		for {
			b.RunUntilVBlank()
		}
	}

	var recFile *os.File
	if *recordPath != "" {
		f, err := os.Create(*recordPath)
		if err != nil {
			log.Fatalf("failed to create record file %s: %v", *recordPath, err)
		}
		defer f.Close()
		recFile = f
	}

	ebiten.SetWindowSize(display.ScaledWidth(), display.ScaledHeight())
	ebiten.SetWindowTitle("nescore")

	d := display.New(b, srv, recFile)
	if err := ebiten.RunGame(d); err != nil {
		log.Fatalf("display error: %v", err)
	}
}
