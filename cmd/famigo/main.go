package main

import (
	"flag"
	"os"
	"runtime"

	"github.com/golang/glog"
	"github.com/tkdsk/famigo/nes"
	"github.com/veandco/go-sdl2/sdl"
)

const defaultRom = "roms/nestest.nes"

func init() {
	runtime.LockOSThread()
}

func main() {
	var romPath string
	var debug bool
	flag.StringVar(&romPath, "r", "", "path to an iNES rom")
	flag.StringVar(&romPath, "rom", "", "path to an iNES rom")
	flag.BoolVar(&debug, "d", false, "open the nametable and pattern debug windows")
	flag.BoolVar(&debug, "debug", false, "open the nametable and pattern debug windows")
	flag.Parse()

	if romPath == "" {
		switch flag.NArg() {
		case 0:
			romPath = defaultRom
		case 1:
			romPath = flag.Arg(0)
		default:
			glog.Fatalf("usage: famigo [-r ROM] [-d] [ROM]")
		}
	}

	if err := run(romPath, debug); err != nil {
		glog.Errorf("famigo: %s", err)
		glog.Flush()
		os.Exit(1)
	}
	glog.Flush()
}

func run(romPath string, debug bool) error {
	f, err := os.Open(romPath)
	if err != nil {
		return err
	}
	cart, err := nes.LoadINES(f)
	f.Close()
	if err != nil {
		return err
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return err
	}
	defer sdl.Quit()

	host, err := newSdlHost(romPath, debug)
	if err != nil {
		return err
	}
	defer host.destroy()

	console := nes.NewConsole(cart, nil)
	console.Run(host)

	return nil
}
