// famigo-ebiten is the minimal frontend: game view only, driven through the
// console's StepFrame surface instead of the Host loop, because ebiten owns
// the main loop.
package main

import (
	"flag"
	"os"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tkdsk/famigo/nes"
)

const (
	gameW = 256
	gameH = 240

	defaultRom = "roms/nestest.nes"
)

var keyboardMapping = map[ebiten.Key]nes.Button{
	ebiten.KeyZ:          nes.B,
	ebiten.KeyX:          nes.A,
	ebiten.KeyEnter:      nes.Start,
	ebiten.KeyShiftRight: nes.Select,
	ebiten.KeyArrowUp:    nes.Up,
	ebiten.KeyArrowDown:  nes.Down,
	ebiten.KeyArrowLeft:  nes.Left,
	ebiten.KeyArrowRight: nes.Right,
}

type game struct {
	console *nes.Console
	pixels  []byte
}

func (g *game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	var pad [8]bool
	for key, btn := range keyboardMapping {
		pad[btn] = ebiten.IsKeyPressed(key)
	}
	g.console.SetButtons(0, pad)

	frame := g.console.StepFrame()

	i := 0
	for _, row := range frame.Main() {
		for _, px := range row {
			g.pixels[i+0] = byte(px >> 16)
			g.pixels[i+1] = byte(px >> 8)
			g.pixels[i+2] = byte(px)
			g.pixels[i+3] = 0xFF
			i += 4
		}
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.WritePixels(g.pixels)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return gameW, gameH
}

func main() {
	var romPath string
	flag.StringVar(&romPath, "r", "", "path to an iNES rom")
	flag.StringVar(&romPath, "rom", "", "path to an iNES rom")
	flag.Parse()

	if romPath == "" {
		switch flag.NArg() {
		case 0:
			romPath = defaultRom
		case 1:
			romPath = flag.Arg(0)
		default:
			glog.Fatalf("usage: famigo-ebiten [-r ROM] [ROM]")
		}
	}

	f, err := os.Open(romPath)
	if err != nil {
		glog.Fatalf("famigo-ebiten: %s", err)
	}
	cart, err := nes.LoadINES(f)
	f.Close()
	if err != nil {
		glog.Fatalf("famigo-ebiten: %s", err)
	}

	ebiten.SetWindowSize(gameW*2, gameH*2)
	ebiten.SetWindowTitle(romPath)

	g := &game{
		console: nes.NewConsole(cart, nil),
		pixels:  make([]byte, gameW*gameH*4),
	}
	if err := ebiten.RunGame(g); err != nil {
		glog.Fatalf("famigo-ebiten: %s", err)
	}
	glog.Flush()
}
