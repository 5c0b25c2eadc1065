package main

import (
	"fmt"

	"github.com/tkdsk/famigo/nes"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	gameW = 256
	gameH = 240
	zoom  = 2

	frameDuration = 1000 / 60 // milliseconds, the host frame pacer
)

var keyboardMapping = map[sdl.Keycode]nes.Button{
	sdl.K_z:      nes.B,
	sdl.K_x:      nes.A,
	sdl.K_RETURN: nes.Start,
	sdl.K_RSHIFT: nes.Select,
	sdl.K_UP:     nes.Up,
	sdl.K_DOWN:   nes.Down,
	sdl.K_LEFT:   nes.Left,
	sdl.K_RIGHT:  nes.Right,
}

// window is one SDL window with a streaming texture the pixel grids blit
// into.
type window struct {
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
	w, h     int
	pixels   []byte
}

func newWindow(title string, w, h, scale int) (*window, error) {
	win, err := sdl.CreateWindow(title,
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(w*scale), int32(h*scale), sdl.WINDOW_SHOWN)
	if err != nil {
		return nil, fmt.Errorf("unable to create window: %s", err)
	}

	renderer, err := sdl.CreateRenderer(win, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("unable to create renderer: %s", err)
	}

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, int32(w), int32(h))
	if err != nil {
		renderer.Destroy()
		win.Destroy()
		return nil, fmt.Errorf("unable to create texture: %s", err)
	}

	return &window{
		window:   win,
		renderer: renderer,
		texture:  texture,
		w:        w,
		h:        h,
		pixels:   make([]byte, w*h*4),
	}, nil
}

// present uploads a packed 0xRRGGBB grid and flips the window.
func (w *window) present(grid [][]uint32) error {
	i := 0
	for _, row := range grid {
		for _, px := range row {
			w.pixels[i+0] = byte(px >> 16)
			w.pixels[i+1] = byte(px >> 8)
			w.pixels[i+2] = byte(px)
			w.pixels[i+3] = 0xFF
			i += 4
		}
	}

	if err := w.texture.Update(nil, w.pixels, w.w*4); err != nil {
		return err
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return err
	}
	w.renderer.Present()
	return nil
}

func (w *window) destroy() {
	w.texture.Destroy()
	w.renderer.Destroy()
	w.window.Destroy()
}

// sdlHost implements nes.Host. Events are pumped once per displayed frame;
// Poll, which the scheduler calls every instruction, only hands back the
// cached state.
type sdlHost struct {
	game      *window
	nametable *window
	pattern   *window

	pads [2][8]bool
	exit bool

	lastFrame uint64
}

func newSdlHost(title string, debug bool) (*sdlHost, error) {
	game, err := newWindow(title, gameW, gameH, zoom)
	if err != nil {
		return nil, err
	}

	host := &sdlHost{game: game}

	if debug {
		host.nametable, err = newWindow("nametables", gameW*2, gameH*2, 1)
		if err != nil {
			game.destroy()
			return nil, err
		}
		host.pattern, err = newWindow("patterns", 256, 128, zoom)
		if err != nil {
			host.nametable.destroy()
			game.destroy()
			return nil, err
		}
	}

	return host, nil
}

func (h *sdlHost) destroy() {
	if h.pattern != nil {
		h.pattern.destroy()
	}
	if h.nametable != nil {
		h.nametable.destroy()
	}
	h.game.destroy()
}

func (h *sdlHost) Poll() (pads [2][8]bool, exit bool) {
	return h.pads, h.exit
}

func (h *sdlHost) Display(main, nametables, patterns [][]uint32) nes.HostAction {
	h.pump()
	if h.exit {
		return nes.Exit
	}

	if err := h.game.present(main); err != nil {
		return nes.Exit
	}
	if h.nametable != nil {
		if err := h.nametable.present(nametables); err != nil {
			return nes.Exit
		}
	}
	if h.pattern != nil {
		if err := h.pattern.present(patterns); err != nil {
			return nes.Exit
		}
	}

	h.pace()
	return nes.Continue
}

func (h *sdlHost) pump() {
	for evt := sdl.PollEvent(); evt != nil; evt = sdl.PollEvent() {
		switch evt := evt.(type) {
		case *sdl.QuitEvent:
			h.exit = true

		case *sdl.KeyboardEvent:
			if evt.Type == sdl.KEYUP && evt.Keysym.Sym == sdl.K_ESCAPE {
				h.exit = true
				continue
			}
			if btn, ok := keyboardMapping[evt.Keysym.Sym]; ok {
				h.pads[0][btn] = evt.Type == sdl.KEYDOWN
			}
		}
	}
}

// pace throttles the loop to roughly 60 Hz of wall clock.
func (h *sdlHost) pace() {
	elapsed := sdl.GetTicks64() - h.lastFrame
	if elapsed < frameDuration {
		sdl.Delay(uint32(frameDuration - elapsed))
	}
	h.lastFrame = sdl.GetTicks64()
}
