package nes

import "io"

// HostAction is the host's verdict after a frame is displayed.
type HostAction int

const (
	Continue HostAction = iota
	Exit
)

// Host is the external windowing/input layer. The core calls Poll at the top
// of every scheduler iteration and Display once per completed frame; the
// host is expected to pace the loop to the display rate by blocking in
// Display.
type Host interface {
	// Poll reports the current controller snapshots, one per port in
	// {A, B, Start, Select, Up, Down, Left, Right} order, and whether the
	// user asked to quit.
	Poll() (pads [2][8]bool, exit bool)

	// Display presents the game frame and the two debug grids, all packed
	// 0xRRGGBB. Returning Exit stops the scheduler.
	Display(main, nametables, patterns [][]uint32) HostAction
}

// Console owns every component and the bus value that connects them, and
// drives the cooperative schedule: one CPU instruction, the PPU fed three
// dots per cycle, the APU fed the same cycle count, the renderer once per
// completed frame. Interrupt assertions made by the PPU or APU become
// visible to the CPU on the next iteration.
type Console struct {
	cpu  *cpu
	ppu  *ppu
	apu  *apu
	bus  *sysBus
	ints *interrupts

	pad1 *controller
	pad2 *controller

	image    *Image
	renderer *Renderer
}

// NewConsole wires a console around the loaded cartridge. The trace writer
// is optional; when set, every CPU step logs a nestest-format line before
// executing.
func NewConsole(cart *Cartridge, trace io.Writer) *Console {
	ints := &interrupts{}
	pad1 := &controller{}
	pad2 := &controller{}

	p := newPpu(cart)
	a := newApu()
	c := newCpu(trace)

	bus := &sysBus{
		wram: newRam(wramSize),
		ppu:  p,
		apu:  a,
		cart: cart,
		pad1: pad1,
		pad2: pad2,
		ints: ints,
	}

	console := &Console{
		cpu:      c,
		ppu:      p,
		apu:      a,
		bus:      bus,
		ints:     ints,
		pad1:     pad1,
		pad2:     pad2,
		image:    NewImage(),
		renderer: NewRenderer(),
	}
	console.Reset()

	return console
}

// Reset puts the register file back in its power-on state and re-enters
// through the reset vector.
func (c *Console) Reset() {
	c.cpu.reset(c.bus)
}

// SetPC overrides the program counter. Trace harnesses that enter at a fixed
// address use this right after Reset.
func (c *Console) SetPC(pc uint16) {
	c.cpu.setPC(pc)
}

// SetButtons replaces one controller port's live snapshot.
func (c *Console) SetButtons(port int, buttons [8]bool) {
	switch port {
	case 0:
		c.pad1.set(buttons)
	case 1:
		c.pad2.set(buttons)
	}
}

// Step runs one scheduler iteration: a single CPU instruction, then the PPU
// and APU catch up on its cycle count. Reports the cycles consumed and
// whether the PPU completed a frame.
func (c *Console) Step() (cycles int, frameReady bool) {
	cycles = c.cpu.step(c.bus)
	frameReady = c.ppu.step(cycles, c.image, c.ints)
	c.apu.run(cycles, c.ints)
	return cycles, frameReady
}

// StepFrame steps until the PPU reports a complete frame, then renders it.
func (c *Console) StepFrame() *Renderer {
	for {
		if _, frameReady := c.Step(); frameReady {
			break
		}
	}
	c.renderer.Render(c.image)
	return c.renderer
}

// Run drives the scheduler against the host until it asks to exit. The loop
// never preempts mid-instruction; the exit flag is honored between
// iterations.
func (c *Console) Run(host Host) {
	c.Reset()

	for {
		pads, exit := host.Poll()
		if exit {
			return
		}
		c.pad1.set(pads[0])
		c.pad2.set(pads[1])

		if _, frameReady := c.Step(); !frameReady {
			continue
		}

		c.renderer.Render(c.image)
		if host.Display(c.renderer.Main(), c.renderer.Nametables(), c.renderer.Patterns()) == Exit {
			return
		}
	}
}
