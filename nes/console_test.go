package nes

import "testing"

// fakeHost counts frames and exits after a fixed number of displays.
type fakeHost struct {
	frames    int
	exitAfter int
	pads      [2][8]bool

	mainH, mainW int
	ntH, ntW     int
	patH, patW   int
}

func (h *fakeHost) Poll() ([2][8]bool, bool) {
	return h.pads, false
}

func (h *fakeHost) Display(main, nametables, patterns [][]uint32) HostAction {
	h.frames++
	h.mainH, h.mainW = len(main), len(main[0])
	h.ntH, h.ntW = len(nametables), len(nametables[0])
	h.patH, h.patW = len(patterns), len(patterns[0])

	if h.frames >= h.exitAfter {
		return Exit
	}
	return Continue
}

func TestConsoleRun(t *testing.T) {
	// enable background rendering, then spin
	program := []byte{
		0xA9, 0x08, // LDA #$08
		0x8D, 0x01, 0x20, // STA $2001
		0x4C, 0x05, 0x80, // loop: JMP loop
	}

	console := testConsole(t, program)
	host := &fakeHost{exitAfter: 2}
	console.Run(host)

	if host.frames != 2 {
		t.Fatalf("expected the host to see 2 frames, got %d", host.frames)
	}
	if host.mainH != 240 || host.mainW != 256 {
		t.Errorf("unexpected main grid %dx%d", host.mainH, host.mainW)
	}
	if host.ntH != 480 || host.ntW != 512 {
		t.Errorf("unexpected nametable grid %dx%d", host.ntH, host.ntW)
	}
	if host.patH != 128 || host.patW != 256 {
		t.Errorf("unexpected pattern grid %dx%d", host.patH, host.patW)
	}
}

func TestConsoleRunHonorsPollExit(t *testing.T) {
	console := testConsole(t, []byte{0x4C, 0x00, 0x80})

	host := &pollExitHost{}
	console.Run(host)

	if host.displays != 0 {
		t.Errorf("expected no frames displayed, got %d", host.displays)
	}
}

type pollExitHost struct {
	displays int
}

func (h *pollExitHost) Poll() ([2][8]bool, bool) {
	return [2][8]bool{}, true
}

func (h *pollExitHost) Display(main, nametables, patterns [][]uint32) HostAction {
	h.displays++
	return Continue
}

func TestConsoleRoutesButtons(t *testing.T) {
	// strobe the pads, read the first two buttons into zero page
	program := []byte{
		0xA9, 0x01, // LDA #$01
		0x8D, 0x16, 0x40, // STA $4016
		0xA9, 0x00, // LDA #$00
		0x8D, 0x16, 0x40, // STA $4016
		0xAD, 0x16, 0x40, // LDA $4016 ; A button
		0x85, 0x10, // STA $10
		0xAD, 0x16, 0x40, // LDA $4016 ; B button
		0x85, 0x11, // STA $11
	}

	console := testConsole(t, program)
	console.SetButtons(0, [8]bool{true, false, true})

	for i := 0; i < 8; i++ {
		console.Step()
	}

	if got := console.bus.read(0x0010); got != 1 {
		t.Errorf("expected the A button pressed, got %d", got)
	}
	if got := console.bus.read(0x0011); got != 0 {
		t.Errorf("expected the B button released, got %d", got)
	}
}

func TestStepFrame(t *testing.T) {
	console := testConsole(t, []byte{0x4C, 0x00, 0x80})

	frame := console.StepFrame()
	if frame == nil {
		t.Fatal("expected a rendered frame")
	}

	// a second frame completes from where the first left off
	console.StepFrame()
}
