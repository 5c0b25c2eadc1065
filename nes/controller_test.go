package nes

import "testing"

func TestControllerLatchAndShift(t *testing.T) {
	c := &controller{}
	c.set([8]bool{true, false, true, false, false, true, false, true}) // A, Start, Down, Right

	c.write(1)
	c.write(0)

	want := []byte{1, 0, 1, 0, 0, 1, 0, 1}
	for i, w := range want {
		if got := c.read(); got != w {
			t.Errorf("read %d: expected %d, got %d", i, w, got)
		}
	}

	// reads past the eighth return zero until re-latched
	for i := 0; i < 4; i++ {
		if got := c.read(); got != 0 {
			t.Errorf("expected exhausted reads to return 0, got %d", got)
		}
	}

	c.write(1)
	c.write(0)
	if got := c.read(); got != 1 {
		t.Errorf("expected re-latch to restart at A, got %d", got)
	}
}

func TestControllerStrobeHigh(t *testing.T) {
	c := &controller{}
	c.set([8]bool{true})
	c.write(1)

	// with the strobe held high every read reports the A button
	for i := 0; i < 3; i++ {
		if got := c.read(); got != 1 {
			t.Errorf("expected live A reads while strobed, got %d", got)
		}
	}
}

func TestControllerLatchesSnapshot(t *testing.T) {
	c := &controller{}
	c.set([8]bool{true})
	c.write(1)
	c.write(0)

	// changing the live state does not affect the latched shift register
	c.set([8]bool{false})
	if got := c.read(); got != 1 {
		t.Errorf("expected the latched snapshot, got %d", got)
	}
}

func TestControllerThroughTheBus(t *testing.T) {
	console := testConsole(t, nil)
	console.SetButtons(0, [8]bool{false, true}) // B held

	console.bus.write(0x4016, 1)
	console.bus.write(0x4016, 0)

	if got := console.bus.read(0x4016); got != 0 {
		t.Errorf("expected A released, got %d", got)
	}
	if got := console.bus.read(0x4016); got != 1 {
		t.Errorf("expected B pressed, got %d", got)
	}

	// port 2 shifts independently
	if got := console.bus.read(0x4017); got != 0 {
		t.Errorf("expected idle second port, got %d", got)
	}
}
