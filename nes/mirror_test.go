package nes

import "testing"

func TestMirrorWram(t *testing.T) {
	for _, base := range []uint16{0x0000, 0x0800, 0x1000, 0x1800} {
		if got := mirrorWram(base + 0x0123); got != 0x0123 {
			t.Errorf("expected 0x%04X to fold to 0x0123, got 0x%04X", base+0x0123, got)
		}
	}
}

func TestMirrorRegister(t *testing.T) {
	tests := []struct {
		address uint16
		want    uint16
	}{
		{0x2000, 0},
		{0x2007, 7},
		{0x2008, 0},
		{0x3456, 6},
		{0x3FFF, 7},
	}
	for _, tt := range tests {
		if got := mirrorRegister(tt.address); got != tt.want {
			t.Errorf("expected 0x%04X to fold to port %d, got %d", tt.address, tt.want, got)
		}
	}
}

// Horizontal mirroring maps nametables {A,A,B,B}; vertical maps {A,B,A,B}.
func TestMirrorNametable(t *testing.T) {
	tests := []struct {
		mode   mirrorMode
		offset uint16
		want   uint16
	}{
		{horizontal, 0x0000, 0x0000},
		{horizontal, 0x0400, 0x0000},
		{horizontal, 0x0800, 0x0400},
		{horizontal, 0x0C00, 0x0400},
		{horizontal, 0x0523, 0x0123},

		{vertical, 0x0000, 0x0000},
		{vertical, 0x0400, 0x0400},
		{vertical, 0x0800, 0x0000},
		{vertical, 0x0C00, 0x0400},
		{vertical, 0x0923, 0x0123},
	}
	for _, tt := range tests {
		if got := mirrorNametable(tt.mode, tt.offset); got != tt.want {
			t.Errorf("mode %d: expected 0x%03X to fold to 0x%03X, got 0x%03X",
				tt.mode, tt.offset, tt.want, got)
		}
	}
}

func TestMirrorPalette(t *testing.T) {
	tests := []struct {
		offset uint16
		want   uint16
	}{
		{0x00, 0x00},
		{0x10, 0x00},
		{0x14, 0x04},
		{0x18, 0x08},
		{0x1C, 0x0C},
		{0x11, 0x11},
		{0x21, 0x01},
		{0xF0, 0x00},
	}
	for _, tt := range tests {
		if got := mirrorPalette(tt.offset); got != tt.want {
			t.Errorf("expected 0x%02X to fold to 0x%02X, got 0x%02X", tt.offset, tt.want, got)
		}
	}
}

// A byte written through any WRAM mirror is observable at the other three.
func TestWramMirrorRoundTrip(t *testing.T) {
	_, bus := testBus(t, nil)

	bus.write(0x0955, 0x5A)
	for _, addr := range []uint16{0x0155, 0x0955, 0x1155, 0x1955} {
		if got := bus.read(addr); got != 0x5A {
			t.Errorf("expected 0x5A at mirror 0x%04X, got 0x%02X", addr, got)
		}
	}
}

// Nametable writes share storage according to the mirroring mode.
func TestNametableMirrorSharing(t *testing.T) {
	t.Run("horizontal", func(t *testing.T) {
		p, _, _ := testPpu(t, nil) // horizontal by default
		p.busWrite(0x2010, 0x42)

		if got := p.busRead(0x2410); got != 0x42 {
			t.Errorf("expected 0x2400 to share with 0x2000, got 0x%02X", got)
		}
		if got := p.busRead(0x2810); got == 0x42 {
			t.Error("expected 0x2800 on the other bank")
		}
	})

	t.Run("vertical", func(t *testing.T) {
		cart := loadTestCart(t, rc1MirrorModeVertical, nil, nil)
		p := newPpu(cart)
		p.busWrite(0x2010, 0x42)

		if got := p.busRead(0x2810); got != 0x42 {
			t.Errorf("expected 0x2800 to share with 0x2000, got 0x%02X", got)
		}
		if got := p.busRead(0x2410); got == 0x42 {
			t.Error("expected 0x2400 on the other bank")
		}
	})
}
