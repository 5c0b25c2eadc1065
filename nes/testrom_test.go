package nes

import (
	"bytes"
	"testing"
)

// romImage assembles a synthetic one-bank iNES image: the program at the
// start of PRG, the reset vector pointing at 0x8000, and one CHR bank.
func romImage(flags6 byte, program, chr []byte) []byte {
	header := []byte{'N', 'E', 'S', 0x1A, 1, 1, flags6, 0, 0, 0, 0, 0, 0, 0, 0, 0}

	prg := make([]byte, prgUnit)
	copy(prg, program)
	// the single bank mirrors into 0xC000-0xFFFF, so the vectors live at the
	// end of the bank
	prg[0x3FFC] = 0x00
	prg[0x3FFD] = 0x80

	chrBank := make([]byte, chrUnit)
	copy(chrBank, chr)

	image := append([]byte{}, header...)
	image = append(image, prg...)
	return append(image, chrBank...)
}

func loadTestCart(t *testing.T, flags6 byte, program, chr []byte) *Cartridge {
	t.Helper()
	cart, err := LoadINES(bytes.NewReader(romImage(flags6, program, chr)))
	if err != nil {
		t.Fatalf("unable to load test rom: %v", err)
	}
	return cart
}

// testBus wires a cpu and bus around a freshly loaded test cartridge.
func testBus(t *testing.T, program []byte) (*cpu, *sysBus) {
	t.Helper()
	cart := loadTestCart(t, 0, program, nil)

	bus := &sysBus{
		wram: newRam(wramSize),
		ppu:  newPpu(cart),
		apu:  newApu(),
		cart: cart,
		pad1: &controller{},
		pad2: &controller{},
		ints: &interrupts{},
	}

	c := newCpu(nil)
	c.reset(bus)
	return c, bus
}

func testConsole(t *testing.T, program []byte) *Console {
	t.Helper()
	return NewConsole(loadTestCart(t, 0, program, nil), nil)
}
