package nes

import "github.com/golang/glog"

// ╔═════════════════╤═══════╤═════════════════════════╤═══════════╗
// ║ Address Range   │ Size  │ Purpose                 │ Kind      ║
// ╠═════════════════╪═══════╪═════════════════════════╪═══════════╣
// ║ 0x8000 - 0xFFFF │ 32768 │ PRG-ROM                 │  PRG ROM  ║
// ╠═════════════════╪═══════╪═════════════════════════╪═══════════╣
// ║ 0x6000 - 0x7FFF │ 8192  │ SRAM                    │   SRAM    ║
// ╠═════════════════╪═══════╪═════════════════════════╪═══════════╣
// ║ 0x4020 - 0x5FFF │ 8160  │ EXPANSION ROM           │  EXP ROM  ║
// ╠═════════════════╪═══════╪═════════════════════════╪═══════════╣
// ║ 0x4000 - 0x401F │ 32    │ APU / I/O REGISTERS     │           ║
// ╟╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┤  I/O REG  ║
// ║ 0x2000 - 0x3FFF │ 8192  │ PPU PORTS (mod 8)       │           ║
// ╠═════════════════╪═══════╪═════════════════════════╪═══════════╣
// ║ 0x0000 - 0x1FFF │ 8192  │ 2 KiB WRAM (mod 0x800)  │    RAM    ║
// ╚═════════════════╧═══════╧═════════════════════════╧═══════════╝
//
// sysBus is the arbitration point for every CPU memory access. It is a plain
// value owned by the console; components never hold a back-reference to it.
type sysBus struct {
	wram *ram
	ppu  *ppu
	apu  *apu
	cart *Cartridge
	pad1 *controller
	pad2 *controller
	ints *interrupts
}

func (bus *sysBus) read(address uint16) byte {
	switch {
	case address < 0x2000:
		return bus.wram.read(mirrorWram(address))

	case address < 0x4000:
		return bus.ppu.readPort(mirrorRegister(address))

	case address == oamDmaAddr:
		return 0 // write-only

	case address == 0x4015:
		return bus.apu.readPort(bus.ints)

	case address == 0x4016:
		return bus.pad1.read()

	case address == 0x4017:
		return bus.pad2.read()

	case address < 0x4020:
		return 0 // open I/O

	case address < 0x6000:
		return 0 // expansion rom

	case address < 0x8000:
		return 0 // sram window reads zero

	default:
		return bus.cart.progRead(address)
	}
}

func (bus *sysBus) write(address uint16, value byte) {
	switch {
	case address < 0x2000:
		bus.wram.write(mirrorWram(address), value)

	case address < 0x4000:
		bus.ppu.writePort(mirrorRegister(address), value)

	case address == oamDmaAddr:
		// DMA is sequenced by the cpu, which never forwards this address
		glog.Fatalf("nes: oam dma write reached the bus: 0x%02X", value)

	case address == 0x4016:
		bus.pad1.write(value)
		bus.pad2.write(value)

	case address <= 0x4017:
		bus.apu.writePort(address, value)

	case address < 0x4020:
		// open I/O

	case address < 0x6000:
		// expansion rom

	case address < 0x8000:
		// minimal sram: writes land in the wram mirror
		bus.wram.write(mirrorWram(address), value)

	default:
		bus.cart.writeBank(address, value)
	}
}
