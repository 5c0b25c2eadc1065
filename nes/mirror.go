package nes

// The CPU and PPU buses are full of mirrored windows. All the fold math lives
// here so the bus code reads as straight range dispatch.

// mirrorWram folds the 0x0000-0x1FFF window onto the 2 KiB work ram.
func mirrorWram(address uint16) uint16 {
	return address % wramSize
}

// mirrorRegister folds the 0x2000-0x3FFF window onto the eight PPU ports.
func mirrorRegister(address uint16) uint16 {
	return (address - 0x2000) % 8
}

var (
	horizontalBanks = [4]uint16{0, 0, 1, 1}
	verticalBanks   = [4]uint16{0, 1, 0, 1}
)

// mirrorNametable folds a 12-bit nametable offset (0x000-0xFFF) onto the
// 2 KiB vram. Horizontal mirroring pairs the tables as {A,A,B,B}, vertical
// as {A,B,A,B}.
func mirrorNametable(mode mirrorMode, offset uint16) uint16 {
	offset %= 0x1000
	table := offset / 0x400

	switch mode {
	case vertical:
		return verticalBanks[table]*0x400 + offset%0x400
	default:
		return horizontalBanks[table]*0x400 + offset%0x400
	}
}

// mirrorPalette folds a palette offset onto the 32-entry palette ram,
// redirecting the sprite backdrop mirrors 0x10/0x14/0x18/0x1C onto their
// background counterparts.
func mirrorPalette(offset uint16) uint16 {
	offset %= 32
	switch offset {
	case 0x10, 0x14, 0x18, 0x1C:
		offset -= 0x10
	}
	return offset
}
