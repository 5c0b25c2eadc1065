package nes

import "github.com/golang/glog"

// ╔═════════════════╤═══════╤════════════════════════════╤════════════════╗
// ║ Address Range   │ Size  │ Purpose                    │ Kind           ║
// ╠═════════════════╪═══════╪════════════════════════════╪════════════════╣
// ║ 0x0000 - 0x0FFF │ 4096  │ Pattern Table #0           │                ║
// ║╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌┼╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌╌┤ Pattern Tables ║
// ║ 0x1000 - 0x1FFF │ 4096  │ Pattern Table #1           │                ║
// ╠═════════════════╪═══════╪════════════════════════════╪════════════════╣
// ║ 0x2000 - 0x2FFF │ 4096  │ Nametables + attributes    │ Folded to 2 KiB║
// ╠═════════════════╪═══════╪════════════════════════════╪════════════════╣
// ║ 0x3000 - 0x3EFF │ 3840  │ Mirror of 0x2000-0x2EFF    │ Mirror         ║
// ╠═════════════════╪═══════╪════════════════════════════╪════════════════╣
// ║ 0x3F00 - 0x3FFF │ 256   │ Palette (mod 32, sprite    │ Palette        ║
// ║                 │       │ backdrop mirrors folded)   │                ║
// ╠═════════════════╪═══════╪════════════════════════════╪════════════════╣
// ║ 0x4000 - 0xFFFF │ 49152 │ Mirrors of 0x0000 - 0x3FFF │ Mirrors        ║
// ╚═════════════════╧═══════╧════════════════════════════╧════════════════╝

const (
	dotsPerLine   = 341
	linesPerFrame = 262
	dotsPerCycle  = 3

	vblankLine = 241
)

// VPHB SINN
// |||| ||++- Base nametable address
// |||| |+--- VRAM address increment per PPUDATA access (0: +1, 1: +32)
// |||| +---- Sprite pattern table for 8x8 sprites
// |||+------ Background pattern table
// ||+------- Sprite size (0: 8x8; 1: 8x16)
// |+-------- PPU master/slave select, unused here
// +--------- Generate an NMI at the start of vertical blanking
type ppuCtrl byte

const (
	nametableBase         ppuCtrl = 0x03
	addressIncrement      ppuCtrl = 0x04
	spriteTableSelect     ppuCtrl = 0x08
	backgroundTableSelect ppuCtrl = 0x10
	spriteSize8x16        ppuCtrl = 0x20
	generateNmi           ppuCtrl = 0x80
)

// BGRs bMmG
// |||| |||+- Greyscale
// |||| ||+-- Show background in the leftmost 8 pixels
// |||| |+--- Show sprites in the leftmost 8 pixels
// |||| +---- Show background
// |||+------ Show sprites
// ||+------- Emphasize red
// |+-------- Emphasize green
// +--------- Emphasize blue
type ppuMask byte

const (
	greyscale ppuMask = 1 << iota
	showLeftBackground
	showLeftSprites
	showBackground
	showSprites
	emphasizeRed
	emphasizeGreen
	emphasizeBlue
)

type ppuStatus byte

const (
	spriteOverflow ppuStatus = 0x20
	sprite0Hit     ppuStatus = 0x40
	verticalBlank  ppuStatus = 0x80
)

// ppu owns vram, oam and palette ram, and advances by whole scanlines: the
// scheduler feeds it the cycle count of the instruction that just ran and it
// converts to dots. Rendering is coarse — a row of background tiles is
// finalised every eight scanlines, sprites at the end of the frame — but the
// externally observable timing (VBlank, NMI, sprite-zero hit) tracks scanline
// boundaries.
type ppu struct {
	cart *Cartridge

	ctrl   ppuCtrl
	mask   ppuMask
	status ppuStatus

	oamAddr byte
	oam     [256]byte

	vram    *ram
	palette [32]byte

	addr        uint16
	scrollX     byte
	scrollY     byte
	writeToggle bool
	readBuffer  byte

	dot  int
	line int
}

func newPpu(cart *Cartridge) *ppu {
	return &ppu{
		cart: cart,
		vram: newRam(vramSize),
	}
}

// step advances the dot clock by three dots per CPU cycle, crossing as many
// scanline boundaries as the budget covers. Returns true when the frame
// wrapped, meaning img holds a complete frame artifact.
func (p *ppu) step(cpuCycles int, img *Image, ints *interrupts) bool {
	p.dot += cpuCycles * dotsPerCycle

	frame := false
	for p.dot >= dotsPerLine {
		p.dot -= dotsPerLine
		p.line++

		if p.line <= 240 && p.checkSpriteZero(p.line) {
			p.status |= sprite0Hit // sticky until end of frame or status read
		}

		switch {
		case p.line >= 1 && p.line <= 240 && p.line%8 == 0:
			p.buildBackgroundRow(img, p.line/8-1)

		case p.line == vblankLine:
			p.status |= verticalBlank
			if p.ctrl&generateNmi > 0 {
				ints.assertNmi()
			}

		case p.line == linesPerFrame:
			p.status &^= verticalBlank | sprite0Hit
			ints.deassertNmi()

			img.Palette = p.paletteSnapshot()
			p.buildSprites(img)
			p.buildNametables(img)
			p.buildPatterns(img)
			img.ScrollX = int(p.scrollX) + int(p.ctrl&nametableBase&1)*screenW
			img.ScrollY = int(p.scrollY) + int(p.ctrl&nametableBase>>1)*screenH

			p.line = 0
			frame = true
		}
	}

	return frame
}

// checkSpriteZero reports whether sprite zero has an opaque pixel on this
// scanline, at or past its X, with sprite rendering on and the pixel not
// clipped by the leftmost-8 mask.
func (p *ppu) checkSpriteZero(line int) bool {
	if p.mask&showSprites == 0 || p.status&sprite0Hit > 0 {
		return false
	}

	row := line - int(p.oam[0])
	if row < 0 || row >= p.spriteHeight() {
		return false
	}

	x := int(p.oam[3])
	pixels := p.spriteRow(p.oam[1], row)
	for i := 0; i < 8; i++ {
		sx := x + i
		if sx >= screenW {
			break
		}
		if sx < 8 && p.mask&showLeftSprites == 0 {
			continue
		}
		if pixels[i] != 0 {
			return true
		}
	}
	return false
}

// buildBackgroundRow finalises one 32-column row of the frame artifact,
// applying the coarse scroll (the fine scroll-mod-8 shift is the renderer's
// job) and wrapping through the four logical nametables.
func (p *ppu) buildBackgroundRow(img *Image, row int) {
	base := int(p.ctrl & nametableBase)
	sx := int(p.scrollX) + (base&1)*screenW
	sy := int(p.scrollY) + (base>>1)*screenH

	enabled := p.mask&showBackground > 0

	for col := 0; col < tileCols; col++ {
		tx := (sx/8 + col) % (tileCols * 2)
		ty := (sy/8 + row) % (tileRows * 2)

		tile := p.fetchTile(tx, ty)
		tile.ScrollX = sx
		tile.ScrollY = sy
		tile.Enabled = enabled
		img.Background[row][col] = tile
	}
}

// fetchTile decodes the tile at raw coordinates (tx, ty) of the 64x60 logical
// nametable plane: tile id from the nametable, palette group from the 2x2
// attribute quadrant, pixels from the background pattern table.
func (p *ppu) fetchTile(tx, ty int) Tile {
	table := uint16((ty/tileRows)*2+tx/tileCols) * 0x400
	inX := tx % tileCols
	inY := ty % tileRows

	mode := p.cart.mirrorMode
	id := p.vram.read(mirrorNametable(mode, table+uint16(inY*tileCols+inX)))
	attr := p.vram.read(mirrorNametable(mode, table+0x3C0+uint16((inY/4)*8+inX/4)))

	// the 2x2 block picks one of the four 2-bit groups in the attribute byte
	quadrant := (inY%4/2)<<1 | inX%4/2
	paletteID := attr >> (uint(quadrant) * 2) & 0x03

	tile := Tile{
		TileID:    id,
		PaletteID: paletteID,
	}
	p.fillTile(&tile.Pixels, p.backgroundTable(), uint16(id))
	return tile
}

// fillTile assembles the 8x8 pixel matrix from the two bit-planes, spaced 8
// bytes apart, of the given pattern table entry.
func (p *ppu) fillTile(dst *[8][8]byte, table, tile uint16) {
	for row := 0; row < 8; row++ {
		dst[row] = p.patternRow(table, tile, row)
	}
}

func (p *ppu) patternRow(table, tile uint16, row int) [8]byte {
	lo := p.busRead(table + tile*16 + uint16(row))
	hi := p.busRead(table + tile*16 + uint16(row) + 8)

	var out [8]byte
	for i := 0; i < 8; i++ {
		shift := uint(7 - i)
		out[i] = lo>>shift&1 | hi>>shift&1<<1
	}
	return out
}

// spriteRow decodes one line of a sprite. In 8x16 mode bit 0 of the id
// selects the pattern table and is cleared for indexing; rows 8-15 come from
// the next tile.
func (p *ppu) spriteRow(id byte, row int) [8]byte {
	if p.ctrl&spriteSize8x16 > 0 {
		table := uint16(id&1) * 0x1000
		tile := uint16(id &^ 1)
		if row >= 8 {
			tile++
			row -= 8
		}
		return p.patternRow(table, tile, row)
	}
	return p.patternRow(p.spriteTable(), uint16(id), row)
}

// buildSprites scans OAM into the ordered sprite list, skipping all-zero
// entries. Flip bits stay in the attribute byte; the renderer applies them.
func (p *ppu) buildSprites(img *Image) {
	img.Sprites = img.Sprites[:0]

	height := p.spriteHeight()
	for i := 0; i < 64; i++ {
		y := p.oam[i*4]
		id := p.oam[i*4+1]
		attr := p.oam[i*4+2]
		x := p.oam[i*4+3]

		if y == 0 && id == 0 && attr == 0 && x == 0 {
			continue
		}

		sprite := Sprite{
			X:      x,
			Y:      y,
			Attr:   attr,
			Pixels: make([][8]byte, height),
		}
		for row := 0; row < height; row++ {
			sprite.Pixels[row] = p.spriteRow(id, row)
		}
		img.Sprites = append(img.Sprites, sprite)
	}
}

// buildNametables dumps all four logical nametables, unscrolled, for the
// debug backdrop view.
func (p *ppu) buildNametables(img *Image) {
	for ty := 0; ty < tileRows*2; ty++ {
		for tx := 0; tx < tileCols*2; tx++ {
			tile := p.fetchTile(tx, ty)
			tile.Enabled = true
			img.Nametables[ty][tx] = tile
		}
	}
}

// buildPatterns dumps both pattern tables as decoded tile matrices for the
// debug pattern view.
func (p *ppu) buildPatterns(img *Image) {
	for t := 0; t < 2; t++ {
		for ty := 0; ty < 16; ty++ {
			for tx := 0; tx < 16; tx++ {
				p.fillTile(&img.Patterns[t][ty][tx], uint16(t)*0x1000, uint16(ty*16+tx))
			}
		}
	}
}

// paletteSnapshot copies palette ram with the sprite backdrop mirrors folded
// onto their background counterparts.
func (p *ppu) paletteSnapshot() [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = p.palette[mirrorPalette(uint16(i))]
	}
	return out
}

// readPort serves CPU reads of the eight memory-mapped ports (already folded
// mod 8 by the bus).
func (p *ppu) readPort(reg uint16) byte {
	switch reg {
	case 2: // PPUSTATUS
		v := byte(p.status)
		p.status &^= verticalBlank | sprite0Hit
		p.writeToggle = false
		return v

	case 4: // OAMDATA
		return p.oam[p.oamAddr]

	case 7: // PPUDATA
		addr := p.addr % 0x4000
		var v byte
		if addr >= 0x3F00 {
			// palette reads are direct; the buffer picks up the nametable
			// byte underneath the mirror
			v = p.busRead(addr)
			p.readBuffer = p.busRead(addr - 0x1000)
		} else {
			v = p.readBuffer
			p.readBuffer = p.busRead(addr)
		}
		p.incrementAddr()
		return v
	}

	glog.V(1).Infof("ppu: read from write-only port %d", reg)
	return 0
}

// writePort serves CPU writes of the eight memory-mapped ports.
func (p *ppu) writePort(reg uint16, value byte) {
	switch reg {
	case 0: // PPUCTRL
		p.ctrl = ppuCtrl(value)

	case 1: // PPUMASK
		p.mask = ppuMask(value)

	case 2: // PPUSTATUS is read-only
		glog.V(1).Infof("ppu: write to status port: 0x%02X", value)

	case 3: // OAMADDR
		p.oamAddr = value

	case 4: // OAMDATA
		p.oam[p.oamAddr] = value
		p.oamAddr++

	case 5: // PPUSCROLL, X then Y through the shared toggle
		if !p.writeToggle {
			p.scrollX = value
		} else {
			p.scrollY = value
		}
		p.writeToggle = !p.writeToggle

	case 6: // PPUADDR, high then low through the shared toggle
		if !p.writeToggle {
			p.addr = p.addr&0x00FF | uint16(value)<<8
		} else {
			p.addr = p.addr&0xFF00 | uint16(value)
		}
		p.writeToggle = !p.writeToggle

	case 7: // PPUDATA
		p.busWrite(p.addr%0x4000, value)
		p.incrementAddr()
	}
}

// writeDMA is the OAM sink for the 0x4014 transfer.
func (p *ppu) writeDMA(value byte) {
	p.oam[p.oamAddr] = value
	p.oamAddr++
}

func (p *ppu) incrementAddr() {
	if p.ctrl&addressIncrement > 0 {
		p.addr += 32
	} else {
		p.addr++
	}
}

// busRead decodes an address on the PPU's own bus: pattern memory, folded
// nametables, or palette ram.
func (p *ppu) busRead(address uint16) byte {
	address %= 0x4000
	switch {
	case address < 0x2000:
		return p.cart.charRead(address)
	case address < 0x3F00:
		return p.vram.read(mirrorNametable(p.cart.mirrorMode, address-0x2000))
	default:
		return p.palette[mirrorPalette(address-0x3F00)]
	}
}

func (p *ppu) busWrite(address uint16, value byte) {
	address %= 0x4000
	switch {
	case address < 0x2000:
		p.cart.charWrite(address, value)
	case address < 0x3F00:
		p.vram.write(mirrorNametable(p.cart.mirrorMode, address-0x2000), value)
	default:
		p.palette[mirrorPalette(address-0x3F00)] = value
	}
}

func (p *ppu) backgroundTable() uint16 {
	if p.ctrl&backgroundTableSelect > 0 {
		return 0x1000
	}
	return 0x0000
}

func (p *ppu) spriteTable() uint16 {
	if p.ctrl&spriteTableSelect > 0 {
		return 0x1000
	}
	return 0x0000
}

func (p *ppu) spriteHeight() int {
	if p.ctrl&spriteSize8x16 > 0 {
		return 16
	}
	return 8
}
