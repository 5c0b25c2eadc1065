package nes

// colors is the fixed 64-entry RGB lookup the palette indexes into, packed
// as 0xRRGGBB.
var colors = [64]uint32{
	0x808080, 0x003DA6, 0x0012B0, 0x440096,
	0xA1005E, 0xC70028, 0xBA0600, 0x8C1700,
	0x5C2F00, 0x104500, 0x054A00, 0x00472E,
	0x004166, 0x000000, 0x050505, 0x050505,
	0xC7C7C7, 0x0077FF, 0x2155FF, 0x8237FA,
	0xEB2FB5, 0xFF2950, 0xFF2200, 0xD63200,
	0xC46200, 0x358000, 0x058F00, 0x008A55,
	0x0099CC, 0x212121, 0x090909, 0x090909,
	0xFFFFFF, 0x0FD7FF, 0x69A2FF, 0xD480FF,
	0xFF45F3, 0xFF618B, 0xFF8833, 0xFF9C12,
	0xFABC20, 0x9FE30E, 0x2BF035, 0x0CF0A4,
	0x05FBFF, 0x5E5E5E, 0x0D0D0D, 0x0D0D0D,
	0xFFFFFF, 0xA6FCFF, 0xB3ECFF, 0xDAABEB,
	0xFFA8F9, 0xFFABB3, 0xFFD2B0, 0xFFEFA6,
	0xFFF79C, 0xD7E895, 0xA6EDAF, 0xA2F2DA,
	0x99FFFC, 0xDDDDDD, 0x111111, 0x111111,
}

// Renderer transforms the frame artifact into pixel grids of packed
// 0xRRGGBB values: the 240x256 game frame plus the two debug grids, the
// 480x512 four-nametable view and the 128x256 pattern-table view. The
// transform is stateless; the grids are just reused output buffers.
type Renderer struct {
	main       [][]uint32
	nametables [][]uint32
	patterns   [][]uint32
}

func newGrid(h, w int) [][]uint32 {
	grid := make([][]uint32, h)
	for i := range grid {
		grid[i] = make([]uint32, w)
	}
	return grid
}

func NewRenderer() *Renderer {
	return &Renderer{
		main:       newGrid(screenH, screenW),
		nametables: newGrid(screenH*2, screenW*2),
		patterns:   newGrid(128, 256),
	}
}

// Main is the 240x256 game frame produced by the last Render.
func (r *Renderer) Main() [][]uint32 { return r.main }

// Nametables is the 480x512 debug view of the four logical nametables.
func (r *Renderer) Nametables() [][]uint32 { return r.nametables }

// Patterns is the 128x256 debug view of the two pattern tables.
func (r *Renderer) Patterns() [][]uint32 { return r.patterns }

// Render fills all three grids from the frame artifact.
func (r *Renderer) Render(img *Image) {
	r.renderBackground(img)
	r.renderSprites(img)
	r.renderNametables(img)
	r.renderPatterns(img)
}

func (r *Renderer) renderBackground(img *Image) {
	backdrop := colors[img.Palette[0]]

	for tileY := 0; tileY < tileRows; tileY++ {
		for tileX := 0; tileX < tileCols; tileX++ {
			r.renderTile(img, tileX, tileY, backdrop)
		}
	}
}

// renderTile stamps one background tile, shifted left/up by the fine scroll
// remainder. Disabled tiles emit the backdrop color.
func (r *Renderer) renderTile(img *Image, tileX, tileY int, backdrop uint32) {
	tile := &img.Background[tileY][tileX]
	offX := tile.ScrollX % 8
	offY := tile.ScrollY % 8

	for j := 0; j < 8; j++ {
		for i := 0; i < 8; i++ {
			x := tileX*8 + i - offX
			y := tileY*8 + j - offY
			if x < 0 || x >= screenW || y < 0 || y >= screenH {
				continue
			}

			if !tile.Enabled {
				r.main[y][x] = backdrop
				continue
			}
			colorID := img.Palette[tile.PaletteID*4+tile.Pixels[j][i]]
			r.main[y][x] = colors[colorID]
		}
	}
}

// backgroundOpaque reports whether the background pixel at (x, y) is
// non-zero, which is what the behind-background attribute bit tests against.
func backgroundOpaque(img *Image, x, y int) bool {
	tileX := x / 8
	tileY := y / 8
	if tileX >= tileCols || tileY >= tileRows {
		return false
	}
	tile := &img.Background[tileY][tileX]
	return tile.Enabled && tile.Pixels[y%8][x%8]%4 > 0
}

func (r *Renderer) renderSprites(img *Image) {
	for _, sprite := range img.Sprites {
		flipV := sprite.Attr&0x80 > 0
		flipH := sprite.Attr&0x40 > 0
		behind := sprite.Attr&0x20 > 0
		paletteID := sprite.Attr & 0x03

		height := len(sprite.Pixels)
		for i := 0; i < height; i++ {
			for j := 0; j < 8; j++ {
				// flip bits reverse the sampling at draw time
				srcY := i
				if flipV {
					srcY = height - 1 - i
				}
				srcX := j
				if flipH {
					srcX = 7 - j
				}

				pixel := sprite.Pixels[srcY][srcX]
				if pixel == 0 {
					continue
				}

				x := int(sprite.X) + j
				y := int(sprite.Y) + i
				if x >= screenW || y >= screenH {
					continue
				}
				if behind && backgroundOpaque(img, x, y) {
					continue
				}

				colorID := img.Palette[0x10+paletteID*4+pixel]
				r.main[y][x] = colors[colorID]
			}
		}
	}
}

func (r *Renderer) renderNametables(img *Image) {
	for tileY := range img.Nametables {
		for tileX := range img.Nametables[tileY] {
			tile := &img.Nametables[tileY][tileX]
			for j := 0; j < 8; j++ {
				for i := 0; i < 8; i++ {
					colorID := img.Palette[tile.PaletteID*4+tile.Pixels[j][i]]
					r.nametables[tileY*8+j][tileX*8+i] = colors[colorID]
				}
			}
		}
	}
}

func (r *Renderer) renderPatterns(img *Image) {
	for t := 0; t < 2; t++ {
		for tileY := 0; tileY < 16; tileY++ {
			for tileX := 0; tileX < 16; tileX++ {
				pixels := &img.Patterns[t][tileY][tileX]
				for j := 0; j < 8; j++ {
					for i := 0; i < 8; i++ {
						colorID := img.Palette[pixels[j][i]]
						r.patterns[tileY*8+j][t*128+tileX*8+i] = colors[colorID]
					}
				}
			}
		}
	}
}
