package nes

import (
	"fmt"
	"io"
	"strings"
)

// traceStep emits one nestest-format line describing the instruction about to
// execute. The operand bytes are re-read through the bus; they always sit in
// program ROM so the reads are side-effect free.
func traceStep(out io.Writer, bus *sysBus, c *cpu, pc uint16, opcode byte, inst opInfo) {
	var strlen int

	n, _ := fmt.Fprintf(out, "%04X  ", pc)
	strlen += n

	switch inst.mode.operandBytes() {
	case 0:
		n, _ := fmt.Fprintf(out, "%02X      ", opcode)
		strlen += n
	case 1:
		n, _ := fmt.Fprintf(out, "%02X %02X   ", opcode, bus.read(pc+1))
		strlen += n
	case 2:
		n, _ := fmt.Fprintf(out, "%02X %02X %02X", opcode, bus.read(pc+1), bus.read(pc+2))
		strlen += n
	}

	if inst.illegal {
		n, _ := fmt.Fprint(out, " *")
		strlen += n
	} else {
		n, _ := fmt.Fprint(out, "  ")
		strlen += n
	}

	n, _ = fmt.Fprint(out, inst.name.String(), " ")
	strlen += n

	switch inst.mode {
	case acm:
		n, _ := fmt.Fprint(out, "A")
		strlen += n
	case impl:
	default:
		var arg uint16
		switch inst.mode {
		case imd, zpg, zpgX, zpgY, indX, indY:
			arg = uint16(bus.read(pc + 1))
		case abs, absInd, absX, absY:
			arg = uint16(bus.read(pc+1)) | uint16(bus.read(pc+2))<<8
		case rel:
			arg = pc + 2 + uint16(int8(bus.read(pc+1)))
		}

		n, _ := fmt.Fprintf(out, addressingFormats[inst.mode], arg)
		strlen += n
	}

	if strlen < 48 {
		fmt.Fprint(out, strings.Repeat(" ", 48-strlen))
	}
	fmt.Fprintf(out, "A:%02X X:%02X Y:%02X P:%02X SP:%02X CYC:%d\n",
		c.a, c.x, c.y, byte(c.p), c.s, c.cycles)
}

var addressingFormats = map[addressingMode]string{
	imd:    "#$%02X",    // #aa
	abs:    "$%04X",     // aaaa
	zpg:    "$%02X",     // aa
	impl:   "",          //
	absInd: "($%04X)",   // (aaaa)
	absX:   "$%04X,X",   // aaaa,X
	absY:   "$%04X,Y",   // aaaa,Y
	zpgX:   "$%02X,X",   // aa,X
	zpgY:   "$%02X,Y",   // aa,Y
	indX:   "($%02X,X)", // (aa,X)
	indY:   "($%02X),Y", // (aa),Y
	rel:    "$%04X",     // aaaa
	acm:    "A",         // A
}
