package nes

import (
	"io"

	"github.com/golang/glog"
)

const (
	nmiAddr    = uint16(0xFFFA)
	resetAddr  = uint16(0xFFFC)
	irqBrkAddr = uint16(0xFFFE)

	stackHi    = uint16(0x0100)
	oamDmaAddr = uint16(0x4014)
)

// status are all the flags that represent the processor status.
type status byte

const (
	// Carry flag.
	//
	// After ADC, this is the carry result of the addition.
	// After SBC or CMP, this flag will be set if no borrow was the result, or
	// alternatively a "greater than or equal" result.
	// After a shift instruction (ASL, LSR, ROL, ROR), this contains the bit
	// that was shifted out.
	carry status = 1 << iota

	// Zero flag is set when the result of an instruction is zero.
	zero

	// InterruptDisable flag.
	//
	// When set, all interrupts except the NMI are inhibited.
	// Automatically set by the cpu when an IRQ is taken, and restored to its
	// previous state by RTI.
	interruptDisable

	// Decimal flag. On this machine it has no effect; arithmetic is always
	// binary.
	decimal

	// Break flag.
	//
	// Not a real register bit: in the byte pushed to the stack it is 1 when
	// the push came from an instruction (PHP or BRK) and 0 when it came from
	// an interrupt line. PLP and RTI ignore it when pulling.
	brk

	// Unused flag, reads back as 1.
	unused

	// Overflow flag.
	//
	// ADC and SBC set this flag when the signed result would be invalid.
	// BIT loads bit 6 of the addressed value directly into it.
	overflow

	// Negative flag holds bit 7 of the last value result.
	// BIT loads bit 7 of the addressed value directly into it.
	negative
)

// cpu interprets the 6502 instruction stream. It owns nothing but its
// register file; every memory access goes through the bus value handed to
// step by the scheduler.
type cpu struct {
	cycles uint64

	// A, along with the arithmetic logic unit, supports using the status
	// register for carrying, overflow detection, and so on.
	a byte

	// X and Y are used for several addressing modes and work well as loop
	// counters with INC/DEC and the branch instructions.
	x, y byte

	// The program counter covers 65536 direct memory locations. It moves via
	// the fetch logic, the interrupt vectors, and RTS/JMP/JSR/branches.
	pc uint16

	// The stack pointer, the low byte of an address in page 0x01.
	s byte

	// The status register. See status for the individual bits.
	p status

	trace io.Writer
}

func newCpu(trace io.Writer) *cpu {
	return &cpu{
		p:     interruptDisable | unused,
		s:     0xFD,
		pc:    resetAddr,
		trace: trace,
	}
}

// reset loads the register file with its power-on state and fetches the entry
// point from the reset vector. The reset sequence itself costs seven cycles,
// which is where the nestest trace starts counting.
func (c *cpu) reset(bus *sysBus) {
	c.a, c.x, c.y = 0, 0, 0
	c.s = 0xFD
	c.p = interruptDisable | unused
	c.cycles = 7
	c.pc = c.readAddress(bus, resetAddr)
}

func (c *cpu) setPC(pc uint16) {
	c.pc = pc
}

// step runs exactly one instruction, after servicing any pending interrupt,
// and returns the cycle budget it consumed: base cycles, plus the
// page-crossing penalty for indexed reads, plus one for a taken branch (two
// when it lands on another page), plus the interrupt entry or DMA stall if
// either happened.
func (c *cpu) step(bus *sysBus) int {
	start := c.cycles

	c.handleInterrupts(bus)

	opPC := c.pc
	opcode := bus.read(opPC)

	inst := optable[opcode]
	if inst.name == bad {
		glog.Fatalf("nes: undefined opcode 0x%02X at PC 0x%04X", opcode, opPC)
	}

	if c.trace != nil {
		traceStep(c.trace, bus, c, opPC, opcode, inst)
	}

	c.pc++
	addr, crossed := c.operand(bus, inst)

	c.cycles += uint64(inst.cycles)
	if crossed {
		c.cycles += uint64(inst.pageCycles)
	}

	c.exec(bus, inst, addr)

	return int(c.cycles - start)
}

// handleInterrupts polls both lines before fetch. NMI wins; IRQ is held off
// while InterruptDisable is set (the line stays asserted). Taking either
// deasserts the line, pushes PC and status with Break cleared, and loads the
// vector.
func (c *cpu) handleInterrupts(bus *sysBus) {
	switch {
	case bus.ints.nmiAsserted():
		bus.ints.deassertNmi()
		c.interrupt(bus, nmiAddr)
	case bus.ints.irqAsserted() && c.p&interruptDisable == 0:
		bus.ints.deassertIrq()
		c.interrupt(bus, irqBrkAddr)
	}
}

func (c *cpu) interrupt(bus *sysBus, vector uint16) {
	c.pushAddress(bus, c.pc)
	c.push(bus, byte(c.p&^brk|unused))
	c.p |= interruptDisable
	c.pc = c.readAddress(bus, vector)
	c.cycles += 7
}

func (c *cpu) readAddress(bus *sysBus, address uint16) uint16 {
	lo := bus.read(address)
	hi := bus.read(address + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// write forwards to the bus, except for the OAM DMA port which stalls the
// cpu for the whole 256-byte transfer.
func (c *cpu) write(bus *sysBus, address uint16, value byte) {
	if address == oamDmaAddr {
		c.dmaTransfer(bus, value)
		return
	}
	bus.write(address, value)
}

// dmaTransfer copies the page value<<8 from cpu-visible memory into OAM,
// starting at OAM address 0. The canonical stall is 513 cycles, 514 when the
// transfer starts on an odd cycle.
func (c *cpu) dmaTransfer(bus *sysBus, page byte) {
	if c.cycles&1 == 1 {
		c.cycles += 514
	} else {
		c.cycles += 513
	}

	bus.write(0x2003, 0)

	addr := uint16(page) << 8
	for i := 0; i < 256; i++ {
		bus.ppu.writeDMA(bus.read(addr))
		addr++
	}
}

// operand resolves the instruction's effective address and reports whether an
// indexed fetch crossed a page boundary. Immediate operands resolve to the
// operand's own location so that every instruction can load through the bus
// uniformly.
func (c *cpu) operand(bus *sysBus, inst opInfo) (address uint16, crossed bool) {
	switch inst.mode {
	case impl, acm:
		return 0, false

	case imd:
		addr := c.pc
		c.pc++
		return addr, false

	case zpg:
		addr := bus.read(c.pc)
		c.pc++
		return uint16(addr), false

	case zpgX:
		addr := bus.read(c.pc)
		c.pc++
		return uint16(addr + c.x), false // wraps within the zero page

	case zpgY:
		addr := bus.read(c.pc)
		c.pc++
		return uint16(addr + c.y), false // wraps within the zero page

	case abs:
		addr := c.readAddress(bus, c.pc)
		c.pc += 2
		return addr, false

	case absX:
		base := c.readAddress(bus, c.pc)
		c.pc += 2
		addr := base + uint16(c.x)
		return addr, base&0xFF00 != addr&0xFF00

	case absY:
		base := c.readAddress(bus, c.pc)
		c.pc += 2
		addr := base + uint16(c.y)
		return addr, base&0xFF00 != addr&0xFF00

	case rel:
		offset := bus.read(c.pc)
		c.pc++
		return c.pc + uint16(int8(offset)), false

	case indX:
		pointer := bus.read(c.pc) + c.x // wraps within the zero page
		c.pc++
		lo := bus.read(uint16(pointer))
		hi := bus.read(uint16(pointer + 1))
		return uint16(hi)<<8 | uint16(lo), false

	case indY:
		pointer := bus.read(c.pc)
		c.pc++
		lo := bus.read(uint16(pointer))
		hi := bus.read(uint16(pointer + 1))
		base := uint16(hi)<<8 | uint16(lo)
		addr := base + uint16(c.y)
		return addr, base&0xFF00 != addr&0xFF00

	case absInd:
		pointer := c.readAddress(bus, c.pc)
		c.pc += 2
		// the second pointer byte wraps within the same page
		lo := bus.read(pointer)
		hi := bus.read(pointer&0xFF00 | uint16(byte(pointer)+1))
		return uint16(hi)<<8 | uint16(lo), false
	}

	glog.Fatalf("nes: unknown addressing mode %d at PC 0x%04X", inst.mode, c.pc)
	return 0, false
}

func (c *cpu) exec(bus *sysBus, inst opInfo, addr uint16) {
	switch inst.name {
	case ADC:
		c.adc(bus, inst.mode, addr)
	case SBC:
		c.sbc(bus, inst.mode, addr)
	case AND:
		c.and(bus, inst.mode, addr)
	case ORA:
		c.ora(bus, inst.mode, addr)
	case EOR:
		c.eor(bus, inst.mode, addr)
	case ASL:
		c.asl(bus, inst.mode, addr)
	case LSR:
		c.lsr(bus, inst.mode, addr)
	case ROL:
		c.rol(bus, inst.mode, addr)
	case ROR:
		c.ror(bus, inst.mode, addr)
	case BCC:
		c.bcc(bus, inst.mode, addr)
	case BCS:
		c.bcs(bus, inst.mode, addr)
	case BEQ:
		c.beq(bus, inst.mode, addr)
	case BNE:
		c.bne(bus, inst.mode, addr)
	case BMI:
		c.bmi(bus, inst.mode, addr)
	case BPL:
		c.bpl(bus, inst.mode, addr)
	case BVC:
		c.bvc(bus, inst.mode, addr)
	case BVS:
		c.bvs(bus, inst.mode, addr)
	case BIT:
		c.bit(bus, inst.mode, addr)
	case JMP:
		c.jmp(bus, inst.mode, addr)
	case JSR:
		c.jsr(bus, inst.mode, addr)
	case RTS:
		c.rts(bus, inst.mode, addr)
	case BRK:
		c.brkOp(bus, inst.mode, addr)
	case RTI:
		c.rti(bus, inst.mode, addr)
	case CMP:
		c.cmp(bus, inst.mode, addr)
	case CPX:
		c.cpx(bus, inst.mode, addr)
	case CPY:
		c.cpy(bus, inst.mode, addr)
	case INC:
		c.inc(bus, inst.mode, addr)
	case INX:
		c.inx(bus, inst.mode, addr)
	case INY:
		c.iny(bus, inst.mode, addr)
	case DEC:
		c.dec(bus, inst.mode, addr)
	case DEX:
		c.dex(bus, inst.mode, addr)
	case DEY:
		c.dey(bus, inst.mode, addr)
	case CLC:
		c.clc(bus, inst.mode, addr)
	case SEC:
		c.sec(bus, inst.mode, addr)
	case CLI:
		c.cli(bus, inst.mode, addr)
	case SEI:
		c.sei(bus, inst.mode, addr)
	case CLV:
		c.clv(bus, inst.mode, addr)
	case CLD:
		c.cld(bus, inst.mode, addr)
	case SED:
		c.sed(bus, inst.mode, addr)
	case LDA:
		c.lda(bus, inst.mode, addr)
	case LDX:
		c.ldx(bus, inst.mode, addr)
	case LDY:
		c.ldy(bus, inst.mode, addr)
	case STA:
		c.sta(bus, inst.mode, addr)
	case STX:
		c.stx(bus, inst.mode, addr)
	case STY:
		c.sty(bus, inst.mode, addr)
	case TAX:
		c.tax(bus, inst.mode, addr)
	case TAY:
		c.tay(bus, inst.mode, addr)
	case TSX:
		c.tsx(bus, inst.mode, addr)
	case TXA:
		c.txa(bus, inst.mode, addr)
	case TXS:
		c.txs(bus, inst.mode, addr)
	case TYA:
		c.tya(bus, inst.mode, addr)
	case PHA:
		c.pha(bus, inst.mode, addr)
	case PHP:
		c.php(bus, inst.mode, addr)
	case PLA:
		c.pla(bus, inst.mode, addr)
	case PLP:
		c.plp(bus, inst.mode, addr)
	case NOP, NOPD, NOPI:
		c.nop(bus, inst.mode, addr)
	case LAX:
		c.lax(bus, inst.mode, addr)
	case SAX:
		c.sax(bus, inst.mode, addr)
	case DCP:
		c.dcp(bus, inst.mode, addr)
	case ISB:
		c.isb(bus, inst.mode, addr)
	case SLO:
		c.slo(bus, inst.mode, addr)
	case RLA:
		c.rla(bus, inst.mode, addr)
	case SRE:
		c.sre(bus, inst.mode, addr)
	case RRA:
		c.rra(bus, inst.mode, addr)
	}
}

func (c *cpu) branch(addr uint16) {
	c.cycles++
	if c.pc&0xFF00 != addr&0xFF00 {
		c.cycles++
	}
	c.pc = addr
}

func (c *cpu) push(bus *sysBus, v byte) {
	bus.write(stackHi|uint16(c.s), v)
	c.s--
}

func (c *cpu) pull(bus *sysBus) byte {
	c.s++
	return bus.read(stackHi | uint16(c.s))
}

func (c *cpu) pushAddress(bus *sysBus, value uint16) {
	c.push(bus, byte(value>>8))
	c.push(bus, byte(value&0xFF))
}

func (c *cpu) pullAddress(bus *sysBus) uint16 {
	lo := uint16(c.pull(bus))
	hi := uint16(c.pull(bus))
	return hi<<8 | lo
}

func (c *cpu) updateZero(v byte) {
	if v == 0 {
		c.p |= zero
	} else {
		c.p &^= zero
	}
}

func (c *cpu) updateNegative(v byte) {
	if v&0x80 > 0 {
		c.p |= negative
	} else {
		c.p &^= negative
	}
}

func (c *cpu) compare(a, b byte) {
	if a >= b {
		c.p |= carry
	} else {
		c.p &^= carry
	}
	if a == b {
		c.p |= zero
	} else {
		c.p &^= zero
	}
	c.updateNegative(a - b)
}

// doAdd is the ADC core; SBC feeds it the operand's complement.
func (c *cpu) doAdd(v byte) {
	a := uint16(c.a)
	b := uint16(v)
	crry := uint16(c.p & carry)

	result := a + b + crry

	if result&0x0100 > 0 {
		c.p |= carry
	} else {
		c.p &^= carry
	}

	if a&0x80 == b&0x80 && a&0x80 != result&0x80 {
		c.p |= overflow
	} else {
		c.p &^= overflow
	}

	c.a = byte(result)
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

func (c *cpu) doInc(v byte) byte {
	r := v + 1
	c.updateZero(r)
	c.updateNegative(r)
	return r
}

func (c *cpu) doDec(v byte) byte {
	r := v - 1
	c.updateZero(r)
	c.updateNegative(r)
	return r
}

func (c *cpu) doAsl(v byte) byte {
	if v&0x80 > 0 {
		c.p |= carry
	} else {
		c.p &^= carry
	}
	v <<= 1
	c.updateZero(v)
	c.updateNegative(v)
	return v
}

func (c *cpu) doLsr(v byte) byte {
	if v&1 > 0 {
		c.p |= carry
	} else {
		c.p &^= carry
	}
	v >>= 1
	c.updateZero(v)
	c.updateNegative(v)
	return v
}

func (c *cpu) doRol(v byte) byte {
	carries := v&0x80 > 0

	v = v<<1 | byte(c.p&carry)

	if carries {
		c.p |= carry
	} else {
		c.p &^= carry
	}
	c.updateZero(v)
	c.updateNegative(v)
	return v
}

func (c *cpu) doRor(v byte) byte {
	carries := v&1 > 0

	v >>= 1
	if c.p&carry > 0 {
		v |= 0x80
	}

	if carries {
		c.p |= carry
	} else {
		c.p &^= carry
	}
	c.updateZero(v)
	c.updateNegative(v)
	return v
}

// ADC - Add with Carry
// A,Z,C,N = A+M+C
//
// This instruction adds the contents of a memory location to the accumulator
// together with the carry bit. If overflow occurs the carry bit is set,
// this enables multiple byte addition to be performed.
//
// Processor Status after use:
// C	Carry Flag			Set if overflow in bit 7
// Z	Zero Flag			Set if A = 0
// V	Overflow Flag		Set if sign bit is incorrect
// N	Negative Flag		Set if bit 7 set
func (c *cpu) adc(bus *sysBus, mode addressingMode, addr uint16) {
	c.doAdd(bus.read(addr))
}

// SBC - Subtract with Carry
// A,Z,C,N = A-M-(1-C)
//
// This instruction subtracts the contents of a memory location from the
// accumulator together with the not of the carry bit. If overflow occurs the
// carry bit is clear, this enables multiple byte subtraction to be performed.
//
// Processor Status after use:
// C	Carry Flag			Clear if overflow in bit 7
// Z	Zero Flag			Set if A = 0
// V	Overflow Flag		Set if sign bit is incorrect
// N	Negative Flag		Set if bit 7 set
func (c *cpu) sbc(bus *sysBus, mode addressingMode, addr uint16) {
	c.doAdd(bus.read(addr) ^ 0xFF)
}

// AND - Logical AND
// A,Z,N = A&M
//
// A logical AND is performed, bit by bit, on the accumulator contents using
// the contents of a byte of memory.
//
// Processor Status after use:
// Z	Zero Flag			Set if A = 0
// N	Negative Flag		Set if bit 7 set
func (c *cpu) and(bus *sysBus, mode addressingMode, addr uint16) {
	c.a &= bus.read(addr)
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// ORA - Logical Inclusive OR
// A,Z,N = A|M
//
// An inclusive OR is performed, bit by bit, on the accumulator contents using
// the contents of a byte of memory.
//
// Processor Status after use:
// Z	Zero Flag			Set if A = 0
// N	Negative Flag		Set if bit 7 set
func (c *cpu) ora(bus *sysBus, mode addressingMode, addr uint16) {
	c.a |= bus.read(addr)
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// EOR - Exclusive OR
// A,Z,N = A^M
//
// An exclusive OR is performed, bit by bit, on the accumulator contents using
// the contents of a byte of memory.
//
// Processor Status after use:
// Z	Zero Flag			Set if A = 0
// N	Negative Flag		Set if bit 7 set
func (c *cpu) eor(bus *sysBus, mode addressingMode, addr uint16) {
	c.a ^= bus.read(addr)
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// ASL - Arithmetic Shift Left
// A,Z,C,N = M*2 or M,Z,C,N = M*2
//
// This operation shifts all the bits of the accumulator or memory contents
// one bit left. Bit 0 is set to 0 and bit 7 is placed in the carry flag.
//
// Processor Status after use:
// C	Carry Flag			Set to contents of old bit 7
// Z	Zero Flag			Set if result = 0
// N	Negative Flag		Set if bit 7 of the result is set
func (c *cpu) asl(bus *sysBus, mode addressingMode, addr uint16) {
	if mode == acm {
		c.a = c.doAsl(c.a)
		return
	}
	c.write(bus, addr, c.doAsl(bus.read(addr)))
}

// LSR - Logical Shift Right
// A,C,Z,N = A/2 or M,C,Z,N = M/2
//
// Each of the bits in A or M is shifted one place to the right. The bit that
// was in bit 0 is shifted into the carry flag. Bit 7 is set to zero.
//
// Processor Status after use:
// C	Carry Flag			Set to contents of old bit 0
// Z	Zero Flag			Set if result = 0
// N	Negative Flag		Set if bit 7 of the result is set
func (c *cpu) lsr(bus *sysBus, mode addressingMode, addr uint16) {
	if mode == acm {
		c.a = c.doLsr(c.a)
		return
	}
	c.write(bus, addr, c.doLsr(bus.read(addr)))
}

// ROL - Rotate Left
//
// Move each of the bits in either A or M one place to the left. Bit 0 is
// filled with the current value of the carry flag whilst the old bit 7
// becomes the new carry flag value.
//
// Processor Status after use:
// C	Carry Flag			Set to contents of old bit 7
// Z	Zero Flag			Set if result = 0
// N	Negative Flag		Set if bit 7 of the result is set
func (c *cpu) rol(bus *sysBus, mode addressingMode, addr uint16) {
	if mode == acm {
		c.a = c.doRol(c.a)
		return
	}
	c.write(bus, addr, c.doRol(bus.read(addr)))
}

// ROR - Rotate Right
//
// Move each of the bits in either A or M one place to the right. Bit 7 is
// filled with the current value of the carry flag whilst the old bit 0
// becomes the new carry flag value.
//
// Processor Status after use:
// C	Carry Flag			Set to contents of old bit 0
// Z	Zero Flag			Set if result = 0
// N	Negative Flag		Set if bit 7 of the result is set
func (c *cpu) ror(bus *sysBus, mode addressingMode, addr uint16) {
	if mode == acm {
		c.a = c.doRor(c.a)
		return
	}
	c.write(bus, addr, c.doRor(bus.read(addr)))
}

// BCC - Branch if Carry Clear
//
// If the carry flag is clear then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bcc(bus *sysBus, mode addressingMode, addr uint16) {
	if c.p&carry > 0 {
		return
	}
	c.branch(addr)
}

// BCS - Branch if Carry Set
//
// If the carry flag is set then add the relative displacement to the program
// counter to cause a branch to a new location.
func (c *cpu) bcs(bus *sysBus, mode addressingMode, addr uint16) {
	if c.p&carry == 0 {
		return
	}
	c.branch(addr)
}

// BEQ - Branch if Equal
//
// If the zero flag is set then add the relative displacement to the program
// counter to cause a branch to a new location.
func (c *cpu) beq(bus *sysBus, mode addressingMode, addr uint16) {
	if c.p&zero == 0 {
		return
	}
	c.branch(addr)
}

// BNE - Branch if Not Equal
//
// If the zero flag is clear then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bne(bus *sysBus, mode addressingMode, addr uint16) {
	if c.p&zero > 0 {
		return
	}
	c.branch(addr)
}

// BMI - Branch if Minus
//
// If the negative flag is set then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bmi(bus *sysBus, mode addressingMode, addr uint16) {
	if c.p&negative == 0 {
		return
	}
	c.branch(addr)
}

// BPL - Branch if Positive
//
// If the negative flag is clear then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bpl(bus *sysBus, mode addressingMode, addr uint16) {
	if c.p&negative > 0 {
		return
	}
	c.branch(addr)
}

// BVC - Branch if Overflow Clear
//
// If the overflow flag is clear then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bvc(bus *sysBus, mode addressingMode, addr uint16) {
	if c.p&overflow > 0 {
		return
	}
	c.branch(addr)
}

// BVS - Branch if Overflow Set
//
// If the overflow flag is set then add the relative displacement to the
// program counter to cause a branch to a new location.
func (c *cpu) bvs(bus *sysBus, mode addressingMode, addr uint16) {
	if c.p&overflow == 0 {
		return
	}
	c.branch(addr)
}

// BIT - Bit Test
// A & M, N = M7, V = M6
//
// This instruction is used to test if one or more bits are set in a target
// memory location. The mask pattern in A is ANDed with the value in memory
// to set or clear the zero flag, but the result is not kept. Bits 7 and 6 of
// the value from memory are copied into the N and V flags.
//
// Processor Status after use:
// Z	Zero Flag			Set if the result of the AND is zero
// V	Overflow Flag		Set to bit 6 of the memory value
// N	Negative Flag		Set to bit 7 of the memory value
func (c *cpu) bit(bus *sysBus, mode addressingMode, addr uint16) {
	v := bus.read(addr)

	c.updateNegative(v)
	c.updateZero(c.a & v)

	if v&0x40 > 0 {
		c.p |= overflow
	} else {
		c.p &^= overflow
	}
}

// JMP - Jump
//
// Sets the program counter to the address specified by the operand.
func (c *cpu) jmp(bus *sysBus, mode addressingMode, addr uint16) {
	c.pc = addr
}

// JSR - Jump to Subroutine
//
// The JSR instruction pushes the address (minus one) of the return point on
// to the stack and then sets the program counter to the target memory
// address.
func (c *cpu) jsr(bus *sysBus, mode addressingMode, addr uint16) {
	c.pushAddress(bus, c.pc-1)
	c.pc = addr
}

// RTS - Return from Subroutine
//
// The RTS instruction is used at the end of a subroutine to return to the
// calling routine. It pulls the program counter (minus one) from the stack.
func (c *cpu) rts(bus *sysBus, mode addressingMode, addr uint16) {
	c.pc = c.pullAddress(bus) + 1
}

// BRK - Force Interrupt
//
// The BRK instruction forces the generation of an interrupt request. The
// program counter and processor status are pushed on the stack, then the IRQ
// interrupt vector at $FFFE/F is loaded into the PC. The pushed return
// address is one past the operand byte, which is what the nestest trace is
// calibrated against.
//
// Processor Status after use:
// B	Break Command		Set to 1 in the pushed copy
// I	Interrupt Disable	Set to 1
func (c *cpu) brkOp(bus *sysBus, mode addressingMode, addr uint16) {
	c.pushAddress(bus, c.pc+1)
	c.push(bus, byte(c.p|brk|unused))
	c.p |= interruptDisable
	c.pc = c.readAddress(bus, irqBrkAddr)
}

// RTI - Return from Interrupt
//
// The RTI instruction is used at the end of an interrupt processing routine.
// It pulls the processor flags from the stack followed by the program
// counter. Break is ignored and the reserved bit reads back as one.
func (c *cpu) rti(bus *sysBus, mode addressingMode, addr uint16) {
	c.p = status(c.pull(bus))&^brk | unused
	c.pc = c.pullAddress(bus)
}

// CMP - Compare
// Z,C,N = A-M
//
// This instruction compares the contents of the accumulator with another
// memory held value and sets the zero and carry flags as appropriate.
//
// Processor Status after use:
// C	Carry Flag			Set if A >= M
// Z	Zero Flag			Set if A = M
// N	Negative Flag		Set if bit 7 of the result is set
func (c *cpu) cmp(bus *sysBus, mode addressingMode, addr uint16) {
	c.compare(c.a, bus.read(addr))
}

// CPX - Compare X Register
// Z,C,N = X-M
//
// Processor Status after use:
// C	Carry Flag			Set if X >= M
// Z	Zero Flag			Set if X = M
// N	Negative Flag		Set if bit 7 of the result is set
func (c *cpu) cpx(bus *sysBus, mode addressingMode, addr uint16) {
	c.compare(c.x, bus.read(addr))
}

// CPY - Compare Y Register
// Z,C,N = Y-M
//
// Processor Status after use:
// C	Carry Flag			Set if Y >= M
// Z	Zero Flag			Set if Y = M
// N	Negative Flag		Set if bit 7 of the result is set
func (c *cpu) cpy(bus *sysBus, mode addressingMode, addr uint16) {
	c.compare(c.y, bus.read(addr))
}

// INC - Increment Memory
// M,Z,N = M+1
//
// Adds one to the value held at a specified memory location setting the zero
// and negative flags as appropriate.
func (c *cpu) inc(bus *sysBus, mode addressingMode, addr uint16) {
	c.write(bus, addr, c.doInc(bus.read(addr)))
}

// INX - Increment X Register
// X,Z,N = X+1
func (c *cpu) inx(bus *sysBus, mode addressingMode, addr uint16) {
	c.x = c.doInc(c.x)
}

// INY - Increment Y Register
// Y,Z,N = Y+1
func (c *cpu) iny(bus *sysBus, mode addressingMode, addr uint16) {
	c.y = c.doInc(c.y)
}

// DEC - Decrement Memory
// M,Z,N = M-1
//
// Subtracts one from the value held at a specified memory location setting
// the zero and negative flags as appropriate.
func (c *cpu) dec(bus *sysBus, mode addressingMode, addr uint16) {
	c.write(bus, addr, c.doDec(bus.read(addr)))
}

// DEX - Decrement X Register
// X,Z,N = X-1
func (c *cpu) dex(bus *sysBus, mode addressingMode, addr uint16) {
	c.x = c.doDec(c.x)
}

// DEY - Decrement Y Register
// Y,Z,N = Y-1
func (c *cpu) dey(bus *sysBus, mode addressingMode, addr uint16) {
	c.y = c.doDec(c.y)
}

// CLC - Clear Carry Flag
// C = 0
func (c *cpu) clc(bus *sysBus, mode addressingMode, addr uint16) {
	c.p &^= carry
}

// SEC - Set Carry Flag
// C = 1
func (c *cpu) sec(bus *sysBus, mode addressingMode, addr uint16) {
	c.p |= carry
}

// CLI - Clear Interrupt Disable
// I = 0
//
// Clears the interrupt disable flag allowing normal interrupt requests to be
// serviced.
func (c *cpu) cli(bus *sysBus, mode addressingMode, addr uint16) {
	c.p &^= interruptDisable
}

// SEI - Set Interrupt Disable
// I = 1
func (c *cpu) sei(bus *sysBus, mode addressingMode, addr uint16) {
	c.p |= interruptDisable
}

// CLV - Clear Overflow Flag
// V = 0
//
// There is no corresponding set instruction.
func (c *cpu) clv(bus *sysBus, mode addressingMode, addr uint16) {
	c.p &^= overflow
}

// CLD - Clear Decimal Mode
// D = 0
//
// Only the flag changes; decimal arithmetic is not implemented on this
// machine.
func (c *cpu) cld(bus *sysBus, mode addressingMode, addr uint16) {
	c.p &^= decimal
}

// SED - Set Decimal Flag
// D = 1
//
// Only the flag changes; decimal arithmetic is not implemented on this
// machine.
func (c *cpu) sed(bus *sysBus, mode addressingMode, addr uint16) {
	c.p |= decimal
}

// LDA - Load Accumulator
// A,Z,N = M
//
// Loads a byte of memory into the accumulator setting the zero and negative
// flags as appropriate.
func (c *cpu) lda(bus *sysBus, mode addressingMode, addr uint16) {
	c.a = bus.read(addr)
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// LDX - Load X Register
// X,Z,N = M
func (c *cpu) ldx(bus *sysBus, mode addressingMode, addr uint16) {
	c.x = bus.read(addr)
	c.updateZero(c.x)
	c.updateNegative(c.x)
}

// LDY - Load Y Register
// Y,Z,N = M
func (c *cpu) ldy(bus *sysBus, mode addressingMode, addr uint16) {
	c.y = bus.read(addr)
	c.updateZero(c.y)
	c.updateNegative(c.y)
}

// STA - Store Accumulator
// M = A
func (c *cpu) sta(bus *sysBus, mode addressingMode, addr uint16) {
	c.write(bus, addr, c.a)
}

// STX - Store X Register
// M = X
func (c *cpu) stx(bus *sysBus, mode addressingMode, addr uint16) {
	c.write(bus, addr, c.x)
}

// STY - Store Y Register
// M = Y
func (c *cpu) sty(bus *sysBus, mode addressingMode, addr uint16) {
	c.write(bus, addr, c.y)
}

// TAX - Transfer Accumulator to X
// X = A
func (c *cpu) tax(bus *sysBus, mode addressingMode, addr uint16) {
	c.x = c.a
	c.updateZero(c.x)
	c.updateNegative(c.x)
}

// TAY - Transfer Accumulator to Y
// Y = A
func (c *cpu) tay(bus *sysBus, mode addressingMode, addr uint16) {
	c.y = c.a
	c.updateZero(c.y)
	c.updateNegative(c.y)
}

// TSX - Transfer Stack Pointer to X
// X = S
func (c *cpu) tsx(bus *sysBus, mode addressingMode, addr uint16) {
	c.x = c.s
	c.updateZero(c.x)
	c.updateNegative(c.x)
}

// TXA - Transfer X to Accumulator
// A = X
func (c *cpu) txa(bus *sysBus, mode addressingMode, addr uint16) {
	c.a = c.x
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// TXS - Transfer X to Stack Pointer
// S = X
//
// Unlike the other transfers, no flags are affected.
func (c *cpu) txs(bus *sysBus, mode addressingMode, addr uint16) {
	c.s = c.x
}

// TYA - Transfer Y to Accumulator
// A = Y
func (c *cpu) tya(bus *sysBus, mode addressingMode, addr uint16) {
	c.a = c.y
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// PHA - Push Accumulator
//
// Pushes a copy of the accumulator on to the stack.
func (c *cpu) pha(bus *sysBus, mode addressingMode, addr uint16) {
	c.push(bus, c.a)
}

// PHP - Push Processor Status
//
// Pushes a copy of the status flags on to the stack, with Break and the
// reserved bit set in the pushed copy.
func (c *cpu) php(bus *sysBus, mode addressingMode, addr uint16) {
	c.push(bus, byte(c.p|brk|unused))
}

// PLA - Pull Accumulator
//
// Pulls an 8 bit value from the stack and into the accumulator. The zero and
// negative flags are set as appropriate.
func (c *cpu) pla(bus *sysBus, mode addressingMode, addr uint16) {
	c.a = c.pull(bus)
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// PLP - Pull Processor Status
//
// Pulls an 8 bit value from the stack and into the processor flags. Break is
// ignored and the reserved bit reads back as one.
func (c *cpu) plp(bus *sysBus, mode addressingMode, addr uint16) {
	c.p = status(c.pull(bus))&^brk | unused
}

// NOP - No Operation
//
// Causes no changes to the processor other than the normal incrementing of
// the program counter. The unofficial variants with one- and two-byte
// operands have already had those bytes consumed by the addressing machinery.
func (c *cpu) nop(bus *sysBus, mode addressingMode, addr uint16) {
}

// Shortcut for LDA value then TAX. Saves a byte and two cycles and allows
// use of the X register with the (d),Y addressing mode.
func (c *cpu) lax(bus *sysBus, mode addressingMode, addr uint16) {
	c.a = bus.read(addr)
	c.x = c.a
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// Stores the bitwise AND of A and X. As with STA and STX, no flags are
// affected.
func (c *cpu) sax(bus *sysBus, mode addressingMode, addr uint16) {
	c.write(bus, addr, c.a&c.x)
}

// Equivalent to DEC value then CMP value, except supporting more addressing
// modes.
func (c *cpu) dcp(bus *sysBus, mode addressingMode, addr uint16) {
	v := c.doDec(bus.read(addr))
	c.write(bus, addr, v)
	c.compare(c.a, v)
}

// Equivalent to INC value then SBC value, except supporting more addressing
// modes.
func (c *cpu) isb(bus *sysBus, mode addressingMode, addr uint16) {
	v := c.doInc(bus.read(addr))
	c.write(bus, addr, v)
	c.doAdd(v ^ 0xFF)
}

// Equivalent to ASL value then ORA value, except supporting more addressing
// modes.
func (c *cpu) slo(bus *sysBus, mode addressingMode, addr uint16) {
	v := c.doAsl(bus.read(addr))
	c.write(bus, addr, v)

	c.a |= v
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// Equivalent to ROL value then AND value, except supporting more addressing
// modes.
func (c *cpu) rla(bus *sysBus, mode addressingMode, addr uint16) {
	v := c.doRol(bus.read(addr))
	c.write(bus, addr, v)

	c.a &= v
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// Equivalent to LSR value then EOR value, except supporting more addressing
// modes.
func (c *cpu) sre(bus *sysBus, mode addressingMode, addr uint16) {
	v := c.doLsr(bus.read(addr))
	c.write(bus, addr, v)

	c.a ^= v
	c.updateZero(c.a)
	c.updateNegative(c.a)
}

// Equivalent to ROR value then ADC value, except supporting more addressing
// modes.
func (c *cpu) rra(bus *sysBus, mode addressingMode, addr uint16) {
	v := c.doRor(bus.read(addr))
	c.write(bus, addr, v)
	c.doAdd(v)
}
