package nes

import "github.com/golang/glog"

// The audio unit here is the frame sequencer only: it keeps the 240 Hz
// cadence and the frame IRQ observable to software. Channel registers are
// accepted and stored but drive no waveform synthesis.

const cycle240Hz = 7457

const apuRegisterSize = 0x18

type apu struct {
	cycle   uint64
	seqStep uint32

	// mode 0 is the 4-step sequence, mode 1 the 5-step one
	sequencerMode byte
	irqEnabled    bool
	irqPending    bool

	register *ram

	// cadence counters for the stubbed channel units
	envelopeTicks uint64
	lengthTicks   uint64
}

func newApu() *apu {
	return &apu{
		register: newRam(apuRegisterSize),
	}
}

// readPort serves the 0x4015 status read, which acknowledges the frame IRQ.
func (a *apu) readPort(ints *interrupts) byte {
	status := a.register.read(0x15)
	if a.irqPending {
		status |= 0x40
	}

	a.irqPending = false
	ints.deassertIrq()

	return status
}

// writePort accepts the 0x4000-0x4017 register file. Only 0x4017 has
// behavior here: bit 7 selects the sequencer mode, bit 6 inhibits the frame
// IRQ.
func (a *apu) writePort(address uint16, value byte) {
	if address < 0x4000 || address >= 0x4000+apuRegisterSize {
		glog.Fatalf("nes: invalid apu write: 0x%04X", address)
	}
	a.register.write(address-0x4000, value)

	if address == 0x4017 {
		a.sequencerMode = value >> 7
		a.irqEnabled = value&0x40 == 0
		if !a.irqEnabled {
			a.irqPending = false
		}
	}
}

// run advances the free-running cycle counter and fires one sequencer step
// per 7457 CPU cycles.
func (a *apu) run(cycles int, ints *interrupts) {
	a.cycle += uint64(cycles)
	for a.cycle >= cycle240Hz {
		a.cycle -= cycle240Hz
		if a.sequencerMode == 1 {
			a.stepMode1()
		} else {
			a.stepMode0(ints)
		}
	}
}

// stepMode0 runs the 4-step sequence: envelope on every step, sweep and
// length on the odd ones, frame IRQ at the wrap.
func (a *apu) stepMode0(ints *interrupts) {
	a.clockEnvelope()
	if a.seqStep%2 > 0 {
		a.clockSweepAndLength()
	}
	a.seqStep++

	if a.seqStep == 4 {
		if a.irqEnabled {
			ints.assertIrq()
			a.irqPending = true
		}
		a.seqStep = 0
	}
}

// stepMode1 runs the 5-step sequence: sweep and length on the even steps,
// envelope on every step except the wrap, never an IRQ.
func (a *apu) stepMode1() {
	if a.seqStep%2 == 0 {
		a.clockSweepAndLength()
	}
	a.seqStep++
	if a.seqStep == 5 {
		a.seqStep = 0
	} else {
		a.clockEnvelope()
	}
}

func (a *apu) clockEnvelope() {
	a.envelopeTicks++
}

func (a *apu) clockSweepAndLength() {
	a.lengthTicks++
}
