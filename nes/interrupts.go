package nes

// interrupts models the two level-sensitive lines shared between the PPU, the
// APU and the CPU. The CPU polls both at the start of every step and
// acknowledges by deasserting before vector dispatch.
type interrupts struct {
	irq bool
	nmi bool
}

func (i *interrupts) assertIrq()   { i.irq = true }
func (i *interrupts) deassertIrq() { i.irq = false }
func (i *interrupts) irqAsserted() bool {
	return i.irq
}

func (i *interrupts) assertNmi()   { i.nmi = true }
func (i *interrupts) deassertNmi() { i.nmi = false }
func (i *interrupts) nmiAsserted() bool {
	return i.nmi
}
