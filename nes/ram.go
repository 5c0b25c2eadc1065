package nes

import "github.com/golang/glog"

const (
	wramSize = 0x0800
	vramSize = 0x0800
)

type ram struct {
	size int
	data []byte
}

func newRam(size int) *ram {
	return &ram{
		size: size,
		data: make([]byte, size),
	}
}

func (r *ram) read(address uint16) byte {
	if int(address) >= r.size {
		glog.Fatalf("ram: read out of range: 0x%04X (size 0x%04X)", address, r.size)
	}
	return r.data[address]
}

func (r *ram) write(address uint16, value byte) {
	if int(address) >= r.size {
		glog.Fatalf("ram: write out of range: 0x%04X (size 0x%04X)", address, r.size)
	}
	r.data[address] = value
}
