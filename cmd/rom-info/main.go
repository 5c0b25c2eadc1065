// rom-info prints the header geometry of one or more iNES images.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/tkdsk/famigo/nes"
)

func main() {
	flag.Parse()

	if flag.NArg() == 0 {
		glog.Fatalf("usage: rom-info ROM...")
	}

	for _, path := range flag.Args() {
		if err := show(path); err != nil {
			glog.Errorf("rom-info: %s: %s", path, err)
			glog.Flush()
			os.Exit(1)
		}
	}
	glog.Flush()
}

func show(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	cart, err := nes.LoadINES(f)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", path)
	fmt.Printf("  prg rom:   %d KiB\n", cart.PRGSize()/1024)
	if cart.CHRRAM() {
		fmt.Printf("  chr ram:   %d KiB\n", cart.CHRSize()/1024)
	} else {
		fmt.Printf("  chr rom:   %d KiB\n", cart.CHRSize()/1024)
	}
	fmt.Printf("  mirroring: %s\n", cart.Mirroring())
	fmt.Printf("  mapper:    %d\n", cart.Mapper())

	return nil
}
