// Command boxinfo ingests a simulation-cell description from its
// arguments and prints the cell in every representation.
//
// Usage:
//
//	boxinfo [-type T] v1 v2 ...
//
// Values are whitespace- or comma-separated; 9 values read as basis
// vectors or LAMMPS bounds, 6 as lattice parameters or DCD fields. The
// representation is guessed unless -type names one (basis, lattice,
// lmpdata, lmpdump, dcd, or the aliases vmd, poscar, vasp).
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mdkit/simbox/box"
)

func main() {
	typ := flag.String("type", "", "representation type of the input values (default: guess)")
	flag.Parse()

	args := strings.Join(flag.Args(), " ")

	b := box.New()
	if args != "" {
		v, err := b.ReadString(args, *typ)
		if err != nil {
			fmt.Fprintln(os.Stderr, "boxinfo:", err)
			os.Exit(1)
		}
		fmt.Printf("input (%s): %s\n", v, args)
	}
	fmt.Println(b.Report(""))
}
