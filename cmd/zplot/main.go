// Command zplot samples a surface z = f(x, y) and writes the vertex buffer.
//
// Usage:
//
//	zplot sample --config profile.yaml --out grid.bin
//	zplot sample --formula "x * y / 10" --zoom 2 --format text
//	zplot batch --out-dir grids a.yaml b.yaml c.yaml
//	zplot parse "z = x / 2 * y"
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "zplot:", err)
		os.Exit(1)
	}
}
