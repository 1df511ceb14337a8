package main

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gogpu/zplot"
)

const (
	formatBinary = "bin"
	formatText   = "text"
)

// writeGrid writes g.Flat() in the requested format.
func writeGrid(w io.Writer, g zplot.Grid, format string) error {
	bw := bufio.NewWriter(w)
	flat := g.Flat()

	switch format {
	case formatBinary:
		if err := binary.Write(bw, binary.LittleEndian, flat); err != nil {
			return err
		}
	case formatText:
		var line []byte
		for i := 0; i+2 < len(flat); i += 3 {
			line = line[:0]
			line = strconv.AppendFloat(line, float64(flat[i]), 'g', -1, 32)
			line = append(line, ' ')
			line = strconv.AppendFloat(line, float64(flat[i+1]), 'g', -1, 32)
			line = append(line, ' ')
			line = strconv.AppendFloat(line, float64(flat[i+2]), 'g', -1, 32)
			line = append(line, '\n')
			if _, err := bw.Write(line); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	return bw.Flush()
}

func writeGridFile(path string, g zplot.Grid, format string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := writeGrid(f, g, format); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
