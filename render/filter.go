package render

import (
	"bytes"
)

// SplitLines splits buf after every '\n'. Each line keeps its terminator, so
// joining the result yields buf again. A trailing line without terminator is
// kept as is.
func SplitLines(buf []byte) [][]byte {
	if len(buf) == 0 {
		return nil
	}
	lines := bytes.SplitAfter(buf, []byte("\n"))
	if len(lines[len(lines)-1]) == 0 {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// FilterLines drops every line containing marker. The test is a plain
// substring match on the raw line; remaining lines keep their order.
func FilterLines(lines [][]byte, marker string) [][]byte {
	m := []byte(marker)
	ret := make([][]byte, 0, len(lines))
	for _, ln := range lines {
		if !bytes.Contains(ln, m) {
			ret = append(ret, ln)
		}
	}
	return ret
}

// StripMarker is FilterLines over a whole document.
func StripMarker(buf []byte, marker string) []byte {
	return bytes.Join(FilterLines(SplitLines(buf), marker), nil)
}
