package search

import (
	"bufio"
	"io"
	"strings"
)

// lineReader yields lines of at most MaxLineLength bytes. The remainder of a longer
// physical line comes back as the following line.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(rd io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(rd, MaxLineLength)}
}

// next returns the next line without its trailing newline, or false at end of input.
// A read error ends the input like EOF does.
func (lr *lineReader) next() (string, bool) {
	chunk, err := lr.r.ReadSlice('\n')
	if len(chunk) == 0 && err != nil {
		return "", false
	}
	return strings.TrimSuffix(string(chunk), "\n"), true
}
