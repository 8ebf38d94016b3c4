package terminal

import (
	"bufio"
	"io"
	"strings"
)

// Reader reads user input one line at a time. It keeps its buffer between
// calls so piped input is not lost.
type Reader struct {
	r *bufio.Reader
}

// NewReader creates a Reader over in
func NewReader(in io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(in)}
}

// ReadLine reads a line of input from the user, without the line ending.
// At end of input it returns whatever was read along with io.EOF.
func (r *Reader) ReadLine() (string, error) {
	input, err := r.r.ReadString('\n')
	return strings.TrimRight(input, "\r\n"), err
}
