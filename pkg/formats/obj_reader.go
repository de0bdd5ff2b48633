package formats

import (
	"bufio"
	"errors"
	"io"
	"strconv"
)

var errExpectedInteger = errors.New("expected integer")

// objReader splits OBJ text into whitespace-delimited tokens and exposes
// single-byte lookahead for face groups.
type objReader struct {
	r    *bufio.Reader
	line int
	err  error // First non-EOF read error
	buf  []byte
}

func newOBJReader(r io.Reader) *objReader {
	return &objReader{r: bufio.NewReader(r), line: 1}
}

func isOBJSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}

func isOBJDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func (r *objReader) fail(err error) {
	if err != io.EOF && r.err == nil {
		r.err = err
	}
}

// peek returns the next byte without consuming it. ok is false at end of input.
func (r *objReader) peek() (byte, bool) {
	b, err := r.r.Peek(1)
	if err != nil {
		r.fail(err)
		return 0, false
	}
	return b[0], true
}

// skip consumes one byte.
func (r *objReader) skip() {
	c, err := r.r.ReadByte()
	if err != nil {
		r.fail(err)
		return
	}
	if c == '\n' {
		r.line++
	}
}

// token skips whitespace, including newlines, and returns the next token.
// It returns "" at end of input.
func (r *objReader) token() string {
	for {
		c, ok := r.peek()
		if !ok {
			return ""
		}
		if !isOBJSpace(c) {
			break
		}
		r.skip()
	}

	r.buf = r.buf[:0]
	for {
		c, ok := r.peek()
		if !ok || isOBJSpace(c) {
			break
		}
		r.skip()
		r.buf = append(r.buf, c)
	}
	return string(r.buf)
}

// float reads the next token as a 32-bit float.
func (r *objReader) float() (float32, error) {
	tok := r.token()
	if tok == "" {
		return 0, io.ErrUnexpectedEOF
	}
	f, err := strconv.ParseFloat(tok, 32)
	if err != nil {
		return 0, err
	}
	return float32(f), nil
}

// integer reads an optionally signed decimal integer. Leading spaces and tabs
// are skipped, newlines are not; reading stops at the first non-digit.
func (r *objReader) integer() (int, error) {
	for {
		c, ok := r.peek()
		if !ok || (c != ' ' && c != '\t') {
			break
		}
		r.skip()
	}

	r.buf = r.buf[:0]
	if c, ok := r.peek(); ok && (c == '+' || c == '-') {
		r.skip()
		r.buf = append(r.buf, c)
	}
	for {
		c, ok := r.peek()
		if !ok || !isOBJDigit(c) {
			break
		}
		r.skip()
		r.buf = append(r.buf, c)
	}
	if len(r.buf) == 0 {
		return 0, errExpectedInteger
	}
	return strconv.Atoi(string(r.buf))
}
