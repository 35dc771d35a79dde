package internal

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// LineSource hands back one line at a time, terminator included.
// *bufio.Reader and *bytes.Buffer both satisfy it.
type LineSource interface {
	ReadString(delim byte) (string, error)
}

// Flusher is implemented by buffered sinks such as *bufio.Writer.
type Flusher interface {
	Flush() error
}

// NewLineSource returns r unchanged when it can already read lines,
// otherwise wraps it in a bufio.Reader.
//
// The wrapper buffers ahead, so a caller that reads several prompts from the
// same unbuffered stream must create the LineSource once and pass it to
// every prompt.
func NewLineSource(r io.Reader) LineSource {
	if src, ok := r.(LineSource); ok {
		return src
	}
	return bufio.NewReader(r)
}

// ReadLine reads one line and strips its terminator.
// eof is true only when the stream ended before a single byte was read; a
// final unterminated line is returned as a normal line.
func ReadLine(src LineSource) (line string, eof bool, err error) {
	raw, err := src.ReadString(LineDelimiter)
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", false, err
		}
		if raw == "" {
			return "", true, nil
		}
	}
	return StripTerminator(raw), false, nil
}

// StripTerminator removes a trailing "\n" or "\r\n".
func StripTerminator(s string) string {
	s = strings.TrimSuffix(s, LineFeed)
	return strings.TrimSuffix(s, CarriageReturn)
}

// WriteAndFlush writes text to w and flushes it when w is buffered, so the
// text is visible before the caller blocks on a read.
func WriteAndFlush(w io.Writer, text string) error {
	if _, err := io.WriteString(w, text); err != nil {
		return err
	}
	return Flush(w)
}

// Flush flushes w if it buffers output.
func Flush(w io.Writer) error {
	if f, ok := w.(Flusher); ok {
		return f.Flush()
	}
	return nil
}
