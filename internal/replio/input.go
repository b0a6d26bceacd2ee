// Package replio provides a minimal raw-terminal line reader for the
// interactive shell, trimmed down from a full readline implementation:
// it keeps basic line editing (backspace, history) and drops escape
// sequence navigation (arrow keys, home/end) that a plain terminal
// session has little use for.
package replio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// LineReader reads one line at a time from a terminal, switching to
// raw mode when both ends of the connection are an interactive TTY so
// it can offer history recall; it falls back to a plain buffered
// scanner otherwise (piped input, redirected files, tests).
type LineReader struct {
	out io.Writer

	raw   *rawReader
	plain *bufio.Scanner
}

// NewLineReader builds a LineReader over in/out. Close must be called
// when done to restore the terminal, if it was put into raw mode.
func NewLineReader(in *os.File, out io.Writer) *LineReader {
	if outFile, ok := out.(*os.File); ok && term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(outFile.Fd())) {
		if r, ok := newRawReader(in, out); ok {
			return &LineReader{out: out, raw: r}
		}
	}
	return &LineReader{out: out, plain: bufio.NewScanner(in)}
}

// ReadLine reads one line, printing prompt first. ok is false at EOF
// or on an interrupt (Ctrl+C in raw mode).
func (l *LineReader) ReadLine(prompt string) (line string, ok bool) {
	if l.raw != nil {
		return l.raw.readLine(prompt)
	}
	fmt.Fprint(l.out, prompt)
	if !l.plain.Scan() {
		return "", false
	}
	return l.plain.Text(), true
}

// Close restores the terminal to its original mode, if it was changed.
func (l *LineReader) Close() {
	if l.raw != nil {
		l.raw.close()
	}
}

type byteEvent struct {
	b   byte
	err error
}

type rawReader struct {
	in      *os.File
	out     io.Writer
	state   *term.State
	events  chan byteEvent
	history []string
}

func newRawReader(in *os.File, out io.Writer) (*rawReader, bool) {
	state, err := term.MakeRaw(int(in.Fd()))
	if err != nil {
		return nil, false
	}
	r := &rawReader{
		in:     in,
		out:    out,
		state:  state,
		events: make(chan byteEvent, 128),
	}
	go r.readBytes()
	return r, true
}

func (r *rawReader) close() {
	if r.state != nil {
		_ = term.Restore(int(r.in.Fd()), r.state)
	}
}

func (r *rawReader) readBytes() {
	defer close(r.events)
	buf := make([]byte, 1)
	for {
		n, err := r.in.Read(buf)
		if n > 0 {
			r.events <- byteEvent{b: buf[0]}
		}
		if err != nil {
			r.events <- byteEvent{err: err}
			return
		}
	}
}

func (r *rawReader) readLine(prompt string) (string, bool) {
	line := make([]byte, 0, 64)
	historyIndex := len(r.history)
	fmt.Fprint(r.out, prompt)

	redraw := func() {
		fmt.Fprintf(r.out, "\r%s%s\x1b[K", prompt, string(line))
	}

	for ev := range r.events {
		if ev.err != nil {
			return "", false
		}
		switch ev.b {
		case '\r', '\n':
			fmt.Fprint(r.out, "\r\n")
			entered := string(line)
			r.appendHistory(entered)
			return entered, true
		case 0x03: // Ctrl+C
			fmt.Fprint(r.out, "^C\r\n")
			return "", false
		case 0x04: // Ctrl+D
			if len(line) == 0 {
				fmt.Fprint(r.out, "\r\n")
				return "", false
			}
		case 0x7f, 0x08: // Backspace
			if len(line) > 0 {
				line = line[:len(line)-1]
				redraw()
			}
		case 0x10: // Ctrl+P: previous history entry
			if historyIndex > 0 {
				historyIndex--
				line = []byte(r.history[historyIndex])
				redraw()
			}
		case 0x0e: // Ctrl+N: next history entry
			if historyIndex < len(r.history)-1 {
				historyIndex++
				line = []byte(r.history[historyIndex])
			} else {
				historyIndex = len(r.history)
				line = line[:0]
			}
			redraw()
		default:
			if ev.b >= 0x20 && ev.b < 0x7f {
				line = append(line, ev.b)
				fmt.Fprintf(r.out, "%c", ev.b)
			}
		}
	}
	return "", false
}

func (r *rawReader) appendHistory(line string) {
	if strings.TrimSpace(line) == "" {
		return
	}
	if n := len(r.history); n > 0 && r.history[n-1] == line {
		return
	}
	r.history = append(r.history, line)
}
