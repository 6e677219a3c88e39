/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package runtime

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/nabbar/darkit/errkind"
)

const source = "runtime"

// UserInteraction is the narrow surface the archive pipeline needs to
// talk to an operator: announce progress, pause for a missing slice,
// and collect a passphrase either in the clear or hidden from the
// terminal.
type UserInteraction interface {
	Message(format string, args ...interface{})
	Pause(prompt string) bool
	GetString(prompt string) (string, errkind.Error)
	GetSecureString(prompt string) (string, errkind.Error)

	// PauseForSlice is the slice layer's narrower hook: it announces
	// that slice num is missing at path and reports whether the caller
	// should retry (true) or abort (false).
	PauseForSlice(num uint64, path string) bool
}

// Blind is the non-interactive UserInteraction: Message is discarded,
// Pause always answers "yes", and both Get* calls fail
// since there is no operator to prompt.
type Blind struct{}

func (Blind) Message(string, ...interface{}) {}

func (Blind) Pause(string) bool { return true }

func (Blind) PauseForSlice(uint64, string) bool { return true }

func (Blind) GetString(string) (string, errkind.Error) {
	return "", errkind.New(errkind.KindUserAbort, source, "no interactive user to prompt")
}

func (Blind) GetSecureString(string) (string, errkind.Error) {
	return "", errkind.New(errkind.KindUserAbort, source, "no interactive user to prompt")
}

var _ UserInteraction = Blind{}

// Interactive reads from in and writes prompts/messages to out, using
// golang.org/x/term to read a passphrase without echoing it back —
// the same no-echo pattern a terminal password prompt needs and stdlib
// alone cannot provide portably.
type Interactive struct {
	in   *bufio.Reader
	out  io.Writer
	fd   int
	isTTY bool
}

// NewInteractive builds an Interactive UserInteraction reading from in
// (typically os.Stdin) and writing to out (typically os.Stdout). fd is
// the file descriptor backing in, used for the no-echo passphrase read;
// pass -1 if in is not a real terminal, which falls back to a plain
// (echoed) read.
func NewInteractive(in io.Reader, out io.Writer, fd int) *Interactive {
	return &Interactive{
		in:    bufio.NewReader(in),
		out:   out,
		fd:    fd,
		isTTY: fd >= 0 && term.IsTerminal(fd),
	}
}

func (i *Interactive) Message(format string, args ...interface{}) {
	fmt.Fprintf(i.out, format+"\n", args...)
}

func (i *Interactive) Pause(prompt string) bool {
	fmt.Fprintf(i.out, "%s [Y/n] ", prompt)
	line, _ := i.in.ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "" || line == "y" || line == "yes"
}

func (i *Interactive) PauseForSlice(num uint64, path string) bool {
	return i.Pause(fmt.Sprintf("slice %d missing at %s; insert and retry?", num, path))
}

func (i *Interactive) GetString(prompt string) (string, errkind.Error) {
	fmt.Fprintf(i.out, "%s ", prompt)
	line, err := i.in.ReadString('\n')
	if err != nil && line == "" {
		return "", errkind.Wrap(errkind.KindHardware, source, err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (i *Interactive) GetSecureString(prompt string) (string, errkind.Error) {
	fmt.Fprintf(i.out, "%s ", prompt)
	if !i.isTTY {
		return i.GetString("")
	}
	raw, err := term.ReadPassword(i.fd)
	fmt.Fprintln(i.out)
	if err != nil {
		return "", errkind.Wrap(errkind.KindHardware, source, err)
	}
	return string(raw), nil
}

var _ UserInteraction = (*Interactive)(nil)
