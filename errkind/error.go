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

package errkind

import (
	"fmt"
	"strings"
)

// frame is one (source, message) pair pushed by a layer as an error
// propagates outward.
type frame struct {
	source  string
	message string
}

// Error is the pipeline's error value. It carries a Kind plus a stack of
// frames, each naming the component that touched the error and what it
// observed. Layers never discard the original frame; they push their own
// on top.
type Error interface {
	error

	// Kind returns the closed-set category of this error.
	Kind() Kind

	// Push returns a new Error with an additional (source, message) frame
	// appended on top of the existing stack. The Kind is preserved.
	Push(source, message string) Error

	// Is reports whether this error (or any frame in its stack) matches
	// the given Kind.
	Is(k Kind) bool

	// Frames returns the stack of "source: message" strings, outermost
	// frame first.
	Frames() []string
}

type ers struct {
	kind   Kind
	frames []frame
}

// New creates an Error of the given Kind with a single initial frame.
func New(k Kind, source, message string) Error {
	return &ers{
		kind:   k,
		frames: []frame{{source: source, message: message}},
	}
}

// Wrap creates an Error of the given Kind from a plain Go error, pushing
// one frame that names the component and, if non-nil, embeds the wrapped
// error's message.
func Wrap(k Kind, source string, err error) Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(Error); ok {
		return e.Push(source, err.Error())
	}
	return New(k, source, err.Error())
}

func (e *ers) Kind() Kind {
	return e.kind
}

func (e *ers) Push(source, message string) Error {
	nf := make([]frame, 0, len(e.frames)+1)
	nf = append(nf, frame{source: source, message: message})
	nf = append(nf, e.frames...)
	return &ers{kind: e.kind, frames: nf}
}

func (e *ers) Is(k Kind) bool {
	return e.kind == k
}

func (e *ers) Frames() []string {
	r := make([]string, 0, len(e.frames))
	for _, f := range e.frames {
		r = append(r, fmt.Sprintf("%s: %s", f.source, f.message))
	}
	return r
}

func (e *ers) Error() string {
	if len(e.frames) == 0 {
		return e.kind.String()
	}
	return fmt.Sprintf("[%s] %s", e.kind.String(), strings.Join(e.Frames(), " <- "))
}
