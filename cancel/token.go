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

// Package cancel implements cooperative, per-operation cancellation.
//
// Rather than a process-wide table keyed by thread id (as the reference
// implementation used), a Token is created once per archive operation and
// passed explicitly into the pipeline. The parallel compressor and the
// archive operations poll it.
package cancel

import (
	"sync"
	"sync/atomic"

	"github.com/nabbar/darkit/errkind"
)

// Mode selects whether a cancellation request takes effect immediately or
// only once any block-delayed scope has exited.
type Mode uint8

const (
	// Immediate cancellation is never deferred by a block-delayed scope.
	Immediate Mode = iota
	// Delayed cancellation is held back while a block-delayed scope is open.
	Delayed
)

// Token is a cooperative cancellation handle shared by every layer of one
// archive operation.
type Token interface {
	// Cancel requests cancellation in the given mode, attaching an
	// arbitrary user-defined flag that will be returned by Check.
	Cancel(mode Mode, userFlag uint64)

	// Requested reports whether Cancel has been called.
	Requested() bool

	// Check returns a thread-cancel Error if cancellation is active and
	// (mode is Immediate, or the token is not currently block-delayed).
	// It returns nil otherwise, so callers can write:
	//
	//	if e := tok.Check("compress"); e != nil { return e }
	Check(source string) errkind.Error

	// BlockDelayed runs fn with delayed cancellation held back for its
	// duration; immediate cancellation still fires inside fn.
	BlockDelayed(fn func())
}

type token struct {
	mu        sync.Mutex
	requested bool
	mode      Mode
	userFlag  uint64
	delayed   atomic.Bool
}

// New returns a fresh, unsignaled Token.
func New() Token {
	return &token{}
}

func (t *token) Cancel(mode Mode, userFlag uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requested = true
	t.mode = mode
	t.userFlag = userFlag
}

func (t *token) Requested() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.requested
}

func (t *token) Check(source string) errkind.Error {
	t.mu.Lock()
	requested := t.requested
	mode := t.mode
	flag := t.userFlag
	t.mu.Unlock()

	if !requested {
		return nil
	}
	if mode == Delayed && t.delayed.Load() {
		return nil
	}

	return errkind.New(errkind.KindThreadCancel, source,
		modeAndFlag(mode, flag))
}

func (t *token) BlockDelayed(fn func()) {
	t.delayed.Store(true)
	defer t.delayed.Store(false)
	fn()
}

func modeAndFlag(mode Mode, flag uint64) string {
	m := "immediate"
	if mode == Delayed {
		m = "delayed"
	}
	return m + " cancellation requested, flag=" + itoa(flag)
}

func itoa(v uint64) string {
	if v == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}
