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

package cancel_test

import (
	"testing"

	"github.com/nabbar/darkit/cancel"
	"github.com/nabbar/darkit/errkind"
)

func TestCheckBeforeCancelIsNil(t *testing.T) {
	tok := cancel.New()
	if e := tok.Check("test"); e != nil {
		t.Fatalf("fresh token must not report cancellation, got %v", e)
	}
	if tok.Requested() {
		t.Fatal("fresh token reports Requested")
	}
}

func TestImmediateCancel(t *testing.T) {
	tok := cancel.New()
	tok.Cancel(cancel.Immediate, 42)

	if !tok.Requested() {
		t.Fatal("Requested must be true after Cancel")
	}
	e := tok.Check("test")
	if e == nil || !e.Is(errkind.KindThreadCancel) {
		t.Fatalf("expected thread-cancel, got %v", e)
	}
}

func TestDelayedCancelHeldByBlockScope(t *testing.T) {
	tok := cancel.New()

	tok.BlockDelayed(func() {
		tok.Cancel(cancel.Delayed, 7)
		if e := tok.Check("test"); e != nil {
			t.Fatalf("delayed cancel must be held inside a block scope, got %v", e)
		}
	})

	if e := tok.Check("test"); e == nil || !e.Is(errkind.KindThreadCancel) {
		t.Fatalf("delayed cancel must fire once the scope exits, got %v", e)
	}
}

func TestImmediateCancelIgnoresBlockScope(t *testing.T) {
	tok := cancel.New()

	tok.BlockDelayed(func() {
		tok.Cancel(cancel.Immediate, 0)
		if e := tok.Check("test"); e == nil {
			t.Fatal("immediate cancel must not be deferred by a block scope")
		}
	})
}
