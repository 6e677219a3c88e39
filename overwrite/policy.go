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

// Package overwrite models the caller-decided policy applied whenever a
// write would clobber an existing slice file.
package overwrite

// Decision is the caller's answer to an overwrite prompt.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionDeny
)

// Policy decides whether an existing path may be overwritten. Ask is only
// invoked for the "ask" policy kind; Allow/Warn policies decide without
// prompting.
type Policy interface {
	Resolve(path string) (Decision, error)
}

// AllowAll always permits the overwrite.
type AllowAll struct{}

func (AllowAll) Resolve(string) (Decision, error) { return DecisionAllow, nil }

// DenyAll always refuses.
type DenyAll struct{}

func (DenyAll) Resolve(string) (Decision, error) { return DecisionDeny, nil }

// Warn permits the overwrite but reports it through warn first.
type Warn struct {
	Report func(path string)
}

func (w Warn) Resolve(path string) (Decision, error) {
	if w.Report != nil {
		w.Report(path)
	}
	return DecisionAllow, nil
}

// Ask defers to an interactive callback; the callback returns true to
// allow the overwrite.
type Ask struct {
	Confirm func(path string) (bool, error)
}

func (a Ask) Resolve(path string) (Decision, error) {
	if a.Confirm == nil {
		return DecisionDeny, nil
	}
	ok, err := a.Confirm(path)
	if err != nil {
		return DecisionDeny, err
	}
	if ok {
		return DecisionAllow, nil
	}
	return DecisionDeny, nil
}
