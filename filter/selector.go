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

// Package filter defines the path-selection surface archive operations
// consume. The full mask language lives with the caller; the core only
// needs Match, plus a few stock selectors for the CLI and tests.
package filter

import (
	gopath "path"

	libpath "github.com/nabbar/darkit/path"
)

// Selector decides whether an archived entry takes part in an extract,
// list or diff operation.
type Selector interface {
	Match(p libpath.Path) bool
}

// All selects every entry.
type All struct{}

func (All) Match(libpath.Path) bool { return true }

// Subtree selects Root and everything below it.
type Subtree struct {
	Root          libpath.Path
	CaseSensitive bool
}

func (s Subtree) Match(p libpath.Path) bool {
	if p.Display() == s.Root.Display() {
		return true
	}
	return p.IsSubdirOf(s.Root, s.CaseSensitive)
}

// Glob selects entries whose displayed path matches a shell pattern
// (path.Match semantics, so '*' does not cross '/').
type Glob struct {
	Pattern string
}

func (g Glob) Match(p libpath.Path) bool {
	ok, err := gopath.Match(g.Pattern, p.Display())
	return err == nil && ok
}

// Not inverts a selector.
type Not struct {
	S Selector
}

func (n Not) Match(p libpath.Path) bool { return !n.S.Match(p) }

// AnyOf selects entries matched by at least one member; an empty list
// matches nothing.
type AnyOf []Selector

func (a AnyOf) Match(p libpath.Path) bool {
	for _, s := range a {
		if s.Match(p) {
			return true
		}
	}
	return false
}

// AllOf selects entries matched by every member; an empty list matches
// everything.
type AllOf []Selector

func (a AllOf) Match(p libpath.Path) bool {
	for _, s := range a {
		if !s.Match(p) {
			return false
		}
	}
	return true
}
