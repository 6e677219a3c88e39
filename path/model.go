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

package path

import (
	"strings"
)

// Path is a normalized, immutable sequence of path components.
type Path struct {
	components []string
	absolute   bool
	undisclosed bool
}

// New parses a slash-separated string into a Path. A leading '/' marks it
// absolute. Normalization removes "." components and resolves ".." against
// preceding components where legal.
func New(s string) Path {
	p := Path{absolute: strings.HasPrefix(s, "/")}
	p.components = splitNormalized(s)
	return p
}

// NewUndisclosed builds a Path whose given string is kept as a single,
// un-normalized component until ExplodeUndisclosed is called.
func NewUndisclosed(s string) Path {
	return Path{
		components:  []string{s},
		absolute:    strings.HasPrefix(s, "/"),
		undisclosed: true,
	}
}

func splitNormalized(s string) []string {
	raw := strings.Split(s, "/")
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		if c == "" || c == "." {
			continue
		}
		if c == ".." {
			if n := len(out); n > 0 && out[n-1] != ".." {
				out = out[:n-1]
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

// IsAbsolute reports whether the path is rooted.
func (p Path) IsAbsolute() bool {
	return p.absolute
}

// IsUndisclosed reports whether the path is still in undisclosed mode.
func (p Path) IsUndisclosed() bool {
	return p.undisclosed
}

// ExplodeUndisclosed normalizes an undisclosed path's single component,
// returning an ordinary, normalized Path.
func (p Path) ExplodeUndisclosed() Path {
	if !p.undisclosed {
		return p
	}
	if len(p.components) == 0 {
		return New("")
	}
	return New(p.components[0])
}

// Append returns a new Path with name appended as a child component.
func (p Path) Append(name string) Path {
	if p.undisclosed {
		p = p.ExplodeUndisclosed()
	}
	child := append(append([]string{}, p.components...), splitNormalized(name)...)
	return Path{components: child, absolute: p.absolute}
}

// Basename returns the last component, or "" for an empty path.
func (p Path) Basename() string {
	if len(p.components) == 0 {
		return ""
	}
	return p.components[len(p.components)-1]
}

// Pop removes and returns the last component along with the shortened Path.
func (p Path) Pop() (name string, rest Path) {
	if len(p.components) == 0 {
		return "", p
	}
	name = p.components[len(p.components)-1]
	rest = Path{components: append([]string{}, p.components[:len(p.components)-1]...), absolute: p.absolute}
	return
}

// PopFront removes and returns the first component along with the
// shortened Path.
func (p Path) PopFront() (name string, rest Path) {
	if len(p.components) == 0 {
		return "", p
	}
	name = p.components[0]
	rest = Path{components: append([]string{}, p.components[1:]...), absolute: p.absolute}
	return
}

// Reduce re-applies "." / ".." collapsing; a no-op once a Path has been
// constructed through New, kept for undisclosed paths after exploding.
func (p Path) Reduce() Path {
	return Path{components: splitNormalized(strings.Join(p.components, "/")), absolute: p.absolute}
}

// Display renders the canonical slash-separated string. A relative empty
// path renders as ".".
func (p Path) Display() string {
	if p.undisclosed {
		if len(p.components) == 0 {
			return ""
		}
		return p.components[0]
	}
	if len(p.components) == 0 {
		if p.absolute {
			return "/"
		}
		return "."
	}
	j := strings.Join(p.components, "/")
	if p.absolute {
		return "/" + j
	}
	return j
}

// IsSubdirOf reports whether p is other or a descendant of other.
func (p Path) IsSubdirOf(other Path, caseSensitive bool) bool {
	if len(other.components) > len(p.components) {
		return false
	}
	for i, c := range other.components {
		a, b := p.components[i], c
		if !caseSensitive {
			a, b = strings.ToLower(a), strings.ToLower(b)
		}
		if a != b {
			return false
		}
	}
	return true
}
