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

package archive

import (
	"sort"

	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/runtime"
)

// entriesByPath loads an archive's entry list sorted by displayed path.
func entriesByPath(rt *runtime.Runtime, opts Options) ([]Entry, errkind.Error) {
	entries, e := List(rt, opts)
	if e != nil {
		return nil, e
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Path.Display() < entries[j].Path.Display()
	})
	return entries, nil
}

// modified reports whether two same-path entries differ in a way worth
// reporting: kind, size, symlink target, or modification time.
func modified(a, b Entry) bool {
	if a.Kind != b.Kind {
		return true
	}
	if a.Kind == KindFile && a.Size != b.Size {
		return true
	}
	if a.Kind == KindSymlink && a.Linkname != b.Linkname {
		return true
	}
	return !a.Mtime.Equal(b.Mtime)
}

// Diff compares two archives entry by entry with a two-pointer merge over
// their path-sorted entry lists.
func Diff(rt *runtime.Runtime, a, b Options) ([]Change, errkind.Error) {
	ae, e := entriesByPath(rt, a)
	if e != nil {
		return nil, e.Push(source, "diff: first archive")
	}
	be, e := entriesByPath(rt, b)
	if e != nil {
		return nil, e.Push(source, "diff: second archive")
	}

	var out []Change
	i, j := 0, 0
	for i < len(ae) && j < len(be) {
		ap, bp := ae[i].Path.Display(), be[j].Path.Display()
		switch {
		case ap < bp:
			out = append(out, Change{Path: ae[i].Path, Kind: ChangeRemoved})
			i++
		case ap > bp:
			out = append(out, Change{Path: be[j].Path, Kind: ChangeAdded})
			j++
		default:
			if modified(ae[i], be[j]) {
				out = append(out, Change{Path: ae[i].Path, Kind: ChangeModified})
			}
			i++
			j++
		}
	}
	for ; i < len(ae); i++ {
		out = append(out, Change{Path: ae[i].Path, Kind: ChangeRemoved})
	}
	for ; j < len(be); j++ {
		out = append(out, Change{Path: be[j].Path, Kind: ChangeAdded})
	}

	rt.Logger().WithField("changes", len(out)).Info("archives compared")
	return out, nil
}
