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
	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/runtime"
)

// List reads every metadata frame of the archive, skipping over file
// data, and returns the entries in archive order.
func List(rt *runtime.Runtime, opts Options) ([]Entry, errkind.Error) {
	pipe, e := openRead(rt, opts)
	if e != nil {
		return nil, e
	}
	defer func() { _ = pipe.Terminate() }()

	var out []Entry
	for {
		if ce := rt.Cancel().Check(source); ce != nil {
			return out, ce
		}

		ent, more, e := readEntryMeta(pipe.top)
		if e != nil {
			return out, e
		}
		if !more {
			return out, nil
		}
		out = append(out, ent)

		if ent.Kind == KindFile && ent.Hardlink == 0 && ent.Size > 0 {
			if e := pipe.discard(ent.Size); e != nil {
				return out, e
			}
		}
	}
}
