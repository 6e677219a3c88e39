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
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// HookContext carries the values ExpandHook substitutes into a template.
// Not every field applies to every call site; zero values substitute as
// empty/zero.
type HookContext struct {
	Path      string
	SliceNum  uint64
	SliceMax  uint64
	Context   string // "start" or "end"
	UID       int
	GID       int
	URL       string
}

// ExpandHook rewrites template, substituting the %-escapes a slice-pause
// or CLI hook script may reference: %p path, %b basename, %n slice
// number, %N zero-padded slice number, %e extension, %c context, %u
// uid, %g gid, %f filename (alias of %b), %% literal percent, %U remote
// URL.
func ExpandHook(template string, ctx HookContext) string {
	var b strings.Builder
	width := len(strconv.FormatUint(ctx.SliceMax, 10))
	if width < 1 {
		width = 1
	}

	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '%' || i+1 >= len(template) {
			b.WriteByte(c)
			continue
		}
		i++
		switch template[i] {
		case 'p':
			b.WriteString(ctx.Path)
		case 'b', 'f':
			b.WriteString(filepath.Base(ctx.Path))
		case 'n':
			b.WriteString(strconv.FormatUint(ctx.SliceNum, 10))
		case 'N':
			b.WriteString(fmt.Sprintf("%0*d", width, ctx.SliceNum))
		case 'e':
			b.WriteString(strings.TrimPrefix(filepath.Ext(ctx.Path), "."))
		case 'c':
			b.WriteString(ctx.Context)
		case 'u':
			b.WriteString(strconv.Itoa(ctx.UID))
		case 'g':
			b.WriteString(strconv.Itoa(ctx.GID))
		case 'U':
			b.WriteString(ctx.URL)
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(template[i])
		}
	}
	return b.String()
}
