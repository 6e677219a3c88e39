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

package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/nabbar/darkit/fsa"
	libpath "github.com/nabbar/darkit/path"
)

// osEntry is the concrete Entry OSWalker visits, backed directly by an
// os.FileInfo captured during the walk.
type osEntry struct {
	p        libpath.Path
	mode     os.FileMode
	size     uint64
	owner    uint32
	group    uint32
	mtime    time.Time
	ctime    time.Time
	linkname string
	key      HardlinkKey
	fsaSet   *fsa.Set
}

func (e *osEntry) Path() libpath.Path      { return e.p }
func (e *osEntry) Mode() os.FileMode       { return e.mode }
func (e *osEntry) Size() uint64            { return e.size }
func (e *osEntry) Owner() uint32           { return e.owner }
func (e *osEntry) Group() uint32           { return e.group }
func (e *osEntry) Mtime() time.Time        { return e.mtime }
func (e *osEntry) Ctime() time.Time        { return e.ctime }
func (e *osEntry) Linkname() string        { return e.linkname }
func (e *osEntry) HardlinkKey() HardlinkKey { return e.key }
func (e *osEntry) FSA() *fsa.Set           { return e.fsaSet }

var _ Entry = (*osEntry)(nil)

// OSWalker walks a real directory tree with path/filepath.WalkDir,
// optionally capturing an fsa.Set per entry when scope is non-empty.
type OSWalker struct {
	Scope fsa.Scope
}

// NewOSWalker returns an OSWalker that captures no FSA attributes; set
// the Scope field afterward to opt in.
func NewOSWalker() *OSWalker {
	return &OSWalker{}
}

func (w *OSWalker) Walk(root libpath.Path, visit func(Entry) error) error {
	base := root.Display()
	return filepath.WalkDir(base, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		info, ierr := d.Info()
		if ierr != nil {
			return ierr
		}

		var linkname string
		if info.Mode()&os.ModeSymlink != 0 {
			if target, lerr := os.Readlink(p); lerr == nil {
				linkname = target
			}
		}

		dev, ino, uid, gid, ctime := statExtra(info)

		var set *fsa.Set
		if len(w.Scope) > 0 && !info.IsDir() {
			if s, ferr := fsa.ReadFrom(p, w.Scope); ferr == nil {
				set = s
			}
		}

		e := &osEntry{
			p:        libpath.New(filepath.ToSlash(p)),
			mode:     info.Mode(),
			size:     uint64(info.Size()),
			owner:    uid,
			group:    gid,
			mtime:    info.ModTime(),
			ctime:    ctime,
			linkname: linkname,
			key:      HardlinkKey{Dev: dev, Ino: ino},
			fsaSet:   set,
		}
		return visit(e)
	})
}

var _ Walker = (*OSWalker)(nil)
