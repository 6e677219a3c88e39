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

// Package catalog defines the collaborator surface archive.Create and
// archive.Extract walk a filesystem through: Walker and Entry are
// interfaces only, with no on-disk catalog layout of their own, so a
// caller can substitute a database-backed or in-memory walker without
// touching the archive format.
package catalog

import (
	"os"
	"time"

	"github.com/nabbar/darkit/fsa"
	"github.com/nabbar/darkit/path"
)

// HardlinkKey identifies an inode uniquely on its device, letting
// archive.Create recognize that two entries share storage.
type HardlinkKey struct {
	Dev uint64
	Ino uint64
}

// Entry describes one filesystem object a Walker visits.
type Entry interface {
	Path() path.Path
	Mode() os.FileMode
	Size() uint64
	Owner() uint32
	Group() uint32
	Mtime() time.Time
	Ctime() time.Time

	// Linkname is the symlink target; empty for non-symlinks.
	Linkname() string

	// HardlinkKey reports the (dev, ino) pair backing this entry. A
	// regular file with Nlink == 1 may still report a key; archive.Create
	// only treats it as shared storage once the same key recurs.
	HardlinkKey() HardlinkKey

	// FSA returns the platform-specific attribute set captured for this
	// entry, or nil when none was requested.
	FSA() *fsa.Set
}

// Walker visits every entry under root in an implementation-defined
// order; visit returning an error stops the walk and the error
// propagates to the caller.
type Walker interface {
	Walk(root path.Path, visit func(Entry) error) error
}
