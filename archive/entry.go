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
	"os"
	"time"

	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/fsa"
	libpath "github.com/nabbar/darkit/path"
	"github.com/nabbar/darkit/stream"
)

// Entry markers on the wire: one per catalog entry, then a terminator.
const (
	markerEntry byte = 'E'
	markerEnd   byte = 'X'
)

// EntryKind classifies an archived filesystem object.
type EntryKind byte

const (
	KindFile    EntryKind = 'f'
	KindDir     EntryKind = 'd'
	KindSymlink EntryKind = 'l'
	KindOther   EntryKind = 'o' // device, fifo, socket: metadata only
)

func kindOf(mode os.FileMode) EntryKind {
	switch {
	case mode.IsRegular():
		return KindFile
	case mode.IsDir():
		return KindDir
	case mode&os.ModeSymlink != 0:
		return KindSymlink
	default:
		return KindOther
	}
}

// Entry is the decoded metadata of one archived object. For a regular
// file, Hardlink == 0 means the entry carries its own data of Size bytes;
// a positive value is a 1-based back-reference to the data-carrying entry
// it shares storage with.
type Entry struct {
	Path     libpath.Path
	Kind     EntryKind
	Mode     os.FileMode
	UID      uint32
	GID      uint32
	Mtime    time.Time
	Size     uint64
	Linkname string
	Hardlink uint64
	FSA      *fsa.Set
}

// writeEntryMeta emits the metadata frame for e; the caller streams the
// file data (if any) immediately after.
func writeEntryMeta(s stream.Stream, e Entry) errkind.Error {
	if err := s.Write([]byte{markerEntry, byte(e.Kind)}); err != nil {
		return err
	}
	if err := writeString(s, e.Path.Display()); err != nil {
		return err
	}
	if err := writeUint(s, uint64(e.Mode)); err != nil {
		return err
	}
	if err := writeUint(s, uint64(e.UID)); err != nil {
		return err
	}
	if err := writeUint(s, uint64(e.GID)); err != nil {
		return err
	}
	if err := writeUint(s, uint64(e.Mtime.Unix())); err != nil {
		return err
	}

	if e.Kind == KindSymlink {
		if err := writeString(s, e.Linkname); err != nil {
			return err
		}
	}

	if e.FSA != nil && e.FSA.Len() > 0 {
		if err := s.Write([]byte{'T'}); err != nil {
			return err
		}
		if err := e.FSA.WriteWire(streamWriter{s}); err != nil {
			return err
		}
	} else {
		if err := s.Write([]byte{'F'}); err != nil {
			return err
		}
	}

	if e.Kind == KindFile {
		if err := writeUint(s, e.Hardlink); err != nil {
			return err
		}
		if e.Hardlink == 0 {
			return writeUint(s, e.Size)
		}
	}
	return nil
}

// writeEnd emits the archive terminator.
func writeEnd(s stream.Stream) errkind.Error {
	return s.Write([]byte{markerEnd})
}

// readEntryMeta reads one metadata frame. The boolean result is false at
// the archive terminator.
func readEntryMeta(s stream.Stream) (Entry, bool, errkind.Error) {
	var e Entry

	var m [1]byte
	if err := readFull(s, m[:]); err != nil {
		return e, false, err
	}
	switch m[0] {
	case markerEnd:
		return e, false, nil
	case markerEntry:
	default:
		return e, false, errkind.New(errkind.KindData, source, "bad entry marker")
	}

	var kb [1]byte
	if err := readFull(s, kb[:]); err != nil {
		return e, false, err
	}
	e.Kind = EntryKind(kb[0])
	switch e.Kind {
	case KindFile, KindDir, KindSymlink, KindOther:
	default:
		return e, false, errkind.New(errkind.KindData, source, "unknown entry kind")
	}

	disp, err := readString(s)
	if err != nil {
		return e, false, err
	}
	e.Path = libpath.New(disp)

	mode, err := readUint(s)
	if err != nil {
		return e, false, err
	}
	e.Mode = os.FileMode(mode)

	uid, err := readUint(s)
	if err != nil {
		return e, false, err
	}
	e.UID = uint32(uid)

	gid, err := readUint(s)
	if err != nil {
		return e, false, err
	}
	e.GID = uint32(gid)

	sec, err := readUint(s)
	if err != nil {
		return e, false, err
	}
	e.Mtime = time.Unix(int64(sec), 0)

	if e.Kind == KindSymlink {
		if e.Linkname, err = readString(s); err != nil {
			return e, false, err
		}
	}

	var has [1]byte
	if err := readFull(s, has[:]); err != nil {
		return e, false, err
	}
	switch has[0] {
	case 'T':
		set, err := fsa.ReadWire(streamReader{s})
		if err != nil {
			return e, false, err
		}
		e.FSA = set
	case 'F':
	default:
		return e, false, errkind.New(errkind.KindData, source, "bad FSA presence marker")
	}

	if e.Kind == KindFile {
		if e.Hardlink, err = readUint(s); err != nil {
			return e, false, err
		}
		if e.Hardlink == 0 {
			if e.Size, err = readUint(s); err != nil {
				return e, false, err
			}
		}
	}

	return e, true, nil
}

// Stats summarizes one archive operation.
type Stats struct {
	Entries   uint64
	Files     uint64
	Dirs      uint64
	Symlinks  uint64
	Hardlinks uint64
	Skipped   uint64
	Bytes     uint64
}

// ChangeKind classifies one Diff finding.
type ChangeKind int

const (
	ChangeAdded ChangeKind = iota
	ChangeRemoved
	ChangeModified
)

func (c ChangeKind) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	default:
		return "?"
	}
}

// Change is one difference between two archives.
type Change struct {
	Path libpath.Path
	Kind ChangeKind
}
