//go:build linux

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

package fsa

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/nabbar/darkit/bigint"
	"github.com/nabbar/darkit/errkind"
)

// These ext2/3/4 inode attribute flags (see linux/fs.h) are not exposed by
// golang.org/x/sys/unix, so their fixed kernel ABI values are declared here.
const (
	fsSecrmFl       = 0x00000001
	fsUnrmFl        = 0x00000002
	fsComprFl       = 0x00000004
	fsSyncFl        = 0x00000008
	fsImmutableFl   = 0x00000010
	fsAppendFl      = 0x00000020
	fsNodumpFl      = 0x00000040
	fsNoatimeFl     = 0x00000080
	fsJournalDataFl = 0x00004000
	fsNotailFl      = 0x00008000
	fsDirsyncFl     = 0x00010000
	fsTopdirFl      = 0x00020000
)

var extFlagBits = map[Nature]int{
	NatureAppendOnly:        fsAppendFl,
	NatureCompressed:        fsComprFl,
	NatureNoDump:            fsNodumpFl,
	NatureImmutable:         fsImmutableFl,
	NatureDataJournaling:    fsJournalDataFl,
	NatureSecureDeletion:    fsSecrmFl,
	NatureNoTailMerging:     fsNotailFl,
	NatureUndeletable:       fsUnrmFl,
	NatureNoatimeUpdate:     fsNoatimeFl,
	NatureSynchronousDir:    fsDirsyncFl,
	NatureSynchronousUpdate: fsSyncFl,
	NatureTopOfDirHierarchy: fsTopdirFl,
}

func readFromOS(path string, scope Scope) (*Set, errkind.Error) {
	s := NewSet()
	if !scope.Has(FamilyLinuxExtX) {
		return s, nil
	}

	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, errkind.Wrap(errkind.KindHardware, source, err)
	}
	defer f.Close()

	flags, err := unix.IoctlGetInt(int(f.Fd()), unix.FS_IOC_GETFLAGS)
	if err != nil {
		// not every filesystem implements this ioctl; treat as empty scope
		return s, nil
	}

	for nat, bit := range extFlagBits {
		s.Put(FamilyLinuxExtX, nat, BoolValue(flags&bit != 0))
	}

	var stx unix.Statx_t
	if err := unix.Statx(unix.AT_FDCWD, path, 0, unix.STATX_BTIME, &stx); err == nil && stx.Mask&unix.STATX_BTIME != 0 {
		s.Put(FamilyLinuxExtX, NatureCreationDate, IntValue(bigint.FromUint64(uint64(stx.Btime.Sec))))
	}

	return s, nil
}

func writeEntryOS(path string, e Entry) error {
	if e.Family != FamilyLinuxExtX {
		return errUnsupportedFamily(e.Family)
	}
	if e.Nature == NatureCreationDate {
		// birth time cannot be set back through this interface.
		return nil
	}

	bit, ok := extFlagBits[e.Nature]
	if !ok {
		return nil
	}

	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()

	cur, err := unix.IoctlGetInt(int(f.Fd()), unix.FS_IOC_GETFLAGS)
	if err != nil {
		return err
	}

	want := e.Value.Bool()
	next := cur
	if want {
		next |= bit
	} else {
		next &^= bit
	}
	if next == cur {
		return nil
	}

	return unix.IoctlSetPointerInt(int(f.Fd()), unix.FS_IOC_SETFLAGS, next)
}
