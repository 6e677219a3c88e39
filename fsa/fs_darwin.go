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

//go:build darwin

package fsa

import (
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/nabbar/darkit/bigint"
	"github.com/nabbar/darkit/errkind"
)

var hfsFlagBits = map[Nature]uint32{
	NatureImmutable:   unix.UF_IMMUTABLE,
	NatureAppendOnly:  unix.UF_APPEND,
	NatureUndeletable: unix.SF_NOUNLINK,
	NatureCompressed:  unix.UF_COMPRESSED,
	NatureNoDump:      unix.UF_NODUMP,
}

func readFromOS(path string, scope Scope) (*Set, errkind.Error) {
	s := NewSet()
	if !scope.Has(FamilyHFSPlus) {
		return s, nil
	}

	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return nil, errkind.Wrap(errkind.KindHardware, source, err)
	}

	for nat, bit := range hfsFlagBits {
		s.Put(FamilyHFSPlus, nat, BoolValue(uint32(st.Flags)&bit != 0))
	}
	s.Put(FamilyHFSPlus, NatureCreationDate, IntValue(bigint.FromUint64(uint64(st.Birthtimespec.Sec))))

	return s, nil
}

func writeEntryOS(path string, e Entry) error {
	if e.Family != FamilyHFSPlus {
		return errUnsupportedFamily(e.Family)
	}
	if e.Nature == NatureCreationDate {
		return nil
	}

	bit, ok := hfsFlagBits[e.Nature]
	if !ok {
		return nil
	}

	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return err
	}

	want := e.Value.Bool()
	next := uint32(st.Flags)
	if want {
		next |= bit
	} else {
		next &^= bit
	}

	return syscall.Chflags(path, int(next))
}
