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
	"io"

	"github.com/nabbar/darkit/bigint"
	"github.com/nabbar/darkit/errkind"
)

const source = "fsa"

// boolNatures lists the natures that carry a boolean natively on the wire; every other nature
// serializes its value through the BigInt codec.
var boolNatures = map[Nature]bool{
	NatureAppendOnly:        true,
	NatureCompressed:        true,
	NatureNoDump:            true,
	NatureImmutable:         true,
	NatureDataJournaling:    true,
	NatureSecureDeletion:    true,
	NatureNoTailMerging:     true,
	NatureUndeletable:       true,
	NatureNoatimeUpdate:     true,
	NatureSynchronousDir:    true,
	NatureSynchronousUpdate: true,
	NatureTopOfDirHierarchy: true,
}

// WriteWire serializes the set as: BigInt count, then each entry as
// (family-sig, nature-sig, value) in canonical (family, nature) order.
func (s *Set) WriteWire(w io.Writer) errkind.Error {
	entries := s.Entries()

	if e := bigint.Write(w, bigint.FromUint64(uint64(len(entries)))); e != nil {
		return e.Push(source, "writing entry count")
	}

	for _, ent := range entries {
		if _, err := w.Write([]byte{byte(ent.Family)}); err != nil {
			return errkind.Wrap(errkind.KindHardware, source, err)
		}
		if _, err := io.WriteString(w, string(ent.Nature)); err != nil {
			return errkind.Wrap(errkind.KindHardware, source, err)
		}
		if ent.Value.IsBool() {
			b := byte('F')
			if ent.Value.Bool() {
				b = 'T'
			}
			if _, err := w.Write([]byte{b}); err != nil {
				return errkind.Wrap(errkind.KindHardware, source, err)
			}
		} else {
			if e := bigint.Write(w, ent.Value.Int()); e != nil {
				return e.Push(source, "writing attribute value")
			}
		}
	}
	return nil
}

// ReadWire decodes a Set previously written by WriteWire. A reserved
// sentinel ('X' family or "XX" nature) fails as an unknown-feature error.
func ReadWire(r io.Reader) (*Set, errkind.Error) {
	count, e := bigint.ReadBounded(r)
	if e != nil {
		return nil, e.Push(source, "reading entry count")
	}

	s := NewSet()
	one := make([]byte, 1)
	two := make([]byte, 2)

	for idx := uint64(0); idx < count; idx++ {
		if _, err := io.ReadFull(r, one); err != nil {
			return nil, errkind.Wrap(errkind.KindData, source, err)
		}
		fam := Family(one[0])
		if fam == familyReserved {
			return nil, errkind.New(errkind.KindFeatureUnavailable, source, "reserved FSA family sentinel encountered")
		}

		if _, err := io.ReadFull(r, two); err != nil {
			return nil, errkind.Wrap(errkind.KindData, source, err)
		}
		nat := Nature(two)
		if nat == natureReserved {
			return nil, errkind.New(errkind.KindFeatureUnavailable, source, "reserved FSA nature sentinel encountered")
		}

		var v Value
		if boolNatures[nat] {
			if _, err := io.ReadFull(r, one); err != nil {
				return nil, errkind.Wrap(errkind.KindData, source, err)
			}
			switch one[0] {
			case 'T':
				v = BoolValue(true)
			case 'F':
				v = BoolValue(false)
			default:
				return nil, errkind.New(errkind.KindData, source, "invalid boolean tag in FSA entry")
			}
		} else {
			iv, ee := bigint.Read(r)
			if ee != nil {
				return nil, ee.Push(source, "reading attribute value")
			}
			v = IntValue(iv)
		}

		s.Put(fam, nat, v)
	}

	return s, nil
}
