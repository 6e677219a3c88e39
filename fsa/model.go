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
	"sort"

	"github.com/nabbar/darkit/bigint"
)

// Family identifies the filesystem family an attribute belongs to.
type Family byte

const (
	FamilyLinuxExtX Family = 'l'
	FamilyHFSPlus   Family = 'h'
	familyReserved  Family = 'X'
)

func (f Family) String() string {
	switch f {
	case FamilyLinuxExtX:
		return "ext2/3/4"
	case FamilyHFSPlus:
		return "HFS+"
	default:
		return "?"
	}
}

// Nature identifies a specific attribute within a family.
type Nature string

const (
	NatureCreationDate       Nature = "cd"
	NatureAppendOnly         Nature = "ao"
	NatureCompressed         Nature = "co"
	NatureNoDump             Nature = "nd"
	NatureImmutable          Nature = "im"
	NatureDataJournaling     Nature = "dj"
	NatureSecureDeletion     Nature = "sd"
	NatureNoTailMerging      Nature = "nt"
	NatureUndeletable        Nature = "ud"
	NatureNoatimeUpdate      Nature = "na"
	NatureSynchronousDir     Nature = "yd"
	NatureSynchronousUpdate Nature = "yu"
	NatureTopOfDirHierarchy  Nature = "td"
	natureReserved           Nature = "XX"
)

func (n Nature) String() string {
	switch n {
	case NatureCreationDate:
		return "creation date"
	case NatureAppendOnly:
		return "append only"
	case NatureCompressed:
		return "compressed"
	case NatureNoDump:
		return "no dump flag"
	case NatureImmutable:
		return "immutable"
	case NatureDataJournaling:
		return "journalized"
	case NatureSecureDeletion:
		return "secure deletion"
	case NatureNoTailMerging:
		return "no tail merging"
	case NatureUndeletable:
		return "undeletable"
	case NatureNoatimeUpdate:
		return "no atime update"
	case NatureSynchronousDir:
		return "synchronous directory"
	case NatureSynchronousUpdate:
		return "synchronous update"
	case NatureTopOfDirHierarchy:
		return "top of directory hierarchy"
	default:
		return "unknown"
	}
}

// requiresCapability reports whether applying this nature to the live
// filesystem requires an elevated capability; the order in which natures
// are attempted comes from escalationRank.
func (n Nature) requiresCapability() bool {
	switch n {
	case NatureImmutable, NatureAppendOnly, NatureDataJournaling:
		return true
	default:
		return false
	}
}

// escalationRank orders natures for filesystem application: 0 for
// non-privileged natures, 1 for IMMUTABLE, 2 for the remaining
// capability-gated natures (append-only, data-journaling), preserving the
// source-dictated attempt order so a refusal never leaves the inode in a
// stricter state than intended.
func (n Nature) escalationRank() int {
	switch n {
	case NatureImmutable:
		return 1
	case NatureAppendOnly, NatureDataJournaling:
		return 2
	default:
		return 0
	}
}

// Value holds either a boolean or a BigInt attribute value.
type Value struct {
	isBool bool
	b      bool
	i      bigint.Int
}

func BoolValue(v bool) Value       { return Value{isBool: true, b: v} }
func IntValue(v bigint.Int) Value  { return Value{isBool: false, i: v} }
func (v Value) IsBool() bool       { return v.isBool }
func (v Value) Bool() bool         { return v.b }
func (v Value) Int() bigint.Int    { return v.i }

func (v Value) Equal(o Value) bool {
	if v.isBool != o.isBool {
		return false
	}
	if v.isBool {
		return v.b == o.b
	}
	return v.i.Cmp(o.i) == 0
}

// Entry is a single (family, nature, value) triple.
type Entry struct {
	Family Family
	Nature Nature
	Value  Value
}

// Scope is a set of families to read from or write to the filesystem.
type Scope map[Family]struct{}

func NewScope(families ...Family) Scope {
	s := make(Scope, len(families))
	for _, f := range families {
		s[f] = struct{}{}
	}
	return s
}

func AllFamilies() Scope {
	return NewScope(FamilyHFSPlus, FamilyLinuxExtX)
}

func (s Scope) Has(f Family) bool {
	_, ok := s[f]
	return ok
}

// Set is an ordered collection of FSA entries, at most one per
// (family, nature) pair.
type Set struct {
	entries map[[2]string]Entry
}

func NewSet() *Set {
	return &Set{entries: make(map[[2]string]Entry)}
}

func key(f Family, n Nature) [2]string {
	return [2]string{string(f), string(n)}
}

// Put inserts or replaces the entry for (family, nature).
func (s *Set) Put(f Family, n Nature, v Value) {
	s.entries[key(f, n)] = Entry{Family: f, Nature: n, Value: v}
}

// Get retrieves the entry for (family, nature), if present.
func (s *Set) Get(f Family, n Nature) (Value, bool) {
	e, ok := s.entries[key(f, n)]
	return e.Value, ok
}

// Len reports the number of entries.
func (s *Set) Len() int {
	return len(s.entries)
}

// Entries returns all entries sorted by (family, nature), the canonical
// on-disk order.
func (s *Set) Entries() []Entry {
	out := make([]Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Family != out[j].Family {
			return out[i].Family < out[j].Family
		}
		return out[i].Nature < out[j].Nature
	})
	return out
}

// Equal reports structural equality: same entries regardless of insertion
// order.
func (s *Set) Equal(o *Set) bool {
	if s.Len() != o.Len() {
		return false
	}
	for k, e := range s.entries {
		oe, ok := o.entries[k]
		if !ok || !e.Value.Equal(oe.Value) {
			return false
		}
	}
	return true
}
