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
	"fmt"
	"sort"

	"github.com/nabbar/darkit/errkind"
)

func errUnsupportedFamily(f Family) error {
	return fmt.Errorf("fsa family %q not supported on this platform", f)
}

// Warner receives non-fatal notices raised while applying attributes that
// require a capability the caller does not hold. It is satisfied
// structurally by runtime.UserInteraction, avoiding an import cycle.
type Warner interface {
	Warn(format string, args ...interface{})
}

// ReadFrom collects FSA entries for the families in scope from the live
// filesystem object at path.
func ReadFrom(path string, scope Scope) (*Set, errkind.Error) {
	return readFromOS(path, scope)
}

// WriteTo applies the set's entries whose family is in scope to the live
// filesystem object at path. Natures gated behind an elevated capability
// are attempted in escalation order (non-privileged first, then IMMUTABLE,
// then the remaining capability-gated natures); a refusal raises a warning
// through ui and the loop continues with the remaining entries.
func (s *Set) WriteTo(path string, scope Scope, ui Warner) errkind.Error {
	entries := s.Entries()

	ordered := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if scope.Has(e.Family) {
			ordered = append(ordered, e)
		}
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Nature.escalationRank() < ordered[j].Nature.escalationRank()
	})

	for _, e := range ordered {
		if err := writeEntryOS(path, e); err != nil {
			if e.Nature.requiresCapability() {
				if ui != nil {
					ui.Warn("could not set %s on %s: %v", e.Nature, path, err)
				}
				continue
			}
			return errkind.Wrap(errkind.KindHardware, source, err)
		}
	}
	return nil
}
