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

package filter_test

import (
	"testing"

	"github.com/nabbar/darkit/filter"
	libpath "github.com/nabbar/darkit/path"
)

func TestSubtree(t *testing.T) {
	sel := filter.Subtree{Root: libpath.New("/etc"), CaseSensitive: true}

	for _, tc := range []struct {
		in   string
		want bool
	}{
		{"/etc", true},
		{"/etc/passwd", true},
		{"/etc/ssh/sshd_config", true},
		{"/etcetera", false},
		{"/usr/etc", false},
	} {
		if got := sel.Match(libpath.New(tc.in)); got != tc.want {
			t.Errorf("Subtree(/etc).Match(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGlob(t *testing.T) {
	sel := filter.Glob{Pattern: "/var/log/*.log"}

	if !sel.Match(libpath.New("/var/log/syslog.log")) {
		t.Error("expected /var/log/syslog.log to match")
	}
	if sel.Match(libpath.New("/var/log/nested/deep.log")) {
		t.Error("glob must not cross a path separator")
	}
}

func TestCombinators(t *testing.T) {
	etc := filter.Subtree{Root: libpath.New("/etc"), CaseSensitive: true}
	logs := filter.Glob{Pattern: "/var/log/*"}

	any := filter.AnyOf{etc, logs}
	if !any.Match(libpath.New("/etc/hosts")) || !any.Match(libpath.New("/var/log/dmesg")) {
		t.Error("AnyOf should accept members of either selector")
	}
	if any.Match(libpath.New("/home/u")) {
		t.Error("AnyOf should reject a path neither member matches")
	}

	none := filter.AllOf{etc, filter.Not{S: etc}}
	if none.Match(libpath.New("/etc/hosts")) {
		t.Error("a selector and its negation can never both match")
	}

	if !(filter.All{}).Match(libpath.New("/anything")) {
		t.Error("All must match everything")
	}
	if (filter.AllOf{}).Match(libpath.New("/x")) != true {
		t.Error("empty AllOf matches everything")
	}
	if (filter.AnyOf{}).Match(libpath.New("/x")) {
		t.Error("empty AnyOf matches nothing")
	}
}
