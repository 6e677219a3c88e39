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

import "testing"

func TestExpandHook(t *testing.T) {
	ctx := HookContext{
		Path:     "/backups/arch.7.dk",
		SliceNum: 7,
		SliceMax: 120,
		Context:  "end",
		UID:      1000,
		GID:      100,
		URL:      "sftp://host/arch",
	}

	for _, tc := range []struct {
		in   string
		want string
	}{
		{"%p", "/backups/arch.7.dk"},
		{"%b", "arch.7.dk"},
		{"%f", "arch.7.dk"},
		{"%n", "7"},
		{"%N", "007"}, // padded to the width of SliceMax
		{"%e", "dk"},
		{"%c", "end"},
		{"%u", "1000"},
		{"%g", "100"},
		{"%U", "sftp://host/arch"},
		{"%%", "%"},
		{"scp %p host:%b", "scp /backups/arch.7.dk host:arch.7.dk"},
		{"trailing %", "trailing %"},
		{"%q", "%q"}, // unknown escapes pass through
	} {
		if got := ExpandHook(tc.in, ctx); got != tc.want {
			t.Errorf("ExpandHook(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
