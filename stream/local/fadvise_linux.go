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

//go:build linux

package local

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/nabbar/darkit/errkind"
)

func adviceToLinux(a Advice) int {
	switch a {
	case AdviceSequential:
		return unix.FADV_SEQUENTIAL
	case AdviceRandom:
		return unix.FADV_RANDOM
	case AdviceNoReuse:
		return unix.FADV_NOREUSE
	case AdviceWillNeed:
		return unix.FADV_WILLNEED
	case AdviceDontNeed:
		return unix.FADV_DONTNEED
	default:
		return unix.FADV_NORMAL
	}
}

func fadvise(f *os.File, a Advice) errkind.Error {
	if err := unix.Fadvise(int(f.Fd()), 0, 0, adviceToLinux(a)); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}
	return nil
}

// openWithFurtive opens path with O_NOATIME when furtive is requested,
// retrying without it if the kernel or filesystem refuses the flag (e.g.
// the caller does not own the file and lacks CAP_FOWNER).
func openWithFurtive(path string, flag int, perm os.FileMode, furtive bool) (*os.File, error) {
	if furtive {
		if f, err := os.OpenFile(path, flag|unix.O_NOATIME, perm); err == nil {
			return f, nil
		}
	}
	return os.OpenFile(path, flag, perm)
}
