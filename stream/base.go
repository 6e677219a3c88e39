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

package stream

import (
	"hash"
	"hash/crc32"
	"hash/crc64"
	"sync/atomic"

	"github.com/nabbar/darkit/errkind"
)

// Lifecycle enforces the terminate-then-fail contract shared by every
// concrete Stream. Concrete backends embed it and call CheckAlive at the
// top of every method.
type Lifecycle struct {
	done atomic.Bool
}

func (l *Lifecycle) CheckAlive(source string) errkind.Error {
	if l.done.Load() {
		return errkind.New(errkind.KindLibraryMisuse, source, "operation on a terminated stream")
	}
	return nil
}

func (l *Lifecycle) MarkTerminated() {
	l.done.Store(true)
}

func (l *Lifecycle) IsTerminated() bool {
	return l.done.Load()
}

// CRC tracks an optionally-armed running checksum of a configurable width.
type CRC struct {
	width CRCWidth
	armed bool
	h32   hash.Hash32
	h64   hash.Hash64
}

func (c *CRC) Reset(width CRCWidth) {
	c.width = width
	c.armed = true
	switch width {
	case CRC64:
		c.h64 = crc64.New(crc64.MakeTable(crc64.ISO))
		c.h32 = nil
	default:
		c.h32 = crc32.NewIEEE()
		c.h64 = nil
	}
}

// Get returns the running value and disarms the CRC. The second return is
// false if no CRC was armed.
func (c *CRC) Get() (uint64, bool) {
	if !c.armed {
		return 0, false
	}
	c.armed = false
	if c.h64 != nil {
		return c.h64.Sum64(), true
	}
	if c.h32 != nil {
		return uint64(c.h32.Sum32()), true
	}
	return 0, false
}

func (c *CRC) Write(p []byte) {
	if !c.armed {
		return
	}
	if c.h64 != nil {
		c.h64.Write(p)
	} else if c.h32 != nil {
		c.h32.Write(p)
	}
}
