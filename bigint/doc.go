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

// Package bigint implements the self-delimiting, unbounded non-negative
// integer used throughout the archive format for sizes, offsets, dates,
// counts and bit flags.
//
// Wire form: a preamble of zero or more 0x00 bytes followed by exactly
// one marker byte with a single bit set, then the value field. The
// marker's set-bit position pos (1 for 0x80 down to 8 for 0x01) together
// with the count z of preceding zero bytes selects the value-field width
// in groups of 4 bytes: width = (z*8 + pos) * 4. The value is written
// big-endian, left-padded with zero bytes up to the group boundary; the
// integer 0 carries one informational zero byte and so encodes as the
// marker 0x80 followed by one all-zero group. Canonical encoding always
// picks the smallest group count that holds the value.
package bigint
