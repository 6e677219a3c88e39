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

// Package errkind defines the closed error-kind taxonomy shared by every
// layer of the archival pipeline (bigint, stream, slice, compress, cipher,
// fsa) and the stacking error value that carries it.
package errkind

// Kind is a closed enumeration of the error categories every pipeline layer
// may raise. Layers never invent new kinds; they pick the one that matches
// and push a frame identifying themselves.
type Kind uint8

const (
	// KindNone is the zero value; never deliberately produced.
	KindNone Kind = iota

	// KindRange reports an argument out of its accepted range.
	KindRange

	// KindMemory reports an allocation or secure-memory failure.
	KindMemory

	// KindData reports detected data corruption: bad magic, failed
	// decompression, an elastic-buffer overflow, or a short read where a
	// full block was expected.
	KindData

	// KindHardware reports an I/O error surfaced by a backend.
	KindHardware

	// KindFeatureUnavailable reports a runtime fallback onto a code path
	// not compiled in (e.g. a codec or cipher algorithm without a wired
	// implementation).
	KindFeatureUnavailable

	// KindUserAbort reports that the user declined at a prompt.
	KindUserAbort

	// KindScript reports a non-zero exit from an external hook/script.
	KindScript

	// KindLibraryMisuse reports invalid API use: double-terminate, wrong
	// stream mode, and similar invariant violations at the API boundary.
	KindLibraryMisuse

	// KindBigInteger reports overflow against a bounded integer type.
	KindBigInteger

	// KindThreadCancel reports cooperative cancellation.
	KindThreadCancel

	// KindBug reports an internal invariant violation that should be
	// unreachable.
	KindBug

	// KindEndOfFile is an internal, distinguishable end-of-stream signal
	// used by codecs; it is not normally surfaced to callers.
	KindEndOfFile
)

// String returns the lowercase, snake-free name of the kind.
func (k Kind) String() string {
	switch k {
	case KindRange:
		return "range"
	case KindMemory:
		return "memory"
	case KindData:
		return "data"
	case KindHardware:
		return "hardware"
	case KindFeatureUnavailable:
		return "feature-unavailable"
	case KindUserAbort:
		return "user-abort"
	case KindScript:
		return "script"
	case KindLibraryMisuse:
		return "library-misuse"
	case KindBigInteger:
		return "big-integer"
	case KindThreadCancel:
		return "thread-cancel"
	case KindBug:
		return "bug"
	case KindEndOfFile:
		return "end-of-file"
	default:
		return "none"
	}
}
