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

// Package hashsink wraps a write-only stream.Stream with a configurable
// digest computed over every byte written, producing a sidecar file at
// Terminate.
package hashsink

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha512"
	"encoding/hex"
	"hash"
	"os"
	"path/filepath"

	"golang.org/x/crypto/argon2"

	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream"
)

const source = "stream/hashsink"

// Algorithm identifies the hash fed by every write; its wire tag is a
// single-letter sentinel.
type Algorithm byte

const (
	AlgorithmNone      Algorithm = 'n'
	AlgorithmMD5       Algorithm = 'm'
	AlgorithmSHA1      Algorithm = 's'
	AlgorithmSHA512    Algorithm = 'S'
	AlgorithmWhirlpool Algorithm = 'w'
	AlgorithmArgon2    Algorithm = 'a'
)

func (a Algorithm) String() string {
	switch a {
	case AlgorithmNone:
		return "none"
	case AlgorithmMD5:
		return "md5"
	case AlgorithmSHA1:
		return "sha1"
	case AlgorithmSHA512:
		return "sha512"
	case AlgorithmWhirlpool:
		return "whirlpool"
	case AlgorithmArgon2:
		return "argon2"
	default:
		return "?"
	}
}

// Sink wraps dst, feeding every byte written to algo and, at Terminate,
// writing a sidecar file "<hex-digest>  <base slice filename>\n" at
// sidecarPath with the data file's permissions. The data file's ownership
// is not copied to the sidecar.
type Sink struct {
	stream.Lifecycle
	dst         stream.Stream
	algo        Algorithm
	h           hash.Hash
	argonBuf    []byte // argon2 needs the whole input; buffered here
	sidecarPath string
	dataPath    string
}

// New wraps dst. sidecarPath is the path the ".hash"-style sidecar is
// written to; dataPath is the slice file the digest describes.
func New(dst stream.Stream, algo Algorithm, sidecarPath, dataPath string) (*Sink, errkind.Error) {
	s := &Sink{dst: dst, algo: algo, sidecarPath: sidecarPath, dataPath: dataPath}

	switch algo {
	case AlgorithmNone:
		// hashing disabled
	case AlgorithmMD5:
		s.h = md5.New()
	case AlgorithmSHA1:
		s.h = sha1.New()
	case AlgorithmSHA512:
		s.h = sha512.New()
	case AlgorithmArgon2:
		s.argonBuf = make([]byte, 0, 1<<20)
	case AlgorithmWhirlpool:
		return nil, errkind.New(errkind.KindFeatureUnavailable, source, "whirlpool hashing unavailable: no pack dependency implements it")
	default:
		return nil, errkind.New(errkind.KindLibraryMisuse, source, "unknown hash algorithm")
	}

	return s, nil
}

func (s *Sink) Write(buf []byte) errkind.Error {
	if e := s.CheckAlive(source); e != nil {
		return e
	}
	if e := s.dst.Write(buf); e != nil {
		return e
	}
	switch {
	case s.h != nil:
		s.h.Write(buf)
	case s.algo == AlgorithmArgon2:
		s.argonBuf = append(s.argonBuf, buf...)
	}
	return nil
}

// digest returns the final hex digest, or "" if hashing is disabled.
func (s *Sink) digest() string {
	switch {
	case s.h != nil:
		return hex.EncodeToString(s.h.Sum(nil))
	case s.algo == AlgorithmArgon2:
		sum := argon2.IDKey(s.argonBuf, []byte(source), 1, 64*1024, 4, 32)
		return hex.EncodeToString(sum)
	default:
		return ""
	}
}

// Terminate terminates the wrapped stream and, if hashing is enabled,
// writes the sidecar file.
func (s *Sink) Terminate() errkind.Error {
	if s.IsTerminated() {
		return errkind.New(errkind.KindLibraryMisuse, source, "double terminate")
	}
	s.MarkTerminated()

	if e := s.dst.Terminate(); e != nil {
		return e
	}

	if s.algo == AlgorithmNone {
		return nil
	}

	digest := s.digest()
	line := digest + "  " + filepath.Base(s.dataPath) + "\n"

	if err := os.WriteFile(s.sidecarPath, []byte(line), 0o640); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}

	if info, err := os.Stat(s.dataPath); err == nil {
		_ = os.Chmod(s.sidecarPath, info.Mode())
	}

	return nil
}

// SyncWrite forwards to the wrapped stream.
func (s *Sink) SyncWrite() errkind.Error {
	if e := s.CheckAlive(source); e != nil {
		return e
	}
	return s.dst.SyncWrite()
}

// Unwrap exposes the wrapped stream for the remaining Stream methods the
// sink forwards unchanged.
func (s *Sink) Unwrap() stream.Stream { return s.dst }
