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

package stream_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/darkit/compress"
	cstream "github.com/nabbar/darkit/compress/stream"
	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream"
	"github.com/nabbar/darkit/stream/local"
)

func openLocal(path string, write bool) stream.Stream {
	opts := local.OpenOptions{}
	if write {
		opts = local.OpenOptions{Write: true, Create: true, Truncate: true}
	}
	s, e := local.Open(path, opts)
	Expect(e).To(BeNil())
	return s
}

var _ = Describe("streaming compressor", func() {
	It("round trips several blocks through gzip", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "blob.gz")

		codec, e := compress.New(compress.AlgorithmGzip, 0)
		Expect(e).To(BeNil())

		payload := make([]byte, 3*cstream.DefaultBlockSize+123)
		for i := range payload {
			payload[i] = byte(i % 250)
		}

		w := cstream.NewWriter(openLocal(path, true), codec, cstream.DefaultBlockSize)
		Expect(w.Write(payload)).To(BeNil())
		Expect(w.Terminate()).To(BeNil())

		codec2, e := compress.New(compress.AlgorithmGzip, 0)
		Expect(e).To(BeNil())
		r := cstream.NewReader(openLocal(path, false), codec2, func() (stream.Stream, errkind.Error) {
			return local.Open(path, local.OpenOptions{})
		})

		got := make([]byte, len(payload))
		total := 0
		for total < len(got) {
			n, e := r.Read(got[total:])
			total += n
			if n == 0 || e != nil {
				break
			}
		}
		Expect(got[:total]).To(Equal(payload))
		Expect(r.Terminate()).To(BeNil())
	})

	It("passes a suspended block through verbatim", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "suspend.gz")

		codec, e := compress.New(compress.AlgorithmGzip, 0)
		Expect(e).To(BeNil())

		before := []byte("compressed prefix data, repeated repeated repeated")
		verbatim := []byte("already-compressed-looking payload stored as-is")
		after := []byte("compressed suffix data, repeated repeated repeated")

		w := cstream.NewWriter(openLocal(path, true), codec, 4096)
		Expect(w.Write(before)).To(BeNil())
		Expect(w.SuspendCompression()).To(BeNil())
		Expect(w.Write(verbatim)).To(BeNil())
		Expect(w.ResumeCompression()).To(BeNil())
		Expect(w.Write(after)).To(BeNil())
		Expect(w.Terminate()).To(BeNil())

		codec2, e := compress.New(compress.AlgorithmGzip, 0)
		Expect(e).To(BeNil())
		r := cstream.NewReader(openLocal(path, false), codec2, nil)

		want := append(append(append([]byte{}, before...), verbatim...), after...)
		got := make([]byte, len(want))
		total := 0
		for total < len(got) {
			n, e := r.Read(got[total:])
			total += n
			if n == 0 || e != nil {
				break
			}
		}
		Expect(got[:total]).To(Equal(want))
		Expect(r.Terminate()).To(BeNil())
	})

	It("seeks backward by reopening the underlying stream", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "seek.gz")

		codec, e := compress.New(compress.AlgorithmGzip, 0)
		Expect(e).To(BeNil())

		payload := make([]byte, 2*4096+50)
		for i := range payload {
			payload[i] = byte(i % 200)
		}

		w := cstream.NewWriter(openLocal(path, true), codec, 4096)
		Expect(w.Write(payload)).To(BeNil())
		Expect(w.Terminate()).To(BeNil())

		codec2, e := compress.New(compress.AlgorithmGzip, 0)
		Expect(e).To(BeNil())
		r := cstream.NewReader(openLocal(path, false), codec2, func() (stream.Stream, errkind.Error) {
			return local.Open(path, local.OpenOptions{})
		})

		ahead := make([]byte, 4200)
		n, e := r.Read(ahead)
		Expect(e).To(BeNil())
		Expect(ahead[:n]).To(Equal(payload[:n]))

		Expect(r.Skip(10)).To(BeNil())
		got := make([]byte, 20)
		n, e = r.Read(got)
		Expect(e).To(BeNil())
		Expect(got[:n]).To(Equal(payload[10 : 10+n]))
		Expect(r.Terminate()).To(BeNil())
	})
})
