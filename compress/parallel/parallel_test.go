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

package parallel_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/darkit/compress"
	"github.com/nabbar/darkit/compress/parallel"
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

var _ = Describe("parallel compressor", func() {
	It("produces byte-identical output regardless of worker count", func() {
		dir := GinkgoT().TempDir()
		srcPath := filepath.Join(dir, "clear.bin")

		payload := make([]byte, 16*1024+777)
		for i := range payload {
			payload[i] = byte(i*7 + 3)
		}
		Expect(os.WriteFile(srcPath, payload, 0o600)).To(BeNil())

		run := func(workers int) []byte {
			src := openLocal(srcPath, false)
			dstPath := filepath.Join(dir, "out.bin")
			dst := openLocal(dstPath, true)

			codec, e := compress.New(compress.AlgorithmGzip, 0)
			Expect(e).To(BeNil())

			Expect(parallel.Compress(src, dst, codec, 4096, workers, nil)).To(BeNil())
			Expect(dst.Terminate()).To(BeNil())
			Expect(src.Terminate()).To(BeNil())

			out, err := os.ReadFile(dstPath)
			Expect(err).To(BeNil())
			return out
		}

		seq := run(1)
		par := run(4)
		Expect(par).To(Equal(seq))

		// round trip the parallel output back through a parallel decompressor
		framedPath := filepath.Join(dir, "out.bin")
		framed := openLocal(framedPath, false)
		clearPath := filepath.Join(dir, "clear_out.bin")
		clearDst := openLocal(clearPath, true)

		codec2, e := compress.New(compress.AlgorithmGzip, 0)
		Expect(e).To(BeNil())
		Expect(parallel.Decompress(framed, clearDst, codec2, 4, nil)).To(BeNil())
		Expect(clearDst.Terminate()).To(BeNil())
		Expect(framed.Terminate()).To(BeNil())

		got, err := os.ReadFile(clearPath)
		Expect(err).To(BeNil())
		Expect(got).To(Equal(payload))
	})
})
