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

package cipher_test

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/darkit/cipher"
	"github.com/nabbar/darkit/stream/local"
)

var _ = Describe("block cipher stream", func() {
	const blockSize = 512

	randomPayload := func(n int) []byte {
		b := make([]byte, n)
		for i := range b {
			b[i] = byte(i * 7 % 256)
		}
		return b
	}

	It("round trips four blocks and supports random access by block index", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "archive.dat")

		payload := randomPayload(4 * blockSize)

		ks, e := cipher.NewKeySchedule(cipher.AlgorithmAES256, cipher.Version{Major: 8, Fix: 1}, "secret", 0)
		Expect(e).To(BeNil())

		ls, e := local.Open(path, local.OpenOptions{Write: true, Create: true, Truncate: true})
		Expect(e).To(BeNil())
		w := cipher.NewWriter(ls, ks, blockSize)
		Expect(w.Write(payload)).To(BeNil())
		Expect(w.Terminate()).To(BeNil())

		ks2, e := cipher.NewKeySchedule(cipher.AlgorithmAES256, cipher.Version{Major: 8, Fix: 1}, "secret", 0)
		Expect(e).To(BeNil())
		rls, e := local.Open(path, local.OpenOptions{})
		Expect(e).To(BeNil())
		r := cipher.NewReader(rls, ks2, blockSize)

		Expect(r.Skip(2 * blockSize)).To(BeNil())
		got := make([]byte, 100)
		n, e := r.Read(got)
		Expect(e).To(BeNil())
		Expect(n).To(Equal(100))
		Expect(got).To(Equal(payload[2*blockSize : 2*blockSize+100]))

		Expect(r.Skip(0)).To(BeNil())
		full := make([]byte, len(payload))
		total := 0
		for total < len(full) {
			n, e := r.Read(full[total:])
			total += n
			if n == 0 {
				break
			}
			if e != nil {
				break
			}
		}
		Expect(full[:total]).To(Equal(payload))
		Expect(r.Terminate()).To(BeNil())
	})

	It("rejects serpent/camellia as feature-unavailable", func() {
		_, e := cipher.NewKeySchedule(cipher.AlgorithmSerpent256, cipher.Version{Major: 8, Fix: 1}, "secret", 0)
		Expect(e).ToNot(BeNil())

		_, e = cipher.NewKeySchedule(cipher.AlgorithmCamellia256, cipher.Version{Major: 8, Fix: 1}, "secret", 0)
		Expect(e).ToNot(BeNil())
	})

	It("reports a truncated encrypted block as a read error", func() {
		dir := GinkgoT().TempDir()
		path := filepath.Join(dir, "short.dat")

		ks, e := cipher.NewKeySchedule(cipher.AlgorithmAES256, cipher.Version{Major: 8, Fix: 1}, "secret", 0)
		Expect(e).To(BeNil())

		ls, e := local.Open(path, local.OpenOptions{Write: true, Create: true, Truncate: true})
		Expect(e).To(BeNil())
		w := cipher.NewWriter(ls, ks, blockSize)
		Expect(w.Write(randomPayload(blockSize))).To(BeNil())
		Expect(w.Terminate()).To(BeNil())

		// Truncate the single encrypted block so decrypting it fails a
		// full-block read before the elastic trailer is even reached.
		truncated, e := local.Open(path, local.OpenOptions{Write: true})
		Expect(e).To(BeNil())
		Expect(truncated.Truncate(8)).To(BeNil())
		Expect(truncated.Terminate()).To(BeNil())

		ks2, e := cipher.NewKeySchedule(cipher.AlgorithmAES256, cipher.Version{Major: 8, Fix: 1}, "secret", 0)
		Expect(e).To(BeNil())
		rls, e := local.Open(path, local.OpenOptions{})
		Expect(e).To(BeNil())
		r := cipher.NewReader(rls, ks2, blockSize)

		_, e = r.Read(make([]byte, blockSize))
		Expect(e).ToNot(BeNil())
	})
})
