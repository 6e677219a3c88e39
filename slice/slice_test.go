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

package slice_test

import (
	"bytes"
	"crypto/sha1"
	"encoding/hex"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/darkit/overwrite"
	"github.com/nabbar/darkit/slice"
	"github.com/nabbar/darkit/stream/hashsink"
)

var _ = Describe("slice writer/reader", func() {
	var cfg slice.Config

	BeforeEach(func() {
		cfg = slice.Config{
			Dir:    GinkgoT().TempDir(),
			Base:   "test",
			Ext:    "dar",
			S0:     10,
			S:      6,
			Hash:   hashsink.AlgorithmNone,
			Policy: overwrite.AllowAll{},
		}
	})

	It("splits writes exactly at slice boundaries and reads them back stitched", func() {
		w := slice.NewWriter(cfg)
		payload := bytes.Repeat([]byte("abcdefghij"), 3) // 30 bytes: slice1=10,slice2=6,slice3=6,slice4=6,slice5=2
		Expect(w.Write(payload)).To(BeNil())
		Expect(w.Terminate()).To(BeNil())

		r := slice.NewReader(cfg)
		got := make([]byte, len(payload))
		total := 0
		for total < len(got) {
			n, e := r.Read(got[total:])
			total += n
			if n == 0 {
				break
			}
			if e != nil {
				break
			}
		}
		Expect(got[:total]).To(Equal(payload))
		Expect(r.Terminate()).To(BeNil())
	})

	It("recognizes slice filename candidates", func() {
		for name, want := range map[string]bool{
			"test.1.dar":   true,
			"test.12.dar":  true,
			"test.01.dar":  false, // leading zero
			"test.0.dar":   false,
			"test.1.dar.x": false,
			"other.1.dar":  false,
		} {
			Expect(cfg.IsCandidate(name)).To(Equal(want), name)
		}
	})

	It("seeks into the middle of a ten-slice layout", func() {
		cfg.S0 = 100
		cfg.S = 200

		payload := make([]byte, 1900)
		for i := range payload {
			payload[i] = byte(i % 256)
		}

		w := slice.NewWriter(cfg)
		Expect(w.Write(payload)).To(BeNil())
		Expect(w.Terminate()).To(BeNil())

		r := slice.NewReader(cfg)
		Expect(r.Skip(1500)).To(BeNil())
		got := make([]byte, 10)
		n, e := r.Read(got)
		Expect(e).To(BeNil())
		Expect(n).To(Equal(10))
		Expect(got).To(Equal(payload[1500:1510]))
		Expect(r.Terminate()).To(BeNil())
	})

	It("writes a matching hash sidecar per slice", func() {
		cfg.S0 = 10
		cfg.S = 10
		cfg.Hash = hashsink.AlgorithmSHA1

		w := slice.NewWriter(cfg)
		Expect(w.Write(bytes.Repeat([]byte("x"), 25))).To(BeNil())
		Expect(w.Terminate()).To(BeNil())

		sliceData, err := os.ReadFile(filepath.Join(cfg.Dir, "test.2.dar"))
		Expect(err).To(Succeed())

		sidecar, err := os.ReadFile(filepath.Join(cfg.Dir, "test.2.dar.sha1"))
		Expect(err).To(Succeed())

		sum := sha1.Sum(sliceData)
		want := hex.EncodeToString(sum[:]) + "  test.2.dar\n"
		Expect(string(sidecar)).To(Equal(want))
	})

	It("seeks directly into a later slice", func() {
		w := slice.NewWriter(cfg)
		payload := bytes.Repeat([]byte("abcdefghij"), 3)
		Expect(w.Write(payload)).To(BeNil())
		Expect(w.Terminate()).To(BeNil())

		r := slice.NewReader(cfg)
		Expect(r.Skip(12)).To(BeNil())
		got := make([]byte, 4)
		n, e := r.Read(got)
		Expect(e).To(BeNil())
		Expect(got[:n]).To(Equal(payload[12 : 12+n]))
		Expect(r.Terminate()).To(BeNil())
	})
})
