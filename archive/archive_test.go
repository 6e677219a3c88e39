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

package archive_test

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nabbar/darkit/archive"
	"github.com/nabbar/darkit/catalog"
	"github.com/nabbar/darkit/cipher"
	"github.com/nabbar/darkit/compress"
	"github.com/nabbar/darkit/filter"
	"github.com/nabbar/darkit/overwrite"
	libpath "github.com/nabbar/darkit/path"
	"github.com/nabbar/darkit/runtime"
	"github.com/nabbar/darkit/slice"
	"github.com/nabbar/darkit/stream/hashsink"
)

// plant builds a small source tree and returns its root.
func plant(files map[string][]byte) string {
	root := GinkgoT().TempDir()
	for name, data := range files {
		p := filepath.Join(root, name)
		Expect(os.MkdirAll(filepath.Dir(p), 0o755)).To(Succeed())
		Expect(os.WriteFile(p, data, 0o644)).To(Succeed())
	}
	return root
}

func baseOptions(dir string) archive.Options {
	return archive.Options{
		Slice: slice.Config{
			Dir:    dir,
			Base:   "arch",
			Ext:    "dk",
			S0:     1 << 20,
			S:      1 << 20,
			Hash:   hashsink.AlgorithmNone,
			Policy: overwrite.AllowAll{},
		},
		Compression: compress.AlgorithmZstd,
		ClearBlock:  4096,
	}
}

var _ = Describe("archive operations", func() {
	var rt *runtime.Runtime

	BeforeEach(func() {
		rt = runtime.New()
	})

	It("round-trips a tree through create and extract", func() {
		src := plant(map[string][]byte{
			"a.txt":       []byte("alpha"),
			"sub/b.bin":   bytes.Repeat([]byte{0x42}, 70000),
			"sub/deep/c":  {},
		})
		Expect(os.Symlink("a.txt", filepath.Join(src, "lnk"))).To(Succeed())

		opts := baseOptions(GinkgoT().TempDir())
		stats, e := archive.Create(rt, opts, catalog.NewOSWalker(), libpath.New(src))
		Expect(e).To(BeNil())
		Expect(stats.Files).To(Equal(uint64(3)))
		Expect(stats.Symlinks).To(Equal(uint64(1)))

		dest := GinkgoT().TempDir()
		xs, e := archive.Extract(rt, opts, libpath.New(dest), nil, nil)
		Expect(e).To(BeNil())
		Expect(xs.Files).To(Equal(uint64(3)))

		got, err := os.ReadFile(filepath.Join(dest, "a.txt"))
		Expect(err).To(Succeed())
		Expect(got).To(Equal([]byte("alpha")))

		got, err = os.ReadFile(filepath.Join(dest, "sub", "b.bin"))
		Expect(err).To(Succeed())
		Expect(got).To(Equal(bytes.Repeat([]byte{0x42}, 70000)))

		target, err := os.Readlink(filepath.Join(dest, "lnk"))
		Expect(err).To(Succeed())
		Expect(target).To(Equal("a.txt"))
	})

	It("round-trips an encrypted, multi-slice archive", func() {
		src := plant(map[string][]byte{
			"data.bin": bytes.Repeat([]byte("0123456789abcdef"), 4096),
		})

		opts := baseOptions(GinkgoT().TempDir())
		opts.Slice.S0 = 3000
		opts.Slice.S = 5000
		opts.Cipher = cipher.AlgorithmAES256
		opts.Passphrase = "secret"
		opts.Iterations = 200

		_, e := archive.Create(rt, opts, catalog.NewOSWalker(), libpath.New(src))
		Expect(e).To(BeNil())

		// more than one slice must exist
		_, err := os.Stat(filepath.Join(opts.Slice.Dir, "arch.2.dk"))
		Expect(err).To(Succeed())

		dest := GinkgoT().TempDir()
		_, e = archive.Extract(rt, opts, libpath.New(dest), nil, nil)
		Expect(e).To(BeNil())

		got, err := os.ReadFile(filepath.Join(dest, "data.bin"))
		Expect(err).To(Succeed())
		Expect(got).To(Equal(bytes.Repeat([]byte("0123456789abcdef"), 4096)))
	})

	It("round-trips a large file through the parallel compression path", func() {
		payload := make([]byte, 2<<20)
		for i := range payload {
			payload[i] = byte(i * 31)
		}
		src := plant(map[string][]byte{"big.bin": payload, "small.txt": []byte("tiny")})

		opts := baseOptions(GinkgoT().TempDir())
		opts.Workers = 4
		opts.CompressBlock = 64 * 1024

		_, e := archive.Create(rt, opts, catalog.NewOSWalker(), libpath.New(src))
		Expect(e).To(BeNil())

		dest := GinkgoT().TempDir()
		_, e = archive.Extract(rt, opts, libpath.New(dest), nil, nil)
		Expect(e).To(BeNil())

		got, err := os.ReadFile(filepath.Join(dest, "big.bin"))
		Expect(err).To(Succeed())
		Expect(got).To(Equal(payload))

		got, err = os.ReadFile(filepath.Join(dest, "small.txt"))
		Expect(err).To(Succeed())
		Expect(got).To(Equal([]byte("tiny")))
	})

	It("stores hardlinked inodes once and re-links them on extract", func() {
		src := plant(map[string][]byte{"one": []byte("shared payload")})
		Expect(os.Link(filepath.Join(src, "one"), filepath.Join(src, "two"))).To(Succeed())

		opts := baseOptions(GinkgoT().TempDir())
		stats, e := archive.Create(rt, opts, catalog.NewOSWalker(), libpath.New(src))
		Expect(e).To(BeNil())
		Expect(stats.Hardlinks).To(Equal(uint64(1)))

		dest := GinkgoT().TempDir()
		_, e = archive.Extract(rt, opts, libpath.New(dest), nil, nil)
		Expect(e).To(BeNil())

		fi1, err := os.Stat(filepath.Join(dest, "one"))
		Expect(err).To(Succeed())
		fi2, err := os.Stat(filepath.Join(dest, "two"))
		Expect(err).To(Succeed())
		Expect(os.SameFile(fi1, fi2)).To(BeTrue())

		got, err := os.ReadFile(filepath.Join(dest, "two"))
		Expect(err).To(Succeed())
		Expect(got).To(Equal([]byte("shared payload")))
	})

	It("lists entries without materializing anything", func() {
		src := plant(map[string][]byte{
			"x.txt": []byte("xx"),
			"d/y":   []byte("yy"),
		})

		opts := baseOptions(GinkgoT().TempDir())
		_, e := archive.Create(rt, opts, catalog.NewOSWalker(), libpath.New(src))
		Expect(e).To(BeNil())

		entries, e := archive.List(rt, opts)
		Expect(e).To(BeNil())

		var files []string
		for _, ent := range entries {
			if ent.Kind == archive.KindFile {
				files = append(files, ent.Path.Display())
			}
		}
		Expect(files).To(ConsistOf("x.txt", "d/y"))
	})

	It("reports exactly one modified change when one file's contents change", func() {
		src := plant(map[string][]byte{
			"stable.txt":  []byte("unchanging"),
			"mutable.txt": []byte("before"),
		})

		aOpts := baseOptions(GinkgoT().TempDir())
		_, e := archive.Create(rt, aOpts, catalog.NewOSWalker(), libpath.New(src))
		Expect(e).To(BeNil())

		Expect(os.WriteFile(filepath.Join(src, "mutable.txt"), []byte("after, and longer"), 0o644)).To(Succeed())

		bOpts := baseOptions(GinkgoT().TempDir())
		_, e = archive.Create(rt, bOpts, catalog.NewOSWalker(), libpath.New(src))
		Expect(e).To(BeNil())

		changes, e := archive.Diff(rt, aOpts, bOpts)
		Expect(e).To(BeNil())
		Expect(changes).To(HaveLen(1))
		Expect(changes[0].Path.Display()).To(Equal("mutable.txt"))
		Expect(changes[0].Kind).To(Equal(archive.ChangeModified))
	})

	It("skips entries the selector rejects", func() {
		src := plant(map[string][]byte{
			"keep.txt": []byte("keep"),
			"drop.txt": []byte("drop"),
		})

		opts := baseOptions(GinkgoT().TempDir())
		_, e := archive.Create(rt, opts, catalog.NewOSWalker(), libpath.New(src))
		Expect(e).To(BeNil())

		dest := GinkgoT().TempDir()
		sel := filter.Not{S: filter.Glob{Pattern: "drop.txt"}}
		xs, e := archive.Extract(rt, opts, libpath.New(dest), sel, nil)
		Expect(e).To(BeNil())
		Expect(xs.Skipped).To(BeNumerically(">=", 1))

		_, err := os.Stat(filepath.Join(dest, "keep.txt"))
		Expect(err).To(Succeed())
		_, err = os.Stat(filepath.Join(dest, "drop.txt"))
		Expect(os.IsNotExist(err)).To(BeTrue())
	})

	It("honors an overwrite denial", func() {
		src := plant(map[string][]byte{"f.txt": []byte("archived")})

		opts := baseOptions(GinkgoT().TempDir())
		_, e := archive.Create(rt, opts, catalog.NewOSWalker(), libpath.New(src))
		Expect(e).To(BeNil())

		dest := GinkgoT().TempDir()
		pre := filepath.Join(dest, "f.txt")
		Expect(os.WriteFile(pre, []byte("pre-existing"), 0o644)).To(Succeed())

		_, e = archive.Extract(rt, opts, libpath.New(dest), nil, overwrite.DenyAll{})
		Expect(e).To(BeNil())

		got, err := os.ReadFile(pre)
		Expect(err).To(Succeed())
		Expect(got).To(Equal([]byte("pre-existing")))
	})
})
