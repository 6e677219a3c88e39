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

package archive

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/darkit/catalog"
	"github.com/nabbar/darkit/errkind"
	libpath "github.com/nabbar/darkit/path"
	"github.com/nabbar/darkit/runtime"
	"github.com/nabbar/darkit/stream/local"
)

// relativeTo rewrites p as a path relative to root; root itself becomes
// the relative empty path.
func relativeTo(p, root libpath.Path) libpath.Path {
	disp, rootDisp := p.Display(), root.Display()
	if disp == rootDisp {
		return libpath.New(".")
	}
	prefix := rootDisp
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return libpath.New(strings.TrimPrefix(disp, prefix))
}

// Create walks the tree under root and writes one archive per opts. Each
// regular file's data flows through the compressor and, when a
// passphrase is set, the block cipher; hardlinked inodes are stored once
// and back-referenced afterward.
func Create(rt *runtime.Runtime, opts Options, walker catalog.Walker, root libpath.Path) (Stats, errkind.Error) {
	var stats Stats

	pipe, hdr, e := openWrite(rt, opts)
	if e != nil {
		return stats, e
	}

	// Index of the last data-carrying file entry seen per inode; values
	// are 1-based so zero stays "carries its own data" on the wire.
	seen := make(map[catalog.HardlinkKey]uint64)
	var fileIndex uint64

	walkErr := walker.Walk(root, func(ent catalog.Entry) error {
		if ce := rt.Cancel().Check(source); ce != nil {
			return ce
		}

		e := Entry{
			Path:     relativeTo(ent.Path(), root),
			Kind:     kindOf(ent.Mode()),
			Mode:     ent.Mode(),
			UID:      ent.Owner(),
			GID:      ent.Group(),
			Mtime:    ent.Mtime(),
			Size:     ent.Size(),
			Linkname: ent.Linkname(),
			FSA:      ent.FSA(),
		}

		if e.Kind == KindFile {
			key := ent.HardlinkKey()
			if idx, ok := seen[key]; ok && key != (catalog.HardlinkKey{}) {
				e.Hardlink = idx
				stats.Hardlinks++
			} else {
				fileIndex++
				seen[key] = fileIndex
			}
		}

		if we := writeEntryMeta(pipe.top, e); we != nil {
			return we
		}

		stats.Entries++
		switch e.Kind {
		case KindDir:
			stats.Dirs++
		case KindSymlink:
			stats.Symlinks++
		case KindFile:
			stats.Files++
		}

		if e.Kind != KindFile || e.Hardlink != 0 {
			return nil
		}

		src, oe := local.Open(ent.Path().Display(), local.OpenOptions{FurtiveRead: true})
		if oe != nil {
			return oe
		}
		_ = src.Fadvise(local.AdviceSequential)

		// Large bodies go through the worker pool; the output bytes are
		// the same either way, so the reader never needs to know.
		if opts.Workers > 1 && e.Size >= uint64(pipe.cw.BlockSize()) {
			lim := newLimitStream(src, e.Size)
			if pe := pipe.compressParallel(lim, opts.Workers, rt.Cancel()); pe != nil {
				_ = src.Terminate()
				return pe
			}
			if lim.Remaining() > 0 {
				_ = src.Terminate()
				return errkind.New(errkind.KindData, source,
					"file shrank during archiving: "+ent.Path().Display())
			}
			stats.Bytes += e.Size
			rt.Logger().WithFields(logrus.Fields{
				"path":    e.Path.Display(),
				"bytes":   e.Size,
				"workers": opts.Workers,
			}).Debug("archived")
			return src.Terminate()
		}

		remaining := e.Size
		buf := make([]byte, 128*1024)
		for remaining > 0 {
			want := remaining
			if want > uint64(len(buf)) {
				want = uint64(len(buf))
			}
			n, re := src.Read(buf[:want])
			if n > 0 {
				if we := pipe.top.Write(buf[:n]); we != nil {
					_ = src.Terminate()
					return we
				}
				remaining -= uint64(n)
				stats.Bytes += uint64(n)
			}
			if re != nil {
				if re.Is(errkind.KindEndOfFile) && remaining == 0 {
					break
				}
				_ = src.Terminate()
				if re.Is(errkind.KindEndOfFile) {
					return errkind.New(errkind.KindData, source,
						"file shrank during archiving: "+ent.Path().Display())
				}
				return re
			}
		}
		rt.Logger().WithFields(logrus.Fields{
			"path":  e.Path.Display(),
			"bytes": e.Size,
		}).Debug("archived")
		return src.Terminate()
	})

	if walkErr != nil {
		_ = pipe.Terminate()
		if ke, ok := walkErr.(errkind.Error); ok {
			return stats, ke.Push(source, "create aborted")
		}
		return stats, errkind.Wrap(errkind.KindHardware, source, walkErr)
	}

	if e := writeEnd(pipe.top); e != nil {
		_ = pipe.Terminate()
		return stats, e
	}
	if e := pipe.Terminate(); e != nil {
		return stats, e
	}

	rt.Logger().WithFields(logrus.Fields{
		"entries":     stats.Entries,
		"files":       stats.Files,
		"bytes":       stats.Bytes,
		"encrypted":   hdr.Encrypted,
		"compression": hdr.Compression.String(),
	}).Info("archive created")
	return stats, nil
}
