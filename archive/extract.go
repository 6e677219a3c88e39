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
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/filter"
	"github.com/nabbar/darkit/overwrite"
	libpath "github.com/nabbar/darkit/path"
	"github.com/nabbar/darkit/runtime"
	"github.com/nabbar/darkit/stream/local"
)

// uiWarner bridges the interaction surface to the fsa layer's warning
// sink.
type uiWarner struct{ ui runtime.UserInteraction }

func (w uiWarner) Warn(format string, args ...interface{}) {
	w.ui.Message(format, args...)
}

// destPath maps an archived relative path under dest. The archive root
// entry ("." on the wire) maps to dest itself.
func destPath(dest libpath.Path, p libpath.Path) string {
	if p.Display() == "." {
		return dest.Display()
	}
	return filepath.Join(dest.Display(), filepath.FromSlash(p.Display()))
}

// Extract reverses Create under dest. Entries failing sel are skipped
// without materializing their data; an existing target consults pol
// before being replaced.
func Extract(rt *runtime.Runtime, opts Options, dest libpath.Path, sel filter.Selector, pol overwrite.Policy) (Stats, errkind.Error) {
	var stats Stats

	if sel == nil {
		sel = filter.All{}
	}
	if pol == nil {
		pol = overwrite.AllowAll{}
	}

	pipe, e := openRead(rt, opts)
	if e != nil {
		return stats, e
	}
	defer func() { _ = pipe.Terminate() }()

	// Extracted target path per data-carrying file index, 1-based, so
	// hardlink back-references can be materialized with os.Link. An
	// empty string records a data-carrying entry that was skipped.
	dataPaths := []string{""}

	for {
		if ce := rt.Cancel().Check(source); ce != nil {
			return stats, ce
		}

		ent, more, e := readEntryMeta(pipe.top)
		if e != nil {
			return stats, e
		}
		if !more {
			break
		}

		carriesData := ent.Kind == KindFile && ent.Hardlink == 0

		target := destPath(dest, ent.Path)
		selected := sel.Match(ent.Path)

		if selected {
			if _, serr := os.Lstat(target); serr == nil && ent.Path.Display() != "." {
				d, derr := pol.Resolve(target)
				if derr != nil {
					return stats, errkind.Wrap(errkind.KindUserAbort, source, derr)
				}
				if d == overwrite.DecisionDeny {
					selected = false
					rt.Logger().WithField("path", target).Debug("overwrite refused")
				} else if ent.Kind != KindDir {
					if rmErr := os.Remove(target); rmErr != nil && !os.IsNotExist(rmErr) {
						return stats, errkind.Wrap(errkind.KindHardware, source, rmErr)
					}
				}
			}
		}

		if !selected {
			stats.Skipped++
			if carriesData {
				dataPaths = append(dataPaths, "")
				if e := pipe.discard(ent.Size); e != nil {
					return stats, e
				}
			}
			continue
		}

		if e := materialize(rt, pipe, ent, target, &dataPaths, &stats); e != nil {
			return stats, e
		}

		stats.Entries++
		rt.Logger().WithField("path", target).Debug("extracted")
	}

	rt.Logger().WithFields(logrus.Fields{
		"entries": stats.Entries,
		"skipped": stats.Skipped,
		"bytes":   stats.Bytes,
	}).Info("archive extracted")
	return stats, nil
}

func materialize(rt *runtime.Runtime, pipe *readPipeline, ent Entry, target string, dataPaths *[]string, stats *Stats) errkind.Error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return errkind.Wrap(errkind.KindHardware, source, err)
	}

	switch ent.Kind {
	case KindDir:
		if err := os.MkdirAll(target, ent.Mode.Perm()|0o200); err != nil {
			return errkind.Wrap(errkind.KindHardware, source, err)
		}
		stats.Dirs++

	case KindSymlink:
		if err := os.Symlink(ent.Linkname, target); err != nil {
			return errkind.Wrap(errkind.KindHardware, source, err)
		}
		stats.Symlinks++

	case KindFile:
		if ent.Hardlink != 0 {
			if int(ent.Hardlink) >= len(*dataPaths) || (*dataPaths)[ent.Hardlink] == "" {
				rt.Logger().WithField("path", target).Warn("hardlink target was not extracted")
				return nil
			}
			if err := os.Link((*dataPaths)[ent.Hardlink], target); err != nil {
				return errkind.Wrap(errkind.KindHardware, source, err)
			}
			stats.Hardlinks++
			stats.Files++
			break
		}

		dst, oe := local.Open(target, local.OpenOptions{Write: true, Create: true, Truncate: true, Perm: 0o600})
		if oe != nil {
			return oe
		}
		remaining := ent.Size
		buf := make([]byte, 128*1024)
		for remaining > 0 {
			want := remaining
			if want > uint64(len(buf)) {
				want = uint64(len(buf))
			}
			n, re := pipe.top.Read(buf[:want])
			if n > 0 {
				if we := dst.Write(buf[:n]); we != nil {
					_ = dst.Terminate()
					return we
				}
				remaining -= uint64(n)
				stats.Bytes += uint64(n)
			}
			if re != nil && !re.Is(errkind.KindEndOfFile) {
				_ = dst.Terminate()
				return re
			}
			if n == 0 {
				_ = dst.Terminate()
				return errkind.New(errkind.KindData, source, "short read: truncated file data")
			}
		}
		if e := dst.Terminate(); e != nil {
			return e
		}
		*dataPaths = append(*dataPaths, target)
		stats.Files++

	case KindOther:
		// devices, fifos and sockets are recorded but not re-created
		rt.Logger().WithField("path", target).Debug("special file not re-created")
		return nil
	}

	// Metadata restore, best-effort where the platform may refuse.
	if ent.Kind != KindSymlink {
		_ = os.Chmod(target, ent.Mode.Perm())
		_ = os.Chtimes(target, ent.Mtime, ent.Mtime)
	}
	_ = os.Lchown(target, int(ent.UID), int(ent.GID))

	if ent.FSA != nil && len(pipe.hdr.FSAScope) > 0 {
		if e := ent.FSA.WriteTo(target, pipe.hdr.FSAScope, uiWarner{rt.UI()}); e != nil {
			rt.Logger().WithField("path", target).WithError(e).Warn("could not restore attributes")
		}
	}
	return nil
}
