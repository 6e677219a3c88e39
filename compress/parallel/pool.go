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

package parallel

import (
	"context"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nabbar/darkit/cancel"
	"github.com/nabbar/darkit/compress"
	"github.com/nabbar/darkit/errkind"
	"github.com/nabbar/darkit/stream"
)

const source = "compress/parallel"

// MinBlockSize is the smallest block size this pool will scatter work at;
// anything smaller makes the channel/goroutine overhead dominate the
// actual compression work.
const MinBlockSize = 512

// job is one scattered unit of clear (Compress) or framed (Decompress)
// input, tagged with its position in the original sequence.
type job struct {
	index int
	clear []byte
	frame compress.Frame
}

// result is one gathered compress.Frame (Compress) or clear block
// (Decompress), tagged with the index of the job it was produced from.
type result struct {
	index int
	frame compress.Frame
	clear []byte
}

// readExact reads from src until buf is full, the stream ends, or an
// error occurs, returning the number of bytes actually placed in buf.
func readExact(src stream.Stream, buf []byte) (int, errkind.Error) {
	total := 0
	for total < len(buf) {
		n, e := src.Read(buf[total:])
		total += n
		if e != nil {
			if e.Is(errkind.KindEndOfFile) {
				return total, e
			}
			return total, e
		}
		if n == 0 {
			return total, nil
		}
	}
	return total, nil
}

func asErrkind(err error) errkind.Error {
	if err == nil {
		return nil
	}
	if e, ok := err.(errkind.Error); ok {
		return e
	}
	return errkind.Wrap(errkind.KindThreadCancel, source, err)
}

func normalize(blockSize, workers int) (int, int) {
	if blockSize < MinBlockSize {
		blockSize = MinBlockSize
	}
	if workers < 1 {
		workers = 1
	}
	return blockSize, workers
}

// Compress reads src sequentially in blockSize-sized chunks, scatters
// them across workers goroutines each holding a clone of codec, and
// writes the resulting compress.Frame sequence to dst in the original
// block order — the same wire format compress/stream's Writer produces,
// so picking workers > 1 never changes the bytes written for a given
// (codec, level, blockSize, input).
func Compress(src stream.Stream, dst stream.Stream, codec compress.Codec, blockSize, workers int, tok cancel.Token) errkind.Error {
	blockSize, workers = normalize(blockSize, workers)
	if tok == nil {
		tok = cancel.New()
	}

	g, ctx := errgroup.WithContext(context.Background())
	jobs := make(chan job, workers+2)
	results := make(chan result, workers+2)

	g.Go(func() error {
		defer close(jobs)
		idx := 0
		for {
			if e := tok.Check(source); e != nil {
				return e
			}
			buf := make([]byte, blockSize)
			n, re := readExact(src, buf)
			if n > 0 {
				select {
				case jobs <- job{index: idx, clear: buf[:n]}:
					idx++
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if re != nil {
				if re.Is(errkind.KindEndOfFile) {
					return nil
				}
				return re
			}
			if n == 0 {
				return nil
			}
		}
	})

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		wc := codec.Clone()
		g.Go(func() error {
			defer wg.Done()
			for {
				select {
				case j, ok := <-jobs:
					if !ok {
						return nil
					}
					if e := tok.Check(source); e != nil {
						return e
					}
					out := make([]byte, wc.MinOutputBufferFor(uint64(len(j.clear))))
					n, e := wc.Compress(j.clear, out)
					if e != nil {
						return e.Push(source, "compress block")
					}
					f := compress.Frame{Kind: compress.FrameCompressed, ClearLen: uint64(len(j.clear)), CompLen: uint64(n), Payload: out[:n]}
					select {
					case results <- result{index: j.index, frame: f}:
					case <-ctx.Done():
						return ctx.Err()
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	g.Go(func() error {
		return gatherFrames(results, dst)
	})

	return asErrkind(g.Wait())
}

// gatherFrames reorders results by index and writes each frame to dst in
// sequence, so the write side never sees out-of-order blocks even though
// the workers finish in arbitrary order.
func gatherFrames(results <-chan result, dst stream.Stream) error {
	pending := make(map[int]result)
	next := 0
	for r := range results {
		pending[r.index] = r
		for {
			rr, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if e := compress.WriteFrame(dst, rr.frame); e != nil {
				return e
			}
			next++
		}
	}
	return nil
}

// Decompress reads framed blocks sequentially from src, decompresses
// them across workers goroutines, and writes the reassembled clear bytes
// to dst in order.
func Decompress(src stream.Stream, dst stream.Stream, codec compress.Codec, workers int, tok cancel.Token) errkind.Error {
	_, workers = normalize(MinBlockSize, workers)
	if tok == nil {
		tok = cancel.New()
	}

	g, ctx := errgroup.WithContext(context.Background())
	jobs := make(chan job, workers+2)
	results := make(chan result, workers+2)

	g.Go(func() error {
		defer close(jobs)
		idx := 0
		for {
			if e := tok.Check(source); e != nil {
				return e
			}
			f, e := compress.ReadFrame(src)
			if e != nil {
				if e.Is(errkind.KindEndOfFile) {
					return nil
				}
				return e
			}
			select {
			case jobs <- job{index: idx, frame: f}:
				idx++
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		wc := codec.Clone()
		g.Go(func() error {
			defer wg.Done()
			for {
				select {
				case j, ok := <-jobs:
					if !ok {
						return nil
					}
					if e := tok.Check(source); e != nil {
						return e
					}
					var clear []byte
					if j.frame.Kind == compress.FrameRaw {
						clear = j.frame.Payload
					} else {
						out := make([]byte, j.frame.ClearLen)
						n, e := wc.Decompress(j.frame.Payload, out)
						if e != nil {
							return e.Push(source, "decompress block")
						}
						clear = out[:n]
					}
					select {
					case results <- result{index: j.index, clear: clear}:
					case <-ctx.Done():
						return ctx.Err()
					}
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	g.Go(func() error {
		return gatherClear(results, dst)
	})

	return asErrkind(g.Wait())
}

func gatherClear(results <-chan result, dst stream.Stream) error {
	pending := make(map[int]result)
	next := 0
	for r := range results {
		pending[r.index] = r
		for {
			rr, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			if len(rr.clear) > 0 {
				if e := dst.Write(rr.clear); e != nil {
					return e
				}
			}
			next++
		}
	}
	return nil
}
