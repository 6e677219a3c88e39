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

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nabbar/darkit/archive"
	"github.com/nabbar/darkit/catalog"
	"github.com/nabbar/darkit/fsa"
	libpath "github.com/nabbar/darkit/path"
	"github.com/nabbar/darkit/runtime"
)

// splitArchive splits "/backups/mybase" into the slice directory and
// base name the slice layer wants.
func splitArchive(arg string) (dir, base string) {
	dir, base = filepath.Split(arg)
	if dir == "" {
		dir = "."
	}
	return filepath.Clean(dir), base
}

func buildOptions(cfg runtime.Config, archiveArg string) archive.Options {
	dir, base := splitArchive(archiveArg)
	opts := archive.OptionsFromConfig(cfg, dir, base, vpr.GetString("ext"))
	opts.FSAScope = cfg.FSAScope
	return opts
}

func newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <archive> <root>",
		Short: "archive the tree under <root> into <archive>.N.<ext> slices",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rt := newRuntime(cfg)
			opts := buildOptions(cfg, args[0])

			walker := catalog.NewOSWalker()
			if len(cfg.FSAScope) > 0 {
				walker.Scope = cfg.FSAScope
			} else {
				walker.Scope = fsa.Scope{}
			}

			stats, e := archive.Create(rt, opts, walker, libpath.New(args[1]))
			if e != nil {
				return e
			}
			runSliceHooks(rt, cfg, opts)
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries, %d bytes archived\n", stats.Entries, stats.Bytes)
			return nil
		},
	}
}

func newExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <archive> <dest>",
		Short: "restore an archive under <dest>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rt := newRuntime(cfg)

			stats, e := archive.Extract(rt, buildOptions(cfg, args[0]), libpath.New(args[1]), nil, nil)
			if e != nil {
				return e
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%d entries restored, %d skipped\n", stats.Entries, stats.Skipped)
			return nil
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list <archive>",
		Short: "print the archive's entries without extracting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rt := newRuntime(cfg)

			entries, e := archive.List(rt, buildOptions(cfg, args[0]))
			if e != nil {
				return e
			}
			for _, ent := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%c %9d %s\n", ent.Kind, ent.Size, ent.Path.Display())
			}
			return nil
		},
	}
}

func newDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <archive-a> <archive-b>",
		Short: "compare two archives entry by entry",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			rt := newRuntime(cfg)

			changes, e := archive.Diff(rt, buildOptions(cfg, args[0]), buildOptions(cfg, args[1]))
			if e != nil {
				return e
			}
			for _, c := range changes {
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %s\n", c.Kind, c.Path.Display())
			}
			return nil
		},
	}
}

// runSliceHooks runs the configured slice hook once per finished slice,
// with the %-escapes expanded for that slice file.
func runSliceHooks(rt *runtime.Runtime, cfg runtime.Config, opts archive.Options) {
	if cfg.SliceHook == "" {
		return
	}

	for n := uint64(1); ; n++ {
		p := filepath.Join(opts.Slice.Dir, fmt.Sprintf("%s.%d.%s", opts.Slice.Base, n, opts.Slice.Ext))
		if _, err := os.Stat(p); err != nil {
			break
		}
		line := runtime.ExpandHook(cfg.SliceHook, runtime.HookContext{
			Path:     p,
			SliceNum: n,
			Context:  "end",
			UID:      os.Getuid(),
			GID:      os.Getgid(),
		})
		cmd := exec.Command("/bin/sh", "-c", line)
		cmd.Stdout = os.Stderr
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			rt.Logger().WithField("slice", n).WithError(err).Warn("slice hook failed")
		}
	}
}
